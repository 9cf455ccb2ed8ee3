package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"example.com/leaderboard/internal/domain"
	"github.com/stretchr/testify/require"
)

const sheet = "\ufeffRunner, Team ,Distance,Date,Period,Archive\n" +
	"Alice,Hares, 5.5 ,2025-09-01,,\n" +
	"Bob,Owls,3,2025-06-01,2025-Q2,TRUE\n" +
	"Cara,Owls\n"

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, domain.Row{
		"Runner": "Alice", "Team": "Hares", "Distance": "5.5",
		"Date": "2025-09-01", "Period": "", "Archive": "",
	}, rows[0])
	require.Equal(t, "TRUE", rows[1]["Archive"])
	require.Equal(t, domain.Row{"Runner": "Cara", "Team": "Owls"}, rows[2])

	normalized := domain.Normalize(rows)
	require.Equal(t, 1, normalized.Rejected)
	current, archived := domain.Partition(normalized.Records)
	require.Len(t, current, 1)
	require.Len(t, archived, 1)
}

func TestParseCSVEmptyDocument(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.csv")
	require.NoError(t, os.WriteFile(path, []byte(sheet), 0o600))

	rows, err := NewFileCSV(path).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	_, err = NewFileCSV(filepath.Join(t.TempDir(), "missing.csv")).Read(context.Background())
	require.Error(t, err)
}

func TestHTTPCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/export" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sheet))
	}))
	defer srv.Close()

	rows, err := NewHTTPCSV(srv.URL+"/export", time.Second).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	_, err = NewHTTPCSV(srv.URL+"/private", time.Second).Read(context.Background())
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, http.StatusForbidden, fetchErr.Status)
}
