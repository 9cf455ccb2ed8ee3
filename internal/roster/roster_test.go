package roster

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/leaderboard/internal/domain"
)

func TestParse(t *testing.T) {
	rosters, err := Parse([]byte(`
teams:
  - name: " Hares "
    members: [Alice, Bob, "", Alice]
  - name: Owls
`))
	require.NoError(t, err)
	require.Equal(t, domain.StaticRosters{
		"Hares": {"Alice", "Bob"},
		"Owls":  {},
	}, rosters)
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"missing name": "teams:\n  - members: [Alice]\n",
		"duplicate":    "teams:\n  - name: Hares\n  - name: Hares\n",
		"bad yaml":     "teams: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rosters.yaml")
	require.NoError(t, os.WriteFile(path, []byte("teams:\n  - name: Hares\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan domain.StaticRosters, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, log.New(io.Discard, "", 0), func(r domain.StaticRosters) { changes <- r })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("teams:\n  - name: Owls\n    members: [Cara]\n"), 0o600))

	// A truncating write can surface an empty document first.
	deadline := time.After(5 * time.Second)
	for observed := false; !observed; {
		select {
		case r := <-changes:
			if members, ok := r["Owls"]; ok {
				require.Equal(t, []string{"Cara"}, members)
				observed = true
			}
		case <-deadline:
			t.Fatal("roster change not observed")
		}
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatchSurvivesRenameSaves(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rosters.yaml")
	require.NoError(t, os.WriteFile(path, []byte("teams:\n  - name: Hares\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan domain.StaticRosters, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, log.New(io.Discard, "", 0), func(r domain.StaticRosters) { changes <- r })
	}()
	time.Sleep(100 * time.Millisecond)

	saveByRename := func(name, doc string) {
		tmp := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(tmp, []byte(doc), 0o600))
		require.NoError(t, os.Rename(tmp, path))
	}
	awaitTeam := func(team string) {
		deadline := time.After(5 * time.Second)
		for {
			select {
			case r := <-changes:
				if _, ok := r[team]; ok {
					return
				}
			case <-deadline:
				t.Fatalf("reload with team %s not observed", team)
			}
		}
	}

	saveByRename(".rosters.tmp1", "teams:\n  - name: Owls\n")
	awaitTeam("Owls")

	saveByRename(".rosters.tmp2", "teams:\n  - name: Foxes\n")
	awaitTeam("Foxes")

	// Writes to other files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.yaml"), []byte("teams:\n  - name: Badgers\n"), 0o600))
	select {
	case r := <-changes:
		_, ok := r["Badgers"]
		require.False(t, ok)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}
