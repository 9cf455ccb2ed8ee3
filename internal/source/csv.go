package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"example.com/leaderboard/internal/domain"
)

// CSV reads rows from a CSV document with a header line.
type CSV struct {
	open func(ctx context.Context) (io.ReadCloser, error)
}

// NewFileCSV reads the CSV file at path on every Read.
func NewFileCSV(path string) *CSV {
	return &CSV{open: func(context.Context) (io.ReadCloser, error) {
		return os.Open(path)
	}}
}

// NewHTTPCSV fetches a CSV export, such as a published spreadsheet, from url.
func NewHTTPCSV(url string, timeout time.Duration) *CSV {
	client := &http.Client{Timeout: timeout}
	return &CSV{open: func(ctx context.Context) (io.ReadCloser, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, &FetchError{Status: resp.StatusCode}
		}
		return resp.Body, nil
	}}
}

// Read parses the whole document. Cells are returned as trimmed strings;
// coercion is left to the normalizer.
func (c *CSV) Read(ctx context.Context) ([]domain.Row, error) {
	body, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseCSV(body)
}

// ParseCSV decodes a header line followed by data rows. Short rows leave
// the missing columns absent.
func ParseCSV(r io.Reader) ([]domain.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Row{}, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	rows := make([]domain.Row, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		row := make(domain.Row, len(header))
		for i, name := range header {
			if i >= len(record) || name == "" {
				continue
			}
			row[name] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchError reports a non-successful HTTP response from a CSV export.
type FetchError struct {
	Status int
}

func (e *FetchError) Error() string {
	return "csv fetch failed with status " + http.StatusText(e.Status)
}
