// Package domain implements the leaderboard engine: record normalization,
// archive partitioning, aggregation, ranking, roster derivation and the
// per-period archive roll-up.
package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Column names exposed by the upstream data source.
const (
	ColumnRunner   = "Runner"
	ColumnTeam     = "Team"
	ColumnDistance = "Distance"
	ColumnDate     = "Date"
	ColumnPeriod   = "Period"
	ColumnArchive  = "Archive"
)

// Row is one raw tabular row keyed by column name. Values are whatever the
// source produced: strings, numbers, booleans, time.Time or nil.
type Row map[string]any

// Value returns the value stored under column, falling back to a
// case-insensitive match on the column name.
func (r Row) Value(column string) (any, bool) {
	if v, ok := r[column]; ok {
		return v, true
	}
	for k, v := range r {
		if strings.EqualFold(strings.TrimSpace(k), column) {
			return v, true
		}
	}
	return nil, false
}

// ActivityRecord is a validated, typed log entry.
type ActivityRecord struct {
	Runner   string
	Team     string
	Distance float64 // kilometers, rounded to 2 decimals
	Date     time.Time
	Period   string
	Archive  bool
}

// Normalized holds the records accepted by Normalize along with the number of
// rows that failed coercion.
type Normalized struct {
	Records  []ActivityRecord
	Rejected int
}

// Total is the number of rows that were presented to Normalize.
func (n Normalized) Total() int {
	return len(n.Records) + n.Rejected
}

// dateLayouts are tried in order when a date arrives as text.
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04:05",
	"02-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Normalize coerces raw rows into activity records. A row with a missing
// runner or team, or an unparseable or negative distance, or an unparseable
// date is dropped and counted in Rejected; it never partially contributes.
// Input order is preserved.
func Normalize(rows []Row) Normalized {
	out := Normalized{Records: make([]ActivityRecord, 0, len(rows))}
	for _, row := range rows {
		rec, ok := normalizeRow(row)
		if !ok {
			out.Rejected++
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out
}

func normalizeRow(row Row) (ActivityRecord, bool) {
	runner := textValue(row, ColumnRunner)
	team := textValue(row, ColumnTeam)
	if runner == "" || team == "" {
		return ActivityRecord{}, false
	}

	rawDistance, _ := row.Value(ColumnDistance)
	distance, ok := coerceDistance(rawDistance)
	if !ok {
		return ActivityRecord{}, false
	}

	rawDate, _ := row.Value(ColumnDate)
	date, ok := coerceDate(rawDate)
	if !ok {
		return ActivityRecord{}, false
	}

	rawArchive, present := row.Value(ColumnArchive)
	return ActivityRecord{
		Runner:   runner,
		Team:     team,
		Distance: Round(distance, 2),
		Date:     date,
		Period:   textValue(row, ColumnPeriod),
		Archive:  present && IsArchived(rawArchive),
	}, true
}

func textValue(row Row, column string) string {
	v, ok := row.Value(column)
	if !ok || v == nil {
		return ""
	}
	if f, isFloat := v.(float64); isFloat && math.IsNaN(f) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func coerceDistance(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case []byte:
		return coerceDistance(string(val))
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}

func coerceDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		return dateOnly(val), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return dateOnly(t), true
			}
		}
		return time.Time{}, false
	case []byte:
		return coerceDate(string(val))
	default:
		return time.Time{}, false
	}
}

// dateOnly discards the time-of-day, keeping the calendar date as written.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Round rounds v to the given number of decimal places, halves away from zero.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
