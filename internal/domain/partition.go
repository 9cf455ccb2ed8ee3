package domain

import (
	"fmt"
	"strings"
)

// archiveTokens are the upper-cased flag values that mark a record as archived.
var archiveTokens = map[string]struct{}{
	"TRUE": {},
	"T":    {},
	"1":    {},
	"YES":  {},
	"Y":    {},
}

// IsArchived classifies a raw archive flag. The value is rendered as text,
// trimmed and upper-cased; anything outside the truthy token set, nil
// included, is current.
func IsArchived(flag any) bool {
	if flag == nil {
		return false
	}
	token := strings.ToUpper(strings.TrimSpace(fmt.Sprint(flag)))
	_, ok := archiveTokens[token]
	return ok
}

// Partition splits records into the current and archived sets. Every record
// lands in exactly one side and input order is preserved within each side.
func Partition(records []ActivityRecord) (current, archived []ActivityRecord) {
	current = make([]ActivityRecord, 0, len(records))
	archived = make([]ActivityRecord, 0)
	for _, rec := range records {
		if rec.Archive {
			archived = append(archived, rec)
			continue
		}
		current = append(current, rec)
	}
	return current, archived
}
