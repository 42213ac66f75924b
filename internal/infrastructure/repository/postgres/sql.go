package postgres

import (
	"database/sql"
	"strings"
	"time"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// Domain timestamps are stored as unix seconds so values survive dump and
// restore without timezone drift. created_at/updated_at stay native
// timestamps maintained by the database.

func unixToTime(value int64) time.Time {
	if value == 0 {
		return time.Time{}
	}
	return time.Unix(value, 0).UTC()
}

func timeToUnix(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().Unix()
}

func nullUnixToTimePtr(value sql.NullInt64) *time.Time {
	if !value.Valid {
		return nil
	}
	t := unixToTime(value.Int64)
	return &t
}

func nullableUnix(value *time.Time) *int64 {
	if value == nil || value.IsZero() {
		return nil
	}
	unix := value.UTC().Unix()
	return &unix
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
