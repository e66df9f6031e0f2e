// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"time"
)

// NullInt64FromPtr converts a pointer to int64 into sql.NullInt64.
func NullInt64FromPtr(ptr *int64) sql.NullInt64 {
	if ptr != nil {
		return sql.NullInt64{Int64: *ptr, Valid: true}
	}
	return sql.NullInt64{}
}

// Int64PtrFromNull is the inverse of NullInt64FromPtr.
func Int64PtrFromNull(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

// TimePtrFromNull returns nil for an invalid sql.NullTime.
func TimePtrFromNull(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	v := n.Time
	return &v
}

// NullBoolFromPtr converts a pointer to bool into sql.NullBool.
func NullBoolFromPtr(ptr *bool) sql.NullBool {
	if ptr != nil {
		return sql.NullBool{Bool: *ptr, Valid: true}
	}
	return sql.NullBool{}
}
