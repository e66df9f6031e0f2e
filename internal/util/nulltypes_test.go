// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"testing"
	"time"
)

func TestNullInt64RoundTrip(t *testing.T) {
	if NullInt64FromPtr(nil).Valid {
		t.Error("NullInt64FromPtr(nil) should be invalid")
	}
	v := int64(5)
	n := NullInt64FromPtr(&v)
	if !n.Valid || n.Int64 != 5 {
		t.Errorf("NullInt64FromPtr(&5) = %+v", n)
	}
	if p := Int64PtrFromNull(n); p == nil || *p != 5 {
		t.Errorf("Int64PtrFromNull = %v", p)
	}
	if Int64PtrFromNull(sql.NullInt64{}) != nil {
		t.Error("Int64PtrFromNull(invalid) should be nil")
	}
}

func TestTimePtrFromNull(t *testing.T) {
	if TimePtrFromNull(sql.NullTime{}) != nil {
		t.Error("expected nil for invalid time")
	}
	now := time.Now()
	if p := TimePtrFromNull(sql.NullTime{Time: now, Valid: true}); p == nil || !p.Equal(now) {
		t.Errorf("TimePtrFromNull = %v", p)
	}
}

func TestNullBoolFromPtr(t *testing.T) {
	if NullBoolFromPtr(nil).Valid {
		t.Error("NullBoolFromPtr(nil) should be invalid")
	}
	f := false
	if got := NullBoolFromPtr(&f); !got.Valid || got.Bool {
		t.Errorf("NullBoolFromPtr(&false) = %+v", got)
	}
}
