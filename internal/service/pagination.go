// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

// Pagination defaults.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Pagination selects one page of a listing. Page is 1-based.
type Pagination struct {
	Page    int
	PerPage int
}

// Normalize clamps Page and PerPage into their valid ranges.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Limit returns the SQL LIMIT for the page.
func (p Pagination) Limit() int64 {
	return int64(p.PerPage)
}

// Offset returns the SQL OFFSET for the page.
func (p Pagination) Offset() int64 {
	return int64((p.Page - 1) * p.PerPage)
}

// Pages returns the number of pages needed for total items.
func (p Pagination) Pages(total int64) int {
	if p.PerPage < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
}
