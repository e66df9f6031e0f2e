// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

// DiffIDs compares the current and next association sets. added holds ids
// only in next, removed holds ids only in current. Ids present in both are
// reported in neither. Duplicates are ignored and input order is kept.
func DiffIDs(current, next []int64) (added, removed []int64) {
	cur := make(map[int64]struct{}, len(current))
	for _, id := range current {
		cur[id] = struct{}{}
	}
	nxt := make(map[int64]struct{}, len(next))
	for _, id := range next {
		nxt[id] = struct{}{}
	}

	for _, id := range uniqueIDs(next) {
		if _, ok := cur[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range uniqueIDs(current) {
		if _, ok := nxt[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}

// uniqueIDs returns ids without duplicates, in first-seen order.
func uniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
