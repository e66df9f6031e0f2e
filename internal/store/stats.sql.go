// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "context"

const getDashboardStats = `-- name: GetDashboardStats :one
SELECT
    (SELECT COUNT(*) FROM blog_posts) AS total_posts,
    (SELECT COUNT(*) FROM blog_posts WHERE is_published = 1) AS published_posts,
    (SELECT COUNT(*) FROM projects) AS total_projects,
    (SELECT COUNT(*) FROM clients) AS total_clients,
    (SELECT COUNT(*) FROM testimonials) AS total_testimonials,
    (SELECT COUNT(*) FROM contact_submissions) AS total_submissions,
    (SELECT COUNT(*) FROM contact_submissions WHERE is_read = 0) AS unread_submissions,
    (SELECT COUNT(*) FROM users) AS total_users`

type DashboardStats struct {
	TotalPosts        int64
	PublishedPosts    int64
	TotalProjects     int64
	TotalClients      int64
	TotalTestimonials int64
	TotalSubmissions  int64
	UnreadSubmissions int64
	TotalUsers        int64
}

func (q *Queries) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	var i DashboardStats
	err := q.db.QueryRowContext(ctx, getDashboardStats).Scan(
		&i.TotalPosts,
		&i.PublishedPosts,
		&i.TotalProjects,
		&i.TotalClients,
		&i.TotalTestimonials,
		&i.TotalSubmissions,
		&i.UnreadSubmissions,
		&i.TotalUsers,
	)
	return i, err
}
