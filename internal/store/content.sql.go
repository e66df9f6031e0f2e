// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// ---- clients ----

const clientColumns = `id, name, logo, website, is_active, sort_order, created_at, updated_at`

func scanClient(row interface{ Scan(...interface{}) error }) (Client, error) {
	var i Client
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Logo,
		&i.Website,
		&i.IsActive,
		&i.SortOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createClient = `-- name: CreateClient :one
INSERT INTO clients (name, logo, website, is_active, sort_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + clientColumns

type CreateClientParams struct {
	Name      string
	Logo      string
	Website   string
	IsActive  bool
	SortOrder int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateClient(ctx context.Context, arg CreateClientParams) (Client, error) {
	row := q.db.QueryRowContext(ctx, createClient,
		arg.Name,
		arg.Logo,
		arg.Website,
		arg.IsActive,
		arg.SortOrder,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanClient(row)
}

const getClientByID = `-- name: GetClientByID :one
SELECT ` + clientColumns + ` FROM clients WHERE id = ?`

func (q *Queries) GetClientByID(ctx context.Context, id int64) (Client, error) {
	return scanClient(q.db.QueryRowContext(ctx, getClientByID, id))
}

const listClients = `-- name: ListClients :many
SELECT ` + clientColumns + ` FROM clients
WHERE (?1 IS NULL OR is_active = ?1)
ORDER BY sort_order, id`

func (q *Queries) ListClients(ctx context.Context, isActive sql.NullBool) ([]Client, error) {
	rows, err := q.db.QueryContext(ctx, listClients, isActive)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []Client{}
	for rows.Next() {
		i, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateClient = `-- name: UpdateClient :one
UPDATE clients SET name = ?, logo = ?, website = ?, is_active = ?, sort_order = ?, updated_at = ?
WHERE id = ?
RETURNING ` + clientColumns

type UpdateClientParams struct {
	Name      string
	Logo      string
	Website   string
	IsActive  bool
	SortOrder int64
	UpdatedAt time.Time
	ID        int64
}

func (q *Queries) UpdateClient(ctx context.Context, arg UpdateClientParams) (Client, error) {
	row := q.db.QueryRowContext(ctx, updateClient,
		arg.Name,
		arg.Logo,
		arg.Website,
		arg.IsActive,
		arg.SortOrder,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanClient(row)
}

const deleteClient = `-- name: DeleteClient :execrows
DELETE FROM clients WHERE id = ?`

func (q *Queries) DeleteClient(ctx context.Context, id int64) (int64, error) {
	return q.execAffected(ctx, deleteClient, id)
}

// ---- testimonials ----

const testimonialColumns = `id, name, position, company, content, avatar, rating, is_active, sort_order, created_at, updated_at`

func scanTestimonial(row interface{ Scan(...interface{}) error }) (Testimonial, error) {
	var i Testimonial
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Position,
		&i.Company,
		&i.Content,
		&i.Avatar,
		&i.Rating,
		&i.IsActive,
		&i.SortOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createTestimonial = `-- name: CreateTestimonial :one
INSERT INTO testimonials (name, position, company, content, avatar, rating, is_active, sort_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + testimonialColumns

type CreateTestimonialParams struct {
	Name      string
	Position  string
	Company   string
	Content   string
	Avatar    string
	Rating    int64
	IsActive  bool
	SortOrder int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateTestimonial(ctx context.Context, arg CreateTestimonialParams) (Testimonial, error) {
	row := q.db.QueryRowContext(ctx, createTestimonial,
		arg.Name,
		arg.Position,
		arg.Company,
		arg.Content,
		arg.Avatar,
		arg.Rating,
		arg.IsActive,
		arg.SortOrder,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanTestimonial(row)
}

const getTestimonialByID = `-- name: GetTestimonialByID :one
SELECT ` + testimonialColumns + ` FROM testimonials WHERE id = ?`

func (q *Queries) GetTestimonialByID(ctx context.Context, id int64) (Testimonial, error) {
	return scanTestimonial(q.db.QueryRowContext(ctx, getTestimonialByID, id))
}

const listTestimonials = `-- name: ListTestimonials :many
SELECT ` + testimonialColumns + ` FROM testimonials
WHERE (?1 IS NULL OR is_active = ?1)
ORDER BY sort_order, id`

func (q *Queries) ListTestimonials(ctx context.Context, isActive sql.NullBool) ([]Testimonial, error) {
	rows, err := q.db.QueryContext(ctx, listTestimonials, isActive)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []Testimonial{}
	for rows.Next() {
		i, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateTestimonial = `-- name: UpdateTestimonial :one
UPDATE testimonials SET
    name = ?, position = ?, company = ?, content = ?, avatar = ?, rating = ?,
    is_active = ?, sort_order = ?, updated_at = ?
WHERE id = ?
RETURNING ` + testimonialColumns

type UpdateTestimonialParams struct {
	Name      string
	Position  string
	Company   string
	Content   string
	Avatar    string
	Rating    int64
	IsActive  bool
	SortOrder int64
	UpdatedAt time.Time
	ID        int64
}

func (q *Queries) UpdateTestimonial(ctx context.Context, arg UpdateTestimonialParams) (Testimonial, error) {
	row := q.db.QueryRowContext(ctx, updateTestimonial,
		arg.Name,
		arg.Position,
		arg.Company,
		arg.Content,
		arg.Avatar,
		arg.Rating,
		arg.IsActive,
		arg.SortOrder,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanTestimonial(row)
}

const deleteTestimonial = `-- name: DeleteTestimonial :execrows
DELETE FROM testimonials WHERE id = ?`

func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) (int64, error) {
	return q.execAffected(ctx, deleteTestimonial, id)
}

// ---- contact submissions ----

const contactSubmissionColumns = `id, first_name, last_name, email, message, is_read, is_replied, created_at`

func scanContactSubmission(row interface{ Scan(...interface{}) error }) (ContactSubmission, error) {
	var i ContactSubmission
	err := row.Scan(
		&i.ID,
		&i.FirstName,
		&i.LastName,
		&i.Email,
		&i.Message,
		&i.IsRead,
		&i.IsReplied,
		&i.CreatedAt,
	)
	return i, err
}

const createContactSubmission = `-- name: CreateContactSubmission :one
INSERT INTO contact_submissions (first_name, last_name, email, message, is_read, is_replied, created_at)
VALUES (?, ?, ?, ?, 0, 0, ?)
RETURNING ` + contactSubmissionColumns

type CreateContactSubmissionParams struct {
	FirstName string
	LastName  string
	Email     string
	Message   string
	CreatedAt time.Time
}

func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (ContactSubmission, error) {
	row := q.db.QueryRowContext(ctx, createContactSubmission,
		arg.FirstName,
		arg.LastName,
		arg.Email,
		arg.Message,
		arg.CreatedAt,
	)
	return scanContactSubmission(row)
}

const getContactSubmissionByID = `-- name: GetContactSubmissionByID :one
SELECT ` + contactSubmissionColumns + ` FROM contact_submissions WHERE id = ?`

func (q *Queries) GetContactSubmissionByID(ctx context.Context, id int64) (ContactSubmission, error) {
	return scanContactSubmission(q.db.QueryRowContext(ctx, getContactSubmissionByID, id))
}

const listContactSubmissions = `-- name: ListContactSubmissions :many
SELECT ` + contactSubmissionColumns + ` FROM contact_submissions
WHERE (?1 IS NULL OR is_read = ?1)
ORDER BY created_at DESC, id DESC
LIMIT ?2 OFFSET ?3`

type ListContactSubmissionsParams struct {
	IsRead sql.NullBool
	Limit  int64
	Offset int64
}

func (q *Queries) ListContactSubmissions(ctx context.Context, arg ListContactSubmissionsParams) ([]ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, listContactSubmissions, arg.IsRead, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []ContactSubmission{}
	for rows.Next() {
		i, err := scanContactSubmission(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countContactSubmissions = `-- name: CountContactSubmissions :one
SELECT COUNT(*) FROM contact_submissions WHERE (?1 IS NULL OR is_read = ?1)`

func (q *Queries) CountContactSubmissions(ctx context.Context, isRead sql.NullBool) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countContactSubmissions, isRead).Scan(&count)
	return count, err
}

const updateContactSubmissionStatus = `-- name: UpdateContactSubmissionStatus :one
UPDATE contact_submissions SET is_read = ?, is_replied = ? WHERE id = ?
RETURNING ` + contactSubmissionColumns

func (q *Queries) UpdateContactSubmissionStatus(ctx context.Context, isRead, isReplied bool, id int64) (ContactSubmission, error) {
	return scanContactSubmission(q.db.QueryRowContext(ctx, updateContactSubmissionStatus, isRead, isReplied, id))
}

const deleteContactSubmission = `-- name: DeleteContactSubmission :execrows
DELETE FROM contact_submissions WHERE id = ?`

func (q *Queries) DeleteContactSubmission(ctx context.Context, id int64) (int64, error) {
	return q.execAffected(ctx, deleteContactSubmission, id)
}

// ---- site settings ----

const siteSettingColumns = `id, site_name, site_description, contact_email, contact_phone, address, logo, favicon,
footer_text, facebook_url, twitter_url, instagram_url, linkedin_url, github_url, updated_at`

func scanSiteSetting(row interface{ Scan(...interface{}) error }) (SiteSetting, error) {
	var i SiteSetting
	err := row.Scan(
		&i.ID,
		&i.SiteName,
		&i.SiteDescription,
		&i.ContactEmail,
		&i.ContactPhone,
		&i.Address,
		&i.Logo,
		&i.Favicon,
		&i.FooterText,
		&i.FacebookUrl,
		&i.TwitterUrl,
		&i.InstagramUrl,
		&i.LinkedinUrl,
		&i.GithubUrl,
		&i.UpdatedAt,
	)
	return i, err
}

const getSiteSettings = `-- name: GetSiteSettings :one
SELECT ` + siteSettingColumns + ` FROM site_settings WHERE id = 1`

func (q *Queries) GetSiteSettings(ctx context.Context) (SiteSetting, error) {
	return scanSiteSetting(q.db.QueryRowContext(ctx, getSiteSettings))
}

const upsertSiteSettings = `-- name: UpsertSiteSettings :one
INSERT INTO site_settings (
    id, site_name, site_description, contact_email, contact_phone, address, logo, favicon,
    footer_text, facebook_url, twitter_url, instagram_url, linkedin_url, github_url, updated_at
) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    site_name = excluded.site_name,
    site_description = excluded.site_description,
    contact_email = excluded.contact_email,
    contact_phone = excluded.contact_phone,
    address = excluded.address,
    logo = excluded.logo,
    favicon = excluded.favicon,
    footer_text = excluded.footer_text,
    facebook_url = excluded.facebook_url,
    twitter_url = excluded.twitter_url,
    instagram_url = excluded.instagram_url,
    linkedin_url = excluded.linkedin_url,
    github_url = excluded.github_url,
    updated_at = excluded.updated_at
RETURNING ` + siteSettingColumns

type UpsertSiteSettingsParams struct {
	SiteName        string
	SiteDescription string
	ContactEmail    string
	ContactPhone    string
	Address         string
	Logo            string
	Favicon         string
	FooterText      string
	FacebookUrl     string
	TwitterUrl      string
	InstagramUrl    string
	LinkedinUrl     string
	GithubUrl       string
	UpdatedAt       time.Time
}

func (q *Queries) UpsertSiteSettings(ctx context.Context, arg UpsertSiteSettingsParams) (SiteSetting, error) {
	row := q.db.QueryRowContext(ctx, upsertSiteSettings,
		arg.SiteName,
		arg.SiteDescription,
		arg.ContactEmail,
		arg.ContactPhone,
		arg.Address,
		arg.Logo,
		arg.Favicon,
		arg.FooterText,
		arg.FacebookUrl,
		arg.TwitterUrl,
		arg.InstagramUrl,
		arg.LinkedinUrl,
		arg.GithubUrl,
		arg.UpdatedAt,
	)
	return scanSiteSetting(row)
}
