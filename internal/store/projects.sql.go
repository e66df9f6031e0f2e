// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const projectColumns = `id, title, slug, description, content, image, link, client, role, year,
category_id, is_active, is_featured, sort_order, created_at, updated_at`

func scanProject(row interface{ Scan(...interface{}) error }) (Project, error) {
	var i Project
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Description,
		&i.Content,
		&i.Image,
		&i.Link,
		&i.Client,
		&i.Role,
		&i.Year,
		&i.CategoryID,
		&i.IsActive,
		&i.IsFeatured,
		&i.SortOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createProject = `-- name: CreateProject :one
INSERT INTO projects (
    title, slug, description, content, image, link, client, role, year,
    category_id, is_active, is_featured, sort_order, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + projectColumns

type CreateProjectParams struct {
	Title       string
	Slug        string
	Description string
	Content     string
	Image       string
	Link        string
	Client      string
	Role        string
	Year        string
	CategoryID  sql.NullInt64
	IsActive    bool
	IsFeatured  bool
	SortOrder   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := q.db.QueryRowContext(ctx, createProject,
		arg.Title,
		arg.Slug,
		arg.Description,
		arg.Content,
		arg.Image,
		arg.Link,
		arg.Client,
		arg.Role,
		arg.Year,
		arg.CategoryID,
		arg.IsActive,
		arg.IsFeatured,
		arg.SortOrder,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanProject(row)
}

const getProjectByID = `-- name: GetProjectByID :one
SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

func (q *Queries) GetProjectByID(ctx context.Context, id int64) (Project, error) {
	return scanProject(q.db.QueryRowContext(ctx, getProjectByID, id))
}

const getProjectBySlug = `-- name: GetProjectBySlug :one
SELECT ` + projectColumns + ` FROM projects WHERE slug = ?`

func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (Project, error) {
	return scanProject(q.db.QueryRowContext(ctx, getProjectBySlug, slug))
}

const projectSlugExistsExcluding = `-- name: ProjectSlugExistsExcluding :one
SELECT COUNT(*) FROM projects WHERE slug = ? AND id != ?`

func (q *Queries) ProjectSlugExistsExcluding(ctx context.Context, slug string, id int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, projectSlugExistsExcluding, slug, id).Scan(&count)
	return count, err
}

const updateProject = `-- name: UpdateProject :one
UPDATE projects SET
    title = ?, slug = ?, description = ?, content = ?, image = ?, link = ?,
    client = ?, role = ?, year = ?, category_id = ?, is_active = ?, is_featured = ?,
    sort_order = ?, updated_at = ?
WHERE id = ?
RETURNING ` + projectColumns

type UpdateProjectParams struct {
	Title       string
	Slug        string
	Description string
	Content     string
	Image       string
	Link        string
	Client      string
	Role        string
	Year        string
	CategoryID  sql.NullInt64
	IsActive    bool
	IsFeatured  bool
	SortOrder   int64
	UpdatedAt   time.Time
	ID          int64
}

func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (Project, error) {
	row := q.db.QueryRowContext(ctx, updateProject,
		arg.Title,
		arg.Slug,
		arg.Description,
		arg.Content,
		arg.Image,
		arg.Link,
		arg.Client,
		arg.Role,
		arg.Year,
		arg.CategoryID,
		arg.IsActive,
		arg.IsFeatured,
		arg.SortOrder,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanProject(row)
}

const deleteProject = `-- name: DeleteProject :exec
DELETE FROM projects WHERE id = ?`

func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteProject, id)
	return err
}

// projectFilter parameters: ?1 active, ?2 featured, ?3 category id (0 = any).
const projectFilter = `
WHERE (?1 IS NULL OR is_active = ?1)
  AND (?2 IS NULL OR is_featured = ?2)
  AND (?3 = 0 OR category_id = ?3)`

const listProjects = `-- name: ListProjects :many
SELECT ` + projectColumns + ` FROM projects` + projectFilter + `
ORDER BY sort_order, created_at DESC, id DESC
LIMIT ?4 OFFSET ?5`

type ListProjectsParams struct {
	IsActive   sql.NullBool
	IsFeatured sql.NullBool
	CategoryID int64
	Limit      int64
	Offset     int64
}

func (q *Queries) ListProjects(ctx context.Context, arg ListProjectsParams) ([]Project, error) {
	rows, err := q.db.QueryContext(ctx, listProjects,
		arg.IsActive,
		arg.IsFeatured,
		arg.CategoryID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []Project{}
	for rows.Next() {
		i, err := scanProject(rows)
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

const countProjects = `-- name: CountProjects :one
SELECT COUNT(*) FROM projects` + projectFilter

type CountProjectsParams struct {
	IsActive   sql.NullBool
	IsFeatured sql.NullBool
	CategoryID int64
}

func (q *Queries) CountProjects(ctx context.Context, arg CountProjectsParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countProjects, arg.IsActive, arg.IsFeatured, arg.CategoryID).Scan(&count)
	return count, err
}

const countProjectsByCategory = `-- name: CountProjectsByCategory :one
SELECT COUNT(*) FROM projects WHERE category_id = ?`

func (q *Queries) CountProjectsByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countProjectsByCategory, categoryID).Scan(&count)
	return count, err
}

const reassignProjectsCategory = `-- name: ReassignProjectsCategory :execrows
UPDATE projects SET category_id = ?, updated_at = ? WHERE category_id = ?`

type ReassignProjectsCategoryParams struct {
	ToCategoryID   int64
	UpdatedAt      time.Time
	FromCategoryID int64
}

func (q *Queries) ReassignProjectsCategory(ctx context.Context, arg ReassignProjectsCategoryParams) (int64, error) {
	return q.execAffected(ctx, reassignProjectsCategory, arg.ToCategoryID, arg.UpdatedAt, arg.FromCategoryID)
}

// ---- project categories ----

const projectCategoryColumns = `id, name, post_count, created_at, updated_at`

func scanProjectCategory(row interface{ Scan(...interface{}) error }) (ProjectCategory, error) {
	var i ProjectCategory
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.PostCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createProjectCategory = `-- name: CreateProjectCategory :one
INSERT INTO project_categories (name, post_count, created_at, updated_at)
VALUES (?, 0, ?, ?)
RETURNING ` + projectCategoryColumns

type CreateProjectCategoryParams struct {
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateProjectCategory(ctx context.Context, arg CreateProjectCategoryParams) (ProjectCategory, error) {
	row := q.db.QueryRowContext(ctx, createProjectCategory, arg.Name, arg.CreatedAt, arg.UpdatedAt)
	return scanProjectCategory(row)
}

const getProjectCategoryByID = `-- name: GetProjectCategoryByID :one
SELECT ` + projectCategoryColumns + ` FROM project_categories WHERE id = ?`

func (q *Queries) GetProjectCategoryByID(ctx context.Context, id int64) (ProjectCategory, error) {
	return scanProjectCategory(q.db.QueryRowContext(ctx, getProjectCategoryByID, id))
}

const getProjectCategoryByName = `-- name: GetProjectCategoryByName :one
SELECT ` + projectCategoryColumns + ` FROM project_categories WHERE LOWER(name) = LOWER(?)`

// GetProjectCategoryByName matches names ignoring case.
func (q *Queries) GetProjectCategoryByName(ctx context.Context, name string) (ProjectCategory, error) {
	return scanProjectCategory(q.db.QueryRowContext(ctx, getProjectCategoryByName, name))
}

const listProjectCategories = `-- name: ListProjectCategories :many
SELECT ` + projectCategoryColumns + ` FROM project_categories ORDER BY name`

func (q *Queries) ListProjectCategories(ctx context.Context) ([]ProjectCategory, error) {
	rows, err := q.db.QueryContext(ctx, listProjectCategories)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []ProjectCategory{}
	for rows.Next() {
		i, err := scanProjectCategory(rows)
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

const projectCategoryNameExistsExcluding = `-- name: ProjectCategoryNameExistsExcluding :one
SELECT COUNT(*) FROM project_categories WHERE LOWER(name) = LOWER(?) AND id != ?`

// ProjectCategoryNameExistsExcluding compares names case-insensitively.
func (q *Queries) ProjectCategoryNameExistsExcluding(ctx context.Context, name string, id int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, projectCategoryNameExistsExcluding, name, id).Scan(&count)
	return count, err
}

const renameProjectCategory = `-- name: RenameProjectCategory :one
UPDATE project_categories SET name = ?, updated_at = ? WHERE id = ?
RETURNING ` + projectCategoryColumns

func (q *Queries) RenameProjectCategory(ctx context.Context, name string, updatedAt time.Time, id int64) (ProjectCategory, error) {
	return scanProjectCategory(q.db.QueryRowContext(ctx, renameProjectCategory, name, updatedAt, id))
}

const deleteProjectCategory = `-- name: DeleteProjectCategory :exec
DELETE FROM project_categories WHERE id = ?`

func (q *Queries) DeleteProjectCategory(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteProjectCategory, id)
	return err
}

const adjustProjectCategoryPostCount = `-- name: AdjustProjectCategoryPostCount :exec
UPDATE project_categories SET post_count = MAX(post_count + ?, 0) WHERE id = ?`

// AdjustProjectCategoryPostCount adds delta (which may be negative) to the
// category's counter, clamping at zero.
func (q *Queries) AdjustProjectCategoryPostCount(ctx context.Context, delta, id int64) error {
	_, err := q.db.ExecContext(ctx, adjustProjectCategoryPostCount, delta, id)
	return err
}

const recountProjectCategoryPostCounts = `-- name: RecountProjectCategoryPostCounts :execrows
UPDATE project_categories
SET post_count = (SELECT COUNT(*) FROM projects p WHERE p.category_id = project_categories.id)
WHERE post_count != (SELECT COUNT(*) FROM projects p WHERE p.category_id = project_categories.id)`

func (q *Queries) RecountProjectCategoryPostCounts(ctx context.Context) (int64, error) {
	return q.execAffected(ctx, recountProjectCategoryPostCounts)
}
