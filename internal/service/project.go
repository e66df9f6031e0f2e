// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/studio-cms/internal/cache"
	"github.com/olegiv/studio-cms/internal/store"
	"github.com/olegiv/studio-cms/internal/util"
)

// UncategorizedName is the category that receives projects whose category
// is deleted with reassignment confirmed.
const UncategorizedName = "Uncategorized"

// ProjectInput is the editable state of a portfolio project.
type ProjectInput struct {
	Title       string
	Slug        string
	Description string
	Content     string
	Image       string
	Link        string
	Client      string
	Role        string
	Year        string
	CategoryID  *int64
	IsActive    bool
	IsFeatured  bool
	SortOrder   int64
}

// ProjectFilter narrows ListProjects. Zero CategoryID means any.
type ProjectFilter struct {
	Active     *bool
	Featured   *bool
	CategoryID int64
	Pagination
}

// ProjectList is one page of projects plus the unpaged total.
type ProjectList struct {
	Projects []store.Project `json:"projects"`
	Total    int64           `json:"total"`
}

// CategoryDeleteResult reports what DeleteCategory did.
type CategoryDeleteResult struct {
	Reassigned      int64
	ReassignedTo    int64
	CreatedFallback bool
}

// ProjectService manages projects and project categories. Category post
// counts change in the same transaction as the projects they count.
type ProjectService struct {
	db      *sql.DB
	queries *store.Queries
	cache   cache.Cache

	lists  *cache.TypedCache[ProjectList]
	bySlug *cache.TypedCache[store.Project]
}

// NewProjectService creates a ProjectService. c may be nil.
func NewProjectService(db *sql.DB, c cache.Cache, ttl time.Duration) *ProjectService {
	return &ProjectService{
		db:      db,
		queries: store.New(db),
		cache:   c,
		lists:   newTypedCache[ProjectList](c, CachePrefixProjects+"list:", ttl),
		bySlug:  newTypedCache[store.Project](c, CachePrefixProjects+"slug:", ttl),
	}
}

func (in *ProjectInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = util.Slugify(in.Title)
	}
	if in.CategoryID != nil && *in.CategoryID <= 0 {
		in.CategoryID = nil
	}

	verr := &ValidationError{}
	if in.Title == "" {
		verr.Add("title", "Title is required")
	} else if !util.IsValidSlug(in.Slug) {
		verr.Add("slug", "Slug must contain only lowercase letters, digits and hyphens")
	}
	return verr.OrNil()
}

// CreateProject creates a project and counts it in its category.
func (s *ProjectService) CreateProject(ctx context.Context, in ProjectInput) (store.Project, error) {
	if err := in.validate(); err != nil {
		return store.Project{}, err
	}

	var created store.Project
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		if err := checkProjectRefs(ctx, q, in, 0); err != nil {
			return err
		}
		now := time.Now().UTC()
		var err error
		created, err = q.CreateProject(ctx, store.CreateProjectParams{
			Title:       in.Title,
			Slug:        in.Slug,
			Description: in.Description,
			Content:     in.Content,
			Image:       in.Image,
			Link:        in.Link,
			Client:      in.Client,
			Role:        in.Role,
			Year:        in.Year,
			CategoryID:  util.NullInt64FromPtr(in.CategoryID),
			IsActive:    in.IsActive,
			IsFeatured:  in.IsFeatured,
			SortOrder:   in.SortOrder,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		return moveProjectCount(ctx, q, sql.NullInt64{}, created.CategoryID)
	})
	if err != nil {
		return store.Project{}, err
	}

	invalidate(ctx, s.cache, CachePrefixProjects)
	return created, nil
}

// UpdateProject replaces a project's fields. Changing its category moves
// one unit of post count from the old category to the new one.
func (s *ProjectService) UpdateProject(ctx context.Context, id int64, in ProjectInput) (store.Project, error) {
	if err := in.validate(); err != nil {
		return store.Project{}, err
	}

	var updated store.Project
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		existing, err := q.GetProjectByID(ctx, id)
		if err != nil {
			return lookupErr("project", err)
		}
		if err := checkProjectRefs(ctx, q, in, id); err != nil {
			return err
		}
		updated, err = q.UpdateProject(ctx, store.UpdateProjectParams{
			Title:       in.Title,
			Slug:        in.Slug,
			Description: in.Description,
			Content:     in.Content,
			Image:       in.Image,
			Link:        in.Link,
			Client:      in.Client,
			Role:        in.Role,
			Year:        in.Year,
			CategoryID:  util.NullInt64FromPtr(in.CategoryID),
			IsActive:    in.IsActive,
			IsFeatured:  in.IsFeatured,
			SortOrder:   in.SortOrder,
			UpdatedAt:   time.Now().UTC(),
			ID:          id,
		})
		if err != nil {
			return fmt.Errorf("updating project: %w", err)
		}
		return moveProjectCount(ctx, q, existing.CategoryID, updated.CategoryID)
	})
	if err != nil {
		return store.Project{}, err
	}

	invalidate(ctx, s.cache, CachePrefixProjects)
	return updated, nil
}

// DeleteProject removes a project and uncounts it from its category.
func (s *ProjectService) DeleteProject(ctx context.Context, id int64) error {
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		existing, err := q.GetProjectByID(ctx, id)
		if err != nil {
			return lookupErr("project", err)
		}
		if err := q.DeleteProject(ctx, id); err != nil {
			return fmt.Errorf("deleting project: %w", err)
		}
		return moveProjectCount(ctx, q, existing.CategoryID, sql.NullInt64{})
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, CachePrefixProjects)
	return nil
}

// GetProject returns a project by id.
func (s *ProjectService) GetProject(ctx context.Context, id int64) (store.Project, error) {
	p, err := s.queries.GetProjectByID(ctx, id)
	if err != nil {
		return store.Project{}, lookupErr("project", err)
	}
	return p, nil
}

// GetActiveProjectBySlug returns an active project. Inactive projects are
// reported as not found.
func (s *ProjectService) GetActiveProjectBySlug(ctx context.Context, slug string) (*store.Project, error) {
	return cached(ctx, s.bySlug, slug, func() (*store.Project, error) {
		p, err := s.queries.GetProjectBySlug(ctx, slug)
		if err != nil {
			return nil, lookupErr("project", err)
		}
		if !p.IsActive {
			return nil, notFound("project")
		}
		return &p, nil
	})
}

// ListProjects returns one page of projects ordered by sort order.
func (s *ProjectService) ListProjects(ctx context.Context, f ProjectFilter) (*ProjectList, error) {
	f.Pagination = f.Pagination.Normalize()
	active := util.NullBoolFromPtr(f.Active)
	featured := util.NullBoolFromPtr(f.Featured)

	total, err := s.queries.CountProjects(ctx, store.CountProjectsParams{
		IsActive:   active,
		IsFeatured: featured,
		CategoryID: f.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("counting projects: %w", err)
	}
	projects, err := s.queries.ListProjects(ctx, store.ListProjectsParams{
		IsActive:   active,
		IsFeatured: featured,
		CategoryID: f.CategoryID,
		Limit:      f.Limit(),
		Offset:     f.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return &ProjectList{Projects: projects, Total: total}, nil
}

// ListActiveProjects is ListProjects restricted to active projects and
// served from the cache when one is configured.
func (s *ProjectService) ListActiveProjects(ctx context.Context, f ProjectFilter) (*ProjectList, error) {
	active := true
	f.Active = &active
	f.Pagination = f.Pagination.Normalize()

	featured := "any"
	if f.Featured != nil {
		featured = strconv.FormatBool(*f.Featured)
	}
	key := fmt.Sprintf("%s|%d|%d|%d", featured, f.CategoryID, f.Page, f.PerPage)

	return cached(ctx, s.lists, key, func() (*ProjectList, error) {
		return s.ListProjects(ctx, f)
	})
}

func checkProjectRefs(ctx context.Context, q *store.Queries, in ProjectInput, excludeID int64) error {
	n, err := q.ProjectSlugExistsExcluding(ctx, in.Slug, excludeID)
	if err != nil {
		return fmt.Errorf("checking slug: %w", err)
	}
	if n > 0 {
		return NewValidationError("slug", "Slug already exists")
	}
	if in.CategoryID != nil {
		if _, err := q.GetProjectCategoryByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NewValidationError("categoryId", "Unknown category id")
			}
			return fmt.Errorf("loading category: %w", err)
		}
	}
	return nil
}

// moveProjectCount moves one project from category from to category to.
// Invalid values mean "no category".
func moveProjectCount(ctx context.Context, q *store.Queries, from, to sql.NullInt64) error {
	if from == to {
		return nil
	}
	if from.Valid {
		if err := q.AdjustProjectCategoryPostCount(ctx, -1, from.Int64); err != nil {
			return fmt.Errorf("decrementing category %d: %w", from.Int64, err)
		}
	}
	if to.Valid {
		if err := q.AdjustProjectCategoryPostCount(ctx, 1, to.Int64); err != nil {
			return fmt.Errorf("incrementing category %d: %w", to.Int64, err)
		}
	}
	return nil
}

// ---- categories ----

// ListCategories returns every project category ordered by name.
func (s *ProjectService) ListCategories(ctx context.Context) ([]store.ProjectCategory, error) {
	cats, err := s.queries.ListProjectCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing project categories: %w", err)
	}
	return cats, nil
}

// CreateCategory creates an empty project category. Names are unique
// regardless of case.
func (s *ProjectService) CreateCategory(ctx context.Context, name string) (store.ProjectCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.ProjectCategory{}, NewValidationError("name", "Name is required")
	}

	var created store.ProjectCategory
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		if err := checkCategoryName(ctx, q, name, 0, "name"); err != nil {
			return err
		}
		now := time.Now().UTC()
		var err error
		created, err = q.CreateProjectCategory(ctx, store.CreateProjectCategoryParams{
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		})
		return err
	})
	if err != nil {
		return store.ProjectCategory{}, err
	}

	invalidate(ctx, s.cache, CachePrefixProjects)
	return created, nil
}

// RenameCategory renames a category. oldName must equal the stored name
// exactly; the new name must not collide with another category ignoring
// case. Projects reference categories by id and follow the rename.
func (s *ProjectService) RenameCategory(ctx context.Context, id int64, oldName, newName string) (store.ProjectCategory, error) {
	newName = strings.TrimSpace(newName)
	verr := &ValidationError{}
	if oldName == "" {
		verr.Add("oldName", "Old name is required")
	}
	if newName == "" {
		verr.Add("newName", "New name is required")
	}
	if err := verr.OrNil(); err != nil {
		return store.ProjectCategory{}, err
	}

	var renamed store.ProjectCategory
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		current, err := q.GetProjectCategoryByID(ctx, id)
		if err != nil {
			return lookupErr("category", err)
		}
		if current.Name != oldName {
			return NewValidationError("oldName", "Old name does not match the current category name")
		}
		if err := checkCategoryName(ctx, q, newName, id, "newName"); err != nil {
			return err
		}
		renamed, err = q.RenameProjectCategory(ctx, newName, time.Now().UTC(), id)
		return err
	})
	if err != nil {
		return store.ProjectCategory{}, err
	}

	invalidate(ctx, s.cache, CachePrefixProjects)
	return renamed, nil
}

// DeleteCategory deletes a category. A category still used by projects is
// only deleted when moveToUncategorized is set; its projects then move to
// the Uncategorized category, which is created on demand. Otherwise a
// ConflictError is returned and nothing changes.
func (s *ProjectService) DeleteCategory(ctx context.Context, id int64, moveToUncategorized bool) (CategoryDeleteResult, error) {
	var result CategoryDeleteResult
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		category, err := q.GetProjectCategoryByID(ctx, id)
		if err != nil {
			return lookupErr("category", err)
		}

		inUse, err := q.CountProjectsByCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("counting category projects: %w", err)
		}

		if inUse > 0 {
			details := map[string]string{"projectCount": strconv.FormatInt(inUse, 10)}
			if !moveToUncategorized {
				return &ConflictError{
					Message: fmt.Sprintf("Category is used by %d project(s); confirm moving them to %s", inUse, UncategorizedName),
					Details: details,
				}
			}
			if strings.EqualFold(category.Name, UncategorizedName) {
				return &ConflictError{
					Message: UncategorizedName + " cannot be deleted while projects use it",
					Details: details,
				}
			}

			target, created, err := uncategorized(ctx, q)
			if err != nil {
				return err
			}
			moved, err := q.ReassignProjectsCategory(ctx, store.ReassignProjectsCategoryParams{
				ToCategoryID:   target.ID,
				UpdatedAt:      time.Now().UTC(),
				FromCategoryID: id,
			})
			if err != nil {
				return fmt.Errorf("reassigning projects: %w", err)
			}
			if err := q.AdjustProjectCategoryPostCount(ctx, moved, target.ID); err != nil {
				return fmt.Errorf("updating %s count: %w", UncategorizedName, err)
			}
			result = CategoryDeleteResult{Reassigned: moved, ReassignedTo: target.ID, CreatedFallback: created}
		}

		return q.DeleteProjectCategory(ctx, id)
	})
	if err != nil {
		return CategoryDeleteResult{}, err
	}

	invalidate(ctx, s.cache, CachePrefixProjects)
	return result, nil
}

func uncategorized(ctx context.Context, q *store.Queries) (store.ProjectCategory, bool, error) {
	existing, err := q.GetProjectCategoryByName(ctx, UncategorizedName)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return store.ProjectCategory{}, false, fmt.Errorf("loading %s: %w", UncategorizedName, err)
	}
	now := time.Now().UTC()
	created, err := q.CreateProjectCategory(ctx, store.CreateProjectCategoryParams{
		Name:      UncategorizedName,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return store.ProjectCategory{}, false, fmt.Errorf("creating %s: %w", UncategorizedName, err)
	}
	return created, true, nil
}

func checkCategoryName(ctx context.Context, q *store.Queries, name string, excludeID int64, field string) error {
	n, err := q.ProjectCategoryNameExistsExcluding(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("checking category name: %w", err)
	}
	if n > 0 {
		return NewValidationError(field, "A category with this name already exists")
	}
	return nil
}
