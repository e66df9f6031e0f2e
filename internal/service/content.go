// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/studio-cms/internal/cache"
	"github.com/olegiv/studio-cms/internal/store"
	"github.com/olegiv/studio-cms/internal/util"
)

var fieldValidator = validator.New()

func validEmail(s string) bool {
	return fieldValidator.Var(s, "required,email") == nil
}

// ClientInput is the editable state of a client logo entry.
type ClientInput struct {
	Name      string
	Logo      string
	Website   string
	IsActive  bool
	SortOrder int64
}

// TestimonialInput is the editable state of a testimonial.
type TestimonialInput struct {
	Name      string
	Position  string
	Company   string
	Content   string
	Avatar    string
	Rating    int64
	IsActive  bool
	SortOrder int64
}

// ContactInput is a message sent from the public contact form.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Message   string
}

// ContactFilter narrows ListContacts.
type ContactFilter struct {
	IsRead *bool
	Pagination
}

// ContactList is one page of submissions plus the unpaged total.
type ContactList struct {
	Submissions []store.ContactSubmission
	Total       int64
}

// SettingsInput is the full editable state of the site settings row.
type SettingsInput struct {
	SiteName        string
	SiteDescription string
	ContactEmail    string
	ContactPhone    string
	Address         string
	Logo            string
	Favicon         string
	FooterText      string
	FacebookURL     string
	TwitterURL      string
	InstagramURL    string
	LinkedinURL     string
	GithubURL       string
}

// ContentService manages the flat content types: clients, testimonials,
// contact submissions and site settings.
type ContentService struct {
	db      *sql.DB
	queries *store.Queries
	cache   cache.Cache

	clients      *cache.TypedCache[[]store.Client]
	testimonials *cache.TypedCache[[]store.Testimonial]
	settings     *cache.TypedCache[store.SiteSetting]
}

// NewContentService creates a ContentService. c may be nil.
func NewContentService(db *sql.DB, c cache.Cache, ttl time.Duration) *ContentService {
	return &ContentService{
		db:           db,
		queries:      store.New(db),
		cache:        c,
		clients:      newTypedCache[[]store.Client](c, CachePrefixClients, ttl),
		testimonials: newTypedCache[[]store.Testimonial](c, CachePrefixTestimonials, ttl),
		settings:     newTypedCache[store.SiteSetting](c, CachePrefixSettings, ttl),
	}
}

// ---- clients ----

func (in *ClientInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return NewValidationError("name", "Name is required")
	}
	return nil
}

// ListClients returns clients in sort order. A nil active returns all.
func (s *ContentService) ListClients(ctx context.Context, active *bool) ([]store.Client, error) {
	clients, err := s.queries.ListClients(ctx, util.NullBoolFromPtr(active))
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return clients, nil
}

// ListActiveClients returns active clients, cached.
func (s *ContentService) ListActiveClients(ctx context.Context) ([]store.Client, error) {
	list, err := cached(ctx, s.clients, "active", func() (*[]store.Client, error) {
		active := true
		clients, err := s.ListClients(ctx, &active)
		return &clients, err
	})
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// GetClient returns a client by id.
func (s *ContentService) GetClient(ctx context.Context, id int64) (store.Client, error) {
	c, err := s.queries.GetClientByID(ctx, id)
	if err != nil {
		return store.Client{}, lookupErr("client", err)
	}
	return c, nil
}

// CreateClient adds a client.
func (s *ContentService) CreateClient(ctx context.Context, in ClientInput) (store.Client, error) {
	if err := in.validate(); err != nil {
		return store.Client{}, err
	}
	now := time.Now().UTC()
	c, err := s.queries.CreateClient(ctx, store.CreateClientParams{
		Name:      in.Name,
		Logo:      in.Logo,
		Website:   in.Website,
		IsActive:  in.IsActive,
		SortOrder: in.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return store.Client{}, fmt.Errorf("creating client: %w", err)
	}
	invalidate(ctx, s.cache, CachePrefixClients)
	return c, nil
}

// UpdateClient replaces a client's fields.
func (s *ContentService) UpdateClient(ctx context.Context, id int64, in ClientInput) (store.Client, error) {
	if err := in.validate(); err != nil {
		return store.Client{}, err
	}
	c, err := s.queries.UpdateClient(ctx, store.UpdateClientParams{
		Name:      in.Name,
		Logo:      in.Logo,
		Website:   in.Website,
		IsActive:  in.IsActive,
		SortOrder: in.SortOrder,
		UpdatedAt: time.Now().UTC(),
		ID:        id,
	})
	if err != nil {
		return store.Client{}, lookupErr("client", err)
	}
	invalidate(ctx, s.cache, CachePrefixClients)
	return c, nil
}

// DeleteClient removes a client.
func (s *ContentService) DeleteClient(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteClient(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	if n == 0 {
		return notFound("client")
	}
	invalidate(ctx, s.cache, CachePrefixClients)
	return nil
}

// ---- testimonials ----

func (in *TestimonialInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Content = strings.TrimSpace(in.Content)
	if in.Rating == 0 {
		in.Rating = 5
	}

	verr := &ValidationError{}
	if in.Name == "" {
		verr.Add("name", "Name is required")
	}
	if in.Content == "" {
		verr.Add("content", "Content is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		verr.Add("rating", "Rating must be between 1 and 5")
	}
	return verr.OrNil()
}

// ListTestimonials returns testimonials in sort order. A nil active returns
// all.
func (s *ContentService) ListTestimonials(ctx context.Context, active *bool) ([]store.Testimonial, error) {
	items, err := s.queries.ListTestimonials(ctx, util.NullBoolFromPtr(active))
	if err != nil {
		return nil, fmt.Errorf("listing testimonials: %w", err)
	}
	return items, nil
}

// ListActiveTestimonials returns active testimonials, cached.
func (s *ContentService) ListActiveTestimonials(ctx context.Context) ([]store.Testimonial, error) {
	list, err := cached(ctx, s.testimonials, "active", func() (*[]store.Testimonial, error) {
		active := true
		items, err := s.ListTestimonials(ctx, &active)
		return &items, err
	})
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// GetTestimonial returns a testimonial by id.
func (s *ContentService) GetTestimonial(ctx context.Context, id int64) (store.Testimonial, error) {
	t, err := s.queries.GetTestimonialByID(ctx, id)
	if err != nil {
		return store.Testimonial{}, lookupErr("testimonial", err)
	}
	return t, nil
}

// CreateTestimonial adds a testimonial. A zero rating means 5.
func (s *ContentService) CreateTestimonial(ctx context.Context, in TestimonialInput) (store.Testimonial, error) {
	if err := in.validate(); err != nil {
		return store.Testimonial{}, err
	}
	now := time.Now().UTC()
	t, err := s.queries.CreateTestimonial(ctx, store.CreateTestimonialParams{
		Name:      in.Name,
		Position:  in.Position,
		Company:   in.Company,
		Content:   in.Content,
		Avatar:    in.Avatar,
		Rating:    in.Rating,
		IsActive:  in.IsActive,
		SortOrder: in.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return store.Testimonial{}, fmt.Errorf("creating testimonial: %w", err)
	}
	invalidate(ctx, s.cache, CachePrefixTestimonials)
	return t, nil
}

// UpdateTestimonial replaces a testimonial's fields.
func (s *ContentService) UpdateTestimonial(ctx context.Context, id int64, in TestimonialInput) (store.Testimonial, error) {
	if err := in.validate(); err != nil {
		return store.Testimonial{}, err
	}
	t, err := s.queries.UpdateTestimonial(ctx, store.UpdateTestimonialParams{
		Name:      in.Name,
		Position:  in.Position,
		Company:   in.Company,
		Content:   in.Content,
		Avatar:    in.Avatar,
		Rating:    in.Rating,
		IsActive:  in.IsActive,
		SortOrder: in.SortOrder,
		UpdatedAt: time.Now().UTC(),
		ID:        id,
	})
	if err != nil {
		return store.Testimonial{}, lookupErr("testimonial", err)
	}
	invalidate(ctx, s.cache, CachePrefixTestimonials)
	return t, nil
}

// DeleteTestimonial removes a testimonial.
func (s *ContentService) DeleteTestimonial(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteTestimonial(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting testimonial: %w", err)
	}
	if n == 0 {
		return notFound("testimonial")
	}
	invalidate(ctx, s.cache, CachePrefixTestimonials)
	return nil
}

// ---- contact submissions ----

// SubmitContact stores a contact form message. Markup is stripped from the
// message before it is saved.
func (s *ContentService) SubmitContact(ctx context.Context, in ContactInput) (store.ContactSubmission, error) {
	in.FirstName = strings.TrimSpace(util.StripTags(in.FirstName))
	in.LastName = strings.TrimSpace(util.StripTags(in.LastName))
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(util.StripTags(in.Message))

	verr := &ValidationError{}
	if in.FirstName == "" {
		verr.Add("firstName", "First name is required")
	}
	if in.LastName == "" {
		verr.Add("lastName", "Last name is required")
	}
	if !validEmail(in.Email) {
		verr.Add("email", "A valid email address is required")
	}
	if in.Message == "" {
		verr.Add("message", "Message is required")
	}
	if err := verr.OrNil(); err != nil {
		return store.ContactSubmission{}, err
	}

	sub, err := s.queries.CreateContactSubmission(ctx, store.CreateContactSubmissionParams{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return store.ContactSubmission{}, fmt.Errorf("saving contact submission: %w", err)
	}
	return sub, nil
}

// ListContacts returns one page of submissions, newest first.
func (s *ContentService) ListContacts(ctx context.Context, f ContactFilter) (*ContactList, error) {
	f.Pagination = f.Pagination.Normalize()
	isRead := util.NullBoolFromPtr(f.IsRead)

	total, err := s.queries.CountContactSubmissions(ctx, isRead)
	if err != nil {
		return nil, fmt.Errorf("counting contact submissions: %w", err)
	}
	subs, err := s.queries.ListContactSubmissions(ctx, store.ListContactSubmissionsParams{
		IsRead: isRead,
		Limit:  f.Limit(),
		Offset: f.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("listing contact submissions: %w", err)
	}
	return &ContactList{Submissions: subs, Total: total}, nil
}

// GetContact returns a submission by id.
func (s *ContentService) GetContact(ctx context.Context, id int64) (store.ContactSubmission, error) {
	sub, err := s.queries.GetContactSubmissionByID(ctx, id)
	if err != nil {
		return store.ContactSubmission{}, lookupErr("contact submission", err)
	}
	return sub, nil
}

// UpdateContactStatus sets the read and replied flags. Nil leaves a flag
// unchanged.
func (s *ContentService) UpdateContactStatus(ctx context.Context, id int64, isRead, isReplied *bool) (store.ContactSubmission, error) {
	var updated store.ContactSubmission
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		current, err := q.GetContactSubmissionByID(ctx, id)
		if err != nil {
			return lookupErr("contact submission", err)
		}
		read, replied := current.IsRead, current.IsReplied
		if isRead != nil {
			read = *isRead
		}
		if isReplied != nil {
			replied = *isReplied
		}
		// A replied message has necessarily been read.
		if replied {
			read = true
		}
		updated, err = q.UpdateContactSubmissionStatus(ctx, read, replied, id)
		return err
	})
	return updated, err
}

// DeleteContact removes a submission.
func (s *ContentService) DeleteContact(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteContactSubmission(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting contact submission: %w", err)
	}
	if n == 0 {
		return notFound("contact submission")
	}
	return nil
}

// ---- settings ----

// GetSettings returns the site settings row, cached.
func (s *ContentService) GetSettings(ctx context.Context) (*store.SiteSetting, error) {
	return cached(ctx, s.settings, "site", func() (*store.SiteSetting, error) {
		st, err := s.queries.GetSiteSettings(ctx)
		if err != nil {
			return nil, lookupErr("site settings", err)
		}
		return &st, nil
	})
}

// UpdateSettings overwrites the site settings row.
func (s *ContentService) UpdateSettings(ctx context.Context, in SettingsInput) (store.SiteSetting, error) {
	in.SiteName = strings.TrimSpace(in.SiteName)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)

	verr := &ValidationError{}
	if in.SiteName == "" {
		verr.Add("siteName", "Site name is required")
	}
	if in.ContactEmail != "" {
		if !validEmail(in.ContactEmail) {
			verr.Add("contactEmail", "Contact email is not a valid address")
		}
	}
	if err := verr.OrNil(); err != nil {
		return store.SiteSetting{}, err
	}

	st, err := s.queries.UpsertSiteSettings(ctx, store.UpsertSiteSettingsParams{
		SiteName:        in.SiteName,
		SiteDescription: in.SiteDescription,
		ContactEmail:    in.ContactEmail,
		ContactPhone:    in.ContactPhone,
		Address:         in.Address,
		Logo:            in.Logo,
		Favicon:         in.Favicon,
		FooterText:      in.FooterText,
		FacebookUrl:     in.FacebookURL,
		TwitterUrl:      in.TwitterURL,
		InstagramUrl:    in.InstagramURL,
		LinkedinUrl:     in.LinkedinURL,
		GithubUrl:       in.GithubURL,
		UpdatedAt:       time.Now().UTC(),
	})
	if err != nil {
		return store.SiteSetting{}, fmt.Errorf("saving site settings: %w", err)
	}
	invalidate(ctx, s.cache, CachePrefixSettings)
	return st, nil
}
