// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/studio-cms/internal/logging"
	"github.com/olegiv/studio-cms/internal/service"
)

// ClientRequest is the body of the client logo endpoints.
type ClientRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Logo      string `json:"logo"`
	Website   string `json:"website" validate:"omitempty,url"`
	IsActive  *bool  `json:"isActive"`
	SortOrder int64  `json:"sortOrder"`
}

func (req ClientRequest) input() service.ClientInput {
	return service.ClientInput{
		Name:      req.Name,
		Logo:      req.Logo,
		Website:   req.Website,
		IsActive:  boolValue(req.IsActive, true),
		SortOrder: req.SortOrder,
	}
}

// TestimonialRequest is the body of the testimonial endpoints. A zero
// rating is stored as 5.
type TestimonialRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Position  string `json:"position" validate:"max=200"`
	Company   string `json:"company" validate:"max=200"`
	Content   string `json:"content" validate:"required"`
	Avatar    string `json:"avatar"`
	Rating    int64  `json:"rating" validate:"gte=0,max=5"`
	IsActive  *bool  `json:"isActive"`
	SortOrder int64  `json:"sortOrder"`
}

func (req TestimonialRequest) input() service.TestimonialInput {
	return service.TestimonialInput{
		Name:      req.Name,
		Position:  req.Position,
		Company:   req.Company,
		Content:   req.Content,
		Avatar:    req.Avatar,
		Rating:    req.Rating,
		IsActive:  boolValue(req.IsActive, true),
		SortOrder: req.SortOrder,
	}
}

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Message   string `json:"message" validate:"required,max=5000"`
}

// ContactStatusRequest is the body of PATCH /api/admin/contact-submissions/{id}.
// Omitted flags are left unchanged.
type ContactStatusRequest struct {
	IsRead    *bool `json:"isRead"`
	IsReplied *bool `json:"isReplied"`
}

// SettingsRequest is the body of PUT /api/admin/settings.
type SettingsRequest struct {
	SiteName        string `json:"siteName" validate:"required,max=200"`
	SiteDescription string `json:"siteDescription" validate:"max=1000"`
	ContactEmail    string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone    string `json:"contactPhone" validate:"max=50"`
	Address         string `json:"address" validate:"max=500"`
	Logo            string `json:"logo"`
	Favicon         string `json:"favicon"`
	FooterText      string `json:"footerText" validate:"max=1000"`
	FacebookURL     string `json:"facebookUrl" validate:"omitempty,url"`
	TwitterURL      string `json:"twitterUrl" validate:"omitempty,url"`
	InstagramURL    string `json:"instagramUrl" validate:"omitempty,url"`
	LinkedinURL     string `json:"linkedinUrl" validate:"omitempty,url"`
	GithubURL       string `json:"githubUrl" validate:"omitempty,url"`
}

// ============================================================================
// Clients
// ============================================================================

// ListActiveClients handles GET /api/clients.
func (h *Handler) ListActiveClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.content.ListActiveClients(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list clients")
		return
	}
	out := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, clientResponse(c))
	}
	WriteSuccess(w, out, nil)
}

// ListClients handles GET /api/admin/clients with an optional ?active filter.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	active, ok := queryBool(w, r, "active")
	if !ok {
		return
	}
	clients, err := h.content.ListClients(r.Context(), active)
	if err != nil {
		writeServiceError(w, r, err, "failed to list clients")
		return
	}
	out := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, clientResponse(c))
	}
	WriteSuccess(w, out, nil)
}

// GetClient handles GET /api/admin/clients/{id}.
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	c, err := h.content.GetClient(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to get client")
		return
	}
	WriteSuccess(w, clientResponse(c), nil)
}

// CreateClient handles POST /api/admin/clients.
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.content.CreateClient(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, r, err, "failed to create client")
		return
	}
	WriteCreated(w, clientResponse(c))
}

// UpdateClient handles PUT /api/admin/clients/{id}.
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req ClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.content.UpdateClient(r.Context(), id, req.input())
	if err != nil {
		writeServiceError(w, r, err, "failed to update client")
		return
	}
	WriteSuccess(w, clientResponse(c), nil)
}

// DeleteClient handles DELETE /api/admin/clients/{id}.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, h.content.DeleteClient, "failed to delete client")
}

// ============================================================================
// Testimonials
// ============================================================================

// ListActiveTestimonials handles GET /api/testimonials.
func (h *Handler) ListActiveTestimonials(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.ListActiveTestimonials(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list testimonials")
		return
	}
	out := make([]TestimonialResponse, 0, len(items))
	for _, t := range items {
		out = append(out, testimonialResponse(t))
	}
	WriteSuccess(w, out, nil)
}

// ListTestimonials handles GET /api/admin/testimonials.
func (h *Handler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	active, ok := queryBool(w, r, "active")
	if !ok {
		return
	}
	items, err := h.content.ListTestimonials(r.Context(), active)
	if err != nil {
		writeServiceError(w, r, err, "failed to list testimonials")
		return
	}
	out := make([]TestimonialResponse, 0, len(items))
	for _, t := range items {
		out = append(out, testimonialResponse(t))
	}
	WriteSuccess(w, out, nil)
}

// GetTestimonial handles GET /api/admin/testimonials/{id}.
func (h *Handler) GetTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	t, err := h.content.GetTestimonial(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to get testimonial")
		return
	}
	WriteSuccess(w, testimonialResponse(t), nil)
}

// CreateTestimonial handles POST /api/admin/testimonials.
func (h *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req TestimonialRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.content.CreateTestimonial(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, r, err, "failed to create testimonial")
		return
	}
	WriteCreated(w, testimonialResponse(t))
}

// UpdateTestimonial handles PUT /api/admin/testimonials/{id}.
func (h *Handler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req TestimonialRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.content.UpdateTestimonial(r.Context(), id, req.input())
	if err != nil {
		writeServiceError(w, r, err, "failed to update testimonial")
		return
	}
	WriteSuccess(w, testimonialResponse(t), nil)
}

// DeleteTestimonial handles DELETE /api/admin/testimonials/{id}.
func (h *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, h.content.DeleteTestimonial, "failed to delete testimonial")
}

// ============================================================================
// Contact submissions
// ============================================================================

// SubmitContact handles POST /api/contact.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sub, err := h.content.SubmitContact(r.Context(), service.ContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Message:   req.Message,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to save contact submission")
		return
	}
	WriteCreated(w, map[string]any{"id": sub.ID, "createdAt": sub.CreatedAt})
}

// ListContacts handles GET /api/admin/contact-submissions with optional ?isRead.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	isRead, ok := queryBool(w, r, "isRead")
	if !ok {
		return
	}
	f := service.ContactFilter{IsRead: isRead, Pagination: parsePagination(r)}
	list, err := h.content.ListContacts(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err, "failed to list contact submissions")
		return
	}
	out := make([]ContactResponse, 0, len(list.Submissions))
	for _, s := range list.Submissions {
		out = append(out, contactResponse(s))
	}
	WriteSuccess(w, out, pageMeta(f.Pagination, list.Total))
}

// GetContact handles GET /api/admin/contact-submissions/{id}.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	sub, err := h.content.GetContact(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to get contact submission")
		return
	}
	WriteSuccess(w, contactResponse(sub), nil)
}

// UpdateContactStatus handles PATCH /api/admin/contact-submissions/{id}.
func (h *Handler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req ContactStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sub, err := h.content.UpdateContactStatus(r.Context(), id, req.IsRead, req.IsReplied)
	if err != nil {
		writeServiceError(w, r, err, "failed to update contact submission")
		return
	}
	WriteSuccess(w, contactResponse(sub), nil)
}

// DeleteContact handles DELETE /api/admin/contact-submissions/{id}.
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, h.content.DeleteContact, "failed to delete contact submission")
}

// ============================================================================
// Settings
// ============================================================================

// GetSettings handles GET /api/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.content.GetSettings(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to get site settings")
		return
	}
	WriteSuccess(w, settingsResponse(*st), nil)
}

// UpdateSettings handles PUT /api/admin/settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	st, err := h.content.UpdateSettings(r.Context(), service.SettingsInput{
		SiteName:        req.SiteName,
		SiteDescription: req.SiteDescription,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		Address:         req.Address,
		Logo:            req.Logo,
		Favicon:         req.Favicon,
		FooterText:      req.FooterText,
		FacebookURL:     req.FacebookURL,
		TwitterURL:      req.TwitterURL,
		InstagramURL:    req.InstagramURL,
		LinkedinURL:     req.LinkedinURL,
		GithubURL:       req.GithubURL,
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to update site settings")
		return
	}
	h.audit(r, logging.CategorySettings, "Site settings updated", nil)
	WriteSuccess(w, settingsResponse(st), nil)
}
