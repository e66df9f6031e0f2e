// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/studio-cms/internal/logging"
	"github.com/olegiv/studio-cms/internal/service"
)

// defaultSliderPage is served when GET /api/hero-slider has no ?page.
const defaultSliderPage = "home"

// SlideRequest is one slide inside a SliderRequest.
type SlideRequest struct {
	BackgroundImage string   `json:"backgroundImage" validate:"required"`
	WelcomeText     string   `json:"welcomeText" validate:"max=200"`
	TitleLines      []string `json:"titleLines" validate:"len=3,dive,max=200"`
	Description     string   `json:"description"`
	ButtonText      string   `json:"buttonText" validate:"max=100"`
	ButtonLink      string   `json:"buttonLink"`
	ButtonType      string   `json:"buttonType" validate:"omitempty,oneof=primary secondary outline"`
	IsActive        *bool    `json:"isActive"`
}

// SliderRequest is the body of POST and PUT /api/admin/hero-slider. PUT
// identifies the slider by ID.
type SliderRequest struct {
	ID            int64          `json:"id" validate:"omitempty,gt=0"`
	Page          string         `json:"page" validate:"required,max=50"`
	Autoplay      *bool          `json:"autoplay"`
	AutoplaySpeed int64          `json:"autoplaySpeed" validate:"gte=0"`
	ShowDots      *bool          `json:"showDots"`
	ShowArrows    *bool          `json:"showArrows"`
	IsActive      *bool          `json:"isActive"`
	Slides        []SlideRequest `json:"slides" validate:"required,min=1,dive"`
}

func (req SliderRequest) input() service.SliderInput {
	in := service.SliderInput{
		Page:          req.Page,
		Autoplay:      boolValue(req.Autoplay, true),
		AutoplaySpeed: req.AutoplaySpeed,
		ShowDots:      boolValue(req.ShowDots, true),
		ShowArrows:    boolValue(req.ShowArrows, true),
		IsActive:      boolValue(req.IsActive, true),
		Slides:        make([]service.SlideInput, 0, len(req.Slides)),
	}
	for _, s := range req.Slides {
		in.Slides = append(in.Slides, service.SlideInput{
			BackgroundImage: s.BackgroundImage,
			WelcomeText:     s.WelcomeText,
			TitleLines:      s.TitleLines,
			Description:     s.Description,
			ButtonText:      s.ButtonText,
			ButtonLink:      s.ButtonLink,
			ButtonType:      s.ButtonType,
			IsActive:        boolValue(s.IsActive, true),
		})
	}
	return in
}

// GetHeroSlider handles GET /api/hero-slider. Only the active slides of an
// active slider are returned.
func (h *Handler) GetHeroSlider(w http.ResponseWriter, r *http.Request) {
	page := r.URL.Query().Get("page")
	if page == "" {
		page = defaultSliderPage
	}
	detail, err := h.sliders.GetByPage(r.Context(), page)
	if err != nil {
		writeServiceError(w, r, err, "failed to get hero slider")
		return
	}
	WriteSuccess(w, sliderResponse(detail), nil)
}

// ListHeroSliders handles GET /api/admin/hero-slider.
func (h *Handler) ListHeroSliders(w http.ResponseWriter, r *http.Request) {
	sliders, err := h.sliders.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list hero sliders")
		return
	}
	out := make([]SliderResponse, 0, len(sliders))
	for i := range sliders {
		out = append(out, sliderResponse(&sliders[i]))
	}
	WriteSuccess(w, out, nil)
}

// CreateHeroSlider handles POST /api/admin/hero-slider.
func (h *Handler) CreateHeroSlider(w http.ResponseWriter, r *http.Request) {
	var req SliderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	detail, err := h.sliders.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, r, err, "failed to create hero slider")
		return
	}
	h.audit(r, logging.CategoryHeroSlider, "Hero slider created for page "+detail.Slider.Page,
		map[string]any{"slider_id": detail.Slider.ID, "slides": len(detail.Slides)})
	WriteCreated(w, sliderResponse(detail))
}

// ReplaceHeroSlider handles PUT /api/admin/hero-slider. The slide list is
// replaced as a whole.
func (h *Handler) ReplaceHeroSlider(w http.ResponseWriter, r *http.Request) {
	var req SliderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == 0 {
		WriteBadRequest(w, "Slider id is required", map[string]string{"id": "This field is required"})
		return
	}
	detail, err := h.sliders.Replace(r.Context(), req.ID, req.input())
	if err != nil {
		writeServiceError(w, r, err, "failed to update hero slider")
		return
	}
	h.audit(r, logging.CategoryHeroSlider, "Hero slider updated for page "+detail.Slider.Page,
		map[string]any{"slider_id": req.ID, "slides": len(detail.Slides)})
	WriteSuccess(w, sliderResponse(detail), nil)
}

// DeleteHeroSlider handles DELETE /api/admin/hero-slider/{id}.
func (h *Handler) DeleteHeroSlider(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	if err := h.sliders.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "failed to delete hero slider")
		return
	}
	h.audit(r, logging.CategoryHeroSlider, "Hero slider deleted", map[string]any{"slider_id": id})
	WriteNoContent(w)
}
