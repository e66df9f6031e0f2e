// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/studio-cms/internal/cache"
	"github.com/olegiv/studio-cms/internal/store"
)

// Slide button styles.
const (
	ButtonPrimary   = "primary"
	ButtonSecondary = "secondary"
	ButtonOutline   = "outline"
)

// DefaultAutoplaySpeed is used when a slider is saved without a speed.
const DefaultAutoplaySpeed = 5000

// TitleLineCount is the fixed number of title lines on a slide.
const TitleLineCount = 3

// SlideInput is one submitted slide. Its position in the list becomes its
// sort order.
type SlideInput struct {
	BackgroundImage string
	WelcomeText     string
	TitleLines      []string
	Description     string
	ButtonText      string
	ButtonLink      string
	ButtonType      string
	IsActive        bool
}

// SliderInput is the full editable state of a hero slider.
type SliderInput struct {
	Page          string
	Autoplay      bool
	AutoplaySpeed int64
	ShowDots      bool
	ShowArrows    bool
	IsActive      bool
	Slides        []SlideInput
}

// SliderDetail is a slider with its slides in display order.
type SliderDetail struct {
	Slider store.HeroSlider  `json:"slider"`
	Slides []store.HeroSlide `json:"slides"`
}

// HeroSliderService manages hero sliders. Saving a slider always replaces
// its whole slide list inside one transaction.
type HeroSliderService struct {
	db      *sql.DB
	queries *store.Queries
	cache   cache.Cache
	byPage  *cache.TypedCache[SliderDetail]
}

// NewHeroSliderService creates a HeroSliderService. c may be nil.
func NewHeroSliderService(db *sql.DB, c cache.Cache, ttl time.Duration) *HeroSliderService {
	return &HeroSliderService{
		db:      db,
		queries: store.New(db),
		cache:   c,
		byPage:  newTypedCache[SliderDetail](c, CachePrefixHero+"page:", ttl),
	}
}

func (in *SliderInput) validate() error {
	in.Page = strings.TrimSpace(in.Page)
	if in.AutoplaySpeed == 0 {
		in.AutoplaySpeed = DefaultAutoplaySpeed
	}

	verr := &ValidationError{}
	if in.Page == "" {
		verr.Add("page", "Page is required")
	}
	if in.AutoplaySpeed < 0 {
		verr.Add("autoplaySpeed", "Autoplay speed must not be negative")
	}
	if len(in.Slides) == 0 {
		verr.Add("slides", "At least one slide is required")
	}

	for i := range in.Slides {
		slide := &in.Slides[i]
		field := fmt.Sprintf("slides[%d]", i)
		slide.BackgroundImage = strings.TrimSpace(slide.BackgroundImage)
		if slide.BackgroundImage == "" {
			verr.Add(field+".backgroundImage", "Background image is required")
		}
		if len(slide.TitleLines) != TitleLineCount {
			verr.Add(field+".titleLines", fmt.Sprintf("Exactly %d title lines are required", TitleLineCount))
		}
		switch slide.ButtonType {
		case "":
			slide.ButtonType = ButtonPrimary
		case ButtonPrimary, ButtonSecondary, ButtonOutline:
		default:
			verr.Add(field+".buttonType", "Button type must be primary, secondary or outline")
		}
	}
	return verr.OrNil()
}

// Create inserts a slider and its slides.
func (s *HeroSliderService) Create(ctx context.Context, in SliderInput) (*SliderDetail, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var id int64
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		if err := checkSliderPage(ctx, q, in.Page, 0); err != nil {
			return err
		}
		now := time.Now().UTC()
		slider, err := q.CreateHeroSlider(ctx, store.CreateHeroSliderParams{
			Page:          in.Page,
			Autoplay:      in.Autoplay,
			AutoplaySpeed: in.AutoplaySpeed,
			ShowDots:      in.ShowDots,
			ShowArrows:    in.ShowArrows,
			IsActive:      in.IsActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("creating slider: %w", err)
		}
		id = slider.ID
		return insertSlides(ctx, q, slider.ID, in.Slides, now)
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, CachePrefixHero)
	return s.Get(ctx, id)
}

// Replace overwrites the slider's fields and swaps its slide list for the
// submitted one. Either everything is written or nothing is.
func (s *HeroSliderService) Replace(ctx context.Context, id int64, in SliderInput) (*SliderDetail, error) {
	if id <= 0 {
		return nil, NewValidationError("id", "Slider id is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		if _, err := q.GetHeroSliderByID(ctx, id); err != nil {
			return lookupErr("hero slider", err)
		}
		if err := checkSliderPage(ctx, q, in.Page, id); err != nil {
			return err
		}

		if _, err := q.DeleteHeroSlidesBySlider(ctx, id); err != nil {
			return fmt.Errorf("deleting slides: %w", err)
		}

		now := time.Now().UTC()
		if _, err := q.UpdateHeroSlider(ctx, store.UpdateHeroSliderParams{
			Page:          in.Page,
			Autoplay:      in.Autoplay,
			AutoplaySpeed: in.AutoplaySpeed,
			ShowDots:      in.ShowDots,
			ShowArrows:    in.ShowArrows,
			IsActive:      in.IsActive,
			UpdatedAt:     now,
			ID:            id,
		}); err != nil {
			return fmt.Errorf("updating slider: %w", err)
		}

		return insertSlides(ctx, q, id, in.Slides, now)
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, CachePrefixHero)
	return s.Get(ctx, id)
}

// Delete removes a slider together with its slides.
func (s *HeroSliderService) Delete(ctx context.Context, id int64) error {
	err := store.ExecTx(ctx, s.db, func(q *store.Queries) error {
		if _, err := q.GetHeroSliderByID(ctx, id); err != nil {
			return lookupErr("hero slider", err)
		}
		return q.DeleteHeroSlider(ctx, id)
	})
	if err != nil {
		return err
	}

	invalidate(ctx, s.cache, CachePrefixHero)
	return nil
}

// Get returns a slider with all of its slides.
func (s *HeroSliderService) Get(ctx context.Context, id int64) (*SliderDetail, error) {
	slider, err := s.queries.GetHeroSliderByID(ctx, id)
	if err != nil {
		return nil, lookupErr("hero slider", err)
	}
	slides, err := s.queries.ListHeroSlides(ctx, slider.ID)
	if err != nil {
		return nil, fmt.Errorf("listing slides: %w", err)
	}
	return &SliderDetail{Slider: slider, Slides: slides}, nil
}

// List returns every slider with its slides.
func (s *HeroSliderService) List(ctx context.Context) ([]SliderDetail, error) {
	sliders, err := s.queries.ListHeroSliders(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sliders: %w", err)
	}
	out := make([]SliderDetail, 0, len(sliders))
	for _, slider := range sliders {
		slides, err := s.queries.ListHeroSlides(ctx, slider.ID)
		if err != nil {
			return nil, fmt.Errorf("listing slides: %w", err)
		}
		out = append(out, SliderDetail{Slider: slider, Slides: slides})
	}
	return out, nil
}

// GetByPage returns the active slider for a page with only its active
// slides. An inactive slider is reported as not found.
func (s *HeroSliderService) GetByPage(ctx context.Context, page string) (*SliderDetail, error) {
	return cached(ctx, s.byPage, page, func() (*SliderDetail, error) {
		slider, err := s.queries.GetHeroSliderByPage(ctx, page)
		if err != nil {
			return nil, lookupErr("hero slider", err)
		}
		if !slider.IsActive {
			return nil, notFound("hero slider")
		}
		slides, err := s.queries.ListHeroSlides(ctx, slider.ID)
		if err != nil {
			return nil, fmt.Errorf("listing slides: %w", err)
		}
		active := make([]store.HeroSlide, 0, len(slides))
		for _, slide := range slides {
			if slide.IsActive {
				active = append(active, slide)
			}
		}
		return &SliderDetail{Slider: slider, Slides: active}, nil
	})
}

func checkSliderPage(ctx context.Context, q *store.Queries, page string, excludeID int64) error {
	n, err := q.HeroSliderPageExistsExcluding(ctx, page, excludeID)
	if err != nil {
		return fmt.Errorf("checking page: %w", err)
	}
	if n > 0 {
		return NewValidationError("page", "A slider for this page already exists")
	}
	return nil
}

func insertSlides(ctx context.Context, q *store.Queries, sliderID int64, slides []SlideInput, now time.Time) error {
	for i, slide := range slides {
		if _, err := q.CreateHeroSlide(ctx, store.CreateHeroSlideParams{
			SliderID:        sliderID,
			BackgroundImage: slide.BackgroundImage,
			WelcomeText:     slide.WelcomeText,
			TitleLine1:      slide.TitleLines[0],
			TitleLine2:      slide.TitleLines[1],
			TitleLine3:      slide.TitleLines[2],
			Description:     slide.Description,
			ButtonText:      slide.ButtonText,
			ButtonLink:      slide.ButtonLink,
			ButtonType:      slide.ButtonType,
			IsActive:        slide.IsActive,
			SortOrder:       int64(i),
			CreatedAt:       now,
		}); err != nil {
			return fmt.Errorf("creating slide %d: %w", i, err)
		}
	}
	return nil
}
