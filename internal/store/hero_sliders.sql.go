// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const heroSliderColumns = `id, page, autoplay, autoplay_speed, show_dots, show_arrows, is_active, created_at, updated_at`

func scanHeroSlider(row interface{ Scan(...interface{}) error }) (HeroSlider, error) {
	var i HeroSlider
	err := row.Scan(
		&i.ID,
		&i.Page,
		&i.Autoplay,
		&i.AutoplaySpeed,
		&i.ShowDots,
		&i.ShowArrows,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createHeroSlider = `-- name: CreateHeroSlider :one
INSERT INTO hero_sliders (page, autoplay, autoplay_speed, show_dots, show_arrows, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + heroSliderColumns

type CreateHeroSliderParams struct {
	Page          string
	Autoplay      bool
	AutoplaySpeed int64
	ShowDots      bool
	ShowArrows    bool
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (q *Queries) CreateHeroSlider(ctx context.Context, arg CreateHeroSliderParams) (HeroSlider, error) {
	row := q.db.QueryRowContext(ctx, createHeroSlider,
		arg.Page,
		arg.Autoplay,
		arg.AutoplaySpeed,
		arg.ShowDots,
		arg.ShowArrows,
		arg.IsActive,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanHeroSlider(row)
}

const getHeroSliderByID = `-- name: GetHeroSliderByID :one
SELECT ` + heroSliderColumns + ` FROM hero_sliders WHERE id = ?`

func (q *Queries) GetHeroSliderByID(ctx context.Context, id int64) (HeroSlider, error) {
	return scanHeroSlider(q.db.QueryRowContext(ctx, getHeroSliderByID, id))
}

const getHeroSliderByPage = `-- name: GetHeroSliderByPage :one
SELECT ` + heroSliderColumns + ` FROM hero_sliders WHERE page = ?`

func (q *Queries) GetHeroSliderByPage(ctx context.Context, page string) (HeroSlider, error) {
	return scanHeroSlider(q.db.QueryRowContext(ctx, getHeroSliderByPage, page))
}

const listHeroSliders = `-- name: ListHeroSliders :many
SELECT ` + heroSliderColumns + ` FROM hero_sliders ORDER BY page`

func (q *Queries) ListHeroSliders(ctx context.Context) ([]HeroSlider, error) {
	rows, err := q.db.QueryContext(ctx, listHeroSliders)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []HeroSlider{}
	for rows.Next() {
		i, err := scanHeroSlider(rows)
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

const heroSliderPageExistsExcluding = `-- name: HeroSliderPageExistsExcluding :one
SELECT COUNT(*) FROM hero_sliders WHERE page = ? AND id != ?`

func (q *Queries) HeroSliderPageExistsExcluding(ctx context.Context, page string, id int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, heroSliderPageExistsExcluding, page, id).Scan(&count)
	return count, err
}

const updateHeroSlider = `-- name: UpdateHeroSlider :one
UPDATE hero_sliders SET
    page = ?, autoplay = ?, autoplay_speed = ?, show_dots = ?, show_arrows = ?, is_active = ?, updated_at = ?
WHERE id = ?
RETURNING ` + heroSliderColumns

type UpdateHeroSliderParams struct {
	Page          string
	Autoplay      bool
	AutoplaySpeed int64
	ShowDots      bool
	ShowArrows    bool
	IsActive      bool
	UpdatedAt     time.Time
	ID            int64
}

func (q *Queries) UpdateHeroSlider(ctx context.Context, arg UpdateHeroSliderParams) (HeroSlider, error) {
	row := q.db.QueryRowContext(ctx, updateHeroSlider,
		arg.Page,
		arg.Autoplay,
		arg.AutoplaySpeed,
		arg.ShowDots,
		arg.ShowArrows,
		arg.IsActive,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanHeroSlider(row)
}

const deleteHeroSlider = `-- name: DeleteHeroSlider :exec
DELETE FROM hero_sliders WHERE id = ?`

func (q *Queries) DeleteHeroSlider(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteHeroSlider, id)
	return err
}

// ---- slides ----

const heroSlideColumns = `id, slider_id, background_image, welcome_text, title_line1, title_line2, title_line3,
description, button_text, button_link, button_type, is_active, sort_order, created_at`

func scanHeroSlide(row interface{ Scan(...interface{}) error }) (HeroSlide, error) {
	var i HeroSlide
	err := row.Scan(
		&i.ID,
		&i.SliderID,
		&i.BackgroundImage,
		&i.WelcomeText,
		&i.TitleLine1,
		&i.TitleLine2,
		&i.TitleLine3,
		&i.Description,
		&i.ButtonText,
		&i.ButtonLink,
		&i.ButtonType,
		&i.IsActive,
		&i.SortOrder,
		&i.CreatedAt,
	)
	return i, err
}

const createHeroSlide = `-- name: CreateHeroSlide :one
INSERT INTO hero_slides (
    slider_id, background_image, welcome_text, title_line1, title_line2, title_line3,
    description, button_text, button_link, button_type, is_active, sort_order, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + heroSlideColumns

type CreateHeroSlideParams struct {
	SliderID        int64
	BackgroundImage string
	WelcomeText     string
	TitleLine1      string
	TitleLine2      string
	TitleLine3      string
	Description     string
	ButtonText      string
	ButtonLink      string
	ButtonType      string
	IsActive        bool
	SortOrder       int64
	CreatedAt       time.Time
}

func (q *Queries) CreateHeroSlide(ctx context.Context, arg CreateHeroSlideParams) (HeroSlide, error) {
	row := q.db.QueryRowContext(ctx, createHeroSlide,
		arg.SliderID,
		arg.BackgroundImage,
		arg.WelcomeText,
		arg.TitleLine1,
		arg.TitleLine2,
		arg.TitleLine3,
		arg.Description,
		arg.ButtonText,
		arg.ButtonLink,
		arg.ButtonType,
		arg.IsActive,
		arg.SortOrder,
		arg.CreatedAt,
	)
	return scanHeroSlide(row)
}

const listHeroSlides = `-- name: ListHeroSlides :many
SELECT ` + heroSlideColumns + ` FROM hero_slides WHERE slider_id = ? ORDER BY sort_order, id`

func (q *Queries) ListHeroSlides(ctx context.Context, sliderID int64) ([]HeroSlide, error) {
	rows, err := q.db.QueryContext(ctx, listHeroSlides, sliderID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []HeroSlide{}
	for rows.Next() {
		i, err := scanHeroSlide(rows)
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

const deleteHeroSlidesBySlider = `-- name: DeleteHeroSlidesBySlider :execrows
DELETE FROM hero_slides WHERE slider_id = ?`

func (q *Queries) DeleteHeroSlidesBySlider(ctx context.Context, sliderID int64) (int64, error) {
	return q.execAffected(ctx, deleteHeroSlidesBySlider, sliderID)
}
