// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         string
	IsActive     bool
	LastLoginAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

type BlogPost struct {
	ID             int64
	Title          string
	Slug           string
	Excerpt        string
	Content        string
	Image          string
	AuthorID       int64
	IsPublished    bool
	IsFeatured     bool
	PublishedAt    sql.NullTime
	SeoTitle       string
	SeoDescription string
	SeoKeywords    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type BlogCategory struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	PostCount   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type BlogTag struct {
	ID        int64
	Name      string
	Slug      string
	PostCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProjectCategory struct {
	ID        int64
	Name      string
	PostCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Project struct {
	ID          int64
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

type HeroSlider struct {
	ID            int64
	Page          string
	Autoplay      bool
	AutoplaySpeed int64
	ShowDots      bool
	ShowArrows    bool
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type HeroSlide struct {
	ID              int64
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

type Client struct {
	ID        int64
	Name      string
	Logo      string
	Website   string
	IsActive  bool
	SortOrder int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Testimonial struct {
	ID        int64
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

type ContactSubmission struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Message   string
	IsRead    bool
	IsReplied bool
	CreatedAt time.Time
}

type SiteSetting struct {
	ID              int64
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
