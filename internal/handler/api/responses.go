// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"time"

	"github.com/olegiv/studio-cms/internal/service"
	"github.com/olegiv/studio-cms/internal/store"
	"github.com/olegiv/studio-cms/internal/util"
)

// AuthorResponse is a post author in API responses.
type AuthorResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// BlogCategoryResponse is a blog category in API responses.
type BlogCategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PostCount   int64     `json:"postCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BlogTagResponse is a blog tag in API responses.
type BlogTagResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PostCount int64     `json:"postCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostResponse is a blog post with its author, categories and tags.
// ContentHTML is only filled for public reads.
type PostResponse struct {
	ID             int64                  `json:"id"`
	Title          string                 `json:"title"`
	Slug           string                 `json:"slug"`
	Excerpt        string                 `json:"excerpt"`
	Content        string                 `json:"content"`
	ContentHTML    string                 `json:"contentHtml,omitempty"`
	Image          string                 `json:"image"`
	AuthorID       int64                  `json:"authorId"`
	Author         AuthorResponse         `json:"author"`
	IsPublished    bool                   `json:"isPublished"`
	IsFeatured     bool                   `json:"isFeatured"`
	PublishedAt    *time.Time             `json:"publishedAt"`
	SeoTitle       string                 `json:"seoTitle"`
	SeoDescription string                 `json:"seoDescription"`
	SeoKeywords    string                 `json:"seoKeywords"`
	Categories     []BlogCategoryResponse `json:"categories"`
	Tags           []BlogTagResponse      `json:"tags"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

func blogCategoryResponse(c store.BlogCategory) BlogCategoryResponse {
	return BlogCategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		PostCount:   c.PostCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func blogTagResponse(t store.BlogTag) BlogTagResponse {
	return BlogTagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		PostCount: t.PostCount,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func postResponse(d *service.PostDetail) PostResponse {
	p := d.Post
	resp := PostResponse{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		Excerpt:        p.Excerpt,
		Content:        p.Content,
		Image:          p.Image,
		AuthorID:       p.AuthorID,
		Author:         AuthorResponse{ID: d.Author.ID, Name: d.Author.Name, Email: d.Author.Email},
		IsPublished:    p.IsPublished,
		IsFeatured:     p.IsFeatured,
		PublishedAt:    util.TimePtrFromNull(p.PublishedAt),
		SeoTitle:       p.SeoTitle,
		SeoDescription: p.SeoDescription,
		SeoKeywords:    p.SeoKeywords,
		Categories:     make([]BlogCategoryResponse, 0, len(d.Categories)),
		Tags:           make([]BlogTagResponse, 0, len(d.Tags)),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	for _, c := range d.Categories {
		resp.Categories = append(resp.Categories, blogCategoryResponse(c))
	}
	for _, t := range d.Tags {
		resp.Tags = append(resp.Tags, blogTagResponse(t))
	}
	return resp
}

// publicPostResponse hides the author's email and renders the content.
func publicPostResponse(d *service.PostDetail) (PostResponse, error) {
	resp := postResponse(d)
	resp.Author.Email = ""
	html, err := util.RenderMarkdown(resp.Content)
	if err != nil {
		return PostResponse{}, err
	}
	resp.ContentHTML = html
	return resp, nil
}

// ProjectResponse is a portfolio project in API responses.
type ProjectResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Image       string    `json:"image"`
	Link        string    `json:"link"`
	Client      string    `json:"client"`
	Role        string    `json:"role"`
	Year        string    `json:"year"`
	CategoryID  *int64    `json:"categoryId"`
	IsActive    bool      `json:"isActive"`
	IsFeatured  bool      `json:"isFeatured"`
	SortOrder   int64     `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func projectResponse(p store.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Content:     p.Content,
		Image:       p.Image,
		Link:        p.Link,
		Client:      p.Client,
		Role:        p.Role,
		Year:        p.Year,
		CategoryID:  util.Int64PtrFromNull(p.CategoryID),
		IsActive:    p.IsActive,
		IsFeatured:  p.IsFeatured,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func projectResponses(projects []store.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectResponse(p))
	}
	return out
}

// ProjectCategoryResponse is a project category in API responses.
type ProjectCategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	PostCount int64     `json:"postCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func projectCategoryResponse(c store.ProjectCategory) ProjectCategoryResponse {
	return ProjectCategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		PostCount: c.PostCount,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// SlideResponse is one hero slide. TitleLines always has three entries.
type SlideResponse struct {
	ID              int64     `json:"id"`
	BackgroundImage string    `json:"backgroundImage"`
	WelcomeText     string    `json:"welcomeText"`
	TitleLines      [3]string `json:"titleLines"`
	Description     string    `json:"description"`
	ButtonText      string    `json:"buttonText"`
	ButtonLink      string    `json:"buttonLink"`
	ButtonType      string    `json:"buttonType"`
	IsActive        bool      `json:"isActive"`
	SortOrder       int64     `json:"sortOrder"`
}

// SliderResponse is a hero slider with its ordered slides.
type SliderResponse struct {
	ID            int64           `json:"id"`
	Page          string          `json:"page"`
	Autoplay      bool            `json:"autoplay"`
	AutoplaySpeed int64           `json:"autoplaySpeed"`
	ShowDots      bool            `json:"showDots"`
	ShowArrows    bool            `json:"showArrows"`
	IsActive      bool            `json:"isActive"`
	Slides        []SlideResponse `json:"slides"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func sliderResponse(d *service.SliderDetail) SliderResponse {
	s := d.Slider
	resp := SliderResponse{
		ID:            s.ID,
		Page:          s.Page,
		Autoplay:      s.Autoplay,
		AutoplaySpeed: s.AutoplaySpeed,
		ShowDots:      s.ShowDots,
		ShowArrows:    s.ShowArrows,
		IsActive:      s.IsActive,
		Slides:        make([]SlideResponse, 0, len(d.Slides)),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	for _, sl := range d.Slides {
		resp.Slides = append(resp.Slides, SlideResponse{
			ID:              sl.ID,
			BackgroundImage: sl.BackgroundImage,
			WelcomeText:     sl.WelcomeText,
			TitleLines:      [3]string{sl.TitleLine1, sl.TitleLine2, sl.TitleLine3},
			Description:     sl.Description,
			ButtonText:      sl.ButtonText,
			ButtonLink:      sl.ButtonLink,
			ButtonType:      sl.ButtonType,
			IsActive:        sl.IsActive,
			SortOrder:       sl.SortOrder,
		})
	}
	return resp
}

// ClientResponse is a client logo entry in API responses.
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Logo      string    `json:"logo"`
	Website   string    `json:"website"`
	IsActive  bool      `json:"isActive"`
	SortOrder int64     `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func clientResponse(c store.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Logo:      c.Logo,
		Website:   c.Website,
		IsActive:  c.IsActive,
		SortOrder: c.SortOrder,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// TestimonialResponse is a testimonial in API responses.
type TestimonialResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Company   string    `json:"company"`
	Content   string    `json:"content"`
	Avatar    string    `json:"avatar"`
	Rating    int64     `json:"rating"`
	IsActive  bool      `json:"isActive"`
	SortOrder int64     `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func testimonialResponse(t store.Testimonial) TestimonialResponse {
	return TestimonialResponse{
		ID:        t.ID,
		Name:      t.Name,
		Position:  t.Position,
		Company:   t.Company,
		Content:   t.Content,
		Avatar:    t.Avatar,
		Rating:    t.Rating,
		IsActive:  t.IsActive,
		SortOrder: t.SortOrder,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ContactResponse is a contact form submission in API responses.
type ContactResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	IsReplied bool      `json:"isReplied"`
	CreatedAt time.Time `json:"createdAt"`
}

func contactResponse(c store.ContactSubmission) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Message:   c.Message,
		IsRead:    c.IsRead,
		IsReplied: c.IsReplied,
		CreatedAt: c.CreatedAt,
	}
}

// SettingsResponse is the site settings row in API responses.
type SettingsResponse struct {
	SiteName        string    `json:"siteName"`
	SiteDescription string    `json:"siteDescription"`
	ContactEmail    string    `json:"contactEmail"`
	ContactPhone    string    `json:"contactPhone"`
	Address         string    `json:"address"`
	Logo            string    `json:"logo"`
	Favicon         string    `json:"favicon"`
	FooterText      string    `json:"footerText"`
	FacebookURL     string    `json:"facebookUrl"`
	TwitterURL      string    `json:"twitterUrl"`
	InstagramURL    string    `json:"instagramUrl"`
	LinkedinURL     string    `json:"linkedinUrl"`
	GithubURL       string    `json:"githubUrl"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func settingsResponse(s store.SiteSetting) SettingsResponse {
	return SettingsResponse{
		SiteName:        s.SiteName,
		SiteDescription: s.SiteDescription,
		ContactEmail:    s.ContactEmail,
		ContactPhone:    s.ContactPhone,
		Address:         s.Address,
		Logo:            s.Logo,
		Favicon:         s.Favicon,
		FooterText:      s.FooterText,
		FacebookURL:     s.FacebookUrl,
		TwitterURL:      s.TwitterUrl,
		InstagramURL:    s.InstagramUrl,
		LinkedinURL:     s.LinkedinUrl,
		GithubURL:       s.GithubUrl,
		UpdatedAt:       s.UpdatedAt,
	}
}

// UserResponse is an admin panel account. The password hash never leaves
// the server.
type UserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func userResponse(u store.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: util.TimePtrFromNull(u.LastLoginAt),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// EventResponse is one event log entry.
type EventResponse struct {
	ID        int64           `json:"id"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
	Message   string          `json:"message"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt time.Time       `json:"createdAt"`
}

func eventResponse(e store.Event) EventResponse {
	meta := json.RawMessage(e.Metadata)
	if !json.Valid(meta) {
		meta = json.RawMessage("{}")
	}
	return EventResponse{
		ID:        e.ID,
		Level:     e.Level,
		Category:  e.Category,
		Message:   e.Message,
		Metadata:  meta,
		CreatedAt: e.CreatedAt,
	}
}

// DashboardResponse holds the admin dashboard counts.
type DashboardResponse struct {
	TotalPosts        int64 `json:"totalPosts"`
	PublishedPosts    int64 `json:"publishedPosts"`
	TotalProjects     int64 `json:"totalProjects"`
	TotalClients      int64 `json:"totalClients"`
	TotalTestimonials int64 `json:"totalTestimonials"`
	TotalSubmissions  int64 `json:"totalSubmissions"`
	UnreadSubmissions int64 `json:"unreadSubmissions"`
	TotalUsers        int64 `json:"totalUsers"`
}
