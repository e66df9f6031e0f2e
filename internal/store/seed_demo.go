// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/studio-cms/internal/auth"
)

// Demo credentials
const (
	DemoEditorEmail    = "editor@example.com"
	DemoEditorPassword = "demo1234demo"
	DemoEditorName     = "Demo Editor"
)

// SeedDemo creates showcase content: an editor, blog taxonomy and posts,
// projects, the home hero slider, clients and testimonials. It is a no-op
// when blog posts already exist.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	existing, err := queries.CountBlogPosts(ctx, CountBlogPostsParams{})
	if err != nil {
		return fmt.Errorf("counting posts: %w", err)
	}
	if existing > 0 {
		slog.Info("demo content already present, skipping")
		return nil
	}

	slog.Info("seeding demo content")

	return ExecTx(ctx, db, func(q *Queries) error {
		editorID, err := seedDemoEditor(ctx, q)
		if err != nil {
			return fmt.Errorf("seeding demo editor: %w", err)
		}
		if err := seedDemoBlog(ctx, q, editorID); err != nil {
			return fmt.Errorf("seeding demo blog: %w", err)
		}
		if err := seedDemoProjects(ctx, q); err != nil {
			return fmt.Errorf("seeding demo projects: %w", err)
		}
		if err := seedDemoHeroSlider(ctx, q); err != nil {
			return fmt.Errorf("seeding demo hero slider: %w", err)
		}
		if err := seedDemoShowcase(ctx, q); err != nil {
			return fmt.Errorf("seeding demo clients: %w", err)
		}
		return nil
	})
}

func seedDemoEditor(ctx context.Context, q *Queries) (int64, error) {
	user, err := q.GetUserByEmail(ctx, DemoEditorEmail)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	hash, err := auth.HashPassword(DemoEditorPassword)
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	user, err = q.CreateUser(ctx, CreateUserParams{
		Email:        DemoEditorEmail,
		PasswordHash: hash,
		Name:         DemoEditorName,
		Role:         "editor",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

type demoPost struct {
	title      string
	slug       string
	excerpt    string
	content    string
	published  bool
	featured   bool
	categories []string
	tags       []string
}

func seedDemoBlog(ctx context.Context, q *Queries, authorID int64) error {
	now := time.Now().UTC()

	categories := map[string]int64{}
	for _, c := range []struct{ name, slug, desc string }{
		{"Design", "design", "Visual identity and interface work"},
		{"Engineering", "engineering", "How we build things"},
		{"Studio News", "studio-news", "Announcements from the team"},
	} {
		cat, err := q.CreateBlogCategory(ctx, CreateBlogCategoryParams{
			Name: c.name, Slug: c.slug, Description: c.desc, CreatedAt: now, UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		categories[c.slug] = cat.ID
	}

	tags := map[string]int64{}
	for _, t := range []struct{ name, slug string }{
		{"Branding", "branding"},
		{"Go", "go"},
		{"UX", "ux"},
	} {
		tag, err := q.CreateBlogTag(ctx, CreateBlogTagParams{
			Name: t.name, Slug: t.slug, CreatedAt: now, UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		tags[t.slug] = tag.ID
	}

	posts := []demoPost{
		{
			title:      "Rebuilding Our Brand System",
			slug:       "rebuilding-our-brand-system",
			excerpt:    "What we learned refreshing a ten-year-old identity.",
			content:    "## Where we started\n\nOur old identity had grown by accretion.\n\n## Where we ended up\n\nA smaller palette and one typeface.",
			published:  true,
			featured:   true,
			categories: []string{"design"},
			tags:       []string{"branding", "ux"},
		},
		{
			title:      "A Small Go Backend for a Marketing Site",
			slug:       "a-small-go-backend-for-a-marketing-site",
			excerpt:    "One binary, one SQLite file.",
			content:    "We serve every page of this site from a single Go process.\n\n```go\nhttp.ListenAndServe(\":8080\", r)\n```",
			published:  true,
			categories: []string{"engineering"},
			tags:       []string{"go"},
		},
		{
			title:      "We Are Hiring",
			slug:       "we-are-hiring",
			excerpt:    "Draft announcement.",
			content:    "Details to follow.",
			categories: []string{"studio-news"},
		},
	}

	for _, p := range posts {
		publishedAt := sql.NullTime{}
		if p.published {
			publishedAt = sql.NullTime{Time: now, Valid: true}
		}
		post, err := q.CreateBlogPost(ctx, CreateBlogPostParams{
			Title:       p.title,
			Slug:        p.slug,
			Excerpt:     p.excerpt,
			Content:     p.content,
			AuthorID:    authorID,
			IsPublished: p.published,
			IsFeatured:  p.featured,
			PublishedAt: publishedAt,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}

		catIDs := make([]int64, 0, len(p.categories))
		for _, slug := range p.categories {
			if err := q.AddCategoryToPost(ctx, post.ID, categories[slug]); err != nil {
				return err
			}
			catIDs = append(catIDs, categories[slug])
		}
		if _, err := q.IncrementBlogCategoryPostCounts(ctx, catIDs); err != nil {
			return err
		}

		tagIDs := make([]int64, 0, len(p.tags))
		for _, slug := range p.tags {
			if err := q.AddTagToPost(ctx, post.ID, tags[slug]); err != nil {
				return err
			}
			tagIDs = append(tagIDs, tags[slug])
		}
		if _, err := q.IncrementBlogTagPostCounts(ctx, tagIDs); err != nil {
			return err
		}
	}

	return nil
}

func seedDemoProjects(ctx context.Context, q *Queries) error {
	now := time.Now().UTC()

	web, err := q.CreateProjectCategory(ctx, CreateProjectCategoryParams{Name: "Web", CreatedAt: now, UpdatedAt: now})
	if err != nil {
		return err
	}
	identity, err := q.CreateProjectCategory(ctx, CreateProjectCategoryParams{Name: "Identity", CreatedAt: now, UpdatedAt: now})
	if err != nil {
		return err
	}

	projects := []CreateProjectParams{
		{
			Title: "Harbor Coffee Online Shop", Slug: "harbor-coffee-online-shop",
			Description: "E-commerce storefront for a local roaster.",
			Client:      "Harbor Coffee", Role: "Design and development", Year: "2025",
			CategoryID: sql.NullInt64{Int64: web.ID, Valid: true},
			IsActive:   true, IsFeatured: true, SortOrder: 0,
		},
		{
			Title: "Northwind Rebrand", Slug: "northwind-rebrand",
			Description: "Identity system for a logistics company.",
			Client:      "Northwind", Role: "Brand strategy", Year: "2024",
			CategoryID: sql.NullInt64{Int64: identity.ID, Valid: true},
			IsActive:   true, SortOrder: 1,
		},
	}

	for _, p := range projects {
		p.CreatedAt = now
		p.UpdatedAt = now
		if _, err := q.CreateProject(ctx, p); err != nil {
			return err
		}
		if err := q.AdjustProjectCategoryPostCount(ctx, 1, p.CategoryID.Int64); err != nil {
			return err
		}
	}
	return nil
}

func seedDemoHeroSlider(ctx context.Context, q *Queries) error {
	now := time.Now().UTC()

	slider, err := q.CreateHeroSlider(ctx, CreateHeroSliderParams{
		Page:          "home",
		Autoplay:      true,
		AutoplaySpeed: 5000,
		ShowDots:      true,
		ShowArrows:    true,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return err
	}

	slides := []CreateHeroSlideParams{
		{
			BackgroundImage: "/images/hero/studio.jpg",
			WelcomeText:     "Welcome to the studio",
			TitleLine1:      "We design",
			TitleLine2:      "and build",
			TitleLine3:      "digital products",
			ButtonText:      "See our work",
			ButtonLink:      "/projects",
			ButtonType:      "primary",
		},
		{
			BackgroundImage: "/images/hero/team.jpg",
			WelcomeText:     "Small team",
			TitleLine1:      "Senior people",
			TitleLine2:      "on every",
			TitleLine3:      "project",
			ButtonText:      "Contact us",
			ButtonLink:      "/contact",
			ButtonType:      "outline",
		},
	}

	for i, s := range slides {
		s.SliderID = slider.ID
		s.IsActive = true
		s.SortOrder = int64(i)
		s.CreatedAt = now
		if _, err := q.CreateHeroSlide(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func seedDemoShowcase(ctx context.Context, q *Queries) error {
	now := time.Now().UTC()

	for i, name := range []string{"Harbor Coffee", "Northwind", "Lumen Labs"} {
		if _, err := q.CreateClient(ctx, CreateClientParams{
			Name:      name,
			IsActive:  true,
			SortOrder: int64(i),
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
	}

	_, err := q.CreateTestimonial(ctx, CreateTestimonialParams{
		Name:      "Dana Reyes",
		Position:  "Founder",
		Company:   "Harbor Coffee",
		Content:   "They shipped our shop in six weeks and it has not gone down since.",
		Rating:    5,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}
