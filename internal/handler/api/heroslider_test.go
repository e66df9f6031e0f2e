// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/studio-cms/internal/auth"
)

const sliderBody = `{
	"page": "home",
	"autoplaySpeed": 4000,
	"slides": [
		{"backgroundImage": "/img/a.jpg", "titleLines": ["We", "Build", "Brands"], "buttonType": "outline"},
		{"backgroundImage": "/img/b.jpg", "titleLines": ["Hidden", "", ""], "isActive": false},
		{"backgroundImage": "/img/c.jpg", "titleLines": ["Third", "Line", "Here"]}
	]
}`

func TestHeroSlider_CreateAndServe(t *testing.T) {
	_, h := testSetup(t)
	admin := createTestUser(t, h, "admin@example.com", auth.RoleAdmin)

	req := asUser(newJSONRequest(t, http.MethodPost, "/api/admin/hero-slider", sliderBody, nil), admin)
	w := executeHandler(t, h.CreateHeroSlider, req)
	assertStatus(t, w, http.StatusCreated)

	created := unmarshalData[SliderResponse](t, w)
	assert.Equal(t, int64(4000), created.AutoplaySpeed)
	assert.True(t, created.Autoplay)
	require.Len(t, created.Slides, 3)
	assert.Equal(t, [3]string{"We", "Build", "Brands"}, created.Slides[0].TitleLines)
	assert.Equal(t, "outline", created.Slides[0].ButtonType)
	assert.Equal(t, "primary", created.Slides[2].ButtonType)
	for i, s := range created.Slides {
		assert.Equal(t, int64(i), s.SortOrder)
	}

	w = executeHandler(t, h.GetHeroSlider, newRequest(t, http.MethodGet, "/api/hero-slider", nil))
	assertStatus(t, w, http.StatusOK)
	public := unmarshalData[SliderResponse](t, w)
	require.Len(t, public.Slides, 2, "inactive slides are not served")
	assert.Equal(t, "/img/c.jpg", public.Slides[1].BackgroundImage)

	w = executeHandler(t, h.GetHeroSlider, newRequest(t, http.MethodGet, "/api/hero-slider?page=about", nil))
	assertStatus(t, w, http.StatusNotFound)

	req = asUser(newJSONRequest(t, http.MethodPost, "/api/admin/hero-slider", sliderBody, nil), admin)
	w = executeHandler(t, h.CreateHeroSlider, req)
	assertStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, unmarshalError(t, w).Details, "page")
}

func TestHeroSlider_Validation(t *testing.T) {
	_, h := testSetup(t)
	admin := createTestUser(t, h, "admin@example.com", auth.RoleAdmin)

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "two title lines",
			body:      `{"page":"home","slides":[{"backgroundImage":"/a.jpg","titleLines":["a","b"]}]}`,
			wantField: "slides[0].titleLines",
		},
		{
			name:      "missing background",
			body:      `{"page":"home","slides":[{"titleLines":["a","b","c"]}]}`,
			wantField: "slides[0].backgroundImage",
		},
		{
			name:      "bad button type",
			body:      `{"page":"home","slides":[{"backgroundImage":"/a.jpg","titleLines":["a","b","c"],"buttonType":"ghost"}]}`,
			wantField: "slides[0].buttonType",
		},
		{
			name:      "no slides",
			body:      `{"page":"home","slides":[]}`,
			wantField: "slides",
		},
		{
			name:      "missing page",
			body:      `{"slides":[{"backgroundImage":"/a.jpg","titleLines":["a","b","c"]}]}`,
			wantField: "page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(newJSONRequest(t, http.MethodPost, "/api/admin/hero-slider", tt.body, nil), admin)
			w := executeHandler(t, h.CreateHeroSlider, req)
			assertStatus(t, w, http.StatusBadRequest)
			assert.Contains(t, unmarshalError(t, w).Details, tt.wantField)
		})
	}
}

func TestHeroSlider_Replace(t *testing.T) {
	_, h := testSetup(t)
	admin := createTestUser(t, h, "admin@example.com", auth.RoleAdmin)

	req := asUser(newJSONRequest(t, http.MethodPost, "/api/admin/hero-slider", sliderBody, nil), admin)
	w := executeHandler(t, h.CreateHeroSlider, req)
	assertStatus(t, w, http.StatusCreated)
	created := unmarshalData[SliderResponse](t, w)

	t.Run("requires id", func(t *testing.T) {
		body := `{"page":"home","slides":[{"backgroundImage":"/x.jpg","titleLines":["a","b","c"]}]}`
		req := asUser(newJSONRequest(t, http.MethodPut, "/api/admin/hero-slider", body, nil), admin)
		w := executeHandler(t, h.ReplaceHeroSlider, req)
		assertStatus(t, w, http.StatusBadRequest)
		assert.Contains(t, unmarshalError(t, w).Details, "id")
	})

	t.Run("unknown id", func(t *testing.T) {
		body := `{"id":999,"page":"home","slides":[{"backgroundImage":"/x.jpg","titleLines":["a","b","c"]}]}`
		req := asUser(newJSONRequest(t, http.MethodPut, "/api/admin/hero-slider", body, nil), admin)
		w := executeHandler(t, h.ReplaceHeroSlider, req)
		assertStatus(t, w, http.StatusNotFound)
	})

	t.Run("replaces slides", func(t *testing.T) {
		body := fmt.Sprintf(`{"id":%d,"page":"home","showDots":false,
			"slides":[{"backgroundImage":"/x.jpg","titleLines":["One","Two","Three"]}]}`, created.ID)
		req := asUser(newJSONRequest(t, http.MethodPut, "/api/admin/hero-slider", body, nil), admin)
		w := executeHandler(t, h.ReplaceHeroSlider, req)
		assertStatus(t, w, http.StatusOK)

		replaced := unmarshalData[SliderResponse](t, w)
		assert.Equal(t, created.ID, replaced.ID)
		assert.False(t, replaced.ShowDots)
		require.Len(t, replaced.Slides, 1)
		assert.Equal(t, "/x.jpg", replaced.Slides[0].BackgroundImage)
	})

	t.Run("invalid replace keeps old slides", func(t *testing.T) {
		body := fmt.Sprintf(`{"id":%d,"page":"home","slides":[{"backgroundImage":"/y.jpg","titleLines":["a"]}]}`, created.ID)
		req := asUser(newJSONRequest(t, http.MethodPut, "/api/admin/hero-slider", body, nil), admin)
		w := executeHandler(t, h.ReplaceHeroSlider, req)
		assertStatus(t, w, http.StatusBadRequest)

		w = executeHandler(t, h.ListHeroSliders, asUser(newRequest(t, http.MethodGet, "/api/admin/hero-slider", nil), admin))
		sliders, _ := unmarshalList[SliderResponse](t, w)
		require.Len(t, sliders, 1)
		require.Len(t, sliders[0].Slides, 1)
		assert.Equal(t, "/x.jpg", sliders[0].Slides[0].BackgroundImage)
	})

	t.Run("delete", func(t *testing.T) {
		id := strconv.FormatInt(created.ID, 10)
		req := asUser(newRequest(t, http.MethodDelete, "/api/admin/hero-slider/"+id, map[string]string{"id": id}), admin)
		w := executeHandler(t, h.DeleteHeroSlider, req)
		assertStatus(t, w, http.StatusNoContent)

		w = executeHandler(t, h.GetHeroSlider, newRequest(t, http.MethodGet, "/api/hero-slider?page=home", nil))
		assertStatus(t, w, http.StatusNotFound)
	})
}
