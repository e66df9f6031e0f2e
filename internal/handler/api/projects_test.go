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
	"github.com/olegiv/studio-cms/internal/store"
)

func createCategoryViaAPI(t *testing.T, h *Handler, user store.User, name string) ProjectCategoryResponse {
	t.Helper()
	req := asUser(newJSONRequest(t, http.MethodPost, "/api/admin/categories", fmt.Sprintf(`{"name":%q}`, name), nil), user)
	w := executeHandler(t, h.CreateProjectCategory, req)
	assertStatus(t, w, http.StatusCreated)
	return unmarshalData[ProjectCategoryResponse](t, w)
}

func createProjectViaAPI(t *testing.T, h *Handler, user store.User, body string) ProjectResponse {
	t.Helper()
	req := asUser(newJSONRequest(t, http.MethodPost, "/api/admin/projects", body, nil), user)
	w := executeHandler(t, h.CreateProject, req)
	assertStatus(t, w, http.StatusCreated)
	return unmarshalData[ProjectResponse](t, w)
}

func listCategories(t *testing.T, h *Handler, user store.User) map[string]ProjectCategoryResponse {
	t.Helper()
	w := executeHandler(t, h.ListProjectCategories, asUser(newRequest(t, http.MethodGet, "/api/admin/categories", nil), user))
	assertStatus(t, w, http.StatusOK)
	cats, _ := unmarshalList[ProjectCategoryResponse](t, w)
	byName := make(map[string]ProjectCategoryResponse, len(cats))
	for _, c := range cats {
		byName[c.Name] = c
	}
	return byName
}

func TestProjects_CategoryCounts(t *testing.T) {
	_, h := testSetup(t)
	editor := createTestUser(t, h, "editor@example.com", auth.RoleEditor)
	web := createCategoryViaAPI(t, h, editor, "Web")
	brand := createCategoryViaAPI(t, h, editor, "Branding")

	p := createProjectViaAPI(t, h, editor, fmt.Sprintf(`{"title":"Shop Redesign","categoryId":%d}`, web.ID))
	assert.Equal(t, "shop-redesign", p.Slug)
	assert.True(t, p.IsActive)
	assert.Equal(t, int64(1), listCategories(t, h, editor)["Web"].PostCount)

	id := strconv.FormatInt(p.ID, 10)
	body := fmt.Sprintf(`{"title":"Shop Redesign","categoryId":%d}`, brand.ID)
	req := asUser(newJSONRequest(t, http.MethodPut, "/api/admin/projects/"+id, body, map[string]string{"id": id}), editor)
	w := executeHandler(t, h.UpdateProject, req)
	assertStatus(t, w, http.StatusOK)

	cats := listCategories(t, h, editor)
	assert.Equal(t, int64(0), cats["Web"].PostCount)
	assert.Equal(t, int64(1), cats["Branding"].PostCount)

	req = asUser(newRequest(t, http.MethodDelete, "/api/admin/projects/"+id, map[string]string{"id": id}), editor)
	w = executeHandler(t, h.DeleteProject, req)
	assertStatus(t, w, http.StatusNoContent)
	assert.Equal(t, int64(0), listCategories(t, h, editor)["Branding"].PostCount)
}

func TestProjects_Validation(t *testing.T) {
	_, h := testSetup(t)
	editor := createTestUser(t, h, "editor@example.com", auth.RoleEditor)

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"missing title", `{"slug":"x"}`, "title"},
		{"bad link", `{"title":"x","link":"not a url"}`, "link"},
		{"unknown category", `{"title":"x","categoryId":404}`, "categoryId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(newJSONRequest(t, http.MethodPost, "/api/admin/projects", tt.body, nil), editor)
			w := executeHandler(t, h.CreateProject, req)
			assertStatus(t, w, http.StatusBadRequest)
			assert.Contains(t, unmarshalError(t, w).Details, tt.wantField)
		})
	}
}

func TestProjects_PublicHidesInactive(t *testing.T) {
	_, h := testSetup(t)
	editor := createTestUser(t, h, "editor@example.com", auth.RoleEditor)
	createProjectViaAPI(t, h, editor, `{"title":"Visible","isFeatured":true}`)
	createProjectViaAPI(t, h, editor, `{"title":"Hidden","isActive":false}`)

	w := executeHandler(t, h.ListActiveProjects, newRequest(t, http.MethodGet, "/api/projects", nil))
	assertStatus(t, w, http.StatusOK)
	projects, meta := unmarshalList[ProjectResponse](t, w)
	require.Len(t, projects, 1)
	assert.Equal(t, "visible", projects[0].Slug)
	assert.Equal(t, int64(1), meta.Total)

	w = executeHandler(t, h.GetActiveProject, newRequest(t, http.MethodGet, "/api/projects/hidden", map[string]string{"slug": "hidden"}))
	assertStatus(t, w, http.StatusNotFound)

	w = executeHandler(t, h.ListActiveProjects, newRequest(t, http.MethodGet, "/api/projects?category=abc", nil))
	assertStatus(t, w, http.StatusBadRequest)

	w = executeHandler(t, h.ListProjects, asUser(newRequest(t, http.MethodGet, "/api/admin/projects", nil), editor))
	all, _ := unmarshalList[ProjectResponse](t, w)
	assert.Len(t, all, 2)
}

func TestRenameProjectCategory(t *testing.T) {
	_, h := testSetup(t)
	editor := createTestUser(t, h, "editor@example.com", auth.RoleEditor)
	web := createCategoryViaAPI(t, h, editor, "Web")
	createCategoryViaAPI(t, h, editor, "Mobile")
	id := strconv.FormatInt(web.ID, 10)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
	}{
		{"old name mismatch by case", `{"oldName":"web","newName":"Websites"}`, http.StatusBadRequest, "oldName"},
		{"duplicate ignoring case", `{"oldName":"Web","newName":"MOBILE"}`, http.StatusBadRequest, "newName"},
		{"missing new name", `{"oldName":"Web","newName":""}`, http.StatusBadRequest, "newName"},
		{"success", `{"oldName":"Web","newName":"Websites"}`, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(newJSONRequest(t, http.MethodPatch, "/api/admin/categories/"+id, tt.body, map[string]string{"id": id}), editor)
			w := executeHandler(t, h.RenameProjectCategory, req)
			assertStatus(t, w, tt.wantStatus)
			if tt.wantField != "" {
				assert.Contains(t, unmarshalError(t, w).Details, tt.wantField)
				return
			}
			assert.Equal(t, "Websites", unmarshalData[ProjectCategoryResponse](t, w).Name)
		})
	}
}

func TestDeleteProjectCategory(t *testing.T) {
	_, h := testSetup(t)
	editor := createTestUser(t, h, "editor@example.com", auth.RoleEditor)
	web := createCategoryViaAPI(t, h, editor, "Web")
	empty := createCategoryViaAPI(t, h, editor, "Empty")
	for i := range 2 {
		createProjectViaAPI(t, h, editor, fmt.Sprintf(`{"title":"Site %d","categoryId":%d}`, i, web.ID))
	}
	webID := strconv.FormatInt(web.ID, 10)

	t.Run("unused category", func(t *testing.T) {
		id := strconv.FormatInt(empty.ID, 10)
		req := asUser(newRequest(t, http.MethodDelete, "/api/admin/categories/"+id, map[string]string{"id": id}), editor)
		w := executeHandler(t, h.DeleteProjectCategory, req)
		assertStatus(t, w, http.StatusOK)
		res := unmarshalData[CategoryDeleteResponse](t, w)
		assert.Equal(t, CategoryDeleteResponse{Deleted: true}, res)
	})

	t.Run("in use without confirmation", func(t *testing.T) {
		req := asUser(newRequest(t, http.MethodDelete, "/api/admin/categories/"+webID, map[string]string{"id": webID}), editor)
		w := executeHandler(t, h.DeleteProjectCategory, req)
		assertStatus(t, w, http.StatusConflict)
		assert.Equal(t, "2", unmarshalError(t, w).Details["projectCount"])
		assert.Contains(t, listCategories(t, h, editor), "Web")
	})

	t.Run("in use with confirmation", func(t *testing.T) {
		req := asUser(newRequest(t, http.MethodDelete, "/api/admin/categories/"+webID+"?moveToUncategorized=true",
			map[string]string{"id": webID}), editor)
		w := executeHandler(t, h.DeleteProjectCategory, req)
		assertStatus(t, w, http.StatusOK)

		res := unmarshalData[CategoryDeleteResponse](t, w)
		assert.Equal(t, int64(2), res.Reassigned)
		assert.True(t, res.CreatedFallback)

		cats := listCategories(t, h, editor)
		assert.NotContains(t, cats, "Web")
		assert.Equal(t, int64(2), cats["Uncategorized"].PostCount)
		assert.Equal(t, res.ReassignedTo, cats["Uncategorized"].ID)
	})

	t.Run("uncategorized in use", func(t *testing.T) {
		id := strconv.FormatInt(listCategories(t, h, editor)["Uncategorized"].ID, 10)
		req := asUser(newRequest(t, http.MethodDelete, "/api/admin/categories/"+id+"?moveToUncategorized=true",
			map[string]string{"id": id}), editor)
		w := executeHandler(t, h.DeleteProjectCategory, req)
		assertStatus(t, w, http.StatusConflict)
	})
}
