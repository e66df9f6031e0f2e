// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/studio-cms/internal/auth"
)

func TestCreateUser(t *testing.T) {
	_, h := testSetup(t)
	admin := createTestUser(t, h, "admin@example.com", auth.RoleAdmin)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
	}{
		{"valid", `{"email":"New@Example.com","name":"New","role":"editor","password":"long-enough-pass"}`, http.StatusCreated, ""},
		{"invalid role", `{"email":"x@example.com","name":"X","role":"owner","password":"long-enough-pass"}`, http.StatusBadRequest, "role"},
		{"short password", `{"email":"y@example.com","name":"Y","role":"editor","password":"short"}`, http.StatusBadRequest, "password"},
		{"duplicate email", `{"email":"ADMIN@example.com","name":"Dup","role":"editor","password":"long-enough-pass"}`, http.StatusBadRequest, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(newJSONRequest(t, http.MethodPost, "/api/admin/users", tt.body, nil), admin)
			w := executeHandler(t, h.CreateUser, req)
			assertStatus(t, w, tt.wantStatus)
			if tt.wantField != "" {
				assert.Contains(t, unmarshalError(t, w).Details, tt.wantField)
				return
			}
			u := unmarshalData[UserResponse](t, w)
			assert.Equal(t, "new@example.com", u.Email)
			assert.True(t, u.IsActive)
			assert.NotContains(t, w.Body.String(), "password")
		})
	}
}

func TestListUsers_Paginated(t *testing.T) {
	_, h := testSetup(t)
	admin := createTestUser(t, h, "admin@example.com", auth.RoleAdmin)
	for i := range 3 {
		createTestUser(t, h, fmt.Sprintf("editor%d@example.com", i), auth.RoleEditor)
	}

	w := executeHandler(t, h.ListUsers, asUser(newRequest(t, http.MethodGet, "/api/admin/users?page=2&perPage=3", nil), admin))
	assertStatus(t, w, http.StatusOK)
	users, meta := unmarshalList[UserResponse](t, w)
	assert.Len(t, users, 1)
	assert.Equal(t, &Meta{Total: 4, Page: 2, PerPage: 3, Pages: 2}, meta)
}

func TestUpdateUser_LastAdmin(t *testing.T) {
	_, h := testSetup(t)
	admin := createTestUser(t, h, "admin@example.com", auth.RoleAdmin)
	id := strconv.FormatInt(admin.ID, 10)

	body := `{"email":"admin@example.com","name":"Admin","role":"editor"}`
	req := asUser(newJSONRequest(t, http.MethodPut, "/api/admin/users/"+id, body, map[string]string{"id": id}), admin)
	w := executeHandler(t, h.UpdateUser, req)
	assertStatus(t, w, http.StatusConflict)

	body = `{"email":"admin@example.com","name":"Renamed","role":"admin"}`
	req = asUser(newJSONRequest(t, http.MethodPut, "/api/admin/users/"+id, body, map[string]string{"id": id}), admin)
	w = executeHandler(t, h.UpdateUser, req)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "Renamed", unmarshalData[UserResponse](t, w).Name)
}

func TestDeleteUser_Guards(t *testing.T) {
	_, h := testSetup(t)
	admin := createTestUser(t, h, "admin@example.com", auth.RoleAdmin)
	other := createTestUser(t, h, "other@example.com", auth.RoleAdmin)
	author := createTestUser(t, h, "author@example.com", auth.RoleEditor)
	createPostViaAPI(t, h, author, fmt.Sprintf(`{"title":"Owned","content":"text","authorId":%d}`, author.ID))

	del := func(actorID int64, target int64) *httptest.ResponseRecorder {
		actor, err := h.users.GetUser(t.Context(), actorID)
		require.NoError(t, err)
		id := strconv.FormatInt(target, 10)
		req := asUser(newRequest(t, http.MethodDelete, "/api/admin/users/"+id, map[string]string{"id": id}), actor)
		return executeHandler(t, h.DeleteUser, req)
	}

	t.Run("self", func(t *testing.T) {
		w := del(admin.ID, admin.ID)
		assertStatus(t, w, http.StatusConflict)
	})

	t.Run("author with posts", func(t *testing.T) {
		w := del(admin.ID, author.ID)
		assertStatus(t, w, http.StatusConflict)
		assert.Equal(t, "1", unmarshalError(t, w).Details["postCount"])
	})

	t.Run("unknown", func(t *testing.T) {
		assertStatus(t, del(admin.ID, 9999), http.StatusNotFound)
	})

	t.Run("second admin", func(t *testing.T) {
		assertStatus(t, del(admin.ID, other.ID), http.StatusNoContent)
	})

	t.Run("last admin", func(t *testing.T) {
		assertStatus(t, del(author.ID, admin.ID), http.StatusConflict)
	})
}
