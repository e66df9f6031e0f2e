// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/studio-cms/internal/auth"
)

func TestSubmitContact(t *testing.T) {
	_, h := testSetup(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
	}{
		{
			name:       "valid",
			body:       `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","message":"Hello <b>there</b>"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "bad email",
			body:       `{"firstName":"Ada","lastName":"Lovelace","email":"ada","message":"Hi"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "email",
		},
		{
			name:       "markup only message",
			body:       `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","message":"<script></script>"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "message",
		},
		{
			name:       "extra field",
			body:       `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","message":"Hi","isRead":true}`,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := executeHandler(t, h.SubmitContact, newJSONRequest(t, http.MethodPost, "/api/contact", tt.body, nil))
			assertStatus(t, w, tt.wantStatus)
			if tt.wantField != "" {
				assert.Contains(t, unmarshalError(t, w).Details, tt.wantField)
			}
		})
	}
}

func TestContactSubmissions_Admin(t *testing.T) {
	_, h := testSetup(t)
	editor := createTestUser(t, h, "editor@example.com", auth.RoleEditor)

	for _, msg := range []string{"first", "second", "third"} {
		body := `{"firstName":"A","lastName":"B","email":"a@example.com","message":"` + msg + `"}`
		w := executeHandler(t, h.SubmitContact, newJSONRequest(t, http.MethodPost, "/api/contact", body, nil))
		assertStatus(t, w, http.StatusCreated)
	}

	w := executeHandler(t, h.ListContacts, asUser(newRequest(t, http.MethodGet, "/api/admin/contact-submissions?perPage=2", nil), editor))
	assertStatus(t, w, http.StatusOK)
	subs, meta := unmarshalList[ContactResponse](t, w)
	require.Len(t, subs, 2)
	assert.Equal(t, &Meta{Total: 3, Page: 1, PerPage: 2, Pages: 2}, meta)

	id := strconv.FormatInt(subs[0].ID, 10)
	req := asUser(newJSONRequest(t, http.MethodPatch, "/api/admin/contact-submissions/"+id,
		`{"isReplied":true}`, map[string]string{"id": id}), editor)
	w = executeHandler(t, h.UpdateContactStatus, req)
	assertStatus(t, w, http.StatusOK)
	updated := unmarshalData[ContactResponse](t, w)
	assert.True(t, updated.IsReplied)
	assert.True(t, updated.IsRead, "replied implies read")

	w = executeHandler(t, h.ListContacts, asUser(newRequest(t, http.MethodGet, "/api/admin/contact-submissions?isRead=false", nil), editor))
	unread, _ := unmarshalList[ContactResponse](t, w)
	assert.Len(t, unread, 2)

	req = asUser(newRequest(t, http.MethodDelete, "/api/admin/contact-submissions/"+id, map[string]string{"id": id}), editor)
	w = executeHandler(t, h.DeleteContact, req)
	assertStatus(t, w, http.StatusNoContent)

	req = asUser(newRequest(t, http.MethodGet, "/api/admin/contact-submissions/"+id, map[string]string{"id": id}), editor)
	w = executeHandler(t, h.GetContact, req)
	assertStatus(t, w, http.StatusNotFound)
}

func TestClientsAndTestimonials(t *testing.T) {
	_, h := testSetup(t)
	editor := createTestUser(t, h, "editor@example.com", auth.RoleEditor)

	for _, body := range []string{
		`{"name":"Acme","sortOrder":2}`,
		`{"name":"Globex","sortOrder":1}`,
		`{"name":"Initech","isActive":false}`,
	} {
		req := asUser(newJSONRequest(t, http.MethodPost, "/api/admin/clients", body, nil), editor)
		assertStatus(t, executeHandler(t, h.CreateClient, req), http.StatusCreated)
	}

	w := executeHandler(t, h.ListActiveClients, newRequest(t, http.MethodGet, "/api/clients", nil))
	clients, _ := unmarshalList[ClientResponse](t, w)
	require.Len(t, clients, 2)
	assert.Equal(t, "Globex", clients[0].Name)
	assert.Equal(t, "Acme", clients[1].Name)

	w = executeHandler(t, h.ListClients, asUser(newRequest(t, http.MethodGet, "/api/admin/clients?active=false", nil), editor))
	inactive, _ := unmarshalList[ClientResponse](t, w)
	require.Len(t, inactive, 1)
	assert.Equal(t, "Initech", inactive[0].Name)

	req := asUser(newJSONRequest(t, http.MethodPost, "/api/admin/testimonials", `{"name":"Jo","content":"Great"}`, nil), editor)
	w = executeHandler(t, h.CreateTestimonial, req)
	assertStatus(t, w, http.StatusCreated)
	assert.Equal(t, int64(5), unmarshalData[TestimonialResponse](t, w).Rating)

	req = asUser(newJSONRequest(t, http.MethodPost, "/api/admin/testimonials", `{"name":"Jo","content":"Bad","rating":6}`, nil), editor)
	w = executeHandler(t, h.CreateTestimonial, req)
	assertStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, unmarshalError(t, w).Details, "rating")
}

func TestSettings(t *testing.T) {
	_, h := testSetup(t)
	admin := createTestUser(t, h, "admin@example.com", auth.RoleAdmin)

	w := executeHandler(t, h.GetSettings, newRequest(t, http.MethodGet, "/api/settings", nil))
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "Studio", unmarshalData[SettingsResponse](t, w).SiteName)

	body := `{"siteName":"Acme Studio","contactEmail":"hi@acme.test","githubUrl":"https://github.com/acme"}`
	w = executeHandler(t, h.UpdateSettings, asUser(newJSONRequest(t, http.MethodPut, "/api/admin/settings", body, nil), admin))
	assertStatus(t, w, http.StatusOK)

	w = executeHandler(t, h.GetSettings, newRequest(t, http.MethodGet, "/api/settings", nil))
	got := unmarshalData[SettingsResponse](t, w)
	assert.Equal(t, "Acme Studio", got.SiteName)
	assert.Equal(t, "https://github.com/acme", got.GithubURL)

	body = `{"siteName":"","facebookUrl":"nope"}`
	w = executeHandler(t, h.UpdateSettings, asUser(newJSONRequest(t, http.MethodPut, "/api/admin/settings", body, nil), admin))
	assertStatus(t, w, http.StatusBadRequest)
	details := unmarshalError(t, w).Details
	assert.Contains(t, details, "siteName")
	assert.Contains(t, details, "facebookUrl")
}
