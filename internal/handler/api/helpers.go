// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net"
	"net/http"

	"github.com/olegiv/studio-cms/internal/middleware"
)

// audit records an admin action in the event log. Failures are already
// logged by the event service and never fail the request.
func (h *Handler) audit(r *http.Request, category, message string, meta map[string]any) {
	_ = h.events.LogInfo(r.Context(), category, message, middleware.GetUserID(r), remoteIP(r), meta)
}

// remoteIP returns the client address without the port.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// deleteByID parses {id}, calls del and writes 204 or the mapped error.
func deleteByID(w http.ResponseWriter, r *http.Request, del func(context.Context, int64) error, logMsg string) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	if err := del(r.Context(), id); err != nil {
		writeServiceError(w, r, err, logMsg)
		return
	}
	WriteNoContent(w)
}
