// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"fmt"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/util"
)

// User roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// ValidRole reports whether role is a known user role.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

const anyMethod = "^(GET|POST|PUT|PATCH|DELETE)$"

// defaultPolicies grants editors the content routes. Admins inherit them and
// additionally own everything under /api/admin.
var defaultPolicies = [][]string{
	{RoleEditor, "/api/admin/dashboard", "^GET$"},
	{RoleEditor, "/api/admin/blog/*", anyMethod},
	{RoleEditor, "/api/admin/projects", anyMethod},
	{RoleEditor, "/api/admin/projects/*", anyMethod},
	{RoleEditor, "/api/admin/categories", anyMethod},
	{RoleEditor, "/api/admin/categories/*", anyMethod},
	{RoleEditor, "/api/admin/clients", anyMethod},
	{RoleEditor, "/api/admin/clients/*", anyMethod},
	{RoleEditor, "/api/admin/testimonials", anyMethod},
	{RoleEditor, "/api/admin/testimonials/*", anyMethod},
	{RoleEditor, "/api/admin/contact-submissions", anyMethod},
	{RoleEditor, "/api/admin/contact-submissions/*", anyMethod},
	{RoleAdmin, "/api/admin/*", anyMethod},
}

// Authorizer answers role/path/method questions with a casbin enforcer
// built from an in-code model and policy set.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizer builds the enforcer and loads the default policies.
func NewAuthorizer() (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("parsing rbac model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("creating enforcer: %w", err)
	}
	e.AddFunction("keyMatch2", util.KeyMatch2Func)

	for _, p := range defaultPolicies {
		if has, _ := e.HasPolicy(p); has {
			continue
		}
		if _, err := e.AddPolicy(p); err != nil {
			return nil, fmt.Errorf("adding policy %v: %w", p, err)
		}
	}

	if _, err := e.AddRoleForUser(RoleAdmin, RoleEditor); err != nil {
		return nil, fmt.Errorf("adding role inheritance: %w", err)
	}

	return &Authorizer{enforcer: e}, nil
}

// Allowed reports whether role may call method on path.
func (a *Authorizer) Allowed(role, path, method string) (bool, error) {
	if !ValidRole(role) {
		return false, nil
	}
	// HEAD is served by the GET route, so it carries the GET permission.
	if method == http.MethodHead {
		method = http.MethodGet
	}
	return a.enforcer.Enforce(role, path, method)
}
