// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package authz decides whether a verified caller may use an admin route,
// using Casbin RBAC with path patterns:
//
//	[request_definition]
//	r = sub, obj, act
//
//	[policy_definition]
//	p = sub, obj, act
//
//	[role_definition]
//	g = _, _
//
//	[policy_effect]
//	e = some(where (p.eft == allow))
//
//	[matchers]
//	m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && r.act == p.act
//
// The embedded policy grants the admin role read and write on
// /api/v1/index/*. A policy file may replace it:
//
//	p, admin, /api/v1/index/*, write
//	p, operator, /api/v1/index/*, write
//	g, alice, operator
package authz
