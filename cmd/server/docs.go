// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package main provides the Folio HTTP server.
//
//go:generate swag init --dir ../../ --generalInfo cmd/server/docs.go --output ../../docs --outputTypes go
//
// @title Folio API
// @version 1.0
// @description Book recommendations from TF-IDF content similarity, item-item collaborative filtering and a hybrid of both.
// @description
// @description ## Formats
// @description
// @description `GET /recommend` returns a bare JSON array of book ids. Endpoints under `/api/v1` use the envelope
// @description `{"success": bool, "data": ..., "error": {...}, "meta": {...}}`.
// @description
// @description ## Authentication
// @description
// @description `POST /api/v1/index/rebuild` requires an HS256 bearer token (see `folioctl token`) whose roles the
// @description authorization policy allows. Read endpoints are public.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/folio/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:5000
// @BasePath /
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token: "Bearer <jwt>".
//
// @tag.name Recommendations
// @tag.description Content, collaborative and hybrid recommendations
//
// @tag.name Books
// @tag.description Catalog lookup, listing, search and random picks
//
// @tag.name Index
// @tag.description Index generation status, build history and rebuilds
//
// @tag.name Health
// @tag.description Liveness and readiness checks
package main
