// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package auth issues and verifies the bearer tokens that unlock Folio's
// admin routes.
//
// Tokens are HS256-signed JWTs carrying the caller's subject and roles.
// Verification pins the signing method and, when configured, the issuer,
// so a token minted for another service or with "alg: none" is rejected.
//
// Authorization of the verified roles is the job of the authz package:
//
//	Request -> auth (who are you) -> authz (may you) -> Handler
package auth
