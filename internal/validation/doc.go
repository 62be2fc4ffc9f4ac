// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package validation validates request structs with go-playground/validator.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Field names in error messages
// come from the `query` or `json` tag, so clients see the parameter name
// they sent:
//
//	type recommendParams struct {
//	    BookID int    `query:"book_id" validate:"required,min=1"`
//	    Method string `query:"method" validate:"omitempty,method"`
//	}
//
//	if verr := validation.ValidateStruct(&p); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
//
// # Custom Tags
//
//   - method: a recommendation method name or label accepted by
//     recommend.ParseMethod
package validation
