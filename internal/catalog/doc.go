// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package catalog holds the immutable record types the recommender is built
// from: the book catalog and the user rating table.
//
// Both tables are loaded once per index generation and never mutated. The
// list-encoded authors and genres columns of the source CSV are parsed with
// ParseList, which never fails: an unparsable value yields an empty list.
//
// The package also renders the catalog as bulk SQL INSERT statements for the
// relational schema used by the web tier (see ExportSQL).
package catalog
