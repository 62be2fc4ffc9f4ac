// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package storage persists index build manifests in BadgerDB.
//
// A manifest records one installed generation: when it was built, what
// triggered the build and the size of every derived index. Manifests are
// kept newest first and pruned to a configured retention count. The store
// runs on disk when a path is configured and in memory otherwise.
//
// # Key Layout
//
//	manifest:<built_at unix nanos, zero padded>:<manifest id>
//
// # Thread Safety
//
// All operations are safe for concurrent use.
package storage
