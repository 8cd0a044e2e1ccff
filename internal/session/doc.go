// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the authenticated user and persists session
// state across process restarts.
//
// Sessions have a fixed 12-hour lifetime measured from login. Validity
// is re-checked on demand via CheckSession and in the background by a
// Watchdog; an expired session is logged out as a side effect of the
// check that discovers it.
//
// # Key Types
//
//   - Store: in-memory session state mirrored to a Backend
//   - Backend: durable storage behind a Store (FileBackend by default)
//   - Watchdog: periodic background validity checker
//
// # Usage
//
// Create a store over the default per-user file:
//
//	store := session.NewStore(session.NewFileBackend(session.DefaultPath()))
//
// Record a login and check validity later:
//
//	if err := store.Login(token, user); err != nil {
//	    // empty token was rejected
//	}
//	if !store.CheckSession() {
//	    // session expired and has been logged out
//	}
//
// The HTTP layer reads the token directly from the session file via
// ReadStoredToken rather than through a Store, so wiping the file is
// enough to de-authenticate subsequent requests.
package session
