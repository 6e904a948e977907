// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides preference persistence for the queryfarmer client.
//
// Exactly two values survive a restart: the last signed-in username and the
// selected UI language. They are kept in a SQLite file under fixed keys.
//
// # Key Types
//
//   - PrefStore: key/value interface used by the session and locale controllers
//   - SQLiteStore: file-backed implementation (modernc.org/sqlite, no cgo)
//   - MemoryStore: in-process implementation for tests and fallback
//
// # Usage
//
//	path, _ := cfg.PrefsPath()
//	store, err := storage.Open(path)
//	defer store.Close()
//	lang, ok, err := store.Get(storage.KeySelectedLanguage)
//
// # Storage Location
//
// Preferences are stored in ~/.queryfarmer/prefs.db.
package storage
