// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the queryfarmer command line.
//
// # Commands
//
//	queryfarmer                      start the full-screen interface
//	queryfarmer chat                 line-mode chat (history, /lang, /logout, /quit)
//	queryfarmer ask [--lang] [--user] QUESTION
//	queryfarmer languages            list supported languages
//	queryfarmer config show|path|init
//	queryfarmer version
//
// Every front end builds the same services (backend, translation, locale
// store, preferences) and drives the same session and conversation
// controllers; only the view differs.
package cli
