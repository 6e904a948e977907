// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation implements the question and answer flow.
//
// Each question appends a user message and a bot placeholder. When the
// active language is not English the question is translated to English
// before it is sent and the answer is translated back. Translation is best
// effort; a backend failure becomes a fixed apology inside the placeholder.
// The composer is disabled for the whole flow and re-enabled on every path.
package conversation
