// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package locale

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Fallback is the language loaded when another one cannot be.
const Fallback = "en"

// Language describes one selectable language.
type Language struct {
	Code string
	// Native is the language's name in itself, e.g. "हिन्दी".
	Native string
	// English is the English name, e.g. "Hindi".
	English string
}

// ValidateCode checks that code is a plain language code. Codes end up in
// URLs and file paths, so anything beyond a BCP 47 base language is rejected.
func ValidateCode(code string) error {
	tag, err := language.Parse(code)
	if err != nil {
		return fmt.Errorf("invalid language code %q: %w", code, err)
	}
	base, _ := tag.Base()
	if base.String() != code {
		return fmt.Errorf("invalid language code %q: want a base language such as %q", code, base.String())
	}
	return nil
}

// Describe returns display names for code.
func Describe(code string) Language {
	lang := Language{Code: code, Native: code, English: code}
	tag, err := language.Parse(code)
	if err != nil {
		return lang
	}
	if name := display.Self.Name(tag); name != "" {
		lang.Native = name
	}
	if name := display.English.Tags().Name(tag); name != "" {
		lang.English = name
	}
	return lang
}

// DescribeAll describes each code in order.
func DescribeAll(codes []string) []Language {
	out := make([]Language, 0, len(codes))
	for _, code := range codes {
		out = append(out, Describe(code))
	}
	return out
}

// Detect suggests one of supported from the environment, following the GNU
// gettext priority LANGUAGE > LC_ALL > LC_MESSAGES > LANG. It returns
// Fallback when nothing matches.
func Detect(supported []string) string {
	if len(supported) == 0 {
		return Fallback
	}
	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tags = append(tags, language.Make(code))
	}
	matcher := language.NewMatcher(tags)

	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE can be a colon-separated list; take the first
		if env == "LANGUAGE" {
			val = strings.SplitN(val, ":", 2)[0]
		}
		// "hi_IN.UTF-8" -> "hi_IN"
		if idx := strings.IndexByte(val, '.'); idx >= 0 {
			val = val[:idx]
		}
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(val, "_", "-"))
		if err != nil {
			continue
		}
		_, idx, conf := matcher.Match(tag)
		if conf == language.No {
			continue
		}
		return supported[idx]
	}
	return Fallback
}

// DisplayName returns code's name in its own language.
func DisplayName(code string) string {
	return Describe(code).Native
}
