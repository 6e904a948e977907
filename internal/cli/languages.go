// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/translate"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/util"
)

// languageLister is the translation service surface used by languages.
type languageLister interface {
	Languages(ctx context.Context) (map[string]string, error)
}

func newLanguagesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Long: `List the languages supported by the translation service.

Falls back to the configured language list when the service is unreachable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			client := translate.NewClient(cfg.Translation.URL, translate.Options{Timeout: cfg.TranslationTimeout()})
			langs, err := listLanguages(cmd.Context(), client, cfg.Locale.Languages)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: translation service unavailable (%v); showing configured languages\n", err)
			}

			writeLanguageTable(cmd.OutOrStdout(), langs)
			return nil
		},
	}
}

// listLanguages asks the service, falling back to configured. The error
// reports the fallback.
func listLanguages(ctx context.Context, lister languageLister, configured []string) ([]locale.Language, error) {
	names, err := lister.Languages(ctx)
	if err != nil || len(names) == 0 {
		return locale.DescribeAll(configured), err
	}

	codes := make([]string, 0, len(names))
	for code := range names {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	langs := make([]locale.Language, 0, len(codes))
	for _, code := range codes {
		l := locale.Describe(code)
		if name := names[code]; name != "" {
			l.English = name
		}
		langs = append(langs, l)
	}
	return langs, nil
}

// writeLanguageTable prints code, English and native names in aligned
// columns. Native scripts are measured in display columns, not bytes.
func writeLanguageTable(w io.Writer, langs []locale.Language) {
	codeWidth, englishWidth := 0, 0
	for _, l := range langs {
		codeWidth = max(codeWidth, util.StringWidth(l.Code))
		englishWidth = max(englishWidth, util.StringWidth(l.English))
	}
	for _, l := range langs {
		fmt.Fprintf(w, "%s  %s  %s\n", util.PadRight(l.Code, codeWidth), util.PadRight(l.English, englishWidth), l.Native)
	}
}
