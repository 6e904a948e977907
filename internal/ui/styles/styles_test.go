// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/notify"
)

func TestSeverityColor(t *testing.T) {
	tests := []struct {
		severity notify.Severity
		want     lipgloss.AdaptiveColor
	}{
		{notify.Success, Emerald},
		{notify.Error, Rose},
		{notify.Warning, Amber},
		{notify.Info, Cyan},
	}
	for _, tt := range tests {
		if got := SeverityColor(tt.severity); got != tt.want {
			t.Errorf("SeverityColor(%v) = %v, want %v", tt.severity, got, tt.want)
		}
	}
}

func TestSeverityIndicator(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range []notify.Severity{notify.Info, notify.Success, notify.Warning, notify.Error} {
		ind := SeverityIndicator(s)
		if ind == "" {
			t.Errorf("empty indicator for %v", s)
		}
		if seen[ind] {
			t.Errorf("indicator %q reused", ind)
		}
		seen[ind] = true
	}
}

func TestRenderSeverity(t *testing.T) {
	out := RenderSeverity(notify.Warning, "careful")
	if !strings.Contains(out, "[!]") || !strings.Contains(out, "careful") {
		t.Errorf("RenderSeverity = %q", out)
	}
	if !strings.Contains(RenderError("boom"), "[X]") {
		t.Error("RenderError should carry the error indicator")
	}
	if !strings.Contains(RenderSuccess("done"), "[OK]") {
		t.Error("RenderSuccess should carry the success indicator")
	}
}

func TestNewTheme(t *testing.T) {
	dark := NewTheme("dark")
	if !dark.IsDark || dark.MarkdownStyle() != "dark" {
		t.Errorf("dark theme: IsDark=%v style=%s", dark.IsDark, dark.MarkdownStyle())
	}
	light := NewTheme("LIGHT")
	if light.IsDark || light.Name != "light" || light.MarkdownStyle() != "light" {
		t.Errorf("light theme: %+v", light.Name)
	}
	if got := NewTheme("neon").Name; got != "auto" {
		t.Errorf("unknown theme name = %q, want auto", got)
	}

	for name, style := range map[string]lipgloss.Style{
		"FormBox":   dark.FormBox,
		"PickerBox": dark.PickerBox,
		"Toast":     dark.Toast,
	} {
		if style.Render("x") == "" {
			t.Errorf("%s renders empty", name)
		}
	}
}

func TestLayoutMode(t *testing.T) {
	theme := NewTheme("dark")
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{80, LayoutMedium},
		{140, LayoutWide},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 30)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: got %v, want %v", tt.width, got, tt.want)
		}
	}
}
