package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/isavita/sugai/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderMarkdown converts one advisor's markdown recommendation to HTML.
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// RenderReport flattens a full report into one markdown document: check
// findings for gated reports, then each advisor section.
func RenderReport(rep models.AnalysisReport) string {
	var b strings.Builder

	switch rep.Status {
	case models.StatusInsufficientData:
		b.WriteString("## Not enough data to analyze\n\n")
		for _, check := range rep.Checks {
			fmt.Fprintf(&b, "- **%s**: %s\n", check.Name, check.Reason)
		}
		return b.String()
	case models.StatusFailed:
		b.WriteString("## Analysis failed\n\n")
		for _, section := range rep.Sections {
			if section.Error != "" {
				fmt.Fprintf(&b, "- **%s**: %s\n", section.Name, section.Error)
			}
		}
		return b.String()
	}

	for i, section := range rep.Sections {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}
		if section.Error != "" {
			fmt.Fprintf(&b, "**%s** was unavailable: %s", section.Name, section.Error)
			continue
		}
		b.WriteString(section.Recommendation)
	}

	return b.String()
}
