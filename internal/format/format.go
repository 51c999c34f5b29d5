// Package format renders extracted routes for the terminal, expanding
// domain abbreviations into readable names.
package format

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/routevoice/routevoice/internal/extractor"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleLabel  = lipgloss.NewStyle().Bold(true)
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleRule   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const ruleWidth = 70

// Render produces the human-readable route block with all
// abbreviations expanded.
func Render(record *extractor.RouteRecord) string {
	if record == nil {
		return "Unable to parse route information"
	}

	var b strings.Builder
	divider := styleRule.Render(strings.Repeat("=", ruleWidth))

	b.WriteString("\n" + divider + "\n")
	b.WriteString(styleHeader.Render("ROUTE INFORMATION (USA)") + "\n")
	b.WriteString(divider + "\n\n")

	b.WriteString(fmt.Sprintf("%s %s\n", styleLabel.Render("START POINT:"), Expand(record.StartPoint)))
	b.WriteString(fmt.Sprintf("%s %s\n\n", styleLabel.Render("END POINT:"), Expand(record.EndPoint)))

	b.WriteString(styleLabel.Render("ROUTE SEGMENTS (Sequential):") + "\n")
	if len(record.Segments) == 0 {
		b.WriteString(styleMuted.Render("  (none)") + "\n")
	}
	for i, segment := range record.Segments {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, Expand(segment)))
	}

	b.WriteString("\n" + divider + "\n")
	return b.String()
}

// RenderCorrected shows the backend's corrected transcription, printed
// before the structured block for verification.
func RenderCorrected(record *extractor.RouteRecord) string {
	if record == nil || record.CorrectedText == "" {
		return ""
	}
	return fmt.Sprintf("%s %s", styleLabel.Render("Corrected transcription:"), record.CorrectedText)
}

// RenderNoRoute reports the no-route outcome with the original input.
func RenderNoRoute(nr *extractor.NoRouteError) string {
	if nr == nil {
		return ""
	}
	reason := nr.Reason
	if reason == "" {
		reason = "no route instructions found"
	}
	return fmt.Sprintf("%s %s\n%s %s",
		styleLabel.Render("No route detected:"), reason,
		styleMuted.Render("Input was:"), nr.InputWas)
}
