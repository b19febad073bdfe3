package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/helmward/helmboard/pkg/status"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Status Styles
// =============================================================================

// statusStyles maps each status to its terminal color, worst statuses in
// red through to the best in green. Offline renders dim: it is bad news but
// a different kind than damage.
var statusStyles = map[status.Status]lipgloss.Style{
	status.Destroyed:        lipgloss.NewStyle().Foreground(colorRed).Bold(true),
	status.Critical:         lipgloss.NewStyle().Foreground(colorRed),
	status.Compromised:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	status.Degraded:         lipgloss.NewStyle().Foreground(colorYellow),
	status.Offline:          lipgloss.NewStyle().Foreground(colorDim),
	status.Operational:      lipgloss.NewStyle().Foreground(colorGreen),
	status.FullyOperational: lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
}

// renderStatus returns the colored display string for a status label.
func renderStatus(s status.Status) string {
	if style, ok := statusStyles[s]; ok {
		return style.Render(string(s))
	}
	return string(s)
}

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints view statistics on a single line.
func printStats(nodeCount, edgeCount, cappedCount int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d subsystems", nodeCount),
		fmt.Sprintf("%d dependencies", edgeCount),
	}
	if cappedCount > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d capped", cappedCount)))
	}

	state := iconFresh
	stateStyle := styleComputed
	if cached {
		state = iconCached
		stateStyle = styleCached
	}
	parts = append(parts, stateStyle.Render(state))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}
