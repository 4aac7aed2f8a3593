package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: component keys, file paths.
	ColorCyan = lipgloss.Color("14")

	// ColorYellow is used for warnings and position markers (line:col).
	ColorYellow = lipgloss.Color("220")

	// colorBoldRed is used for compile errors (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// colorGreenCheck is used for the completion checkmark (✔) and "valid" status.
	colorGreenCheck = lipgloss.Color("10")
)

// Semantic styles — map domain concepts to visual presentation.
var (
	// styleNoun styles identifiable nouns (component keys, file paths).
	styleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// styleDim styles structural chrome (scope prefixes, separators, timestamps).
	styleDim = lipgloss.NewStyle().Faint(true)
)

// Diagnostic severities for FormatDiagnostic.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

func severityStyle(severity string) lipgloss.Style {
	switch severity {
	case SeverityError:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	case SeverityWarning:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatDiagnostic renders one compiler error or warning for the CLI
// boundary: `error: <component>: <message>` with the severity word colored
// and the component key in cyan. component may be empty for diagnostics
// with no single owning component.
//
// Format: <severity>: <component>: <message>
func FormatDiagnostic(severity, component, message string) string {
	styledSeverity := severityStyle(severity).Render(severity)
	if component == "" {
		return fmt.Sprintf("%s: %s", styledSeverity, message)
	}
	return fmt.Sprintf("%s: %s: %s", styledSeverity, styleNoun.Render(component), message)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatNotice renders a yellow arrow with a message for action-required output.
// Use this for "next steps" guidance where user action is needed.
func FormatNotice(msg string) string {
	arrow := lipgloss.NewStyle().Foreground(ColorYellow).Render("▶")
	return arrow + " " + msg
}

// vetCheckColumnWidth is the alignment column for detail text in FormatVetCheck.
const vetCheckColumnWidth = 34

// FormatVetCheck renders a validation check result with a green checkmark, label,
// and optional right-aligned detail text.
//
// Format: ✔ <label>                      <detail>
//
// The checkmark is green. The detail text (if provided) is dim/faint and
// right-aligned at column 34 from the start of the label. If detail is empty,
// no trailing whitespace is added.
func FormatVetCheck(label, detail string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	result := check + " " + label

	if detail != "" {
		// Calculate padding for right-alignment
		padding := vetCheckColumnWidth - len(label)
		if padding < 2 {
			padding = 2
		}
		styledDetail := styleDim.Render(detail)
		result += strings.Repeat(" ", padding) + styledDetail
	}

	return result
}
