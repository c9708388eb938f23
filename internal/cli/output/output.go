// Package output renders command results as a JSON envelope or as styled
// human-readable text.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Output represents the JSON output format.
type Output struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ADD8"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00FF00"))
)

// JSON writes out as indented JSON.
func JSON(w io.Writer, out Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}
	return nil
}

// Success writes a success envelope.
func Success(w io.Writer, data interface{}, message string) error {
	return JSON(w, Output{
		Status:  "success",
		Data:    data,
		Message: message,
	})
}

// Error writes an error envelope when jsonOutput is set and returns err
// unchanged so the command still fails.
func Error(w io.Writer, jsonOutput bool, err error) error {
	if jsonOutput {
		_ = JSON(w, Output{
			Status: "error",
			Error:  err.Error(),
		})
	}
	return err
}

// Field writes one "label: value" line with a padded, styled label.
func Field(w io.Writer, label, value string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-10s", label+":")), value)
}

// Header renders a section heading.
func Header(text string) string {
	return headerStyle.Render(text)
}

// Active renders a marker for something currently in force.
func Active(text string) string {
	return activeStyle.Render(text)
}

// Inactive renders a marker for something no longer in force.
func Inactive(text string) string {
	return inactiveStyle.Render(text)
}

// OK renders a positive result.
func OK(text string) string {
	return okStyle.Render(text)
}
