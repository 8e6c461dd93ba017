package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/matsen/medrec/internal/medicine"
)

// Constants for output formatting.
const (
	DefaultListLimit = 50 // Default limit for list/find commands

	ListNameMaxLen   = 30 // Name column in list output
	ListDetailMaxLen = 45 // Uses column in list output
	TextWrapWidth    = 60 // Standard text wrap width
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MedicineListResponse is the response for list and find commands.
type MedicineListResponse struct {
	Medicines []medicine.Medicine `json:"medicines"`
	Total     int                 `json:"total"`
}

// printMedicineListHuman prints one line per medicine.
func printMedicineListHuman(meds []medicine.Medicine) {
	if len(meds) == 0 {
		fmt.Println("No medicines found")
		return
	}
	for _, m := range meds {
		fmt.Printf("%-*s  %-14s  %s\n",
			ListNameMaxLen, truncateString(m.Name, ListNameMaxLen),
			truncateString(m.CategoryOrUnknown(), 14),
			truncateString(formatList(m.Uses), ListDetailMaxLen))
	}
	fmt.Printf("\n%d medicines\n", len(meds))
}

// printMedicineHuman prints a detail view of one medicine.
func printMedicineHuman(m medicine.Medicine) {
	fmt.Printf("%s\n", m.Name)
	fmt.Printf("  Category:    %s\n", m.CategoryOrUnknown())
	fmt.Printf("  Uses:        %s\n", wrapText(formatList(m.Uses), TextWrapWidth, "               "))
	fmt.Printf("  Components:  %s\n", wrapText(formatList(m.Components), TextWrapWidth, "               "))
	if m.Description != "" {
		fmt.Printf("  Description: %s\n", wrapText(m.Description, TextWrapWidth, "               "))
	}
}

// formatList joins a list for display, or returns "-" when it is empty.
func formatList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// truncateString shortens s to maxLen characters, adding "..." when cut.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}

// formatDuration formats a duration for human output.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
