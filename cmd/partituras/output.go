package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"partituras/internal/domain"
)

// ListTitleMaxLen bounds titles in human list output.
const ListTitleMaxLen = 50

// ScoredResponse is a recommendation with its distance, as printed by
// recommend --distances.
type ScoredResponse struct {
	domain.Document
	Distance float64 `json:"distance"`
}

// ErrorResponse is the JSON body printed on failure.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// ImportResponse is the response for the import command.
type ImportResponse struct {
	Imported int    `json:"imported"`
	Store    string `json:"store"`
}

// outputJSON writes a value as formatted JSON to w.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes err in the selected format and returns its exit code.
func outputError(stdout, stderr io.Writer, human bool, err error) int {
	code := exitCode(err)
	if human {
		fmt.Fprintf(stderr, "error: %v\n", err)
	} else {
		_ = outputJSON(stdout, ErrorResponse{Error: err.Error(), Code: code})
	}
	return code
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func printScoreLine(w io.Writer, d domain.Document) {
	fmt.Fprintf(w, "%-6d %-*s  %s\n", d.ID, ListTitleMaxLen, truncate(d.Title, ListTitleMaxLen), d.Author)
}

func printScoreDetail(w io.Writer, d domain.Document) {
	fmt.Fprintf(w, "%d  %s\n", d.ID, d.Title)
	fmt.Fprintln(w, strings.Repeat("=", ListTitleMaxLen))
	fmt.Fprintf(w, "Author: %s\n", d.Author)
	fmt.Fprintf(w, "Genre:  %s\n", d.Genre)
	if d.Tempo != "" {
		fmt.Fprintf(w, "Tempo:  %s\n", d.Tempo)
	}
	fmt.Fprintf(w, "Keys:   %s\n", strings.Join(d.Keys, ", "))
	fmt.Fprintf(w, "Notes:  %s\n", strings.Join(d.Notes, " "))
}
