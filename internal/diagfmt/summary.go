package diagfmt

import (
	"fmt"
	"io"
	"slices"

	"codinglint/internal/diag"
)

// Statistics prints one row per code: count, code and message, ordered by
// code.
func Statistics(w io.Writer, counts map[diag.Code]int) error {
	codes := make([]diag.Code, 0, len(counts))
	for code, n := range counts {
		if n > 0 {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)
	for _, code := range codes {
		if _, err := fmt.Fprintf(w, "%-5d %s %s\n", counts[code], code.ID(), code.Title()); err != nil {
			return err
		}
	}
	return nil
}

// Count prints the total number of diagnostics.
func Count(w io.Writer, total int) error {
	_, err := fmt.Fprintln(w, total)
	return err
}
