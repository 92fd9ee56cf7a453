package driver

import (
	"slices"

	"codinglint/internal/diag"
)

// Stats summarises a run.
type Stats struct {
	Files      int
	Cached     int
	Suppressed int
	// ByCode counts reported diagnostics per code, before the output cap.
	ByCode map[diag.Code]int
}

// CodeCount is one row of the statistics table.
type CodeCount struct {
	Code  diag.Code
	Count int
}

// Sorted returns per-code counts ordered by code.
func (s Stats) Sorted() []CodeCount {
	rows := make([]CodeCount, 0, len(s.ByCode))
	for code, n := range s.ByCode {
		rows = append(rows, CodeCount{Code: code, Count: n})
	}
	slices.SortFunc(rows, func(a, b CodeCount) int {
		return int(a.Code) - int(b.Code)
	})
	return rows
}

func collectStats(res *Result) Stats {
	st := Stats{Files: len(res.Files), ByCode: make(map[diag.Code]int)}
	for _, fr := range res.Files {
		if fr.Cached {
			st.Cached++
		}
		st.Suppressed += fr.Suppressed
		for _, d := range fr.Diagnostics {
			st.ByCode[d.Code]++
		}
	}
	return st
}
