package diag

import "iter"

// Reporter — минимальный контракт получения диагностик от проверок.
// Реализации: BagReporter (кладёт в Bag), DedupReporter (fan-in без дублей).
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// ReportAll drains a diagnostic sequence into r and returns how many
// diagnostics it forwarded.
func ReportAll(r Reporter, seq iter.Seq[Diagnostic]) int {
	if r == nil || seq == nil {
		return 0
	}
	n := 0
	for d := range seq {
		r.Report(d)
		n++
	}
	return n
}
