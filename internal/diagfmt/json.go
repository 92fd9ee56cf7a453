package diagfmt

import (
	"encoding/json"
	"io"

	"codinglint/internal/diag"
	"codinglint/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File   string `json:"file"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"` // 0-based, как сообщает плагин
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Text     string       `json:"text"`
	Origin   string       `json:"origin,omitempty"`
	Location LocationJSON `json:"location"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	RunID       string           `json:"run_id,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Total       int              `json:"total"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	out := DiagnosticsOutput{
		RunID:       opts.RunID,
		Diagnostics: make([]DiagnosticJSON, 0, len(items)),
		Count:       len(items),
		Total:       opts.Total,
	}
	if out.Total < bag.Len() {
		out.Total = bag.Len()
	}
	for _, d := range items {
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Text:     d.Text(),
			Origin:   d.Origin,
			Location: LocationJSON{
				File:   formatPath(fs, d.Loc.File, opts.PathMode),
				Line:   d.Loc.Line,
				Column: d.Loc.Col,
			},
		})
	}
	return out
}

// JSON пишет диагностики в w с отступами.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
