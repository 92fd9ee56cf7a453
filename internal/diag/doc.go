// Package diag defines the diagnostic model shared by checkers, the driver
// and the report formatters.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – note, warning or error; the labels are SARIF levels defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form such as "C101" and a fixed message.
//   - Message – human oriented text; for registered codes it is the fixed
//     message from the code table.
//   - Loc – file, 1-based line and 0-based column. Line-granular checkers
//     always report column 0.
//   - Origin – name of the checker that produced the finding.
//
// Text() renders the "<CODE> <message>" form that downstream tools parse;
// keep it byte-for-byte stable.
//
// # Emitting diagnostics
//
// Checkers return lazy sequences (iter.Seq[Diagnostic]). The driver drains
// them through a Reporter: BagReporter aggregates into a Bag and
// DedupReporter drops repeated findings before they get there.
//
// # Filtering
//
// Selector implements prefix based select/ignore lists; Bag.Filter applies
// it. Bag.Sort gives deterministic output order for formatters and golden
// tests.
//
// # Scope
//
// Package diag does not perform formatting for end users, IO or CLI
// integration. Rendering lives in internal/diagfmt; orchestration lives in
// internal/driver.
package diag
