package diag

import (
	"fmt"

	"fortio.org/safecast"

	"codinglint/internal/source"
)

// Location is a line-granular position inside a FileSet file.
type Location struct {
	File source.FileID
	Line uint32 // 1-based
	Col  uint32 // 0-based; всегда 0 для построчных проверок
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Loc      Location
	// Origin names the checker that produced the finding.
	Origin string
}

func New(sev Severity, code Code, loc Location, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Loc:      loc,
		Message:  msg,
	}
}

// At builds a Location from plain ints as reported by checkers.
func At(line, col int) Location {
	l, err := safecast.Conv[uint32](line)
	if err != nil {
		panic(fmt.Errorf("line overflow: %w", err))
	}
	c, err := safecast.Conv[uint32](col)
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return Location{Line: l, Col: c}
}

// Text returns "<CODE> <message>", e.g. "C101 Coding magic comment not found".
func (d Diagnostic) Text() string {
	return d.Code.ID() + " " + d.Message
}

func (d Diagnostic) WithOrigin(origin string) Diagnostic {
	d.Origin = origin
	return d
}

func (d Diagnostic) InFile(id source.FileID) Diagnostic {
	d.Loc.File = id
	return d
}
