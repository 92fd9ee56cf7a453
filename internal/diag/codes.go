package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Магический комментарий кодировки (PEP 263)
	CodingNotFound        Code = 101
	CodingUnknownEncoding Code = 102
	CodingPresent         Code = 103
)

// codeDescription holds the fixed message of every code. The texts are part
// of the report format consumed by other tools and must not change.
var codeDescription = map[Code]string{
	UnknownCode:           "Unknown diagnostic",
	CodingNotFound:        "Coding magic comment not found",
	CodingUnknownEncoding: "Unknown encoding found in coding magic comment",
	CodingPresent:         "Coding magic comment present",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 100 && ic < 200:
		return fmt.Sprintf("C%03d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode maps a rendered identifier such as "C101" back to its Code.
func ParseCode(id string) (Code, bool) {
	for c := range codeDescription {
		if c != UnknownCode && c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}
