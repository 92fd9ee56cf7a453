package diag

import (
	"strings"
)

// Selector decides which codes are reported. Entries are code prefixes
// ("C", "C10", "C101"); the longest prefix matching a code wins and a tie
// between select and ignore goes to select. An empty select list selects
// everything.
type Selector struct {
	selectList []string
	ignoreList []string
}

// NewSelector normalises both lists (trimmed, upper-cased, empties dropped).
func NewSelector(selectList, ignoreList []string) Selector {
	return Selector{
		selectList: normalizePrefixes(selectList),
		ignoreList: normalizePrefixes(ignoreList),
	}
}

// Allows reports whether a diagnostic with the given code id is reported.
func (s Selector) Allows(id string) bool {
	sel := longestPrefix(s.selectList, id)
	if len(s.selectList) == 0 {
		sel = 0
	}
	ign := longestPrefix(s.ignoreList, id)
	if sel < 0 {
		return false
	}
	if ign < 0 {
		return true
	}
	return sel >= ign
}

// Keep is a Bag.Filter predicate.
func (s Selector) Keep(d Diagnostic) bool {
	return s.Allows(d.Code.ID())
}

// longestPrefix returns the length of the longest entry that prefixes id,
// or -1 when none does.
func longestPrefix(list []string, id string) int {
	best := -1
	for _, p := range list {
		if strings.HasPrefix(id, p) && len(p) > best {
			best = len(p)
		}
	}
	return best
}

// SplitList parses a comma separated list as accepted on the command line.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return normalizePrefixes(strings.Split(value, ","))
}

func normalizePrefixes(list []string) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
