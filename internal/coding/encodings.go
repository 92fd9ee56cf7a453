package coding

import (
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// UnknownEncodings returns the names from the allow-list that neither the
// IANA registry nor the WHATWG label set recognise. It is advisory: such
// names still take part in matching.
func UnknownEncodings(names []string) []string {
	var unknown []string
	for _, name := range names {
		if !knownEncoding(name) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

func knownEncoding(name string) bool {
	for _, candidate := range spellings(name) {
		if _, err := htmlindex.Get(candidate); err == nil {
			return true
		}
		// registered but unsupported names come back as (nil, nil)
		if _, err := ianaindex.IANA.Encoding(candidate); err == nil {
			return true
		}
	}
	return false
}

// spellings yields the usual variants of an encoding name: "latin-1" is
// registered as "latin1", "utf_8" as "utf-8".
func spellings(name string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	out := []string{name}
	if s := strings.ReplaceAll(name, "_", "-"); s != name {
		out = append(out, s)
	}
	if s := strings.NewReplacer("-", "", "_", "").Replace(name); s != name {
		out = append(out, s)
	}
	return out
}
