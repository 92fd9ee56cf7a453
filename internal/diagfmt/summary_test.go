package diagfmt

import (
	"bytes"
	"testing"

	"codinglint/internal/diag"
)

func TestStatisticsAndCount(t *testing.T) {
	var buf bytes.Buffer
	counts := map[diag.Code]int{diag.CodingPresent: 1, diag.CodingNotFound: 12, diag.CodingUnknownEncoding: 0}
	if err := Statistics(&buf, counts); err != nil {
		t.Fatal(err)
	}
	want := "12    C101 Coding magic comment not found\n" +
		"1     C103 Coding magic comment present\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}

	buf.Reset()
	if err := Count(&buf, 13); err != nil || buf.String() != "13\n" {
		t.Fatalf("count = %q, %v", buf.String(), err)
	}
}
