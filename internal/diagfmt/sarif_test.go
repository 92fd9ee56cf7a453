package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"codinglint/internal/diag"
)

func emptyBag() *diag.Bag { return diag.NewBag(1) }

func TestSarif(t *testing.T) {
	bag, fs := sampleBag()
	rules := []diag.Code{diag.CodingNotFound, diag.CodingUnknownEncoding, diag.CodingPresent}
	meta := SarifRunMeta{
		ToolName:       "codinglint",
		ToolVersion:    "1.0.0",
		InvocationArgs: []string{"codinglint", "check", "."},
		RunID:          "6f1e0c1e-8a4f-4f55-9d1c-3c1f0e7a8b9d",
		PathMode:       PathModeRelative,
	}
	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, rules, meta); err != nil {
		t.Fatal(err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("log = %+v", log)
	}
	run := log.Runs[0]
	if len(run.Tool.Driver.Rules) != 3 || run.Tool.Driver.Rules[2].ID != "C103" {
		t.Fatalf("rules = %+v", run.Tool.Driver.Rules)
	}
	if run.Tool.Driver.Rules[0].Name != "CodingMagicCommentNotFound" {
		t.Fatalf("rule name = %q", run.Tool.Driver.Rules[0].Name)
	}
	if run.AutomationDetails == nil || run.AutomationDetails.GUID != meta.RunID {
		t.Fatal("automation guid missing")
	}
	if len(run.Results) != 2 {
		t.Fatalf("results = %+v", run.Results)
	}
	r := run.Results[0]
	loc := r.Locations[0].PhysicalLocation
	if r.RuleID != "C102" || r.RuleIndex != 1 || r.Level != "warning" {
		t.Fatalf("result = %+v", r)
	}
	if loc.ArtifactLocation.URI != "pkg/bad.py" || loc.Region.StartLine != 2 || loc.Region.StartColumn != 1 {
		t.Fatalf("location = %+v", loc)
	}
	if len(run.Artifacts) != 2 || run.Invocations[0].CommandLine != "codinglint check ." {
		t.Fatalf("artifacts=%+v invocations=%+v", run.Artifacts, run.Invocations)
	}
}

func TestSarifEmpty(t *testing.T) {
	_, fs := sampleBag()
	var buf bytes.Buffer
	if err := Sarif(&buf, emptyBag(), fs, nil, SarifRunMeta{ToolName: "codinglint"}); err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	run := raw["runs"].([]any)[0].(map[string]any)
	if results, ok := run["results"].([]any); !ok || len(results) != 0 {
		t.Fatalf("results must be an empty array: %s", buf.String())
	}
}

func TestSarifLevel(t *testing.T) {
	for sev, want := range map[diag.Severity]string{
		diag.SevNote:     "note",
		diag.SevWarning:  "warning",
		diag.SevError:    "error",
		diag.Severity(7): "none",
	} {
		if got := sarifLevel(sev); got != want {
			t.Errorf("sarifLevel(%v) = %q, want %q", sev, got, want)
		}
	}
}
