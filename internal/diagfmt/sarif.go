package diagfmt

import (
	"encoding/json"
	"io"
	"strings"

	"codinglint/internal/diag"
	"codinglint/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool         `json:"tool"`
	AutomationDetails *sarifAutomation  `json:"automationDetails,omitempty"`
	Invocations       []sarifInvocation `json:"invocations,omitempty"`
	Results           []sarifResult     `json:"results"`
	Artifacts         []sarifArtifact   `json:"artifacts,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name,omitempty"`
	ShortDescription sarifMessage `json:"shortDescription"`
	DefaultConfig    sarifConfig  `json:"defaultConfiguration"`
}

type sarifConfig struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifAutomation struct {
	GUID string `json:"guid"`
}

type sarifInvocation struct {
	CommandLine         string `json:"commandLine,omitempty"`
	ExecutionSuccessful bool   `json:"executionSuccessful"`
}

type sarifArtifact struct {
	Location sarifArtifactLocation `json:"location"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI   string `json:"uri"`
	Index int    `json:"index"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0). Rules lists every
// code the tool may report, so that consumers see rules without results too.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, rules []diag.Code, meta SarifRunMeta) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           meta.ToolName,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
			Rules:          make([]sarifRule, 0, len(rules)),
		}},
		Results: make([]sarifResult, 0, bag.Len()),
	}
	if meta.RunID != "" {
		run.AutomationDetails = &sarifAutomation{GUID: meta.RunID}
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{
			CommandLine:         strings.Join(meta.InvocationArgs, " "),
			ExecutionSuccessful: true,
		}}
	}

	ruleIndex := make(map[diag.Code]int, len(rules))
	addRule := func(code diag.Code) int {
		if idx, ok := ruleIndex[code]; ok {
			return idx
		}
		idx := len(run.Tool.Driver.Rules)
		ruleIndex[code] = idx
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
			ID:               code.ID(),
			Name:             ruleName(code),
			ShortDescription: sarifMessage{Text: code.Title()},
			DefaultConfig:    sarifConfig{Level: "warning"},
		})
		return idx
	}
	for _, code := range rules {
		addRule(code)
	}

	artifactIndex := make(map[source.FileID]int)
	for _, d := range bag.Items() {
		uri := strings.TrimPrefix(formatPath(fs, d.Loc.File, meta.PathMode), "./")
		aidx, ok := artifactIndex[d.Loc.File]
		if !ok {
			aidx = len(run.Artifacts)
			artifactIndex[d.Loc.File] = aidx
			run.Artifacts = append(run.Artifacts, sarifArtifact{Location: sarifArtifactLocation{URI: uri, Index: aidx}})
		}
		run.Results = append(run.Results, sarifResult{
			RuleID:    d.Code.ID(),
			RuleIndex: addRule(d.Code),
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifactLocation{URI: uri, Index: aidx},
				Region:           sarifRegion{StartLine: d.Loc.Line, StartColumn: d.Loc.Col + 1},
			}}},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Version: sarifVersion, Schema: sarifSchema, Runs: []sarifRun{run}})
}

// ruleName turns "Coding magic comment not found" into
// "CodingMagicCommentNotFound".
func ruleName(code diag.Code) string {
	var b strings.Builder
	for _, word := range strings.Fields(code.Title()) {
		b.WriteString(strings.ToUpper(word[:1]) + word[1:])
	}
	return b.String()
}

// sarifLevel maps a severity to a SARIF result level.
func sarifLevel(sev diag.Severity) string {
	if sev > diag.SevError {
		return "none"
	}
	return sev.String()
}
