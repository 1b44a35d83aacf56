package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"obsgen/internal/diag"
	"obsgen/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("vm/login.go", []byte("package vm\n\ntype Login struct{}\n"))

	bag := diag.NewBag(16)
	r := diag.BagReporter{Bag: bag}
	diag.ReportError(r, diag.ValMissingObservableBase,
		source.Span{File: id, Start: 17, End: 22},
		"type Login must embed observable.Base (or observable.ErrorsBase) to synthesize notification").
		WithNote(source.Span{File: id, Start: 17, End: 22}, "add `observable.Base` as the first embedded field").
		Emit()
	diag.ReportWarning(r, diag.GateNoModule, source.Span{},
		"no module information found; language gate skipped").Emit()
	bag.Sort()
	return bag, fs
}

func TestPrettyBasicShape(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowExcerpt: true})

	out := buf.String()
	require.Contains(t, out, "vm/login.go:3:6: ERROR VAL3002:")
	require.Contains(t, out, "type Login struct{}")
	require.Contains(t, out, "^~~~")
	require.Contains(t, out, "note: add `observable.Base`")
	require.Contains(t, out, "WARNING GATE1002:")
	require.NotContains(t, out, "\x1b[", "color off by default")
}

func TestPrettySpanlessDiagnosticHasNoPath(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})

	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "GATE1002") {
			require.False(t, strings.Contains(line, ".go:"), "gate diagnostics carry no location")
		}
	}
}

func TestJSONDocument(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
	}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 2, out.Count)
	require.Len(t, out.Diagnostics, 2)

	// sorted bag: the spanless gate warning sorts before the span at 17
	require.Equal(t, "GATE1002", out.Diagnostics[0].Code)

	val := out.Diagnostics[1]
	require.Equal(t, "VAL3002", val.Code)
	require.Equal(t, "ERROR", val.Severity)
	require.Equal(t, uint32(3), val.Location.StartLine)
	require.Equal(t, uint32(6), val.Location.StartCol)
	require.Len(t, val.Notes, 1)
}

func TestJSONMaxTruncatesOutputNotCount(t *testing.T) {
	bag, fs := testBag(t)
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	require.Equal(t, 2, out.Count)
	require.Len(t, out.Diagnostics, 1)
}

func TestSarifDocument(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	require.NoError(t, Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "obsgen", ToolVersion: "v1.2.3"}))

	var log map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	require.Equal(t, "2.1.0", log["version"])

	runs := log["runs"].([]any)
	require.Len(t, runs, 1)
	run := runs[0].(map[string]any)
	results := run["results"].([]any)
	require.Len(t, results, 2)

	val := results[1].(map[string]any)
	require.Equal(t, "VAL3002", val["ruleId"])
	require.Equal(t, "error", val["level"])
}
