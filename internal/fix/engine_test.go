package fix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"obsgen/internal/diag"
	"obsgen/internal/source"
)

func diagWithFix(code diag.Code, span source.Span, fixes ...diag.Fix) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  "test diagnostic",
		Primary:  span,
		Fixes:    fixes,
	}
}

func TestApplySingleReplace(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("vm/login.go", []byte("type Login struct{}\n"))

	span := source.Span{File: id, Start: 5, End: 10}
	d := diagWithFix(diag.ValMissingObservableBase, span,
		ReplaceSpan("rename type", span, "Account", "Login"))

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	require.NoError(t, err)
	require.Len(t, res.Applied, 1)
	require.Equal(t, "type Account struct{}\n", string(res.Changed["vm/login.go"]))
}

func TestApplyGuardMismatchSkips(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("vm/login.go", []byte("type Login struct{}\n"))

	span := source.Span{File: id, Start: 5, End: 10}
	d := diagWithFix(diag.ValMissingObservableBase, span,
		ReplaceSpan("rename type", span, "Account", "SomethingElse"))

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	require.ErrorIs(t, err, ErrNoFixes)
	require.Empty(t, res.Applied)
	require.Len(t, res.Skipped, 1)
	require.Contains(t, res.Skipped[0].Reason, "changed since")
}

func TestApplyMultiEditBackToFront(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("vm/login.go", []byte("aa bb cc\n"))

	// Two edits in one fix; applying front-to-back would shift the second
	// span. The engine must apply them back-to-front.
	f := diag.Fix{
		Title: "double rewrite",
		Edits: []diag.TextEdit{
			{Span: source.Span{File: id, Start: 0, End: 2}, NewText: "xxxx", OldText: "aa"},
			{Span: source.Span{File: id, Start: 6, End: 8}, NewText: "y", OldText: "cc"},
		},
	}
	d := diagWithFix(diag.ValMissingObservableBase, f.Edits[0].Span, f)

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	require.NoError(t, err)
	require.Equal(t, "xxxx bb y\n", string(res.Changed["vm/login.go"]))
}

func TestApplyModeOnceStopsAfterFirst(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("vm/login.go", []byte("aa bb\n"))

	d1 := diagWithFix(diag.ValMissingObservableBase,
		source.Span{File: id, Start: 0, End: 2},
		ReplaceSpan("first", source.Span{File: id, Start: 0, End: 2}, "x", "aa"))
	d2 := diagWithFix(diag.ValMissingObservableBase,
		source.Span{File: id, Start: 3, End: 5},
		ReplaceSpan("second", source.Span{File: id, Start: 3, End: 5}, "y", "bb"))

	res, err := Apply(fs, []diag.Diagnostic{d1, d2}, ApplyOptions{Mode: ApplyModeOnce, DryRun: true})
	require.NoError(t, err)
	require.Len(t, res.Applied, 1)
	require.Equal(t, "first", res.Applied[0].Title)
	require.Equal(t, "x bb\n", string(res.Changed["vm/login.go"]))
}

func TestApplyPreferredFixWinsInOnceMode(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("vm/login.go", []byte("aa bb\n"))

	plain := ReplaceSpan("plain", source.Span{File: id, Start: 0, End: 2}, "x", "aa")
	preferred := Preferred(ReplaceSpan("preferred", source.Span{File: id, Start: 3, End: 5}, "y", "bb"))
	d := diagWithFix(diag.ValMissingObservableBase, source.Span{File: id}, plain, preferred)

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeOnce, DryRun: true})
	require.NoError(t, err)
	require.Len(t, res.Applied, 1)
	require.Equal(t, "preferred", res.Applied[0].Title)
}

func TestApplyModeIDSelectsOnlyTarget(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("vm/login.go", []byte("aa bb\n"))

	f1 := WithID(ReplaceSpan("first", source.Span{File: id, Start: 0, End: 2}, "x", "aa"), "fix-a")
	f2 := WithID(ReplaceSpan("second", source.Span{File: id, Start: 3, End: 5}, "y", "bb"), "fix-b")
	d := diagWithFix(diag.ValMissingObservableBase, source.Span{File: id}, f1, f2)

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{
		Mode: ApplyModeID, TargetID: "fix-b", DryRun: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Applied, 1)
	require.Equal(t, "fix-b", res.Applied[0].ID)
	require.Equal(t, "aa y\n", string(res.Changed["vm/login.go"]))
}

func TestApplyModeIDUnknownID(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("vm/login.go", []byte("aa\n"))
	d := diagWithFix(diag.ValMissingObservableBase, source.Span{File: id},
		WithID(ReplaceSpan("first", source.Span{File: id, Start: 0, End: 2}, "x", "aa"), "fix-a"))

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeID, TargetID: "nope"})
	require.ErrorIs(t, err, ErrNoFixes)
	require.Len(t, res.Skipped, 1)
	require.Equal(t, "nope", res.Skipped[0].ID)
}

func TestApplySynthesizesStableIDs(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("vm/login.go", []byte("aa\n"))
	d := diagWithFix(diag.ValMissingObservableBase, source.Span{File: id},
		ReplaceSpan("first", source.Span{File: id, Start: 0, End: 2}, "x", "aa"))

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	require.NoError(t, err)
	require.Equal(t, "VAL3002-0-0-0", res.Applied[0].ID)
}

func TestApplyWritesRealFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "login.go")
	require.NoError(t, os.WriteFile(path, []byte("type Login struct{}\n"), 0o644))

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	require.NoError(t, err)

	span := source.Span{File: id, Start: 5, End: 10}
	d := diagWithFix(diag.ValMissingObservableBase, span,
		ReplaceSpan("rename type", span, "Account", "Login"))

	_, err = Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "type Account struct{}\n", string(got))
}

func TestApplyDryRunLeavesDiskUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "login.go")
	require.NoError(t, os.WriteFile(path, []byte("type Login struct{}\n"), 0o644))

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	require.NoError(t, err)

	span := source.Span{File: id, Start: 5, End: 10}
	d := diagWithFix(diag.ValMissingObservableBase, span,
		ReplaceSpan("rename type", span, "Account", "Login"))

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	require.NoError(t, err)
	require.NotEmpty(t, res.Changed[fs.Get(id).Path])

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "type Login struct{}\n", string(got))
}

func TestInsertAndDeleteBuilders(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("vm/login.go", []byte("type Login struct{}\n"))

	ins := InsertText("insert", source.Span{File: id, Start: 19, End: 19}, " // viewmodel")
	del := DeleteSpan("delete", source.Span{File: id, Start: 0, End: 5}, "type ")
	// one fix so both spans address the original content
	combined := diag.Fix{Title: "combined", Edits: append(ins.Edits, del.Edits...)}

	d := diagWithFix(diag.ValMissingObservableBase, source.Span{File: id}, combined)
	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	require.NoError(t, err)
	require.Len(t, res.Applied, 1)
	require.Equal(t, "Login struct{} // viewmodel\n", string(res.Changed["vm/login.go"]))
}
