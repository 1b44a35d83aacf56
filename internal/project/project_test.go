package project

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"

	"obsgen/internal/diag"
	"obsgen/internal/model"
	"obsgen/internal/scan"
	"obsgen/internal/source"
)

// projectFiles typechecks the named file bodies as one package and runs the
// full filter+projector pair over them. Sources must be import-free so the
// harness needs no importer. File i registers under FileID(i).
func projectFiles(t *testing.T, names, srcs []string) ([]Item, *diag.Bag) {
	t.Helper()
	require.Equal(t, len(names), len(srcs))
	tokfs := token.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(srcs))
	files := make([]*ast.File, 0, len(srcs))
	for i, src := range srcs {
		f, err := parser.ParseFile(tokfs, names[i], src, parser.ParseComments)
		require.NoError(t, err)
		files = append(files, f)
		fileIDs[names[i]] = source.FileID(i)
	}

	info := &types.Info{
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
	}
	conf := types.Config{}
	pkg, err := conf.Check("example.com/app/vm", tokfs, files, info)
	require.NoError(t, err)

	var cands []scan.Candidate
	for i, f := range files {
		cands = append(cands, scan.File(f, tokfs, source.FileID(i))...)
	}

	bag := diag.NewBag(64)
	items := Project(diag.BagReporter{Bag: bag}, Package{
		Types: pkg,
		Info:  info,
		TokFS: tokfs,
		Files: fileIDs,
		Dir:   "vm",
	}, cands)
	return items, bag
}

func projectSrcs(t *testing.T, srcs ...string) ([]Item, *diag.Bag) {
	t.Helper()
	names := make([]string, len(srcs))
	for i := range srcs {
		names[i] = fmt.Sprintf("f%d.go", i)
	}
	return projectFiles(t, names, srcs)
}

func TestProjectObservable(t *testing.T) {
	items, bag := projectSrcs(t, `package vm

//obsgen:observable validate
type Login struct {
	name string
}
`)
	require.Equal(t, 0, bag.Len())
	require.Len(t, items, 1)
	it := items[0]
	require.Equal(t, "Login", it.TypeName)
	require.Equal(t, "example.com/app/vm", it.PkgPath)
	require.NotNil(t, it.Observable)
	require.True(t, it.Observable.Validate)
	require.Contains(t, it.Facts.Fields, "name")
}

func TestProjectObservableDuplicateReported(t *testing.T) {
	items, bag := projectSrcs(t,
		"package vm\n\n//obsgen:observable\ntype A struct{}\n",
		"package vm\n\n//obsgen:observable\ntype A2 struct{}\n//obsgen:observable\ntype B struct{}\n",
	)
	_ = items
	require.Equal(t, 0, bag.CountByCode(diag.ValObservableAlreadyDeclared),
		"distinct types never collide")

	_, bag2 := projectSrcs(t,
		"package vm\n\n//obsgen:observable\ntype A struct{}\n",
		"package vm\n\n//obsgen:observable\nfunc (a *A) touch() {}\n",
	)
	// second directive sits on a method, which observable disallows
	require.Equal(t, 1, bag2.CountByCode(diag.DirNotAllowedHere))
}

func TestProjectPropertyDefaults(t *testing.T) {
	items, bag := projectSrcs(t, `package vm

type Login struct {
	//obsgen:property
	user_name string
}
`)
	require.Equal(t, 0, bag.Len())
	require.Len(t, items, 1)
	p := items[0].Property
	require.NotNil(t, p)
	require.Equal(t, "user_name", p.FieldName)
	require.Equal(t, "UserName", p.PropertyName)
	require.Equal(t, "string", p.TypeExpr)
	require.Empty(t, p.TypeImports)
	require.False(t, p.Broadcast)
}

func TestProjectPropertyArguments(t *testing.T) {
	items, bag := projectSrcs(t, `package vm

type Login struct {
	//obsgen:property name=DisplayName notify=FullName,Greeting broadcast
	name string

	full string
}
`)
	require.Equal(t, 0, bag.Len())
	require.Len(t, items, 1)
	p := items[0].Property
	require.Equal(t, "DisplayName", p.PropertyName)
	require.Equal(t, []string{"FullName", "Greeting"}, p.Notify)
	require.True(t, p.Broadcast)
}

func TestProjectPropertyMultiNameFieldRejected(t *testing.T) {
	_, bag := projectSrcs(t, `package vm

type Login struct {
	//obsgen:property
	first, last string
}
`)
	require.Equal(t, 1, bag.CountByCode(diag.DirNotAllowedHere))
}

func TestProjectCommandSignatureCapture(t *testing.T) {
	items, bag := projectSrcs(t, `package vm

type Login struct{}

//obsgen:command
func (l *Login) submit(attempt int) error { return nil }
`)
	require.Equal(t, 0, bag.Len())
	require.Len(t, items, 1)
	cm := items[0].Command
	require.NotNil(t, cm)
	require.Equal(t, "submit", cm.MethodName)
	require.Equal(t, "Submit", cm.CommandName)
	require.Equal(t, []string{"int"}, cm.ParamTypes)
	require.Equal(t, []string{"error"}, cm.ResultTypes)
}

func TestProjectCommandCanExecuteResolution(t *testing.T) {
	items, bag := projectSrcs(t, `package vm

type Login struct {
	ready bool
}

func (l *Login) canSubmit() bool { return l.ready }

//obsgen:command canexecute=ready
func (l *Login) submit() {}

//obsgen:command canexecute=canSubmit
func (l *Login) retry() {}

//obsgen:command canexecute=missing
func (l *Login) reset() {}
`)
	require.Equal(t, 0, bag.Len(), "resolution failures are the validator's to report")
	require.Len(t, items, 3)

	byMethod := map[string]*Item{}
	for i := range items {
		byMethod[items[i].Command.MethodName] = &items[i]
	}
	require.Equal(t, model.TargetFieldRef, byMethod["submit"].Command.CanExecuteKind)
	require.Equal(t, model.TargetMethodCall, byMethod["retry"].Command.CanExecuteKind)
	require.Equal(t, model.TargetNone, byMethod["reset"].Command.CanExecuteKind)
}

func TestProjectRecipientCollectsHandlers(t *testing.T) {
	items, bag := projectSrcs(t, `package vm

type Ping struct{}
type Pong struct{}

//obsgen:recipient
type Hub struct{}

func (h *Hub) ReceivePing(m Ping) {}
func (h *Hub) ReceivePong(m Pong) {}
func (h *Hub) ReceiveBroken(a, b int) {}
func (h *Hub) helper() {}
`)
	require.Equal(t, 0, bag.Len())
	require.Len(t, items, 1)
	rm := items[0].Recipient
	require.NotNil(t, rm)
	require.Len(t, rm.Messages, 2, "odd-shaped handlers are excluded from the model")
	require.Equal(t, "ReceivePing", rm.Messages[0].Method)
	require.Equal(t, "Ping", rm.Messages[0].TypeExpr)
	require.Equal(t, "ReceivePong", rm.Messages[1].Method)
}

func TestProjectRecipientFirstOccurrenceWins(t *testing.T) {
	items, bag := projectSrcs(t,
		`package vm

type Ping struct{}

//obsgen:recipient
type Hub struct{}

func (h *Hub) ReceivePing(m Ping) {}
`,
		`package vm

//obsgen:recipient
func (h *Hub) ReceiveAgain(m Ping) {}
`)
	require.Equal(t, 0, bag.Len(), "repeat recipient requests are skipped silently")
	count := 0
	for _, it := range items {
		if it.Recipient != nil {
			count++
			require.Len(t, it.Recipient.Messages, 2,
				"the single projection still sees every handler")
		}
	}
	require.Equal(t, 1, count)
}

func TestProjectGenericTypeRejected(t *testing.T) {
	_, bag := projectSrcs(t, `package vm

//obsgen:observable
type Box[T any] struct {
	value T
}
`)
	require.Equal(t, 1, bag.CountByCode(diag.ValGenericTypeUnsupported))
}

func TestProjectDuplicateDirectiveLine(t *testing.T) {
	items, bag := projectSrcs(t, `package vm

//obsgen:observable
//obsgen:observable validate
type Login struct{}
`)
	require.Equal(t, 1, bag.CountByCode(diag.DirDuplicateDirective))
	require.Len(t, items, 1, "the first line still projects")
	require.False(t, items[0].Observable.Validate)
}

func TestProjectNonStructSilentSkip(t *testing.T) {
	items, bag := projectSrcs(t, `package vm

//obsgen:observable
type Score int
`)
	require.Equal(t, 0, bag.Len())
	require.Empty(t, items)
}

func TestProjectTypeSpanFollowsDeclaringFile(t *testing.T) {
	items, bag := projectSrcs(t,
		`package vm

type Login struct{}
`,
		`package vm

//obsgen:command
func (l *Login) submit() {}
`)
	require.Equal(t, 0, bag.Len())
	require.Len(t, items, 1)
	require.Equal(t, source.FileID(0), items[0].TypeSpan.File,
		"the type span points into the file declaring the type, not the method's")
	require.NotZero(t, items[0].TypeSpan.Start)
}

func TestProjectFactsIgnoreGeneratedFile(t *testing.T) {
	items, bag := projectFiles(t,
		[]string{"login.go", "login_obsgen.go"},
		[]string{`package vm

//obsgen:observable
type Login struct {
	//obsgen:property
	name string
}

func (l *Login) helper() {}
`, `package vm

func (l *Login) Name() string { return l.name }

func (l *Login) SetName(val string) { l.name = val }
`})
	require.Equal(t, 0, bag.Len())
	require.NotEmpty(t, items)
	facts := items[0].Facts
	require.Contains(t, facts.Methods, "helper")
	require.Contains(t, facts.DeclaredMethods, "helper")
	require.NotContains(t, facts.Methods, "Name",
		"output of a previous run must not read as a hand-written member")
	require.NotContains(t, facts.DeclaredMethods, "SetName")
}

func TestProjectDeclaredMethodsExcludePromoted(t *testing.T) {
	items, bag := projectSrcs(t, `package vm

type core struct{}

func (c *core) Refresh() {}

//obsgen:observable
type Login struct {
	core
}
`)
	require.Equal(t, 0, bag.Len())
	require.Len(t, items, 1)
	facts := items[0].Facts
	require.Contains(t, facts.Methods, "Refresh")
	require.NotContains(t, facts.DeclaredMethods, "Refresh")
}

func TestProjectValidatorMethodsCaptured(t *testing.T) {
	items, bag := projectSrcs(t, `package vm

//obsgen:observable validate
type Login struct {
	//obsgen:property validate
	name string
}

func (l *Login) validateName(val string) []error { return nil }
`)
	require.Equal(t, 0, bag.Len())
	var prop *model.PropertyModel
	for i := range items {
		if items[i].Property != nil {
			prop = items[i].Property
			require.Equal(t, []string{"validateName"}, items[i].Facts.ValidatorMethods)
		}
	}
	require.NotNil(t, prop)
	require.Equal(t, "validateName", prop.ValidateHook)
}

func TestProjectMisshapenValidatorNotAValidator(t *testing.T) {
	items, bag := projectSrcs(t, `package vm

//obsgen:observable validate
type Login struct {
	//obsgen:property validate
	name string
}

func (l *Login) validateName(val string) error { return nil }
`)
	require.Equal(t, 0, bag.Len(), "shape complaints belong to the validator stage")
	var prop *model.PropertyModel
	for i := range items {
		if items[i].Property != nil {
			prop = items[i].Property
			require.Empty(t, items[i].Facts.ValidatorMethods)
		}
	}
	require.NotNil(t, prop)
	require.Equal(t, "validateName", prop.ValidateHook,
		"the hook is still recorded so the rule can point at it")
}

func TestProjectObservableBodySpan(t *testing.T) {
	src := `package vm

//obsgen:observable
type Login struct {
	name string
}
`
	items, bag := projectSrcs(t, src)
	require.Equal(t, 0, bag.Len())
	require.Len(t, items, 1)
	sp := items[0].Observable.BodySpan
	require.NotZero(t, sp.Start)
	require.Equal(t, byte('{'), src[sp.Start-1], "insertion point sits just past the opening brace")
}

func TestProjectDeterministicOrder(t *testing.T) {
	src := `package vm

type Login struct {
	//obsgen:property
	b int
	//obsgen:property
	a int
}
`
	items, _ := projectSrcs(t, src)
	require.Len(t, items, 2)
	require.Equal(t, "b", items[0].Property.FieldName, "source order, not name order")
	require.Equal(t, "a", items[1].Property.FieldName)
}
