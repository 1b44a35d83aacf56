package emit

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"obsgen/internal/model"
)

const testVersion = "v0.0.0-test"

func render(t *testing.T, u *model.TypeUnit) string {
	t.Helper()
	f, err := Render(u, testVersion)
	require.NoError(t, err)

	// Whatever else the output looks like, it must parse.
	fset := token.NewFileSet()
	_, err = parser.ParseFile(fset, f.Name, f.Content, parser.ParseComments)
	require.NoError(t, err, "generated output must be valid Go:\n%s", f.Content)

	return string(f.Content)
}

func loginUnit() *model.TypeUnit {
	return &model.TypeUnit{
		PkgPath:  "example.com/app/vm",
		PkgName:  "vm",
		TypeName: "Login",
		Dir:      "vm",
	}
}

func TestRenderHeaderAndFileName(t *testing.T) {
	u := loginUnit()
	u.Observable = &model.ObservableModel{}
	f, err := Render(u, testVersion)
	require.NoError(t, err)
	require.Equal(t, "login_obsgen.go", f.Name)
	require.Equal(t, "vm", f.Dir)
	require.True(t, strings.HasPrefix(string(f.Content), Header(testVersion)))
	require.True(t, IsGenerated(f.Content))
	require.False(t, IsGenerated([]byte("package vm\n")))
}

func TestRenderObservableAssertion(t *testing.T) {
	u := loginUnit()
	u.Observable = &model.ObservableModel{}
	src := render(t, u)
	require.Contains(t, src, "var _ observable.Observable = (*Login)(nil)")
	require.Contains(t, src, `"obsgen/runtime/observable"`)

	u.Observable.Validate = true
	src = render(t, u)
	require.Contains(t, src, "var _ observable.ErrorNotifier = (*Login)(nil)")
}

func TestRenderPropertyPair(t *testing.T) {
	u := loginUnit()
	u.Properties = []model.PropertyModel{{
		FieldName:    "name",
		PropertyName: "Name",
		TypeExpr:     "string",
		Comparable:   true,
		Notify:       []string{"FullName"},
	}}
	src := render(t, u)
	require.Contains(t, src, "func (l *Login) Name() string")
	require.Contains(t, src, "return l.name")
	require.Contains(t, src, "func (l *Login) SetName(val string)")
	require.Contains(t, src, "if l.name == val")
	require.Contains(t, src, `l.RaisePropertyChanged(l, "Name")`)
	require.Contains(t, src, `l.RaisePropertyChanged(l, "FullName")`)
	require.NotContains(t, src, "Broadcast")
}

func TestRenderNonComparableSkipsGuard(t *testing.T) {
	u := loginUnit()
	u.Properties = []model.PropertyModel{{
		FieldName:    "tags",
		PropertyName: "Tags",
		TypeExpr:     "[]string",
		Comparable:   false,
	}}
	src := render(t, u)
	require.NotContains(t, src, "==", "non-comparable types cannot be guarded")
	require.Contains(t, src, "func (l *Login) SetTags(val []string)")
}

func TestRenderValidateAndBroadcast(t *testing.T) {
	u := loginUnit()
	u.Observable = &model.ObservableModel{Validate: true}
	u.Properties = []model.PropertyModel{{
		FieldName:    "name",
		PropertyName: "Name",
		TypeExpr:     "string",
		Comparable:   true,
		Validate:     true,
		ValidateHook: "validateName",
		Broadcast:    true,
	}}
	src := render(t, u)
	require.Contains(t, src, `l.SetErrors("Name", l.validateName(val))`)
	require.Contains(t, src, `l.BroadcastPropertyChanged(l, "Name")`)
}

func TestRenderPropertyImports(t *testing.T) {
	u := loginUnit()
	u.Properties = []model.PropertyModel{{
		FieldName:    "deadline",
		PropertyName: "Deadline",
		TypeExpr:     "time.Time",
		TypeImports:  []string{"time"},
		Comparable:   true,
	}}
	src := render(t, u)
	require.Contains(t, src, `"time"`)
	require.Contains(t, src, "func (l *Login) Deadline() time.Time")
}

func TestRenderSyncCommand(t *testing.T) {
	u := loginUnit()
	u.Commands = []model.CommandModel{{
		MethodName:  "submit",
		CommandName: "Submit",
		ResultTypes: []string{"error"},
	}}
	src := render(t, u)
	require.Contains(t, src, "func (l *Login) SubmitCommand() *command.Relay")
	require.Contains(t, src, `command.Cached(&l.Host, "Submit"`)
	require.Contains(t, src, "command.NewRelay(func() error")
	require.Contains(t, src, "return l.submit()")
	require.Contains(t, src, `"obsgen/runtime/command"`)
}

func TestRenderVoidCommandWrapsNilReturn(t *testing.T) {
	u := loginUnit()
	u.Commands = []model.CommandModel{{
		MethodName:  "reset",
		CommandName: "Reset",
	}}
	src := render(t, u)
	require.Contains(t, src, "l.reset()")
	require.Contains(t, src, "return nil")
}

func TestRenderParameterizedCommand(t *testing.T) {
	u := loginUnit()
	u.Commands = []model.CommandModel{{
		MethodName:  "open",
		CommandName: "Open",
		ParamTypes:  []string{"string"},
	}}
	src := render(t, u)
	require.Contains(t, src, "*command.Relay1[string]")
	require.Contains(t, src, "command.NewRelay1(func(arg string) error")
	require.Contains(t, src, "l.open(arg)")
}

func TestRenderAsyncCommand(t *testing.T) {
	u := loginUnit()
	u.Commands = []model.CommandModel{{
		MethodName:   "sync",
		CommandName:  "Sync",
		Async:        true,
		ParamTypes:   []string{"context.Context"},
		ParamImports: []string{"context"},
		ResultTypes:  []string{"error"},
	}}
	src := render(t, u)
	require.Contains(t, src, "*command.AsyncRelay")
	require.Contains(t, src, "command.NewAsyncRelay(func(ctx context.Context) error")
	require.Contains(t, src, "return l.sync(ctx)")
	require.Contains(t, src, `"context"`)
}

func TestRenderCanExecuteFlavors(t *testing.T) {
	u := loginUnit()
	u.Commands = []model.CommandModel{
		{MethodName: "submit", CommandName: "Submit",
			CanExecute: "ready", CanExecuteKind: model.TargetFieldRef},
		{MethodName: "retry", CommandName: "Retry",
			CanExecute: "canRetry", CanExecuteKind: model.TargetMethodCall},
	}
	src := render(t, u)
	require.Contains(t, src, "WithCanExecute(func() bool")
	require.Contains(t, src, "return l.ready")
	require.Contains(t, src, "WithCanExecute(l.canRetry)")
}

func TestRenderRecipient(t *testing.T) {
	u := loginUnit()
	u.TypeName = "Hub"
	u.Recipient = &model.RecipientModel{Messages: []model.RecipientMessage{
		{TypeExpr: "Ping", Method: "ReceivePing"},
		{TypeExpr: "Pong", Method: "ReceivePong"},
	}}
	src := render(t, u)
	require.Contains(t, src, "func (h *Hub) RegisterRecipient(bus *messenger.Messenger) func()")
	require.Contains(t, src, "messenger.Register(bus, h.ReceivePing)")
	require.Contains(t, src, "messenger.Register(bus, h.ReceivePong)")
	require.Contains(t, src, `"obsgen/runtime/messenger"`)
}

func TestRenderDeterministic(t *testing.T) {
	build := func() *model.TypeUnit {
		u := loginUnit()
		u.Observable = &model.ObservableModel{}
		u.Properties = []model.PropertyModel{{
			FieldName: "name", PropertyName: "Name", TypeExpr: "string", Comparable: true,
		}}
		u.Commands = []model.CommandModel{{MethodName: "submit", CommandName: "Submit"}}
		return u
	}

	a, err := Render(build(), testVersion)
	require.NoError(t, err)
	b, err := Render(build(), testVersion)
	require.NoError(t, err)
	require.Equal(t, a.Content, b.Content, "equal units must render byte-identical files")
	require.True(t, build().Equal(build()))
}
