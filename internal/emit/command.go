package emit

import (
	"go/ast"
	"go/token"

	"obsgen/internal/model"
)

// commandDecls renders the lazily-cached accessor for every command:
//
//	func (l *Login) SubmitCommand() *command.Relay {
//		return command.Cached(&l.Host, "Submit", func() *command.Relay {
//			return command.NewRelay(func() error {
//				return l.submit()
//			}).WithCanExecute(func() bool {
//				return l.ready
//			})
//		})
//	}
//
// The relay flavor follows the annotated method's shape: Relay or Relay1
// for sync commands, AsyncRelay or AsyncRelay1 when async (the leading
// context.Context parameter selects nothing by itself; the async flag
// does).
func (b *builder) commandDecls() error {
	for i := range b.unit.Commands {
		c := &b.unit.Commands[i]
		if err := b.commandDecl(c); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) commandDecl(c *model.CommandModel) error {
	b.use(runtimeCommandPkg)

	valueParams := c.ParamTypes
	if c.Async && len(valueParams) > 0 && valueParams[0] == "context.Context" {
		valueParams = valueParams[1:]
	}

	relayName := "Relay"
	switch {
	case c.Async && len(valueParams) == 0:
		relayName = "AsyncRelay"
	case c.Async:
		relayName = "AsyncRelay1"
	case len(valueParams) == 1:
		relayName = "Relay1"
	}

	var argType ast.Expr
	if len(valueParams) == 1 {
		var err error
		argType, err = b.typeExpr(valueParams[0], c.ParamImports)
		if err != nil {
			return err
		}
	} else {
		b.use(c.ParamImports...)
	}

	relayType := ast.Expr(&ast.StarExpr{X: sel(ast.NewIdent("command"), relayName)})
	if argType != nil {
		relayType = &ast.StarExpr{X: &ast.IndexExpr{
			X:     sel(ast.NewIdent("command"), relayName),
			Index: argType,
		}}
	}

	relayExpr := b.relayConstructor(c, relayName, argType)
	if c.CanExecute != "" && c.CanExecuteKind != model.TargetNone {
		relayExpr = call(sel(relayExpr, "WithCanExecute"), b.canExecuteExpr(c))
	}

	accessor := call(
		sel(ast.NewIdent("command"), "Cached"),
		&ast.UnaryExpr{Op: token.AND, X: b.self("Host")},
		strLit(c.CommandName),
		funcLit(fields(), fields(field("", relayType)), block(returnStmt(relayExpr))),
	)

	b.decls = append(b.decls, &ast.FuncDecl{
		Recv: b.receiver(),
		Name: ast.NewIdent(c.CommandName + "Command"),
		Type: &ast.FuncType{
			Params:  fields(),
			Results: fields(field("", relayType)),
		},
		Body: block(returnStmt(accessor)),
	})
	return nil
}

// relayConstructor builds the command.New* call wrapping the annotated
// method in a shape-adapting closure.
func (b *builder) relayConstructor(c *model.CommandModel, relayName string, argType ast.Expr) ast.Expr {
	var params []*ast.Field
	var callArgs []ast.Expr
	if c.Async {
		b.use("context")
		params = append(params, field("ctx", sel(ast.NewIdent("context"), "Context")))
		callArgs = append(callArgs, ast.NewIdent("ctx"))
	}
	if argType != nil {
		params = append(params, field("arg", argType))
		callArgs = append(callArgs, ast.NewIdent("arg"))
	}

	invoke := call(b.self(c.MethodName), callArgs...)
	var body *ast.BlockStmt
	if len(c.ResultTypes) == 1 && c.ResultTypes[0] == "error" {
		body = block(returnStmt(invoke))
	} else {
		body = block(exprStmt(invoke), returnStmt(ast.NewIdent("nil")))
	}

	execute := funcLit(fields(params...), fields(field("", errorType())), body)
	return call(sel(ast.NewIdent("command"), "New"+relayName), execute)
}

func (b *builder) canExecuteExpr(c *model.CommandModel) ast.Expr {
	if c.CanExecuteKind == model.TargetMethodCall {
		// method value; its shape func() bool matches the predicate exactly
		return b.self(c.CanExecute)
	}
	return funcLit(
		fields(),
		fields(field("", ast.NewIdent("bool"))),
		block(returnStmt(b.self(c.CanExecute))),
	)
}
