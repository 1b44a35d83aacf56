package emit

import (
	"go/ast"
	"go/token"

	"obsgen/internal/model"
)

// propertyDecls renders the getter/setter pair for every property:
//
//	func (l *Login) Name() string { return l.name }
//
//	func (l *Login) SetName(val string) {
//		if l.name == val {
//			return
//		}
//		l.name = val
//		l.SetErrors("Name", l.validateName(val))
//		l.RaisePropertyChanged(l, "Name")
//		l.RaisePropertyChanged(l, "FullName")
//		l.BroadcastPropertyChanged(l, "Name")
//	}
//
// The equality guard is omitted for non-comparable field types; validate,
// notify and broadcast lines appear only when the model asks for them.
func (b *builder) propertyDecls() error {
	for i := range b.unit.Properties {
		p := &b.unit.Properties[i]
		typ, err := b.typeExpr(p.TypeExpr, p.TypeImports)
		if err != nil {
			return err
		}

		b.decls = append(b.decls, &ast.FuncDecl{
			Recv: b.receiver(),
			Name: ast.NewIdent(p.PropertyName),
			Type: &ast.FuncType{
				Params:  fields(),
				Results: fields(field("", typ)),
			},
			Body: block(returnStmt(b.self(p.FieldName))),
		})

		b.decls = append(b.decls, &ast.FuncDecl{
			Recv: b.receiver(),
			Name: ast.NewIdent("Set" + p.PropertyName),
			Type: &ast.FuncType{Params: fields(field("val", typ))},
			Body: block(b.setterStmts(p)...),
		})
	}
	return nil
}

func (b *builder) setterStmts(p *model.PropertyModel) []ast.Stmt {
	var stmts []ast.Stmt

	if p.Comparable {
		stmts = append(stmts, &ast.IfStmt{
			Cond: &ast.BinaryExpr{
				X:  b.self(p.FieldName),
				Op: token.EQL,
				Y:  ast.NewIdent("val"),
			},
			Body: block(returnStmt()),
		})
	}

	stmts = append(stmts, assign(b.self(p.FieldName), ast.NewIdent("val")))

	if p.ValidateHook != "" {
		stmts = append(stmts, exprStmt(call(
			b.self("SetErrors"),
			strLit(p.PropertyName),
			call(b.self(p.ValidateHook), ast.NewIdent("val")),
		)))
	}

	raise := func(name string) ast.Stmt {
		return exprStmt(call(b.self("RaisePropertyChanged"), ast.NewIdent(b.recv), strLit(name)))
	}
	stmts = append(stmts, raise(p.PropertyName))
	for _, n := range p.Notify {
		stmts = append(stmts, raise(n))
	}

	if p.Broadcast {
		stmts = append(stmts, exprStmt(call(
			b.self("BroadcastPropertyChanged"),
			ast.NewIdent(b.recv), strLit(p.PropertyName),
		)))
	}
	return stmts
}
