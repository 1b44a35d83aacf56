package emit

import (
	"go/ast"
	"go/token"
)

// observableDecls pins the annotated type to the runtime capability it is
// required to embed:
//
//	var _ observable.Observable = (*Login)(nil)
//
// A missing or shadowed embed then fails compilation of the generated file
// instead of surfacing as silent runtime misbehavior.
func (b *builder) observableDecls() error {
	if b.unit.Observable == nil {
		return nil
	}
	b.use(runtimeObservablePkg)

	iface := "Observable"
	if b.unit.Observable.Validate {
		iface = "ErrorNotifier"
	}

	b.decls = append(b.decls, &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{&ast.ValueSpec{
			Names: []*ast.Ident{ast.NewIdent("_")},
			Type:  sel(ast.NewIdent("observable"), iface),
			Values: []ast.Expr{call(
				&ast.ParenExpr{X: &ast.StarExpr{X: ast.NewIdent(b.unit.TypeName)}},
				ast.NewIdent("nil"),
			)},
		}},
	})
	return nil
}
