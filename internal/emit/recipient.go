package emit

import (
	"go/ast"
	"go/token"
)

// recipientDecls renders the messenger wiring for a recipient type:
//
//	func (h *Hub) RegisterRecipient(bus *messenger.Messenger) func() {
//		offs := []func(){
//			messenger.Register(bus, h.ReceivePing),
//			messenger.Register(bus, h.ReceivePong),
//		}
//		return func() {
//			for _, off := range offs {
//				off()
//			}
//		}
//	}
//
// Handlers register in the model's order (sorted by method name) and the
// returned function unregisters all of them.
func (b *builder) recipientDecls() error {
	r := b.unit.Recipient
	if r == nil || len(r.Messages) == 0 {
		return nil
	}
	b.use(runtimeMessengerPkg)

	// func() spelled twice so no AST node is shared between positions
	offType := func() *ast.FuncType { return &ast.FuncType{Params: fields()} }

	// Message types never appear in the wiring; the method values carry
	// them, so their imports are not needed here.
	var regs []ast.Expr
	for _, m := range r.Messages {
		regs = append(regs, call(
			sel(ast.NewIdent("messenger"), "Register"),
			ast.NewIdent("bus"),
			b.self(m.Method),
		))
	}

	offsDecl := &ast.AssignStmt{
		Lhs: []ast.Expr{ast.NewIdent("offs")},
		Tok: token.DEFINE,
		Rhs: []ast.Expr{&ast.CompositeLit{
			Type: &ast.ArrayType{Elt: offType()},
			Elts: regs,
		}},
	}

	loop := &ast.RangeStmt{
		Key:   ast.NewIdent("_"),
		Value: ast.NewIdent("off"),
		Tok:   token.DEFINE,
		X:     ast.NewIdent("offs"),
		Body:  block(exprStmt(call(ast.NewIdent("off")))),
	}

	b.decls = append(b.decls, &ast.FuncDecl{
		Recv: b.receiver(),
		Name: ast.NewIdent("RegisterRecipient"),
		Type: &ast.FuncType{
			Params: fields(field("bus", &ast.StarExpr{
				X: sel(ast.NewIdent("messenger"), "Messenger"),
			})),
			Results: fields(field("", offType())),
		},
		Body: block(
			offsDecl,
			returnStmt(funcLit(fields(), nil, block(loop))),
		),
	})
	return nil
}
