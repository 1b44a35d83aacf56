package emit

import (
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"strconv"
	"unicode"

	"github.com/cockroachdb/errors"

	"obsgen/internal/model"
)

// builder accumulates generated declarations and the imports they actually
// reference for one unit.
type builder struct {
	unit    *model.TypeUnit
	recv    string
	decls   []ast.Decl
	imports map[string]bool
}

func newBuilder(u *model.TypeUnit) *builder {
	return &builder{
		unit:    u,
		recv:    receiverName(u.TypeName),
		imports: make(map[string]bool),
	}
}

func receiverName(typeName string) string {
	for _, r := range typeName {
		if unicode.IsLetter(r) {
			return string(unicode.ToLower(r))
		}
		break
	}
	return "x"
}

func (b *builder) use(paths ...string) {
	for _, p := range paths {
		b.imports[p] = true
	}
}

// typeExpr parses a rendered type expression back into an AST node and
// records the imports it mentions.
func (b *builder) typeExpr(expr string, deps []string) (ast.Expr, error) {
	e, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "type expression %q of %s", expr, b.unit.TypeName)
	}
	b.use(deps...)
	return e, nil
}

// fileDecls assembles the import declaration (if any) followed by the
// generated declarations.
func (b *builder) fileDecls() []ast.Decl {
	if len(b.imports) == 0 {
		return b.decls
	}
	paths := make([]string, 0, len(b.imports))
	for p := range b.imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	imp := &ast.GenDecl{Tok: token.IMPORT, Lparen: 1}
	for _, p := range paths {
		imp.Specs = append(imp.Specs, &ast.ImportSpec{
			Path: &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(p)},
		})
	}
	return append([]ast.Decl{imp}, b.decls...)
}

// receiver builds the `(x *T)` receiver field list.
func (b *builder) receiver() *ast.FieldList {
	return &ast.FieldList{List: []*ast.Field{{
		Names: []*ast.Ident{ast.NewIdent(b.recv)},
		Type:  &ast.StarExpr{X: ast.NewIdent(b.unit.TypeName)},
	}}}
}

// self builds `x.name` against the receiver.
func (b *builder) self(name string) ast.Expr {
	return sel(ast.NewIdent(b.recv), name)
}

func sel(x ast.Expr, name string) ast.Expr {
	return &ast.SelectorExpr{X: x, Sel: ast.NewIdent(name)}
}

func call(fn ast.Expr, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{Fun: fn, Args: args}
}

func strLit(s string) ast.Expr {
	return &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(s)}
}

func exprStmt(e ast.Expr) ast.Stmt {
	return &ast.ExprStmt{X: e}
}

func returnStmt(results ...ast.Expr) ast.Stmt {
	return &ast.ReturnStmt{Results: results}
}

func assign(lhs, rhs ast.Expr) ast.Stmt {
	return &ast.AssignStmt{Lhs: []ast.Expr{lhs}, Tok: token.ASSIGN, Rhs: []ast.Expr{rhs}}
}

func block(stmts ...ast.Stmt) *ast.BlockStmt {
	return &ast.BlockStmt{List: stmts}
}

func funcLit(params *ast.FieldList, results *ast.FieldList, body *ast.BlockStmt) ast.Expr {
	return &ast.FuncLit{
		Type: &ast.FuncType{Params: params, Results: results},
		Body: body,
	}
}

func fields(fs ...*ast.Field) *ast.FieldList {
	return &ast.FieldList{List: fs}
}

func field(name string, typ ast.Expr) *ast.Field {
	f := &ast.Field{Type: typ}
	if name != "" {
		f.Names = []*ast.Ident{ast.NewIdent(name)}
	}
	return f
}

func errorType() ast.Expr { return ast.NewIdent("error") }
