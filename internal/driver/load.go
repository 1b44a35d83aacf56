package driver

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"

	"obsgen/internal/diag"
	"obsgen/internal/project"
	"obsgen/internal/scan"
	"obsgen/internal/source"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedModule

// loadedPackage pairs one loaded package with the span file IDs its syntax
// files were registered under.
type loadedPackage struct {
	pkg     *packages.Package
	fileIDs map[string]source.FileID
}

func (lp *loadedPackage) path() string { return lp.pkg.PkgPath }

func loadPackages(ctx context.Context, dir string, patterns []string) ([]*loadedPackage, error) {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    loadMode,
		ParseFile: func(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
			// Directives live in comments, so plain default parsing is not
			// enough.
			return parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
		},
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "load packages")
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages matched %v", patterns)
	}

	out := make([]*loadedPackage, 0, len(pkgs))
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			// Generation refuses to run over broken input: models projected
			// from a partial type graph would be unreliable.
			return nil, errors.Newf("package %s does not compile: %s", pkg.PkgPath, pkg.Errors[0].Msg)
		}
		out = append(out, &loadedPackage{
			pkg:     pkg,
			fileIDs: make(map[string]source.FileID, len(pkg.Syntax)),
		})
	}
	return out, nil
}

// registerFiles loads every syntax file into the span FileSet. Not safe for
// concurrent use; the driver calls it before fanning out.
func (lp *loadedPackage) registerFiles(fs *source.FileSet) error {
	for _, f := range lp.pkg.Syntax {
		filename := lp.pkg.Fset.Position(f.Pos()).Filename
		id, err := fs.Load(filename)
		if err != nil {
			return errors.Wrapf(err, "register %s", filename)
		}
		lp.fileIDs[filename] = id
	}
	return nil
}

// project runs the syntax filter and the semantic projector over the
// package.
func (lp *loadedPackage) project(r diag.Reporter) []project.Item {
	var cands []scan.Candidate
	for _, f := range lp.pkg.Syntax {
		filename := lp.pkg.Fset.Position(f.Pos()).Filename
		cands = append(cands, scan.File(f, lp.pkg.Fset, lp.fileIDs[filename])...)
	}
	if len(cands) == 0 {
		return nil
	}
	return project.Project(r, project.Package{
		Types: lp.pkg.Types,
		Info:  lp.pkg.TypesInfo,
		TokFS: lp.pkg.Fset,
		Files: lp.fileIDs,
		Dir:   lp.dir(),
	}, cands)
}

// dir is the package's directory on disk, where generated files belong.
func (lp *loadedPackage) dir() string {
	if len(lp.pkg.CompiledGoFiles) > 0 {
		return filepath.Dir(lp.pkg.CompiledGoFiles[0])
	}
	if len(lp.pkg.GoFiles) > 0 {
		return filepath.Dir(lp.pkg.GoFiles[0])
	}
	return ""
}
