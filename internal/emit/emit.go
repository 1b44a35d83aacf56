// Package emit is the code-emitter stage: it renders validated TypeUnits
// into generated Go source. Output is built as a go/ast declaration list
// and printed through go/format, never assembled from string templates, so
// structurally equal units always render byte-identical files.
package emit

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/imports"

	"obsgen/internal/model"
)

// FileSuffix is appended to the snake-cased type name to form the
// generated file name.
const FileSuffix = "_obsgen.go"

const headerPrefix = "// Code generated by obsgen"

// Runtime package paths referenced by generated code.
const (
	runtimeObservablePkg = "obsgen/runtime/observable"
	runtimeCommandPkg    = "obsgen/runtime/command"
	runtimeMessengerPkg  = "obsgen/runtime/messenger"
)

// File is one rendered output, not yet written to disk.
type File struct {
	// Name is the bare file name; Dir is the package directory it belongs in.
	Name    string
	Dir     string
	Content []byte
}

// Header renders the generated-code marker line for a tool version.
func Header(version string) string {
	return headerPrefix + " " + version + ". DO NOT EDIT."
}

// IsGenerated reports whether content starts with the obsgen marker,
// regardless of the version that produced it.
func IsGenerated(content []byte) bool {
	line, _, _ := bytes.Cut(content, []byte("\n"))
	return strings.HasPrefix(string(line), headerPrefix)
}

// Render produces the generated file for one unit. Rendering is pure: same
// unit and version in, same bytes out.
func Render(u *model.TypeUnit, version string) (File, error) {
	b := newBuilder(u)

	if err := b.observableDecls(); err != nil {
		return File{}, err
	}
	if err := b.propertyDecls(); err != nil {
		return File{}, err
	}
	if err := b.commandDecls(); err != nil {
		return File{}, err
	}
	if err := b.recipientDecls(); err != nil {
		return File{}, err
	}

	var buf bytes.Buffer
	buf.WriteString(Header(version))
	buf.WriteString("\n\n")

	f := &ast.File{
		Name:  ast.NewIdent(u.PkgName),
		Decls: b.fileDecls(),
	}
	if err := printer.Fprint(&buf, token.NewFileSet(), f); err != nil {
		return File{}, errors.Wrapf(err, "print generated code for %s", u.TypeName)
	}

	name := u.HintName(FileSuffix)
	// imports.Process formats and prunes the import block in one pass; it
	// never touches the network in this configuration.
	out, err := imports.Process(name, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
		FormatOnly: true,
	})
	if err != nil {
		return File{}, errors.Wrapf(err, "format generated code for %s", u.TypeName)
	}
	return File{Name: name, Dir: u.Dir, Content: out}, nil
}

// RenderAll renders every unit, deterministic order preserved from the
// aggregator.
func RenderAll(units []*model.TypeUnit, version string) ([]File, error) {
	files := make([]File, 0, len(units))
	for _, u := range units {
		f, err := Render(u, version)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
