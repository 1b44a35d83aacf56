package project

import (
	"go/types"
	"sort"
	"strings"

	"obsgen/internal/emit"
	"obsgen/internal/model"
)

// typeFacts computes (and memoizes per run) the symbol-free observations
// validation rules consume. Method names come from the pointer method set so
// both value and pointer receivers are visible; every slice is sorted for
// deterministic model equality.
func (p *projector) typeFacts(named *types.Named, st *types.Struct) model.TypeFacts {
	if f, ok := p.facts[named]; ok {
		return f
	}

	var f model.TypeFacts
	f.IsGeneric = named.TypeParams().Len() > 0

	for i := 0; i < st.NumFields(); i++ {
		fd := st.Field(i)
		if fd.Embedded() {
			f.Embeds = append(f.Embeds, qualifiedName(fd.Type()))
			continue
		}
		f.Fields = append(f.Fields, fd.Name())
		if isBool(fd.Type()) {
			f.BoolFields = append(f.BoolFields, fd.Name())
		}
	}

	mset := types.NewMethodSet(types.NewPointer(named))
	for i := 0; i < mset.Len(); i++ {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok {
			continue
		}
		// Methods living in a previous run's output must not count as
		// user declarations, or regeneration would clash with itself.
		if p.inGeneratedFile(fn) {
			continue
		}
		f.Methods = append(f.Methods, fn.Name())
		sig := fn.Type().(*types.Signature)
		if sig.Params().Len() == 0 && sig.Results().Len() == 1 && isBool(sig.Results().At(0).Type()) {
			f.BoolMethods = append(f.BoolMethods, fn.Name())
		}
		if sig.Params().Len() == 1 && sig.Results().Len() == 1 && isErrorSlice(sig.Results().At(0).Type()) {
			f.ValidatorMethods = append(f.ValidatorMethods, fn.Name())
		}
	}

	for i := 0; i < named.NumMethods(); i++ {
		fn := named.Method(i)
		if p.inGeneratedFile(fn) {
			continue
		}
		f.DeclaredMethods = append(f.DeclaredMethods, fn.Name())
	}

	sort.Strings(f.Methods)
	sort.Strings(f.DeclaredMethods)
	sort.Strings(f.Embeds)
	sort.Strings(f.BoolFields)
	sort.Strings(f.BoolMethods)
	sort.Strings(f.ValidatorMethods)
	// Fields keep declaration order.

	p.facts[named] = f
	return f
}

// qualifiedName renders an embedded type as "import/path.Name"; local types
// render as "pkgpath.Name" too so HasEmbed matching stays uniform.
func qualifiedName(t types.Type) string {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return t.String()
	}
	obj := named.Obj()
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

func isBool(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Kind() == types.Bool
}

func isErrorSlice(t types.Type) bool {
	s, ok := t.Underlying().(*types.Slice)
	return ok && types.Identical(s.Elem(), types.Universe.Lookup("error").Type())
}

// inGeneratedFile reports whether the function is declared in a file carrying
// the generated-output suffix.
func (p *projector) inGeneratedFile(fn *types.Func) bool {
	if !fn.Pos().IsValid() {
		return false
	}
	return strings.HasSuffix(p.pkg.TokFS.Position(fn.Pos()).Filename, emit.FileSuffix)
}
