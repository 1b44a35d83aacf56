package project

import (
	"go/types"
	"sort"
)

// renderType prints a type relative to the declaring package and collects
// the import paths the printed expression mentions. The rendered string is
// exactly what the emitter writes into generated code, so the qualifier
// matches how a file in the same package would spell the type.
func renderType(local *types.Package, t types.Type) (expr string, imports []string) {
	seen := make(map[string]bool)
	qual := func(pkg *types.Package) string {
		if pkg == local {
			return ""
		}
		if !seen[pkg.Path()] {
			seen[pkg.Path()] = true
		}
		return pkg.Name()
	}
	expr = types.TypeString(t, qual)

	imports = make([]string, 0, len(seen))
	for path := range seen {
		imports = append(imports, path)
	}
	sort.Strings(imports)
	return expr, imports
}

// mergeImports unions two sorted import lists, keeping the result sorted
// and duplicate-free.
func mergeImports(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
