package driver

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"obsgen/internal/diag"
	"obsgen/internal/source"
)

// MinGoVersion is the floor of the language gate: generated code relies on
// generics in the command runtime, so anything older cannot host it.
const MinGoVersion = "1.21"

// checkGate verifies the module's go directive against the minimum
// supported language version. It emits at most one blocking diagnostic for
// the whole run; everything downstream assumes the gate passed. Returns
// false when the run must stop.
func checkGate(r diag.Reporter, pkgs []*loadedPackage, configMin string) bool {
	minimum := MinGoVersion
	if configMin != "" && versionLess(minimum, configMin) {
		minimum = configMin
	}

	var goVersion string
	for _, lp := range pkgs {
		if lp.pkg.Module != nil && lp.pkg.Module.GoVersion != "" {
			goVersion = lp.pkg.Module.GoVersion
			break
		}
	}
	if goVersion == "" {
		diag.ReportWarning(r, diag.GateNoModule, source.Span{},
			"no module information found; language gate skipped").Emit()
		return true
	}

	if versionLess(goVersion, minimum) {
		diag.ReportError(r, diag.GateGoVersionTooOld, source.Span{},
			"module targets go "+goVersion+" but obsgen requires at least go "+minimum).
			WithNote(source.Span{}, "raise the go directive in go.mod").
			Emit()
		return false
	}
	return true
}

// versionLess compares two go directive strings ("1.21", "1.24.0").
func versionLess(a, b string) bool {
	va, errA := semver.NewVersion(normalizeGoVersion(a))
	vb, errB := semver.NewVersion(normalizeGoVersion(b))
	if errA != nil || errB != nil {
		return false
	}
	return va.LessThan(vb)
}

// normalizeGoVersion strips toolchain suffixes like "1.24rc1".
func normalizeGoVersion(v string) string {
	v = strings.TrimPrefix(v, "go")
	for _, cut := range []string{"rc", "beta"} {
		if i := strings.Index(v, cut); i > 0 {
			v = v[:i]
		}
	}
	return v
}
