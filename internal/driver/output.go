package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"obsgen/internal/aggregate"
	"obsgen/internal/diag"
	"obsgen/internal/emit"
	"obsgen/internal/model"
	"obsgen/internal/source"
)

// emitUnits renders units and applies them to disk according to the mode.
// Per-file failures become diagnostics rather than aborting the run, so one
// unwritable directory does not hide findings about the rest.
func emitUnits(r diag.Reporter, res *Result, units []*model.TypeUnit, errored map[string]bool, pkgDirs []string, opts Options) error {
	var cache *fingerprintCache
	var prev map[string]model.Digest
	if opts.Mode == ModeGenerate && !opts.NoCache && opts.Config.CacheEnabled() {
		cache = openCache(opts.Dir)
		prev = cache.Load(opts.Version)
	}
	changed, next := aggregate.Changed(units, prev)

	changedSet := make(map[*model.TypeUnit]bool, len(changed))
	for _, u := range changed {
		changedSet[u] = true
	}

	expected := make(map[string]bool, len(units))
	for _, u := range units {
		expected[filepath.Join(u.Dir, u.HintName(emit.FileSuffix))] = true
	}

	for _, u := range units {
		if errored[u.PkgPath+"."+u.TypeName] {
			// A unit with blocking findings keeps whatever output it has;
			// its digest must not be cached as emitted.
			delete(next, u.PkgPath+"."+u.TypeName)
			continue
		}
		outPath := filepath.Join(u.Dir, u.HintName(emit.FileSuffix))
		existing, readErr := os.ReadFile(outPath)
		exists := readErr == nil

		if opts.Mode == ModeGenerate && !changedSet[u] && exists {
			res.Unchanged++
			continue
		}

		f, err := emit.Render(u, opts.Version)
		if err != nil {
			diag.ReportError(r, diag.EmitFormatFailed, u.TypeSpan,
				"rendering "+u.TypeName+" failed: "+err.Error()).Emit()
			delete(next, u.PkgPath+"."+u.TypeName)
			continue
		}

		switch opts.Mode {
		case ModeCheck:
			if !exists {
				diag.ReportError(r, diag.EmitDrift, u.TypeSpan,
					"generated file "+outPath+" is missing; run obsgen generate").Emit()
				res.Drifted = append(res.Drifted, outPath)
			} else if !bytes.Equal(existing, f.Content) {
				diag.ReportError(r, diag.EmitDrift, u.TypeSpan,
					"generated file "+outPath+" is out of date; run obsgen generate").Emit()
				res.Drifted = append(res.Drifted, outPath)
			}
		case ModeGenerate:
			if exists && bytes.Equal(existing, f.Content) {
				res.Unchanged++
				continue
			}
			if err := os.WriteFile(outPath, f.Content, 0o644); err != nil {
				diag.ReportError(r, diag.EmitWriteFailed, u.TypeSpan,
					"writing "+outPath+" failed: "+err.Error()).Emit()
				delete(next, u.PkgPath+"."+u.TypeName)
				continue
			}
			res.Written = append(res.Written, outPath)
		}
	}

	// Pruning only runs on clean passes: a candidate that errored before it
	// could project a unit leaves no entry in expected, and its previous
	// output must not be mistaken for an orphan.
	if !res.Bag.HasErrors() {
		handleStale(r, res, pkgDirs, expected, opts.Mode)
	}

	if cache != nil && !res.Bag.HasErrors() {
		// Best effort; a failed save only means a colder next run.
		_ = cache.Save(opts.Version, next)
	}
	return nil
}

// handleStale finds generated files no current unit accounts for. In
// generate mode they are removed; in check mode they are reported.
func handleStale(r diag.Reporter, res *Result, pkgDirs []string, expected map[string]bool, mode Mode) {
	seen := make(map[string]bool, len(pkgDirs))
	var dirs []string
	for _, d := range pkgDirs {
		if d != "" && !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), emit.FileSuffix) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if expected[path] {
				continue
			}
			content, err := os.ReadFile(path)
			if err != nil || !emit.IsGenerated(content) {
				// hand-written file that happens to match the suffix; leave it
				continue
			}
			res.Stale = append(res.Stale, path)
			if mode == ModeGenerate {
				_ = os.Remove(path)
			} else {
				diag.ReportWarning(r, diag.EmitStaleOutput, source.Span{},
					"generated file "+path+" no longer has a source annotation; obsgen generate will remove it").Emit()
			}
		}
	}
}
