// Package driver orchestrates the generation pipeline: load packages, gate
// the language version, scan, project, validate, aggregate and emit. It
// owns the policy decisions the stages themselves stay free of: parallel
// execution, caching, and whether diagnostics block emission.
package driver

import (
	"context"
	"runtime"
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"obsgen/internal/aggregate"
	"obsgen/internal/config"
	"obsgen/internal/diag"
	"obsgen/internal/model"
	"obsgen/internal/observ"
	"obsgen/internal/project"
	"obsgen/internal/rules"
	"obsgen/internal/source"
)

// Mode selects what Run does with rendered output.
type Mode uint8

const (
	// ModeGenerate writes generated files and prunes stale ones.
	ModeGenerate Mode = iota
	// ModeCheck touches nothing and reports drift instead.
	ModeCheck
)

// Options configures one pipeline run.
type Options struct {
	// Dir is the working directory packages are loaded relative to.
	Dir string
	// Patterns are go/packages load patterns; defaults come from config.
	Patterns []string
	Mode     Mode
	// Version is the tool version stamped into generated headers.
	Version string
	Config  config.Config
	Logger  *zap.Logger
	// NoCache disables the fingerprint cache for this run.
	NoCache bool
	// Jobs caps scan parallelism; 0 means NumCPU.
	Jobs int
	// Events, when set, receives progress notifications. Run never closes
	// the channel.
	Events chan<- Event
}

// Result is everything a run produced.
type Result struct {
	Bag   *diag.Bag
	Files *source.FileSet
	Units []*model.TypeUnit
	// Written lists generated file paths created or updated (generate mode).
	Written []string
	// Unchanged counts units skipped via the fingerprint cache.
	Unchanged int
	// Drifted lists generated files whose on-disk content is out of date
	// (check mode).
	Drifted []string
	// Stale lists orphaned generated files: removed in generate mode,
	// reported in check mode.
	Stale      []string
	Suppressed int
	Timings    observ.Report
}

// Ok reports whether the run is clean enough to trust its output: no
// blocking diagnostics and, in check mode, no drift.
func (r *Result) Ok() bool {
	return !r.Bag.HasErrors() && len(r.Drifted) == 0
}

// Run executes the full pipeline. An error return means the run itself
// broke (load failure, I/O); user-facing findings travel in Result.Bag.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if len(opts.Patterns) == 0 {
		opts.Patterns = opts.Config.Generator.Packages
	}

	timer := observ.NewTimer()
	fset := source.NewFileSetWithBase(opts.Dir)
	bag := diag.NewBag(opts.Config.Generator.MaxDiagnostics)
	sink := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	suppress := diag.NewSuppressingReporter(sink, fset, opts.Config.Suppressions())
	var reporter diag.Reporter = suppress
	if opts.Config.Messenger.RequireRegistration {
		reporter = diag.NewEscalatingReporter(suppress, diag.ValRecipientOddHandler)
	}

	res := &Result{Bag: bag, Files: fset}

	phase := timer.Begin("load")
	opts.notify(Event{Stage: StageLoad, Status: StatusWorking})
	pkgs, err := loadPackages(ctx, opts.Dir, opts.Patterns)
	timer.End(phase, "")
	if err != nil {
		opts.notify(Event{Stage: StageLoad, Status: StatusError})
		return nil, err
	}
	opts.notify(Event{Stage: StageLoad, Status: StatusDone})
	log.Debug("packages loaded", zap.Int("count", len(pkgs)))

	phase = timer.Begin("gate")
	gateOK := checkGate(reporter, pkgs, opts.Config.Generator.MinGoVersion)
	timer.End(phase, "")
	if !gateOK {
		res.Timings = timer.Report()
		res.Suppressed = suppress.Suppressed()
		return res, nil
	}

	phase = timer.Begin("scan+project")
	items, err := projectPackages(ctx, reporter, fset, pkgs, opts.Jobs, opts.notify)
	timer.End(phase, "")
	if err != nil {
		return nil, err
	}

	phase = timer.Begin("aggregate")
	units := aggregate.Units(items)
	timer.End(phase, "")
	res.Units = units
	log.Debug("units aggregated", zap.Int("count", len(units)))

	phase = timer.Begin("validate")
	opts.notify(Event{Stage: StageValidate, Status: StatusWorking})
	errored := validateUnits(reporter, bag, units)
	opts.notify(Event{Stage: StageValidate, Status: StatusDone})
	timer.End(phase, "")
	if len(errored) > 0 {
		log.Debug("units withheld from emission", zap.Int("count", len(errored)))
	}

	pkgDirs := make([]string, 0, len(pkgs))
	for _, lp := range pkgs {
		pkgDirs = append(pkgDirs, lp.dir())
	}

	phase = timer.Begin("emit")
	opts.notify(Event{Stage: StageEmit, Status: StatusWorking})
	err = emitUnits(reporter, res, units, errored, pkgDirs, opts)
	timer.End(phase, "")
	if err != nil {
		opts.notify(Event{Stage: StageEmit, Status: StatusError})
		return nil, err
	}
	opts.notify(Event{Stage: StageEmit, Status: StatusDone})

	res.Timings = timer.Report()
	res.Suppressed = suppress.Suppressed()
	bag.Sort()
	return res, nil
}

// validateUnits applies the rule registry one unit at a time, so a finding
// on one type never withholds emission for its clean siblings. The returned
// set keys (by PkgPath.TypeName) the units whose own diagnostics, after
// suppression, block emission.
func validateUnits(r diag.Reporter, bag *diag.Bag, units []*model.TypeUnit) map[string]bool {
	errored := make(map[string]bool)
	for _, u := range units {
		before := bag.Len()
		rules.Apply(r, u)
		for _, d := range bag.Items()[before:] {
			if d.Severity >= diag.SevError {
				errored[u.PkgPath+"."+u.TypeName] = true
				break
			}
		}
	}
	return errored
}

// projectPackages runs scan+project per package in parallel, merging item
// and diagnostic streams back in deterministic package order.
func projectPackages(ctx context.Context, r diag.Reporter, fset *source.FileSet, pkgs []*loadedPackage, jobs int, notify func(Event)) ([]project.Item, error) {
	// File registration mutates the FileSet, so it happens up front on one
	// goroutine; the parallel part only reads.
	for _, lp := range pkgs {
		if err := lp.registerFiles(fset); err != nil {
			return nil, err
		}
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].path() < pkgs[j].path() })

	type pkgResult struct {
		items []project.Item
		bag   *diag.Bag
	}
	results := make([]pkgResult, len(pkgs))

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, lp := range pkgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			notify(Event{Pkg: lp.path(), Stage: StageScan, Status: StatusWorking})
			bag := diag.NewBag(128)
			items := lp.project(diag.BagReporter{Bag: bag})
			results[i] = pkgResult{items: items, bag: bag}
			notify(Event{Pkg: lp.path(), Stage: StageScan, Status: StatusDone})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "scan packages")
	}

	var items []project.Item
	for _, pr := range results {
		items = append(items, pr.items...)
		for _, d := range pr.bag.Items() {
			r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
		}
	}
	return items, nil
}
