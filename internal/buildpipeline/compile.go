// Package buildpipeline orchestrates a multi-file transpile: for every
// source file it runs internal/tslparser -> internal/tslcheck ->
// internal/lower -> internal/luaprint (spec.md §2 Data flow), fanning files
// out concurrently and ordering cross-file work by import dependency so a
// module's checker sees its imports' exports before it needs them
// (internal/tslcheck.Options.Imports).
package buildpipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"surge/internal/diag"
	"surge/internal/host"
	"surge/internal/lower"
	"surge/internal/luaprint"
	"surge/internal/lualib"
	"surge/internal/project"
	"surge/internal/project/dag"
	"surge/internal/source"
	"surge/internal/tslast"
	"surge/internal/tslcheck"
	"surge/internal/tslparser"
)

// CompileRequest configures a transpile run over a set of TSL source files.
type CompileRequest struct {
	Files       []string // on-disk paths, relative or absolute
	BaseDir     string   // root used to derive each file's logical module path
	HostConfig  *host.Config
	Progress    ProgressSink
	MaxErrors   uint
	PrintOpts   luaprint.Options
}

// FileResult is one source file's transpile outcome.
type FileResult struct {
	Path        string
	ModulePath  string
	Lua         []byte
	Used        map[lualib.Feature]bool
	Bag         *diag.Bag
	Diagnostics []*diag.Diagnostic
}

// CompileResult captures every file's artefacts, the closure of lualib
// features used across the whole run, and stage timings.
type CompileResult struct {
	Files       []FileResult
	FileSet     *source.FileSet
	LibUsed     map[lualib.Feature]bool
	LibBundle   lualib.Bundle
	Diagnostics []*diag.Diagnostic
	Timings     Timings
}

// HasErrors reports whether any file's Diagnostics contains an error-severity entry.
func (r CompileResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

type unit struct {
	idx        int
	path       string
	modulePath string
	fileID     source.FileID
	src        string
	file       *tslast.File
	bag        *diag.Bag
	checkRes   tslcheck.Result
	lua        []byte
	libUsed    map[lualib.Feature]bool
}

// Compile runs the full pipeline over every file in req.Files and returns
// one FileResult per input plus the combined lualib bundle.
func Compile(ctx context.Context, req *CompileRequest) (CompileResult, error) {
	var result CompileResult
	if req == nil {
		return result, fmt.Errorf("missing compile request")
	}
	if len(req.Files) == 0 {
		return result, fmt.Errorf("no input files")
	}
	hostCfg := req.HostConfig
	if hostCfg == nil {
		hostCfg = host.Default()
	}
	maxErrors := req.MaxErrors
	if maxErrors == 0 {
		maxErrors = 200
	}

	units := make([]*unit, len(req.Files))
	fs := source.NewFileSetWithBase(req.BaseDir)
	for i, path := range req.Files {
		modulePath := modulePathFor(path, req.BaseDir)
		units[i] = &unit{idx: i, path: path, modulePath: modulePath}
	}

	emitQueued(req.Progress, req.Files)

	parseStart := time.Now()
	if err := parseAll(ctx, fs, units, maxErrors); err != nil {
		return result, err
	}
	result.Timings.Add(StageParse, time.Since(parseStart))
	emitStageAll(req.Progress, req.Files, StageParse, StatusDone, 0)

	order, err := topoOrder(units)
	if err != nil {
		return result, err
	}

	checkStart := time.Now()
	checkInOrder(units, order)
	result.Timings.Add(StageCheck, time.Since(checkStart))
	emitStageAll(req.Progress, req.Files, StageCheck, StatusDone, 0)

	lowerStart := time.Now()
	if err := lowerAndPrintAll(ctx, units, hostCfg, req.PrintOpts); err != nil {
		return result, err
	}
	result.Timings.Add(StageLower, time.Since(lowerStart))
	emitStageAll(req.Progress, req.Files, StageLower, StatusDone, 0)

	printStart := time.Now()
	libUsed := map[lualib.Feature]bool{}
	results := make([]FileResult, len(units))
	for _, u := range units {
		for f, used := range u.libUsed {
			if used {
				libUsed[f] = true
			}
		}
		results[u.idx] = FileResult{
			Path:        u.path,
			ModulePath:  u.modulePath,
			Lua:         u.lua,
			Used:        u.libUsed,
			Bag:         u.bag,
			Diagnostics: u.bag.Items(),
		}
		result.Diagnostics = append(result.Diagnostics, u.bag.Items()...)
	}
	result.Files = results
	result.LibUsed = lualib.Closure(libUsed)
	bundle, err := lualib.Emit(hostCfg.LibImport(), result.LibUsed)
	if err != nil {
		return result, fmt.Errorf("lualib bundle: %w", err)
	}
	result.LibBundle = bundle
	result.FileSet = fs
	result.Timings.Add(StagePrint, time.Since(printStart))
	emitStageAll(req.Progress, req.Files, StagePrint, StatusDone, 0)

	return result, nil
}

// modulePathFor derives a logical module path ("a/b/c") from an on-disk
// path, used both to report and to resolve relative imports between the
// files in one run.
func modulePathFor(path, baseDir string) string {
	rel := path
	if baseDir != "" {
		if r, err := filepath.Rel(baseDir, path); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)
	if ext := filepath.Ext(rel); ext != "" {
		rel = strings.TrimSuffix(rel, ext)
	}
	return strings.TrimPrefix(rel, "./")
}

func parseAll(ctx context.Context, fs *source.FileSet, units []*unit, maxErrors uint) error {
	g, _ := errgroup.WithContext(ctx)
	for _, u := range units {
		u := u
		g.Go(func() error {
			id, err := fs.Load(u.path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", u.path, err)
			}
			u.fileID = id
			u.src = string(fs.Get(id).Content)
			u.bag = diag.NewBag(int(maxErrors))
			reporter := diag.BagReporter{Bag: u.bag}
			res := tslparser.ParseFile(id, u.path, u.src, tslparser.Options{Reporter: reporter, MaxErrors: maxErrors})
			u.file = res.File
			return nil
		})
	}
	return g.Wait()
}

// topoOrder batches units by import dependency so checkInOrder can hand a
// module's already-checked exports to every importer (internal/project/dag,
// the teacher's own cross-module ordering machinery). Imports that resolve
// outside this run (bare specifiers, real Lua/npm-style packages) are left
// out of the graph entirely: they're not part of this compilation unit and
// have no exports for the checker to consult.
func topoOrder(units []*unit) ([][]*unit, error) {
	byModule := make(map[string]*unit, len(units))
	for _, u := range units {
		byModule[u.modulePath] = u
	}

	metas := make([]*project.ModuleMeta, len(units))
	for i, u := range units {
		meta := &project.ModuleMeta{Path: u.modulePath, Span: fileSpan(u)}
		for _, imp := range importsOf(u) {
			target := resolveImport(u.modulePath, imp.path)
			if _, ok := byModule[target]; !ok {
				continue // external package, not part of this run's graph
			}
			meta.Imports = append(meta.Imports, project.ImportMeta{Path: target, Span: imp.span})
		}
		metas[i] = meta
	}

	idx := dag.BuildIndex(metas)
	nodes := make([]dag.ModuleNode, len(metas))
	for i, m := range metas {
		nodes[i] = dag.ModuleNode{Meta: *m}
	}
	graph, _ := dag.BuildGraph(idx, nodes)
	topo := dag.ToposortKahn(graph)
	if topo.Cyclic {
		names := make([]string, 0, len(topo.Cycles))
		for _, id := range topo.Cycles {
			names = append(names, idx.IDToName[int(id)])
		}
		return nil, fmt.Errorf("import cycle: %s", strings.Join(names, " -> "))
	}

	batches := make([][]*unit, 0, len(topo.Batches))
	// Edges run importer -> dependency, so Kahn's batches list importers
	// first; walk them backwards to put dependencies first.
	for i := len(topo.Batches) - 1; i >= 0; i-- {
		batch := topo.Batches[i]
		var us []*unit
		for _, id := range batch {
			name := idx.IDToName[int(id)]
			if u, ok := byModule[name]; ok {
				us = append(us, u)
			}
		}
		if len(us) > 0 {
			batches = append(batches, us)
		}
	}
	return batches, nil
}

type importRef struct {
	path string
	span source.Span
}

func importsOf(u *unit) []importRef {
	if u.file == nil {
		return nil
	}
	var refs []importRef
	for _, s := range u.file.Stmts {
		if s.Kind != tslast.StmtImportDecl {
			continue
		}
		d := s.Data.(tslast.ImportDeclData)
		refs = append(refs, importRef{path: d.ModulePath, span: s.Span})
	}
	return refs
}

// resolveImport resolves a relative specifier ("./x", "../y") against the
// importing module's own logical path; a bare specifier is returned as-is
// (it can never match a local module path, which is exactly the point).
func resolveImport(fromModule, spec string) string {
	if !strings.HasPrefix(spec, ".") {
		return spec
	}
	dir := filepath.Dir(fromModule)
	joined := filepath.ToSlash(filepath.Join(dir, spec))
	return strings.TrimPrefix(joined, "./")
}

func fileSpan(u *unit) source.Span {
	if u.file == nil || len(u.file.Stmts) == 0 {
		return source.Span{}
	}
	return u.file.Stmts[0].Span
}

// checkInOrder runs internal/tslcheck one dependency batch at a time so
// every unit's Imports map is populated from an already-checked dependency's
// Exports before its own Check runs.
func checkInOrder(units []*unit, batches [][]*unit) {
	published := make(map[string]*tslcheck.Exports, len(units))
	for _, batch := range batches {
		for _, u := range batch {
			imports := make(map[string]*tslcheck.Exports, len(importsOf(u)))
			for _, imp := range importsOf(u) {
				target := resolveImport(u.modulePath, imp.path)
				if ex, ok := published[target]; ok {
					imports[target] = ex
				}
			}
			reporter := diag.BagReporter{Bag: u.bag}
			res := tslcheck.Check(u.file, tslcheck.Options{Reporter: reporter, Imports: imports})
			u.checkRes = res
			published[u.modulePath] = res.Exports
		}
	}
}

func lowerAndPrintAll(ctx context.Context, units []*unit, hostCfg *host.Config, printOpts luaprint.Options) error {
	g, _ := errgroup.WithContext(ctx)
	for _, u := range units {
		u := u
		g.Go(func() error {
			oracle := tslcheck.NewOracle(&u.checkRes)
			reporter := diag.BagReporter{Bag: u.bag}
			block, used := lower.TransformSourceFile(u.file, oracle, hostCfg, reporter)
			u.libUsed = used
			u.lua = luaprint.Print(block, printOpts)
			return nil
		})
	}
	return g.Wait()
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

func emitStageAll(sink ProgressSink, files []string, stage Stage, status Status, elapsed time.Duration) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: stage, Status: status, Elapsed: elapsed})
	}
}
