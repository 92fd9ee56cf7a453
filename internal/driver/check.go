package driver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"codinglint/internal/diag"
	"codinglint/internal/observ"
	"codinglint/internal/plugin"
	"codinglint/internal/source"
)

// Options configure a check run.
type Options struct {
	Paths   []string
	Matcher Matcher
	// Jobs bounds parallel file checks; 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps the merged report; 0 means no cap.
	MaxDiagnostics int
	Selector       diag.Selector
	DisableNoqa    bool
	// Stdin backs the "-" target.
	Stdin io.Reader
	// Cache is optional.
	Cache *DiskCache
	// Fingerprint identifies the effective plugin configuration.
	Fingerprint string
	BaseDir     string
	Sink        Sink
	Logger      *slog.Logger
	Timer       *observ.Timer
}

// FileResult holds the outcome for one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	// Diagnostics survived noqa and selection, sorted.
	Diagnostics []diag.Diagnostic
	// Suppressed counts diagnostics silenced by noqa comments.
	Suppressed int
	Cached     bool
}

// Result is the outcome of a run.
type Result struct {
	RunID   string
	FileSet *source.FileSet
	Files   []FileResult
	// Bag is the merged, sorted and capped report.
	Bag *diag.Bag
	// Total counts diagnostics before the max-diagnostics cap.
	Total     int
	Truncated bool
	Stats     Stats
	// Skipped lists paths that could not be read.
	Skipped []string
	Timing  observ.Report
}

// Check runs every plugin of reg over the targets in opts. Unreadable
// files are skipped; only context cancellation and discovery failures
// abort the run.
func Check(ctx context.Context, reg *plugin.Registry, opts Options) (*Result, error) {
	if reg == nil {
		return nil, fmt.Errorf("check: nil registry")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := opts.Sink
	if sink == nil {
		sink = nopSink{}
	}
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}

	res := &Result{
		RunID:   uuid.NewString(),
		FileSet: source.NewFileSetWithBase(opts.BaseDir),
	}
	logger = logger.With("run", res.RunID)

	idx := timer.Begin("discover")
	targets, skipped, err := Expand(opts.Paths, opts.Matcher)
	if err != nil {
		timer.End(idx, "")
		return nil, err
	}
	res.Skipped = append(res.Skipped, skipped...)
	timer.End(idx, fmt.Sprintf("%d targets", len(targets)))
	for _, p := range skipped {
		logger.Warn("skipping missing path", "path", p)
	}

	idx = timer.Begin("load")
	loaded := loadTargets(targets, res, opts.Stdin, sink, logger)
	timer.End(idx, fmt.Sprintf("%d files", len(loaded)))

	idx = timer.Begin("check")
	pluginKey := pluginSignature(reg)
	res.Files = make([]FileResult, len(loaded))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	for _, id := range loaded {
		sink.OnEvent(Event{File: res.FileSet.Get(id).Path, Stage: StageCheck, Status: StatusQueued})
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(loaded))))

	for i, id := range loaded {
		file := res.FileSet.Get(id)
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			sink.OnEvent(Event{File: file.Path, Stage: StageCheck, Status: StatusWorking})

			raw, cached := checkFile(gctx, reg, res.FileSet, file, opts, pluginKey, logger)
			if err := gctx.Err(); err != nil {
				return err
			}
			fr := filterFile(file, raw, opts)
			fr.Cached = cached
			// индекс i уникален для горутины, мьютекс не нужен
			res.Files[i] = fr

			elapsed := time.Since(start)
			timer.Accumulate("check-file", elapsed)
			sink.OnEvent(Event{
				File:    file.Path,
				Stage:   StageCheck,
				Status:  StatusDone,
				Elapsed: elapsed,
				Cached:  cached,
				Found:   len(raw),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		timer.End(idx, "cancelled")
		return nil, err
	}
	timer.End(idx, fmt.Sprintf("%d jobs", jobs))

	idx = timer.Begin("report")
	res.Bag, res.Total, res.Truncated = mergeResults(res.Files, opts.MaxDiagnostics)
	res.Stats = collectStats(res)
	timer.End(idx, "")
	res.Timing = timer.Report()

	logger.Info("check finished",
		"files", len(res.Files),
		"diagnostics", res.Total,
		"cached", res.Stats.Cached,
		"skipped", len(res.Skipped))
	return res, nil
}

func loadTargets(targets []Target, res *Result, stdin io.Reader, sink Sink, logger *slog.Logger) []source.FileID {
	loaded := make([]source.FileID, 0, len(targets))
	for _, t := range targets {
		var (
			id  source.FileID
			err error
		)
		if t.Stdin {
			id, err = res.FileSet.LoadStdin(source.NewStdinSource(stdin))
		} else {
			id, err = res.FileSet.Load(t.Path)
		}
		if err != nil {
			logger.Warn("skipping unreadable file", "path", t.Path, "err", err)
			res.Skipped = append(res.Skipped, t.Path)
			sink.OnEvent(Event{File: t.Path, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		loaded = append(loaded, id)
	}
	return loaded
}

// checkFile returns the raw diagnostics of every plugin for file, from the
// cache when possible.
func checkFile(ctx context.Context, reg *plugin.Registry, fs *source.FileSet, file *source.File, opts Options, pluginKey string, logger *slog.Logger) ([]diag.Diagnostic, bool) {
	var key CacheKey
	if opts.Cache != nil {
		key = NewCacheKey(file.Hash, file.Flags, opts.Fingerprint, pluginKey)
		var payload CachePayload
		ok, err := opts.Cache.Get(key, &payload)
		if err != nil {
			logger.Debug("ignoring broken cache entry", "path", file.Path, "err", err)
		}
		if ok {
			return stamp(fromPayload(&payload), file.ID), true
		}
	}

	bag := diag.NewBag(0)
	reporter := diag.NewDedupReporter(fileReporter{file: file.ID, next: diag.BagReporter{Bag: bag}})
	for _, p := range reg.All() {
		n := diag.ReportAll(reporter, p.NewChecker(file.Path, fs).Run(ctx))
		logger.Debug("checker finished", "plugin", p.Name(), "path", file.Path, "found", n)
	}
	raw := bag.Items()

	if opts.Cache != nil && ctx.Err() == nil {
		if err := opts.Cache.Put(key, toPayload(file.Path, raw)); err != nil {
			logger.Debug("cache write failed", "path", file.Path, "err", err)
		}
	}
	return raw, false
}

// fileReporter stamps diagnostics with the file they belong to.
type fileReporter struct {
	file source.FileID
	next diag.Reporter
}

func (r fileReporter) Report(d diag.Diagnostic) {
	r.next.Report(d.InFile(r.file))
}

func stamp(diags []diag.Diagnostic, id source.FileID) []diag.Diagnostic {
	for i := range diags {
		diags[i] = diags[i].InFile(id)
	}
	return diags
}

func filterFile(file *source.File, raw []diag.Diagnostic, opts Options) FileResult {
	fr := FileResult{Path: file.Path, FileID: file.ID}
	for _, d := range raw {
		if !opts.Selector.Keep(d) {
			continue
		}
		if !opts.DisableNoqa && suppressed(d, file) {
			fr.Suppressed++
			continue
		}
		fr.Diagnostics = append(fr.Diagnostics, d)
	}
	sort.SliceStable(fr.Diagnostics, func(i, j int) bool {
		if fr.Diagnostics[i].Loc.Line != fr.Diagnostics[j].Loc.Line {
			return fr.Diagnostics[i].Loc.Line < fr.Diagnostics[j].Loc.Line
		}
		return fr.Diagnostics[i].Code < fr.Diagnostics[j].Code
	})
	return fr
}

func mergeResults(files []FileResult, maxDiagnostics int) (*diag.Bag, int, bool) {
	all := diag.NewBag(0)
	for _, fr := range files {
		for _, d := range fr.Diagnostics {
			all.Add(d)
		}
	}
	all.Sort()
	total := all.Len()
	truncated := false
	if maxDiagnostics > 0 && total > maxDiagnostics {
		all.Truncate(maxDiagnostics)
		truncated = true
	}
	return all, total, truncated
}

// pluginSignature lists "name@version" of every plugin, in order.
func pluginSignature(reg *plugin.Registry) string {
	plugins := reg.All()
	parts := make([]string, len(plugins))
	for i, p := range plugins {
		parts[i] = p.Name() + "@" + p.Version()
	}
	return strings.Join(parts, ",")
}
