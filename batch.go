package docbatch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/avelar/go-docbatch/internal/fileutil"
)

// Processor runs batch conversions over a bounded pool of converters.
// Create with NewProcessor and Close when done to release renderer resources.
type Processor struct {
	pool       *ConverterPool
	maxWorkers int
}

// BatchOptions tunes directory batch conversion.
type BatchOptions struct {
	// Patterns are glob patterns matched against file base names.
	// Empty means DefaultPatterns.
	Patterns []string

	// Recursive matches patterns at any depth under the input directory.
	Recursive bool

	// OnProgress, if set, is called after every completed task.
	OnProgress ProgressFunc
}

// NewProcessor creates a Processor with maxWorkers concurrent conversion
// slots. Zero selects DefaultMaxWorkers; a negative count fails with
// ErrInvalidWorkerCount. Converter options are applied to every pooled
// converter.
func NewProcessor(maxWorkers int, opts ...Option) (*Processor, error) {
	if maxWorkers < 0 {
		return nil, fmt.Errorf("%w: %d (must be >= 1, 0 means default)", ErrInvalidWorkerCount, maxWorkers)
	}
	if maxWorkers == 0 {
		maxWorkers = DefaultMaxWorkers
	}

	return &Processor{
		pool:       NewConverterPool(maxWorkers, opts...),
		maxWorkers: maxWorkers,
	}, nil
}

// Close releases all pooled converter resources.
func (p *Processor) Close() error {
	return p.pool.Close()
}

// MaxWorkers returns the configured concurrency limit.
func (p *Processor) MaxWorkers() int {
	return p.maxWorkers
}

// ConvertDirectory converts every file under inputDir matching the patterns
// to targetFormat, writing outputs into outputDir (created when missing).
// A missing inputDir fails with ErrDirectoryNotFound before any task runs;
// once files are enumerated the batch always completes with a Summary, even
// if every single task failed.
func (p *Processor) ConvertDirectory(ctx context.Context, inputDir, outputDir, targetFormat string, opts BatchOptions) (*Summary, error) {
	if !validTargetFormat(targetFormat) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, targetFormat)
	}

	files, err := Discover(inputDir, opts.Patterns, opts.Recursive)
	if err != nil {
		return nil, err
	}

	if err := fileutil.EnsureDir(outputDir); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	tasks := makeTasks(files, outputDir, targetFormat)
	return p.RunBatch(ctx, tasks, opts.OnProgress), nil
}

// ConvertFileList converts an explicit list of files to targetFormat.
// Files that do not exist are skipped, not failed: they are excluded from
// the total and reported in Summary.Skipped.
func (p *Processor) ConvertFileList(ctx context.Context, files []string, outputDir, targetFormat string, onProgress ProgressFunc) (*Summary, error) {
	if !validTargetFormat(targetFormat) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, targetFormat)
	}

	if err := fileutil.EnsureDir(outputDir); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	existing := lo.Filter(files, func(f string, _ int) bool { return fileutil.FileExists(f) })
	skipped, _ := lo.Difference(files, existing)

	tasks := makeTasks(existing, outputDir, targetFormat)
	summary := p.RunBatch(ctx, tasks, onProgress)
	summary.Skipped = skipped
	return summary, nil
}

// RunBatch fans the tasks out across the worker pool and blocks until every
// task has produced exactly one result. Results are aggregated in completion
// order, which under concurrency is not the submission order. Per-task
// failures are isolated: they are recorded in the summary and never abort
// sibling tasks.
func (p *Processor) RunBatch(ctx context.Context, tasks []Task, onProgress ProgressFunc) *Summary {
	tracker := newProgressTracker(len(tasks), onProgress)
	if len(tasks) == 0 {
		return tracker.summary
	}

	concurrency := p.maxWorkers
	if concurrency > len(tasks) {
		concurrency = len(tasks)
	}

	jobs := make(chan Task, len(tasks))
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, jobs, tracker)
		}()
	}

	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	wg.Wait()
	return tracker.summary
}

// worker drains tasks from the jobs channel using one pooled converter.
// A converter acquisition failure fails the worker's share of tasks rather
// than the whole batch; other workers keep running.
func (p *Processor) worker(ctx context.Context, jobs <-chan Task, tracker *progressTracker) {
	conv, err := p.pool.Acquire()
	if err != nil {
		for task := range jobs {
			tracker.record(Result{InputPath: task.InputPath, Format: task.TargetFormat, Err: err})
		}
		return
	}
	defer p.pool.Release(conv)

	for task := range jobs {
		// Cancellation check before starting heavy work
		if ctx.Err() != nil {
			tracker.record(Result{InputPath: task.InputPath, Format: task.TargetFormat, Err: ctx.Err()})
			continue
		}
		tracker.record(runTask(ctx, conv, task))
	}
}

// runTask executes one task, converting a panic inside a collaborator into
// a failure result so it cannot take down the pool.
func runTask(ctx context.Context, conv *Converter, task Task) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{
				InputPath: task.InputPath,
				Format:    task.TargetFormat,
				Err:       fmt.Errorf("%w: internal error: %v", ErrConversionFailed, r),
			}
		}
	}()

	return conv.ConvertFile(ctx, task)
}

// makeTasks builds one immutable task per input file.
func makeTasks(files []string, outputDir, targetFormat string) []Task {
	tasks := make([]Task, len(files))
	for i, f := range files {
		tasks[i] = Task{
			InputPath:    f,
			OutputDir:    outputDir,
			TargetFormat: strings.ToLower(targetFormat),
		}
	}
	return tasks
}

// progressTracker owns all shared mutable batch state: the completion
// counter and the summary's accumulating lists. One mutex serializes counter
// increments, list appends, and the progress callback, so the callback never
// observes a torn count and callers need not make it thread-safe.
type progressTracker struct {
	mu         sync.Mutex
	completed  int
	onProgress ProgressFunc
	summary    *Summary
}

func newProgressTracker(total int, onProgress ProgressFunc) *progressTracker {
	return &progressTracker{
		onProgress: onProgress,
		summary:    &Summary{TotalFiles: total},
	}
}

// record hands one result over from a worker: exactly one call per task.
func (t *progressTracker) record(res Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.completed++
	if res.Err != nil {
		t.summary.Failed++
		t.summary.Errors = append(t.summary.Errors, FileError{File: res.InputPath, Err: res.Err})
	} else {
		t.summary.Successful++
		t.summary.Results = append(t.summary.Results, res)
	}

	if t.onProgress != nil {
		t.onProgress(t.completed, t.summary.TotalFiles, filepath.Base(res.InputPath))
	}
}
