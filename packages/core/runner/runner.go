package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"

	"github.com/stepline/stepline/packages/core/engine"
	"github.com/stepline/stepline/packages/history"
	"github.com/stepline/stepline/packages/results"
	"github.com/stepline/stepline/packages/timings"
)

// DefaultRetryDelay is the default delay between step retries.
const DefaultRetryDelay = 1 * time.Second

// StepFunc is one unit of suite work. It typically drives a shared browser
// session and should honor ctx cancellation on its waits.
type StepFunc func(ctx context.Context) error

// Step declares one suite step and its scheduling metadata.
type Step struct {
	Name       string
	Title      string
	Priority   engine.Priority
	DependsOn  []string
	Tags       []string
	Skip       string // non-empty marks the step explicitly skipped, with this reason
	Retry      int
	RetryDelay time.Duration
	Timeout    time.Duration
	Run        StepFunc
}

// Config controls one run.
type Config struct {
	Suite        string
	Environment  string
	Bail         bool
	Timeout      time.Duration // default per-step timeout; zero means none
	NameFilter   string
	TagsFilter   []string
	StepInterval time.Duration // minimum spacing between step launches
	Progress     bool
}

// Runner executes a registered suite sequentially in the engine's
// execution order.
type Runner struct {
	engine  *engine.Engine
	config  *Config
	steps   map[string]*Step
	limiter *rate.Limiter
	tracker *timings.Tracker
	log     zerolog.Logger
	store   *history.Store
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// WithHistory records every finished run into the given history store.
func WithHistory(store *history.Store) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// NewRunner creates a runner with its own engine.
func NewRunner(cfg *Config, opts ...Option) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}

	r := &Runner{
		config:  cfg,
		steps:   make(map[string]*Step),
		tracker: timings.NewTracker(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.engine = engine.New(engine.WithWarnFunc(func(format string, args ...any) {
		r.log.Warn().Msg(fmt.Sprintf(format, args...))
	}))

	if cfg.StepInterval > 0 {
		r.limiter = rate.NewLimiter(rate.Every(cfg.StepInterval), 1)
	}

	return r
}

// Engine exposes the underlying engine, mainly for inspection in composite
// runs and tests.
func (r *Runner) Engine() *engine.Engine {
	return r.engine
}

// Add registers steps with the runner and its engine. Re-adding a name
// replaces the earlier step, matching the engine's overwrite semantics.
func (r *Runner) Add(steps ...*Step) error {
	for _, step := range steps {
		if step.Name == "" {
			return fmt.Errorf("step has no name")
		}
		if step.Run == nil && step.Skip == "" {
			return fmt.Errorf("step %q has no work function", step.Name)
		}
		step.Priority = step.Priority.Normalize()
		r.steps[step.Name] = step
		r.engine.Register(step.Name, engine.Meta{
			Priority:  step.Priority,
			DependsOn: step.DependsOn,
			Tags:      step.Tags,
		})
	}
	return nil
}

// Run builds the dependency graph and executes the suite. It returns the
// persisted-form results document even when the run was interrupted; the
// error is non-nil for fatal configuration problems (cycles) or context
// cancellation.
func (r *Runner) Run(ctx context.Context) (*results.Document, error) {
	graph, err := r.engine.BuildGraph()
	if err != nil {
		return nil, err
	}

	doc := results.New(r.config.Suite, r.config.Environment)
	start := time.Now()

	var bar *progressbar.ProgressBar
	if r.config.Progress {
		bar = progressbar.NewOptions(len(graph.ExecutionOrder),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(r.config.Suite),
			progressbar.OptionShowCount(),
		)
	}

	var runErr error

loop:
	for _, name := range graph.ExecutionOrder {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break loop
		default:
		}

		step := r.steps[name]
		if step == nil {
			// Registered directly on the engine without a work function.
			continue
		}

		switch {
		case step.Skip != "":
			r.recordSkip(step, step.Skip, engine.CauseExplicit, "")

		case !r.shouldRun(step):
			r.recordSkip(step, "filtered out", engine.CauseFiltered, "")

		default:
			if dec := r.engine.ShouldSkip(name); dec.Skip {
				// Propagation usually recorded this skip already; only
				// direct-dependency skips still need a result.
				if _, exists := r.engine.Results()[name]; !exists {
					r.recordSkip(step, dec.Reason, engine.CauseDependencyFailure, dec.FailedDependency)
				}
				r.log.Info().Str("step", name).Str("reason", dec.Reason).Msg("step skipped")
				break
			}

			if r.limiter != nil {
				if err := r.limiter.Wait(ctx); err != nil {
					runErr = err
					break loop
				}
			}

			res := r.executeStep(ctx, step)
			r.engine.RecordResult(res)
			r.tracker.Record(step.Priority, res.Duration)

			if res.Status == engine.StatusFailed {
				r.log.Error().Str("step", name).Str("error", res.Error).Msg("step failed")
				if r.config.Bail {
					if bar != nil {
						_ = bar.Add(1)
					}
					break loop
				}
			} else {
				r.log.Debug().Str("step", name).Dur("duration", res.Duration).Msg("step passed")
			}
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	allResults := r.engine.Results()
	for _, name := range graph.ExecutionOrder {
		if res, ok := allResults[name]; ok {
			doc.Append(res)
		}
	}
	doc.SetStats(r.engine.Stats())
	doc.SetTimings(r.tracker)
	doc.SetDuration(time.Since(start))

	if r.store != nil {
		if err := r.store.SaveRun(doc); err != nil {
			r.log.Warn().Err(err).Msg("failed to record run history")
		}
	}

	return doc, runErr
}

func (r *Runner) recordSkip(step *Step, reason string, cause engine.SkipCause, failedDep string) {
	r.engine.RecordResult(engine.Result{
		TestName:         step.Name,
		FullTitle:        stepTitle(step),
		Status:           engine.StatusSkipped,
		Reason:           reason,
		CausedBy:         cause,
		FailedDependency: failedDep,
		Priority:         step.Priority,
		DependsOn:        step.DependsOn,
	})
}

// executeStep runs one step with retry logic. The recorded duration is that
// of the final attempt, matching what a report reader expects to see.
func (r *Runner) executeStep(ctx context.Context, step *Step) engine.Result {
	retryDelay := step.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}

	var lastErr error
	var duration time.Duration

	for attempt := 0; attempt <= step.Retry; attempt++ {
		runCtx := ctx
		cancel := func() {}
		timeout := step.Timeout
		if timeout <= 0 {
			timeout = r.config.Timeout
		}
		if timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, timeout)
		}

		started := time.Now()
		lastErr = step.Run(runCtx)
		duration = time.Since(started)
		cancel()

		if lastErr == nil {
			break
		}

		if attempt < step.Retry {
			r.log.Warn().Str("step", step.Name).Int("attempt", attempt+1).Err(lastErr).Msg("step failed, retrying")
			select {
			case <-ctx.Done():
				attempt = step.Retry // stop retrying, report the last error
			case <-time.After(retryDelay):
			}
		}
	}

	res := engine.Result{
		TestName:  step.Name,
		FullTitle: stepTitle(step),
		Duration:  duration,
		Priority:  step.Priority,
		DependsOn: step.DependsOn,
	}
	if lastErr != nil {
		res.Status = engine.StatusFailed
		res.Error = lastErr.Error()
	} else {
		res.Status = engine.StatusPassed
	}
	return res
}

func (r *Runner) shouldRun(step *Step) bool {
	if r.config.NameFilter != "" && !matchesPattern(step.Name, r.config.NameFilter) {
		return false
	}
	if len(r.config.TagsFilter) > 0 && !hasAnyTag(step.Tags, r.config.TagsFilter) {
		return false
	}
	return true
}

func stepTitle(step *Step) string {
	if step.Title != "" {
		return step.Title
	}
	return step.Name
}

func matchesPattern(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	if pattern[0] == '*' && pattern[len(pattern)-1] == '*' && len(pattern) > 1 {
		substr := pattern[1 : len(pattern)-1]
		for i := 0; i <= len(name)-len(substr); i++ {
			if name[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	}

	if pattern[0] == '*' {
		suffix := pattern[1:]
		return len(name) >= len(suffix) && name[len(name)-len(suffix):] == suffix
	}

	if pattern[len(pattern)-1] == '*' {
		prefix := pattern[:len(pattern)-1]
		return len(name) >= len(prefix) && name[:len(prefix)] == prefix
	}

	return name == pattern
}

func hasAnyTag(tags []string, filters []string) bool {
	for _, filter := range filters {
		for _, tag := range tags {
			if tag == filter {
				return true
			}
		}
	}
	return false
}
