package suggest

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/taskbench/taskbench-go/internal/domain"
)

// Defaults observed in the mobile client.
const (
	DefaultQuietInterval = 1200 * time.Millisecond
	DefaultMinPromptLen  = 8
)

// Fetcher fetches AI suggestions for the current editor state.
type Fetcher interface {
	Get(ctx context.Context, q domain.SuggestionQuery) (domain.AiSuggestions, error)
}

// Saver persists a composed task.
type Saver interface {
	Save(ctx context.Context, task domain.Task) (domain.Task, error)
}

// Editor is the task-composition state holder. Every edit of the title
// invalidates the displayed suggestions, cancels the outstanding fetch cycle,
// and arms a new one that fires after the quiet interval, provided the title
// passes the minimum-length gate. Late results from superseded cycles are
// discarded at apply time, never applied.
type Editor struct {
	fetch  Fetcher
	saver  Saver
	quiet  time.Duration
	minLen int
	errs   *errorBus

	mu             sync.Mutex
	input          string
	deadline       *time.Time
	deadlineManual bool
	highPriority   bool
	priorityManual bool
	category       *domain.Category
	subtasks       []domain.Subtask
	suggestions    []string

	gen    uint64
	cancel context.CancelFunc
}

// Option configures an Editor.
type Option func(*Editor)

// WithQuietInterval overrides the debounce delay.
func WithQuietInterval(d time.Duration) Option {
	return func(e *Editor) { e.quiet = d }
}

// WithMinPromptLen overrides the minimum title length that triggers a fetch.
func WithMinPromptLen(n int) Option {
	return func(e *Editor) { e.minLen = n }
}

// NewEditor creates an editor. saver may be nil when submission is handled
// elsewhere.
func NewEditor(fetch Fetcher, saver Saver, opts ...Option) *Editor {
	e := &Editor{
		fetch:  fetch,
		saver:  saver,
		quiet:  DefaultQuietInterval,
		minLen: DefaultMinPromptLen,
		errs:   newErrorBus(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Errors is the one-shot error channel. At most one classified error is
// pending at a time; newer errors overwrite undelivered ones. Cancellations
// never appear here.
func (e *Editor) Errors() <-chan domain.ErrorKind {
	return e.errs.channel()
}

// SetInput records a title edit. Current suggestions become stale immediately;
// any pending or in-flight fetch is cancelled before the new cycle is armed.
func (e *Editor) SetInput(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.input = text
	e.suggestions = nil
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}

	// Below the gate the server would reject the prompt anyway; do not arm.
	if len(text) < e.minLen {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	go e.runCycle(ctx, e.gen)
}

// runCycle waits out the quiet interval, fetches, and applies the result if
// the cycle is still current.
func (e *Editor) runCycle(ctx context.Context, gen uint64) {
	timer := time.NewTimer(e.quiet)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	query, ok := e.snapshot(gen)
	if !ok {
		return
	}

	result, err := e.fetch.Get(ctx, query)
	if err != nil {
		if domain.IsCancel(err) || ctx.Err() != nil {
			return
		}
		log.Warn().Err(err).Msg("suggestion fetch failed")
		e.clearSuggestions(gen)
		e.errs.publish(domain.Classify(err))
		return
	}

	e.apply(ctx, gen, result)
}

// snapshot builds the immutable query for this cycle. Manual deadline and
// category choices ride along as hints; otherwise they are omitted so the
// server may propose its own.
func (e *Editor) snapshot(gen uint64) (domain.SuggestionQuery, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return domain.SuggestionQuery{}, false
	}

	q := domain.SuggestionQuery{
		Prompt:       e.input,
		HighPriority: e.highPriority,
		Category:     e.category,
	}
	if e.deadlineManual {
		q.Deadline = e.deadline
	}
	return q, true
}

// apply merges a fetched result into live state. The generation check makes a
// superseded cycle's completion a no-op even though its I/O already finished.
func (e *Editor) apply(ctx context.Context, gen uint64, result domain.AiSuggestions) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen || ctx.Err() != nil {
		return
	}

	existing := make(map[string]struct{}, len(e.subtasks))
	for _, s := range e.subtasks {
		existing[s.Content] = struct{}{}
	}

	seen := make(map[string]struct{}, len(result.Subtasks))
	merged := make([]string, 0, len(result.Subtasks))
	for _, text := range result.Subtasks {
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		if _, dup := existing[text]; dup {
			continue
		}
		merged = append(merged, text)
	}
	e.suggestions = merged

	// Manual user intent always wins over the server's proposals.
	if !e.deadlineManual {
		e.deadline = result.Deadline
	}
	if !e.priorityManual && result.HighPriority != nil {
		e.highPriority = *result.HighPriority
	}
	if e.category == nil && result.Category != nil {
		e.category = result.Category
	}
}

func (e *Editor) clearSuggestions(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return
	}
	e.suggestions = []string{}
}
