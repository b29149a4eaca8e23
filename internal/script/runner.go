package script

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"bookservice/internal/book"
	"bookservice/internal/logging"
)

// Result records what a step returned.
type Result struct {
	Step    int         `json:"step" yaml:"step"`
	Op      string      `json:"op" yaml:"op"`
	Book    *book.Book  `json:"book,omitempty" yaml:"book,omitempty"`
	Books   []book.Book `json:"books,omitempty" yaml:"books,omitempty"`
	Count   *int        `json:"count,omitempty" yaml:"count,omitempty"`
	Found   *bool       `json:"found,omitempty" yaml:"found,omitempty"`
	Deleted *bool       `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Error   string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// ExpectationError reports the first step whose result did not match its
// expectations.
type ExpectationError struct {
	Step   int
	Op     string
	Reason string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("step %d (%s): %s", e.Step, e.Op, e.Reason)
}

func (e *ExpectationError) Code() string {
	return "EXPECTATION_FAILED"
}

// Runner executes scripts against a book service.
type Runner struct {
	svc    *book.Service
	logger *slog.Logger
}

func NewRunner(svc *book.Service, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{svc: svc, logger: logger}
}

// Run executes every step in order. Operation errors are recorded in the
// step's Result and do not stop the run; a failed expectation does, and the
// results up to and including that step are returned with it.
func (r *Runner) Run(ctx context.Context, s Script) ([]Result, error) {
	log := logging.FromContext(ctx, r.logger).With("script", s.Name)
	log.Info("script started", "steps", len(s.Steps))

	results := make([]Result, 0, len(s.Steps))
	for i, step := range s.Steps {
		res, err := r.exec(ctx, step)
		if err != nil {
			return results, err
		}
		res.Step = i + 1
		results = append(results, res)

		if step.Expect != nil {
			if reason := check(*step.Expect, res); reason != "" {
				log.Error("expectation failed", "step", res.Step, "op", res.Op, "reason", reason)
				return results, &ExpectationError{Step: res.Step, Op: res.Op, Reason: reason}
			}
		}
	}

	log.Info("script finished", "steps", len(results))
	return results, nil
}

func (r *Runner) exec(ctx context.Context, step Step) (Result, error) {
	res := Result{Op: step.Op}

	switch step.Op {
	case OpCreate:
		b, err := r.svc.Create(ctx, step.Title, step.Author)
		if err != nil {
			res.Error = err.Error()
			break
		}
		res.Book = &b
	case OpGet:
		b, ok, err := r.svc.Get(ctx, step.ID)
		if err != nil {
			res.Error = err.Error()
			break
		}
		res.Found = &ok
		if ok {
			res.Book = &b
		}
	case OpList:
		books, err := r.svc.List(ctx, book.ListParams{Search: step.Search, SortBy: step.SortBy, Desc: step.Desc})
		if err != nil {
			res.Error = err.Error()
			break
		}
		n := len(books)
		res.Books = books
		res.Count = &n
	case OpDelete:
		deleted, err := r.svc.Delete(ctx, step.ID)
		if err != nil {
			res.Error = err.Error()
			break
		}
		res.Deleted = &deleted
	default:
		return res, fmt.Errorf("unknown op %q", step.Op)
	}
	return res, nil
}

func check(e Expect, res Result) string {
	if e.Error != "" {
		if res.Error == "" {
			return fmt.Sprintf("expected error containing %q, got success", e.Error)
		}
		if !strings.Contains(res.Error, e.Error) {
			return fmt.Sprintf("expected error containing %q, got %q", e.Error, res.Error)
		}
		return ""
	}
	if res.Error != "" {
		return "unexpected error: " + res.Error
	}

	if e.ID != "" || e.Title != "" || e.Author != "" {
		if res.Book == nil {
			return "expected a book, got none"
		}
		if e.ID != "" && res.Book.ID.String() != e.ID {
			return fmt.Sprintf("expected id %q, got %q", e.ID, res.Book.ID.String())
		}
		if e.Title != "" && res.Book.Title != e.Title {
			return fmt.Sprintf("expected title %q, got %q", e.Title, res.Book.Title)
		}
		if e.Author != "" && res.Book.Author != e.Author {
			return fmt.Sprintf("expected author %q, got %q", e.Author, res.Book.Author)
		}
	}
	if e.Count != nil && (res.Count == nil || *res.Count != *e.Count) {
		return fmt.Sprintf("expected %d books, got %s", *e.Count, formatPtr(res.Count))
	}
	if e.IDs != nil {
		got := make([]string, 0, len(res.Books))
		for _, b := range res.Books {
			got = append(got, b.ID.String())
		}
		if !slices.Equal(got, e.IDs) {
			return fmt.Sprintf("expected ids %v, got %v", e.IDs, got)
		}
	}
	if e.Found != nil && (res.Found == nil || *res.Found != *e.Found) {
		return fmt.Sprintf("expected found=%t, got %s", *e.Found, formatPtr(res.Found))
	}
	if e.Deleted != nil && (res.Deleted == nil || *res.Deleted != *e.Deleted) {
		return fmt.Sprintf("expected deleted=%t, got %s", *e.Deleted, formatPtr(res.Deleted))
	}
	return ""
}

func formatPtr[T any](v *T) string {
	if v == nil {
		return "nothing"
	}
	return fmt.Sprint(*v)
}
