// Package batch evaluates many expressions in parallel.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/govalues/bigint"
)

// Evaluator evaluates a single expression.
type Evaluator interface {
	Eval(expr string) (bigint.BigInteger, error)
}

// Result is the outcome of one expression.
// Line is 1-based and refers to the input the expression was read from.
type Result struct {
	Line  int
	Expr  string
	Value bigint.BigInteger
	Err   error
}

// Failed reports whether the expression could not be evaluated.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Job is an expression with its line number.
type Job struct {
	Line int
	Expr string
}

// Read collects non-blank lines from r as jobs.
// Lines starting with '#' are comments.
func Read(r io.Reader) ([]Job, error) {
	var jobs []Job
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		jobs = append(jobs, Job{Line: line, Expr: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", line+1, err)
	}
	return jobs, nil
}

// FromArgs turns command-line expressions into jobs numbered from 1.
func FromArgs(args []string) []Job {
	jobs := make([]Job, 0, len(args))
	for i, a := range args {
		jobs = append(jobs, Job{Line: i + 1, Expr: a})
	}
	return jobs
}

// Runner evaluates jobs on a bounded number of goroutines.
type Runner struct {
	eval    Evaluator
	workers int
	log     logrus.FieldLogger
}

// NewRunner returns a runner using at most workers goroutines.
// Values below 1 are treated as 1. A nil logger means the standard logger.
func NewRunner(eval Evaluator, workers int, log logrus.FieldLogger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{eval: eval, workers: workers, log: log}
}

// Run evaluates jobs and returns their results in input order.
// An expression that fails is reported in its Result and does not stop
// the others. Run returns an error only if ctx is canceled.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.workers, len(jobs)))

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			v, err := r.eval.Eval(job.Expr)
			results[i] = Result{Line: job.Line, Expr: job.Expr, Value: v, Err: err}

			entry := r.log.WithFields(logrus.Fields{"line": job.Line, "expr": job.Expr})
			if err != nil {
				entry.WithError(err).Debug("expression failed")
			} else {
				entry.WithField("digits", v.Prec()).Debug("expression evaluated")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary counts the successful and failed results.
func Summary(results []Result) (ok, failed int) {
	for _, res := range results {
		if res.Failed() {
			failed++
		} else {
			ok++
		}
	}
	return ok, failed
}
