// Package suite checks the parser against JMESPath compliance documents.
//
// A compliance document is a list of groups, each holding the input data
// under "given" and a list of "cases". Every case carries an "expression"
// and either a "result" or an "error". Only the "syntax" error class is a
// parser concern: such cases must fail to parse and all others must parse.
package suite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/theory/jsonpath"
	"golang.org/x/sync/errgroup"

	"github.com/jacoelho/jmespath/parser"
)

var (
	// ErrNoMatches indicates a glob pattern matched no files.
	ErrNoMatches = errors.New("pattern matched no files")

	// ErrInvalidSuite indicates a compliance document with an unexpected shape.
	ErrInvalidSuite = errors.New("invalid compliance document")
)

// SyntaxError is the error class of cases that must be rejected by the parser.
const SyntaxError = "syntax"

var casesPath = jsonpath.MustParse("$[*].cases[*]")

// Case is a single expression taken from a compliance document.
type Case struct {
	File       string
	Index      int
	Expression string
	Comment    string
	Error      string
}

// ExpectSyntaxError reports whether the case must fail to parse.
func (c Case) ExpectSyntaxError() bool {
	return c.Error == SyntaxError
}

// Result is the outcome of parsing one case. Err is the parse error, if any.
type Result struct {
	Case Case
	Err  error
}

// Passed reports whether the parse outcome matches the expectation.
func (r Result) Passed() bool {
	return (r.Err != nil) == r.Case.ExpectSyntaxError()
}

// Report collects results in file order, then case order.
type Report struct {
	Results []Result
}

// Failures returns the results that did not pass.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, result := range r.Results {
		if !result.Passed() {
			failed = append(failed, result)
		}
	}
	return failed
}

// OK reports whether every case passed.
func (r *Report) OK() bool {
	return len(r.Failures()) == 0
}

// Expand resolves doublestar glob patterns to a sorted, de-duplicated list
// of files.
func Expand(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatches, pattern)
		}
		files = append(files, matches...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

// Load reads the cases of a compliance document. Files ending in .yaml or
// .yml are decoded as YAML, everything else as JSON.
func Load(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(path, f)
}

// Decode reads the cases of a compliance document from r; name selects the
// decoder by extension and is recorded on every case.
func Decode(name string, r io.Reader) ([]Case, error) {
	var doc any
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSuite, name, err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSuite, name, err)
		}
	}

	if _, ok := doc.([]any); !ok {
		return nil, fmt.Errorf("%w: %s: top level must be a list of groups", ErrInvalidSuite, name)
	}

	nodes := casesPath.Select(doc)
	cases := make([]Case, 0, len(nodes))
	for i, node := range nodes {
		fields, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s: case %d is not an object", ErrInvalidSuite, name, i)
		}
		expression, ok := fields["expression"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s: case %d has no expression", ErrInvalidSuite, name, i)
		}
		c := Case{File: name, Index: i, Expression: expression}
		c.Comment, _ = fields["comment"].(string)
		c.Error, _ = fields["error"].(string)
		cases = append(cases, c)
	}

	return cases, nil
}

// Check parses every case.
func Check(cases []Case) []Result {
	results := make([]Result, len(cases))
	for i, c := range cases {
		_, err := parser.Parse(c.Expression)
		results[i] = Result{Case: c, Err: err}
	}
	return results
}

// Runner loads and checks compliance files concurrently.
type Runner struct {
	Concurrency int
	Logger      *slog.Logger
}

// Run checks files, keeping at most Concurrency files in flight. The first
// load failure cancels the remaining work.
func (r *Runner) Run(ctx context.Context, files []string) (*Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Concurrency, 1))

	perFile := make([][]Result, len(files))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			cases, err := Load(file)
			if err != nil {
				return err
			}

			perFile[i] = Check(cases)
			logger.Debug("checked compliance file", "file", file, "cases", len(cases))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{}
	for _, results := range perFile {
		report.Results = append(report.Results, results...)
	}
	return report, nil
}
