package suite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/jmespath/parser"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		file        string
		expressions []string
		syntax      int
	}{
		{
			name: "json",
			file: "testdata/basic.json",
			expressions: []string{
				"foo.bar[*].baz",
				"foo.bar[0]",
				"foo.bar[?baz > `1`].baz | [0]",
				"{a: foo, a: foo}",
				"sort_by(people, &age)[].name",
				"length(`1`)",
				"people[::0]",
			},
			syntax: 0,
		},
		{
			name: "yaml",
			file: "testdata/syntax.yaml",
			expressions: []string{
				"foo.",
				"foo[?bar==`1`",
				"[a, b,]",
				"a = b",
				`"foo"(bar)`,
				"foo[1:2:3]",
			},
			syntax: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cases, err := Load(tt.file)
			require.NoError(t, err)

			var expressions []string
			syntax := 0
			for i, c := range cases {
				assert.Equal(t, tt.file, c.File)
				assert.Equal(t, i, c.Index)
				expressions = append(expressions, c.Expression)
				if c.ExpectSyntaxError() {
					syntax++
				}
			}
			assert.Equal(t, tt.expressions, expressions)
			assert.Equal(t, tt.syntax, syntax)
		})
	}
}

func TestLoadKeepsComments(t *testing.T) {
	t.Parallel()

	cases, err := Load("testdata/syntax.yaml")
	require.NoError(t, err)
	require.Len(t, cases, 6)
	assert.Equal(t, "lone equals is rejected by the lexer", cases[3].Comment)
	assert.Equal(t, SyntaxError, cases[3].Error)
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "not_json", file: "a.json", content: "{"},
		{name: "not_a_list", file: "a.json", content: `{"cases": []}`},
		{name: "case_not_object", file: "a.json", content: `[{"cases": [1]}]`},
		{name: "case_without_expression", file: "a.json", content: `[{"cases": [{"result": 1}]}]`},
		{name: "expression_not_string", file: "a.yml", content: "- cases:\n    - expression: 1\n"},
		{name: "bad_yaml", file: "a.yaml", content: "- cases: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(tt.file, strings.NewReader(tt.content))
			assert.ErrorIs(t, err, ErrInvalidSuite)
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	cases := []Case{
		{Expression: "a.b"},
		{Expression: "a.", Error: SyntaxError},
		{Expression: "a.b", Error: SyntaxError},
		{Expression: "a.", Error: "invalid-type"},
	}

	results := Check(cases)
	require.Len(t, results, 4)

	assert.True(t, results[0].Passed())
	assert.NoError(t, results[0].Err)

	assert.True(t, results[1].Passed())
	assert.ErrorIs(t, results[1].Err, parser.ErrSyntax)

	assert.False(t, results[2].Passed())
	assert.False(t, results[3].Passed())
}

func TestExpand(t *testing.T) {
	t.Parallel()

	files, err := Expand([]string{"testdata/**/*.json", "testdata/*.yaml", "testdata/basic.json"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("testdata", "basic.json"),
		filepath.Join("testdata", "failing.json"),
		filepath.Join("testdata", "syntax.yaml"),
	}, files)

	_, err = Expand([]string{"testdata/*.toml"})
	assert.ErrorIs(t, err, ErrNoMatches)

	_, err = Expand([]string{"testdata/[.json"})
	assert.Error(t, err)
}

func TestRunner(t *testing.T) {
	t.Parallel()

	runner := &Runner{Concurrency: 2}

	t.Run("passing", func(t *testing.T) {
		t.Parallel()

		report, err := runner.Run(context.Background(), []string{"testdata/basic.json", "testdata/syntax.yaml"})
		require.NoError(t, err)
		assert.Len(t, report.Results, 13)
		assert.True(t, report.OK())
		assert.Equal(t, "testdata/basic.json", report.Results[0].Case.File)
		assert.Equal(t, "testdata/syntax.yaml", report.Results[12].Case.File)
	})

	t.Run("failing", func(t *testing.T) {
		t.Parallel()

		report, err := runner.Run(context.Background(), []string{"testdata/failing.json"})
		require.NoError(t, err)
		assert.False(t, report.OK())

		failures := report.Failures()
		require.Len(t, failures, 2)
		assert.Equal(t, "a.b", failures[0].Case.Expression)
		assert.NoError(t, failures[0].Err)
		assert.Equal(t, "a..b", failures[1].Case.Expression)
		assert.Error(t, failures[1].Err)
	})

	t.Run("missing_file", func(t *testing.T) {
		t.Parallel()

		_, err := runner.Run(context.Background(), []string{"testdata/basic.json", "testdata/missing.json"})
		assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := runner.Run(ctx, []string{"testdata/basic.json"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
