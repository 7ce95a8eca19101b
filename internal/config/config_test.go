package config

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/jmespath/internal/render"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  Config
		check   bool
		wantErr error
	}{
		{
			name:   "defaults",
			config: *Default(),
		},
		{
			name:    "unknown_format",
			config:  Config{Format: "xml", Concurrency: 1},
			wantErr: render.ErrUnknownFormat,
		},
		{
			name:    "zero_concurrency",
			config:  Config{Format: render.FormatJSON},
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "check_without_patterns",
			config:  Config{Format: render.FormatTree, Concurrency: 2},
			check:   true,
			wantErr: ErrNoPatterns,
		},
		{
			name:   "check_with_patterns",
			config: Config{Format: render.FormatYAML, Concurrency: 2, Patterns: []string{"*.json"}},
			check:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			validate := tt.config.Validate
			if tt.check {
				validate = tt.config.ValidateCheck
			}

			err := validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, render.FormatTree, cfg.Format)
	assert.GreaterOrEqual(t, cfg.Concurrency, 1)
	assert.False(t, cfg.Debug)
}

func TestExpression(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exprFile := filepath.Join(dir, "expr.jmespath")
	require.NoError(t, os.WriteFile(exprFile, []byte("foo.bar\n"), 0o600))
	blankFile := filepath.Join(dir, "blank.jmespath")
	require.NoError(t, os.WriteFile(blankFile, []byte(" \n"), 0o600))

	tests := []struct {
		name    string
		file    string
		args    []string
		stdin   string
		want    string
		wantErr error
	}{
		{name: "argument", args: []string{"a.b"}, want: "a.b"},
		{name: "file", file: exprFile, want: "foo.bar"},
		{name: "stdin_flag", file: StdinFile, stdin: "a | b\r\n", want: "a | b"},
		{name: "stdin_argument", args: []string{"-"}, stdin: "[0]\n", want: "[0]"},
		{name: "multi_line_stdin", file: StdinFile, stdin: "a |\n  b\n", want: "a |\n  b"},
		{name: "nothing", wantErr: ErrNoExpression},
		{name: "blank_file", file: blankFile, wantErr: ErrNoExpression},
		{name: "both", file: exprFile, args: []string{"a"}, wantErr: ErrAmbiguousExpression},
		{name: "missing_file", file: filepath.Join(dir, "missing"), wantErr: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{File: tt.file}
			got, err := cfg.Expression(tt.args, strings.NewReader(tt.stdin))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	(&Config{}).Logger(&buf).Debug("hidden")
	assert.Empty(t, buf.String())

	logger := (&Config{Debug: true}).Logger(&buf)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	logger.Debug("shown", "file", "a.json")
	assert.Contains(t, buf.String(), "msg=shown file=a.json")
}
