package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/jacoelho/jmespath/internal/render"
)

var (
	ErrNoExpression        = errors.New("no expression provided")
	ErrAmbiguousExpression = errors.New("expression given both as argument and with --file")
	ErrNoPatterns          = errors.New("no suite files specified")
	ErrInvalidConcurrency  = errors.New("concurrency must be at least 1")
)

// StdinFile selects standard input as the expression source.
const StdinFile = "-"

// Config represents the command-line configuration of jp.
type Config struct {
	Format      render.Format
	Debug       bool
	Concurrency int

	// File holds the expression when set. StdinFile reads standard input.
	File string

	// Patterns are the suite globs given to the check command.
	Patterns []string
}

// Default returns the configuration used when no flags are given.
func Default() *Config {
	return &Config{
		Format:      render.FormatTree,
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if _, err := render.ParseFormat(string(c.Format)); err != nil {
		return err
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("%w, got: %d", ErrInvalidConcurrency, c.Concurrency)
	}

	return nil
}

// ValidateCheck validates the configuration of the check command.
func (c *Config) ValidateCheck() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if len(c.Patterns) == 0 {
		return ErrNoPatterns
	}

	return nil
}

// Expression resolves the expression text from the positional arguments or
// from File. A single "-" argument is the same as --file -.
func (c *Config) Expression(args []string, stdin io.Reader) (string, error) {
	file := c.File
	switch {
	case len(args) > 0 && file != "":
		return "", ErrAmbiguousExpression
	case len(args) == 1 && args[0] == StdinFile:
		file = StdinFile
	case len(args) > 0:
		return args[0], nil
	case file == "":
		return "", ErrNoExpression
	}

	var (
		data []byte
		err  error
	)
	if file == StdinFile {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read expression from %s: %w", file, err)
	}

	expression := strings.TrimRight(string(data), "\r\n")
	if strings.TrimSpace(expression) == "" {
		return "", ErrNoExpression
	}
	return expression, nil
}

// Logger returns a text logger on w, at debug level when Debug is set.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
