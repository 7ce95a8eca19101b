package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jacoelho/jmespath/internal/config"
	"github.com/jacoelho/jmespath/internal/diagnostic"
	"github.com/jacoelho/jmespath/internal/exit"
	"github.com/jacoelho/jmespath/internal/render"
	"github.com/jacoelho/jmespath/internal/suite"
	"github.com/jacoelho/jmespath/lexer"
	"github.com/jacoelho/jmespath/parser"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(exitCode)
}

// app carries the state shared by the jp commands. A command that
// completes with a result other than success records it in result.
type app struct {
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	result *exit.Result
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		cfg:    config.Default(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		result := exit.Usagef(stderr, "Error: %v\n", err)
		result.Print()
		return result.ExitCode
	}

	if a.result == nil {
		return exit.CodeSuccess
	}
	a.result.Print()
	return a.result.ExitCode
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "jp",
		Short:         "Inspect how JMESPath expressions tokenize and parse",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.cfg.Validate()
		},
	}

	root.PersistentFlags().BoolVar(&a.cfg.Debug, "debug", false, "Enable debug logging on stderr")

	root.AddCommand(a.tokensCommand(), a.astCommand(), a.checkCommand())
	return root
}

func (a *app) tokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [EXPRESSION | -]",
		Short: "Print the token stream of an expression",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expression, err := a.cfg.Expression(args, a.stdin)
			if err != nil {
				return err
			}

			logger := a.cfg.Logger(a.stderr)
			logger.Debug("tokenizing expression", "bytes", len(expression))

			tokens, err := lexer.Tokenize(expression)
			if err != nil {
				a.result = exit.Failure(a.stderr, diagnostic.Format(expression, err))
				return nil
			}

			logger.Debug("tokenized expression", "tokens", len(tokens))
			return render.Tokens(a.stdout, tokens)
		},
	}

	cmd.Flags().StringVarP(&a.cfg.File, "file", "f", "", "Read the expression from a file, or - for stdin")
	return cmd
}

func (a *app) astCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [EXPRESSION | -]",
		Short: "Print the syntax tree of an expression",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expression, err := a.cfg.Expression(args, a.stdin)
			if err != nil {
				return err
			}

			logger := a.cfg.Logger(a.stderr)
			logger.Debug("parsing expression", "bytes", len(expression), "format", a.cfg.Format)

			root, err := parser.Parse(expression)
			if err != nil {
				a.result = exit.Failure(a.stderr, diagnostic.Format(expression, err))
				return nil
			}

			return render.Tree(a.stdout, root, a.cfg.Format)
		},
	}

	formats := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		formats = append(formats, string(f))
	}

	cmd.Flags().StringVarP(&a.cfg.File, "file", "f", "", "Read the expression from a file, or - for stdin")
	cmd.Flags().StringVarP((*string)(&a.cfg.Format), "output", "o", string(render.FormatTree),
		"Output format: "+strings.Join(formats, ", "))
	return cmd
}

func (a *app) checkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check PATTERN...",
		Short: "Check the parser against JMESPath compliance files",
		Long: "Check parses every expression found in the matching compliance files.\n" +
			"Cases with error \"syntax\" must be rejected and every other case must parse.\n" +
			"Patterns support ** to match any number of directories.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.Patterns = args
			if err := a.cfg.ValidateCheck(); err != nil {
				return err
			}

			files, err := suite.Expand(a.cfg.Patterns)
			if err != nil {
				return err
			}

			runner := &suite.Runner{
				Concurrency: a.cfg.Concurrency,
				Logger:      a.cfg.Logger(a.stderr),
			}
			report, err := runner.Run(cmd.Context(), files)
			if err != nil {
				return err
			}

			a.result = checkResult(a.stdout, report, len(files))
			return nil
		},
	}

	cmd.Flags().IntVarP(&a.cfg.Concurrency, "concurrency", "j", a.cfg.Concurrency, "Number of files checked in parallel")
	return cmd
}

func checkResult(w io.Writer, report *suite.Report, files int) *exit.Result {
	var b strings.Builder

	failures := report.Failures()
	for _, f := range failures {
		fmt.Fprintf(&b, "FAIL %s case %d: %s\n", f.Case.File, f.Case.Index, f.Case.Expression)
		if f.Err == nil {
			b.WriteString("expected a syntax error, expression parsed\n")
			continue
		}
		b.WriteString(diagnostic.Format(f.Case.Expression, f.Err))
	}

	fmt.Fprintf(&b, "%d files, %d cases, %d failed\n", files, len(report.Results), len(failures))

	if len(failures) > 0 {
		return exit.Failure(w, b.String())
	}
	return exit.Success(w, b.String())
}
