// Package cli implements the modelgen command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-modelgen/internal/config"
	"github.com/goliatone/go-modelgen/pkg/filters"
	"github.com/goliatone/go-modelgen/pkg/maker"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/schema"

	internalLoader "github.com/goliatone/go-modelgen/internal/schema/loader"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errIssues signals that a command already reported its problems and only the
// exit code is left to set.
var errIssues = errors.New("issues reported")

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

type app struct {
	configPath string
	jsonMode   bool

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCmd creates the top-level "modelgen" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "modelgen",
		Short:         "Build typed models from loosely structured JSON or YAML",
		Long:          "modelgen applies declarative property definitions to JSON or YAML input,\nfilling defaults, rejecting mistyped values and running filters.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: ./.modelgen.yaml)")
	flags.BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	flags.Bool("dev", true, "validate definitions before building")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", config.FormatText, "log format (text, json)")
	flags.Bool("allow-http", false, "allow loading schemas over http(s)")
	flags.Duration("http-timeout", 0, "timeout for remote schema fetches")

	root.AddCommand(
		newTransformCmd(a),
		newValidateCmd(a),
		newInspectCmd(a),
		newOpenAPICmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errIssues):
		return exitUserError
	default:
		fmt.Fprintln(stderr, "modelgen:", err)
		var sysErr systemError
		if errors.As(err, &sysErr) {
			return exitSysError
		}
		return exitUserError
	}
}

// systemError marks failures that are not caused by user input (I/O on the
// output side, encoding).
type systemError struct{ err error }

func (e systemError) Error() string { return e.err.Error() }
func (e systemError) Unwrap() error { return e.err }

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{Path: a.configPath, Flags: cmd.Flags()})
	if err != nil {
		return err
	}
	logger, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	if cfg.File != "" {
		logger.Debug("modelgen: config loaded", "file", cfg.File)
	}
	return nil
}

func (a *app) loader() schema.Loader {
	options := []schema.LoaderOption{schema.WithMaxBytes(a.cfg.MaxBytes)}
	if a.cfg.AllowHTTP {
		options = append(options, schema.WithHTTPFallback(a.cfg.HTTPTimeout))
	}
	return internalLoader.New(schema.NewLoaderOptions(options...))
}

func (a *app) orchestrator() *orchestrator.Orchestrator {
	return orchestrator.New(
		orchestrator.WithLoader(a.loader()),
		orchestrator.WithLogger(a.logger),
		orchestrator.WithFilters(filters.Default()),
		orchestrator.WithMaker(maker.New(
			maker.WithLogger(a.logger),
			maker.WithDevMode(a.cfg.Dev),
		)),
	)
}
