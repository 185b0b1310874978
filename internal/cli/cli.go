// Package cli implements the cratelink command-line interface.
//
// The root command resolves a crate name to one of its links and opens it:
//
//	cratelink serde              # crates.io page
//	cratelink serde -l d         # documentation
//	cratelink -l repository      # repository of the crate in ./Cargo.toml
//	cratelink tokio --print -l h # print the homepage instead of opening it
//
// # Logging
//
// Messages go to stderr through charmbracelet/log. The --debug (-d) flag
// lowers the level to debug, which adds timestamps, the HTTP request trace
// and the underlying cause of any failure. The logger is attached to the
// command context and retrieved with loggerFromContext.
package cli

import (
	stderrors "errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cratelink/pkg/buildinfo"
	"github.com/matzehuels/cratelink/pkg/config"
	"github.com/matzehuels/cratelink/pkg/errors"
	"github.com/matzehuels/cratelink/pkg/integrations/crates"
	"github.com/matzehuels/cratelink/pkg/launch"
	"github.com/matzehuels/cratelink/pkg/links"
	"github.com/matzehuels/cratelink/pkg/manifest"
	"github.com/matzehuels/cratelink/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "cratelink"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// Test seams; nil selects the real implementation.
	launcher launch.Launcher
	workDir  string
	pick     func(LinkPickerModel) (links.Link, error)
}

// New creates a new CLI instance writing results to stdout and messages to
// stderr.
func New(stdout, stderr io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(stderr, level),
		stdin:  os.Stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

// SetLogLevel replaces the logger with one at the given level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger = newLogger(c.stderr, level)
}

// rootOpts holds the command-line flags of the root command.
type rootOpts struct {
	link        links.Destination
	debug       bool
	print       bool
	list        bool
	interactive bool
	configPath  string
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	opts := rootOpts{configPath: config.Path()}

	root := &cobra.Command{
		Use:   appName + " [crate]",
		Short: "Open a crate's crates.io page, homepage, documentation or repository",
		Long: `cratelink looks a crate up on crates.io and opens one of its links in your browser.

The link is chosen with --link: crate (c), homepage (h), documentation (d)
or repository (r). Without a crate argument the name is read from the
nearest Cargo.toml.`,
		Version:       buildinfo.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args, opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.Flags()
	flags.VarP(&opts.link, "link", "l", "link to open: crate (c), homepage (h), documentation (d), repository (r)")
	flags.BoolVarP(&opts.print, "print", "p", false, "print the link instead of opening it")
	flags.BoolVar(&opts.list, "list", false, "list every link the crate publishes")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "choose the link from a list")
	root.PersistentFlags().StringVar(&opts.configPath, "config", opts.configPath, "config file")
	root.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	_ = root.RegisterFlagCompletionFunc("link", completeLinks)

	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Root Command
// =============================================================================

func (c *CLI) run(cmd *cobra.Command, args []string, opts rootOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return c.report(logger, err, nil)
	}

	name, err := c.crateName(args)
	if err != nil {
		return c.report(logger, err, nil)
	}

	dest := cfg.Destination()
	if cmd.Flags().Changed("link") {
		dest = opts.link
	}

	runner, err := c.newRunner(cfg, opts, logger)
	if err != nil {
		return c.report(logger, err, nil)
	}

	switch {
	case opts.list:
		return c.runList(cmd, runner, name)
	case opts.interactive:
		return c.runInteractive(cmd, runner, name, dest, opts)
	}

	result, err := runner.Execute(ctx, pipeline.Request{Crate: name, Destination: dest})
	if err != nil {
		return c.report(logger, err, result)
	}
	logger.Info(result.Summary)
	logger.Debug("done",
		"fetch", result.Stats.FetchTime.Round(time.Millisecond),
		"dispatch", result.Stats.DispatchTime.Round(time.Millisecond))
	if !opts.print {
		printSuccess(c.stderr, "Opened %s", StyleLink.Render(result.URL))
	}
	return nil
}

func (c *CLI) runList(cmd *cobra.Command, runner *pipeline.Runner, name string) error {
	logger := loggerFromContext(cmd.Context())
	info, err := runner.Fetch(cmd.Context(), name)
	if err != nil {
		return c.report(logger, err, nil)
	}
	available := runner.Resolver.Available(info)
	for _, l := range available {
		printLink(c.stdout, l.Destination.Label(), l.URL)
	}
	// Only the canonical page: say so instead of printing a lone line.
	if len(available) == 1 {
		printDetail(c.stdout, "%s", runner.Resolver.Summary(info))
	}
	return nil
}

func (c *CLI) runInteractive(cmd *cobra.Command, runner *pipeline.Runner, name string, dest links.Destination, opts rootOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	info, err := runner.Fetch(ctx, name)
	if err != nil {
		return c.report(logger, err, nil)
	}

	pick := c.pick
	if pick == nil {
		pick = func(m LinkPickerModel) (links.Link, error) { return pickLink(c.stdin, c.stderr, m) }
	}
	chosen, err := pick(NewLinkPickerModel(info.Name, runner.Resolver.Available(info), dest))
	if err != nil {
		return c.report(logger, err, nil)
	}

	if err := runner.Dispatch(ctx, chosen.URL); err != nil {
		return c.report(logger, err, nil)
	}
	if !opts.print {
		printSuccess(c.stderr, "Opened %s", StyleLink.Render(chosen.URL))
	}
	return nil
}

// crateName returns the crate argument, or the package name from the
// nearest Cargo.toml when no argument was given.
func (c *CLI) crateName(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	dir := c.workDir
	if dir == "" {
		dir = "."
	}
	return manifest.CrateName(dir)
}

func (c *CLI) newRunner(cfg config.Config, opts rootOpts, logger *log.Logger) (*pipeline.Runner, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	clientOpts := []crates.Option{
		crates.WithBaseURL(cfg.RegistryURL),
		crates.WithTimeout(timeout),
	}
	var runnerOpts []pipeline.Option
	if opts.debug {
		clientOpts = append(clientOpts, crates.WithHTTPHooks(httpTrace{logger: logger}))
		runnerOpts = append(runnerOpts, pipeline.WithHooks(stageTrace{logger: logger}))
	}

	return pipeline.NewRunner(
		crates.NewClient(clientOpts...),
		links.NewResolver(cfg.SiteURL),
		c.newLauncher(opts),
		logger,
		runnerOpts...,
	), nil
}

func (c *CLI) newLauncher(opts rootOpts) launch.Launcher {
	if opts.print {
		return launch.Printer{W: c.stdout}
	}
	if c.launcher != nil {
		return c.launcher
	}
	if opts.debug {
		return launch.NewBrowser(c.stderr)
	}
	return launch.NewBrowser(nil)
}

// =============================================================================
// Error Reporting
// =============================================================================

// ReportedError marks an error whose message has already been logged.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r *ReportedError
	return stderrors.As(err, &r)
}

// report logs the user-facing message for err. Resolve failures are
// followed by the summary of the links the crate does publish; the
// underlying cause is only logged at debug level.
func (c *CLI) report(logger *log.Logger, err error, result *pipeline.Result) error {
	logger.Error(errors.UserMessage(err))
	if pipeline.StageOf(err) == pipeline.StageResolve && result != nil && result.Summary != "" {
		logger.Info(result.Summary)
	}
	logger.Debug("cause", "code", errors.GetCode(err), "err", errors.Cause(err))
	return &ReportedError{Err: err}
}
