package cli

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/arthur-debert/runtimeup/internal/version"
	"github.com/arthur-debert/runtimeup/pkg/buildcmd"
	"github.com/arthur-debert/runtimeup/pkg/cobrax/topics"
	"github.com/arthur-debert/runtimeup/pkg/config"
	"github.com/arthur-debert/runtimeup/pkg/errors"
	"github.com/arthur-debert/runtimeup/pkg/extensions"
	"github.com/arthur-debert/runtimeup/pkg/filesystem"
	"github.com/arthur-debert/runtimeup/pkg/logging"
	"github.com/arthur-debert/runtimeup/pkg/materialize"
	"github.com/arthur-debert/runtimeup/pkg/platform"
	"github.com/arthur-debert/runtimeup/pkg/presence"
	"github.com/arthur-debert/runtimeup/pkg/provision"
	"github.com/arthur-debert/runtimeup/pkg/runner"
	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/arthur-debert/runtimeup/pkg/ui"
	"github.com/arthur-debert/runtimeup/pkg/versionmanager"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

//go:embed help/*.md
var helpFiles embed.FS

// Env holds the host facing dependencies commands are wired from
type Env struct {
	FS        types.FS
	GOOS      string
	NewRunner func(cfg *config.Config) runner.Runner

	// SetupLogging is called once verbosity is known
	SetupLogging func(verbosity int)

	// LoadOptions is the base for every config load. ConfigFile is
	// replaced by --config when given.
	LoadOptions config.LoadOptions
}

// DefaultEnv is the environment of a real run
func DefaultEnv() Env {
	return Env{
		FS:   filesystem.NewSynthfs(filesystem.NewOS()),
		GOOS: runtime.GOOS,
		NewRunner: func(cfg *config.Config) runner.Runner {
			return runner.New(runner.Options{Shell: cfg.Tool.Shell, Timeout: cfg.Tool.Timeout})
		},
		SetupLogging: logging.SetupLogger,
	}
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(DefaultEnv())
}

type globalFlags struct {
	verbosity      int
	configFile     string
	runtimeVersion string
}

func newRootCmd(env Env) *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:     "runtimeup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if env.SetupLogging != nil {
				env.SetupLogging(flags.verbosity)
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "Configuration file (TOML or YAML)")
	rootCmd.PersistentFlags().StringVar(&flags.runtimeVersion, "runtime-version", "", "PHP version to provision, overrides runtime.version")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInstallCmd(env, &flags))
	rootCmd.AddCommand(newStatusCmd(env, &flags))
	rootCmd.AddCommand(newPlanCmd(env, &flags))
	rootCmd.AddCommand(newExtensionsCmd(env, &flags))
	rootCmd.AddCommand(newGenConfigCmd(env, &flags))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	if sub, err := fs.Sub(helpFiles, "help"); err == nil {
		_, _ = topics.Initialize(rootCmd, sub, topics.Options{Renderer: topics.NewGlamourRenderer()})
	}

	return rootCmd
}

// loadConfig merges the configuration with the global flags
func loadConfig(env Env, flags *globalFlags) (*config.Config, error) {
	opts := env.LoadOptions
	if flags.configFile != "" {
		opts.ConfigFile = flags.configFile
	}
	if flags.runtimeVersion != "" {
		overrides := make(map[string]interface{}, len(opts.Overrides)+1)
		for k, v := range opts.Overrides {
			overrides[k] = v
		}
		overrides["runtime.version"] = flags.runtimeVersion
		opts.Overrides = overrides
	}

	cfg, err := config.Load(opts)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("config", cfg.String()).Msg("Configuration loaded")
	return cfg, nil
}

// wiring is the set of components built from one configuration
type wiring struct {
	cfg          *config.Config
	tool         *versionmanager.Tool
	orchestrator *provision.Orchestrator
}

func wire(env Env, cfg *config.Config, reporter types.Logger) *wiring {
	tool := versionmanager.New(env.NewRunner(cfg), versionmanager.Options{
		Name:       cfg.Tool.Name,
		Bashrc:     cfg.Tool.Bashrc,
		InstallURL: cfg.Tool.InstallURL,
	})

	orch := provision.New(provision.Options{
		Runtime:      cfg.RuntimeSpec(),
		Extensions:   cfg.ExtensionSpecs(),
		Template:     cfg.TemplateSpec(),
		Presence:     presence.New(env.FS),
		Detector:     platform.NewDetectorFor(env.GOOS, env.FS),
		Synthesizer:  buildcmd.New(cfg.Tool.Name),
		Tool:         tool,
		Materializer: materialize.New(env.FS, reporter),
		Reporter:     reporter,
		FS:           env.FS,
	})

	return &wiring{cfg: cfg, tool: tool, orchestrator: orch}
}

// signalContext is cancelled on SIGINT or SIGTERM so a running build is
// killed instead of orphaned
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newInstallCmd(env Env, flags *globalFlags) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "install",
		Short: MsgInstallShort,
		Long:  MsgInstallLong,
		Example: `  # Provision the configured version
  runtimeup install

  # Provision another version, giving up on any step after 45 minutes
  runtimeup install --runtime-version 8.2.4 --timeout 45m`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(env, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Tool.Timeout = timeout
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			w := wire(env, cfg, ui.NewReporter(cmd.OutOrStdout()))
			result := w.orchestrator.Execute(ctx)
			if result.Err != nil {
				return errors.Wrap(result.Err, errors.ErrProvisionFailed, MsgInstallFailed)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), MsgInstallDone)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Kill any tool invocation running longer than this (0 disables)")
	return cmd
}

func newStatusCmd(env Env, flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := rendererFor(cmd, format)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(env, flags)
			if err != nil {
				return renderFailure(renderer, format, err)
			}

			w := wire(env, cfg, ui.NewPlainReporter(cmd.ErrOrStderr()))
			return renderer.RenderResult(w.orchestrator.Status(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", "Output format: auto, terminal, text, json, yaml")
	return cmd
}

func newPlanCmd(env Env, flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: MsgPlanShort,
		Long:  MsgPlanLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := rendererFor(cmd, format)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(env, flags)
			if err != nil {
				return renderFailure(renderer, format, err)
			}

			w := wire(env, cfg, ui.NewPlainReporter(cmd.ErrOrStderr()))
			return renderer.RenderResult(w.orchestrator.Plan())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", "Output format: auto, terminal, text, json, yaml")
	return cmd
}

func newExtensionsCmd(env Env, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: MsgExtensionsShort,
		Long:  MsgExtensionsLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(env, flags)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			reporter := ui.NewReporter(cmd.OutOrStdout())
			w := wire(env, cfg, reporter)
			r := extensions.NewReconciler(w.tool, cfg.RuntimeSpec(), cfg.Template.DisplayName, reporter)
			if !r.ReconcileInstalled(ctx, cfg.ExtensionSpecs()) {
				return errors.New(errors.ErrExtensionInstall, MsgExtFailed)
			}
			return nil
		},
	}
}

func newGenConfigCmd(env Env, flags *globalFlags) *cobra.Command {
	var commented bool

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Example: `  # Save the defaults as the user configuration
  runtimeup genconfig > ~/.config/runtimeup/config.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(env, flags)
			if err != nil {
				return err
			}
			content, err := config.GenerateConfigContent(cfg, commented)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}

	cmd.Flags().BoolVar(&commented, "commented", false, "Comment out every value")
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     MsgCompletionShort,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			header := &doc.GenManHeader{
				Title:   "RUNTIMEUP",
				Section: "1",
				Source:  "runtimeup " + version.Version,
				Manual:  "runtimeup manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "man", "Output directory")
	return cmd
}

func rendererFor(cmd *cobra.Command, format string) (ui.Renderer, error) {
	f, err := ui.ParseFormat(format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}
	return ui.NewRenderer(f, cmd.OutOrStdout())
}

// renderFailure also writes err to stdout for json and yaml so scripts
// always get a document to parse
func renderFailure(renderer ui.Renderer, format string, err error) error {
	if f, _ := ui.ParseFormat(format); f == ui.FormatJSON || f == ui.FormatYAML {
		_ = renderer.RenderError(err)
	}
	return err
}
