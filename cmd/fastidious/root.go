package fastidious

import (
	"embed"
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/fastidious/internal/version"
	"github.com/arthur-debert/fastidious/pkg/cobrax/topics"
	"github.com/arthur-debert/fastidious/pkg/config"
	"github.com/arthur-debert/fastidious/pkg/diff"
	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/executor"
	"github.com/arthur-debert/fastidious/pkg/logging"
	"github.com/arthur-debert/fastidious/pkg/prompt"
	"github.com/arthur-debert/fastidious/pkg/report"
	"github.com/arthur-debert/fastidious/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// annotationConfig marks commands that need the configuration loaded
const annotationConfig = "fastidious/config"

// app holds what the root command sets up for its subcommands
type app struct {
	verbosity  int
	configFile string
	format     string

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "fastidious",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			if cmd.Annotations[annotationConfig] == "" {
				return nil
			}
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "actions", Title: "Actions:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "Misc:"})

	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newTemplateCmd(a))
	rootCmd.AddCommand(newApplyCmd(a))
	rootCmd.AddCommand(newIsAppliedCmd(a))
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		m, err := topics.Load(sub, topics.Options{Renderer: topics.NewGlamourRenderer()})
		if err == nil {
			m.Install(rootCmd)
		} else {
			log.Warn().Err(err).Msg("help topics unavailable")
		}
	}

	return rootCmd
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("format") {
		overrides["output.format"] = a.format
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: a.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// outputFormat resolves the configured format for w. Writers that are not
// files never get colours unless asked for explicitly.
func (a *app) outputFormat(w io.Writer) (style.Format, error) {
	format, err := style.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return style.FormatText, errors.Wrap(err, errors.ErrInvalidInput, "invalid output format").
			WithDetail("format", a.cfg.Output.Format)
	}
	if f, ok := w.(*os.File); ok {
		return format.Resolve(f), nil
	}
	if format == style.FormatAuto {
		return style.FormatText, nil
	}
	return format, nil
}

// newExecutor builds an executor for one action command
func (a *app) newExecutor(cmd *cobra.Command, flags *actionFlags) (*executor.Executor, report.Reporter, error) {
	out := cmd.OutOrStdout()
	format, err := a.outputFormat(out)
	if err != nil {
		return nil, nil, err
	}
	reporter := report.NewConsole(out, format)

	timeout := a.cfg.Timeout.Std()
	if cmd.Flags().Changed("timeout") {
		timeout = flags.timeout
	}

	exec := executor.New(executor.Options{
		Reporter:  reporter,
		Prompter:  prompt.NewConsole(cmd.InOrStdin(), cmd.ErrOrStderr()),
		Differ:    diff.ForTool(a.cfg.Diff.Tool, a.cfg.Diff.Args),
		Logger:    logging.GetLogger("executor"),
		Stdout:    out,
		Timeout:   timeout,
		MergeTool: a.cfg.Merge.Tool,
		MergeArgs: a.cfg.Merge.Args,
		TempDir:   a.cfg.TempDir,
		Shell:     a.cfg.Shell,
	})
	return exec, reporter, nil
}
