// Package binlink wires the binlink command line: the root command, its
// global flags and the commands built from pkg/hook and pkg/config.
package binlink

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/binlink/cmd/binlink/commands/initcfg"
	"github.com/arthur-debert/binlink/cmd/binlink/commands/install"
	"github.com/arthur-debert/binlink/cmd/binlink/commands/plan"
	topicscmd "github.com/arthur-debert/binlink/cmd/binlink/commands/topics"
	"github.com/arthur-debert/binlink/internal/version"
	"github.com/arthur-debert/binlink/pkg/config"
	"github.com/arthur-debert/binlink/pkg/errors"
	"github.com/arthur-debert/binlink/pkg/hook"
	"github.com/arthur-debert/binlink/pkg/logging"
	"github.com/arthur-debert/binlink/pkg/options"
	"github.com/arthur-debert/binlink/pkg/ui"
	"github.com/arthur-debert/binlink/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// settings holds the persistent flags shared by every command.
type settings struct {
	verbosity int
	root      string
	manifest  string
	block     string
	format    string

	// fs is the filesystem commands operate on.
	fs afero.Fs
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	s := &settings{fs: afero.NewOsFs()}

	rootCmd := &cobra.Command{
		Use:     "binlink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(s.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&s.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&s.root, "root", "C", "", MsgFlagRoot)
	flags.StringVar(&s.manifest, "manifest", "", MsgFlagManifest)
	flags.StringVar(&s.block, "block", config.DefaultBlock, MsgFlagBlock)
	flags.StringVar(&s.format, "format", ui.FormatAuto.String(), MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ui.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "config", Title: "CONFIGURATION:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInstallCmd(s))
	rootCmd.AddCommand(newPlanCmd(s))
	rootCmd.AddCommand(newInitCmd(s))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd(rootCmd))

	if _, err := initTopics(rootCmd); err != nil {
		// Topics are embedded, so this only fires on a broken build
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// event loads the manifest and builds the hook event for name.
func (s *settings) event(name string, devMode bool) (hook.Event, error) {
	root, err := options.ResolveRoot(s.root)
	if err != nil {
		return hook.Event{}, err
	}

	manifest, err := config.Load(config.LoadOptions{
		Root:     root,
		Manifest: s.manifest,
		Block:    s.block,
	})
	if err != nil {
		return hook.Event{}, err
	}

	return hook.Event{
		Name:    name,
		DevMode: devMode,
		Root:    root,
		Extra:   manifest.Extra,
	}, nil
}

// renderer builds the output renderer selected by --format for cmd's stdout.
func (s *settings) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(s.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// devMode combines the --dev flag with the BINLINK_DEV environment variable.
func devMode(cmd *cobra.Command) (bool, error) {
	dev, _ := cmd.Flags().GetBool("dev")
	if dev {
		return true, nil
	}
	raw, ok := os.LookupEnv(install.EnvDev)
	if !ok || raw == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Newf(errors.ErrInvalidInput, install.MsgErrDevEnv, raw)
	}
	return parsed, nil
}

func newInstallCmd(s *settings) *cobra.Command {
	cmd := install.NewCommand()
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.install")

		dev, err := devMode(cmd)
		if err != nil {
			return err
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		force, _ := cmd.Flags().GetBool("force")

		renderer, err := s.renderer(cmd)
		if err != nil {
			return err
		}

		ev, err := s.event(cmd.Name(), dev)
		if err != nil {
			return err
		}

		logger.Info().
			Str("root", ev.Root).
			Bool("dev", dev).
			Bool("dryRun", dryRun).
			Bool("force", force).
			Msg("Starting install")

		report, err := hook.InstallBinary(cmd.Context(), s.fs, ev, hook.Options{
			Block:  s.block,
			DryRun: dryRun,
			Force:  force,
		})
		if err != nil {
			// Show what was done before the failure
			if report != nil && report.Result != nil && len(report.Result.Outcomes) > 0 {
				_ = renderer.RenderResult(display.NewDisplayResult(cmd.Name(), report, ""))
			}
			return err
		}

		message := ""
		if report == nil {
			message = install.MsgNotDevMode
		}
		return renderer.RenderResult(display.NewDisplayResult(cmd.Name(), report, message))
	}
	return cmd
}

func newPlanCmd(s *settings) *cobra.Command {
	cmd := plan.NewCommand()
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		renderer, err := s.renderer(cmd)
		if err != nil {
			return err
		}

		ev, err := s.event(cmd.Name(), false)
		if err != nil {
			return err
		}

		report, err := hook.Plan(s.fs, ev, s.block)
		if err != nil {
			return err
		}

		return renderer.RenderResult(display.NewDisplayResult(cmd.Name(), report, ""))
	}
	return cmd
}

func newInitCmd(s *settings) *cobra.Command {
	cmd := initcfg.NewCommand()
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		fromDir, _ := cmd.Flags().GetString("from-dir")
		toDir, _ := cmd.Flags().GetString("to-dir")
		filemode, _ := cmd.Flags().GetString("filemode")
		write, _ := cmd.Flags().GetBool("write")
		force, _ := cmd.Flags().GetBool("force")

		sample, err := config.GenerateSample(config.SampleOptions{
			FromDir:  fromDir,
			ToDir:    toDir,
			Filemode: filemode,
			Links:    args,
		})
		if err != nil {
			return err
		}

		if !write {
			_, err := cmd.OutOrStdout().Write(sample)
			return err
		}

		root, err := options.ResolveRoot(s.root)
		if err != nil {
			return err
		}
		path := filepath.Join(root, config.SampleFileName)

		exists, err := afero.Exists(s.fs, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path)
		}
		if exists && !force {
			return errors.Newf(errors.ErrFileWrite, initcfg.MsgErrExists, path)
		}

		if err := afero.WriteFile(s.fs, path, sample, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
		}

		renderer, err := s.renderer(cmd)
		if err != nil {
			return err
		}
		return renderer.RenderMessage(fmt.Sprintf(initcfg.MsgWritten, path))
	}
	return cmd
}

func newTopicsCmd() *cobra.Command {
	cmd := topicscmd.NewCommand()
	cmd.Run = func(cmd *cobra.Command, args []string) {
		helpCmd, _, err := cmd.Root().Find([]string{"help"})
		if err != nil || helpCmd.Run == nil {
			_ = cmd.Root().Help()
			return
		}
		helpCmd.SetOut(cmd.OutOrStdout())
		helpCmd.Run(helpCmd, []string{"topics"})
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			fmt.Fprintf(out, MsgBuiltFormat, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func newManCmd(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				return doc.GenMan(rootCmd, ManHeader(), cmd.OutOrStdout())
			}
			return doc.GenManTree(rootCmd, ManHeader(), dir)
		},
	}
	cmd.Flags().String("dir", "", MsgFlagManDir)
	return cmd
}
