// Package cli implements the sheetpack command-line interface.
//
// The CLI is built using cobra. Every command shares a CLI value holding the
// output writer and the user config loaded in the root command's
// PersistentPreRunE; loggers are passed through context.Context.
//
// # Commands
//
//   - pack: Pack images into sprite sheets with metadata and optional reports
//   - compare: Pack the same images under several settings and compare results
//   - config: Write or print the user config file
package cli

import (
	"context"
	"io"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/SheetPack/internal/model"
	"github.com/piwi3910/SheetPack/internal/project"
)

var version = "dev" // set via -ldflags "-X github.com/piwi3910/SheetPack/internal/cli.version=..."

// CLI holds shared state for all commands.
type CLI struct {
	out        io.Writer // status output
	logOut     io.Writer // log output
	verbose    bool
	configPath string
	config     model.AppConfig
}

// New creates a CLI writing status lines to out and logs to logOut.
func New(out, logOut io.Writer) *CLI {
	return &CLI{
		out:        out,
		logOut:     logOut,
		configPath: project.DefaultConfigPath(),
		config:     model.DefaultAppConfig(),
	}
}

// Execute builds the command tree and runs it with ctx.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sheetpack",
		Short:         "Pack sprite images into sprite sheets",
		Long:          `SheetPack packs individual sprite images into one or more sprite sheets and writes the metadata game engines need to find each sprite again.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if c.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(c.logOut, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			cfg, err := project.LoadAppConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			logger.Debug("loaded config", "path", c.configPath)
			return nil
		},
	}

	root.SetOut(c.out)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", c.configPath, "config file")

	root.AddCommand(c.packCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.configCommand())

	return root
}

func (c *CLI) printer() printer {
	return printer{w: c.out}
}
