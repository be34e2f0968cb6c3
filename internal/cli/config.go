package cli

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	perrors "github.com/piwi3910/SheetPack/internal/errors"
	"github.com/piwi3910/SheetPack/internal/model"
	"github.com/piwi3910/SheetPack/internal/project"
)

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the user config file",
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.configPath); err == nil && !force {
				return perrors.New(perrors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", c.configPath)
			}
			if err := project.SaveAppConfig(c.configPath, model.DefaultAppConfig()); err != nil {
				return perrors.Wrap(perrors.ErrCodeIO, err, "failed to write config")
			}
			c.printer().success("Wrote config")
			c.printer().file(c.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := c.printer()
			out.keyValue("Config file", c.configPath)
			if _, err := os.Stat(c.configPath); os.IsNotExist(err) {
				out.info("file does not exist; showing defaults")
			}
			return toml.NewEncoder(c.out).Encode(c.config)
		},
	}
}
