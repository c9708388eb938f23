package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/steviee/go-byond/internal/cli/output"
	"github.com/steviee/go-byond/internal/cli/settings"
	"github.com/steviee/go-byond/internal/state"
)

// NewCommand creates the config command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View and manage go-byond configuration settings.

Configuration is read from ~/.config/go-byond/config.yaml by default
(honoring $XDG_CONFIG_HOME) and every key can be overridden with a
GOBYOND_* environment variable, e.g. GOBYOND_HTTP_TIMEOUT=10s.`,
		Example: `  # View the effective configuration
  go-byond config show

  # Show configuration file path
  go-byond config path

  # Write a config file with the defaults
  go-byond config init

  # Check a config file
  go-byond config validate --config ./config.yaml`,
		Aliases: []string{"cfg"},
	}

	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewPathCommand())
	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}

// NewShowCommand creates the config show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput := jsonFlag(cmd)
			cfg, err := settings.Current()
			if err != nil {
				return output.Error(cmd.OutOrStdout(), jsonOutput, err)
			}
			return runShow(cmd.OutOrStdout(), cfg, jsonOutput)
		},
	}
}

// NewPathCommand creates the config path command.
func NewPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(cmd.OutOrStdout(), configFlag(cmd), jsonFlag(cmd))
		},
	}
}

// NewInitCommand creates the config init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.Context(), cmd.OutOrStdout(), configFlag(cmd), force, jsonFlag(cmd))
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file (kept as .bak)")

	return cmd
}

// NewValidateCommand creates the config validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd.OutOrStdout(), configFlag(cmd), jsonFlag(cmd))
		},
	}
}

func runShow(w io.Writer, cfg *state.Config, jsonOutput bool) error {
	if jsonOutput {
		return output.Success(w, cfg, "")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	_, err = w.Write(data)
	return err
}

func runPath(w io.Writer, path string, jsonOutput bool) error {
	path, err := resolvePath(path)
	if err != nil {
		return output.Error(w, jsonOutput, err)
	}

	_, statErr := os.Stat(path)
	exists := statErr == nil

	if jsonOutput {
		return output.Success(w, map[string]interface{}{
			"path":   path,
			"exists": exists,
		}, "")
	}

	_, err = fmt.Fprintln(w, path)
	return err
}

func runInit(ctx context.Context, w io.Writer, path string, force, jsonOutput bool) error {
	path, err := resolvePath(path)
	if err != nil {
		return output.Error(w, jsonOutput, err)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return output.Error(w, jsonOutput, fmt.Errorf("config file %s already exists (use --force to overwrite)", path))
	}

	if err := state.SaveConfig(ctx, state.DefaultConfig(), path); err != nil {
		return output.Error(w, jsonOutput, err)
	}

	if jsonOutput {
		return output.Success(w, map[string]string{"path": path}, "Config file written")
	}

	_, err = fmt.Fprintf(w, "Wrote %s\n", path)
	return err
}

func runValidate(ctx context.Context, w io.Writer, path string, jsonOutput bool) error {
	path, err := resolvePath(path)
	if err != nil {
		return output.Error(w, jsonOutput, err)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return output.Error(w, jsonOutput, fmt.Errorf("config file %s does not exist", path))
	}

	if _, err := state.LoadConfig(ctx, path); err != nil {
		return output.Error(w, jsonOutput, err)
	}

	if jsonOutput {
		return output.Success(w, map[string]interface{}{"path": path, "valid": true}, "")
	}

	_, err = fmt.Fprintf(w, "%s %s\n", path, output.OK("is valid"))
	return err
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return state.GetConfigPath()
}

func configFlag(cmd *cobra.Command) string {
	v, _ := cmd.Flags().GetString("config")
	return v
}

func jsonFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
