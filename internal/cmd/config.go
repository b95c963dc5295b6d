package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/cleanaid/internal/config"
	"github.com/felixgeelhaar/cleanaid/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or edit cleanaid configuration",
	Long: `Manage the cleanaid configuration stored at ~/.cleanaid/config.yaml

Every key can also be set through the environment: api.url is read from
CLEANAID_API_URL, cache.stale_time from CLEANAID_CACHE_STALE_TIME, and so on.

Examples:
  # View the resolved configuration
  cleanaid config view

  # Point the CLI at an API
  cleanaid config set api.url https://api.cleanaid.example

  # Keep query results fresh for a minute
  cleanaid config set cache.stale_time 1m

  # Get a specific value
  cleanaid config get api.timeout

  # Edit the file in $EDITOR
  cleanaid config edit
`,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display the resolved configuration",
	Long:  `Display the configuration after defaults, file, environment and flags are merged.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigView,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Print the resolved value of a key in dot notation (e.g. cache.stale_time).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  `Write one key to the configuration file. Values are checked before anything is written.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration in $EDITOR",
	Long:  `Open the configuration file in your default editor (from the $EDITOR environment variable).`,
	Args:  cobra.NoArgs,
	RunE:  runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(config.Keys(), "\n"))
		return err
	},
}

func init() {
	configCmd.AddCommand(configViewCmd, configGetCmd, configSetCmd, configEditCmd, configPathCmd, configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigView(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if cc.Format == "" || cc.Format == "text" {
		fmt.Fprintf(cc.Out, "Configuration file: %s\n\n", cc.ConfigPath)
		cc.Format = "yaml"
	}
	return cc.Print(cc.Config)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	v, err := cc.Config.Get(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cc.Out, v)
	return err
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := configPath(cmd)
	if err != nil {
		return err
	}
	if err := config.Set(path, args[0], args[1]); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
	return err
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path, err := configPath(cmd)
	if err != nil {
		return err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		return errors.New(errors.ErrCodeConfigMissing, "$EDITOR is not set").
			WithSuggestion("Set EDITOR, or use 'cleanaid config set <key> <value>'")
	}

	// Create the file with the current values so the editor has something to show.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		if err := config.Save(cfg, path); err != nil {
			return err
		}
	}

	edit := exec.CommandContext(cmd.Context(), editor, path)
	edit.Stdin = cmd.InOrStdin()
	edit.Stdout = cmd.OutOrStdout()
	edit.Stderr = cmd.ErrOrStderr()
	if err := edit.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if _, err := config.Load(path); err != nil {
		return err
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	path, err := configPath(cmd)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

// configPath is --config, or the default location.
func configPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}
