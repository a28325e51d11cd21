package commands

import (
	"fmt"
	"os"

	"github.com/simonhull/firebird-suite/wren/internal/config"
	"github.com/simonhull/firebird-suite/wren/internal/input"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/spf13/cobra"
)

// InitCmd creates the init command, which writes a starter wren.yml
func InitCmd() *cobra.Command {
	var (
		configPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a wren.yml build configuration",
		Long: `Writes a wren.yml declaring two C# targets:
• packet: Schemas/packet -> Network/bin/packet_schemas
• world:  Schemas/world  -> Client/bin/world_schemas

flatc is expected at bin/flatc and downloaded on the first build.

Example:
  wren init && wren build`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runInit(configPath, force); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Where to write the configuration")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration without asking")

	return cmd
}

func runInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		if !input.Confirm(fmt.Sprintf("%s already exists. Overwrite?", path), false) {
			output.Info(fmt.Sprintf("Kept existing %s", path))
			return nil
		}
	}

	if err := config.Save(path, config.Default()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	output.Success(fmt.Sprintf("Created %s", path))
	output.Info("Next steps:")
	output.Step(fmt.Sprintf("Adjust the targets in %s", path))
	output.Step("wren build")
	return nil
}
