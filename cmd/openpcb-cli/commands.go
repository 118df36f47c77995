package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Monotoba/OpenPCB/internal/config"
	"github.com/Monotoba/OpenPCB/internal/model"
)

var presetCmd = &cobra.Command{
	Use:   "preset [name]",
	Short: "Print a settings preset as JSON",
	Long: `Print a named settings preset in the on-disk settings format.

With no name, the available preset names are listed. The output can be
redirected into the settings file to bootstrap a configuration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println(strings.Join(model.PresetNames(), "\n"))
			return nil
		}

		preset, ok := model.GetPreset(args[0])
		if !ok {
			return fmt.Errorf("unknown preset %q (available: %s)",
				args[0], strings.Join(model.PresetNames(), ", "))
		}
		data, err := config.Encode(preset)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the per-user directories used by OpenPCB",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := config.Default()
		if err != nil {
			return err
		}
		fmt.Printf("config:   %s\n", manager.ConfigDir())
		fmt.Printf("cache:    %s\n", manager.CacheDir())
		fmt.Printf("data:     %s\n", manager.DataDir())
		fmt.Printf("settings: %s\n", manager.SettingsPath())
		return nil
	},
}
