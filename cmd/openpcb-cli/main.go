// Openpcb-cli is the command-line companion for OpenPCB.
//
// It offers small scripting utilities around the settings subsystem: dumping
// presets, inspecting the settings file location, and an echo scaffold for
// future batch commands.
//
// Usage:
//
//	openpcb-cli [command] [flags]
//
// See 'openpcb-cli --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Monotoba/OpenPCB/internal/logging"
	"github.com/Monotoba/OpenPCB/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var echoMessage string

var rootCmd = &cobra.Command{
	Use:     "openpcb-cli",
	Short:   "OpenPCB command-line utilities",
	Long:    `Command-line utilities for the OpenPCB printed circuit board editor.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		if echoMessage != "" {
			fmt.Println(echoMessage)
			return nil
		}
		fmt.Println("OpenPCB CLI scaffold. Run 'openpcb-cli --help' for commands.")
		return nil
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().StringVar(&echoMessage, "echo", "", "echo a message")

	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("openpcb-cli %s\n", version.Full())
	},
}
