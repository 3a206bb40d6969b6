package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rhinofoam",
	Short: "rhinofoam turns toolpath geometry into machine G-code",
	Long: `rhinofoam reads toolpath geometry (YAML or JSON) and a machine
profile (.cfg), validates every segment against the build envelope, and
emits deposition-aware G-code for Hot (FDM), Clay (paste) or Pen
(plotter) hardware.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger()
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

// logger builds the console logger for command output. Level follows
// the persistent --verbose flag.
func logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if v, _ := rootCmd.PersistentFlags().GetBool("verbose"); v {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
