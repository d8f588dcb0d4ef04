// Package main provides the ligrec command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ligrec",
		Short: "Cancer-stroma ligand-receptor interaction scoring",
		Long: `ligrec scores ligand-receptor signaling between the cancer and stromal
compartments of a sequencing sample: it selects a representative transcript
per gene, normalizes expression per compartment with a trimmed middle-90%
sum, and derives directional averages and cancer/stroma ratios for every
curated interaction.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	cmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	cmd.AddCommand(newScoreCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig wires viper to ~/.ligrec.yaml and LIGREC_* environment
// variables. A missing config file is not an error.
func initConfig() error {
	viper.SetConfigName(".ligrec")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("ligrec")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// newLogger builds the process logger; verbose switches to the
// development config with debug level.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}
