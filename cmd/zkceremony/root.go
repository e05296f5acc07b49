package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zkceremony/internal/config"
	"zkceremony/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	verbose    bool
}

var rootCmd = &cobra.Command{
	Use:   "zkceremony",
	Short: "Orchestrate and verify a multi-party trusted-setup ceremony",
	Long: `zkceremony drives a sequential trusted-setup ceremony for zero-knowledge
circuits: it syncs contribution folders with the remote bucket, invokes the
external verifier for every (baseline, contribution) artifact pair, and
prints a grouped PASS/FAIL report.

The cryptographic verification itself is done by an external command
(snarkjs-compatible); zkceremony only orchestrates it.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(*cobra.Command, []string) {
		logging.Init(rootFlags.verbose, nil)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to ceremony.yaml (default: ./ceremony.yaml if present)")
	pf.BoolVar(&rootFlags.verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

// loadConfig builds the effective configuration: file and environment via
// config.Load, then any flag overrides the subcommands registered.
func loadConfig() (config.Config, error) {
	return config.Load(rootFlags.configPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
