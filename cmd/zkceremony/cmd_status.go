package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zkceremony/internal/ceremony"
	"zkceremony/internal/format"
)

var statusFlags struct {
	root string
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the local ceremony tree: folders, artifact counts, params file",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFlags.root, "root", "", "Ceremony root directory (default: $ZKCEREMONY_ROOT or ./ceremony)")
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if statusFlags.root != "" {
		cfg.Root = statusFlags.root
	}

	folders, err := ceremony.ListContributionFolders(cfg.Root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(folders) == 0 {
		fmt.Fprintf(out, "No contribution folders under %s\n", cfg.Root)
		fmt.Fprintf(out, "Run 'zkceremony sync' to pull the ceremony from the remote bucket.\n")
		return nil
	}

	tb := format.NewTable(format.ASCII)
	tb.Header("folder", "role", "artifacts", "size")
	tb.AlignRight(3, 4)
	for i, f := range folders {
		dir := filepath.Join(cfg.Root, f.Name)
		arts, err := ceremony.ListArtifacts(dir)
		if err != nil {
			return err
		}
		role := "contribution"
		if i == 0 {
			role = "baseline"
		}
		tb.Row(f.Name, role, len(arts), format.FmtBytes(dirSize(dir)))
	}
	fmt.Fprintln(out, tb.String())

	params := cfg.Params
	if params == "" {
		params, err = ceremony.FindParamsFile(cfg.Root)
	}
	if err != nil {
		fmt.Fprintf(out, "Params: none (%v)\n", err)
		return nil
	}
	if info, err := os.Stat(params); err == nil {
		fmt.Fprintf(out, "Params: %s (%s)\n", params, format.FmtBytes(info.Size()))
	} else {
		fmt.Fprintf(out, "Params: %s (missing)\n", params)
	}
	return nil
}

// dirSize sums the sizes of regular files directly under dir. Errors count
// as zero: status output should never fail on a half-synced folder.
func dirSize(dir string) int64 {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	var total int64
	for _, e := range entries {
		if info, err := e.Info(); err == nil && !e.IsDir() {
			total += info.Size()
		}
	}
	return total
}
