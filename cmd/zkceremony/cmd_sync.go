package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zkceremony/internal/logging"
	"zkceremony/internal/storage"
)

var syncFlags struct {
	root      string
	bucketURL string
	parallel  int
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull the ceremony from the remote bucket",
	Long: `Download every contribution folder and the powers-of-tau file from the
remote bucket into the local ceremony root. Files already present with a
matching SHA-256 digest are skipped, so re-running sync is cheap.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	f := syncCmd.Flags()
	f.StringVar(&syncFlags.root, "root", "", "Ceremony root directory (default: $ZKCEREMONY_ROOT or ./ceremony)")
	f.StringVar(&syncFlags.bucketURL, "bucket-url", "", "Remote bucket base URL (default: $ZKCEREMONY_BUCKET_URL)")
	f.IntVar(&syncFlags.parallel, "parallel", 4, "Max parallel downloads")
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if syncFlags.root != "" {
		cfg.Root = syncFlags.root
	}
	if syncFlags.bucketURL != "" {
		cfg.BucketURL = syncFlags.bucketURL
	}
	if cfg.BucketURL == "" {
		return fmt.Errorf("bucket URL is required (flag --bucket-url, env ZKCEREMONY_BUCKET_URL, or ceremony.yaml)")
	}

	client, err := storage.New(cfg.BucketURL,
		storage.WithLogger(logging.New("storage")),
		storage.WithConcurrency(syncFlags.parallel),
	)
	if err != nil {
		return err
	}

	names, err := client.EnsureContributions(cmd.Context(), cfg.Root)
	if err != nil {
		return fmt.Errorf("sync contributions: %w", err)
	}
	params, err := client.EnsureParams(cmd.Context(), cfg.Root)
	if err != nil {
		return fmt.Errorf("sync params: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Synced %d folder(s) into %s\n", len(names), cfg.Root)
	fmt.Fprintf(out, "Params: %s\n", params)
	return nil
}
