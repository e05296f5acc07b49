package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zkceremony/internal/logging"
	"zkceremony/internal/storage"
)

var pushFlags struct {
	root      string
	bucketURL string
}

var pushCmd = &cobra.Command{
	Use:   "push <folder>",
	Short: "Upload a local contribution folder to the remote bucket",
	Long: `Upload every file of the named contribution folder (e.g. 0003_carol) to
the remote bucket, so the next participant and the coordinator can pull it.`,
	Args: cobra.ExactArgs(1),
	RunE: runPush,
}

func init() {
	f := pushCmd.Flags()
	f.StringVar(&pushFlags.root, "root", "", "Ceremony root directory (default: $ZKCEREMONY_ROOT or ./ceremony)")
	f.StringVar(&pushFlags.bucketURL, "bucket-url", "", "Remote bucket base URL (default: $ZKCEREMONY_BUCKET_URL)")
}

func runPush(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if pushFlags.root != "" {
		cfg.Root = pushFlags.root
	}
	if pushFlags.bucketURL != "" {
		cfg.BucketURL = pushFlags.bucketURL
	}
	if cfg.BucketURL == "" {
		return fmt.Errorf("bucket URL is required (flag --bucket-url, env ZKCEREMONY_BUCKET_URL, or ceremony.yaml)")
	}

	client, err := storage.New(cfg.BucketURL, storage.WithLogger(logging.New("storage")))
	if err != nil {
		return err
	}
	folder := args[0]
	if err := client.Push(cmd.Context(), cfg.Root, folder); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s to %s\n", folder, cfg.BucketURL)
	return nil
}
