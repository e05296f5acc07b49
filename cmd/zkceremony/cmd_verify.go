package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"zkceremony/internal/ceremony"
	"zkceremony/internal/format"
	"zkceremony/internal/logging"
	"zkceremony/internal/storage"
	"zkceremony/internal/verifier"
)

var verifyFlags struct {
	root        string
	params      string
	verifierCmd string
	bucketURL   string
	sync        bool
	markdown    bool
	strict      bool
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the whole contribution chain against the baseline",
	Long: `Verify every contribution folder under the ceremony root against the
baseline (the lexically-first NNNN_label folder). Each artifact pair is
checked by the external verifier command; its output streams straight to
your terminal since a single check can run for minutes.

Verification failures never abort the chain: the run always completes and
prints the full summary table. Only setup problems (missing root, missing
powers-of-tau file) abort early. With --strict, the command also exits
non-zero when any verification failed, for CI gating.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	f := verifyCmd.Flags()
	f.StringVar(&verifyFlags.root, "root", "", "Ceremony root directory (default: $ZKCEREMONY_ROOT or ./ceremony)")
	f.StringVar(&verifyFlags.params, "params", "", "Powers-of-tau file (default: the single *.ptau under the root)")
	f.StringVar(&verifyFlags.verifierCmd, "verifier", "", `External verifier command, e.g. "snarkjs zkey verify"`)
	f.StringVar(&verifyFlags.bucketURL, "bucket-url", "", "Remote bucket base URL (default: $ZKCEREMONY_BUCKET_URL)")
	f.BoolVar(&verifyFlags.sync, "sync", false, "Pull the ceremony from the remote bucket before verifying")
	f.BoolVar(&verifyFlags.markdown, "markdown", false, "Render the report as Markdown instead of an ASCII table")
	f.BoolVar(&verifyFlags.strict, "strict", false, "Exit non-zero if any verification failed")
}

func runVerify(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if verifyFlags.root != "" {
		cfg.Root = verifyFlags.root
	}
	if verifyFlags.params != "" {
		cfg.Params = verifyFlags.params
	}
	if verifyFlags.verifierCmd != "" {
		cfg.Verifier = strings.Fields(verifyFlags.verifierCmd)
	}
	if verifyFlags.bucketURL != "" {
		cfg.BucketURL = verifyFlags.bucketURL
	}

	if verifyFlags.sync {
		if cfg.BucketURL == "" {
			return fmt.Errorf("--sync requires a bucket URL (flag --bucket-url, env ZKCEREMONY_BUCKET_URL, or ceremony.yaml)")
		}
		client, err := storage.New(cfg.BucketURL, storage.WithLogger(logging.New("storage")))
		if err != nil {
			return err
		}
		if _, err := client.EnsureContributions(cmd.Context(), cfg.Root); err != nil {
			return fmt.Errorf("sync contributions: %w", err)
		}
		if _, err := client.EnsureParams(cmd.Context(), cfg.Root); err != nil {
			return fmt.Errorf("sync params: %w", err)
		}
	}

	folders, err := ceremony.ListContributionFolders(cfg.Root)
	if err != nil {
		return err
	}
	params := cfg.Params
	if params == "" {
		params, err = ceremony.FindParamsFile(cfg.Root)
		if err != nil {
			return err
		}
	}

	driver := &ceremony.Driver{
		Root:     cfg.Root,
		Params:   params,
		Verifier: verifier.NewExec(cfg.Verifier),
		Progress: cmd.ErrOrStderr(),
	}
	res := driver.Run(folders)

	mode := format.ASCII
	if verifyFlags.markdown {
		mode = format.Markdown
	}
	fmt.Fprint(cmd.OutOrStdout(), ceremony.RenderRun(res, mode))

	if verifyFlags.strict {
		if failed := ceremony.BuildReport(res.Outcomes).Failed; failed > 0 {
			return fmt.Errorf("%d verification(s) failed", failed)
		}
	}
	return nil
}
