package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tcrecover/internal/errs"
	"tcrecover/internal/volume"
)

func init() {
	unlockCmd.SilenceErrors = true
	unlockCmd.SilenceUsage = true
	rootCmd.AddCommand(unlockCmd)

	unlockCmd.Flags().StringVarP(&unlockInput, "input", "i", "", "Volume file to unlock")
	unlockCmd.Flags().StringVarP(&unlockPassword, "password", "p", "", "Passphrase (prompted interactively if omitted)")
	unlockCmd.Flags().BoolVarP(&unlockQuiet, "quiet", "q", false, "Suppress progress output")
	unlockCmd.Flags().BoolVar(&unlockVerbose, "verbose", false, "Print introspection details on success")
	_ = unlockCmd.MarkFlagRequired("input")
}

var (
	unlockInput    string
	unlockPassword string
	unlockQuiet    bool
	unlockVerbose  bool
)

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Probe a volume and report the unlocking (hash, cascade, variant)",
	Long: `unlock tries every (hash, cascade, variant) combination against the volume
header until one validates, then reports which combination worked.

Examples:
  tcrecover unlock -i volume.tc
  tcrecover unlock -i volume.tc -p "correct horse battery staple"
  tcrecover unlock -i volume.tc --verbose`,
	RunE: runUnlock,
}

func runUnlock(cmd *cobra.Command, args []string) error {
	st, reporter, err := openAndUnlock(unlockInput, unlockPassword, unlockQuiet)
	if err != nil {
		return err
	}
	defer st.Close()
	reporter.Finish()

	reporter.PrintSuccess("Unlocked %s: %s variant, %s HMAC, %s cascade",
		unlockInput, st.Variant(), st.HMACName(), st.CascadeName())

	if unlockVerbose {
		fmt.Printf("format version: %d\n", st.FormatVersion())
		fmt.Printf("volume created: %s\n", time.Unix(st.VolumeCreatedAt(), 0).UTC())
		fmt.Printf("header created: %s\n", time.Unix(st.HeaderCreatedAt(), 0).UTC())
		fmt.Printf("hidden volume size: %d bytes\n", st.HiddenSize())
		fmt.Printf("sector count: %d\n", st.SectorCount())
		fmt.Printf("header (hex): %s\n", st.HeaderHex())
		fmt.Printf("master pool (hex): %s\n", st.MasterPoolHex())
	}
	return nil
}

// openAndUnlock opens path, reads a passphrase (from flag or prompt),
// and runs the unlock probe with a terminal reporter wired to
// cooperative Ctrl-C cancellation.
func openAndUnlock(path, password string, quiet bool) (*volume.State, *Reporter, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("input file is required (-i)")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("input file not found: %s", path)
	}

	if password == "" {
		var err error
		password, err = ReadPasswordInteractive()
		if err != nil {
			return nil, nil, fmt.Errorf("password input: %w", err)
		}
	}

	src, err := volume.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}

	reporter := NewReporter(quiet)
	ctx, cancel := context.WithCancel(context.Background())
	cancelFn = cancel

	st, err := volume.Unlock(ctx, src, []byte(password), reporter)
	if err != nil {
		reporter.Finish()
		_ = volume.Close(src)
		if errs.IsNotUnlockable(err) {
			reporter.PrintError("incorrect password or not a TrueCrypt volume")
		} else {
			reporter.PrintError("%v", err)
		}
		return nil, nil, err
	}
	return st, reporter, nil
}
