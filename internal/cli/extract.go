package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tcrecover/internal/progress"
)

func init() {
	extractCmd.SilenceErrors = true
	extractCmd.SilenceUsage = true
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractInput, "input", "i", "", "Volume file to unlock")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Path to write the decrypted body to")
	extractCmd.Flags().StringVarP(&extractPassword, "password", "p", "", "Passphrase (prompted interactively if omitted)")
	extractCmd.Flags().BoolVarP(&extractQuiet, "quiet", "q", false, "Suppress progress output")
	extractCmd.Flags().BoolVar(&extractForce, "force", false, "Overwrite the output file if it already exists")
	_ = extractCmd.MarkFlagRequired("input")
	_ = extractCmd.MarkFlagRequired("output")
}

var (
	extractInput    string
	extractOutput   string
	extractPassword string
	extractQuiet    bool
	extractForce    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Unlock a volume and decrypt its body to a plain file",
	Long: `extract unlocks a volume the same way "unlock" does, then walks every
sector of the decrypted body (the hidden volume's body if one validated)
and writes the plaintext to the given output file.

Examples:
  tcrecover extract -i volume.tc -o volume.img
  tcrecover extract -i volume.tc -o hidden.img -p "correct horse battery staple"`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	if !extractForce {
		if _, err := os.Stat(extractOutput); err == nil {
			return fmt.Errorf("output file %s already exists (use --force to overwrite)", extractOutput)
		}
	}

	st, reporter, err := openAndUnlock(extractInput, extractPassword, extractQuiet)
	if err != nil {
		return err
	}
	defer st.Close()

	reporter.PrintSuccess("Unlocked %s: %s variant, %s HMAC, %s cascade",
		extractInput, st.Variant(), st.HMACName(), st.CascadeName())

	out, err := os.OpenFile(extractOutput, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer out.Close()

	extractStart := time.Now()
	total := st.SectorCount()
	for i := uint64(1); i <= total; i++ {
		sector, err := st.ReadSector(i)
		if err != nil {
			reporter.Finish()
			return fmt.Errorf("reading sector %d: %w", i, err)
		}
		if len(sector) == 0 {
			break
		}
		if _, err := out.Write(sector); err != nil {
			reporter.Finish()
			return fmt.Errorf("writing sector %d: %w", i, err)
		}

		if i%4096 == 0 || i == total {
			frac, _, info := progress.Statify(int(i), int(total), extractStart)
			reporter.SetProgress(frac, info)
			reporter.SetStatus(fmt.Sprintf("sector %d/%d", i, total))
		}
	}
	reporter.Finish()
	reporter.PrintSuccess("Wrote %d sectors to %s", total, extractOutput)
	return nil
}
