package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is set by main.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "tcrecover",
	Short: "Read-only decryption engine for legacy TrueCrypt volumes",
	Long: `tcrecover unlocks legacy TrueCrypt-format encrypted volumes by brute-forcing
the (key-derivation hash, cipher cascade) combination against the volume
header, then exposes the decrypted body through sector-level extraction.

It supports the three legacy HMAC primitives (SHA-1, RIPEMD-160, Whirlpool)
and the eight single/double/triple cipher cascades over Rijndael, Serpent,
and Twofish, including hidden volumes stored at the tail of the container.`,
	Version: Version,
}

// cancelFn, if set, is invoked on SIGINT/SIGTERM to cooperatively
// cancel an in-flight unlock probe.
var cancelFn func()

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	Version = version
	rootCmd.Version = version

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		if cancelFn != nil {
			cancelFn()
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
