// tcrecover is a read-only decryption engine for legacy TrueCrypt-format
// encrypted volumes. It brute-forces the (key-derivation hash, cipher
// cascade) combination against the volume header and exposes the
// decrypted body through sector-level extraction.
//
// Supported commands:
//
//	unlock   probe a volume and report which combination unlocks it
//	extract  unlock a volume and write its decrypted body to a file
package main

import (
	"os"

	"tcrecover/internal/cli"
)

// version is the build version, stamped at release time via
// -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
