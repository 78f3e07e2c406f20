// Package cli provides the tcrecover command-line interface: cobra
// subcommands for unlocking a legacy TrueCrypt volume and reading its
// sectors, a terminal progress reporter, and masked password entry.
//
// Grounded on the teacher's internal/cli/password.go (terminal-vs-piped
// detection, golang.org/x/term for echo-free reads) — simplified to a
// single unlock password with no confirmation prompt, since this tool
// never writes a volume.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// ErrPasswordEmpty is returned when interactive password entry yields
// an empty string.
var ErrPasswordEmpty = errors.New("password cannot be empty")

func isTerminal() bool {
	return term.IsTerminal(int(syscall.Stdin))
}

// readPasswordSecure reads a password from stdin without echo when
// stdin is a terminal, falling back to a buffered line read when
// stdin is piped (e.g. scripted use).
func readPasswordSecure(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	if !isTerminal() {
		reader := bufio.NewReader(os.Stdin)
		pw, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		pw = strings.TrimSuffix(pw, "\n")
		pw = strings.TrimSuffix(pw, "\r")
		return pw, nil
	}

	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}

// ReadPasswordInteractive prompts for the volume passphrase.
func ReadPasswordInteractive() (string, error) {
	password, err := readPasswordSecure("Password: ")
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", ErrPasswordEmpty
	}
	return password, nil
}
