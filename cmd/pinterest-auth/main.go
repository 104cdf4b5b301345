// Command pinterest-auth walks through the Pinterest OAuth2 flow from the
// command line: it prints the authorization URL, exchanges the returned code
// for an access token and can issue authenticated API requests.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/giantswarm/go-pinterest"
)

// Version can be set during build with -ldflags
var version = "dev"

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeExchangeFailed indicates the authorization code could not be exchanged.
	ExitCodeExchangeFailed = 3
)

func main() {
	cmd := newRootCmd()
	cmd.Version = version

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, pinterest.ErrToken):
		return ExitCodeExchangeFailed
	default:
		return ExitCodeError
	}
}
