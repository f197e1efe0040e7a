// Fritz-profiles switches the parental-control access profiles of devices
// on an AVM FRITZ!Box router.
//
// It logs in to the router web interface, reads the profile and device
// tables, and assigns profiles in a single request:
//
//	fritz-profiles --password secret landevice1234=filtprof3
//	fritz-profiles --list-devices
//	fritz-profiles --preset bedtime --dry-run
//
// See 'fritz-profiles --help' for available flags and commands.
package main

import (
	"fmt"
	"os"

	"github.com/muurk/fritz-profiles/internal/fritzbox"
	"github.com/muurk/fritz-profiles/internal/logging"
	"github.com/muurk/fritz-profiles/internal/ui"
)

func main() {
	err := newRootCmd().Execute()
	logging.Sync()
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func reportError(err error) {
	if fritzbox.IsTransportError(err) || fritzbox.IsAuthError(err) || fritzbox.IsParseError(err) {
		ui.NewPrinter(os.Stderr).PrintError(fritzbox.ShortErrorMessage(err), err, fritzbox.TroubleshootingHint(err))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
