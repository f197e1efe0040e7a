// Package ui provides terminal UI components for the fritz-profiles CLI.
//
// Components follow a "run once and exit" pattern: a spinner while the
// router login and inventory fetch are in flight, then a result box. Boxes
// are written to stderr so stdout carries only the device or profile table.
//
//   - TaskModel / RunWithSpinner: Bubble Tea spinner around a blocking task
//   - Result: success, failure and warning boxes rendered with Lipgloss
//   - Printer: writes result boxes at the terminal width
//   - ReadPassword: no-echo password prompt
//
// Example:
//
//	err := ui.RunWithSpinner(ctx, "Connecting to router...", os.Stderr, func(ctx context.Context) error {
//	    session, err = fritzbox.Connect(ctx, opts)
//	    return err
//	})
//	if err != nil {
//	    ui.NewPrinter(os.Stderr).PrintError("Connection failed", err, fritzbox.TroubleshootingHint(err))
//	}
//
// Logging is controlled separately via FRITZ_LOG_LEVEL; when unset zap is
// silent and only these components produce output.
package ui
