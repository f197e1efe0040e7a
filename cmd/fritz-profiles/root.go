package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/fritz-profiles/internal/config"
	"github.com/muurk/fritz-profiles/internal/fritzbox"
	"github.com/muurk/fritz-profiles/internal/logging"
	"github.com/muurk/fritz-profiles/internal/ui"
	"github.com/muurk/fritz-profiles/internal/version"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// rootOptions holds the root command flags
type rootOptions struct {
	url          string
	user         string
	password     string
	timeout      int
	configPath   string
	logLevel     string
	format       string
	preset       string
	listDevices  bool
	listProfiles bool
	dryRun       bool
	verify       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "fritz-profiles [flags] [DEVICE=PROFILE ...]",
		Short: "Switch FRITZ!Box parental-control profiles",
		Long: `Assign parental-control access profiles to devices on a FRITZ!Box.

Each DEVICE=PROFILE argument assigns the profile with id PROFILE to the device
with id DEVICE. Use --list-devices and --list-profiles to look up the ids.
All assignments are submitted to the router in one request.

The password can be given with --password or FRITZ_PASSWORD; otherwise it is
prompted for when running in a terminal.`,
		Example: `  # Show devices and their current profiles
  fritz-profiles --password secret --list-devices

  # Move two devices to profile filtprof3
  fritz-profiles landevice1234=filtprof3 landevice5678=filtprof3

  # Preview a preset from the config file without applying it
  fritz-profiles --preset bedtime --dry-run`,
		Version: version.Get().Version,
		Args:    validateAssignmentArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Initialize(opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runRoot(cmd, opts, args)
		},
		SilenceErrors: true,
	}

	cmd.CompletionOptions.DisableDefaultCmd = true

	f := cmd.Flags()
	f.StringVar(&opts.url, "url", fritzbox.DefaultURL, "Router base URL")
	f.StringVar(&opts.user, "user", "", "Router user name (empty for routers without named users)")
	f.StringVar(&opts.password, "password", "", "Router password (or set "+config.EnvPassword+")")
	f.IntVar(&opts.timeout, "timeout", int(fritzbox.DefaultTimeout/time.Second), "Per-request timeout in seconds")
	f.BoolVar(&opts.listDevices, "list-devices", false, "List all known devices")
	f.BoolVar(&opts.listProfiles, "list-profiles", false, "List all available profiles")
	f.StringVar(&opts.format, "format", formatTable, "Output format for listings (table, json)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Print the changes that would be submitted without applying them")
	f.StringVar(&opts.preset, "preset", "", "Apply the named preset from the config file")
	f.BoolVar(&opts.verify, "verify", false, "Re-read the assignments after applying and report differences")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file path (default: OS config dir)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); default from "+logging.LogLevelEnvVar)

	cmd.AddCommand(newDiscoverCmd())
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func validateAssignmentArgs(cmd *cobra.Command, args []string) error {
	_, err := fritzbox.ParseAssignmentArgs(args)
	return err
}

// loadConfig reads the config file and environment, then applies the flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("url") {
		cfg.Router.URL = opts.url
	}
	if f.Changed("user") {
		cfg.Router.Username = opts.user
	}
	if f.Changed("password") {
		cfg.Password = opts.password
	}
	if f.Changed("timeout") {
		cfg.Router.Timeout = opts.timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// buildRequest combines the preset assignments with the command-line ones.
// Command-line pairs come last so they override the preset for the same device.
func buildRequest(cfg *config.Config, preset string, args []string) ([]fritzbox.Assignment, error) {
	var request []fritzbox.Assignment
	if preset != "" {
		p, err := cfg.Preset(preset)
		if err != nil {
			return nil, err
		}
		request = append(request, p.Assignments...)
	}

	fromArgs, err := fritzbox.ParseAssignmentArgs(args)
	if err != nil {
		return nil, err
	}
	return append(request, fromArgs...), nil
}

func resolvePassword(cfg *config.Config, stderr io.Writer) (string, error) {
	if cfg.Password != "" {
		return cfg.Password, nil
	}
	if ui.IsTerminal(os.Stdin) {
		return ui.ReadPassword("Password for "+cfg.Router.URL+": ", os.Stdin, stderr)
	}
	return "", fmt.Errorf("no password given (use --password or %s)", config.EnvPassword)
}

func runRoot(cmd *cobra.Command, opts *rootOptions, args []string) error {
	if opts.format != formatTable && opts.format != formatJSON {
		return fmt.Errorf("unknown format %q (use %s or %s)", opts.format, formatTable, formatJSON)
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	request, err := buildRequest(cfg, opts.preset, args)
	if err != nil {
		return err
	}

	if !opts.listDevices && !opts.listProfiles && len(request) == 0 {
		return cmd.Help()
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	password, err := resolvePassword(cfg, stderr)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	session, err := connect(ctx, fritzbox.Options{
		URL:      cfg.Router.URL,
		Username: cfg.Router.Username,
		Password: password,
		Timeout:  cfg.RequestTimeout(),
	}, stderr)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(context.Background()); err != nil {
			logging.Debug("Logout failed", zap.Error(err))
		}
	}()

	printer := ui.NewPrinter(stderr)
	printer.PrintWarnings("Some device rows could not be matched", diagnosticLines(session.Diagnostics()))

	if opts.listDevices {
		if err := printListing(stdout, opts.format, session.Devices(), fritzbox.FormatDevices(session.Devices())); err != nil {
			return err
		}
	}
	if opts.listProfiles {
		if err := printListing(stdout, opts.format, session.Profiles(), fritzbox.FormatProfiles(session.Profiles())); err != nil {
			return err
		}
	}

	if len(request) == 0 {
		return nil
	}

	if opts.dryRun {
		cs := session.PlanProfiles(request)
		printer.PrintWarnings("Some requested changes will be skipped", diagnosticLines(cs.Diagnostics))
		return printListing(stdout, opts.format, cs.Fields, fritzbox.FormatChangeSet(cs))
	}

	result, err := session.SetProfiles(ctx, request)
	if err != nil {
		return err
	}
	printer.PrintWarnings("Some requested changes were skipped", diagnosticLines(result.Diagnostics()))

	if result.Submitted && opts.verify {
		check, err := session.Verify(ctx, result.ChangeSet, fritzbox.DefaultVerifyDelay)
		if err != nil {
			return fmt.Errorf("verifying profiles: %w", err)
		}
		if !check.Success {
			printer.PrintWarnings("Router did not confirm all changes", check.Mismatches)
			return fmt.Errorf("verification failed: %d change(s) not applied", len(check.Mismatches))
		}
	}

	if result.Submitted {
		summary := ui.NewSuccessResult("Profiles updated").
			AddDetail("Router", session.URL()).
			AddDetail("Changes", strconv.Itoa(len(result.ChangeSet.Fields)))
		for _, c := range result.ChangeSet.Effective() {
			summary.AddItem(fmt.Sprintf("%s → %s", c.Device.Name, c.Profile.Name))
		}
		printer.PrintResult(summary)
	}
	return nil
}

// connect logs in behind a spinner when stderr is a terminal
func connect(ctx context.Context, opts fritzbox.Options, stderr io.Writer) (*fritzbox.Session, error) {
	if f, ok := stderr.(*os.File); !ok || !ui.IsTerminal(f) {
		return fritzbox.Connect(ctx, opts)
	}

	var session *fritzbox.Session
	err := ui.RunWithSpinner(ctx, "Connecting to "+opts.URL+"...", stderr, func(ctx context.Context) error {
		var err error
		session, err = fritzbox.Connect(ctx, opts)
		return err
	})
	if err != nil && session != nil {
		// login completed after the interrupt; drop the SID
		if logoutErr := session.Close(context.Background()); logoutErr != nil {
			logging.Debug("Logout after interrupt failed", zap.Error(logoutErr))
		}
		return nil, err
	}
	return session, err
}

func printListing(w io.Writer, format string, v any, table string) error {
	if format == formatJSON {
		out, err := fritzbox.FormatJSON(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}
	_, err := fmt.Fprint(w, table)
	return err
}

func diagnosticLines(diags []fritzbox.Diagnostic) []string {
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = d.String()
	}
	return lines
}
