package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/fritz-profiles/internal/config"
	"github.com/muurk/fritz-profiles/internal/discovery"
	"github.com/muurk/fritz-profiles/internal/fritzbox"
	"github.com/muurk/fritz-profiles/internal/version"
)

func newDiscoverCmd() *cobra.Command {
	var (
		scanTimeout int
		format      string
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find FRITZ!Box routers on the local network",
		Long: `Find FRITZ!Box routers using mDNS/DNS-SD discovery.

Listens for HTTP service announcements whose instance or host name looks
like a FRITZ!Box and prints the base URL to pass to --url.`,
		Example: `  # Scan for 5 seconds (default)
  fritz-profiles discover

  # Longer scan for slow networks
  fritz-profiles discover --timeout 15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			out := cmd.OutOrStdout()

			if format == formatTable {
				fmt.Fprintf(cmd.ErrOrStderr(), "Scanning for routers (timeout: %ds)...\n\n", scanTimeout)
			}

			routers, err := discovery.ScanForRouters(cmd.Context(), time.Duration(scanTimeout)*time.Second)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if format == formatJSON {
				return printListing(out, format, routers, "")
			}

			if len(routers) == 0 {
				fmt.Fprintln(out, "No routers found.")
				fmt.Fprintln(out, "\nTroubleshooting:")
				fmt.Fprintln(out, "  - Check that you are connected to the router's network")
				fmt.Fprintln(out, "  - Multicast (UDP port 5353) may be blocked by a firewall")
				fmt.Fprintln(out, "  - Try increasing --timeout")
				fmt.Fprintf(out, "  - The default address is %s\n", fritzbox.DefaultURL)
				return nil
			}

			fmt.Fprintf(out, "Found %d router(s):\n\n", len(routers))
			for i, r := range routers {
				fmt.Fprintf(out, "%d. %s\n", i+1, r.Name)
				fmt.Fprintf(out, "   URL:      %s\n", r.BaseURL())
				fmt.Fprintf(out, "   Hostname: %s\n", r.Hostname)
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, "Use 'fritz-profiles --url <url> --list-devices' to connect")
			return nil
		},
	}

	cmd.Flags().IntVar(&scanTimeout, "timeout", int(discovery.DefaultScanTimeout/time.Second), "Scan timeout in seconds")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format (table, json)")

	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			path, err := configPath(opts.configPath)
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking config file: %w", err)
			}

			if err := config.Example().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying the file and environment
variables. The password is never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("validating config: %w", err)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func configPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.GetConfigPath()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fritz-profiles %s\n", version.Full())
		},
	}
}
