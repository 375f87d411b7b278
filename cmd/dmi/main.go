package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/slashdevops/dmi"
	"github.com/slashdevops/dmi/internal/version"
)

// exit code for an operating system the library cannot probe at all;
// every other degraded outcome still prints a (possibly empty) mapping.
const exitUnsupported = 2

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, dmi.ErrUnsupportedPlatform) {
			os.Exit(exitUnsupported)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		noFallback bool
		jsonOutput bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           "dmi",
		Short:         "Print stable hardware identifiers for this machine",
		Long:          "dmi resolves hardware identifiers (system UUID, serial numbers, vendor\nstrings) without elevated privileges and prints the resulting mapping.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			log.SetLevel(level)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := dmi.GetInfo(cmd.Context(), !noFallback)
			if err != nil {
				log.Errorf("resolving hardware identifiers: %v", err)

				return err
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), info)
			}

			printText(cmd.OutOrStdout(), info)

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "log level (trace, debug, info, warning, error)")
	cmd.Flags().BoolVar(&noFallback, "no-fallback", false, "do not fall back to machine-id/hostname when DMI is unavailable")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output the mapping as JSON")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dmi version: %s\n", version.Version)
			if version.GitCommit != "" {
				fmt.Fprintf(out, "git commit: %s\n", version.GitCommit)
			}
			fmt.Fprintf(out, "go version: %s %s/%s\n", version.GoVersion, version.GoVersionOS, version.GoVersionArch)
		},
	}
}

func printText(out io.Writer, info dmi.Info) {
	keys := make([]string, 0, len(info))
	for key := range info {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(out, "%s=%s\n", key, info[key])
	}
}

func printJSON(out io.Writer, info dmi.Info) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(info)
}
