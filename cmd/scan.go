package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"handlescan/internal/config"
	"handlescan/internal/scanner"

	"github.com/go-faster/jx"
	"github.com/spf13/cobra"
)

// scanCommand constructs the 'scan' subcommand that scans identifiers once
// and prints one JSON object per identifier.
func scanCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <identifier>...",
		Short: "Scans identifiers across providers and prints the results as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			names, _ := cmd.Flags().GetStringSlice("providers")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			pretty, _ := cmd.Flags().GetBool("pretty")

			identifiers := make([]string, 0, len(args))
			for _, raw := range args {
				id, err := scanner.NormalizeIdentifier(raw)
				if err != nil {
					return fmt.Errorf("invalid identifier %q: %w", raw, err)
				}
				identifiers = append(identifiers, id)
			}

			options := scanner.NewOptions(cfg)
			options.Providers = config.FilterProviders(cfg.Scanner.Providers, names)
			engine, err := newEngine(cfg, options)
			if err != nil {
				return err
			}

			e := &jx.Encoder{}
			if pretty {
				e.SetIdent(2)
			}
			for _, id := range identifiers {
				res, err := engine.Scan(ctx, id, !noCache)

				e.Reset()
				res.Encode(e)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), e.String())

				if err != nil {
					return fmt.Errorf("could not scan %q: %w", id, err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringSlice("providers", nil, "Only probe these providers (comma separated, case-insensitive)")
	cmd.Flags().Bool("no-cache", false, "Always probe, even for repeated identifiers")
	cmd.Flags().Bool("pretty", false, "Indent JSON output")

	return cmd
}
