package main

import (
	"fmt"

	"eld-trip-planner/internal/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newLogsCmd() *cobra.Command {
	var (
		driver string
		svgDir string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Fetch a driver's persisted log sheets and print them by day",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			ctx := cmd.Context()

			if driver == "" {
				name, ok, err := a.identity().DriverName(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no driver name stored; pass --driver or run 'tripplanner driver set'")
				}
				driver = name
			}

			days, err := services.FetchDailyLogs(ctx, a.backend(), driver)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "driver: %s, %d day(s)\n", driver, len(days))
			if err := printDays(cmd.OutOrStdout(), days); err != nil {
				return err
			}

			if svgDir != "" {
				paths, err := writeSheets(svgDir, days)
				if err != nil {
					return err
				}
				a.log.Info("log sheets written", zap.Strings("paths", paths))
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&driver, "driver", "", "driver name (defaults to the stored name)")
	cmd.Flags().StringVar(&svgDir, "svg-dir", "", "write one SVG log sheet per day into this directory")
	return cmd
}
