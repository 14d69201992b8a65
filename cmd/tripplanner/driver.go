package main

import (
	"fmt"
	"strings"

	"eld-trip-planner/internal/services"

	"github.com/spf13/cobra"
)

func newDriverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driver",
		Short: "Show or change the locally stored driver name",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:  "show",
			Args: cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
				name, ok, err := a.identity().DriverName(cmd.Context())
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "no driver name stored")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
				return nil
			}),
		},
		&cobra.Command{
			Use:  "set NAME",
			Args: cobra.MinimumNArgs(1),
			RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
				return a.identity().SetDriverName(cmd.Context(), strings.Join(args, " "))
			}),
		},
		&cobra.Command{
			Use:   "guest",
			Short: "Store a generated guest name",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
				name := services.GuestName(nil)
				if err := a.identity().SetDriverName(cmd.Context(), name); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
				return nil
			}),
		},
		&cobra.Command{
			Use:  "clear",
			Args: cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
				return a.identity().ClearDriverName(cmd.Context())
			}),
		},
	)

	return cmd
}
