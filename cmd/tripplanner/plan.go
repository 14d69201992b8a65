package main

import (
	"context"
	"fmt"

	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"
	"eld-trip-planner/internal/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPlanCmd() *cobra.Command {
	var (
		current, pickup, dropoff string
		cycleHours               float64
		driver                   string
		pick                     int
		svgDir                   string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Resolve three locations, submit a trip and print its daily logs",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			ctx := cmd.Context()
			geo := a.geocoder()

			opts := []services.ResolverOption{
				services.WithDebounce(a.cfg.SuggestDebounce),
				services.WithMinChars(a.cfg.SuggestMinChars),
				services.WithLogger(a.log),
			}

			var form services.TripForm
			for _, f := range []struct {
				text string
				dst  *domain.LocationField
			}{
				{current, &form.Current},
				{pickup, &form.Pickup},
				{dropoff, &form.Dropoff},
			} {
				field, err := resolveField(ctx, geo, f.text, pick, opts...)
				if err != nil {
					return err
				}
				*f.dst = field
				fmt.Fprintf(cmd.OutOrStdout(), "resolved %q -> %s\n", f.text, field.DisplayName)
			}
			form.CycleHoursUsed = cycleHours

			if driver == "" {
				name, _, err := a.identity().DriverName(ctx)
				if err != nil {
					return err
				}
				driver = name
			}

			planner := services.NewTripPlanner(a.backend(), services.WithPlannerLogger(a.log))
			res, err := planner.Submit(ctx, form, driver)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(out, res)
			if err := printDays(out, res.DailyLogs); err != nil {
				return err
			}

			if svgDir != "" {
				paths, err := writeSheets(svgDir, res.DailyLogs)
				if err != nil {
					return err
				}
				a.log.Info("log sheets written", zap.Strings("paths", paths))
			}
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&current, "current", "", "current location (free text)")
	f.StringVar(&pickup, "pickup", "", "pickup location (free text)")
	f.StringVar(&dropoff, "dropoff", "", "dropoff location (free text)")
	f.Float64Var(&cycleHours, "cycle-hours", 0, "hours already used in the 70-hour cycle")
	f.StringVar(&driver, "driver", "", "driver name (defaults to the stored name)")
	f.IntVar(&pick, "pick", 0, "index of the suggestion to select for each location")
	f.StringVar(&svgDir, "svg-dir", "", "write one SVG log sheet per day into this directory")
	for _, name := range []string{"current", "pickup", "dropoff", "cycle-hours"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// resolveField drives a Resolver the way a typing user would: set the text,
// wait for the debounced lookup to settle, then select suggestion pick.
func resolveField(ctx context.Context, geo ports.Geocoder, text string, pick int, opts ...services.ResolverOption) (domain.LocationField, error) {
	// SetText, the lookup and Select each notify once.
	changes := make(chan services.ResolverState, 4)
	opts = append(opts, services.WithOnChange(func(st services.ResolverState) { changes <- st }))

	r := services.NewResolver(geo, opts...)
	defer r.Close()

	r.SetText(text)

	for {
		select {
		case <-ctx.Done():
			return domain.LocationField{}, ctx.Err()
		case st := <-changes:
			if st.Pending {
				continue
			}
			if pick < 0 || pick >= len(st.Suggestions) {
				return domain.LocationField{}, fmt.Errorf("resolve %q: %w: %d suggestions, wanted index %d",
					text, domain.ErrNotFound, len(st.Suggestions), pick)
			}
			r.Select(st.Suggestions[pick])
			return r.State().Field, nil
		}
	}
}
