package main

import (
	"delivery-route-planner/internal/adapters/records"
	"delivery-route-planner/internal/domain"
	"delivery-route-planner/internal/links"
	"delivery-route-planner/internal/services"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var planFlags struct {
	metric      string
	out         string
	costPerKm   float64
	costPerHour float64
}

var planCmd = &cobra.Command{
	Use:   "plan FILE",
	Short: "Plan a route from an xlsx or csv stop list",
	Long: `
Reads the stop list, resolves each row (whitelist, manual coordinates, plus
code, address) and prints the visiting order. The first resolved row is the
start of the route.

Expected columns: Cliente, Latitud_Manual, Longitud_Manual, PlusCode, Direccion.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, err := domain.ParseMetric(planFlags.metric)
		if err != nil {
			return err
		}

		recs, err := readRecords(args[0])
		if err != nil {
			return err
		}

		a, err := loadApp()
		if err != nil {
			return err
		}

		var bar *progressbar.ProgressBar
		if isatty.IsTerminal(os.Stderr.Fd()) {
			bar = progressbar.NewOptions(len(recs),
				progressbar.OptionSetDescription("Resolving stops"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		plan, err := a.Planner.Plan(cmd.Context(), services.PlanRouteRequest{
			Records:     recs,
			Metric:      metric,
			CostPerKm:   planFlags.costPerKm,
			CostPerHour: planFlags.costPerHour,
			OnProgress: func(_ int, stop domain.ResolvedStop) {
				if bar != nil {
					bar.Describe(stop.Label)
					_ = bar.Add(1)
				}
			},
		})
		if bar != nil {
			_ = bar.Finish()
		}
		if errors.Is(err, domain.ErrInsufficientPoints) {
			return errors.New("fewer than two stops could be located, nothing to route")
		}
		if err != nil {
			return err
		}

		if err := printPlan(cmd.OutOrStdout(), plan); err != nil {
			return err
		}

		if planFlags.out != "" {
			if err := writeRoute(planFlags.out, plan); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "route written to %s\n", planFlags.out)
		}
		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&planFlags.metric, "metric", string(domain.MetricDuration), "matrix metric: duration or distance")
	planCmd.Flags().StringVarP(&planFlags.out, "out", "o", "", "write the ordered route to this csv file")
	planCmd.Flags().Float64Var(&planFlags.costPerKm, "cost-per-km", 0, "fuel cost per kilometre")
	planCmd.Flags().Float64Var(&planFlags.costPerHour, "cost-per-hour", 0, "driver cost per hour")
	rootCmd.AddCommand(planCmd)
}

func readRecords(path string) ([]domain.StopRecord, error) {
	format, err := records.FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return records.Read(f, format)
}

func writeRoute(path string, plan *domain.RoutePlan) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := records.WriteCSV(f, plan); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printPlan(w io.Writer, plan *domain.RoutePlan) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCLIENTE\tLAT\tLON\tMETODO")
	for i, s := range plan.Sequence.Stops {
		fmt.Fprintf(tw, "%d\t%s\t%.6f\t%.6f\t%s\n", i+1, s.Label, s.Coordinates.Lat, s.Coordinates.Lon, s.Tier)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	points := plan.Sequence.Points()
	km := plan.Metrics.TotalDistanceKm
	mode := "straight line"
	if plan.Sequence.UsedTrafficModel {
		mode = "road matrix"
	}

	fmt.Fprintln(w)
	if plan.Metrics.Available {
		fmt.Fprintf(w, "Distance: %.1f km  Duration: %.0f min  Ordering: %s\n", km, plan.Metrics.TotalDurationMin, mode)
	} else {
		km = services.StraightLineKm(points)
		fmt.Fprintf(w, "Distance: %.1f km (straight line, road metrics unavailable)  Ordering: %s\n", km, mode)
	}
	if plan.Cost != nil {
		fmt.Fprintf(w, "Cost: %.2f (fuel %.2f, driver %.2f)\n", plan.Cost.Total, plan.Cost.FuelCost, plan.Cost.DriverCost)
	}
	if len(plan.Unresolved) > 0 {
		fmt.Fprintf(w, "Not found: %v\n", plan.Unresolved)
	}

	mapsURL := links.GoogleMapsDirections(points)
	fmt.Fprintf(w, "\nGoogle Maps: %s\n", mapsURL)
	fmt.Fprintf(w, "WhatsApp:    %s\n", links.WhatsAppShare(links.RouteSummary(km, mapsURL)))
	return nil
}
