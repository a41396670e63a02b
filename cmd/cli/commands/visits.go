package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func parseCoordinates(args []string) (lat float64, lon float64, err error) {
	lat, err = strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q", args[1])
	}
	lon, err = strconv.ParseFloat(args[2], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q", args[2])
	}
	return lat, lon, nil
}

// StartVisitCmd creates the startVisit command
func StartVisitCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "startVisit <shiftID> <latitude> <longitude>",
		Short: "Record a geolocated check-in for a shift",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lon, err := parseCoordinates(args)
			if err != nil {
				return err
			}

			if err := app.Feed.StartVisit(cmd.Context(), args[0], lat, lon); err != nil {
				return fmt.Errorf("failed to start visit: %w", err)
			}

			fmt.Printf("Visit started for shift %s\n", args[0])
			return nil
		},
	}
}

// EndVisitCmd creates the endVisit command
func EndVisitCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "endVisit <shiftID> <latitude> <longitude>",
		Short: "Record a geolocated check-out for a shift",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lon, err := parseCoordinates(args)
			if err != nil {
				return err
			}

			if err := app.Feed.EndVisit(cmd.Context(), args[0], lat, lon); err != nil {
				return fmt.Errorf("failed to end visit: %w", err)
			}

			fmt.Printf("Visit ended for shift %s\n", args[0])
			return nil
		},
	}
}
