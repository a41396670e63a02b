package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ShiftsCmd creates the shifts command
func ShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shifts",
		Short: "List the caregiver's upcoming shifts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Feed.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("failed to fetch shifts: %w", err)
			}

			shifts := app.Feed.Shifts()
			fmt.Printf("\nFound %d shifts:\n\n", len(shifts))
			for _, s := range shifts {
				clientName := s.ClientID
				if s.Client != nil {
					clientName = s.Client.Name
				}
				fmt.Printf("- %s  %s  %s  [%s]  visits: %d\n",
					s.ID,
					s.Date,
					clientName,
					s.Status,
					len(s.Visits),
				)
			}
			return nil
		},
	}
}
