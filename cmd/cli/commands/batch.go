package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carebridge/evv-backend-go/pkg/evvclient"
	"github.com/spf13/cobra"
)

// BatchCmd creates the batch command
func BatchCmd(app *AppContext) *cobra.Command {
	var rawEntries []string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Record several visit events in one optimistic batch",
		Long: `Each --entry takes the form shiftID:TYPE:latitude:longitude,
where TYPE is START or END. All entries are dispatched concurrently and
the whole batch rolls back if any of them fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make([]evvclient.BatchEntry, 0, len(rawEntries))
			for _, raw := range rawEntries {
				parts := strings.Split(raw, ":")
				if len(parts) != 4 {
					return fmt.Errorf("invalid entry %q, want shiftID:TYPE:lat:lon", raw)
				}

				visitType := strings.ToUpper(parts[1])
				if visitType != "START" && visitType != "END" {
					return fmt.Errorf("invalid visit type %q in entry %q", parts[1], raw)
				}

				lat, err := strconv.ParseFloat(parts[2], 64)
				if err != nil {
					return fmt.Errorf("invalid latitude in entry %q", raw)
				}
				lon, err := strconv.ParseFloat(parts[3], 64)
				if err != nil {
					return fmt.Errorf("invalid longitude in entry %q", raw)
				}

				entries = append(entries, evvclient.BatchEntry{
					ShiftID:   parts[0],
					Type:      visitType,
					Latitude:  lat,
					Longitude: lon,
				})
			}

			if err := app.Feed.Batch(cmd.Context(), entries); err != nil {
				return fmt.Errorf("batch failed: %w", err)
			}

			fmt.Printf("Recorded %d visit events\n", len(entries))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&rawEntries, "entry", nil, "Visit entry shiftID:TYPE:lat:lon (repeatable)")
	cmd.MarkFlagRequired("entry")
	return cmd
}
