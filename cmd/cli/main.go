package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carebridge/evv-backend-go/cmd/cli/commands"
	"github.com/carebridge/evv-backend-go/pkg/evvclient"
)

var (
	serverURL string
	token     string
	app       *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "evv",
		Short: "EVV CLI - record and review geolocated caregiver visits",
		Long:  `A CLI for caregivers: list assigned shifts and record geolocated visit check-ins and check-outs, with offline queuing and automatic retry.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:3000", "EVV API base URL")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "Bearer token from a previous login")

	rootCmd.AddCommand(
		commands.LoginCmd(appContext()),
		commands.ShiftsCmd(appContext()),
		commands.StartVisitCmd(appContext()),
		commands.EndVisitCmd(appContext()),
		commands.BatchCmd(appContext()),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// appContext returns the shared context; commands capture the pointer and
// initApp fills it in before any RunE executes.
func appContext() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

func initApp() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client := evvclient.NewClient(serverURL,
		evvclient.WithLogger(logger),
		evvclient.WithOnSessionExpired(func() {
			fmt.Fprintln(os.Stderr, "Session expired, please log in again")
		}),
	)
	if token != "" {
		client.Session().Set(token, evvclient.User{})
	}

	ctx := appContext()
	ctx.Client = client
	ctx.Feed = evvclient.NewShiftFeed(client)
	ctx.Logger = logger
	return nil
}
