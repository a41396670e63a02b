package commands

import (
	"github.com/carebridge/evv-backend-go/pkg/evvclient"
	"go.uber.org/zap"
)

// AppContext holds the dependencies shared by all commands.
type AppContext struct {
	Client *evvclient.Client
	Feed   *evvclient.ShiftFeed
	Logger *zap.Logger
}
