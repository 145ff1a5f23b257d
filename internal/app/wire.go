//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/gmonad/gmd-deploy/internal/adapters"
	"github.com/gmonad/gmd-deploy/internal/config"
	"github.com/gmonad/gmd-deploy/internal/logging"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployToken,
		usecase.NewVerifyDeployment,
		usecase.NewListNetworks,
		usecase.NewShowConfig,
		usecase.NewSelectNetwork,

		// App
		NewApp,
	)
	return nil, nil
}
