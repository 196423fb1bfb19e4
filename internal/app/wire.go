//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/mintmuse/mintmuse-cli/internal/adapters"
	"github.com/mintmuse/mintmuse-cli/internal/config"
	"github.com/mintmuse/mintmuse-cli/internal/logging"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewPublishArtifact,
		usecase.NewMintToken,
		usecase.NewGeneratePreview,
		usecase.NewListAccounts,
		usecase.NewListNetworks,
		usecase.NewDevNode,
		usecase.NewInitProject,
		usecase.NewLocalSettings,

		// App
		NewApp,
	)
	return nil, nil, nil
}
