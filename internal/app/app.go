package app

import (
	"log/slog"

	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployContract  *usecase.DeployContract
	PublishArtifact *usecase.PublishArtifact
	MintToken       *usecase.MintToken
	GeneratePreview *usecase.GeneratePreview
	ListAccounts    *usecase.ListAccounts
	ListNetworks    *usecase.ListNetworks
	DevNode         *usecase.DevNode
	InitProject     *usecase.InitProject
	LocalSettings   *usecase.LocalSettings

	// Adapters (needed for special cases like log streaming)
	AnvilManager usecase.AnvilManager
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployContract *usecase.DeployContract,
	publishArtifact *usecase.PublishArtifact,
	mintToken *usecase.MintToken,
	generatePreview *usecase.GeneratePreview,
	listAccounts *usecase.ListAccounts,
	listNetworks *usecase.ListNetworks,
	devNode *usecase.DevNode,
	initProject *usecase.InitProject,
	localSettings *usecase.LocalSettings,
	anvilManager usecase.AnvilManager,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		DeployContract:  deployContract,
		PublishArtifact: publishArtifact,
		MintToken:       mintToken,
		GeneratePreview: generatePreview,
		ListAccounts:    listAccounts,
		ListNetworks:    listNetworks,
		DevNode:         devNode,
		InitProject:     initProject,
		LocalSettings:   localSettings,
		AnvilManager:    anvilManager,
	}, nil
}
