package render

import (
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

type Renderer[T any] interface {
	Render(result T) error
}

var (
	_ Renderer[*usecase.DeployContractResult]  = (*DeployRenderer)(nil)
	_ Renderer[*models.MintResult]             = (*MintRenderer)(nil)
	_ Renderer[*usecase.GeneratePreviewResult] = (*PreviewRenderer)(nil)
	_ Renderer[*usecase.ListAccountsResult]    = (*AccountsRenderer)(nil)
	_ Renderer[*usecase.DevNodeResult]         = (*NodeRenderer)(nil)
	_ Renderer[*usecase.InitProjectResult]     = (*InitRenderer)(nil)
)
