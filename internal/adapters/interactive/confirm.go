package interactive

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// ConfirmerAdapter asks yes/no questions on the terminal
type ConfirmerAdapter struct {
	config *config.RuntimeConfig
	run    func(prompt *promptui.Prompt) (string, error)
}

// NewConfirmerAdapter creates a new confirmer adapter
func NewConfirmerAdapter(cfg *config.RuntimeConfig) *ConfirmerAdapter {
	return &ConfirmerAdapter{
		config: cfg,
		run:    func(p *promptui.Prompt) (string, error) { return p.Run() },
	}
}

// Confirm returns true when the operator answers yes. In non-interactive
// mode nothing is asked and the answer is yes.
func (c *ConfirmerAdapter) Confirm(ctx context.Context, message string) (bool, error) {
	if c.config.NonInteractive {
		return true, nil
	}

	prompt := &promptui.Prompt{
		Label:     message,
		IsConfirm: true,
	}

	_, err := c.run(prompt)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return false, domain.ErrCancelled
	default:
		return false, fmt.Errorf("prompt failed: %w", err)
	}
}

// Ensure the adapter implements the interface
var _ usecase.Confirmer = (*ConfirmerAdapter)(nil)
