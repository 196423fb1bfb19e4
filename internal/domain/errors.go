package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNoSignerAvailable is returned when the configured network exposes no accounts
	ErrNoSignerAvailable = errors.New("no signer available")

	// ErrUnknownContract is returned when no compiled artifact matches a contract name
	ErrUnknownContract = errors.New("unknown contract")

	// ErrHandleNotConfirmed is returned when a deployment handle is read before confirmation
	ErrHandleNotConfirmed = errors.New("deployment not confirmed")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidConfirmationStrategy is returned for unrecognized confirmation strategies
	ErrInvalidConfirmationStrategy = errors.New("invalid confirmation strategy")

	// ErrCancelled is returned when the operator declines a confirmation prompt
	ErrCancelled = errors.New("cancelled by user")

	// ErrEmptyPrompt is returned when a preview is requested without a prompt
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")
)

// UnknownContractError carries the requested name and close matches from the build output.
type UnknownContractError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownContractError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown contract %q: no compiled artifact with that name", e.Name)
	}
	return fmt.Sprintf("unknown contract %q, did you mean: %s", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e *UnknownContractError) Unwrap() error {
	return ErrUnknownContract
}

// DeploymentFailedError wraps the transaction error behind a rejected,
// reverted or timed out deployment.
type DeploymentFailedError struct {
	TxHash string // empty when the transaction was never accepted
	Err    error
}

func (e *DeploymentFailedError) Error() string {
	if e.TxHash == "" {
		return fmt.Sprintf("deployment failed: %v", e.Err)
	}
	return fmt.Sprintf("deployment failed (tx %s): %v", e.TxHash, e.Err)
}

func (e *DeploymentFailedError) Unwrap() error {
	return e.Err
}

// ArtifactWriteFailedError wraps a filesystem error hit while publishing an artifact.
type ArtifactWriteFailedError struct {
	Path string
	Err  error
}

func (e *ArtifactWriteFailedError) Error() string {
	return fmt.Sprintf("failed to write artifact %s: %v", e.Path, e.Err)
}

func (e *ArtifactWriteFailedError) Unwrap() error {
	return e.Err
}

// IsDeploymentFailed reports whether err is (or wraps) a DeploymentFailedError.
func IsDeploymentFailed(err error) bool {
	var target *DeploymentFailedError
	return errors.As(err, &target)
}

// IsArtifactWriteFailed reports whether err is (or wraps) an ArtifactWriteFailedError.
func IsArtifactWriteFailed(err error) bool {
	var target *ArtifactWriteFailedError
	return errors.As(err, &target)
}
