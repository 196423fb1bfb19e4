package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mintmuse/mintmuse-cli/internal/domain"
)

// NodeOp is a `mintmuse dev node` subcommand
type NodeOp string

const (
	NodeStart   NodeOp = "start"
	NodeStop    NodeOp = "stop"
	NodeRestart NodeOp = "restart"
	NodeStatus  NodeOp = "status"
	NodeLogs    NodeOp = "logs"
)

// NodeOps lists the operations in help order
func NodeOps() []NodeOp {
	return []NodeOp{NodeStart, NodeStop, NodeRestart, NodeStatus, NodeLogs}
}

// Launches reports whether op spawns a node and so accepts launch flags
func (op NodeOp) Launches() bool {
	return op == NodeStart || op == NodeRestart
}

// DevNodeParams selects the instance and, for start/restart, how to launch it
type DevNodeParams struct {
	Op      NodeOp
	Name    string
	Port    string
	ChainID string
	ForkURL string
}

// DevNodeResult is the outcome of one node operation
type DevNodeResult struct {
	Op       NodeOp
	Instance *domain.AnvilInstance
	Status   *domain.AnvilStatus // nil after stop
	Message  string
}

// DevNode manages the background anvil node behind the localhost network
type DevNode struct {
	nodes    AnvilManager
	progress ProgressSink
}

// NewDevNode creates a new DevNode use case
func NewDevNode(nodes AnvilManager, progress ProgressSink) *DevNode {
	return &DevNode{nodes: nodes, progress: progress}
}

// Execute runs params.Op against the named instance
func (uc *DevNode) Execute(ctx context.Context, params DevNodeParams) (*DevNodeResult, error) {
	instance, err := params.instance()
	if err != nil {
		return nil, err
	}
	result := &DevNodeResult{Op: params.Op, Instance: instance}

	switch params.Op {
	case NodeStatus, NodeLogs:
		result.Status, err = uc.nodes.GetStatus(ctx, instance)
		if err != nil {
			return nil, fmt.Errorf("failed to get status: %w", err)
		}
		return result, nil

	case NodeStop:
		stopped, err := uc.stopIfRunning(ctx, instance)
		if err != nil {
			return nil, err
		}
		result.Message = fmt.Sprintf("Anvil '%s' is not running", instance.Name)
		if stopped {
			result.Message = fmt.Sprintf("Anvil '%s' stopped", instance.Name)
		}
		return result, nil

	case NodeStart:
		uc.progress.Info(fmt.Sprintf("Starting anvil '%s' on port %s", instance.Name, instance.Port))
		if pid, running := uc.running(ctx, instance); running {
			return nil, fmt.Errorf("anvil '%s' is already running (PID %d), use `mintmuse dev node restart`", instance.Name, pid)
		}

	case NodeRestart:
		uc.progress.Info(fmt.Sprintf("Restarting anvil '%s' with a fresh chain", instance.Name))
		if _, err := uc.stopIfRunning(ctx, instance); err != nil {
			return nil, err
		}
	}

	if err := uc.nodes.Start(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to start anvil: %w", err)
	}
	result.Status, err = uc.nodes.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after %s: %w", params.Op, err)
	}
	result.Message = fmt.Sprintf("Anvil '%s' running with PID %d", instance.Name, result.Status.PID)
	return result, nil
}

func (uc *DevNode) running(ctx context.Context, instance *domain.AnvilInstance) (int, bool) {
	status, err := uc.nodes.GetStatus(ctx, instance)
	if err != nil || !status.Running {
		return 0, false
	}
	return status.PID, true
}

func (uc *DevNode) stopIfRunning(ctx context.Context, instance *domain.AnvilInstance) (bool, error) {
	if _, running := uc.running(ctx, instance); !running {
		return false, nil
	}
	if err := uc.nodes.Stop(ctx, instance); err != nil {
		return false, fmt.Errorf("failed to stop anvil: %w", err)
	}
	return true, nil
}

// instance validates the flags before anything touches the process table
func (p DevNodeParams) instance() (*domain.AnvilInstance, error) {
	switch p.Op {
	case NodeStart, NodeStop, NodeRestart, NodeStatus, NodeLogs:
	default:
		return nil, fmt.Errorf("unknown operation: %s", p.Op)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("instance name is required")
	}
	if port, err := strconv.Atoi(p.Port); err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid port %q", p.Port)
	}
	if p.Op.Launches() {
		if p.ChainID != "" {
			if _, err := strconv.ParseUint(p.ChainID, 10, 64); err != nil {
				return nil, fmt.Errorf("invalid chain id %q", p.ChainID)
			}
		}
		if p.ForkURL != "" {
			if u, err := url.Parse(p.ForkURL); err != nil || u.Host == "" {
				return nil, fmt.Errorf("invalid fork url %q", p.ForkURL)
			}
		}
	}

	return &domain.AnvilInstance{
		Name:    p.Name,
		Port:    p.Port,
		ChainID: p.ChainID,
		ForkURL: p.ForkURL,
	}, nil
}
