package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func nodeParams(op usecase.NodeOp) usecase.DevNodeParams {
	return usecase.DevNodeParams{Op: op, Name: "anvil0", Port: "8545"}
}

func TestDevNode_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("starts a stopped node", func(t *testing.T) {
		nodes := &MockAnvilManager{}
		nodes.On("GetStatus", mock.Anything, mock.Anything).Return(&domain.AnvilStatus{}, nil).Once()
		nodes.On("Start", mock.Anything, mock.MatchedBy(func(i *domain.AnvilInstance) bool {
			return i.Name == "anvil0" && i.Port == "8545" && i.ChainID == "31337"
		})).Return(nil)
		nodes.On("GetStatus", mock.Anything, mock.Anything).Return(&domain.AnvilStatus{Running: true, PID: 4242}, nil).Once()

		params := nodeParams(usecase.NodeStart)
		params.ChainID = "31337"
		progress := &MockProgressSink{}
		result, err := usecase.NewDevNode(nodes, progress).Execute(ctx, params)
		require.NoError(t, err)

		assert.Equal(t, usecase.NodeStart, result.Op)
		assert.Equal(t, 4242, result.Status.PID)
		assert.Equal(t, "Anvil 'anvil0' running with PID 4242", result.Message)
		assert.Len(t, progress.infos, 1)
		nodes.AssertExpectations(t)
	})

	t.Run("already running", func(t *testing.T) {
		nodes := &MockAnvilManager{}
		nodes.On("GetStatus", mock.Anything, mock.Anything).Return(&domain.AnvilStatus{Running: true, PID: 7}, nil)

		_, err := usecase.NewDevNode(nodes, &MockProgressSink{}).Execute(ctx, nodeParams(usecase.NodeStart))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already running (PID 7)")
		nodes.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
	})

	t.Run("start fails", func(t *testing.T) {
		nodes := &MockAnvilManager{}
		nodes.On("GetStatus", mock.Anything, mock.Anything).Return(&domain.AnvilStatus{}, nil)
		nodes.On("Start", mock.Anything, mock.Anything).Return(errors.New("anvil not found in PATH"))

		_, err := usecase.NewDevNode(nodes, &MockProgressSink{}).Execute(ctx, nodeParams(usecase.NodeStart))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "anvil not found")
	})
}

func TestDevNode_Stop(t *testing.T) {
	ctx := context.Background()

	t.Run("not running", func(t *testing.T) {
		nodes := &MockAnvilManager{}
		nodes.On("GetStatus", mock.Anything, mock.Anything).Return(&domain.AnvilStatus{}, nil)

		result, err := usecase.NewDevNode(nodes, &MockProgressSink{}).Execute(ctx, nodeParams(usecase.NodeStop))
		require.NoError(t, err)
		assert.Contains(t, result.Message, "not running")
		assert.Nil(t, result.Status)
		nodes.AssertNotCalled(t, "Stop", mock.Anything, mock.Anything)
	})

	t.Run("running", func(t *testing.T) {
		nodes := &MockAnvilManager{}
		nodes.On("GetStatus", mock.Anything, mock.Anything).Return(&domain.AnvilStatus{Running: true, PID: 9}, nil)
		nodes.On("Stop", mock.Anything, mock.Anything).Return(nil)

		result, err := usecase.NewDevNode(nodes, &MockProgressSink{}).Execute(ctx, nodeParams(usecase.NodeStop))
		require.NoError(t, err)
		assert.Equal(t, "Anvil 'anvil0' stopped", result.Message)
		nodes.AssertExpectations(t)
	})
}

func TestDevNode_Restart(t *testing.T) {
	ctx := context.Background()
	nodes := &MockAnvilManager{}
	nodes.On("GetStatus", mock.Anything, mock.Anything).Return(&domain.AnvilStatus{Running: true, PID: 1}, nil).Once()
	nodes.On("Stop", mock.Anything, mock.Anything).Return(nil).Once()
	nodes.On("Start", mock.Anything, mock.Anything).Return(nil).Once()
	nodes.On("GetStatus", mock.Anything, mock.Anything).Return(&domain.AnvilStatus{Running: true, PID: 2}, nil).Once()

	result, err := usecase.NewDevNode(nodes, &MockProgressSink{}).Execute(ctx, nodeParams(usecase.NodeRestart))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Status.PID)
	nodes.AssertExpectations(t)
}

func TestDevNode_Status(t *testing.T) {
	nodes := &MockAnvilManager{}
	nodes.On("GetStatus", mock.Anything, mock.Anything).Return(&domain.AnvilStatus{Running: true, RPCHealthy: true, ChainID: 31337}, nil)

	result, err := usecase.NewDevNode(nodes, &MockProgressSink{}).Execute(context.Background(), nodeParams(usecase.NodeStatus))
	require.NoError(t, err)
	assert.True(t, result.Status.RPCHealthy)
	assert.Equal(t, uint64(31337), result.Status.ChainID)
}

func TestDevNode_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params usecase.DevNodeParams
		want   string
	}{
		{"unknown operation", usecase.DevNodeParams{Op: "explode", Name: "anvil0", Port: "8545"}, "unknown operation"},
		{"missing name", usecase.DevNodeParams{Op: usecase.NodeStatus, Port: "8545"}, "name is required"},
		{"port not a number", usecase.DevNodeParams{Op: usecase.NodeStatus, Name: "anvil0", Port: "http"}, "invalid port"},
		{"port out of range", usecase.DevNodeParams{Op: usecase.NodeStart, Name: "anvil0", Port: "70000"}, "invalid port"},
		{"chain id", usecase.DevNodeParams{Op: usecase.NodeStart, Name: "anvil0", Port: "8545", ChainID: "mainnet"}, "invalid chain id"},
		{"fork url", usecase.DevNodeParams{Op: usecase.NodeRestart, Name: "anvil0", Port: "8545", ForkURL: "sepolia"}, "invalid fork url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := &MockAnvilManager{}
			_, err := usecase.NewDevNode(nodes, &MockProgressSink{}).Execute(context.Background(), tt.params)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			nodes.AssertNotCalled(t, "GetStatus", mock.Anything, mock.Anything)
		})
	}
}
