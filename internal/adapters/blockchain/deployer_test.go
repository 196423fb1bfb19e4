package blockchain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deployWith(t *testing.T, chain *testChain, signer *models.Signer, strategy config.ConfirmationStrategy) *models.DeployedContract {
	t.Helper()
	ctx := context.Background()
	deployer := NewDeployer(chain.client, testLogger())

	factory, err := models.NewContractFactory(testDescription(t, stopBytecode), signer)
	require.NoError(t, err)

	handle, err := deployer.Submit(ctx, models.DeploymentRequest{
		Factory:         factory,
		ConstructorArgs: []any{signer.Address},
	})
	require.NoError(t, err)
	assert.Equal(t, models.DeploymentPending, handle.Status())
	_, err = handle.Address()
	assert.ErrorIs(t, err, domain.ErrHandleNotConfirmed)

	chain.sim.Commit()

	require.NoError(t, deployer.AwaitConfirmation(ctx, handle, strategy))
	return handle
}

func TestDeployer_Strategies(t *testing.T) {
	for _, strategy := range []config.ConfirmationStrategy{config.ConfirmationLegacy, config.ConfirmationExplicit} {
		t.Run(string(strategy), func(t *testing.T) {
			chain := newTestChain(t, 0)
			handle := deployWith(t, chain, chain.keySigner, strategy)

			address, err := handle.Address()
			require.NoError(t, err)
			assert.True(t, handle.IsConfirmed())
			assert.NotZero(t, handle.BlockNumber())
			assert.NotZero(t, handle.GasUsed())

			receipt, err := chain.client.TransactionReceipt(context.Background(), handle.TxHash)
			require.NoError(t, err)
			assert.Equal(t, receipt.ContractAddress, address)

			code, err := chain.client.CodeAt(context.Background(), address, nil)
			require.NoError(t, err)
			assert.NotEmpty(t, code)
		})
	}
}

func TestDeployer_StrategiesAgreeOnArtifact(t *testing.T) {
	artifacts := make(map[config.ConfirmationStrategy][]byte)
	for _, strategy := range []config.ConfirmationStrategy{config.ConfirmationLegacy, config.ConfirmationExplicit} {
		// Same key and nonce on a fresh chain yields the same address
		chain := newTestChainWithKey(t, fixedKey(t), 0)

		handle := deployWith(t, chain, chain.keySigner, strategy)
		artifact, err := models.SerializeArtifact(handle)
		require.NoError(t, err)
		data, err := artifact.MarshalIndented()
		require.NoError(t, err)
		artifacts[strategy] = data
	}
	assert.Equal(t, string(artifacts[config.ConfirmationLegacy]), string(artifacts[config.ConfirmationExplicit]))
}

func TestDeployer_NodeSigner(t *testing.T) {
	chain := newTestChain(t, 1)
	signer := &models.Signer{Address: chain.node.order[0], Source: models.SignerSourceNode}

	handle := deployWith(t, chain, signer, config.ConfirmationExplicit)
	assert.Equal(t, signer.Address, handle.Deployer)

	address, err := handle.Address()
	require.NoError(t, err)
	assert.NotEqual(t, common.Address{}, address)
}

func TestDeployer_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("reverting constructor is rejected", func(t *testing.T) {
		chain := newTestChain(t, 0)
		deployer := NewDeployer(chain.client, testLogger())
		factory, err := models.NewContractFactory(testDescription(t, revertBytecode), chain.keySigner)
		require.NoError(t, err)

		_, err = deployer.Submit(ctx, models.DeploymentRequest{
			Factory:         factory,
			ConstructorArgs: []any{chain.keySigner.Address},
		})
		require.Error(t, err)
		assert.True(t, domain.IsDeploymentFailed(err))
	})

	t.Run("unfunded signer", func(t *testing.T) {
		chain := newTestChain(t, 0)
		deployer := NewDeployer(chain.client, testLogger())
		key := fixedKey(t)
		poor := &models.Signer{Address: crypto.PubkeyToAddress(key.PublicKey), Source: models.SignerSourceKey, PrivateKey: key}
		factory, err := models.NewContractFactory(testDescription(t, stopBytecode), poor)
		require.NoError(t, err)

		_, err = deployer.Submit(ctx, models.DeploymentRequest{Factory: factory, ConstructorArgs: []any{poor.Address}})
		require.Error(t, err)
		assert.True(t, domain.IsDeploymentFailed(err))
	})

	t.Run("configured chain ID differs from the node", func(t *testing.T) {
		chain := newTestChain(t, 0)
		deployer := NewDeployer(NewClientWithBackend(chain.sim.Client(), chain.node, 31337), testLogger())
		factory, err := models.NewContractFactory(testDescription(t, stopBytecode), chain.keySigner)
		require.NoError(t, err)

		_, err = deployer.Submit(ctx, models.DeploymentRequest{Factory: factory, ConstructorArgs: []any{chain.keySigner.Address}})
		require.Error(t, err)
		assert.True(t, domain.IsDeploymentFailed(err))
		assert.Contains(t, err.Error(), "node serves chain ID 1337")
		assert.Contains(t, err.Error(), "configured with chain ID 31337")
		assert.NotContains(t, err.Error(), "invalid chain id for signer")

		pending, err := chain.sim.Client().PendingNonceAt(ctx, chain.keySigner.Address)
		require.NoError(t, err)
		assert.Zero(t, pending)
	})

	t.Run("wrong constructor arguments", func(t *testing.T) {
		chain := newTestChain(t, 0)
		deployer := NewDeployer(chain.client, testLogger())
		factory, err := models.NewContractFactory(testDescription(t, stopBytecode), chain.keySigner)
		require.NoError(t, err)

		_, err = deployer.Submit(ctx, models.DeploymentRequest{Factory: factory})
		require.Error(t, err)
		assert.False(t, domain.IsDeploymentFailed(err))
	})

	t.Run("confirmation times out", func(t *testing.T) {
		chain := newTestChain(t, 0)
		deployer := NewDeployer(chain.client, testLogger())
		factory, err := models.NewContractFactory(testDescription(t, stopBytecode), chain.keySigner)
		require.NoError(t, err)

		handle, err := deployer.Submit(ctx, models.DeploymentRequest{Factory: factory, ConstructorArgs: []any{chain.keySigner.Address}})
		require.NoError(t, err)

		// Never mined
		timeout, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
		defer cancel()
		err = deployer.AwaitConfirmation(timeout, handle, config.ConfirmationLegacy)
		require.Error(t, err)
		assert.True(t, domain.IsDeploymentFailed(err))
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.False(t, handle.IsConfirmed())
	})

	t.Run("unknown strategy", func(t *testing.T) {
		chain := newTestChain(t, 0)
		deployer := NewDeployer(chain.client, testLogger())
		factory, err := models.NewContractFactory(testDescription(t, stopBytecode), chain.keySigner)
		require.NoError(t, err)
		handle, err := deployer.Submit(ctx, models.DeploymentRequest{Factory: factory, ConstructorArgs: []any{chain.keySigner.Address}})
		require.NoError(t, err)

		err = deployer.AwaitConfirmation(ctx, handle, config.ConfirmationStrategy("eventually"))
		assert.ErrorIs(t, err, domain.ErrInvalidConfirmationStrategy)
	})
}
