package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/config"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListAccounts(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps resolution order", func(t *testing.T) {
		signers := &MockSignerResolver{}
		balances := &MockBalanceReader{}
		other := &models.Signer{Address: ownerAddress, Source: models.SignerSourceNode}

		signers.On("ListSigners", mock.Anything).Return([]*models.Signer{testSigner(), other}, nil)
		balances.On("BalanceOf", mock.Anything, deployerAddress).Return("10000", nil)
		balances.On("BalanceOf", mock.Anything, ownerAddress).Return("", errors.New("rpc down"))

		result, err := usecase.NewListAccounts(signers, balances).Run(ctx)
		require.NoError(t, err)
		require.Len(t, result.Accounts, 2)

		assert.Equal(t, deployerAddress, result.Accounts[0].Signer.Address)
		assert.Equal(t, "10000", result.Accounts[0].Balance)
		assert.NoError(t, result.Accounts[0].Error)
		assert.Equal(t, ownerAddress, result.Accounts[1].Signer.Address)
		assert.Error(t, result.Accounts[1].Error)
		balances.AssertExpectations(t)
	})

	t.Run("no signers", func(t *testing.T) {
		signers := &MockSignerResolver{}
		signers.On("ListSigners", mock.Anything).Return(nil, domain.ErrNoSignerAvailable)

		_, err := usecase.NewListAccounts(signers, &MockBalanceReader{}).Run(ctx)
		assert.ErrorIs(t, err, domain.ErrNoSignerAvailable)
	})

	t.Run("without balances", func(t *testing.T) {
		signers := &MockSignerResolver{}
		signers.On("ListSigners", mock.Anything).Return([]*models.Signer{testSigner()}, nil)

		result, err := usecase.NewListAccounts(signers, nil).Run(ctx)
		require.NoError(t, err)
		assert.Empty(t, result.Accounts[0].Balance)
	})
}

func TestListNetworks(t *testing.T) {
	ctx := context.Background()
	resolver := &MockNetworkResolver{}
	resolver.On("GetNetworks", mock.Anything).Return([]string{"localhost", "sepolia", "broken"})
	resolver.On("ResolveNetwork", mock.Anything, "localhost").Return(localNetwork(), nil)
	resolver.On("ResolveNetwork", mock.Anything, "sepolia").Return(sepoliaNetwork(), nil)
	resolver.On("ResolveNetwork", mock.Anything, "broken").Return(nil, errors.New("SEPOLIA_RPC_URL is not set"))

	cfg := &config.RuntimeConfig{Network: sepoliaNetwork()}
	result, err := usecase.NewListNetworks(cfg, resolver).Run(ctx)
	require.NoError(t, err)
	require.Len(t, result.Networks, 3)

	assert.Equal(t, uint64(31337), result.Networks[0].ChainID)
	assert.False(t, result.Networks[0].Current)

	assert.True(t, result.Networks[1].Current)
	assert.Equal(t, "https://sepolia.etherscan.io", result.Networks[1].Explorer)
	assert.Equal(t, "https://rpc.sepolia.org", result.Networks[1].RPCURL)

	assert.Equal(t, "broken", result.Networks[2].Name)
	assert.Error(t, result.Networks[2].Error)
	assert.Zero(t, result.Networks[2].ChainID)
	resolver.AssertExpectations(t)
}
