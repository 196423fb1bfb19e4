package blockchain

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
	"github.com/stretchr/testify/require"
)

const simulatedChainID = 1337

const testABI = `[{"type":"constructor","inputs":[{"name":"initialOwner","type":"address","internalType":"address"}],"stateMutability":"nonpayable"},{"type":"function","name":"mintNFT","inputs":[{"name":"recipient","type":"address","internalType":"address"},{"name":"tokenURI","type":"string","internalType":"string"}],"outputs":[{"name":"","type":"uint256","internalType":"uint256"}],"stateMutability":"nonpayable"},{"type":"event","name":"Transfer","inputs":[{"name":"from","type":"address","indexed":true,"internalType":"address"},{"name":"to","type":"address","indexed":true,"internalType":"address"},{"name":"tokenId","type":"uint256","indexed":true,"internalType":"uint256"}],"anonymous":false}]`

// init code returning a single STOP byte as runtime code
const stopBytecode = "0x6001600c60003960016000f300"

// init code that always reverts
const revertBytecode = "0x60006000fd"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func testDescription(t *testing.T, bytecode string) *models.ContractDescription {
	t.Helper()
	raw := fmt.Sprintf(`{"contractName":"MintMuseNFT","sourceName":"contracts/MintMuseNFT.sol","abi":%s,"bytecode":%q}`, testABI, bytecode)
	var artifact models.BuildArtifact
	require.NoError(t, json.Unmarshal([]byte(raw), &artifact))
	desc, err := models.NewContractDescription("artifacts/contracts/MintMuseNFT.sol/MintMuseNFT.json", &artifact)
	require.NoError(t, err)
	return desc
}

// fakeNode emulates a node holding unlocked accounts on top of the simulated chain
type fakeNode struct {
	backend simulated.Client
	keys    map[common.Address]*ecdsa.PrivateKey
	order   []common.Address
}

func (n *fakeNode) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	switch method {
	case "eth_accounts":
		*(result.(*[]common.Address)) = append([]common.Address(nil), n.order...)
		return nil
	case "eth_sendTransaction":
		req := args[0].(map[string]any)
		from := req["from"].(common.Address)
		key, ok := n.keys[from]
		if !ok {
			return fmt.Errorf("unknown account %s", from.Hex())
		}
		data := req["data"].(hexutil.Bytes)
		var to *common.Address
		if v, ok := req["to"]; ok {
			addr := v.(common.Address)
			to = &addr
		}

		nonce, err := n.backend.PendingNonceAt(ctx, from)
		if err != nil {
			return err
		}
		gasPrice, err := n.backend.SuggestGasPrice(ctx)
		if err != nil {
			return err
		}
		gas, err := n.backend.EstimateGas(ctx, ethereum.CallMsg{From: from, To: to, Data: data})
		if err != nil {
			return err
		}
		tx := types.NewTx(&types.LegacyTx{Nonce: nonce, To: to, Gas: gas, GasPrice: gasPrice, Data: data})
		signed, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(simulatedChainID)), key)
		if err != nil {
			return err
		}
		if err := n.backend.SendTransaction(ctx, signed); err != nil {
			return err
		}
		*(result.(*common.Hash)) = signed.Hash()
		return nil
	default:
		return fmt.Errorf("method %s not supported", method)
	}
}

type testChain struct {
	sim       *simulated.Backend
	client    *Client
	key       *ecdsa.PrivateKey
	keySigner *models.Signer
	node      *fakeNode
}

// anvil's first well-known development key
const devKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func fixedKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.HexToECDSA(devKeyHex)
	require.NoError(t, err)
	return key
}

// newTestChain funds one random key account and nodeAccounts node-held accounts
func newTestChain(t *testing.T, nodeAccounts int) *testChain {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return newTestChainWithKey(t, key, nodeAccounts)
}

func newTestChainWithKey(t *testing.T, key *ecdsa.PrivateKey, nodeAccounts int) *testChain {
	t.Helper()
	funds := new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))

	alloc := types.GenesisAlloc{crypto.PubkeyToAddress(key.PublicKey): {Balance: funds}}

	node := &fakeNode{keys: make(map[common.Address]*ecdsa.PrivateKey)}
	for i := 0; i < nodeAccounts; i++ {
		nodeKey, err := crypto.GenerateKey()
		require.NoError(t, err)
		addr := crypto.PubkeyToAddress(nodeKey.PublicKey)
		node.keys[addr] = nodeKey
		node.order = append(node.order, addr)
		alloc[addr] = types.Account{Balance: funds}
	}

	sim := simulated.NewBackend(alloc)
	t.Cleanup(func() { _ = sim.Close() })
	node.backend = sim.Client()

	return &testChain{
		sim:    sim,
		client: NewClientWithBackend(sim.Client(), node, simulatedChainID),
		key:    key,
		keySigner: &models.Signer{
			Name:       "deployer",
			Address:    crypto.PubkeyToAddress(key.PublicKey),
			Source:     models.SignerSourceKey,
			PrivateKey: key,
		},
		node: node,
	}
}
