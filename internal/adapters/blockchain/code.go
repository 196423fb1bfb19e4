package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

const codeLookupTimeout = 10 * time.Second

// CodeReader reads runtime bytecode at the latest block
type CodeReader struct {
	client *Client
}

// NewCodeReader creates a CodeReader on the active network client
func NewCodeReader(client *Client) *CodeReader {
	return &CodeReader{client: client}
}

// CodeSize returns the number of runtime bytecode bytes stored at address.
// Zero means an externally owned account or nothing deployed.
func (r *CodeReader) CodeSize(ctx context.Context, address common.Address) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, codeLookupTimeout)
	defer cancel()

	code, err := r.client.CodeAt(ctx, address, nil)
	if err != nil {
		return 0, fmt.Errorf("eth_getCode %s: %w", address.Hex(), err)
	}
	return len(code), nil
}

var _ usecase.CodeReader = (*CodeReader)(nil)
