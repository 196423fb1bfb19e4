package usecase

import (
	"context"
)

// ListAccountsResult contains resolvable accounts in resolution order
type ListAccountsResult struct {
	Accounts []AccountInfo
}

// ListAccounts lists the accounts a deployment could be signed with
type ListAccounts struct {
	signers  SignerResolver
	balances BalanceReader
}

// NewListAccounts creates a new ListAccounts use case
func NewListAccounts(signers SignerResolver, balances BalanceReader) *ListAccounts {
	return &ListAccounts{
		signers:  signers,
		balances: balances,
	}
}

// Run lists signers with their balances. The first entry is the one
// deploy would use.
func (uc *ListAccounts) Run(ctx context.Context) (*ListAccountsResult, error) {
	signers, err := uc.signers.ListSigners(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]AccountInfo, 0, len(signers))
	for _, signer := range signers {
		info := AccountInfo{Signer: signer}
		if uc.balances != nil {
			info.Balance, info.Error = uc.balances.BalanceOf(ctx, signer.Address)
		}
		accounts = append(accounts, info)
	}

	return &ListAccountsResult{Accounts: accounts}, nil
}
