// Package deploy provides chain deployment of the agreement contract suite.
package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the agreement contract suite deployment.
type Blockchain interface {
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by
	// its address. GetContractStateByHash returns error with 'Unknown
	// contract' substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Prm groups all parameters of the agreement contract suite deployment
// procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	ReputationContract CommonDeployPrm
	AgreementContract  CommonDeployPrm
	EscrowContract     CommonDeployPrm
}

// Deploy deploys the agreement contract suite to the Neo network represented
// by given Prm.Blockchain.
//
// The suite contracts reference each other, so their addresses are computed
// up front from the deployer account and contract artifacts, and each
// contract receives the addresses of its peers as deployment data:
//  1. Reputation gets the Agreement and Escrow addresses
//  2. Agreement gets the Reputation address
//  3. Escrow gets the Agreement and Reputation addresses
//
// Deploy is idempotent: contracts already present on the chain are left
// untouched. Deployment progress is logged in detail.
func Deploy(ctx context.Context, prm Prm) error {
	// wrap the parent context into the context of the current function so that
	// transaction wait routines do not leak
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	localActor, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return fmt.Errorf("init transaction sender from local account: %w", err)
	}

	deployer := prm.LocalAccount.ScriptHash()

	reputationAddress := state.CreateContractHash(deployer,
		prm.ReputationContract.NEF.Checksum, prm.ReputationContract.Manifest.Name)
	agreementAddress := state.CreateContractHash(deployer,
		prm.AgreementContract.NEF.Checksum, prm.AgreementContract.Manifest.Name)
	escrowAddress := state.CreateContractHash(deployer,
		prm.EscrowContract.NEF.Checksum, prm.EscrowContract.Manifest.Name)

	mgmt := management.New(localActor)

	// Reputation goes first: both other contracts write to it from their
	// very first transaction.
	for _, c := range []struct {
		prm     CommonDeployPrm
		address util.Uint160
		data    []any
	}{
		{prm.ReputationContract, reputationAddress, []any{agreementAddress, escrowAddress}},
		{prm.AgreementContract, agreementAddress, []any{reputationAddress}},
		{prm.EscrowContract, escrowAddress, []any{agreementAddress, reputationAddress}},
	} {
		err = syncContract(ctx, prm.Logger, prm.Blockchain, localActor, mgmt, c.prm, c.address, c.data)
		if err != nil {
			return fmt.Errorf("sync %s contract with the chain: %w", c.prm.Manifest.Name, err)
		}
	}

	return nil
}

func syncContract(ctx context.Context, l *zap.Logger, b Blockchain, localActor *actor.Actor,
	mgmt *management.Contract, c CommonDeployPrm, address util.Uint160, data []any) error {
	l.Info("synchronizing contract with the chain...",
		zap.String("name", c.Manifest.Name), zap.Stringer("address", address))

	onChainState, err := b.GetContractStateByHash(address)
	if err != nil && !isErrContractNotFound(err) {
		return fmt.Errorf("read on-chain state of the contract by address: %w", err)
	}

	if onChainState != nil {
		l.Info("contract is already on the chain, skip deployment",
			zap.String("name", c.Manifest.Name), zap.Stringer("address", address))
		return nil
	}

	txHash, vub, err := mgmt.Deploy(&c.NEF, &c.Manifest, data)
	if err != nil {
		return fmt.Errorf("send contract deployment transaction: %w", err)
	}

	l.Info("contract deployment transaction sent, waiting for persistence...",
		zap.String("name", c.Manifest.Name), zap.Stringer("tx", txHash))

	res, err := localActor.Wait(txHash, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for contract deployment transaction: %w", err)
	}
	if res.VMState != vmstate.Halt {
		return fmt.Errorf("contract deployment transaction failed: %s", res.FaultException)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	l.Info("contract successfully deployed",
		zap.String("name", c.Manifest.Name), zap.Stringer("address", address))

	return nil
}

func isErrContractNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Unknown contract")
}
