package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	reputationPath = "../contracts/reputation"
	agreementPath  = "../contracts/agreement"
	escrowPath     = "../contracts/escrow"
)

// suite is the agreement contract suite deployed to a test chain.
type suite struct {
	e *neotest.Executor

	reputationHash util.Uint160
	agreementHash  util.Uint160
	escrowHash     util.Uint160

	reputation *neotest.ContractInvoker
	agreement  *neotest.ContractInvoker
	escrow     *neotest.ContractInvoker
}

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// deploySuite deploys all three contracts wired to each other. Contract
// addresses are a function of the deployer and the contract artifact, so
// they are known before deployment and the cross references are passed as
// deployment data.
func deploySuite(t *testing.T) *suite {
	e := newExecutor(t)

	repC := neotest.CompileFile(t, e.CommitteeHash, reputationPath, path.Join(reputationPath, "config.yml"))
	agrC := neotest.CompileFile(t, e.CommitteeHash, agreementPath, path.Join(agreementPath, "config.yml"))
	escC := neotest.CompileFile(t, e.CommitteeHash, escrowPath, path.Join(escrowPath, "config.yml"))

	// reputation goes first, both other contracts write to it
	e.DeployContract(t, repC, []any{agrC.Hash, escC.Hash})
	e.DeployContract(t, agrC, []any{repC.Hash})
	e.DeployContract(t, escC, []any{agrC.Hash, repC.Hash})

	return &suite{
		e:              e,
		reputationHash: repC.Hash,
		agreementHash:  agrC.Hash,
		escrowHash:     escC.Hash,
		reputation:     e.CommitteeInvoker(repC.Hash),
		agreement:      e.CommitteeInvoker(agrC.Hash),
		escrow:         e.CommitteeInvoker(escC.Hash),
	}
}

// newIdentity creates a chain account with some GAS and an initialized
// reputation record.
func (s *suite) newIdentity(t *testing.T) neotest.Signer {
	acc := s.e.NewAccount(t)
	s.reputation.WithSigners(acc).Invoke(t, stackitem.Null{}, "initialize", acc.ScriptHash())
	return acc
}

// reputationRecord reads the raw reputation record fields of the identity.
func (s *suite) reputationRecord(t *testing.T, identity util.Uint160) []stackitem.Item {
	res, err := s.reputation.TestInvoke(t, "get", identity)
	require.NoError(t, err)
	return res.Top().Array()
}

// getAgreement reads the raw agreement record fields.
func (s *suite) getAgreement(t *testing.T, id int64, creator util.Uint160) []stackitem.Item {
	res, err := s.agreement.TestInvoke(t, "get", id, creator)
	require.NoError(t, err)
	return res.Top().Array()
}

// getMilestone reads the raw milestone record fields.
func (s *suite) getMilestone(t *testing.T, agreementID, id int64) []stackitem.Item {
	res, err := s.escrow.TestInvoke(t, "get", agreementID, id)
	require.NoError(t, err)
	return res.Top().Array()
}

func hashesOf(signers ...neotest.Signer) []any {
	res := make([]any, len(signers))
	for i := range signers {
		res[i] = signers[i].ScriptHash()
	}
	return res
}

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}
