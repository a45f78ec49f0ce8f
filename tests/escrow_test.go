package tests

import (
	"strings"
	"testing"

	"github.com/agreed-network/agreement-contracts/contracts/agreement/agreementconst"
	"github.com/agreed-network/agreement-contracts/contracts/escrow/escrowconst"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const milestoneAmount = 10_0000_0000 // 10 GAS

// escrowFixture is a deployed suite with an active three-party agreement.
type escrowFixture struct {
	*suite

	creator neotest.Signer
	worker  neotest.Signer
	third   neotest.Signer

	agreementID int64
}

func newEscrowFixture(t *testing.T) *escrowFixture {
	s := deploySuite(t)

	f := &escrowFixture{
		suite:       s,
		creator:     s.newIdentity(t),
		worker:      s.newIdentity(t),
		third:       s.newIdentity(t),
		agreementID: 1,
	}

	s.agreement.WithSigners(f.creator).Invoke(t, stackitem.Null{}, "createAgreement",
		f.creator.ScriptHash(), f.agreementID, hashesOf(f.creator, f.worker, f.third), int64(2))

	return f
}

func (f *escrowFixture) fundMilestone(t *testing.T, id int64) {
	f.escrow.WithSigners(f.creator).Invoke(t, stackitem.Null{}, "createAndFund",
		f.creator.ScriptHash(), id, f.agreementID, f.creator.ScriptHash(),
		"milestone work", int64(milestoneAmount), f.worker.ScriptHash(), int64(0))
}

func (f *escrowFixture) custody(t *testing.T) int64 {
	return f.e.Chain.GetUtilityTokenBalance(f.escrowHash).Int64()
}

func TestEscrow_CreateAndFund(t *testing.T) {
	f := newEscrowFixture(t)

	require.Zero(t, f.custody(t))

	f.fundMilestone(t, 1)

	// the full milestone amount is in contract custody
	require.EqualValues(t, milestoneAmount, f.custody(t))

	m := f.getMilestone(t, f.agreementID, 1)
	require.Len(t, m, 12)

	amount, err := m[3].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, milestoneAmount, amount.Int64())

	recipient, err := m[4].TryBytes()
	require.NoError(t, err)
	require.Equal(t, f.worker.ScriptHash().BytesBE(), recipient)

	status, err := m[6].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, escrowconst.Funded, status.Int64())

	// the release quorum is the participant count at funding time
	approvalsRequired, err := m[7].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, 3, approvalsRequired.Int64())

	// the escrowed value is credited to the creator's reputation
	rec := f.reputationRecord(t, f.creator.ScriptHash())
	escrowed, err := rec[4].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, milestoneAmount, escrowed.Int64())

	t.Run("duplicate milestone", func(t *testing.T) {
		f.escrow.WithSigners(f.creator).InvokeFail(t, escrowconst.ErrAlreadyExists,
			"createAndFund", f.creator.ScriptHash(), int64(1), f.agreementID, f.creator.ScriptHash(),
			"milestone work", int64(milestoneAmount), f.worker.ScriptHash(), int64(0))
	})
}

func TestEscrow_CreateAndFundValidation(t *testing.T) {
	f := newEscrowFixture(t)

	t.Run("not the agreement creator", func(t *testing.T) {
		f.escrow.WithSigners(f.worker).InvokeFail(t, escrowconst.ErrOnlyCreatorCanFund,
			"createAndFund", f.worker.ScriptHash(), int64(1), f.agreementID, f.creator.ScriptHash(),
			"milestone work", int64(milestoneAmount), f.worker.ScriptHash(), int64(0))
	})

	t.Run("recipient outside the agreement", func(t *testing.T) {
		stranger := f.newIdentity(t)
		f.escrow.WithSigners(f.creator).InvokeFail(t, escrowconst.ErrRecipientNotParticipant,
			"createAndFund", f.creator.ScriptHash(), int64(1), f.agreementID, f.creator.ScriptHash(),
			"milestone work", int64(milestoneAmount), stranger.ScriptHash(), int64(0))
	})

	t.Run("zero amount", func(t *testing.T) {
		f.escrow.WithSigners(f.creator).InvokeFail(t, escrowconst.ErrInvalidAmount,
			"createAndFund", f.creator.ScriptHash(), int64(1), f.agreementID, f.creator.ScriptHash(),
			"milestone work", int64(0), f.worker.ScriptHash(), int64(0))
	})

	t.Run("negative amount", func(t *testing.T) {
		f.escrow.WithSigners(f.creator).InvokeFail(t, escrowconst.ErrInvalidAmount,
			"createAndFund", f.creator.ScriptHash(), int64(1), f.agreementID, f.creator.ScriptHash(),
			"milestone work", int64(-milestoneAmount), f.worker.ScriptHash(), int64(0))
	})

	t.Run("description too long", func(t *testing.T) {
		f.escrow.WithSigners(f.creator).InvokeFail(t, escrowconst.ErrDescriptionTooLong,
			"createAndFund", f.creator.ScriptHash(), int64(1), f.agreementID, f.creator.ScriptHash(),
			strings.Repeat("x", escrowconst.MaxDescriptionLen+1), int64(milestoneAmount),
			f.worker.ScriptHash(), int64(0))
	})

	t.Run("unknown agreement", func(t *testing.T) {
		f.escrow.WithSigners(f.creator).InvokeFail(t, agreementconst.ErrNotFound,
			"createAndFund", f.creator.ScriptHash(), int64(1), int64(42), f.creator.ScriptHash(),
			"milestone work", int64(milestoneAmount), f.worker.ScriptHash(), int64(0))
	})

	t.Run("insufficient funds", func(t *testing.T) {
		// the creator holds less GAS than this, so custody transfer fails and
		// the whole call is rolled back
		f.escrow.WithSigners(f.creator).InvokeFail(t, escrowconst.ErrTransferFailed,
			"createAndFund", f.creator.ScriptHash(), int64(1), f.agreementID, f.creator.ScriptHash(),
			"milestone work", int64(1000_0000_0000), f.worker.ScriptHash(), int64(0))

		require.Zero(t, f.custody(t))

		_, err := f.escrow.TestInvoke(t, "get", f.agreementID, int64(1))
		require.Error(t, err)
		require.Contains(t, err.Error(), escrowconst.ErrNotFound)
	})

	t.Run("cancelled agreement", func(t *testing.T) {
		f.agreement.WithSigners(f.creator).Invoke(t, stackitem.Null{}, "cancelAgreement",
			f.agreementID, f.creator.ScriptHash())

		f.escrow.WithSigners(f.creator).InvokeFail(t, agreementconst.ErrNotActive,
			"createAndFund", f.creator.ScriptHash(), int64(1), f.agreementID, f.creator.ScriptHash(),
			"milestone work", int64(milestoneAmount), f.worker.ScriptHash(), int64(0))
	})
}

func TestEscrow_MarkComplete(t *testing.T) {
	f := newEscrowFixture(t)
	f.fundMilestone(t, 1)

	t.Run("by non-participant", func(t *testing.T) {
		stranger := f.newIdentity(t)
		f.escrow.WithSigners(stranger).InvokeFail(t, agreementconst.ErrNotParticipant,
			"markComplete", f.agreementID, int64(1), stranger.ScriptHash())
	})

	t.Run("approval before completion mark", func(t *testing.T) {
		f.escrow.WithSigners(f.worker).InvokeFail(t, escrowconst.ErrNotMarkedComplete,
			"approveRelease", f.agreementID, int64(1), f.worker.ScriptHash())
	})

	f.escrow.WithSigners(f.worker).Invoke(t, stackitem.Null{}, "markComplete",
		f.agreementID, int64(1), f.worker.ScriptHash())

	m := f.getMilestone(t, f.agreementID, 1)

	status, err := m[6].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, escrowconst.MarkedComplete, status.Int64())

	markedBy, err := m[9].TryBytes()
	require.NoError(t, err)
	require.Equal(t, f.worker.ScriptHash().BytesBE(), markedBy)

	t.Run("repeated mark", func(t *testing.T) {
		f.escrow.WithSigners(f.third).InvokeFail(t, escrowconst.ErrNotFunded,
			"markComplete", f.agreementID, int64(1), f.third.ScriptHash())
	})
}

func TestEscrow_ReleaseFlow(t *testing.T) {
	f := newEscrowFixture(t)
	f.fundMilestone(t, 1)

	f.escrow.WithSigners(f.worker).Invoke(t, stackitem.Null{}, "markComplete",
		f.agreementID, int64(1), f.worker.ScriptHash())

	f.escrow.WithSigners(f.creator).Invoke(t, stackitem.Null{}, "approveRelease",
		f.agreementID, int64(1), f.creator.ScriptHash())
	f.escrow.WithSigners(f.worker).Invoke(t, stackitem.Null{}, "approveRelease",
		f.agreementID, int64(1), f.worker.ScriptHash())

	t.Run("repeated approval", func(t *testing.T) {
		f.escrow.WithSigners(f.worker).InvokeFail(t, escrowconst.ErrAlreadyApproved,
			"approveRelease", f.agreementID, int64(1), f.worker.ScriptHash())
	})

	t.Run("release before quorum", func(t *testing.T) {
		f.escrow.InvokeFail(t, escrowconst.ErrInsufficientApprovals,
			"release", f.agreementID, int64(1))
	})

	f.escrow.WithSigners(f.third).Invoke(t, stackitem.Null{}, "approveRelease",
		f.agreementID, int64(1), f.third.ScriptHash())

	// release needs no witness, anyone may trigger it after the quorum;
	// the recipient is not the transaction sender, so its balance grows by
	// exactly the milestone amount
	workerBalanceBefore := f.e.Chain.GetUtilityTokenBalance(f.worker.ScriptHash()).Int64()

	f.escrow.WithSigners(f.creator).Invoke(t, stackitem.Null{}, "release",
		f.agreementID, int64(1))

	workerBalanceAfter := f.e.Chain.GetUtilityTokenBalance(f.worker.ScriptHash()).Int64()
	require.EqualValues(t, milestoneAmount, workerBalanceAfter-workerBalanceBefore)
	require.Zero(t, f.custody(t))

	m := f.getMilestone(t, f.agreementID, 1)
	status, err := m[6].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, escrowconst.Released, status.Int64())

	t.Run("repeated release", func(t *testing.T) {
		f.escrow.InvokeFail(t, escrowconst.ErrNotMarkedComplete,
			"release", f.agreementID, int64(1))
	})

	t.Run("mark after release", func(t *testing.T) {
		f.escrow.WithSigners(f.worker).InvokeFail(t, escrowconst.ErrNotFunded,
			"markComplete", f.agreementID, int64(1), f.worker.ScriptHash())
	})
}

func TestEscrow_Cancel(t *testing.T) {
	f := newEscrowFixture(t)
	f.fundMilestone(t, 1)

	t.Run("by non-creator", func(t *testing.T) {
		f.escrow.WithSigners(f.worker).InvokeFail(t, escrowconst.ErrOnlyCreatorCanCancel,
			"cancelMilestone", f.agreementID, int64(1), f.worker.ScriptHash())
	})

	creatorBalanceBefore := f.e.Chain.GetUtilityTokenBalance(f.creator.ScriptHash()).Int64()

	txHash := f.escrow.WithSigners(f.creator).Invoke(t, stackitem.Null{}, "cancelMilestone",
		f.agreementID, int64(1), f.creator.ScriptHash())

	// the creator gets the full amount back, less the fees of the
	// cancelling transaction it paid for itself
	tx, _, err := f.e.Chain.GetTransaction(txHash)
	require.NoError(t, err)

	creatorBalanceAfter := f.e.Chain.GetUtilityTokenBalance(f.creator.ScriptHash()).Int64()
	require.EqualValues(t, int64(milestoneAmount)-tx.SystemFee-tx.NetworkFee,
		creatorBalanceAfter-creatorBalanceBefore)
	require.Zero(t, f.custody(t))

	m := f.getMilestone(t, f.agreementID, 1)
	status, err := m[6].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, escrowconst.Cancelled, status.Int64())

	t.Run("repeated cancellation", func(t *testing.T) {
		f.escrow.WithSigners(f.creator).InvokeFail(t, escrowconst.ErrCannotCancel,
			"cancelMilestone", f.agreementID, int64(1), f.creator.ScriptHash())
	})

	t.Run("after completion mark", func(t *testing.T) {
		f.fundMilestone(t, 2)

		f.escrow.WithSigners(f.worker).Invoke(t, stackitem.Null{}, "markComplete",
			f.agreementID, int64(2), f.worker.ScriptHash())

		f.escrow.WithSigners(f.creator).InvokeFail(t, escrowconst.ErrCannotCancel,
			"cancelMilestone", f.agreementID, int64(2), f.creator.ScriptHash())
	})
}

func TestEscrow_IterateByAgreement(t *testing.T) {
	f := newEscrowFixture(t)

	f.fundMilestone(t, 1)
	f.fundMilestone(t, 2)

	res, err := f.escrow.TestInvoke(t, "iterateByAgreement", f.agreementID)
	require.NoError(t, err)

	iter, ok := res.Top().Value().(*storage.Iterator)
	require.True(t, ok)

	milestones := iteratorToArray(iter)
	require.Len(t, milestones, 2)

	for _, m := range milestones {
		fields, ok := m.Value().([]stackitem.Item)
		require.True(t, ok)
		require.Len(t, fields, 12)
	}

	res, err = f.escrow.TestInvoke(t, "iterateByAgreement", int64(42))
	require.NoError(t, err)

	iter, ok = res.Top().Value().(*storage.Iterator)
	require.True(t, ok)
	require.Empty(t, iteratorToArray(iter))
}
