package tests

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/agreed-network/agreement-contracts/common"
	"github.com/agreed-network/agreement-contracts/contracts/agreement/agreementconst"
	"github.com/agreed-network/agreement-contracts/contracts/reputation/reputationconst"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

// contentReference returns an IPFS-style CIDv0 of the given agreement text,
// the natural payload for attachReference.
func contentReference(text string) string {
	digest := sha256.Sum256([]byte(text))
	return base58.Encode(append([]byte{0x12, 0x20}, digest[:]...))
}

func TestAgreement_Create(t *testing.T) {
	s := deploySuite(t)

	creator := s.newIdentity(t)
	second := s.newIdentity(t)

	inv := s.agreement.WithSigners(creator)
	participants := hashesOf(creator, second)

	txHash := inv.Invoke(t, stackitem.Null{}, "createAgreement",
		creator.ScriptHash(), int64(1), participants, int64(2))

	s.e.CheckTxNotificationEvent(t, txHash, 0, state.NotificationEvent{
		ScriptHash: s.agreementHash,
		Name:       "AgreementCreated",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.Make(1),
			stackitem.Make(creator.ScriptHash().BytesBE()),
		}),
	})

	a := s.getAgreement(t, 1, creator.ScriptHash())
	require.Len(t, a, 9)

	id, err := a[0].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, 1, id.Int64())

	creatorField, err := a[1].TryBytes()
	require.NoError(t, err)
	require.Equal(t, creator.ScriptHash().BytesBE(), creatorField)

	require.Len(t, a[2].Value().([]stackitem.Item), 2)

	status, err := a[3].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, agreementconst.Active, status.Int64())

	required, err := a[4].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, 2, required.Int64())

	current, err := a[5].TryInteger()
	require.NoError(t, err)
	require.Zero(t, current.Int64())

	require.Empty(t, a[6].Value().([]stackitem.Item))

	// creation is credited to the creator's reputation
	rec := s.reputationRecord(t, creator.ScriptHash())
	created, err := rec[1].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, 1, created.Int64())

	t.Run("duplicate id", func(t *testing.T) {
		inv.InvokeFail(t, agreementconst.ErrAlreadyExists, "createAgreement",
			creator.ScriptHash(), int64(1), participants, int64(2))
	})

	t.Run("same id of another creator", func(t *testing.T) {
		// agreements are namespaced by creator, so the id is not taken
		s.agreement.WithSigners(second).Invoke(t, stackitem.Null{}, "createAgreement",
			second.ScriptHash(), int64(1), participants, int64(2))
	})
}

func TestAgreement_CreateValidation(t *testing.T) {
	s := deploySuite(t)

	creator := s.newIdentity(t)
	second := s.newIdentity(t)

	inv := s.agreement.WithSigners(creator)

	t.Run("missing creator witness", func(t *testing.T) {
		s.agreement.WithSigners(second).InvokeFail(t, common.ErrOwnerWitnessFailed,
			"createAgreement", creator.ScriptHash(), int64(1), hashesOf(creator, second), int64(1))
	})

	t.Run("too many participants", func(t *testing.T) {
		participants := make([]any, 0, agreementconst.MaxParticipants+1)
		participants = append(participants, creator.ScriptHash())
		for len(participants) <= agreementconst.MaxParticipants {
			participants = append(participants, s.e.NewAccount(t).ScriptHash())
		}

		inv.InvokeFail(t, agreementconst.ErrTooManyParticipants, "createAgreement",
			creator.ScriptHash(), int64(1), participants, int64(1))
	})

	t.Run("duplicate participant", func(t *testing.T) {
		inv.InvokeFail(t, agreementconst.ErrDuplicateParticipant, "createAgreement",
			creator.ScriptHash(), int64(1), hashesOf(creator, second, second), int64(1))
	})

	t.Run("threshold exceeds participant count", func(t *testing.T) {
		inv.InvokeFail(t, agreementconst.ErrInvalidThreshold, "createAgreement",
			creator.ScriptHash(), int64(1), hashesOf(creator, second), int64(3))
	})

	t.Run("negative threshold", func(t *testing.T) {
		inv.InvokeFail(t, agreementconst.ErrInvalidThreshold, "createAgreement",
			creator.ScriptHash(), int64(1), hashesOf(creator, second), int64(-1))
	})

	t.Run("creator not listed", func(t *testing.T) {
		third := s.newIdentity(t)
		inv.InvokeFail(t, agreementconst.ErrCreatorNotParticipant, "createAgreement",
			creator.ScriptHash(), int64(1), hashesOf(second, third), int64(1))
	})

	t.Run("uninitialized creator", func(t *testing.T) {
		fresh := s.e.NewAccount(t)
		s.agreement.WithSigners(fresh).InvokeFail(t, reputationconst.ErrNotInitialized,
			"createAgreement", fresh.ScriptHash(), int64(1), hashesOf(fresh), int64(1))
	})
}

func TestAgreement_Approve(t *testing.T) {
	s := deploySuite(t)

	creator := s.newIdentity(t)
	second := s.newIdentity(t)
	third := s.newIdentity(t)

	s.agreement.WithSigners(creator).Invoke(t, stackitem.Null{}, "createAgreement",
		creator.ScriptHash(), int64(7), hashesOf(creator, second, third), int64(2))

	t.Run("not a participant", func(t *testing.T) {
		stranger := s.newIdentity(t)
		s.agreement.WithSigners(stranger).InvokeFail(t, agreementconst.ErrNotParticipant,
			"approve", int64(7), creator.ScriptHash(), stranger.ScriptHash())
	})

	t.Run("unknown agreement", func(t *testing.T) {
		s.agreement.WithSigners(second).InvokeFail(t, agreementconst.ErrNotFound,
			"approve", int64(8), creator.ScriptHash(), second.ScriptHash())
	})

	s.agreement.WithSigners(second).Invoke(t, stackitem.Null{}, "approve",
		int64(7), creator.ScriptHash(), second.ScriptHash())

	a := s.getAgreement(t, 7, creator.ScriptHash())
	current, err := a[5].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, 1, current.Int64())

	status, err := a[3].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, agreementconst.Active, status.Int64())

	t.Run("repeated approval", func(t *testing.T) {
		s.agreement.WithSigners(second).InvokeFail(t, agreementconst.ErrAlreadyApproved,
			"approve", int64(7), creator.ScriptHash(), second.ScriptHash())
	})

	// the approval is credited to the approver's reputation
	rec := s.reputationRecord(t, second.ScriptHash())
	approved, err := rec[3].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, 1, approved.Int64())

	// second approval reaches the threshold, the agreement completes in the
	// same transaction
	s.agreement.WithSigners(third).Invoke(t, stackitem.Null{}, "approve",
		int64(7), creator.ScriptHash(), third.ScriptHash())

	a = s.getAgreement(t, 7, creator.ScriptHash())
	status, err = a[3].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, agreementconst.Completed, status.Int64())

	t.Run("approval after completion", func(t *testing.T) {
		s.agreement.WithSigners(creator).InvokeFail(t, agreementconst.ErrNotActive,
			"approve", int64(7), creator.ScriptHash(), creator.ScriptHash())
	})
}

func TestAgreement_ApprovalOrdering(t *testing.T) {
	s := deploySuite(t)

	creator := s.newIdentity(t)
	second := s.newIdentity(t)
	third := s.newIdentity(t)

	signers := []neotest.Signer{creator, second, third}
	participants := hashesOf(creator, second, third)

	// with a threshold of 2, any two distinct approvals complete the
	// agreement no matter which participants approve or in which order
	orderings := [][]int{
		{0, 1}, {1, 0},
		{0, 2}, {2, 0},
		{1, 2}, {2, 1},
	}

	for i, ordering := range orderings {
		id := int64(i + 1)

		s.agreement.WithSigners(creator).Invoke(t, stackitem.Null{}, "createAgreement",
			creator.ScriptHash(), id, participants, int64(2))

		for j, idx := range ordering {
			approver := signers[idx]
			s.agreement.WithSigners(approver).Invoke(t, stackitem.Null{}, "approve",
				id, creator.ScriptHash(), approver.ScriptHash())

			a := s.getAgreement(t, id, creator.ScriptHash())
			status, err := a[3].TryInteger()
			require.NoError(t, err)

			if j == 0 {
				require.EqualValues(t, agreementconst.Active, status.Int64())
			} else {
				require.EqualValues(t, agreementconst.Completed, status.Int64())
			}
		}
	}
}

func TestAgreement_ZeroThreshold(t *testing.T) {
	s := deploySuite(t)

	creator := s.newIdentity(t)
	second := s.newIdentity(t)

	s.agreement.WithSigners(creator).Invoke(t, stackitem.Null{}, "createAgreement",
		creator.ScriptHash(), int64(1), hashesOf(creator, second), int64(0))

	// zero threshold still requires an explicit first approval to cross it
	a := s.getAgreement(t, 1, creator.ScriptHash())
	status, err := a[3].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, agreementconst.Active, status.Int64())

	s.agreement.WithSigners(second).Invoke(t, stackitem.Null{}, "approve",
		int64(1), creator.ScriptHash(), second.ScriptHash())

	a = s.getAgreement(t, 1, creator.ScriptHash())
	status, err = a[3].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, agreementconst.Completed, status.Int64())
}

func TestAgreement_MarkParticipantComplete(t *testing.T) {
	s := deploySuite(t)

	creator := s.newIdentity(t)
	second := s.newIdentity(t)

	s.agreement.WithSigners(creator).Invoke(t, stackitem.Null{}, "createAgreement",
		creator.ScriptHash(), int64(1), hashesOf(creator, second), int64(1))

	t.Run("before completion", func(t *testing.T) {
		s.agreement.InvokeFail(t, agreementconst.ErrNotCompleted,
			"markParticipantComplete", int64(1), creator.ScriptHash(), second.ScriptHash())
	})

	s.agreement.WithSigners(second).Invoke(t, stackitem.Null{}, "approve",
		int64(1), creator.ScriptHash(), second.ScriptHash())

	t.Run("not a participant", func(t *testing.T) {
		stranger := s.newIdentity(t)
		s.agreement.InvokeFail(t, agreementconst.ErrNotParticipant,
			"markParticipantComplete", int64(1), creator.ScriptHash(), stranger.ScriptHash())
	})

	s.agreement.Invoke(t, stackitem.Null{}, "markParticipantComplete",
		int64(1), creator.ScriptHash(), second.ScriptHash())

	rec := s.reputationRecord(t, second.ScriptHash())
	completed, err := rec[2].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, 1, completed.Int64())

	// the call is not idempotent, a repeated one credits one more completion
	s.agreement.Invoke(t, stackitem.Null{}, "markParticipantComplete",
		int64(1), creator.ScriptHash(), second.ScriptHash())

	rec = s.reputationRecord(t, second.ScriptHash())
	completed, err = rec[2].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, 2, completed.Int64())
}

func TestAgreement_Cancel(t *testing.T) {
	s := deploySuite(t)

	creator := s.newIdentity(t)
	second := s.newIdentity(t)

	s.agreement.WithSigners(creator).Invoke(t, stackitem.Null{}, "createAgreement",
		creator.ScriptHash(), int64(1), hashesOf(creator, second), int64(2))

	t.Run("by non-creator", func(t *testing.T) {
		s.agreement.WithSigners(second).InvokeFail(t, common.ErrOwnerWitnessFailed,
			"cancelAgreement", int64(1), creator.ScriptHash())
	})

	s.agreement.WithSigners(creator).Invoke(t, stackitem.Null{}, "cancelAgreement",
		int64(1), creator.ScriptHash())

	a := s.getAgreement(t, 1, creator.ScriptHash())
	status, err := a[3].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, agreementconst.Cancelled, status.Int64())

	t.Run("repeated cancellation", func(t *testing.T) {
		s.agreement.WithSigners(creator).InvokeFail(t, agreementconst.ErrNotActive,
			"cancelAgreement", int64(1), creator.ScriptHash())
	})

	t.Run("approval after cancellation", func(t *testing.T) {
		s.agreement.WithSigners(second).InvokeFail(t, agreementconst.ErrNotActive,
			"approve", int64(1), creator.ScriptHash(), second.ScriptHash())
	})
}

func TestAgreement_AttachReference(t *testing.T) {
	s := deploySuite(t)

	creator := s.newIdentity(t)
	second := s.newIdentity(t)

	s.agreement.WithSigners(creator).Invoke(t, stackitem.Null{}, "createAgreement",
		creator.ScriptHash(), int64(1), hashesOf(creator, second), int64(2))

	ref := contentReference("agreement text v1")
	require.Len(t, ref, agreementconst.MaxReferenceLen)

	s.agreement.WithSigners(creator).Invoke(t, stackitem.Null{}, "attachReference",
		int64(1), creator.ScriptHash(), creator.ScriptHash(), ref)

	a := s.getAgreement(t, 1, creator.ScriptHash())
	refField, err := a[7].TryBytes()
	require.NoError(t, err)
	require.Equal(t, ref, string(refField))

	t.Run("overwrite by another participant", func(t *testing.T) {
		ref2 := contentReference("agreement text v2")

		s.agreement.WithSigners(second).Invoke(t, stackitem.Null{}, "attachReference",
			int64(1), creator.ScriptHash(), second.ScriptHash(), ref2)

		a := s.getAgreement(t, 1, creator.ScriptHash())
		refField, err := a[7].TryBytes()
		require.NoError(t, err)
		require.Equal(t, ref2, string(refField))
	})

	t.Run("too long", func(t *testing.T) {
		s.agreement.WithSigners(creator).InvokeFail(t, agreementconst.ErrReferenceTooLong,
			"attachReference", int64(1), creator.ScriptHash(), creator.ScriptHash(),
			strings.Repeat("Q", agreementconst.MaxReferenceLen+1))
	})

	t.Run("by non-participant", func(t *testing.T) {
		stranger := s.newIdentity(t)
		s.agreement.WithSigners(stranger).InvokeFail(t, agreementconst.ErrNotParticipant,
			"attachReference", int64(1), creator.ScriptHash(), stranger.ScriptHash(), ref)
	})

	t.Run("after cancellation", func(t *testing.T) {
		s.agreement.WithSigners(creator).Invoke(t, stackitem.Null{}, "cancelAgreement",
			int64(1), creator.ScriptHash())

		s.agreement.WithSigners(creator).InvokeFail(t, agreementconst.ErrCancelled,
			"attachReference", int64(1), creator.ScriptHash(), creator.ScriptHash(), ref)
	})
}

func TestAgreement_IterateByCreator(t *testing.T) {
	s := deploySuite(t)

	creator := s.newIdentity(t)
	second := s.newIdentity(t)

	inv := s.agreement.WithSigners(creator)
	for _, id := range []int64{1, 2, 3} {
		inv.Invoke(t, stackitem.Null{}, "createAgreement",
			creator.ScriptHash(), id, hashesOf(creator, second), int64(1))
	}

	s.agreement.WithSigners(second).Invoke(t, stackitem.Null{}, "createAgreement",
		second.ScriptHash(), int64(1), hashesOf(creator, second), int64(1))

	res, err := s.agreement.TestInvoke(t, "iterateByCreator", creator.ScriptHash())
	require.NoError(t, err)

	iter, ok := res.Top().Value().(*storage.Iterator)
	require.True(t, ok)
	require.Len(t, iteratorToArray(iter), 3)

	res, err = s.agreement.TestInvoke(t, "iterateByCreator", second.ScriptHash())
	require.NoError(t, err)

	iter, ok = res.Top().Value().(*storage.Iterator)
	require.True(t, ok)
	require.Len(t, iteratorToArray(iter), 1)
}
