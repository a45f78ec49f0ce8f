package tests

import (
	"testing"

	"github.com/agreed-network/agreement-contracts/common"
	"github.com/agreed-network/agreement-contracts/contracts/reputation/reputationconst"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestReputation_Initialize(t *testing.T) {
	s := deploySuite(t)

	acc := s.e.NewAccount(t)
	inv := s.reputation.WithSigners(acc)

	inv.Invoke(t, stackitem.Null{}, "initialize", acc.ScriptHash())

	res, err := s.reputation.TestInvoke(t, "isInitialized", acc.ScriptHash())
	require.NoError(t, err)
	require.True(t, res.Top().Bool())

	rec := s.reputationRecord(t, acc.ScriptHash())
	require.Len(t, rec, 7)

	identity, err := rec[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, acc.ScriptHash().BytesBE(), identity)

	for _, i := range []int{1, 2, 3, 4} {
		counter, err := rec[i].TryInteger()
		require.NoError(t, err)
		require.Zero(t, counter.Int64())
	}

	firstActivity, err := rec[5].TryInteger()
	require.NoError(t, err)
	lastActivity, err := rec[6].TryInteger()
	require.NoError(t, err)
	require.NotZero(t, firstActivity.Int64())
	require.Equal(t, firstActivity, lastActivity)

	t.Run("repeated initialization", func(t *testing.T) {
		inv.InvokeFail(t, reputationconst.ErrAlreadyExists, "initialize", acc.ScriptHash())
	})

	t.Run("witness of another account", func(t *testing.T) {
		stranger := s.e.NewAccount(t)
		s.reputation.WithSigners(stranger).InvokeFail(t, common.ErrOwnerWitnessFailed,
			"initialize", acc.ScriptHash())
	})
}

func TestReputation_GetUninitialized(t *testing.T) {
	s := deploySuite(t)

	acc := s.e.NewAccount(t)

	_, err := s.reputation.TestInvoke(t, "get", acc.ScriptHash())
	require.Error(t, err)
	require.Contains(t, err.Error(), reputationconst.ErrNotInitialized)

	res, err := s.reputation.TestInvoke(t, "isInitialized", acc.ScriptHash())
	require.NoError(t, err)
	require.False(t, res.Top().Bool())
}

func TestReputation_RecordActivityAccess(t *testing.T) {
	s := deploySuite(t)

	acc := s.newIdentity(t)

	// only the agreement and escrow contracts may post activity
	s.reputation.WithSigners(acc).InvokeFail(t, common.ErrUnknownContractCaller,
		"recordActivity", acc.ScriptHash(), int64(reputationconst.Created), int64(0))
}

func TestReputation_IterateRecords(t *testing.T) {
	s := deploySuite(t)

	res, err := s.reputation.TestInvoke(t, "iterateRecords")
	require.NoError(t, err)

	iter, ok := res.Top().Value().(*storage.Iterator)
	require.True(t, ok)
	require.Empty(t, iteratorToArray(iter))

	acc1 := s.newIdentity(t)
	acc2 := s.newIdentity(t)

	res, err = s.reputation.TestInvoke(t, "iterateRecords")
	require.NoError(t, err)

	iter, ok = res.Top().Value().(*storage.Iterator)
	require.True(t, ok)

	records := iteratorToArray(iter)
	require.Len(t, records, 2)

	seen := make(map[string]bool)
	for _, r := range records {
		fields, ok := r.Value().([]stackitem.Item)
		require.True(t, ok)
		require.Len(t, fields, 7)

		identity, err := fields[0].TryBytes()
		require.NoError(t, err)
		seen[string(identity)] = true
	}

	require.True(t, seen[string(acc1.ScriptHash().BytesBE())])
	require.True(t, seen[string(acc2.ScriptHash().BytesBE())])
}
