package reputation

import (
	"github.com/agreed-network/agreement-contracts/common"
	"github.com/agreed-network/agreement-contracts/contracts/reputation/reputationconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Record accumulates per-identity activity counters. Counters only
	// grow; the record is never deleted once initialized.
	Record struct {
		Identity           interop.Hash160
		ContractsCreated   int
		ContractsCompleted int
		ContractsApproved  int
		TotalValueEscrowed int
		FirstActivity      int
		LastActivity       int
	}
)

const (
	recordPrefix = 'r'

	agreementContractKey = 'a'
	escrowContractKey    = 'e'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		version := args[len(args)-1].(int)

		common.CheckVersion(version)
		return
	}

	args := data.([]any)

	addrAgreement := args[0].(interop.Hash160)
	if len(addrAgreement) != interop.Hash160Len {
		panic("invalid agreement contract address")
	}

	addrEscrow := args[1].(interop.Hash160)
	if len(addrEscrow) != interop.Hash160Len {
		panic("invalid escrow contract address")
	}

	storage.Put(ctx, agreementContractKey, addrAgreement)
	storage.Put(ctx, escrowContractKey, addrEscrow)

	runtime.Log("reputation contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("reputation contract updated")
}

// Initialize creates a zeroed reputation record for the identity. It can be
// invoked only by the identity owner. Each identity gets exactly one record;
// a repeated call fails.
func Initialize(identity interop.Hash160) {
	ctx := storage.GetContext()

	if len(identity) != interop.Hash160Len {
		panic("invalid identity")
	}

	common.CheckOwnerWitness(identity)

	key := recordKey(identity)
	if storage.Get(ctx, key) != nil {
		panic(reputationconst.ErrAlreadyExists)
	}

	now := runtime.GetTime()
	common.SetSerialized(ctx, key, Record{
		Identity:      identity,
		FirstActivity: now,
		LastActivity:  now,
	})

	runtime.Log("reputation record created")
}

// RecordActivity applies one activity delta to the identity's record and
// refreshes its last activity timestamp. It can be invoked only by the
// agreement or escrow contracts of the suite; callers must have initialized
// the record beforehand.
func RecordActivity(identity interop.Hash160, kind int, amount int) {
	ctx := storage.GetContext()

	checkContractCaller(ctx)

	rec := getRecord(ctx, identity)

	switch kind {
	case int(reputationconst.Touch):
	case int(reputationconst.Created):
		rec.ContractsCreated += 1
	case int(reputationconst.Completed):
		rec.ContractsCompleted += 1
	case int(reputationconst.Approved):
		rec.ContractsApproved += 1
	case int(reputationconst.Escrowed):
		if amount < 0 {
			panic(reputationconst.ErrNegativeAmount)
		}
		rec.TotalValueEscrowed += amount
	default:
		panic(reputationconst.ErrUnknownKind)
	}

	rec.LastActivity = runtime.GetTime()
	common.SetSerialized(ctx, recordKey(identity), rec)
}

// Get returns the reputation record of the identity. It panics if the record
// has not been initialized.
func Get(identity interop.Hash160) Record {
	ctx := storage.GetReadOnlyContext()
	return getRecord(ctx, identity)
}

// IsInitialized returns true if the identity already has a reputation record.
func IsInitialized(identity interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, recordKey(identity)) != nil
}

// IterateRecords returns an iterator over all reputation records.
func IterateRecords() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{recordPrefix}, storage.ValuesOnly|storage.DeserializeValues)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func recordKey(identity interop.Hash160) []byte {
	return append([]byte{recordPrefix}, identity...)
}

func getRecord(ctx storage.Context, identity interop.Hash160) Record {
	data := storage.Get(ctx, recordKey(identity))
	if data == nil {
		panic(reputationconst.ErrNotInitialized)
	}

	return std.Deserialize(data.([]byte)).(Record)
}

func checkContractCaller(ctx storage.Context) {
	addrAgreement := storage.Get(ctx, agreementContractKey).(interop.Hash160)
	addrEscrow := storage.Get(ctx, escrowContractKey).(interop.Hash160)

	if !common.CalledByContract(addrAgreement) && !common.CalledByContract(addrEscrow) {
		panic(common.ErrUnknownContractCaller)
	}
}
