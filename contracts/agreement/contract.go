package agreement

import (
	"github.com/agreed-network/agreement-contracts/common"
	"github.com/agreed-network/agreement-contracts/contracts/agreement/agreementconst"
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
	// Agreement is a multi-party agreement record. ID, Creator,
	// Participants and RequiredApprovals are fixed at creation.
	Agreement struct {
		ID                int
		Creator           interop.Hash160
		Participants      []interop.Hash160
		Status            int
		RequiredApprovals int
		CurrentApprovals  int
		Approvers         []interop.Hash160
		Reference         string
		CreatedAt         int
	}
)

const (
	agreementPrefix = 'a'

	reputationContractKey = 'r'
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

	addrReputation := args[0].(interop.Hash160)
	if len(addrReputation) != interop.Hash160Len {
		panic("invalid reputation contract address")
	}

	storage.Put(ctx, reputationContractKey, addrReputation)

	runtime.Log("agreement contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("agreement contract updated")
}

// CreateAgreement registers a new agreement between the listed participants.
// It can be invoked only by the creator, who must be one of the participants.
// The id is chosen by the creator and must not have been used by them before.
// The agreement starts in the Active state with no approvals.
//
// It produces an AgreementCreated notification.
func CreateAgreement(creator interop.Hash160, id int, participants []interop.Hash160, requiredApprovals int) {
	ctx := storage.GetContext()

	if len(creator) != interop.Hash160Len {
		panic("invalid identity")
	}

	common.CheckOwnerWitness(creator)

	if len(participants) > agreementconst.MaxParticipants {
		panic(agreementconst.ErrTooManyParticipants)
	}

	for i := range participants {
		if len(participants[i]) != interop.Hash160Len {
			panic("invalid identity")
		}
		for j := 0; j < i; j++ {
			if participants[j].Equals(participants[i]) {
				panic(agreementconst.ErrDuplicateParticipant)
			}
		}
	}

	if requiredApprovals < 0 || requiredApprovals > len(participants) {
		panic(agreementconst.ErrInvalidThreshold)
	}

	if !containsIdentity(participants, creator) {
		panic(agreementconst.ErrCreatorNotParticipant)
	}

	key := agreementKey(creator, id)
	if storage.Get(ctx, key) != nil {
		panic(agreementconst.ErrAlreadyExists)
	}

	common.SetSerialized(ctx, key, Agreement{
		ID:                id,
		Creator:           creator,
		Participants:      participants,
		Status:            int(agreementconst.Active),
		RequiredApprovals: requiredApprovals,
		CurrentApprovals:  0,
		Approvers:         []interop.Hash160{},
		Reference:         "",
		CreatedAt:         runtime.GetTime(),
	})

	recordActivity(ctx, creator, reputationconst.Created, 0)

	runtime.Notify("AgreementCreated", id, creator)
}

// Approve adds the approver's vote to the agreement. It can be invoked only
// by the approver, who must be a participant that has not approved yet. When
// the vote count reaches the required threshold, the agreement transitions to
// Completed within the same call.
//
// It produces an AgreementApproved notification, followed by an
// AgreementCompleted notification if the threshold has been crossed.
func Approve(id int, creator interop.Hash160, approver interop.Hash160) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(approver)

	a := getAgreement(ctx, creator, id)

	if a.Status != int(agreementconst.Active) {
		panic(agreementconst.ErrNotActive)
	}
	if !containsIdentity(a.Participants, approver) {
		panic(agreementconst.ErrNotParticipant)
	}
	if containsIdentity(a.Approvers, approver) {
		panic(agreementconst.ErrAlreadyApproved)
	}

	a.Approvers = append(a.Approvers, approver)
	a.CurrentApprovals += 1

	completed := a.CurrentApprovals >= a.RequiredApprovals
	if completed {
		a.Status = int(agreementconst.Completed)
	}

	common.SetSerialized(ctx, agreementKey(creator, id), a)

	recordActivity(ctx, approver, reputationconst.Approved, 0)

	runtime.Notify("AgreementApproved", id, creator, approver)
	if completed {
		runtime.Notify("AgreementCompleted", id, creator)
	}
}

// MarkParticipantComplete credits a completion to the participant's
// reputation record once the agreement is Completed. The participant argument
// is not witness-checked here: attributing the call to an identity is the
// boundary layer's duty. The call is not idempotent, repeated invocations
// keep incrementing the participant's completion counter.
func MarkParticipantComplete(id int, creator interop.Hash160, participant interop.Hash160) {
	ctx := storage.GetContext()

	a := getAgreement(ctx, creator, id)

	if a.Status != int(agreementconst.Completed) {
		panic(agreementconst.ErrNotCompleted)
	}
	if !containsIdentity(a.Participants, participant) {
		panic(agreementconst.ErrNotParticipant)
	}

	recordActivity(ctx, participant, reputationconst.Completed, 0)
}

// CancelAgreement cancels an Active agreement. It can be invoked only by the
// agreement creator. Cancellation is terminal and has no reputation side
// effect.
//
// It produces an AgreementCancelled notification.
func CancelAgreement(id int, creator interop.Hash160) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(creator)

	a := getAgreement(ctx, creator, id)

	if a.Status != int(agreementconst.Active) {
		panic(agreementconst.ErrNotActive)
	}

	a.Status = int(agreementconst.Cancelled)
	common.SetSerialized(ctx, agreementKey(creator, id), a)

	runtime.Notify("AgreementCancelled", id, creator)
}

// AttachReference stores an opaque reference (e.g. a content hash of the
// agreement text) on the agreement record. It can be invoked by any
// participant until the agreement is cancelled. The last written value wins.
//
// It produces a ReferenceAttached notification.
func AttachReference(id int, creator interop.Hash160, updater interop.Hash160, reference string) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(updater)

	if len(reference) > agreementconst.MaxReferenceLen {
		panic(agreementconst.ErrReferenceTooLong)
	}

	a := getAgreement(ctx, creator, id)

	if a.Status == int(agreementconst.Cancelled) {
		panic(agreementconst.ErrCancelled)
	}
	if !containsIdentity(a.Participants, updater) {
		panic(agreementconst.ErrNotParticipant)
	}

	a.Reference = reference
	common.SetSerialized(ctx, agreementKey(creator, id), a)

	runtime.Notify("ReferenceAttached", id, creator, reference)
}

// Get returns the agreement created by creator under the given id. It panics
// if there is no such agreement.
func Get(id int, creator interop.Hash160) Agreement {
	ctx := storage.GetReadOnlyContext()
	return getAgreement(ctx, creator, id)
}

// IterateByCreator returns an iterator over all agreements registered by the
// creator.
func IterateByCreator(creator interop.Hash160) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	key := append([]byte{agreementPrefix}, creator...)
	return storage.Find(ctx, key, storage.ValuesOnly|storage.DeserializeValues)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func agreementKey(creator interop.Hash160, id int) []byte {
	return common.AppendID(append([]byte{agreementPrefix}, creator...), id)
}

func getAgreement(ctx storage.Context, creator interop.Hash160, id int) Agreement {
	data := storage.Get(ctx, agreementKey(creator, id))
	if data == nil {
		panic(agreementconst.ErrNotFound)
	}

	return std.Deserialize(data.([]byte)).(Agreement)
}

func containsIdentity(list []interop.Hash160, identity interop.Hash160) bool {
	for i := range list {
		if list[i].Equals(identity) {
			return true
		}
	}

	return false
}

func recordActivity(ctx storage.Context, identity interop.Hash160, kind reputationconst.Kind, amount int) {
	addrReputation := storage.Get(ctx, reputationContractKey).(interop.Hash160)
	contract.Call(addrReputation, "recordActivity", contract.All, identity, int(kind), amount)
}
