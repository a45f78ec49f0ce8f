package escrow

import (
	"github.com/agreed-network/agreement-contracts/common"
	"github.com/agreed-network/agreement-contracts/contracts/agreement/agreementconst"
	"github.com/agreed-network/agreement-contracts/contracts/escrow/escrowconst"
	"github.com/agreed-network/agreement-contracts/contracts/reputation/reputationconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Milestone is a per-milestone fund custody record. Amount is fixed at
	// creation and matches the value held by the contract account for the
	// lifetime of the Funded and MarkedComplete states. ApprovalsRequired
	// snapshots the agreement's participant count at creation time.
	Milestone struct {
		ID                int
		AgreementID       int
		Description       string
		Amount            int
		Recipient         interop.Hash160
		Deadline          int
		Status            int
		ApprovalsRequired int
		Approvals         []interop.Hash160
		MarkedCompleteBy  interop.Hash160
		Creator           interop.Hash160
		CreatedAt         int
	}

	// agreementRecord is a copy of agreement.Agreement to prevent
	// cross-contract imports that may fail due to internal `_deploy` calls.
	agreementRecord struct {
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
	milestonePrefix = 'm'

	agreementContractKey  = 'a'
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

	addrAgreement := args[0].(interop.Hash160)
	if len(addrAgreement) != interop.Hash160Len {
		panic("invalid agreement contract address")
	}

	addrReputation := args[1].(interop.Hash160)
	if len(addrReputation) != interop.Hash160Len {
		panic("invalid reputation contract address")
	}

	storage.Put(ctx, agreementContractKey, addrAgreement)
	storage.Put(ctx, reputationContractKey, addrReputation)

	runtime.Log("escrow contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("escrow contract updated")
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Escrow custody is kept in GAS only, any other token is rejected.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		common.AbortWithMessage("only GAS is accepted into escrow")
	}
}

// CreateAndFund creates a milestone under the referenced agreement and moves
// its amount of GAS from the creator into contract custody as a single
// failure-atomic unit: if the transfer does not succeed, the whole call
// fails and no record is created. It can be invoked only by the agreement
// creator while the agreement is Active or Completed. The milestone starts
// Funded with the release quorum snapshotted to the agreement's participant
// count.
//
// It produces a MilestoneFunded notification.
func CreateAndFund(creator interop.Hash160, id int, agreementID int, agreementCreator interop.Hash160,
	description string, amount int, recipient interop.Hash160, deadline int) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(creator)

	if len(description) > escrowconst.MaxDescriptionLen {
		panic(escrowconst.ErrDescriptionTooLong)
	}

	rec := getAgreementRecord(ctx, agreementID, agreementCreator)

	if rec.Status != int(agreementconst.Active) && rec.Status != int(agreementconst.Completed) {
		panic(agreementconst.ErrNotActive)
	}
	if !creator.Equals(rec.Creator) {
		panic(escrowconst.ErrOnlyCreatorCanFund)
	}
	if !containsIdentity(rec.Participants, recipient) {
		panic(escrowconst.ErrRecipientNotParticipant)
	}
	if amount <= 0 {
		panic(escrowconst.ErrInvalidAmount)
	}

	key := milestoneKey(agreementID, id)
	if storage.Get(ctx, key) != nil {
		panic(escrowconst.ErrAlreadyExists)
	}

	// Move value into custody first: a failed transfer aborts the whole
	// transaction, so custody and bookkeeping can never diverge.
	if !gas.Transfer(creator, runtime.GetExecutingScriptHash(), amount, nil) {
		panic(escrowconst.ErrTransferFailed)
	}

	common.SetSerialized(ctx, key, Milestone{
		ID:                id,
		AgreementID:       agreementID,
		Description:       description,
		Amount:            amount,
		Recipient:         recipient,
		Deadline:          deadline,
		Status:            int(escrowconst.Funded),
		ApprovalsRequired: len(rec.Participants),
		Approvals:         []interop.Hash160{},
		Creator:           creator,
		CreatedAt:         runtime.GetTime(),
	})

	recordActivity(ctx, creator, reputationconst.Escrowed, amount)

	runtime.Notify("MilestoneFunded", agreementID, id, amount, recipient)
}

// MarkComplete asserts that the milestone work is done. It can be invoked by
// any agreement participant, including the eventual recipient, while the
// milestone is Funded.
//
// It produces a MilestoneMarkedComplete notification.
func MarkComplete(agreementID int, id int, marker interop.Hash160) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(marker)

	m := getMilestone(ctx, agreementID, id)

	if m.Status != int(escrowconst.Funded) {
		panic(escrowconst.ErrNotFunded)
	}

	rec := getAgreementRecord(ctx, m.AgreementID, m.Creator)
	if !containsIdentity(rec.Participants, marker) {
		panic(agreementconst.ErrNotParticipant)
	}

	m.MarkedCompleteBy = marker
	m.Status = int(escrowconst.MarkedComplete)
	common.SetSerialized(ctx, milestoneKey(agreementID, id), m)

	runtime.Notify("MilestoneMarkedComplete", agreementID, id, marker)
}

// ApproveRelease adds the approver's vote for releasing the milestone funds.
// It can be invoked only by an agreement participant that has not approved
// yet, after the milestone has been marked complete. Reaching the quorum does
// not release the funds: release is a separate explicit operation.
//
// It produces a MilestoneReleaseApproved notification.
func ApproveRelease(agreementID int, id int, approver interop.Hash160) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(approver)

	m := getMilestone(ctx, agreementID, id)

	if m.Status != int(escrowconst.MarkedComplete) {
		panic(escrowconst.ErrNotMarkedComplete)
	}

	rec := getAgreementRecord(ctx, m.AgreementID, m.Creator)
	if !containsIdentity(rec.Participants, approver) {
		panic(agreementconst.ErrNotParticipant)
	}
	if containsIdentity(m.Approvals, approver) {
		panic(escrowconst.ErrAlreadyApproved)
	}

	m.Approvals = append(m.Approvals, approver)
	common.SetSerialized(ctx, milestoneKey(agreementID, id), m)

	recordActivity(ctx, approver, reputationconst.Touch, 0)

	runtime.Notify("MilestoneReleaseApproved", agreementID, id, approver)
}

// Release moves the milestone amount from custody to the recipient once
// every required approval is collected. Any party may trigger the release
// after the quorum is met, no witness is required.
//
// It produces a MilestoneReleased notification.
func Release(agreementID int, id int) {
	ctx := storage.GetContext()

	m := getMilestone(ctx, agreementID, id)

	if m.Status != int(escrowconst.MarkedComplete) {
		panic(escrowconst.ErrNotMarkedComplete)
	}
	if len(m.Approvals) < m.ApprovalsRequired {
		panic(escrowconst.ErrInsufficientApprovals)
	}

	if !gas.Transfer(runtime.GetExecutingScriptHash(), m.Recipient, m.Amount, nil) {
		panic(escrowconst.ErrTransferFailed)
	}

	m.Status = int(escrowconst.Released)
	common.SetSerialized(ctx, milestoneKey(agreementID, id), m)

	runtime.Notify("MilestoneReleased", agreementID, id, m.Recipient, m.Amount)
}

// CancelMilestone cancels a milestone that has not been marked complete yet.
// It can be invoked only by the milestone creator. Cancelling a Funded
// milestone refunds its full amount from custody back to the creator;
// cancelling a Pending one moves no value. Cancellation is terminal.
//
// It produces a MilestoneCancelled notification.
func CancelMilestone(agreementID int, id int, caller interop.Hash160) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(caller)

	m := getMilestone(ctx, agreementID, id)

	if !m.Creator.Equals(caller) {
		panic(escrowconst.ErrOnlyCreatorCanCancel)
	}
	if m.Status != int(escrowconst.Funded) && m.Status != int(escrowconst.Pending) {
		panic(escrowconst.ErrCannotCancel)
	}

	if m.Status == int(escrowconst.Funded) {
		if !gas.Transfer(runtime.GetExecutingScriptHash(), m.Creator, m.Amount, nil) {
			panic(escrowconst.ErrTransferFailed)
		}
	}

	m.Status = int(escrowconst.Cancelled)
	common.SetSerialized(ctx, milestoneKey(agreementID, id), m)

	runtime.Notify("MilestoneCancelled", agreementID, id)
}

// Get returns the milestone registered under the agreement id and milestone
// id pair. It panics if there is no such milestone.
func Get(agreementID int, id int) Milestone {
	ctx := storage.GetReadOnlyContext()
	return getMilestone(ctx, agreementID, id)
}

// IterateByAgreement returns an iterator over all milestones of the
// agreement.
func IterateByAgreement(agreementID int) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	key := common.AppendID([]byte{milestonePrefix}, agreementID)
	return storage.Find(ctx, key, storage.ValuesOnly|storage.DeserializeValues)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func milestoneKey(agreementID int, id int) []byte {
	return common.AppendID(common.AppendID([]byte{milestonePrefix}, agreementID), id)
}

func getMilestone(ctx storage.Context, agreementID int, id int) Milestone {
	data := storage.Get(ctx, milestoneKey(agreementID, id))
	if data == nil {
		panic(escrowconst.ErrNotFound)
	}

	return std.Deserialize(data.([]byte)).(Milestone)
}

func getAgreementRecord(ctx storage.Context, agreementID int, creator interop.Hash160) agreementRecord {
	addrAgreement := storage.Get(ctx, agreementContractKey).(interop.Hash160)
	return contract.Call(addrAgreement, "get", contract.ReadOnly, agreementID, creator).(agreementRecord)
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
