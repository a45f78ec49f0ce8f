// Package escrow contains RPC wrappers for Milestone Escrow contract.
package escrow

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)

// EscrowMilestone is a contract-specific escrow.Milestone type used by its methods.
type EscrowMilestone struct {
	ID *big.Int
	AgreementID *big.Int
	Description string
	Amount *big.Int
	Recipient util.Uint160
	Deadline *big.Int
	Status *big.Int
	ApprovalsRequired *big.Int
	Approvals []util.Uint160
	MarkedCompleteBy util.Uint160
	Creator util.Uint160
	CreatedAt *big.Int
}

// MilestoneFundedEvent represents "MilestoneFunded" event emitted by the contract.
type MilestoneFundedEvent struct {
	AgreementID *big.Int
	Id *big.Int
	Amount *big.Int
	Recipient util.Uint160
}

// MilestoneMarkedCompleteEvent represents "MilestoneMarkedComplete" event emitted by the contract.
type MilestoneMarkedCompleteEvent struct {
	AgreementID *big.Int
	Id *big.Int
	Marker util.Uint160
}

// MilestoneReleaseApprovedEvent represents "MilestoneReleaseApproved" event emitted by the contract.
type MilestoneReleaseApprovedEvent struct {
	AgreementID *big.Int
	Id *big.Int
	Approver util.Uint160
}

// MilestoneReleasedEvent represents "MilestoneReleased" event emitted by the contract.
type MilestoneReleasedEvent struct {
	AgreementID *big.Int
	Id *big.Int
	Recipient util.Uint160
	Amount *big.Int
}

// MilestoneCancelledEvent represents "MilestoneCancelled" event emitted by the contract.
type MilestoneCancelledEvent struct {
	AgreementID *big.Int
	Id *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Get invokes `get` method of contract.
func (c *ContractReader) Get(agreementID *big.Int, id *big.Int) (*EscrowMilestone, error) {
	return itemToEscrowMilestone(unwrap.Item(c.invoker.Call(c.hash, "get", agreementID, id)))
}

// IterateByAgreement invokes `iterateByAgreement` method of contract.
func (c *ContractReader) IterateByAgreement(agreementID *big.Int) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "iterateByAgreement", agreementID))
}

// IterateByAgreementExpanded is similar to IterateByAgreement (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) IterateByAgreementExpanded(agreementID *big.Int, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "iterateByAgreement", _numOfIteratorItems, agreementID))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// CreateAndFund creates a transaction invoking `createAndFund` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateAndFund(creator util.Uint160, id *big.Int, agreementID *big.Int, agreementCreator util.Uint160, description string, amount *big.Int, recipient util.Uint160, deadline *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createAndFund", creator, id, agreementID, agreementCreator, description, amount, recipient, deadline)
}

// CreateAndFundTransaction creates a transaction invoking `createAndFund` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateAndFundTransaction(creator util.Uint160, id *big.Int, agreementID *big.Int, agreementCreator util.Uint160, description string, amount *big.Int, recipient util.Uint160, deadline *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createAndFund", creator, id, agreementID, agreementCreator, description, amount, recipient, deadline)
}

// CreateAndFundUnsigned creates a transaction invoking `createAndFund` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateAndFundUnsigned(creator util.Uint160, id *big.Int, agreementID *big.Int, agreementCreator util.Uint160, description string, amount *big.Int, recipient util.Uint160, deadline *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createAndFund", nil, creator, id, agreementID, agreementCreator, description, amount, recipient, deadline)
}

// MarkComplete creates a transaction invoking `markComplete` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) MarkComplete(agreementID *big.Int, id *big.Int, marker util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "markComplete", agreementID, id, marker)
}

// MarkCompleteTransaction creates a transaction invoking `markComplete` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) MarkCompleteTransaction(agreementID *big.Int, id *big.Int, marker util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "markComplete", agreementID, id, marker)
}

// MarkCompleteUnsigned creates a transaction invoking `markComplete` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) MarkCompleteUnsigned(agreementID *big.Int, id *big.Int, marker util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "markComplete", nil, agreementID, id, marker)
}

// ApproveRelease creates a transaction invoking `approveRelease` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ApproveRelease(agreementID *big.Int, id *big.Int, approver util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "approveRelease", agreementID, id, approver)
}

// ApproveReleaseTransaction creates a transaction invoking `approveRelease` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ApproveReleaseTransaction(agreementID *big.Int, id *big.Int, approver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "approveRelease", agreementID, id, approver)
}

// ApproveReleaseUnsigned creates a transaction invoking `approveRelease` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ApproveReleaseUnsigned(agreementID *big.Int, id *big.Int, approver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "approveRelease", nil, agreementID, id, approver)
}

// Release creates a transaction invoking `release` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Release(agreementID *big.Int, id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "release", agreementID, id)
}

// ReleaseTransaction creates a transaction invoking `release` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ReleaseTransaction(agreementID *big.Int, id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "release", agreementID, id)
}

// ReleaseUnsigned creates a transaction invoking `release` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ReleaseUnsigned(agreementID *big.Int, id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "release", nil, agreementID, id)
}

// CancelMilestone creates a transaction invoking `cancelMilestone` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CancelMilestone(agreementID *big.Int, id *big.Int, caller util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "cancelMilestone", agreementID, id, caller)
}

// CancelMilestoneTransaction creates a transaction invoking `cancelMilestone` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CancelMilestoneTransaction(agreementID *big.Int, id *big.Int, caller util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "cancelMilestone", agreementID, id, caller)
}

// CancelMilestoneUnsigned creates a transaction invoking `cancelMilestone` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CancelMilestoneUnsigned(agreementID *big.Int, id *big.Int, caller util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "cancelMilestone", nil, agreementID, id, caller)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToEscrowMilestone converts stack item into *EscrowMilestone.
func itemToEscrowMilestone(item stackitem.Item, err error) (*EscrowMilestone, error) {
	if err != nil {
		return nil, err
	}
	var res = new(EscrowMilestone)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of EscrowMilestone from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *EscrowMilestone) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 12 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	res.AgreementID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AgreementID: %w", err)
	}

	index++
	res.Description, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Description: %w", err)
	}

	index++
	res.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	res.Recipient, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Recipient: %w", err)
	}

	index++
	res.Deadline, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Deadline: %w", err)
	}

	index++
	res.Status, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}

	index++
	res.ApprovalsRequired, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ApprovalsRequired: %w", err)
	}

	index++
	res.Approvals, err = func (item stackitem.Item) ([]util.Uint160, error) {
		arr, ok := item.Value().([]stackitem.Item)
		if !ok {
			return nil, errors.New("not an array")
		}
		res := make([]util.Uint160, len(arr))
		for i := range res {
			res[i], err = func (item stackitem.Item) (util.Uint160, error) {
				b, err := item.TryBytes()
				if err != nil {
					return util.Uint160{}, err
				}
				u, err := util.Uint160DecodeBytesBE(b)
				if err != nil {
					return util.Uint160{}, err
				}
				return u, nil
			} (arr[i])
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return res, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Approvals: %w", err)
	}

	index++
	res.MarkedCompleteBy, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field MarkedCompleteBy: %w", err)
	}

	index++
	res.Creator, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Creator: %w", err)
	}

	index++
	res.CreatedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedAt: %w", err)
	}

	return nil
}

// MilestoneFundedEventsFromApplicationLog retrieves a set of all emitted events
// with "MilestoneFunded" name from the provided [result.ApplicationLog].
func MilestoneFundedEventsFromApplicationLog(log *result.ApplicationLog) ([]*MilestoneFundedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*MilestoneFundedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "MilestoneFunded" {
				continue
			}
			event := new(MilestoneFundedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize MilestoneFundedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to MilestoneFundedEvent or
// returns an error if it's not possible to do to so.
func (e *MilestoneFundedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.AgreementID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AgreementID: %w", err)
	}

	index++
	e.Id, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Id: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.Recipient, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Recipient: %w", err)
	}

	return nil
}

// MilestoneMarkedCompleteEventsFromApplicationLog retrieves a set of all emitted events
// with "MilestoneMarkedComplete" name from the provided [result.ApplicationLog].
func MilestoneMarkedCompleteEventsFromApplicationLog(log *result.ApplicationLog) ([]*MilestoneMarkedCompleteEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*MilestoneMarkedCompleteEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "MilestoneMarkedComplete" {
				continue
			}
			event := new(MilestoneMarkedCompleteEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize MilestoneMarkedCompleteEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to MilestoneMarkedCompleteEvent or
// returns an error if it's not possible to do to so.
func (e *MilestoneMarkedCompleteEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.AgreementID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AgreementID: %w", err)
	}

	index++
	e.Id, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Id: %w", err)
	}

	index++
	e.Marker, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Marker: %w", err)
	}

	return nil
}

// MilestoneReleaseApprovedEventsFromApplicationLog retrieves a set of all emitted events
// with "MilestoneReleaseApproved" name from the provided [result.ApplicationLog].
func MilestoneReleaseApprovedEventsFromApplicationLog(log *result.ApplicationLog) ([]*MilestoneReleaseApprovedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*MilestoneReleaseApprovedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "MilestoneReleaseApproved" {
				continue
			}
			event := new(MilestoneReleaseApprovedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize MilestoneReleaseApprovedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to MilestoneReleaseApprovedEvent or
// returns an error if it's not possible to do to so.
func (e *MilestoneReleaseApprovedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.AgreementID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AgreementID: %w", err)
	}

	index++
	e.Id, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Id: %w", err)
	}

	index++
	e.Approver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Approver: %w", err)
	}

	return nil
}

// MilestoneReleasedEventsFromApplicationLog retrieves a set of all emitted events
// with "MilestoneReleased" name from the provided [result.ApplicationLog].
func MilestoneReleasedEventsFromApplicationLog(log *result.ApplicationLog) ([]*MilestoneReleasedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*MilestoneReleasedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "MilestoneReleased" {
				continue
			}
			event := new(MilestoneReleasedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize MilestoneReleasedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to MilestoneReleasedEvent or
// returns an error if it's not possible to do to so.
func (e *MilestoneReleasedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.AgreementID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AgreementID: %w", err)
	}

	index++
	e.Id, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Id: %w", err)
	}

	index++
	e.Recipient, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Recipient: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// MilestoneCancelledEventsFromApplicationLog retrieves a set of all emitted events
// with "MilestoneCancelled" name from the provided [result.ApplicationLog].
func MilestoneCancelledEventsFromApplicationLog(log *result.ApplicationLog) ([]*MilestoneCancelledEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*MilestoneCancelledEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "MilestoneCancelled" {
				continue
			}
			event := new(MilestoneCancelledEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize MilestoneCancelledEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to MilestoneCancelledEvent or
// returns an error if it's not possible to do to so.
func (e *MilestoneCancelledEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.AgreementID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AgreementID: %w", err)
	}

	index++
	e.Id, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Id: %w", err)
	}

	return nil
}
