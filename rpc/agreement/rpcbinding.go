// Package agreement contains RPC wrappers for Multi-Party Agreement contract.
package agreement

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

// AgreementAgreement is a contract-specific agreement.Agreement type used by its methods.
type AgreementAgreement struct {
	ID *big.Int
	Creator util.Uint160
	Participants []util.Uint160
	Status *big.Int
	RequiredApprovals *big.Int
	CurrentApprovals *big.Int
	Approvers []util.Uint160
	Reference string
	CreatedAt *big.Int
}

// AgreementCreatedEvent represents "AgreementCreated" event emitted by the contract.
type AgreementCreatedEvent struct {
	Id *big.Int
	Creator util.Uint160
}

// AgreementApprovedEvent represents "AgreementApproved" event emitted by the contract.
type AgreementApprovedEvent struct {
	Id *big.Int
	Creator util.Uint160
	Approver util.Uint160
}

// AgreementCompletedEvent represents "AgreementCompleted" event emitted by the contract.
type AgreementCompletedEvent struct {
	Id *big.Int
	Creator util.Uint160
}

// AgreementCancelledEvent represents "AgreementCancelled" event emitted by the contract.
type AgreementCancelledEvent struct {
	Id *big.Int
	Creator util.Uint160
}

// ReferenceAttachedEvent represents "ReferenceAttached" event emitted by the contract.
type ReferenceAttachedEvent struct {
	Id *big.Int
	Creator util.Uint160
	Reference string
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
func (c *ContractReader) Get(id *big.Int, creator util.Uint160) (*AgreementAgreement, error) {
	return itemToAgreementAgreement(unwrap.Item(c.invoker.Call(c.hash, "get", id, creator)))
}

// IterateByCreator invokes `iterateByCreator` method of contract.
func (c *ContractReader) IterateByCreator(creator util.Uint160) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "iterateByCreator", creator))
}

// IterateByCreatorExpanded is similar to IterateByCreator (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) IterateByCreatorExpanded(creator util.Uint160, _numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "iterateByCreator", _numOfIteratorItems, creator))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// CreateAgreement creates a transaction invoking `createAgreement` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateAgreement(creator util.Uint160, id *big.Int, participants []util.Uint160, requiredApprovals *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createAgreement", creator, id, participants, requiredApprovals)
}

// CreateAgreementTransaction creates a transaction invoking `createAgreement` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateAgreementTransaction(creator util.Uint160, id *big.Int, participants []util.Uint160, requiredApprovals *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createAgreement", creator, id, participants, requiredApprovals)
}

// CreateAgreementUnsigned creates a transaction invoking `createAgreement` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateAgreementUnsigned(creator util.Uint160, id *big.Int, participants []util.Uint160, requiredApprovals *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createAgreement", nil, creator, id, participants, requiredApprovals)
}

// Approve creates a transaction invoking `approve` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Approve(id *big.Int, creator util.Uint160, approver util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "approve", id, creator, approver)
}

// ApproveTransaction creates a transaction invoking `approve` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ApproveTransaction(id *big.Int, creator util.Uint160, approver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "approve", id, creator, approver)
}

// ApproveUnsigned creates a transaction invoking `approve` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ApproveUnsigned(id *big.Int, creator util.Uint160, approver util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "approve", nil, id, creator, approver)
}

// MarkParticipantComplete creates a transaction invoking `markParticipantComplete` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) MarkParticipantComplete(id *big.Int, creator util.Uint160, participant util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "markParticipantComplete", id, creator, participant)
}

// MarkParticipantCompleteTransaction creates a transaction invoking `markParticipantComplete` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) MarkParticipantCompleteTransaction(id *big.Int, creator util.Uint160, participant util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "markParticipantComplete", id, creator, participant)
}

// MarkParticipantCompleteUnsigned creates a transaction invoking `markParticipantComplete` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) MarkParticipantCompleteUnsigned(id *big.Int, creator util.Uint160, participant util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "markParticipantComplete", nil, id, creator, participant)
}

// CancelAgreement creates a transaction invoking `cancelAgreement` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CancelAgreement(id *big.Int, creator util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "cancelAgreement", id, creator)
}

// CancelAgreementTransaction creates a transaction invoking `cancelAgreement` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CancelAgreementTransaction(id *big.Int, creator util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "cancelAgreement", id, creator)
}

// CancelAgreementUnsigned creates a transaction invoking `cancelAgreement` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CancelAgreementUnsigned(id *big.Int, creator util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "cancelAgreement", nil, id, creator)
}

// AttachReference creates a transaction invoking `attachReference` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AttachReference(id *big.Int, creator util.Uint160, updater util.Uint160, reference string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "attachReference", id, creator, updater, reference)
}

// AttachReferenceTransaction creates a transaction invoking `attachReference` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AttachReferenceTransaction(id *big.Int, creator util.Uint160, updater util.Uint160, reference string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "attachReference", id, creator, updater, reference)
}

// AttachReferenceUnsigned creates a transaction invoking `attachReference` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AttachReferenceUnsigned(id *big.Int, creator util.Uint160, updater util.Uint160, reference string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "attachReference", nil, id, creator, updater, reference)
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

// itemToAgreementAgreement converts stack item into *AgreementAgreement.
func itemToAgreementAgreement(item stackitem.Item, err error) (*AgreementAgreement, error) {
	if err != nil {
		return nil, err
	}
	var res = new(AgreementAgreement)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of AgreementAgreement from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *AgreementAgreement) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 9 {
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
	res.Participants, err = func (item stackitem.Item) ([]util.Uint160, error) {
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
		return fmt.Errorf("field Participants: %w", err)
	}

	index++
	res.Status, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}

	index++
	res.RequiredApprovals, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field RequiredApprovals: %w", err)
	}

	index++
	res.CurrentApprovals, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CurrentApprovals: %w", err)
	}

	index++
	res.Approvers, err = func (item stackitem.Item) ([]util.Uint160, error) {
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
		return fmt.Errorf("field Approvers: %w", err)
	}

	index++
	res.Reference, err = func (item stackitem.Item) (string, error) {
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
		return fmt.Errorf("field Reference: %w", err)
	}

	index++
	res.CreatedAt, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreatedAt: %w", err)
	}

	return nil
}

// AgreementCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "AgreementCreated" name from the provided [result.ApplicationLog].
func AgreementCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AgreementCreatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AgreementCreatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AgreementCreated" {
				continue
			}
			event := new(AgreementCreatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AgreementCreatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AgreementCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *AgreementCreatedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Id, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Id: %w", err)
	}

	index++
	e.Creator, err = func (item stackitem.Item) (util.Uint160, error) {
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

	return nil
}

// AgreementApprovedEventsFromApplicationLog retrieves a set of all emitted events
// with "AgreementApproved" name from the provided [result.ApplicationLog].
func AgreementApprovedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AgreementApprovedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AgreementApprovedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AgreementApproved" {
				continue
			}
			event := new(AgreementApprovedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AgreementApprovedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AgreementApprovedEvent or
// returns an error if it's not possible to do to so.
func (e *AgreementApprovedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Id, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Id: %w", err)
	}

	index++
	e.Creator, err = func (item stackitem.Item) (util.Uint160, error) {
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

// AgreementCompletedEventsFromApplicationLog retrieves a set of all emitted events
// with "AgreementCompleted" name from the provided [result.ApplicationLog].
func AgreementCompletedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AgreementCompletedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AgreementCompletedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AgreementCompleted" {
				continue
			}
			event := new(AgreementCompletedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AgreementCompletedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AgreementCompletedEvent or
// returns an error if it's not possible to do to so.
func (e *AgreementCompletedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Id, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Id: %w", err)
	}

	index++
	e.Creator, err = func (item stackitem.Item) (util.Uint160, error) {
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

	return nil
}

// AgreementCancelledEventsFromApplicationLog retrieves a set of all emitted events
// with "AgreementCancelled" name from the provided [result.ApplicationLog].
func AgreementCancelledEventsFromApplicationLog(log *result.ApplicationLog) ([]*AgreementCancelledEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AgreementCancelledEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AgreementCancelled" {
				continue
			}
			event := new(AgreementCancelledEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AgreementCancelledEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AgreementCancelledEvent or
// returns an error if it's not possible to do to so.
func (e *AgreementCancelledEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Id, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Id: %w", err)
	}

	index++
	e.Creator, err = func (item stackitem.Item) (util.Uint160, error) {
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

	return nil
}

// ReferenceAttachedEventsFromApplicationLog retrieves a set of all emitted events
// with "ReferenceAttached" name from the provided [result.ApplicationLog].
func ReferenceAttachedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReferenceAttachedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ReferenceAttachedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ReferenceAttached" {
				continue
			}
			event := new(ReferenceAttachedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ReferenceAttachedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ReferenceAttachedEvent or
// returns an error if it's not possible to do to so.
func (e *ReferenceAttachedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Id, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Id: %w", err)
	}

	index++
	e.Creator, err = func (item stackitem.Item) (util.Uint160, error) {
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
	e.Reference, err = func (item stackitem.Item) (string, error) {
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
		return fmt.Errorf("field Reference: %w", err)
	}

	return nil
}
