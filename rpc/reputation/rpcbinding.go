// Package reputation contains RPC wrappers for Agreement Reputation contract.
package reputation

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
)

// ReputationRecord is a contract-specific reputation.Record type used by its methods.
type ReputationRecord struct {
	Identity util.Uint160
	ContractsCreated *big.Int
	ContractsCompleted *big.Int
	ContractsApproved *big.Int
	TotalValueEscrowed *big.Int
	FirstActivity *big.Int
	LastActivity *big.Int
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
func (c *ContractReader) Get(identity util.Uint160) (*ReputationRecord, error) {
	return itemToReputationRecord(unwrap.Item(c.invoker.Call(c.hash, "get", identity)))
}

// IsInitialized invokes `isInitialized` method of contract.
func (c *ContractReader) IsInitialized(identity util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isInitialized", identity))
}

// IterateRecords invokes `iterateRecords` method of contract.
func (c *ContractReader) IterateRecords() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "iterateRecords"))
}

// IterateRecordsExpanded is similar to IterateRecords (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) IterateRecordsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "iterateRecords", _numOfIteratorItems))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Initialize creates a transaction invoking `initialize` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Initialize(identity util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "initialize", identity)
}

// InitializeTransaction creates a transaction invoking `initialize` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) InitializeTransaction(identity util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "initialize", identity)
}

// InitializeUnsigned creates a transaction invoking `initialize` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) InitializeUnsigned(identity util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "initialize", nil, identity)
}

// RecordActivity creates a transaction invoking `recordActivity` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RecordActivity(identity util.Uint160, kind *big.Int, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "recordActivity", identity, kind, amount)
}

// RecordActivityTransaction creates a transaction invoking `recordActivity` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RecordActivityTransaction(identity util.Uint160, kind *big.Int, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "recordActivity", identity, kind, amount)
}

// RecordActivityUnsigned creates a transaction invoking `recordActivity` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RecordActivityUnsigned(identity util.Uint160, kind *big.Int, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "recordActivity", nil, identity, kind, amount)
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

// itemToReputationRecord converts stack item into *ReputationRecord.
func itemToReputationRecord(item stackitem.Item, err error) (*ReputationRecord, error) {
	if err != nil {
		return nil, err
	}
	var res = new(ReputationRecord)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of ReputationRecord from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *ReputationRecord) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 7 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Identity, err = func (item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Identity: %w", err)
	}

	index++
	res.ContractsCreated, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ContractsCreated: %w", err)
	}

	index++
	res.ContractsCompleted, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ContractsCompleted: %w", err)
	}

	index++
	res.ContractsApproved, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ContractsApproved: %w", err)
	}

	index++
	res.TotalValueEscrowed, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TotalValueEscrowed: %w", err)
	}

	index++
	res.FirstActivity, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field FirstActivity: %w", err)
	}

	index++
	res.LastActivity, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field LastActivity: %w", err)
	}

	return nil
}
