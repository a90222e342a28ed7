// Package wallet contains RPC wrappers for MultiSig Wallet contract.
package wallet

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// WalletTransaction is a contract-specific wallet.Transaction type used by its methods.
type WalletTransaction struct {
	To            util.Uint160
	Value         *big.Int
	Data          []byte
	Executed      bool
	Confirmations *big.Int
}

// ContractOwnerChangeEvent represents "ContractOwnerChange" event emitted by the contract.
type ContractOwnerChangeEvent struct {
	PreviousOwner util.Uint160
	NewOwner      util.Uint160
}

// NewPartnerEvent represents "NewPartner" event emitted by the contract.
type NewPartnerEvent struct {
	Partner util.Uint160
}

// SubmitTransactionEvent represents "SubmitTransaction" event emitted by the contract.
type SubmitTransactionEvent struct {
	Sender util.Uint160
	ID     *big.Int
	To     util.Uint160
	Value  *big.Int
	Data   []byte
}

// ConfirmTransactionEvent represents "ConfirmTransaction" event emitted by the contract.
type ConfirmTransactionEvent struct {
	Sender util.Uint160
	ID     *big.Int
}

// RevokeConfirmationEvent represents "RevokeConfirmation" event emitted by the contract.
type RevokeConfirmationEvent struct {
	Sender util.Uint160
	ID     *big.Int
}

// ExecuteTransactionEvent represents "ExecuteTransaction" event emitted by the contract.
type ExecuteTransactionEvent struct {
	Sender util.Uint160
	ID     *big.Int
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
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// CalculateConfirmationLeft invokes `calculateConfirmationLeft` method of contract.
func (c *ContractReader) CalculateConfirmationLeft(id *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "calculateConfirmationLeft", id))
}

// GetContractOwner invokes `getContractOwner` method of contract.
func (c *ContractReader) GetContractOwner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "getContractOwner"))
}

// GetPartners invokes `getPartners` method of contract.
func (c *ContractReader) GetPartners() ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "getPartners"))
}

// GetTransaction invokes `getTransaction` method of contract.
func (c *ContractReader) GetTransaction(id *big.Int) (*WalletTransaction, error) {
	return itemToWalletTransaction(unwrap.Item(c.invoker.Call(c.hash, "getTransaction", id)))
}

// GetTransactionCount invokes `getTransactionCount` method of contract.
func (c *ContractReader) GetTransactionCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getTransactionCount"))
}

// IsPartnerOrNot invokes `isPartnerOrNot` method of contract.
func (c *ContractReader) IsPartnerOrNot(addr util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isPartnerOrNot", addr))
}

// Transactions invokes `transactions` method of contract.
func (c *ContractReader) Transactions() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "transactions"))
}

// TransactionsExpanded is similar to Transactions (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) TransactionsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "transactions", _numOfIteratorItems))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// AddNewPartner creates a transaction invoking `addNewPartner` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddNewPartner(partner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addNewPartner", partner)
}

// AddNewPartnerTransaction creates a transaction invoking `addNewPartner` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddNewPartnerTransaction(partner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addNewPartner", partner)
}

// AddNewPartnerUnsigned creates a transaction invoking `addNewPartner` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddNewPartnerUnsigned(partner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addNewPartner", nil, partner)
}

// ConfirmTransaction creates a transaction invoking `confirmTransaction` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ConfirmTransaction(from util.Uint160, id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "confirmTransaction", from, id)
}

// ConfirmTransactionTransaction creates a transaction invoking `confirmTransaction` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ConfirmTransactionTransaction(from util.Uint160, id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "confirmTransaction", from, id)
}

// ConfirmTransactionUnsigned creates a transaction invoking `confirmTransaction` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ConfirmTransactionUnsigned(from util.Uint160, id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "confirmTransaction", nil, from, id)
}

// ExecuteTransaction creates a transaction invoking `executeTransaction` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ExecuteTransaction(from util.Uint160, id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "executeTransaction", from, id)
}

// ExecuteTransactionTransaction creates a transaction invoking `executeTransaction` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ExecuteTransactionTransaction(from util.Uint160, id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "executeTransaction", from, id)
}

// ExecuteTransactionUnsigned creates a transaction invoking `executeTransaction` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ExecuteTransactionUnsigned(from util.Uint160, id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "executeTransaction", nil, from, id)
}

// PauseAllPartners creates a transaction invoking `pauseAllPartners` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) PauseAllPartners() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "pauseAllPartners")
}

// PauseAllPartnersTransaction creates a transaction invoking `pauseAllPartners` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) PauseAllPartnersTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "pauseAllPartners")
}

// PauseAllPartnersUnsigned creates a transaction invoking `pauseAllPartners` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) PauseAllPartnersUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "pauseAllPartners", nil)
}

// RevokeConfirmation creates a transaction invoking `revokeConfirmation` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RevokeConfirmation(from util.Uint160, id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "revokeConfirmation", from, id)
}

// RevokeConfirmationTransaction creates a transaction invoking `revokeConfirmation` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RevokeConfirmationTransaction(from util.Uint160, id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "revokeConfirmation", from, id)
}

// RevokeConfirmationUnsigned creates a transaction invoking `revokeConfirmation` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RevokeConfirmationUnsigned(from util.Uint160, id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "revokeConfirmation", nil, from, id)
}

// SetContractOwner creates a transaction invoking `setContractOwner` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetContractOwner(newOwner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setContractOwner", newOwner)
}

// SetContractOwnerTransaction creates a transaction invoking `setContractOwner` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetContractOwnerTransaction(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setContractOwner", newOwner)
}

// SetContractOwnerUnsigned creates a transaction invoking `setContractOwner` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetContractOwnerUnsigned(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setContractOwner", nil, newOwner)
}

// SubmitTransaction creates a transaction invoking `submitTransaction` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SubmitTransaction(from util.Uint160, to util.Uint160, value *big.Int, data []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "submitTransaction", from, to, value, data)
}

// SubmitTransactionTransaction creates a transaction invoking `submitTransaction` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SubmitTransactionTransaction(from util.Uint160, to util.Uint160, value *big.Int, data []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "submitTransaction", from, to, value, data)
}

// SubmitTransactionUnsigned creates a transaction invoking `submitTransaction` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SubmitTransactionUnsigned(from util.Uint160, to util.Uint160, value *big.Int, data []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "submitTransaction", nil, from, to, value, data)
}

// UnpauseAllPartners creates a transaction invoking `unpauseAllPartners` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UnpauseAllPartners() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unpauseAllPartners")
}

// UnpauseAllPartnersTransaction creates a transaction invoking `unpauseAllPartners` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UnpauseAllPartnersTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "unpauseAllPartners")
}

// UnpauseAllPartnersUnsigned creates a transaction invoking `unpauseAllPartners` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UnpauseAllPartnersUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "unpauseAllPartners", nil)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// itemToWalletTransaction converts stack item into *WalletTransaction.
func itemToWalletTransaction(item stackitem.Item, err error) (*WalletTransaction, error) {
	if err != nil {
		return nil, err
	}
	var res = new(WalletTransaction)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of WalletTransaction from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *WalletTransaction) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.To, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}

	index++
	res.Value, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Value: %w", err)
	}

	index++
	res.Data, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Data: %w", err)
	}

	index++
	res.Executed, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Executed: %w", err)
	}

	index++
	res.Confirmations, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Confirmations: %w", err)
	}

	return nil
}
