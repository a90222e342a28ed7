package wallet

import (
	"github.com/chainvault/multisig-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Transaction is a transfer request kept by the wallet until enough partners
// confirm it and somebody executes it.
type Transaction struct {
	// Destination account of the transfer.
	To interop.Hash160
	// Amount of GAS to transfer.
	Value int
	// Opaque payload attached at submission time.
	Data []byte
	// Executed is set once, after a successful transfer.
	Executed bool
	// Confirmations is the number of live partner confirmations.
	Confirmations int
}

const (
	ownerKey    = "contractOwner"
	pausedKey   = "paused"
	partnersKey = "partners"
	txCountKey  = "count"

	txKeyPrefix           = "t"
	confirmationKeyPrefix = "c"

	// Partners configured at deploy in addition to the owner.
	minInitialPartners = 2

	// Confirmation threshold is floor(0.6 * registry size), recomputed
	// from the live registry on every query.
	thresholdNumerator   = 6
	thresholdDenominator = 10
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner    interop.Hash160
		partners []interop.Hash160
	})

	ctx := storage.GetContext()

	if !isValidAddress(args.owner) {
		panic(common.ErrInvalidAddress)
	}
	if len(args.partners) < minInitialPartners {
		panic("at least two partners are required")
	}

	registry := [][]byte{args.owner}
	for i := range args.partners {
		p := args.partners[i]
		if !isValidAddress(p) {
			panic(common.ErrInvalidAddress)
		}
		registry = append(registry, p)
	}

	storage.Put(ctx, ownerKey, args.owner)
	storage.Put(ctx, pausedKey, false)
	common.SetSerialized(ctx, partnersKey, registry)

	runtime.Log("wallet contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(getOwner(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("wallet contract updated")
}

// GetContractOwner returns the address of the current contract owner.
func GetContractOwner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getOwner(ctx)
}

// SetContractOwner transfers contract ownership to newOwner. Can be invoked
// only by the current owner; newOwner must be a real account address.
//
// Produces ContractOwnerChange notification.
func SetContractOwner(newOwner interop.Hash160) {
	ctx := storage.GetContext()
	owner := getOwner(ctx)
	common.CheckOwnerWitness(owner)

	if !isValidAddress(newOwner) {
		panic(common.ErrInvalidAddress)
	}

	storage.Put(ctx, ownerKey, newOwner)

	runtime.Log("contract owner has been changed")
	runtime.Notify("ContractOwnerChange", owner, newOwner)
}

// AddNewPartner appends the given address to the partner registry. Can be
// invoked only by the contract owner. The registry never shrinks and
// duplicates are not rejected; added partners immediately count towards the
// confirmation threshold of every pending transaction.
//
// Produces NewPartner notification.
func AddNewPartner(partner interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	if !isValidAddress(partner) {
		panic(common.ErrInvalidAddress)
	}

	partners := common.GetList(ctx, partnersKey)
	partners = append(partners, partner)
	common.SetSerialized(ctx, partnersKey, partners)

	runtime.Notify("NewPartner", partner)
}

// PauseAllPartners blocks transaction submission and confirmation revocation
// until UnpauseAllPartners is invoked. Can be invoked only by the contract
// owner. Owner-only methods are not affected.
func PauseAllPartners() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	storage.Put(ctx, pausedKey, true)
	runtime.Log("partner access has been paused")
}

// UnpauseAllPartners restores partner access after PauseAllPartners. Can be
// invoked only by the contract owner.
func UnpauseAllPartners() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	storage.Put(ctx, pausedKey, false)
	runtime.Log("partner access has been restored")
}

// IsPartnerOrNot returns true if the given address is the contract owner or
// is present in the partner registry.
func IsPartnerOrNot(addr interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return isPartner(ctx, addr)
}

// GetPartners returns the partner registry in insertion order. The registry
// is seeded at deploy with the owner followed by the configured partners.
func GetPartners() [][]byte {
	ctx := storage.GetReadOnlyContext()
	return common.GetList(ctx, partnersKey)
}

// SubmitTransaction appends a new transfer request of value GAS to the given
// destination and returns its id. Ids are sequential and zero-based. Can be
// invoked only by a partner and only while partner access is not paused.
//
// Produces SubmitTransaction notification.
func SubmitTransaction(from, to interop.Hash160, value int, data []byte) int {
	ctx := storage.GetContext()
	common.CheckWitness(from)

	if !isPartner(ctx, from) {
		panic(common.ErrNotPartner)
	}
	if isPaused(ctx) {
		panic(common.ErrPaused)
	}
	if !isValidAddress(to) {
		panic(common.ErrInvalidAddress)
	}
	if value < 0 {
		panic(common.ErrInvalidValue)
	}

	id := 0
	if cnt := storage.Get(ctx, txCountKey); cnt != nil {
		id = cnt.(int)
	}

	t := Transaction{
		To:            to,
		Value:         value,
		Data:          data,
		Executed:      false,
		Confirmations: 0,
	}
	common.SetSerialized(ctx, txKey(id), t)
	storage.Put(ctx, txCountKey, id+1)

	runtime.Log("transfer request has been submitted")
	runtime.Notify("SubmitTransaction", from, id, to, value, data)

	return id
}

// GetTransaction returns the transfer request with the given id.
func GetTransaction(id int) Transaction {
	ctx := storage.GetReadOnlyContext()
	return getTransaction(ctx, id)
}

// GetTransactionCount returns the number of submitted transfer requests. It
// panics if nothing has been submitted yet.
func GetTransactionCount() int {
	ctx := storage.GetReadOnlyContext()

	cnt := storage.Get(ctx, txCountKey)
	if cnt == nil {
		panic(common.ErrEmptyLedger)
	}
	return cnt.(int)
}

// Transactions returns an iterator over all submitted transfer requests in
// id order.
func Transactions() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, txKeyPrefix, storage.ValuesOnly|storage.DeserializeValues)
}

// ConfirmTransaction records the partner's confirmation of the given
// transaction. A partner holds at most one confirmation per transaction;
// confirming again without revoking in between fails. Confirmation stays
// available while partner access is paused.
//
// Produces ConfirmTransaction notification.
func ConfirmTransaction(from interop.Hash160, id int) {
	ctx := storage.GetContext()
	common.CheckWitness(from)

	if !isPartner(ctx, from) {
		panic(common.ErrNotPartner)
	}

	t := getTransaction(ctx, id)
	if t.Executed {
		panic(common.ErrAlreadyExecuted)
	}

	ck := confirmationKey(id, from)
	if storage.Get(ctx, ck) != nil {
		panic(common.ErrAlreadyConfirmed)
	}

	storage.Put(ctx, ck, true)
	t.Confirmations = t.Confirmations + 1
	common.SetSerialized(ctx, txKey(id), t)

	runtime.Notify("ConfirmTransaction", from, id)
}

// RevokeConfirmation withdraws the partner's confirmation of the given
// transaction. The partner may confirm the transaction again afterwards. Can
// be invoked only while partner access is not paused.
//
// Produces RevokeConfirmation notification.
func RevokeConfirmation(from interop.Hash160, id int) {
	ctx := storage.GetContext()
	common.CheckWitness(from)

	if !isPartner(ctx, from) {
		panic(common.ErrNotPartner)
	}
	if isPaused(ctx) {
		panic(common.ErrPaused)
	}

	t := getTransaction(ctx, id)
	if t.Executed {
		panic(common.ErrAlreadyExecuted)
	}

	ck := confirmationKey(id, from)
	if storage.Get(ctx, ck) == nil {
		panic(common.ErrNotConfirmed)
	}

	storage.Delete(ctx, ck)
	t.Confirmations = t.Confirmations - 1
	common.SetSerialized(ctx, txKey(id), t)

	runtime.Notify("RevokeConfirmation", from, id)
}

// CalculateConfirmationLeft returns how many partner confirmations the given
// transaction still needs before it can be executed. The threshold is
// recomputed from the current registry size on every call, so growing the
// registry raises the requirement of already pending transactions.
func CalculateConfirmationLeft(id int) int {
	ctx := storage.GetReadOnlyContext()
	return confirmationLeft(ctx, getTransaction(ctx, id))
}

// ExecuteTransaction transfers the requested GAS amount to the destination of
// the given transaction and marks it executed. It requires the confirmation
// threshold to be met and the wallet to hold enough GAS; any account may
// trigger it. A transaction is executed at most once, and a failed transfer
// rolls the whole invocation back.
//
// Produces ExecuteTransaction notification.
func ExecuteTransaction(from interop.Hash160, id int) {
	ctx := storage.GetContext()
	common.CheckWitness(from)

	t := getTransaction(ctx, id)
	if t.Executed {
		panic(common.ErrAlreadyExecuted)
	}
	if confirmationLeft(ctx, t) != 0 {
		panic(common.ErrThresholdNotMet)
	}

	self := runtime.GetExecutingScriptHash()
	if gas.BalanceOf(self) < t.Value {
		panic(common.ErrInsufficientBalance)
	}

	t.Executed = true
	common.SetSerialized(ctx, txKey(id), t)

	if !gas.Transfer(self, t.To, t.Value, nil) {
		panic("failed to transfer funds, aborting")
	}

	runtime.Log("transaction has been executed")
	runtime.Notify("ExecuteTransaction", from, id)
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Deposits are unconditional: anybody may top up the wallet balance at any
// time, but only with GAS.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		common.AbortWithMessage("wallet contract accepts GAS only")
	}
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

func isPaused(ctx storage.Context) bool {
	return storage.Get(ctx, pausedKey).(bool)
}

// isPartner reports whether addr is authorized to submit, confirm and revoke
// transfer requests. The owner always is, even if it never appears in the
// registry (e.g. after an ownership transfer).
func isPartner(ctx storage.Context, addr interop.Hash160) bool {
	if addr.Equals(getOwner(ctx)) {
		return true
	}

	partners := common.GetList(ctx, partnersKey)
	for i := range partners {
		if addr.Equals(interop.Hash160(partners[i])) {
			return true
		}
	}
	return false
}

func confirmationLeft(ctx storage.Context, t Transaction) int {
	partners := common.GetList(ctx, partnersKey)
	threshold := len(partners) * thresholdNumerator / thresholdDenominator

	left := threshold - t.Confirmations
	if left < 0 {
		return 0
	}
	return left
}

func getTransaction(ctx storage.Context, id int) Transaction {
	data := storage.Get(ctx, txKey(id))
	if data == nil {
		panic(common.ErrTxNotFound)
	}
	return std.Deserialize(data.([]byte)).(Transaction)
}

func txKey(id int) string {
	return txKeyPrefix + std.Itoa(id, 10)
}

func confirmationKey(id int, partner interop.Hash160) string {
	return confirmationKeyPrefix + std.Itoa(id, 10) + string(partner)
}

func isValidAddress(addr interop.Hash160) bool {
	if len(addr) != interop.Hash160Len {
		return false
	}
	return !addr.Equals(interop.Hash160(make([]byte, interop.Hash160Len)))
}
