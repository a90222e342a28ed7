package common

// Messages of the panics thrown by the wallet contract. Every failed
// invocation faults with exactly one of these, so both tests and off-chain
// clients can tell the conditions apart.
const (
	// ErrNotOwner appears when a method restricted to the contract owner
	// is invoked by anybody else.
	ErrNotOwner = "only contract owner can access this method"
	// ErrNotPartner appears when a partner-gated method is invoked by an
	// account missing from the partner registry.
	ErrNotPartner = "caller is not a partner"
	// ErrWitnessFailed appears when the method must be called using a
	// certain account but the carrier transaction is not signed by it.
	ErrWitnessFailed = "witness check failed"
	// ErrInvalidAddress appears when a zero or malformed Hash160 is passed
	// where a real account address is required.
	ErrInvalidAddress = "invalid address"
	// ErrInvalidValue appears when a transfer request carries a negative
	// amount.
	ErrInvalidValue = "negative transfer value"
	// ErrPaused appears when a partner-facing method is invoked while the
	// owner keeps partner access paused.
	ErrPaused = "owner has paused partner access"
	// ErrTxNotFound appears when the referenced transaction id has never
	// been assigned.
	ErrTxNotFound = "transaction does not exist"
	// ErrAlreadyExecuted appears on any attempt to change a transaction
	// that has already been executed.
	ErrAlreadyExecuted = "transaction already executed"
	// ErrAlreadyConfirmed appears when a partner confirms the same
	// transaction twice without revoking in between.
	ErrAlreadyConfirmed = "transaction already confirmed by caller"
	// ErrNotConfirmed appears when a partner revokes a confirmation it
	// does not hold.
	ErrNotConfirmed = "transaction not confirmed by caller"
	// ErrThresholdNotMet appears when execution is attempted before enough
	// partners confirmed the transaction.
	ErrThresholdNotMet = "did not reach the desired confirmation count"
	// ErrInsufficientBalance appears when the wallet holds less GAS than
	// the transaction is about to transfer.
	ErrInsufficientBalance = "insufficient balance in contract"
	// ErrEmptyLedger appears when the transaction count is queried before
	// any submission.
	ErrEmptyLedger = "no transactions yet"
)
