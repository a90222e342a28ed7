/*
Package wallet contains implementation of the MultiSig Wallet contract.

The wallet keeps custody of a shared pool of GAS on behalf of a fixed group of
partners with one distinguished owner. Any partner may submit a transfer
request; the request stays pending until at least 60% of the registry
(floor(0.6 * registry size)) confirmed it, after which anybody may trigger the
execution that moves the funds. Partners may revoke their confirmation at any
point before execution, and an executed request becomes immutable.

The owner administers the wallet: it replaces itself, appends partners to the
registry (the registry never shrinks) and may pause partner access, which
blocks submission and revocation until it is unpaused. The owner is implicitly
a partner for all partner-gated methods.

Deposits need no authorization: the wallet accepts GAS from anybody through
the standard NEP-17 payment callback and rejects every other token.

Every failed invocation faults with a distinct message, see the common
package, and reverts all of its changes, including the executed flag of a
transfer whose GAS movement did not succeed.

# Contract notifications

ContractOwnerChange notification. Produced when the owner hands the contract
over to a new address.

	ContractOwnerChange:
	  - name: previousOwner
	    type: Hash160
	  - name: newOwner
	    type: Hash160

NewPartner notification. Produced when the owner appends an address to the
partner registry.

	NewPartner:
	  - name: partner
	    type: Hash160

SubmitTransaction notification. Produced when a partner submits a new transfer
request.

	SubmitTransaction:
	  - name: sender
	    type: Hash160
	  - name: id
	    type: Integer
	  - name: to
	    type: Hash160
	  - name: value
	    type: Integer
	  - name: data
	    type: ByteArray

ConfirmTransaction notification. Produced when a partner confirms a pending
transfer request.

	ConfirmTransaction:
	  - name: sender
	    type: Hash160
	  - name: id
	    type: Integer

RevokeConfirmation notification. Produced when a partner withdraws a
confirmation it gave earlier.

	RevokeConfirmation:
	  - name: sender
	    type: Hash160
	  - name: id
	    type: Integer

ExecuteTransaction notification. Produced when a fully confirmed transfer
request has been executed.

	ExecuteTransaction:
	  - name: sender
	    type: Hash160
	  - name: id
	    type: Integer
*/
package wallet
