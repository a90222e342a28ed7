package tests

import (
	"testing"

	"github.com/chainvault/multisig-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const oneGAS = 1_0000_0000

func hashItem(h util.Uint160) stackitem.Item {
	return stackitem.NewByteArray(h.BytesBE())
}

func TestDeploy(t *testing.T) {
	e := newExecutor(t)

	owner := e.NewAccount(t)
	p1 := e.NewAccount(t)
	p2 := e.NewAccount(t)

	c := compileWalletContract(t, e)

	e.DeployContractCheckFAULT(t, c,
		[]interface{}{util.Uint160{}, []interface{}{p1.ScriptHash(), p2.ScriptHash()}},
		common.ErrInvalidAddress)
	e.DeployContractCheckFAULT(t, c,
		[]interface{}{owner.ScriptHash(), []interface{}{p1.ScriptHash()}},
		"at least two partners are required")

	h := deployWalletContract(t, e, owner.ScriptHash(), p1.ScriptHash(), p2.ScriptHash())
	inv := e.CommitteeInvoker(h)

	inv.Invoke(t, hashItem(owner.ScriptHash()), "getContractOwner")
	inv.Invoke(t, stackitem.NewArray([]stackitem.Item{
		hashItem(owner.ScriptHash()),
		hashItem(p1.ScriptHash()),
		hashItem(p2.ScriptHash()),
	}), "getPartners")

	inv.Invoke(t, true, "isPartnerOrNot", owner.ScriptHash())
	inv.Invoke(t, true, "isPartnerOrNot", p1.ScriptHash())
	inv.Invoke(t, false, "isPartnerOrNot", e.CommitteeHash)

	inv.InvokeFail(t, common.ErrEmptyLedger, "getTransactionCount")

	inv.Invoke(t, common.Version, "version")
}

func TestSetContractOwner(t *testing.T) {
	w := newWalletInvoker(t)
	newOwner := w.e.NewAccount(t)

	cStranger := w.withSigner(newOwner)
	cStranger.InvokeFail(t, common.ErrNotOwner, "setContractOwner", newOwner.ScriptHash())

	cOwner := w.asOwner()
	cOwner.InvokeFail(t, common.ErrInvalidAddress, "setContractOwner", util.Uint160{})

	h := cOwner.Invoke(t, stackitem.Null{}, "setContractOwner", newOwner.ScriptHash())
	aer := cOwner.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "ContractOwnerChange", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		hashItem(w.owner.ScriptHash()),
		hashItem(newOwner.ScriptHash()),
	}), aer.Events[0].Item)

	cOwner.Invoke(t, hashItem(newOwner.ScriptHash()), "getContractOwner")

	// the previous owner keeps its registry seat but loses owner methods
	cOwner.Invoke(t, true, "isPartnerOrNot", w.owner.ScriptHash())
	cOwner.InvokeFail(t, common.ErrNotOwner, "addNewPartner", w.owner.ScriptHash())

	// the new owner is a partner by virtue of holding ownership
	cStranger.Invoke(t, int64(0), "submitTransaction",
		newOwner.ScriptHash(), w.partners[0].ScriptHash(), oneGAS, nil)
}

func TestAddNewPartner(t *testing.T) {
	w := newWalletInvoker(t)
	joiner := w.e.NewAccount(t)

	cJoiner := w.withSigner(joiner)
	cJoiner.InvokeFail(t, common.ErrNotOwner, "addNewPartner", joiner.ScriptHash())

	cOwner := w.asOwner()
	cOwner.InvokeFail(t, common.ErrInvalidAddress, "addNewPartner", util.Uint160{})

	cOwner.Invoke(t, false, "isPartnerOrNot", joiner.ScriptHash())

	h := cOwner.Invoke(t, stackitem.Null{}, "addNewPartner", joiner.ScriptHash())
	aer := cOwner.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "NewPartner", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		hashItem(joiner.ScriptHash()),
	}), aer.Events[0].Item)

	cOwner.Invoke(t, true, "isPartnerOrNot", joiner.ScriptHash())
	cJoiner.Invoke(t, int64(0), "submitTransaction",
		joiner.ScriptHash(), w.owner.ScriptHash(), oneGAS, nil)

	// the registry is append-only and keeps duplicates
	cOwner.Invoke(t, stackitem.Null{}, "addNewPartner", joiner.ScriptHash())
	res, err := cOwner.TestInvoke(t, "getPartners")
	require.NoError(t, err)
	arr, ok := res.Top().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	require.Equal(t, 5, len(arr))
}

func TestPauseUnpause(t *testing.T) {
	w := newWalletInvoker(t)

	cOwner := w.asOwner()
	cP1 := w.withSigner(w.partners[0])
	cP2 := w.withSigner(w.partners[1])

	cP1.InvokeFail(t, common.ErrNotOwner, "pauseAllPartners")
	cP1.InvokeFail(t, common.ErrNotOwner, "unpauseAllPartners")

	// a pending confirmed transfer, so that revocation can be attempted
	// under pause
	cP1.Invoke(t, int64(0), "submitTransaction",
		w.partners[0].ScriptHash(), w.partners[1].ScriptHash(), oneGAS, nil)
	cP1.Invoke(t, stackitem.Null{}, "confirmTransaction", w.partners[0].ScriptHash(), 0)

	cOwner.Invoke(t, stackitem.Null{}, "pauseAllPartners")

	cP1.InvokeFail(t, common.ErrPaused, "submitTransaction",
		w.partners[0].ScriptHash(), w.partners[1].ScriptHash(), oneGAS, nil)
	cP1.InvokeFail(t, common.ErrPaused, "revokeConfirmation", w.partners[0].ScriptHash(), 0)

	// confirmations keep flowing while partner writes are paused
	cP2.Invoke(t, stackitem.Null{}, "confirmTransaction", w.partners[1].ScriptHash(), 0)

	// owner methods are not affected by the pause flag
	joiner := w.e.NewAccount(t)
	cOwner.Invoke(t, stackitem.Null{}, "addNewPartner", joiner.ScriptHash())

	cOwner.Invoke(t, stackitem.Null{}, "unpauseAllPartners")

	cP1.Invoke(t, int64(1), "submitTransaction",
		w.partners[0].ScriptHash(), w.partners[1].ScriptHash(), oneGAS, nil)
	cP1.Invoke(t, stackitem.Null{}, "revokeConfirmation", w.partners[0].ScriptHash(), 0)
}

func TestSubmitTransaction(t *testing.T) {
	w := newWalletInvoker(t)
	stranger := w.e.NewAccount(t)

	cStranger := w.withSigner(stranger)
	cStranger.InvokeFail(t, common.ErrNotPartner, "submitTransaction",
		stranger.ScriptHash(), w.owner.ScriptHash(), oneGAS, nil)
	cStranger.InvokeFail(t, common.ErrWitnessFailed, "submitTransaction",
		w.partners[0].ScriptHash(), w.owner.ScriptHash(), oneGAS, nil)

	cP1 := w.withSigner(w.partners[0])
	cP1.InvokeFail(t, common.ErrInvalidAddress, "submitTransaction",
		w.partners[0].ScriptHash(), util.Uint160{}, oneGAS, nil)
	cP1.InvokeFail(t, common.ErrInvalidValue, "submitTransaction",
		w.partners[0].ScriptHash(), w.owner.ScriptHash(), -1, nil)

	h := cP1.Invoke(t, int64(0), "submitTransaction",
		w.partners[0].ScriptHash(), w.owner.ScriptHash(), oneGAS, []byte{1, 2, 3})
	aer := cP1.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "SubmitTransaction", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		hashItem(w.partners[0].ScriptHash()),
		stackitem.Make(0),
		hashItem(w.owner.ScriptHash()),
		stackitem.Make(oneGAS),
		stackitem.NewByteArray([]byte{1, 2, 3}),
	}), aer.Events[0].Item)

	cP1.Invoke(t, int64(1), "getTransactionCount")
	cP1.Invoke(t, int64(1), "calculateConfirmationLeft", 0)

	// ids are sequential
	cP1.Invoke(t, int64(1), "submitTransaction",
		w.partners[0].ScriptHash(), w.owner.ScriptHash(), oneGAS, nil)
	cP1.Invoke(t, int64(2), "getTransactionCount")
}

func TestGetTransaction(t *testing.T) {
	w := newWalletInvoker(t)

	cP1 := w.withSigner(w.partners[0])
	cP1.InvokeFail(t, common.ErrTxNotFound, "getTransaction", 0)

	cP1.Invoke(t, int64(0), "submitTransaction",
		w.partners[0].ScriptHash(), w.partners[1].ScriptHash(), oneGAS, []byte("note"))

	res, err := cP1.TestInvoke(t, "getTransaction", 0)
	require.NoError(t, err)
	fields, ok := res.Top().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	require.Equal(t, 5, len(fields))

	to, err := fields[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, w.partners[1].ScriptHash().BytesBE(), to)

	value, err := fields[1].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, oneGAS, value.Int64())

	data, err := fields[2].TryBytes()
	require.NoError(t, err)
	require.Equal(t, []byte("note"), data)

	executed, err := fields[3].TryBool()
	require.NoError(t, err)
	require.False(t, executed)

	confirmations, err := fields[4].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, 0, confirmations.Int64())
}

func TestConfirmTransaction(t *testing.T) {
	w := newWalletInvoker(t)
	stranger := w.e.NewAccount(t)

	cOwner := w.asOwner()
	cP1 := w.withSigner(w.partners[0])

	cP1.InvokeFail(t, common.ErrTxNotFound, "confirmTransaction", w.partners[0].ScriptHash(), 0)

	cP1.Invoke(t, int64(0), "submitTransaction",
		w.partners[0].ScriptHash(), w.partners[1].ScriptHash(), oneGAS, nil)

	cStranger := w.withSigner(stranger)
	cStranger.InvokeFail(t, common.ErrNotPartner, "confirmTransaction", stranger.ScriptHash(), 0)
	cStranger.InvokeFail(t, common.ErrWitnessFailed, "confirmTransaction", w.partners[0].ScriptHash(), 0)

	h := cOwner.Invoke(t, stackitem.Null{}, "confirmTransaction", w.owner.ScriptHash(), 0)
	aer := cOwner.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "ConfirmTransaction", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		hashItem(w.owner.ScriptHash()),
		stackitem.Make(0),
	}), aer.Events[0].Item)

	cOwner.Invoke(t, int64(0), "calculateConfirmationLeft", 0)
	cOwner.InvokeFail(t, common.ErrAlreadyConfirmed, "confirmTransaction", w.owner.ScriptHash(), 0)

	w.depositGAS(t, 2*oneGAS)
	cOwner.Invoke(t, stackitem.Null{}, "executeTransaction", w.owner.ScriptHash(), 0)
	cP1.InvokeFail(t, common.ErrAlreadyExecuted, "confirmTransaction", w.partners[0].ScriptHash(), 0)
}

func TestRevokeConfirmation(t *testing.T) {
	w := newWalletInvoker(t)

	cOwner := w.asOwner()
	cP1 := w.withSigner(w.partners[0])

	cP1.InvokeFail(t, common.ErrTxNotFound, "revokeConfirmation", w.partners[0].ScriptHash(), 0)

	cP1.Invoke(t, int64(0), "submitTransaction",
		w.partners[0].ScriptHash(), w.partners[1].ScriptHash(), oneGAS, nil)
	cP1.InvokeFail(t, common.ErrNotConfirmed, "revokeConfirmation", w.partners[0].ScriptHash(), 0)

	cP1.Invoke(t, stackitem.Null{}, "confirmTransaction", w.partners[0].ScriptHash(), 0)
	cOwner.Invoke(t, stackitem.Null{}, "confirmTransaction", w.owner.ScriptHash(), 0)

	h := cP1.Invoke(t, stackitem.Null{}, "revokeConfirmation", w.partners[0].ScriptHash(), 0)
	aer := cP1.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "RevokeConfirmation", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		hashItem(w.partners[0].ScriptHash()),
		stackitem.Make(0),
	}), aer.Events[0].Item)

	// the other partner's confirmation stays, the revoked one can return
	cP1.Invoke(t, int64(0), "calculateConfirmationLeft", 0)
	cP1.InvokeFail(t, common.ErrNotConfirmed, "revokeConfirmation", w.partners[0].ScriptHash(), 0)
	cP1.Invoke(t, stackitem.Null{}, "confirmTransaction", w.partners[0].ScriptHash(), 0)

	w.depositGAS(t, 2*oneGAS)
	cOwner.Invoke(t, stackitem.Null{}, "executeTransaction", w.owner.ScriptHash(), 0)
	cP1.InvokeFail(t, common.ErrAlreadyExecuted, "revokeConfirmation", w.partners[0].ScriptHash(), 0)
}

func TestCalculateConfirmationLeft(t *testing.T) {
	w := newWalletInvoker(t)

	cOwner := w.asOwner()
	cP1 := w.withSigner(w.partners[0])

	cP1.InvokeFail(t, common.ErrTxNotFound, "calculateConfirmationLeft", 0)

	// 3 registered identities, threshold floor(0.6*3) = 1
	cP1.Invoke(t, int64(0), "submitTransaction",
		w.partners[0].ScriptHash(), w.partners[1].ScriptHash(), oneGAS, nil)
	cP1.Invoke(t, int64(1), "calculateConfirmationLeft", 0)

	cP1.Invoke(t, stackitem.Null{}, "confirmTransaction", w.partners[0].ScriptHash(), 0)
	cP1.Invoke(t, int64(0), "calculateConfirmationLeft", 0)

	// growing the registry to 6 raises the threshold of the pending
	// transfer to floor(0.6*6) = 3
	for i := 0; i < 3; i++ {
		acc := w.e.NewAccount(t)
		cOwner.Invoke(t, stackitem.Null{}, "addNewPartner", acc.ScriptHash())
	}
	cP1.Invoke(t, int64(2), "calculateConfirmationLeft", 0)

	cOwner.Invoke(t, stackitem.Null{}, "confirmTransaction", w.owner.ScriptHash(), 0)
	cP1.Invoke(t, int64(1), "calculateConfirmationLeft", 0)
}

func TestExecuteTransaction(t *testing.T) {
	w := newWalletInvoker(t)
	recipient := util.Uint160{1, 2, 3, 4, 5}

	cOwner := w.asOwner()
	cP1 := w.withSigner(w.partners[0])

	cP1.InvokeFail(t, common.ErrTxNotFound, "executeTransaction", w.partners[0].ScriptHash(), 0)

	cP1.Invoke(t, int64(0), "submitTransaction",
		w.partners[0].ScriptHash(), recipient, oneGAS, nil)
	cP1.InvokeFail(t, common.ErrThresholdNotMet, "executeTransaction", w.partners[0].ScriptHash(), 0)

	cP1.Invoke(t, stackitem.Null{}, "confirmTransaction", w.partners[0].ScriptHash(), 0)
	cP1.InvokeFail(t, common.ErrInsufficientBalance, "executeTransaction", w.partners[0].ScriptHash(), 0)

	w.depositGAS(t, 3*oneGAS)

	// anyone with a valid witness may trigger an execution
	stranger := w.e.NewAccount(t)
	cStranger := w.withSigner(stranger)
	cStranger.InvokeFail(t, common.ErrWitnessFailed, "executeTransaction", w.partners[0].ScriptHash(), 0)

	h := cStranger.Invoke(t, stackitem.Null{}, "executeTransaction", stranger.ScriptHash(), 0)
	aer := cStranger.CheckHalt(t, h)
	require.Equal(t, 2, len(aer.Events))
	require.Equal(t, "Transfer", aer.Events[0].Name)
	require.Equal(t, "ExecuteTransaction", aer.Events[1].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		hashItem(stranger.ScriptHash()),
		stackitem.Make(0),
	}), aer.Events[1].Item)

	require.EqualValues(t, oneGAS, w.gasBalanceOf(t, recipient))
	require.EqualValues(t, 2*oneGAS, w.gasBalanceOf(t, w.hash))

	res, err := cP1.TestInvoke(t, "getTransaction", 0)
	require.NoError(t, err)
	fields, ok := res.Top().Item().Value().([]stackitem.Item)
	require.True(t, ok)
	executed, err := fields[3].TryBool()
	require.NoError(t, err)
	require.True(t, executed)

	cStranger.InvokeFail(t, common.ErrAlreadyExecuted, "executeTransaction", stranger.ScriptHash(), 0)
	cOwner.Invoke(t, int64(0), "calculateConfirmationLeft", 0)
}

func TestDeposit(t *testing.T) {
	w := newWalletInvoker(t)

	require.EqualValues(t, 0, w.gasBalanceOf(t, w.hash))
	w.depositGAS(t, 5*oneGAS)
	require.EqualValues(t, 5*oneGAS, w.gasBalanceOf(t, w.hash))

	// only GAS is accepted, other NEP-17 transfers are aborted
	neoInv := w.e.CommitteeInvoker(w.e.NativeHash(t, nativenames.Neo))
	tx := neoInv.PrepareInvoke(t, "transfer", w.e.CommitteeHash, w.hash, 10, nil)
	w.e.AddNewBlock(t, tx)
	w.e.CheckFault(t, tx.Hash(), "ABORT")
}

func TestTransactionsIterator(t *testing.T) {
	w := newWalletInvoker(t)

	cP1 := w.withSigner(w.partners[0])

	res, err := cP1.TestInvoke(t, "transactions")
	require.NoError(t, err)
	require.Empty(t, iteratorToArray(res.Pop().Value().(*storage.Iterator)))

	cP1.Invoke(t, int64(0), "submitTransaction",
		w.partners[0].ScriptHash(), w.partners[1].ScriptHash(), oneGAS, nil)
	cP1.Invoke(t, int64(1), "submitTransaction",
		w.partners[0].ScriptHash(), w.owner.ScriptHash(), 2*oneGAS, nil)

	res, err = cP1.TestInvoke(t, "transactions")
	require.NoError(t, err)
	items := iteratorToArray(res.Pop().Value().(*storage.Iterator))
	require.Equal(t, 2, len(items))

	first, ok := items[0].Value().([]stackitem.Item)
	require.True(t, ok)
	to, err := first[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, w.partners[1].ScriptHash().BytesBE(), to)
}
