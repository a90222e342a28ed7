package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const walletPath = "../contracts/wallet"

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func compileWalletContract(t *testing.T, e *neotest.Executor) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, walletPath, path.Join(walletPath, "config.yml"))
}

func deployWalletContract(t *testing.T, e *neotest.Executor, owner util.Uint160, partners ...util.Uint160) util.Uint160 {
	list := make([]interface{}, len(partners))
	for i := range partners {
		list[i] = partners[i]
	}

	args := make([]interface{}, 2)
	args[0] = owner
	args[1] = list

	c := compileWalletContract(t, e)
	e.DeployContract(t, c, args)
	return c.Hash
}

// walletInvoker is a deployed wallet contract together with the identities
// that were put into its registry at deploy time.
type walletInvoker struct {
	e    *neotest.Executor
	hash util.Uint160

	owner    neotest.Signer
	partners [2]neotest.Signer
}

// newWalletInvoker deploys the wallet with a fresh owner and the minimal
// registry of two extra partners.
func newWalletInvoker(t *testing.T) *walletInvoker {
	e := newExecutor(t)

	owner := e.NewAccount(t)
	p1 := e.NewAccount(t)
	p2 := e.NewAccount(t)

	h := deployWalletContract(t, e, owner.ScriptHash(), p1.ScriptHash(), p2.ScriptHash())

	return &walletInvoker{
		e:        e,
		hash:     h,
		owner:    owner,
		partners: [2]neotest.Signer{p1, p2},
	}
}

func (w *walletInvoker) withSigner(s neotest.Signer) *neotest.ContractInvoker {
	return w.e.NewInvoker(w.hash, s)
}

func (w *walletInvoker) asOwner() *neotest.ContractInvoker {
	return w.withSigner(w.owner)
}

// depositGAS tops up the wallet balance from the committee account.
func (w *walletInvoker) depositGAS(t *testing.T, amount int64) {
	gasInv := w.e.CommitteeInvoker(w.e.NativeHash(t, nativenames.Gas))
	gasInv.Invoke(t, true, "transfer", w.e.CommitteeHash, w.hash, amount, nil)
}

func (w *walletInvoker) gasBalanceOf(t *testing.T, acc util.Uint160) int64 {
	gasInv := w.e.CommitteeInvoker(w.e.NativeHash(t, nativenames.Gas))
	res, err := gasInv.TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)
	return res.Top().BigInt().Int64()
}
