package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/chainvault/multisig-contract/rpc/wallet"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep17"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractAddr := flag.String("contract", "", "Address or LE script hash of the deployed wallet contract")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractAddr == "":
		log.Fatal("missing wallet contract address")
	}

	h, err := parseContractAddress(*contractAddr)
	if err != nil {
		log.Fatal(fmt.Errorf("parse wallet contract address: %w", err))
	}

	err = inspect(*neoRPCEndpoint, h)
	if err != nil {
		log.Fatal(err)
	}
}

// parseContractAddress accepts both the Neo address and the little-endian hex
// forms of the contract script hash.
func parseContractAddress(s string) (util.Uint160, error) {
	h, err := address.StringToUint160(s)
	if err == nil {
		return h, nil
	}
	return util.Uint160DecodeStringLE(s)
}

// inspect dials the Neo RPC server and prints the current wallet state: the
// owner, the partner registry, the pause flag, the GAS balance and every
// submitted transfer request together with the confirmations it still needs.
func inspect(neoRPCEndpoint string, contractHash util.Uint160) error {
	c, err := rpcclient.New(context.Background(), neoRPCEndpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("RPC client dial: %w", err)
	}

	defer c.Close()

	inv := invoker.New(c, nil)
	reader := wallet.NewReader(inv, contractHash)

	owner, err := reader.GetContractOwner()
	if err != nil {
		return fmt.Errorf("get contract owner: %w", err)
	}
	fmt.Printf("owner: %s\n", address.Uint160ToString(owner))

	partners, err := reader.GetPartners()
	if err != nil {
		return fmt.Errorf("get partners: %w", err)
	}
	fmt.Printf("partners (%d):\n", len(partners))
	for i := range partners {
		fmt.Printf("  %s\n", address.Uint160ToString(partners[i]))
	}

	balance, err := nep17.NewReader(inv, gas.Hash).BalanceOf(contractHash)
	if err != nil {
		return fmt.Errorf("get wallet GAS balance: %w", err)
	}
	fmt.Printf("balance: %s GAS\n", fixedn.ToString(balance, 8))

	count, err := reader.GetTransactionCount()
	if err != nil {
		// A wallet nothing has been submitted to reports no count at all.
		fmt.Println("transactions: none submitted yet")
		return nil
	}

	fmt.Printf("transactions (%d):\n", count)
	for id := int64(0); id < count.Int64(); id++ {
		err := printTransaction(reader, id)
		if err != nil {
			return fmt.Errorf("transaction %d: %w", id, err)
		}
	}

	return nil
}

func printTransaction(reader *wallet.ContractReader, id int64) error {
	t, err := reader.GetTransaction(big.NewInt(id))
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}

	status := "pending"
	if t.Executed {
		status = "executed"
	}

	fmt.Printf("  #%d -> %s, %s GAS, %s, %d confirmation(s)",
		id, address.Uint160ToString(t.To), fixedn.ToString(t.Value, 8),
		status, t.Confirmations)

	if !t.Executed {
		left, err := reader.CalculateConfirmationLeft(big.NewInt(id))
		if err != nil {
			return fmt.Errorf("calculate confirmations left: %w", err)
		}
		fmt.Printf(", %d more needed", left)
	}

	fmt.Println()
	return nil
}
