package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/util"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	chainLabel := flag.String("label", "", "Label of the blockchain environment (e.g. 'testnet')")
	reputationAddress := flag.String("reputation", "", "LE hex address of the Reputation contract")
	agreementAddress := flag.String("agreement", "", "LE hex address of the Agreement contract")
	escrowAddress := flag.String("escrow", "", "LE hex address of the Escrow contract")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *chainLabel == "":
		log.Fatal("missing blockchain label")
	}

	contracts := make(map[string]util.Uint160, 3)

	for name, flagValue := range map[string]*string{
		"reputation": reputationAddress,
		"agreement":  agreementAddress,
		"escrow":     escrowAddress,
	} {
		if *flagValue == "" {
			log.Fatalf("missing address of the '%s' contract", name)
		}

		h, err := util.Uint160DecodeStringLE(*flagValue)
		if err != nil {
			log.Fatal(fmt.Errorf("decode address of the '%s' contract: %w", name, err))
		}

		contracts[name] = h
	}

	const rootDir = "testdata"

	err := os.MkdirAll(rootDir, 0700)
	if err != nil {
		log.Fatal(fmt.Errorf("create root dir: %w", err))
	}

	err = _dump(*neoRPCEndpoint, rootDir, *chainLabel, contracts)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("agreement suite contracts are successfully dumped to '%s/'\n", rootDir)
}

func _dump(neoBlockchainRPCEndpoint, rootDir, label string, contracts map[string]util.Uint160) error {
	b, err := newRemoteBlockChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	d, err := newDumper(rootDir, label, b.currentBlock)
	if err != nil {
		return fmt.Errorf("init local dumper: %w", err)
	}

	defer d.close()

	err = overtakeContracts(b, d, contracts)
	if err != nil {
		return err
	}

	err = d.flush()
	if err != nil {
		return fmt.Errorf("flush dump: %w", err)
	}

	return nil
}

func overtakeContracts(from *remoteBlockchain, to *dumper, contracts map[string]util.Uint160) error {
	for _, name := range []string{"reputation", "agreement", "escrow"} {
		log.Printf("Processing contract '%s'...\n", name)

		ctr, err := from.rpc.GetContractStateByHash(contracts[name])
		if err != nil {
			return fmt.Errorf("get '%s' contract state: %w", name, err)
		}

		to.addContract(name, *ctr)

		err = from.iterateContractStorage(ctr.Hash, func(key, value []byte) error {
			return to.writeStorageItem(name, key, value)
		})
		if err != nil {
			return fmt.Errorf("iterate '%s' contract storage: %w", name, err)
		}
	}

	return nil
}
