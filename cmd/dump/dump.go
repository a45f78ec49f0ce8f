package main

import (
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

// dumper writes states of the Neo smart contracts pulled from the chain.
// Output file format:
//
//	'<label>-<block>-contracts.json': JSON array of contracts' states
//	'<label>-<block>-storage.csv': CSV of contracts' storages
//
// Storage CSV lines are 'name,key,value' where name stands for contract name
// and binary key-value are base64-encoded.
type dumper struct {
	contractsFile *os.File
	storageFile   *os.File

	contracts []dumpContractState

	storageItemsCSV *csv.Writer
}

type dumpContractState struct {
	Name  string         `json:"name"`
	State state.Contract `json:"state"`
}

// newDumper returns dumper writing into given directory. The dump is
// identified by the chain label and the block at which the state was pulled.
// Resulting dumper should be closed when finished working with it.
//
// newDumper fails if a dump with the same identity already exists.
func newDumper(dir, label string, block uint32) (*dumper, error) {
	prefix := filepath.Join(dir, label+"-"+strconv.FormatUint(uint64(block), 10))

	const fileMode = 0600

	contractsFile, err := os.OpenFile(prefix+"-contracts.json", os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if err != nil {
		return nil, fmt.Errorf("create contracts file: %w", err)
	}

	storageFile, err := os.OpenFile(prefix+"-storage.csv", os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if err != nil {
		contractsFile.Close()
		return nil, fmt.Errorf("create storage file: %w", err)
	}

	return &dumper{
		contractsFile:   contractsFile,
		storageFile:     storageFile,
		storageItemsCSV: csv.NewWriter(storageFile),
	}, nil
}

func (x *dumper) close() {
	x.contractsFile.Close()
	x.storageFile.Close()
}

// addContract adds given state of the named Neo contract to the resulting
// dump. After all needed contracts are added, they should be flushed via
// flush method.
func (x *dumper) addContract(name string, st state.Contract) {
	x.contracts = append(x.contracts, dumpContractState{
		Name:  name,
		State: st,
	})
}

// writeStorageItem writes key-value storage item of the named contract into
// the storage CSV.
func (x *dumper) writeStorageItem(name string, key, value []byte) error {
	return x.storageItemsCSV.Write([]string{
		name,
		base64.StdEncoding.EncodeToString(key),
		base64.StdEncoding.EncodeToString(value),
	})
}

// flush writes out all accumulated data. Flush does not close the dumper.
func (x *dumper) flush() error {
	x.storageItemsCSV.Flush()

	err := x.storageItemsCSV.Error()
	if err != nil {
		return fmt.Errorf("flush storage CSV: %w", err)
	}

	err = json.NewEncoder(x.contractsFile).Encode(x.contracts)
	if err != nil {
		return fmt.Errorf("encode contracts' states: %w", err)
	}

	return nil
}
