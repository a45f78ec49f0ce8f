package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// ErrUnknownContractCaller appears when a method reserved for other
// contracts of the suite is invoked directly.
var ErrUnknownContractCaller = "caller is not an authorized contract"

// CalledByContract returns true if the direct caller of the current
// invocation is the contract with the given hash.
func CalledByContract(h interop.Hash160) bool {
	return runtime.GetCallingScriptHash().Equals(h)
}
