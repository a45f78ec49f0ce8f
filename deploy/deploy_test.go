package deploy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsErrContractNotFound(t *testing.T) {
	require.False(t, isErrContractNotFound(nil))
	require.False(t, isErrContractNotFound(errors.New("any error")))
	require.True(t, isErrContractNotFound(errors.New("Unknown contract")))
	require.True(t, isErrContractNotFound(fmt.Errorf("read contract state: %w", errors.New("Unknown contract ab13c6"))))
}
