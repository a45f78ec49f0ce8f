package contracts

import (
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	_fs := fstest.MapFS{}

	_, validNEF := anyValidNEF(t)

	for _, dir := range suiteContracts {
		_, validManifest := anyValidManifest(t, dir)
		_fs[dir+"/"+nefName] = &fstest.MapFile{Data: validNEF}
		_fs[dir+"/"+manifestName] = &fstest.MapFile{Data: validManifest}
	}

	c, err := Read(_fs)
	require.NoError(t, err)
	require.Equal(t, len(suiteContracts), len(c))
	for i, dir := range suiteContracts {
		require.Equal(t, dir, c[i].Manifest.Name)
	}
}

func TestReadMissingFiles(t *testing.T) {
	_fs := fstest.MapFS{}

	// Missing NEF.
	_, err := Read(_fs)
	require.Error(t, err)

	// Missing manifest.
	_fs[reputationDir+"/"+nefName] = &fstest.MapFile{}
	_, err = Read(_fs)
	require.Error(t, err)
}

func TestReadInvalidFormat(t *testing.T) {
	var (
		_fs          = fstest.MapFS{}
		nefPath      = reputationDir + "/" + nefName
		manifestPath = reputationDir + "/" + manifestName
	)

	_, validNEF := anyValidNEF(t)
	_, validManifest := anyValidManifest(t, "zero")

	_fs[nefPath] = &fstest.MapFile{Data: validNEF}
	_fs[manifestPath] = &fstest.MapFile{Data: validManifest}

	_, err := read(_fs, []string{reputationDir})
	require.NoError(t, err)

	_fs[nefPath] = &fstest.MapFile{Data: []byte("not a NEF")}
	_fs[manifestPath] = &fstest.MapFile{Data: validManifest}

	_, err = read(_fs, []string{reputationDir})
	require.ErrorIs(t, err, errInvalidNEF)

	_fs[nefPath] = &fstest.MapFile{Data: validNEF}
	_fs[manifestPath] = &fstest.MapFile{Data: []byte("not a manifest")}

	_, err = read(_fs, []string{reputationDir})
	require.ErrorIs(t, err, errInvalidManifest)
}

func anyValidNEF(tb testing.TB) (nef.File, []byte) {
	script := make([]byte, 32)

	_nef, err := nef.NewFile(script)
	require.NoError(tb, err)

	bNEF, err := _nef.Bytes()
	require.NoError(tb, err)

	return *_nef, bNEF
}

func anyValidManifest(tb testing.TB, name string) (manifest.Manifest, []byte) {
	_manifest := manifest.NewManifest(name)

	jManifest, err := json.Marshal(_manifest)
	require.NoError(tb, err)

	return *_manifest, jManifest
}
