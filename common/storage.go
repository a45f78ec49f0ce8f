package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// idSize is the width of a normalized identifier inside a storage key.
// Identifiers are caller-chosen unsigned integers, so they are padded to
// a fixed width to keep composite keys unambiguous.
const idSize = 8

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key interface{}, value interface{}) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// AppendID appends an 8-byte little-endian representation of a
// non-negative integer identifier to the given key prefix.
func AppendID(key []byte, id int) []byte {
	if id < 0 {
		panic("negative identifier")
	}

	for i := 0; i < idSize; i++ {
		key = append(key, byte(id&0xff))
		id = id >> 8
	}

	return key
}
