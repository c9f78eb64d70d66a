package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key any, value any) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// GetInt returns integer stored by key or 0 if there is nothing.
func GetInt(ctx storage.Context, key any) int {
	v := storage.Get(ctx, key)
	if v != nil {
		return v.(int)
	}

	return 0
}

// PutInt stores v by key. Zero values are deleted, so that absent key and
// zero are the same.
func PutInt(ctx storage.Context, key any, v int) {
	if v == 0 {
		storage.Delete(ctx, key)
		return
	}

	storage.Put(ctx, key, v)
}
