// Package cas is a content-addressed store for the values a run hands to its
// workers. Values are serialized with msgpack and addressed by the farm hash
// of their encoding, so structurally identical jobs share one address.
package cas

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

type CAS interface {
	Put(item Hashable) (Hash, error)
	Has(hash Hash) bool

	// Finished results keyed by the address of the job that produced them
	RecordResult(hash Hash, count uint64)
	GetResult(hash Hash) (uint64, bool)
}

type Serde interface {
	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
}

type Hashable interface {
	Serde
}

type directStore interface {
	getValue(h Hash) (bool, []byte, error)
}

type Hash uint64

func (h Hash) String() string {
	return fmt.Sprintf("0x%016x", uint64(h))
}

// Retrieve decodes the value stored at hash.
func Retrieve[T Hashable](c CAS, hash Hash) (T, error) {
	var t T
	v, ok := c.(directStore)
	if !ok {
		return t, errors.New("CAS does not support direct retrieval")
	}

	has, data, err := v.getValue(hash)
	if err != nil {
		return t, err
	}
	if !has {
		return t, fmt.Errorf("hash not found in CAS: %s", hash)
	}

	entry := &TypedEntry{}
	err = entry.Deserialize(bytes.NewReader(data))
	if err != nil {
		return t, fmt.Errorf("deserializing TypedEntry: %w", err)
	}

	instance, err := createInstance(entry.TypeTag)
	if err != nil {
		return t, fmt.Errorf("creating instance: %w", err)
	}
	err = instance.Deserialize(bytes.NewReader(entry.Data))
	if err != nil {
		return t, fmt.Errorf("deserializing data: %w", err)
	}

	result, ok := instance.(T)
	if !ok {
		return t, fmt.Errorf("type mismatch: expected %T, got %T", t, instance)
	}
	return result, nil
}
