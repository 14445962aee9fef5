package cas

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/shamaton/msgpack/v2"
)

// TypedEntry wraps a Hashable with a type tag for deserialization
type TypedEntry struct {
	TypeTag string
	Data    []byte
}

func (t *TypedEntry) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, t)
}

func (t *TypedEntry) Deserialize(r io.Reader) error {
	return msgpack.UnmarshalRead(r, t)
}

var (
	registryMu   sync.RWMutex
	typeRegistry = make(map[string]reflect.Type)
)

// RegisterType makes values of example's type retrievable under tag.
func RegisterType(tag string, example Hashable) {
	registryMu.Lock()
	defer registryMu.Unlock()
	typeRegistry[tag] = reflect.TypeOf(example)
}

// getTypeTag returns the type tag for a given item
func getTypeTag(item Hashable) string {
	t := reflect.TypeOf(item)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	for tag, regType := range typeRegistry {
		checkType := regType
		if checkType.Kind() == reflect.Ptr {
			checkType = checkType.Elem()
		}
		if t == checkType {
			return tag
		}
	}

	// Fallback: use type name
	return t.Name()
}

// createInstance creates a new instance of the registered type
func createInstance(tag string) (Hashable, error) {
	registryMu.RLock()
	regType, ok := typeRegistry[tag]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown type tag: %s", tag)
	}

	if regType.Kind() == reflect.Ptr {
		instance := reflect.New(regType.Elem()).Interface()
		return instance.(Hashable), nil
	}

	ptrInstance := reflect.New(regType).Interface()
	if h, ok := ptrInstance.(Hashable); ok {
		return h, nil
	}
	return nil, fmt.Errorf("type %s does not implement Hashable", tag)
}

// encode wraps item in a TypedEntry and returns the entry's bytes.
func encode(item Hashable) ([]byte, error) {
	var data bytes.Buffer
	err := item.Serialize(&data)
	if err != nil {
		return nil, err
	}
	entry := &TypedEntry{
		TypeTag: getTypeTag(item),
		Data:    data.Bytes(),
	}
	var buf bytes.Buffer
	err = entry.Serialize(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
