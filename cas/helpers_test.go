package cas

import (
	"io"

	"github.com/shamaton/msgpack/v2"
)

// testLine is a minimal stored value for exercising the stores.
type testLine struct {
	Line string
}

func (l *testLine) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, l)
}

func (l *testLine) Deserialize(r io.Reader) error {
	return msgpack.UnmarshalRead(r, l)
}

func init() {
	RegisterType("testLine", &testLine{})
}
