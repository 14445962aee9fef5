package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnfold(t *testing.T) {
	assert.Equal(t, ".#?.#?.#?.#?.# 1,1,1,1,1", Unfold(MustParse(".# 1"), 5).String())
	assert.Equal(t,
		"???.###????.###????.###????.###????.### 1,1,3,1,1,3,1,1,3,1,1,3,1,1,3",
		Unfold(MustParse("???.### 1,1,3"), 5).String())
}

func TestUnfoldDoesNotMutate(t *testing.T) {
	base := MustParse("?#. 1")
	out := Unfold(base, 3)
	out.Springs[0] = Damaged
	out.Segments[0] = 7
	assert.Equal(t, "?#. 1", base.String())

	one := Unfold(base, 1)
	assert.True(t, one.Equal(base))
	one.Springs[0] = Operational
	assert.Equal(t, "?#. 1", base.String())
}

func TestCompact(t *testing.T) {
	assert.Equal(t, Unfold(MustParse(".# 1"), 5).String(), Unfold(MustParse("......# 1"), 5).Compact().String())
	assert.Equal(t, ".?#.#. 1,1", MustParse("...?#...#.. 1,1").Compact().String())
	assert.Equal(t, "", New(nil, nil).Compact().Pattern())
}
