package fixedvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec_Iterators(t *testing.T) {
	v, err := FromSlice(4, []string{"a", "b", "c"})
	require.NoError(t, err)

	var idx []int
	var vals []string
	for i, s := range v.All() {
		idx = append(idx, i)
		vals = append(vals, s)
	}
	assert.Equal(t, []int{0, 1, 2}, idx)
	assert.Equal(t, []string{"a", "b", "c"}, vals)

	// restartable
	vals = vals[:0]
	for s := range v.Values() {
		vals = append(vals, s)
	}
	assert.Equal(t, []string{"a", "b", "c"}, vals)

	vals = vals[:0]
	for _, s := range v.Backward() {
		vals = append(vals, s)
	}
	assert.Equal(t, []string{"c", "b", "a"}, vals)

	for _, p := range v.Pointers() {
		*p += "!"
	}
	assert.Equal(t, []string{"a!", "b!", "c!"}, v.AsSlice())
}

func TestVec_IteratorsStopEarly(t *testing.T) {
	v, err := FromSlice(4, []int{1, 2, 3, 4})
	require.NoError(t, err)

	n := 0
	for range v.Values() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
	assert.Equal(t, 4, v.Len())
}

func TestVec_DrainFull(t *testing.T) {
	var tr dropTracker
	v := New(4, WithDrop(tr.drop))
	for i := 0; i < 3; i++ {
		require.NoError(t, v.Push(tr.make(i)))
	}

	var got []int
	for x := range v.Drain() {
		got = append(got, x)
		tr.drop(x) // the loop owns each yielded value
	}

	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, tr.live)
	assert.Equal(t, []int{0, 1, 2}, tr.dropped)
}

func TestVec_DrainPartial(t *testing.T) {
	var tr dropTracker
	v := New(8, WithDrop(tr.drop))
	for i := 0; i < 5; i++ {
		require.NoError(t, v.Push(tr.make(i)))
	}

	for x := range v.Drain() {
		tr.drop(x)
		if x == 1 {
			break
		}
	}

	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, tr.live, "unyielded elements must be destroyed")
	assert.Equal(t, []int{0, 1, 2, 3, 4}, tr.dropped, "each element destroyed exactly once")

	// the Vec is reusable afterwards
	require.NoError(t, v.Push(tr.make(9)))
	assert.Equal(t, []int{9}, v.AsSlice())
}

func TestVec_DrainPanicInBody(t *testing.T) {
	var tr dropTracker
	v := New(4, WithDrop(tr.drop))
	for i := 0; i < 4; i++ {
		require.NoError(t, v.Push(tr.make(i)))
	}

	assert.Panics(t, func() {
		for x := range v.Drain() {
			tr.drop(x)
			if x == 2 {
				panic("consumer failed")
			}
		}
	})

	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, tr.live)
	assert.Equal(t, []int{0, 1, 2, 3}, tr.dropped)
}

func TestVec_DrainZeroesSlots(t *testing.T) {
	storage := make([]*int, 3)
	v := Over(storage)
	for i := 0; i < 3; i++ {
		x := i
		require.NoError(t, v.Push(&x))
	}

	for range v.Drain() {
		break
	}
	assert.Equal(t, []*int{nil, nil, nil}, storage)
}

func TestVec_DrainNotRangedIsNoop(t *testing.T) {
	v, err := FromSlice(2, []int{1, 2})
	require.NoError(t, err)

	_ = v.Drain()
	assert.Equal(t, 2, v.Len())
}
