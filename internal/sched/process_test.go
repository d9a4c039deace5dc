package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func otherCB(quantum uint64, _ any) uint64 { return 0 }

func TestNewProcessValidation(t *testing.T) {
	_, err := NewProcess(nil, nil, 15, 5, 0b0001)
	assert.ErrorIs(t, err, ErrNilCallback)

	_, err = NewProcess(stubCB, nil, 9, 5, 0b0001)
	assert.ErrorIs(t, err, ErrNicenessRange)

	_, err = NewProcess(stubCB, nil, 50, 5, 0b0001)
	assert.ErrorIs(t, err, ErrNicenessRange)

	p, err := NewProcess(stubCB, nil, MinNiceness, 5, 0b0001)
	require.NoError(t, err)
	assert.Equal(t, uint(MinNiceness), p.Niceness)

	_, err = NewProcess(stubCB, nil, MaxNiceness, 5, 0b0001)
	assert.NoError(t, err)
}

func TestOutranks(t *testing.T) {
	low := Process{Niceness: 10, Remaining: 10, Mask: 0b0001}  // score 100
	high := Process{Niceness: 20, Remaining: 10, Mask: 0b0001} // score 200

	assert.True(t, low.outranks(high))
	assert.False(t, high.outranks(low))
	assert.False(t, low.outranks(low), "strict ordering: nothing outranks itself")

	// Equal scores fall back to affinity width.
	narrow := Process{Niceness: 20, Remaining: 10, Mask: 0b0001}
	wide := Process{Niceness: 10, Remaining: 20, Mask: 0b0011}
	assert.True(t, narrow.outranks(wide))
	assert.False(t, wide.outranks(narrow))
}

func TestSameIdentity(t *testing.T) {
	ctx := new(int)
	a := Process{Callback: stubCB, Context: ctx}

	assert.True(t, sameIdentity(a, Process{Callback: stubCB, Context: ctx}))
	assert.False(t, sameIdentity(a, Process{Callback: stubCB, Context: new(int)}))
	assert.False(t, sameIdentity(a, Process{Callback: otherCB, Context: ctx}))

	// Scheduling parameters play no part in identity.
	b := a
	b.Niceness, b.Remaining, b.Mask = 42, 999, CPUMaskMax
	assert.True(t, sameIdentity(a, b))
}
