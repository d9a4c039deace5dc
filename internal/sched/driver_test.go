package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTopNoEligibleProcess(t *testing.T) {
	q := NewRunQueue()
	calls := 0
	p, err := NewProcess(func(quantum uint64, _ any) uint64 {
		calls++
		return 0
	}, new(int), 15, 5, 0b0100)
	require.NoError(t, err)
	require.NoError(t, q.Push(p))

	got := q.RunTop(0b0001, 5)
	assert.Equal(t, uint64(0), got)
	assert.Equal(t, 0, calls, "callback must not run for an ineligible CPU")
	assert.Equal(t, 1, q.Size())
}

func TestRunTopEmptyQueue(t *testing.T) {
	q := NewRunQueue()
	assert.Equal(t, uint64(0), q.RunTop(CPUMaskMax, 5))
}

func TestRunTopCompletionRemovesProcess(t *testing.T) {
	q := NewRunQueue()
	unit := new(int)
	var gotQuantum uint64
	var gotContext any
	p, err := NewProcess(func(quantum uint64, context any) uint64 {
		gotQuantum = quantum
		gotContext = context
		return 0
	}, unit, 10, 8, 0b0001)
	require.NoError(t, err)
	require.NoError(t, q.Push(p))

	got := q.RunTop(0b0001, 5)
	assert.Equal(t, uint64(0), got)
	assert.Equal(t, uint64(5), gotQuantum)
	assert.Same(t, unit, gotContext)
	assert.Equal(t, 0, q.Size())
}

func TestRunTopPreemptRefinesEstimate(t *testing.T) {
	q := NewRunQueue()
	p, err := NewProcess(func(quantum uint64, _ any) uint64 {
		return 3
	}, new(int), 10, 8, 0b0001)
	require.NoError(t, err)
	require.NoError(t, q.Push(p))

	// remaining 8 > quantum 5, so the estimate becomes 8 - 5 + 3 = 6.
	got := q.RunTop(0b0001, 5)
	assert.Equal(t, uint64(6), got)
	require.Equal(t, 1, q.Size())
	assert.Equal(t, uint64(6), q.Processes()[0].Remaining)
}

func TestRunTopQuantumOvershootTrustsCallback(t *testing.T) {
	q := NewRunQueue()
	p, err := NewProcess(func(quantum uint64, _ any) uint64 {
		return 7
	}, new(int), 10, 4, 0b0001)
	require.NoError(t, err)
	require.NoError(t, q.Push(p))

	// quantum 10 exceeds remaining 4; only the callback's figure counts.
	got := q.RunTop(0b0001, 10)
	assert.Equal(t, uint64(7), got)
	assert.Equal(t, uint64(7), q.Processes()[0].Remaining)
}

func TestRunTopRequeuesAtNewPosition(t *testing.T) {
	q := NewRunQueue()
	busy, err := NewProcess(func(quantum uint64, _ any) uint64 {
		return 30
	}, new(int), 10, 10, 0b0001) // score 100, head
	require.NoError(t, err)
	busy.Label = "busy"
	idle, err := NewProcess(stubCB, new(int), 20, 10, 0b0001) // score 200
	require.NoError(t, err)
	idle.Label = "idle"
	require.NoError(t, q.Push(busy))
	require.NoError(t, q.Push(idle))
	require.Equal(t, []string{"busy", "idle"}, labels(q))

	// busy reports 30 left: remaining becomes 10 - 4 + 30 = 36, score
	// 360, so it drops behind idle.
	got := q.RunTop(0b0001, 4)
	assert.Equal(t, uint64(36), got)
	assert.Equal(t, []string{"idle", "busy"}, labels(q))
	requireSorted(t, q)
}
