package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreRollBuffer_EvictsOldestWhenFull(t *testing.T) {
	b := NewPreRollBuffer(3)
	for i := 0; i < 5; i++ {
		b.Push(Frame{float32(i)})
	}

	snap := b.Snapshot()
	assert.Len(t, snap, 3)
	assert.Equal(t, float32(2), snap[0][0], "oldest frames should have been evicted")
	assert.Equal(t, float32(4), snap[2][0])
	assert.LessOrEqual(t, b.Len(), 3)
}

func TestPreRollBuffer_ClearEmpties(t *testing.T) {
	b := NewPreRollBuffer(2)
	b.Push(Frame{1})
	b.Clear()
	assert.Equal(t, 0, b.Len())
}
