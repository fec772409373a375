package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRand_SameSeedSameDraws(t *testing.T) {
	a, b := New(1234), New(1234)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.Intn(50), b.Intn(50))
	}
}

func TestFixed(t *testing.T) {
	f := Fixed(0.25)
	assert.Equal(t, 0.25, f.Float64())
	assert.Equal(t, 0.25, f.Float64())
	assert.Equal(t, 0, f.Intn(10))
}

func TestSequence_ReplaysThenRepeatsLast(t *testing.T) {
	s := &Sequence{Values: []float64{0.1, 0.9}}
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.9, s.Float64())
	assert.Equal(t, 0.9, s.Float64())
	assert.Equal(t, 9, s.Intn(10))
}

func TestSequence_EmptyDefaultsToHalf(t *testing.T) {
	s := &Sequence{}
	assert.Equal(t, 0.5, s.Float64())
}

func TestNewUnseeded_InRange(t *testing.T) {
	r := NewUnseeded()
	for i := 0; i < 100; i++ {
		v := r.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}
