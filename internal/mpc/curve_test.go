package mpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarArithmetic(t *testing.T) {
	a, err := RandomScalar()
	require.NoError(t, err)
	b, err := RandomScalar()
	require.NoError(t, err)

	t.Run("AddSubRoundTrip", func(t *testing.T) {
		sum := a.Add(b)
		back := sum.Sub(b)
		assert.True(t, back.Equal(a))
	})

	t.Run("MulInvRoundTrip", func(t *testing.T) {
		prod := a.Mul(b)
		back := prod.Mul(b.Inv())
		assert.True(t, back.Equal(a))
	})

	t.Run("JSONRoundTrip", func(t *testing.T) {
		raw, err := json.Marshal(a)
		require.NoError(t, err)

		var decoded Scalar
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.True(t, a.Equal(&decoded))
	})
}

func TestPointArithmetic(t *testing.T) {
	a, err := RandomScalar()
	require.NoError(t, err)
	b, err := RandomScalar()
	require.NoError(t, err)

	pa := ScalarBaseMul(a)
	pb := ScalarBaseMul(b)

	t.Run("AdditiveHomomorphism", func(t *testing.T) {
		sumPoint := pa.Add(pb)
		expected := ScalarBaseMul(a.Add(b))
		assert.True(t, sumPoint.Equal(expected))
	})

	t.Run("CompressedSerializationRoundTrip", func(t *testing.T) {
		raw := pa.Bytes()
		parsed, err := PointFromBytes(raw)
		require.NoError(t, err)
		assert.True(t, pa.Equal(parsed))
	})

	t.Run("JSONRoundTrip", func(t *testing.T) {
		raw, err := json.Marshal(pa)
		require.NoError(t, err)

		var decoded Point
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.True(t, pa.Equal(&decoded))
	})
}
