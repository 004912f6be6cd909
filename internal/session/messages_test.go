package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	raw, err := Encode("MAKE_MOVE", 1234, MakeMovePayload{
		From: PositionDTO{File: 1, Rank: 1},
		To:   PositionDTO{File: 1, Rank: 3},
	})
	require.NoError(t, err)

	var payload MakeMovePayload
	env, err := Decode(raw, &payload)
	require.NoError(t, err)

	assert.Equal(t, "MAKE_MOVE", env.Type)
	assert.Equal(t, int64(1234), env.Timestamp)
	assert.Equal(t, 1, payload.From.File)
	assert.Equal(t, 3, payload.To.Rank)
}

func TestDecodeMalformedEnvelope(t *testing.T) {
	_, err := Decode([]byte("not json"), nil)
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
}

func TestBoardDims(t *testing.T) {
	cases := []struct {
		size          string
		files, ranks int
	}{
		{"8x8", 8, 8},
		{"10x8", 10, 8},
		{"10x10", 10, 10},
		{"", 8, 8},
		{"garbage", 8, 8},
	}
	for _, tc := range cases {
		files, ranks := BoardDims(tc.size)
		assert.Equal(t, tc.files, files, tc.size)
		assert.Equal(t, tc.ranks, ranks, tc.size)
	}
}
