package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairychess/internal/catalog"
)

func TestValidateAcceptsAffordableArmy(t *testing.T) {
	table := catalog.NewTable()
	d := New(table, 200)
	require.NoError(t, d.Add(catalog.RookID))
	require.NoError(t, d.Add(catalog.RookID))
	require.NoError(t, d.Add(catalog.QueenID))
	for i := 0; i < 8; i++ {
		require.NoError(t, d.Add(catalog.PawnID))
	}
	assert.NoError(t, d.Validate(8, 8))
}

func TestValidateRejectsOverBudget(t *testing.T) {
	table := catalog.NewTable()
	d := New(table, 50)
	require.NoError(t, d.Add(catalog.QueenID))
	assert.ErrorIs(t, d.Validate(8, 8), ErrOverBudget)
}

func TestValidateRejectsTwoKingReplacers(t *testing.T) {
	table := catalog.NewTable()
	d := New(table, 500)
	require.NoError(t, d.Add(catalog.PhantomKingID))
	require.NoError(t, d.Add(catalog.PhantomKingID))
	assert.ErrorIs(t, d.Validate(8, 8), ErrMultipleReplacers)
}

func TestValidateRejectsHeraldAboveHardCap(t *testing.T) {
	table := catalog.NewTable()
	d := New(table, 500)
	for i := 0; i < 3; i++ {
		require.NoError(t, d.Add(catalog.HeraldID))
	}
	assert.ErrorIs(t, d.Validate(8, 8), ErrTypeCapExceeded)
}

func TestValidateRejectsPawnTierOverflow(t *testing.T) {
	table := catalog.NewTable()
	d := New(table, 500)
	for i := 0; i < 9; i++ {
		require.NoError(t, d.Add(catalog.PawnID))
	}
	assert.ErrorIs(t, d.Validate(8, 8), ErrTierCapExceeded)
}

func TestValidateUsesWiderCapsOnLargerBoard(t *testing.T) {
	table := catalog.NewTable()
	d := New(table, 500)
	for i := 0; i < 9; i++ {
		require.NoError(t, d.Add(catalog.PawnID))
	}
	assert.NoError(t, d.Validate(10, 8))
}

func TestFallbackArmyComposition(t *testing.T) {
	army := FallbackArmy()
	assert.Equal(t, 1, army[catalog.QueenID])
	assert.Equal(t, 2, army[catalog.RookID])
	assert.Equal(t, 2, army[catalog.BishopID])
	assert.Equal(t, 2, army[catalog.KnightID])
	assert.Equal(t, 8, army[catalog.PawnID])
}
