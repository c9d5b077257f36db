package sequence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limpcred/limpcred-api/internal/domain/sequence"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "PROC-2024-0001", sequence.Format(2024, 1))
	assert.Equal(t, "PROC-2024-0420", sequence.Format(2024, 420))
	assert.Equal(t, "PROC-2024-12345", sequence.Format(2024, 12345))
}

func TestNext(t *testing.T) {
	seq, err := sequence.Next("")
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	seq, err = sequence.Next("PROC-2024-0003")
	require.NoError(t, err)
	assert.Equal(t, 4, seq)

	seq, err = sequence.Next("PROC-2024-9999")
	require.NoError(t, err)
	assert.Equal(t, 10000, seq)
}

func TestParse_Invalido(t *testing.T) {
	for _, s := range []string{"PROC-2024-", "PROC2024", "PROC-2024-abc"} {
		_, err := sequence.Parse(s)
		assert.Error(t, err, s)
	}
}

func TestYearRange(t *testing.T) {
	from, to := sequence.YearRange(2024, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)
}
