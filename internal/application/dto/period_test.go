package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/SellerOps-api/internal/domain"
)

func TestParsePeriod(t *testing.T) {
	now := time.Date(2025, time.June, 30, 15, 4, 0, 0, time.UTC)

	start, end, err := ParsePeriod("", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.June, 30, 23, 59, 59, 999999999, time.UTC), end)

	start, end, err = ParsePeriod("2025-05-01", "2025-05-31", now)
	require.NoError(t, err)
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 31, end.Day())
	assert.Equal(t, 23, end.Hour())

	_, _, err = ParsePeriod("2025-06-10", "2025-06-01", now)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, _, err = ParsePeriod("10/06/2025", "", now)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
