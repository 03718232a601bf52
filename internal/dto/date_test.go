package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-17")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-05-17T10:30:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 17, 7, 30, 0, 0, time.UTC), d)

	_, err = ParseDate("17/05/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("")
	assert.NoError(t, err)
	assert.Nil(t, d)
}
