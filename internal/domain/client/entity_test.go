package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	c, err := NewClient("user-1", "Maria Silva", "maria@example.com", "11 99999-0000")

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, SegmentNew, c.Segment)
	assert.True(t, c.IsActive)
}

func TestNewClient_Invalid(t *testing.T) {
	_, err := NewClient("user-1", "", "", "")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewClient("user-1", "Maria", "sem-arroba", "")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	// Email vazio é permitido
	_, err = NewClient("user-1", "Maria", "", "")
	assert.NoError(t, err)
}

func TestClient_Update(t *testing.T) {
	c, err := NewClient("user-1", "Maria", "maria@example.com", "")
	require.NoError(t, err)

	birth := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.Update("Maria Souza", "souza@example.com", "11 98888-0000", &birth, "alergia a lidocaína"))

	assert.Equal(t, "Maria Souza", c.Name)
	assert.Equal(t, "souza@example.com", c.Email)
	assert.Equal(t, &birth, c.BirthDate)

	assert.ErrorIs(t, c.Update("", "", "", nil, ""), ErrEmptyName)
}

func TestClient_SetSegment(t *testing.T) {
	c, err := NewClient("user-1", "Maria", "", "")
	require.NoError(t, err)

	require.NoError(t, c.SetSegment(SegmentVIP))
	assert.Equal(t, SegmentVIP, c.Segment)

	assert.ErrorIs(t, c.SetSegment("platinum"), ErrInvalidSegment)
	assert.Equal(t, SegmentVIP, c.Segment)
}

func TestClient_ApplyRollup(t *testing.T) {
	c, err := NewClient("user-1", "Maria", "", "")
	require.NoError(t, err)

	visit := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	c.ApplyRollup(1800, 6, &visit)

	assert.Equal(t, 1800.0, c.TotalSpent)
	assert.Equal(t, 6, c.TotalVisits)
	assert.Equal(t, &visit, c.LastVisitAt)
}
