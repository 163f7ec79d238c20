package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseAggregateRoot(t *testing.T) {
	root := NewBaseAggregateRoot()

	assert.NotEqual(t, [16]byte{}, [16]byte(root.ID))
	assert.Equal(t, 1, root.GetVersion())
	assert.Equal(t, root.CreatedAt, root.UpdatedAt)
}

func TestIncrementVersion(t *testing.T) {
	root := NewBaseAggregateRoot()
	created := root.UpdatedAt

	root.IncrementVersion()

	require.Equal(t, 2, root.GetVersion())
	assert.False(t, root.UpdatedAt.Before(created))
	assert.Equal(t, created, root.CreatedAt)
}
