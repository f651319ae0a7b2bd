package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortManager_LeaseAndRelease(t *testing.T) {
	pm := NewPortManager(5000, 2)

	first, err := pm.GetPort()
	require.NoError(t, err)
	second, err := pm.GetPort()
	require.NoError(t, err)
	assert.Equal(t, 5000, first)
	assert.Equal(t, 5001, second)

	_, err = pm.GetPort()
	assert.Error(t, err)

	pm.ReleasePort(first)
	again, err := pm.GetPort()
	require.NoError(t, err)
	assert.Equal(t, first, again)
}
