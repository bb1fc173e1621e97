package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Pages:    2")
	assert.Contains(t, out, "Journals: 1")
	assert.Contains(t, out, "Total:    3")
}
