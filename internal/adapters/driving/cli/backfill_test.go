package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackfillCmd_ReportsProcessed(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("backfill")
	require.NoError(t, err)
	assert.Contains(t, out, "3 documents embedded")
}

func TestBackfillCmd_NothingToDo(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	backfillService.(*stubBackfill).processed = 0

	out, err := execute("backfill")
	require.NoError(t, err)
	assert.Contains(t, out, "already have embeddings")
}

func TestBackfillCmd_Failure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	backfillService.(*stubBackfill).failWith = errStub

	_, err := execute("backfill")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backfill failed")
}
