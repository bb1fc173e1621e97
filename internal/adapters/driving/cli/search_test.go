package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetSearchFlags() {
	searchMode = modeHybrid
	searchLimit = 10
	searchDocType = ""
	searchJSON = false
	searchFTSWeight = 0
	searchSemWeight = 0
	searchFloor = 0
}

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("search")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_DefaultsToHybrid(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()

	out, err := execute("search", "alpha")
	require.NoError(t, err)
	assert.Equal(t, modeHybrid, searchService.(*stubSearch).lastMode)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "1.705")
}

func TestSearchCmd_KeywordMode(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()

	out, err := execute("search", "--mode", "keyword", "alpha")
	require.NoError(t, err)
	assert.Equal(t, modeKeyword, searchService.(*stubSearch).lastMode)
	assert.Contains(t, out, "[alpha]", "snippet sentinels render as brackets")
}

func TestSearchCmd_AdvancedMode(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()

	_, err := execute("search", "-m", "advanced", `"a phrase" -other`)
	require.NoError(t, err)
	assert.Equal(t, modeAdvanced, searchService.(*stubSearch).lastMode)
}

func TestSearchCmd_SemanticMode(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()

	out, err := execute("search", "-m", "semantic", "alpha")
	require.NoError(t, err)
	assert.Equal(t, modeSemantic, searchService.(*stubSearch).lastMode)
	assert.Contains(t, out, "0.910")
}

func TestSearchCmd_UnknownMode(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()

	_, err := execute("search", "--mode", "psychic", "alpha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown search mode")
}

func TestSearchCmd_InvalidDocType(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()

	_, err := execute("search", "--type", "notebook", "alpha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown doc type")
}

func TestSearchCmd_HybridWeightFlags(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()

	_, err := execute("search", "--fts-weight", "0.8", "--semantic-weight", "0.2",
		"--similarity-floor", "0.5", "alpha")
	require.NoError(t, err)

	opts := searchService.(*stubSearch).lastOpts
	assert.Equal(t, 0.8, opts.FTSWeight)
	assert.Equal(t, 0.2, opts.SemanticWeight)
	assert.Equal(t, 0.5, opts.SimilarityFloor)
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()

	out, err := execute("search", "--json", "-m", "keyword", "alpha")
	require.NoError(t, err)
	assert.Contains(t, out, `"Title"`)
	assert.Contains(t, out, `"Rank"`)
}

func TestSearchCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()
	searchService.(*stubSearch).hybrid = nil

	out, err := execute("search", "nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found")
}

func TestSearchCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSearchFlags()
	searchService.(*stubSearch).failWith = errStub

	_, err := execute("search", "alpha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestSearchCmd_UnconfiguredEnvironment(t *testing.T) {
	// No services injected and an explicit config path that does not
	// exist: wiring must fail before any search runs.
	configPath = filepath.Join(t.TempDir(), "absent.toml")
	defer func() { configPath = "" }()

	_, err := execute("search", "alpha")
	assert.Error(t, err)
}
