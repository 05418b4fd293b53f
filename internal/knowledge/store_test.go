package knowledge_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrcrush/ai-interview-clone/internal/knowledge"
)

func TestFileStore_Load(t *testing.T) {
	store := knowledge.NewFileStore(filepath.Join("testdata", "knowledge-base.json"))

	base, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, "Juan Pablo Bolzon", base.Name())
	assert.Equal(t, "Software Engineer", base.Title())
	assert.False(t, base.Degraded())
	assert.Contains(t, base.Serialized(), "practical_info")
}

func TestFileStore_MissingFile(t *testing.T) {
	store := knowledge.NewFileStore(filepath.Join("testdata", "does-not-exist.json"))

	_, err := store.Load()

	require.Error(t, err)
}

func TestLoadOrMarker_DegradesOnFailure(t *testing.T) {
	store := knowledge.NewFileStore(filepath.Join("testdata", "does-not-exist.json"))

	base, err := knowledge.LoadOrMarker(store)

	require.Error(t, err)
	assert.True(t, base.Degraded())
	assert.Equal(t, knowledge.DefaultName, base.Name())
	assert.Equal(t, knowledge.DefaultTitle, base.Title())
	assert.Contains(t, base.Serialized(), "Knowledge base not found")
}

func TestParse_RejectsMalformedJSON(t *testing.T) {
	_, err := knowledge.Parse([]byte(`{"personal_info": `))

	require.Error(t, err)
}

func TestBase_Fallbacks(t *testing.T) {
	base, err := knowledge.Parse([]byte(`{}`))

	require.NoError(t, err)
	assert.Equal(t, knowledge.DefaultName, base.Name())
	assert.Equal(t, knowledge.DefaultTitle, base.Title())
	assert.NotEmpty(t, base.CommunicationStyle())
}

func TestBase_SerializedIsStable(t *testing.T) {
	raw := []byte(`{"personal_info":{"name":"Ada"},"technical_skills":["Go"]}`)
	base, err := knowledge.Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, base.Serialized(), base.Serialized())
	assert.Contains(t, base.Serialized(), `"name": "Ada"`)
}
