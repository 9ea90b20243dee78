package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersions_Ordenadas(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_b.sql": {Data: []byte("SELECT 2;")},
		"0001_a.sql": {Data: []byte("SELECT 1;")},
		"README.md":  {Data: []byte("no es migración")},
	}
	versions, err := MigrationVersions(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql"}, versions)
}

func TestMigrationVersions_Embebidas(t *testing.T) {
	m := NewMigrator(nil)
	versions, err := MigrationVersions(m.files)
	require.NoError(t, err)
	require.NotEmpty(t, versions)
	assert.Equal(t, "0001_init.sql", versions[0])
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%taza%", likePattern("taza"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}
