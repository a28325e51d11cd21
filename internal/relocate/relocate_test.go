package relocate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/wren/internal/generator"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func run(t *testing.T, ops []generator.Operation) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, generator.Execute(context.Background(), ops, generator.ExecuteOptions{Force: true, Writer: &buf}))
}

func TestNamespaceDir(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "Game", "World"), NamespaceDir("out", "Game.World"))
	assert.Equal(t, filepath.Join("out", "Packet"), NamespaceDir("out", "Packet"))
}

func TestPlan_MovesAndOverwrites(t *testing.T) {
	out := t.TempDir()
	write(t, filepath.Join(out, "Game", "World", "Monster.cs"), "new monster")
	write(t, filepath.Join(out, "Game", "World", "Weapon.cs"), "new weapon")
	write(t, filepath.Join(out, "Monster.cs"), "old monster")

	ops, err := Plan(out, []string{"Game.World"})
	require.NoError(t, err)
	require.Len(t, ops, 2)
	run(t, ops)

	data, err := os.ReadFile(filepath.Join(out, "Monster.cs"))
	require.NoError(t, err)
	assert.Equal(t, "new monster", string(data))

	data, err = os.ReadFile(filepath.Join(out, "Weapon.cs"))
	require.NoError(t, err)
	assert.Equal(t, "new weapon", string(data))

	entries, err := os.ReadDir(filepath.Join(out, "Game", "World"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPlan_MissingNamespaceDir(t *testing.T) {
	ops, err := Plan(t.TempDir(), []string{"Game.World", ""})
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestPlan_SkipsSubdirectories(t *testing.T) {
	out := t.TempDir()
	write(t, filepath.Join(out, "Packet", "Login.cs"), "x")
	write(t, filepath.Join(out, "Packet", "Inner", "Deep.cs"), "y")

	ops, err := Plan(out, []string{"Packet"})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "Move "+filepath.Join(out, "Packet", "Login.cs")+" -> "+filepath.Join(out, "Login.cs"), ops[0].Description())
}

func TestPlan_MultipleNamespaces(t *testing.T) {
	out := t.TempDir()
	write(t, filepath.Join(out, "Game", "World", "A.cs"), "a")
	write(t, filepath.Join(out, "Packet", "B.cs"), "b")

	ops, err := Plan(out, []string{"Game.World", "Packet"})
	require.NoError(t, err)
	run(t, ops)

	for _, name := range []string{"A.cs", "B.cs"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
}
