package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/gradplan/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPrograms = `programs:
  - name: MS in Robotics
    university: ETH Zurich
    country: Switzerland
    application_deadline: "2025-12-15"
  - name: MSc Machine Learning
    university: University College London
    country: United Kingdom
    application_deadline: "2025-03-31"
`

func writeCatalog(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "programs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestBuiltin_HasFivePrograms(t *testing.T) {
	programs := Builtin().Programs()
	require.Len(t, programs, 5)
	assert.Equal(t, "MS in Computer Science", programs[0].Name)
	assert.Equal(t, "2025-05-31", programs[0].ApplicationDeadline)
	assert.Equal(t, "$40,000 - $50,000/year", programs[2].TuitionRange)
}

func TestFilter(t *testing.T) {
	c := Builtin()

	tests := []struct {
		name      string
		countries []string
		want      int
	}{
		{"single country", []string{"Germany"}, 2},
		{"case insensitive", []string{"usa"}, 2},
		{"several countries", []string{"Netherlands", "USA"}, 3},
		{"any matches all", []string{"Germany", "Any"}, 5},
		{"no match falls back", []string{"Canada"}, 5},
		{"empty list", nil, 5},
		{"blank entries ignored", []string{" ", "Germany"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, c.Filter(tt.countries), tt.want)
		})
	}
}

func TestFind(t *testing.T) {
	c := Builtin()

	p, ok := c.Find("ms in ai", "")
	require.True(t, ok)
	assert.Equal(t, "University of Amsterdam", p.University)

	_, ok = c.Find("MS in AI", "RWTH Aachen")
	assert.False(t, ok)
}

func TestPrograms_ReturnsCopy(t *testing.T) {
	c := Builtin()
	programs := c.Programs()
	programs[0].Name = "changed"
	assert.Equal(t, "MS in Computer Science", c.Programs()[0].Name)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", "programs: []\n"},
		{"unknown field", "programs:\n  - name: A\n    university: B\n    campus: C\n"},
		{"missing university", "programs:\n  - name: A\n"},
		{"duplicate", "programs:\n  - {name: A, university: B}\n  - {name: a, university: b}\n"},
		{"not yaml", "programs: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			assert.Error(t, err)
		})
	}
	_, err := Parse([]byte("programs: []\n"))
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestLoad_FileAndReloadKeepsListOnError(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, twoPrograms)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Path())
	require.Len(t, c.Programs(), 2)

	writeCatalog(t, dir, "programs: []\n")
	assert.Error(t, c.Reload())
	assert.Len(t, c.Programs(), 2)
}

func TestLoad_EmptyPathIsBuiltin(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, c.Path())
	assert.Len(t, c.Programs(), 5)
	assert.NoError(t, c.Reload())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, twoPrograms)
	c, err := Load(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads atomic.Int32
	require.NoError(t, c.Watch(ctx, logging.NewNopLogger(), func(int) { reloads.Add(1) }))

	writeCatalog(t, dir, twoPrograms+`  - name: MS in Statistics
    university: KU Leuven
    country: Belgium
    application_deadline: "2025-03-01"
`)

	require.Eventually(t, func() bool { return len(c.Programs()) == 3 }, 3*time.Second, 20*time.Millisecond)
	assert.GreaterOrEqual(t, reloads.Load(), int32(1))
}

func TestWatch_BuiltinIsNotWatchable(t *testing.T) {
	err := Builtin().Watch(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNotFileBacked)
}
