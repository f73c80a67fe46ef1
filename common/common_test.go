package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frizinak/gohsk/cedict"
)

const dict = `你好 你好 [ni3 hao3] /hello/
愛 爱 [ai4] /to love/
`

func TestLoadRepository(t *testing.T) {
	dir := t.TempDir()

	u8 := filepath.Join(dir, "cedict_ts.u8")
	require.NoError(t, os.WriteFile(u8, []byte(dict), 0644))
	r, err := LoadRepository(u8)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())

	gob := filepath.Join(dir, "db.gob")
	require.NoError(t, cedict.StoreGOB(gob, r.Entries()))
	r, err = LoadRepository(gob)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())

	r, err = LoadOptionalRepository("")
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestTools(t *testing.T) {
	dir := t.TempDir()
	u8 := filepath.Join(dir, "cedict_ts.u8")
	require.NoError(t, os.WriteFile(u8, []byte(dict), 0644))

	seg, m, err := Tools(u8, "", "")
	require.NoError(t, err)

	n, err := seg.Number("你好", "nǐhǎo")
	require.NoError(t, err)

	res, err := m.Resolve("你好", n.String())
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Candidate.Definition)
}
