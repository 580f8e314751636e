package source

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_Directory(t *testing.T) {
	fsys := fstest.MapFS{
		"data/b.json":     {Data: []byte(`[{"id": 3, "firstName": "Cy", "specialties": ["Grief"]}]`)},
		"data/a.json":     {Data: []byte(`[{"id": 1, "firstName": "Al"}, {"id": 2, "firstName": "Bea"}]`)},
		"data/notes.md":   {Data: []byte("# not json")},
		"data/sub/c.JSON": {Data: []byte(`[{"id": 4, "firstName": "Di", "yearsOfExperience": 12}]`)},
		"other/skip.json": {Data: []byte(`[{"id": 99}]`)},
	}

	got, err := File{FS: fsys, Path: "data"}.ListAdvocates(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)

	var ids []int64
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)
	assert.Equal(t, []string{"Grief"}, got[2].Specialties)
	assert.Equal(t, 12, got[3].YearsOfExperience)
}

func TestFile_SingleFile(t *testing.T) {
	fsys := fstest.MapFS{
		"advocates.json": {Data: []byte(`[{"id": 7, "firstName": "Eve", "city": "Miami"}]`)},
	}

	got, err := File{FS: fsys, Path: "advocates.json"}.ListAdvocates(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Miami", got[0].City)
}

func TestFile_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.json": {Data: []byte(`{not json`)},
	}

	_, err := File{FS: fsys, Path: "bad.json"}.ListAdvocates(context.Background())
	assert.ErrorContains(t, err, "decoding bad.json")

	_, err = File{FS: fsys, Path: "missing"}.ListAdvocates(context.Background())
	assert.Error(t, err)
}

func TestFile_ErrorFallsBack(t *testing.T) {
	src := WithFallback(File{FS: fstest.MapFS{}, Path: "missing.json"}, discardLogger())

	got, err := src.ListAdvocates(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
