package fs_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/streamplay/vikinglink"
	vikfs "github.com/streamplay/vikinglink/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestStore_WriteAndReadOxxFile(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a record through disk", func(t *testing.T) {
		t.Parallel()

		store := vikfs.NewStore(afero.NewMemMapFs())

		file := &vikinglink.OxxFile{
			ID:         "rec-1",
			FileName:   "movie.mkv",
			Size:       1536,
			VikingLink: strptr("https://vikingfile.com/f/x"),
			DriveLinks: []vikinglink.DriveLink{{FileID: "d1", WebViewLink: "https://drive.google.com/file/d/1"}},
		}

		require.NoError(t, store.WriteOxxFile(file, "records/rec-1.json"))

		got, err := store.ReadOxxFile("records/rec-1.json")
		require.NoError(t, err)
		assert.Equal(t, file, got)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		store := vikfs.NewStore(fs)

		require.NoError(t, store.WriteOxxFile(&vikinglink.OxxFile{ID: "x"}, "a/b/c/x.json"))

		exists, err := afero.Exists(fs, "a/b/c/x.json")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("rejects invalid records on write", func(t *testing.T) {
		t.Parallel()

		store := vikfs.NewStore(afero.NewMemMapFs())

		err := store.WriteOxxFile(&vikinglink.OxxFile{ID: "x", VikingLink: strptr("")}, "x.json")
		require.Error(t, err)
		assert.Equal(t, vikinglink.EINVALID, vikinglink.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing files", func(t *testing.T) {
		t.Parallel()

		store := vikfs.NewStore(afero.NewMemMapFs())

		_, err := store.ReadOxxFile("missing.json")
		require.Error(t, err)
		assert.Equal(t, vikinglink.ENOTFOUND, vikinglink.ErrorCode(err))
	})

	t.Run("returns EINVALID for malformed JSON", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "bad.json", []byte("{not json"), 0o644))

		store := vikfs.NewStore(fs)
		_, err := store.ReadOxxFile("bad.json")
		require.Error(t, err)
		assert.Equal(t, vikinglink.EINVALID, vikinglink.ErrorCode(err))
	})

	t.Run("missing JSON keys decode to defaults", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "sparse.json", []byte(`{"id":"rec-1"}`), 0o644))

		store := vikfs.NewStore(fs)
		got, err := store.ReadOxxFile("sparse.json")
		require.NoError(t, err)

		assert.Equal(t, "rec-1", got.ID)
		assert.Zero(t, got.Size)
		assert.Nil(t, got.VikingLink)
		assert.Empty(t, got.DriveLinks)
	})
}

func TestStore_ReadAllOxxFiles(t *testing.T) {
	t.Parallel()

	t.Run("reads every json file sorted by name", func(t *testing.T) {
		t.Parallel()

		store := vikfs.NewStore(afero.NewMemMapFs())

		require.NoError(t, store.WriteOxxFile(&vikinglink.OxxFile{ID: "b"}, "records/b.json"))
		require.NoError(t, store.WriteOxxFile(&vikinglink.OxxFile{ID: "a"}, "records/a.json"))

		files, err := store.ReadAllOxxFiles("records")
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "a", files[0].ID)
		assert.Equal(t, "b", files[1].ID)
	})

	t.Run("skips non-json entries", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		store := vikfs.NewStore(fs)

		require.NoError(t, store.WriteOxxFile(&vikinglink.OxxFile{ID: "a"}, "records/a.json"))
		require.NoError(t, afero.WriteFile(fs, "records/notes.txt", []byte("x"), 0o644))
		require.NoError(t, fs.MkdirAll("records/sub", 0o755))

		files, err := store.ReadAllOxxFiles("records")
		require.NoError(t, err)
		assert.Len(t, files, 1)
	})

	t.Run("returns ENOTFOUND for missing directories", func(t *testing.T) {
		t.Parallel()

		store := vikfs.NewStore(afero.NewMemMapFs())

		_, err := store.ReadAllOxxFiles("missing")
		require.Error(t, err)
		assert.Equal(t, vikinglink.ENOTFOUND, vikinglink.ErrorCode(err))
	})
}
