package file

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abey/findconf/internal/format"
)

// Test Helpers

// missingName is a base name no directory above a temp dir should contain.
const missingName = "findconf-missing-3f9c2b71"

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func mkdirAll(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0755))
	return path
}

// Tests

func TestLocate(t *testing.T) {
	t.Run("InWorkingDirectory", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "settings.toml"), "debug = true\n")
		t.Chdir(root)

		res, err := New("settings").Locate([]string{"toml"})
		require.NoError(t, err)
		assert.Equal(t, "settings.toml", res.DisplayPath)
		assert.Equal(t, "debug = true\n", res.Contents)
		assert.True(t, filepath.IsAbs(res.Path))
		assert.Equal(t, "settings.toml", filepath.Base(res.Path))
	})

	t.Run("FromNestedDirectory", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "settings.yaml"), "debug: true\n")
		t.Chdir(mkdirAll(t, filepath.Join(root, "nested", "directory")))

		res, err := New("settings").Locate([]string{"yaml"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("..", "..", "settings.yaml"), res.DisplayPath)
		assert.Equal(t, "debug: true\n", res.Contents)
	})

	t.Run("ContentsRoundTrip", func(t *testing.T) {
		root := t.TempDir()
		contents := "# héllo\n\tname = \"wörld\"\r\n\n"
		writeFile(t, filepath.Join(root, "app.toml"), contents)
		t.Chdir(root)

		res, err := New("app").Locate([]string{"toml"})
		require.NoError(t, err)
		assert.Equal(t, contents, res.Contents)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "app.json"), "")
		t.Chdir(root)

		res, err := New("app").Locate([]string{"json"})
		require.NoError(t, err)
		assert.Empty(t, res.Contents)
	})

	t.Run("Subdirectory", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "conf", "app.toml"), "a = 1\n")
		t.Chdir(mkdirAll(t, filepath.Join(root, "src")))

		res, err := New("app").In("conf").Locate([]string{"toml"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("..", "conf", "app.toml"), res.DisplayPath)
	})

	t.Run("SubdirectoryMustMatch", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "app.toml"), "a = 1\n")
		t.Chdir(root)

		_, err := New("app").In(missingName).Locate([]string{"toml"})
		assert.True(t, IsNotFound(err))
	})

	t.Run("ExtensionWithLeadingDot", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "app.yml"), "a: 1\n")
		t.Chdir(root)

		res, err := New("app").Locate([]string{".yml"})
		require.NoError(t, err)
		assert.Equal(t, "app.yml", res.DisplayPath)
	})

	t.Run("SymlinkToFile", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "real.toml"), "a = 1\n")
		require.NoError(t, os.Symlink(filepath.Join(root, "real.toml"), filepath.Join(root, "app.toml")))
		t.Chdir(root)

		res, err := New("app").Locate([]string{"toml"})
		require.NoError(t, err)
		assert.Equal(t, "app.toml", res.DisplayPath)
		assert.Equal(t, "a = 1\n", res.Contents)
	})
}

func TestLocate_Priority(t *testing.T) {
	t.Run("ExtensionOrderWithinDirectory", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "app.yaml"), "from: yaml\n")
		writeFile(t, filepath.Join(root, "app.yml"), "from: yml\n")
		t.Chdir(root)

		res, err := New("app").Locate([]string{"yml", "yaml"})
		require.NoError(t, err)
		assert.Equal(t, "app.yml", res.DisplayPath)

		res, err = New("app").Locate([]string{"yaml", "yml"})
		require.NoError(t, err)
		assert.Equal(t, "app.yaml", res.DisplayPath)
	})

	t.Run("NearerDirectoryWins", func(t *testing.T) {
		root := t.TempDir()
		child := mkdirAll(t, filepath.Join(root, "child"))
		writeFile(t, filepath.Join(root, "app.toml"), "from = \"root\"\n")
		writeFile(t, filepath.Join(child, "app.toml"), "from = \"child\"\n")
		t.Chdir(child)

		res, err := New("app").Locate([]string{"toml"})
		require.NoError(t, err)
		assert.Equal(t, "app.toml", res.DisplayPath)
		assert.Equal(t, "from = \"child\"\n", res.Contents)
	})

	t.Run("NearerDirectoryBeatsPreferredExtension", func(t *testing.T) {
		root := t.TempDir()
		child := mkdirAll(t, filepath.Join(root, "child"))
		writeFile(t, filepath.Join(root, "app.yaml"), "from: root\n")
		writeFile(t, filepath.Join(child, "app.yml"), "from: child\n")
		t.Chdir(child)

		res, err := New("app").Locate([]string{"yaml", "yml"})
		require.NoError(t, err)
		assert.Equal(t, "app.yml", res.DisplayPath)
	})

	t.Run("DirectoryWithMatchingNameIsSkipped", func(t *testing.T) {
		root := t.TempDir()
		child := mkdirAll(t, filepath.Join(root, "child"))
		mkdirAll(t, filepath.Join(child, "app.toml"))
		writeFile(t, filepath.Join(root, "app.toml"), "a = 1\n")
		t.Chdir(child)

		res, err := New("app").Locate([]string{"toml"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("..", "app.toml"), res.DisplayPath)
	})

	t.Run("SymlinkToDirectoryIsSkipped", func(t *testing.T) {
		root := t.TempDir()
		child := mkdirAll(t, filepath.Join(root, "child"))
		target := mkdirAll(t, filepath.Join(root, "target"))
		require.NoError(t, os.Symlink(target, filepath.Join(child, "app.toml")))
		writeFile(t, filepath.Join(root, "app.toml"), "a = 1\n")
		t.Chdir(child)

		res, err := New("app").Locate([]string{"toml"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("..", "app.toml"), res.DisplayPath)
	})
}

func TestLocate_Errors(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := New(missingName).Locate([]string{"toml", "yaml"})
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.False(t, IsIO(err))
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), missingName)

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, missingName, notFound.Name)
	})

	t.Run("NotFoundNamesSubdirectory", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := New(missingName).In("conf").Locate([]string{"toml"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), filepath.Join("conf", missingName))
		assert.NotContains(t, err.Error(), ".toml")
	})

	t.Run("NoExtensions", func(t *testing.T) {
		_, err := New("app").Locate(nil)
		assert.ErrorIs(t, err, ErrNoExtensions)

		_, err = New("app").Find([]string{})
		assert.ErrorIs(t, err, ErrNoExtensions)
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "app.toml"), []byte{0xff, 0xfe, 0x00}, 0644))
		t.Chdir(root)

		_, err := New("app").Locate([]string{"toml"})
		require.Error(t, err)
		assert.True(t, IsIO(err))
		assert.ErrorIs(t, err, ErrInvalidUTF8)

		var ioErr *IOError
		require.ErrorAs(t, err, &ioErr)
		assert.Equal(t, "decode", ioErr.Op)
	})

	t.Run("PermissionDenied", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("Skipping permission test when running as root")
		}

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "app.toml"), "a = 1\n")
		require.NoError(t, os.Chmod(filepath.Join(root, "app.toml"), 0000))
		t.Chdir(root)

		_, err := New("app").Locate([]string{"toml"})
		require.Error(t, err)
		assert.True(t, IsIO(err))
		assert.False(t, IsNotFound(err))
		assert.True(t, errors.Is(err, fs.ErrPermission))
	})
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.json"), "{}")
	t.Chdir(mkdirAll(t, filepath.Join(root, "a", "b", "c")))

	found, err := New("app").Find([]string{"toml", "json"})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(found))
	assert.Equal(t, "app.json", filepath.Base(found))
}

func TestFindFrom(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.toml"), "a = 1\n")
	start := mkdirAll(t, filepath.Join(root, "x", "y"))

	found, err := New("app").findFrom(start, []string{"toml"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "app.toml"), found)

	_, err = New(missingName).findFrom(start, []string{"toml"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.yml"), "a: 1\n")
	writeFile(t, filepath.Join(root, "app.json"), "{}")
	t.Chdir(root)

	res, err := New("app").Resolve(format.YAML)
	require.NoError(t, err)
	assert.Equal(t, "app.yml", res.DisplayPath)

	res, err = New("app").Resolve(format.Auto)
	require.NoError(t, err)
	assert.Equal(t, "app.json", res.DisplayPath)
}

func TestLocator_In(t *testing.T) {
	base := New("app")
	nested := base.In("conf")

	assert.Equal(t, "app", base.Basename())
	assert.Equal(t, filepath.Join("conf", "app"), nested.Basename())
}

func TestLocate_Concurrent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.toml"), "a = 1\n")
	t.Chdir(mkdirAll(t, filepath.Join(root, "sub")))

	loc := New("app")
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = loc.Locate([]string{"toml"})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}
