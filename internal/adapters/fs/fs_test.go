package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundle/internal/adapters/fs"
	"go.trai.ch/bundle/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "a", "c.txt"), "c")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref")
	writeFile(t, filepath.Join(root, "node_modules", "x", "index.js"), "x")

	files := slices.Collect(fs.NewWalker().WalkFiles(root))

	assert.Equal(t, []string{
		filepath.Join(root, "a", "c.txt"),
		filepath.Join(root, "b.txt"),
	}, files)
}

func TestWalker_MissingRoot(t *testing.T) {
	files := slices.Collect(fs.NewWalker().WalkFiles(filepath.Join(t.TempDir(), "missing")))
	assert.Empty(t, files)
}

func TestCompilePattern(t *testing.T) {
	tests := []struct {
		pattern string
		base    string
		match   []string
		noMatch []string
	}{
		{
			pattern: "/p/src/css/**/*.less",
			base:    "/p/src/css",
			match:   []string{"/p/src/css/app.less", "/p/src/css/a/b/x.less"},
			noMatch: []string{"/p/src/css/app.css", "/p/src/cssx/app.less"},
		},
		{
			pattern: "/p/a/**/b/**/*.js",
			base:    "/p/a",
			match:   []string{"/p/a/b/x.js", "/p/a/q/b/x.js", "/p/a/b/r/x.js", "/p/a/q/b/r/s/x.js"},
			noMatch: []string{"/p/a/x.js", "/p/a/bb/x.js"},
		},
		{
			pattern: "/p/src/js/*.js",
			base:    "/p/src/js",
			match:   []string{"/p/src/js/a.js"},
			noMatch: []string{"/p/src/js/lib/b.js", "/p/src/js/a.jsx"},
		},
		{
			pattern: "/p/src/{css,scss}/*.{less,scss}",
			base:    "/p/src",
			match:   []string{"/p/src/css/a.less", "/p/src/scss/b.scss"},
			noMatch: []string{"/p/src/sass/a.less"},
		},
		{
			pattern: "/p/src/app.less",
			base:    "/p/src",
			match:   []string{"/p/src/app.less"},
			noMatch: []string{"/p/src/app.css"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p, err := fs.CompilePattern(tt.pattern)
			require.NoError(t, err)

			assert.Equal(t, tt.base, p.Base())
			for _, m := range tt.match {
				assert.True(t, p.Match(m), m)
			}
			for _, m := range tt.noMatch {
				assert.False(t, p.Match(m), m)
			}
		})
	}
}

func TestCompilePattern_Invalid(t *testing.T) {
	_, err := fs.NewGlobCompiler().Compile("/p/src/[a-")
	require.ErrorContains(t, err, domain.ErrInvalidGlob.Error())
}

func TestResolver_Resolve(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "js", "app.js"), "")
	writeFile(t, filepath.Join(root, "src", "js", "admin.js"), "")
	writeFile(t, filepath.Join(root, "src", "js", "lib", "util.js"), "")
	writeFile(t, filepath.Join(root, "src", "css", "app.less"), "")

	r := fs.NewResolver(fs.NewWalker())

	t.Run("glob and literal are merged, sorted and de-duplicated", func(t *testing.T) {
		got, err := r.Resolve(root, []string{"src/js/*.js", filepath.Join(root, "src", "js", "app.js"), "src/css/app.less"})
		require.NoError(t, err)
		assert.Equal(t, []domain.Input{
			{Path: filepath.Join(root, "src", "css", "app.less"), Rel: "app.less"},
			{Path: filepath.Join(root, "src", "js", "admin.js"), Rel: "admin.js"},
			{Path: filepath.Join(root, "src", "js", "app.js"), Rel: "app.js"},
		}, got)
	})

	t.Run("globstar keeps the layout below the pattern base", func(t *testing.T) {
		got, err := r.Resolve(root, []string{"src/**/*.js"})
		require.NoError(t, err)
		assert.Equal(t, []domain.Input{
			{Path: filepath.Join(root, "src", "js", "admin.js"), Rel: filepath.Join("js", "admin.js")},
			{Path: filepath.Join(root, "src", "js", "app.js"), Rel: filepath.Join("js", "app.js")},
			{Path: filepath.Join(root, "src", "js", "lib", "util.js"), Rel: filepath.Join("js", "lib", "util.js")},
		}, got)
	})

	t.Run("glob without matches is empty", func(t *testing.T) {
		got, err := r.Resolve(root, []string{"src/ts/**/*.ts"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("missing literal fails", func(t *testing.T) {
		_, err := r.Resolve(root, []string{"src/css/missing.less"})
		require.ErrorContains(t, err, domain.ErrInputNotFound.Error())
	})
}

func TestWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "css")
	w := fs.NewWriter()

	asset := &domain.Asset{
		Base:     "app.css",
		Contents: []byte("a{color:red}"),
		Extra:    []domain.Asset{{Base: "app.css.map", Contents: []byte("{}")}},
	}

	written, err := w.Write(dir, asset)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "app.css"), filepath.Join(dir, "app.css.map")}, written)

	data, err := os.ReadFile(filepath.Join(dir, "app.css"))
	require.NoError(t, err)
	assert.Equal(t, "a{color:red}", string(data))

	t.Run("identical contents are not rewritten", func(t *testing.T) {
		past := time.Now().Add(-time.Hour).Truncate(time.Second)
		require.NoError(t, os.Chtimes(filepath.Join(dir, "app.css"), past, past))

		written, err := w.Write(dir, asset)
		require.NoError(t, err)
		assert.Empty(t, written)

		info, err := os.Stat(filepath.Join(dir, "app.css"))
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(past))
	})

	t.Run("changed contents are rewritten", func(t *testing.T) {
		asset.Contents = []byte("a{color:blue}")
		written, err := w.Write(dir, asset)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "app.css")}, written)
	})
}

func TestCopier_CopyDir(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src", "fonts")
	dst := filepath.Join(root, "fonts")
	writeFile(t, filepath.Join(src, "a.woff"), "font-a")
	writeFile(t, filepath.Join(src, "sub", "b.woff2"), "font-b")

	c := fs.NewCopier(fs.NewWalker())

	copied, found, err := c.CopyDir(src, dst)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, copied)

	data, err := os.ReadFile(filepath.Join(dst, "sub", "b.woff2"))
	require.NoError(t, err)
	assert.Equal(t, "font-b", string(data))

	copied, found, err = c.CopyDir(src, dst)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Zero(t, copied, "second copy finds everything up to date")
}

func TestCopier_MissingSource(t *testing.T) {
	root := t.TempDir()
	dst := filepath.Join(root, "images")

	copied, found, err := fs.NewCopier(fs.NewWalker()).CopyDir(filepath.Join(root, "src", "images"), dst)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, copied)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}
