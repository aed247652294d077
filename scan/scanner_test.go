package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markwave/dartmigrate/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("// "+f), 0644))
	}
	return root
}

func relAll(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestScan(t *testing.T) {
	tree := []string{
		"main.dart",
		"b.dart",
		"README.md",
		"ui/home.dart",
		"ui/home.g.dart",
		"ui/widgets/button.dart",
		"generated/l10n.dart",
		".dart_tool/cache.dart",
	}

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "dart files breadth first",
			opts: Options{Extensions: []string{".dart"}},
			want: []string{"b.dart", "main.dart", "generated/l10n.dart", "ui/home.dart", "ui/home.g.dart", "ui/widgets/button.dart"},
		},
		{
			name: "extension without dot",
			opts: Options{Extensions: []string{"md"}},
			want: []string{"README.md"},
		},
		{
			name: "no extension filter",
			opts: Options{},
			want: []string{"README.md", "b.dart", "main.dart", "generated/l10n.dart", "ui/home.dart", "ui/home.g.dart", "ui/widgets/button.dart"},
		},
		{
			name: "exclude files and directories",
			opts: Options{Extensions: []string{".dart"}, Exclude: []string{"**.g.dart", "generated"}},
			want: []string{"b.dart", "main.dart", "ui/home.dart", "ui/widgets/button.dart"},
		},
		{
			name: "single star stops at slash",
			opts: Options{Extensions: []string{".dart"}, Exclude: []string{"*.dart"}},
			want: []string{"generated/l10n.dart", "ui/home.dart", "ui/home.g.dart", "ui/widgets/button.dart"},
		},
		{
			name: "hidden directories on request",
			opts: Options{Extensions: []string{".dart"}, IncludeHidden: true, Exclude: []string{"ui", "generated"}},
			want: []string{"b.dart", "main.dart", ".dart_tool/cache.dart"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := makeTree(t, tree...)
			s, err := NewScanner(tt.opts)
			require.NoError(t, err)

			files, err := s.Scan(root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, root, files))

			again, err := s.Scan(root)
			require.NoError(t, err)
			assert.Equal(t, files, again)
		})
	}
}

func TestScanModifiedAfter(t *testing.T) {
	root := makeTree(t, "old.dart", "new.dart")
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "old.dart"), past, past))

	s, err := NewScanner(Options{Extensions: []string{".dart"}, ModifiedAfter: time.Now().Add(-24 * time.Hour)})
	require.NoError(t, err)
	files, err := s.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"new.dart"}, relAll(t, root, files))
}

func TestScanErrors(t *testing.T) {
	root := makeTree(t, "file.dart")
	s, err := NewScanner(Options{})
	require.NoError(t, err)

	_, err = s.Scan(filepath.Join(root, "missing"))
	assert.True(t, errors.Is(err, errs.ErrRootNotFound))

	_, err = s.Scan(filepath.Join(root, "file.dart"))
	assert.True(t, errors.Is(err, errs.ErrRootNotDir))

	_, err = NewScanner(Options{Exclude: []string{"[a-"}})
	assert.True(t, errors.Is(err, errs.ErrInvalidExclude))
}

func TestScanEmptyRoot(t *testing.T) {
	s, err := NewScanner(Options{Extensions: []string{".dart"}})
	require.NoError(t, err)
	files, err := s.Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}
