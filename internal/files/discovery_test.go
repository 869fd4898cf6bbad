package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(rel), 0644))
}

func TestNewDiscovery(t *testing.T) {
	discovery := NewDiscovery("/test/base")
	assert.NotNil(t, discovery)
	assert.Equal(t, "/test/base", discovery.basePath)
}

func TestFindReportFiles(t *testing.T) {
	tests := []struct {
		name       string
		files      []string
		extensions []string
		expected   []string
	}{
		{
			name:       "nested folders",
			files:      []string{"2019/q1.xlsx", "2025/jan/report.xlsx", "top.xlsx"},
			extensions: []string{".xlsx"},
			expected:   []string{"2019/q1.xlsx", "2025/jan/report.xlsx", "top.xlsx"},
		},
		{
			name:       "extension is case-insensitive",
			files:      []string{"a.XLSX", "b.xlsx"},
			extensions: []string{".xlsx"},
			expected:   []string{"a.XLSX", "b.xlsx"},
		},
		{
			name:       "other types and lock files skipped",
			files:      []string{"data.csv", "~$open.xlsx", "notes.txt", "real.xlsx"},
			extensions: []string{".xlsx"},
			expected:   []string{"real.xlsx"},
		},
		{
			name:       "multiple extensions",
			files:      []string{"a.xlsx", "b.xlsm", "c.xls"},
			extensions: []string{".xlsx", ".xlsm"},
			expected:   []string{"a.xlsx", "b.xlsm"},
		},
		{
			name:       "empty directory",
			extensions: []string{".xlsx"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				touch(t, root, f)
			}

			found, err := NewDiscovery("").FindReportFiles(root, tt.extensions)
			require.NoError(t, err)

			var got []string
			for _, f := range found {
				rel, err := filepath.Rel(root, f.Path)
				require.NoError(t, err)
				got = append(got, filepath.ToSlash(rel))
				assert.Equal(t, filepath.Base(f.Path), f.Name)
				assert.Positive(t, f.Size)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFindReportFiles_RelativeToBase(t *testing.T) {
	base := t.TempDir()
	touch(t, base, "incoming/2020/a.xlsx")

	found, err := NewDiscovery(base).FindExcelFiles("incoming")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(base, "incoming", "2020", "a.xlsx"), found[0].Path)
}

func TestFindReportFiles_Errors(t *testing.T) {
	root := t.TempDir()

	_, err := NewDiscovery("").FindExcelFiles(filepath.Join(root, "missing"))
	assert.Error(t, err)

	touch(t, root, "file.xlsx")
	_, err = NewDiscovery("").FindExcelFiles(filepath.Join(root, "file.xlsx"))
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.xlsx")
	touch(t, root, "copy/a.xlsx")
	touch(t, root, "b.xlsx")

	a, err := Fingerprint(filepath.Join(root, "a.xlsx"))
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := Fingerprint(filepath.Join(root, "b.xlsx"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	require.NoError(t, os.WriteFile(filepath.Join(root, "copy", "a.xlsx"), []byte("a.xlsx"), 0644))
	c, err := Fingerprint(filepath.Join(root, "copy", "a.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, a, c)

	_, err = Fingerprint(filepath.Join(root, "missing.xlsx"))
	assert.Error(t, err)
}
