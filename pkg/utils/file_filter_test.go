package utils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFileInPath(t *testing.T, filePath string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
	require.NoError(t, os.WriteFile(filePath, content, 0o600))
}

func createProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		createFileInPath(t, filepath.Join(root, filepath.FromSlash(name)), []byte(content))
	}
	return root
}

type fileFilterTestCase struct {
	name          string
	files         map[string]string
	options       []FileFilterOption
	expectedFiles []string
}

func TestFileFilter_GetFilteredFiles(t *testing.T) {
	logger := zerolog.Nop()

	testCases := []fileFilterTestCase{
		{
			name: "default excludes",
			files: map[string]string{
				"main.go":                    "",
				"src/app.js":                 "",
				".git/config":                "",
				"node_modules/lodash/a.js":   "",
				"web/node_modules/react.js":  "",
				"vendor/mod/mod.go":          "",
				".env":                       "SECRET=1",
				"src/.idea/workspace.xml":    "",
				"docs/vendor.md":             "",
				"pkg/some.name.with.dots.go": "",
			},
			options:       []FileFilterOption{WithDefaultRulesFilter()},
			expectedFiles: []string{"docs/vendor.md", "main.go", "pkg/some.name.with.dots.go", "src/app.js"},
		},
		{
			name: "gitignore at root",
			files: map[string]string{
				".gitignore":      "# build output\ndist/\n*.log\n\n!keep.log\n",
				"dist/bundle.js":  "",
				"app.log":         "",
				"keep.log":        "",
				"src/debug.log":   "",
				"src/index.ts":    "",
				"distribution.md": "",
			},
			options:       []FileFilterOption{WithDefaultRulesFilter()},
			expectedFiles: []string{"distribution.md", "keep.log", "src/index.ts"},
		},
		{
			name: "nested ignore files are scoped to their directory",
			files: map[string]string{
				"api/.cybedefendignore": "fixtures/\n/generated.go\n",
				"api/fixtures/a.json":   "",
				"api/generated.go":      "",
				"api/sub/generated.go":  "",
				"fixtures/b.json":       "",
			},
			options:       []FileFilterOption{WithDefaultRulesFilter()},
			expectedFiles: []string{"api/sub/generated.go", "fixtures/b.json"},
		},
		{
			name: "exclude globs",
			files: map[string]string{
				"terraform/main.tf":    "",
				"terraform/test.tf":    "",
				"testdata/sample.json": "",
			},
			options:       []FileFilterOption{WithExcludeGlobs([]string{"testdata/", "**/test.tf"})},
			expectedFiles: []string{"terraform/main.tf"},
		},
		{
			name: "no options keeps hidden files",
			files: map[string]string{
				".hidden": "",
				"visible": "",
			},
			expectedFiles: []string{".hidden", "visible"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			root := createProject(t, testCase.files)

			filter := NewFileFilter(root, &logger, testCase.options...)
			actual, err := filter.GetFilteredFiles(context.Background())

			require.NoError(t, err)
			assert.Equal(t, testCase.expectedFiles, actual)
		})
	}
}

func TestFileFilter_GetFilteredFiles_Cancelled(t *testing.T) {
	logger := zerolog.Nop()
	root := createProject(t, map[string]string{"a.txt": "", "b.txt": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileFilter(root, &logger).GetFilteredFiles(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileFilter_GetFilteredFiles_MissingRoot(t *testing.T) {
	logger := zerolog.Nop()

	_, err := NewFileFilter(filepath.Join(t.TempDir(), "missing"), &logger).GetFilteredFiles(context.Background())

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIgnoresFileFilter(t *testing.T) {
	filter := NewIgnoresFileFilterFromGlobs([]string{"*.min.js", "build/"})

	assert.True(t, filter.Filter("static/app.min.js"))
	assert.True(t, filter.Filter("build/"))
	assert.True(t, filter.Filter("build/out.txt"))
	assert.False(t, filter.Filter("static/app.js"))
	assert.False(t, (&IgnoresFileFilter{}).Filter("anything"))
}
