package utils

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/constants"
)

// DefaultExcludes are applied to every project: version control and dependency directories and
// hidden files.
var DefaultExcludes = []string{".git/", "node_modules/", "vendor/", ".*"}

// DefaultRuleFiles are read in every directory of the project, their lines use gitignore syntax.
var DefaultRuleFiles = []string{".gitignore", constants.CYBEDEFEND_IGNORE_FILE}

// Filterable decides whether a path is excluded. Paths are relative to the project root and
// use forward slashes, directories end with a slash.
type Filterable interface {
	Filter(path string) bool
}

type FileFilter struct {
	path             string
	logger           *zerolog.Logger
	FilterStrategies []Filterable
	ruleFiles        []string
}

type FileFilterOption func(*FileFilter)

func WithFileFilterStrategies(strategies []Filterable) FileFilterOption {
	return func(filter *FileFilter) {
		filter.FilterStrategies = append(filter.FilterStrategies, strategies...)
	}
}

func WithDefaultRulesFilter() FileFilterOption {
	return WithExcludeGlobs(DefaultExcludes)
}

// WithExcludeGlobs excludes paths matching any of the given gitignore style patterns.
func WithExcludeGlobs(globs []string) FileFilterOption {
	return func(filter *FileFilter) {
		if len(globs) == 0 {
			return
		}
		filter.FilterStrategies = append(filter.FilterStrategies, NewIgnoresFileFilterFromGlobs(globs))
	}
}

// WithRuleFiles sets the names of the ignore files honoured in every directory.
func WithRuleFiles(ruleFiles []string) FileFilterOption {
	return func(filter *FileFilter) {
		filter.ruleFiles = ruleFiles
	}
}

func NewFileFilter(path string, logger *zerolog.Logger, options ...FileFilterOption) *FileFilter {
	filter := &FileFilter{
		path:      path,
		logger:    logger,
		ruleFiles: DefaultRuleFiles,
	}

	for _, option := range options {
		option(filter)
	}

	return filter
}

// GetFilteredFiles returns the relative, slash separated paths of all regular files below the root
// that are not excluded, sorted lexically. Excluded directories are not entered. Ignore files apply
// to the directory they are found in and everything below it.
func (ff *FileFilter) GetFilteredFiles(ctx context.Context) ([]string, error) {
	scoped := map[string]*IgnoresFileFilter{}
	var files []string

	err := filepath.WalkDir(ff.path, func(current string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, err := filepath.Rel(ff.path, current)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && ff.isExcluded(rel+"/", scoped) {
				ff.logger.Trace().Str("path", rel).Msg("skipping excluded directory")
				return filepath.SkipDir
			}
			if rules := ff.readRuleFiles(current); rules != nil {
				scoped[rel] = rules
			}
			return nil
		}

		if !d.Type().IsRegular() || ff.isExcluded(rel, scoped) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func (ff *FileFilter) isExcluded(rel string, scoped map[string]*IgnoresFileFilter) bool {
	for _, strategy := range ff.FilterStrategies {
		if strategy.Filter(rel) {
			return true
		}
	}

	// rules of a directory only see paths relative to that directory
	for dir := path.Dir(strings.TrimSuffix(rel, "/")); ; dir = path.Dir(dir) {
		if rules, ok := scoped[dir]; ok {
			scopedPath := rel
			if dir != "." {
				scopedPath = strings.TrimPrefix(rel, dir+"/")
			}
			if rules.Filter(scopedPath) {
				return true
			}
		}
		if dir == "." || dir == "/" {
			return false
		}
	}
}

func (ff *FileFilter) readRuleFiles(dir string) *IgnoresFileFilter {
	var lines []string
	for _, ruleFile := range ff.ruleFiles {
		content, err := os.ReadFile(filepath.Join(dir, ruleFile))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			ff.logger.Warn().Err(err).Str("file", ruleFile).Msg("failed to read ignore file")
			continue
		}
		lines = append(lines, parseIgnoreFile(content)...)
	}

	if len(lines) == 0 {
		return nil
	}
	return NewIgnoresFileFilterFromGlobs(lines)
}

// parseIgnoreFile returns the rules of a gitignore style file, comments and blank lines dropped.
func parseIgnoreFile(content []byte) []string {
	var rules []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	return rules
}

// IgnoresFileFilter matches gitignore style rules, for .gitignore, .cybedefendignore and
// configured excludes.
type IgnoresFileFilter struct {
	ignores *gitignore.GitIgnore
}

func NewIgnoresFileFilterFromGlobs(globs []string) *IgnoresFileFilter {
	return &IgnoresFileFilter{ignores: gitignore.CompileIgnoreLines(globs...)}
}

func (ff *IgnoresFileFilter) Filter(path string) bool {
	if ff.ignores == nil {
		return false
	}
	return ff.ignores.MatchesPath(path)
}
