// Package archive packages a project directory into a zip file that is uploaded for scanning.
package archive

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/projectconfig"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/utils"
)

const op = "archive project"

//go:generate go tool github.com/golang/mock/mockgen -source=archive.go -destination ../mocks/archive.go -package mocks -self_package github.com/CybeDefend/cybedefend-vscode-sub000/pkg/archive/

type Archiver interface {
	// Archive writes all files below root that are not excluded into a new zip file and returns its
	// path. The caller owns the file. On failure or cancellation no file is left behind.
	Archive(ctx context.Context, root string) (string, error)
}

type Option func(*ZipArchiver)

// WithExcludeGlobs adds gitignore style patterns on top of the default excludes.
func WithExcludeGlobs(globs []string) Option {
	return func(a *ZipArchiver) {
		a.excludes = append(a.excludes, globs...)
	}
}

// WithFileAddedCallback is invoked after every file that was added, with the number of files added
// so far and the number of files enumerated.
func WithFileAddedCallback(callback func(added int, total int)) Option {
	return func(a *ZipArchiver) {
		a.onFileAdded = callback
	}
}

type ZipArchiver struct {
	logger      *zerolog.Logger
	tempDir     string
	excludes    []string
	onFileAdded func(added int, total int)
}

func NewZipArchiver(logger *zerolog.Logger, tempDir string, options ...Option) *ZipArchiver {
	a := &ZipArchiver{
		logger:      logger,
		tempDir:     tempDir,
		onFileAdded: func(int, int) {},
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *ZipArchiver) Archive(ctx context.Context, root string) (_ string, err error) {
	if err = ctx.Err(); err != nil {
		return "", a.classify(err)
	}

	files, err := a.enumerate(ctx, root)
	if err != nil {
		return "", a.classify(err)
	}

	if err = ctx.Err(); err != nil {
		return "", a.classify(err)
	}

	out, err := os.CreateTemp(a.tempDir, "cybedefend-scan-*.zip")
	if err != nil {
		return "", errorcatalog.NewIOError(op, err)
	}
	partial := out.Name()

	zipWriter := zip.NewWriter(out)
	defer func() {
		if err == nil {
			return
		}
		_ = zipWriter.Close()
		_ = out.Close()
		if removeErr := os.Remove(partial); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			a.logger.Warn().Err(removeErr).Str("archive", partial).Msg("failed to remove partial archive")
		}
	}()

	added := 0
	for _, file := range files {
		if err = ctx.Err(); err != nil {
			return "", a.classify(err)
		}

		var ok bool
		ok, err = a.addFile(zipWriter, root, file)
		if err != nil {
			return "", errorcatalog.NewIOError(op, err)
		}
		if ok {
			added++
			a.onFileAdded(added, len(files))
		}
	}

	if err = zipWriter.Close(); err != nil {
		return "", errorcatalog.NewIOError(op, err)
	}
	if err = out.Close(); err != nil {
		return "", errorcatalog.NewIOError(op, err)
	}

	a.logger.Debug().Str("archive", partial).Int("files", added).Msg("project archived")
	return partial, nil
}

func (a *ZipArchiver) enumerate(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "archive", Path: root, Err: errors.New("not a directory")}
	}

	projectConfig, err := projectconfig.Load(root)
	if err != nil {
		return nil, errorcatalog.NewConfigurationError(op, err.Error())
	}

	filter := utils.NewFileFilter(root, a.logger,
		utils.WithDefaultRulesFilter(),
		utils.WithExcludeGlobs(a.excludes),
		utils.WithExcludeGlobs(projectConfig.Exclude),
	)
	return filter.GetFilteredFiles(ctx)
}

// addFile copies one file into the archive. A file that disappeared since it was enumerated is
// skipped and reported as not added.
func (a *ZipArchiver) addFile(zipWriter *zip.Writer, root string, relativePath string) (bool, error) {
	file, err := os.Open(filepath.Join(root, filepath.FromSlash(relativePath)))
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Warn().Str("file", relativePath).Msg("file vanished before it could be archived, skipping")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return false, err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return false, err
	}
	header.Name = relativePath
	header.Method = zip.Deflate

	entry, err := zipWriter.CreateHeader(header)
	if err != nil {
		return false, err
	}
	if _, err = io.Copy(entry, file); err != nil {
		return false, err
	}
	return true, nil
}

// classify turns context errors into Cancelled or Timeout, everything else is an IO error.
func (a *ZipArchiver) classify(err error) error {
	var catalogErr *errorcatalog.Error
	if errors.As(err, &catalogErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errorcatalog.Label(op, err)
	}
	return errorcatalog.NewIOError(op, err)
}

var _ Archiver = (*ZipArchiver)(nil)
