package utils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const FILEPERM_666 fs.FileMode = 0o666

// OutputDestination is where workflow output ends up, stdout and files by default.
type OutputDestination interface {
	Println(a ...any) (n int, err error)
	Remove(name string) error
	WriteFile(filename string, data []byte, perm fs.FileMode) error
	GetWriter() io.Writer
}

type outputDestination struct {
	writer io.Writer
}

func NewOutputDestination() OutputDestination {
	return NewOutputDestinationWithWriter(os.Stdout)
}

// NewOutputDestinationWithWriter prints to writer instead of stdout. Files are still written to disk.
func NewOutputDestinationWithWriter(writer io.Writer) OutputDestination {
	return &outputDestination{writer: writer}
}

func (o *outputDestination) Println(a ...any) (n int, err error) {
	return fmt.Fprintln(o.writer, a...)
}

// Remove ignores files that do not exist.
func (o *outputDestination) Remove(name string) error {
	if _, err := os.Stat(name); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return os.Remove(name)
}

func (o *outputDestination) WriteFile(filename string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(filename, data, perm)
}

func (o *outputDestination) GetWriter() io.Writer {
	return o.writer
}
