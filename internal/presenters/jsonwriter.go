package presenters

import (
	"io"
	"regexp"
)

type JsonWriter struct {
	next             io.Writer
	regex            *regexp.Regexp
	stripWhiteSpaces bool
}

// NewJsonWriter returns a writer that removes newlines and tabs from indented json if
// stripWhitespaces is set, e.g. for json written to files.
func NewJsonWriter(next io.Writer, stripWhitespaces bool) io.Writer {
	return &JsonWriter{
		next:             next,
		regex:            regexp.MustCompile(`\n\s*`),
		stripWhiteSpaces: stripWhitespaces,
	}
}

func (w *JsonWriter) Write(p []byte) (n int, err error) {
	if !w.stripWhiteSpaces {
		return w.next.Write(p)
	}

	length := len(p)
	_, err = w.next.Write(w.regex.ReplaceAll(p, nil))
	return length, err
}
