package logging

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
)

const redactMask string = "***"

// ScrubbingLogWriter masks secrets before they reach the log output.
type ScrubbingLogWriter interface {
	zerolog.LevelWriter
	AddTerm(term string, matchGroup int)
	RemoveTerm(term string)
}

type scrubStruct struct {
	groupToRedact int
	regex         *regexp.Regexp
}

type ScrubbingDict map[string]scrubStruct

type scrubbingLevelWriter struct {
	m         sync.RWMutex
	writer    zerolog.LevelWriter
	scrubDict ScrubbingDict
}

func NewScrubbingWriter(writer zerolog.LevelWriter, scrubDict ScrubbingDict) ScrubbingLogWriter {
	return &scrubbingLevelWriter{
		writer:    writer,
		scrubDict: addMandatoryMasking(scrubDict),
	}
}

// GetScrubDictFromConfig returns the mandatory patterns plus the API key currently configured.
func GetScrubDictFromConfig(config configuration.Configuration) ScrubbingDict {
	dict := addMandatoryMasking(ScrubbingDict{})
	addTermToDict(regexp.QuoteMeta(config.GetString(configuration.API_KEY)), 0, dict)
	return dict
}

func addTermToDict(term string, matchGroup int, dict ScrubbingDict) {
	if term != "" {
		dict[term] = scrubStruct{matchGroup, regexp.MustCompile(term)}
	}
}

func addMandatoryMasking(dict ScrubbingDict) ScrubbingDict {
	const charGroup = "[a-zA-Z0-9-_:.]{6,}"
	patterns := map[string]int{
		`(http(s)?://)((.+?):(.+?))@(\S+)`:                       3,
		fmt.Sprintf(`(?i)(x-api-key:? ?\[?)(%s)`, charGroup):     2,
		fmt.Sprintf(`(?i)("?api_?key"?[:=] ?"?)(%s)`, charGroup): 2,
		fmt.Sprintf(`(CYBEDEFEND_API_KEY)=(%s)`, charGroup):      2,
		fmt.Sprintf(`([b|B]earer )(%s)`, charGroup):              2,
	}

	for pattern, group := range patterns {
		addTermToDict(pattern, group, dict)
	}
	return dict
}

func (w *scrubbingLevelWriter) AddTerm(term string, matchGroup int) {
	w.m.Lock()
	defer w.m.Unlock()
	addTermToDict(term, matchGroup, w.scrubDict)
}

func (w *scrubbingLevelWriter) RemoveTerm(term string) {
	w.m.Lock()
	defer w.m.Unlock()
	delete(w.scrubDict, term)
}

func (w *scrubbingLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	w.m.RLock()
	defer w.m.RUnlock()
	return internalWrite(w.scrubDict, p, func(p []byte) (int, error) {
		return w.writer.WriteLevel(level, p)
	})
}

func (w *scrubbingLevelWriter) Write(p []byte) (int, error) {
	w.m.RLock()
	defer w.m.RUnlock()
	return internalWrite(w.scrubDict, p, w.writer.Write)
}

func scrub(p []byte, scrubDict ScrubbingDict) []byte {
	s := string(p)
	for _, entry := range scrubDict {
		for _, match := range entry.regex.FindAllStringSubmatch(s, -1) {
			if entry.groupToRedact < len(match) && len(match[entry.groupToRedact]) > 0 {
				s = strings.ReplaceAll(s, match[entry.groupToRedact], redactMask)
			}
		}
	}
	return []byte(s)
}

func internalWrite(dict ScrubbingDict, p []byte, writeFunc func(p []byte) (int, error)) (int, error) {
	scrubbedDataWritten := 0
	scrubbedData := scrub(p, dict)

	for errorsSeen := 0; scrubbedDataWritten < len(scrubbedData); {
		written, err := writeFunc(scrubbedData[scrubbedDataWritten:])
		scrubbedDataWritten += written

		if err != nil {
			errorsSeen++
		}

		// circuit breaker
		if errorsSeen > 10 {
			return len(p), err
		}

		time.Sleep(time.Millisecond * time.Duration(errorsSeen*errorsSeen*10))
	}

	// the original length, the redacted one differs
	return len(p), nil
}

// NewConsoleWriter returns the human readable stderr writer used by the CLI.
func NewConsoleWriter(out io.Writer) zerolog.LevelWriter {
	return zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true})
}
