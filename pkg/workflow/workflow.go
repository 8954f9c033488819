package workflow

import (
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
)

// A WorkflowRegisterer is a Workflow extended with the Entrypoint that implements its action.
type WorkflowRegisterer interface {
	Identifier() Identifier
	GetName() string
	GetFlags() Flags
	IsVisible() bool
	Logger(InvocationContext) *zerolog.Logger

	Entrypoint(invocation InvocationContext, input []Data) ([]Data, error)
}

// Register adds w and its flags to the engine.
func Register(w WorkflowRegisterer, e Engine) error {
	fs := pflag.NewFlagSet(w.GetName(), pflag.ContinueOnError)
	w.GetFlags().AddToFlagSet(fs)

	entry, err := e.Register(w.Identifier(), ConfigurationOptionsFromFlagset(fs), w.Entrypoint)
	if err != nil {
		return err
	}

	entry.SetVisibility(w.IsVisible())
	return nil
}

type Workflow struct {
	// Name is also the command the workflow is available at, "results list" becomes
	// `cybedefend results list`.
	Name     string
	TypeName string
	Visible  bool
	Flags    Flagger
}

func (w *Workflow) GetName() string            { return w.Name }
func (w *Workflow) GetFlags() Flags            { return w.Flags.GetFlags() }
func (w *Workflow) IsVisible() bool            { return w.Visible }
func (w *Workflow) Identifier() Identifier     { return NewWorkflowIdentifier(w.Name) }
func (w *Workflow) TypeIdentifier() Identifier { return NewTypeIdentifier(w.Identifier(), w.TypeName) }

// Logger returns the invocation logger tagged with the workflow name.
func (w *Workflow) Logger(ictx InvocationContext) *zerolog.Logger {
	l := ictx.GetEnhancedLogger().With().Str("workflow", w.Name).Logger()
	return &l
}

// Flagger returns a list of flags. Workflows usually keep their flags in a struct for typed access:
//
//	type resultsFlags struct {
//	    Page Flag[int]
//	}
//
//	func (f resultsFlags) GetFlags() Flags { return Flags{f.Page} }
type Flagger interface {
	GetFlags() Flags
}

// Flags holds flags of different types, which is why it is a slice of interfaces rather than Flag[T].
type Flags []interface {
	AddToFlagSet(*pflag.FlagSet)
	// AsArgument renders the flag with its configured value, e.g. "--page=2". ok is false when
	// the flag is not set.
	AsArgument(configuration.Configuration) (arg string, ok bool)
}

func (f Flags) GetFlags() Flags { return f }

func (f Flags) AddToFlagSet(fs *pflag.FlagSet) {
	for _, flag := range f {
		flag.AddToFlagSet(fs)
	}
}

type Flag[T string | bool | int] struct {
	Name         string
	Shorthand    string
	Usage        string
	DefaultValue T
}

func (f Flag[T]) AddToFlagSet(fs *pflag.FlagSet) {
	// type switches on generic values need the any() conversion, see golang/go#49206
	switch v := any(f.DefaultValue).(type) {
	case string:
		fs.StringP(f.Name, f.Shorthand, v, f.Usage)
	case bool:
		fs.BoolP(f.Name, f.Shorthand, v, f.Usage)
	case int:
		fs.IntP(f.Name, f.Shorthand, v, f.Usage)
	}
}

// AsArgument treats bool flags as switches, a false value is reported as not set.
func (f Flag[T]) AsArgument(c configuration.Configuration) (arg string, ok bool) {
	switch v := any(f.Value(c)).(type) {
	case string:
		if v != "" {
			return "--" + f.Name + "=" + v, true
		}
	case bool:
		if v {
			return "--" + f.Name, true
		}
	case int:
		if v != 0 {
			return "--" + f.Name + "=" + strconv.Itoa(v), true
		}
	}

	return "", false
}

// Value returns the configured value of the flag, or DefaultValue when the configuration holds the
// zero value.
func (f Flag[T]) Value(c configuration.Configuration) T {
	switch any(f.DefaultValue).(type) {
	case string:
		if s := c.GetString(f.Name); s != "" {
			return any(s).(T)
		}
	case bool:
		if c.IsSet(f.Name) {
			return any(c.GetBool(f.Name)).(T)
		}
	case int:
		if i := c.GetInt(f.Name); i != 0 {
			return any(i).(T)
		}
	}

	return f.DefaultValue
}
