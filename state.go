package cmdtree

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
)

// State is handed to the lifecycle callbacks of the command being executed. It holds the parsed
// arguments and options. Use [GetOption] to retrieve option values by long name.
type State struct {
	// Command is the target command resolved from the input.
	Command *Command
	// Path is the chain of commands from the root down to Command.
	Path []*Command

	// Arguments maps argument names to the positional tokens they matched.
	Arguments map[string]string
	// Args contains positional tokens that matched no declared argument. It is only non-empty when
	// the OnUnknownArguments hook recovered.
	Args []string

	// Standard I/O streams.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Logger receives debug output from the engine. It is never nil.
	Logger *slog.Logger

	options *flag.FlagSet
	set     map[string]bool
}

// Argument returns the value of the named argument, or the empty string if it was not supplied.
func (s *State) Argument(name string) string {
	return s.Arguments[name]
}

// IsSet reports whether the option with the given long name was supplied in the input. Options
// that only hold their default value are not set.
func (s *State) IsSet(long string) bool {
	return s.set[long]
}

// GetOption retrieves an option value by long name, with type inference. Boolean flags are bool,
// value-taking options are string. Example usage:
//
//	caps := GetOption[bool](state, "caps")
//	output := GetOption[string](state, "output")
//
// Inherited options are looked up the same way, since inheritance copies them into the command.
//
// If the option is not declared on the command, or T does not match its type, GetOption panics.
// Either case is a programming error and should fail loud and early.
func GetOption[T any](s *State, long string) T {
	if s.options != nil {
		if f := s.options.Lookup(long); f != nil {
			if getter, ok := f.Value.(flag.Getter); ok {
				value := getter.Get()
				if v, ok := value.(T); ok {
					return v
				}
				err := fmt.Errorf("internal error: type mismatch for option %q in command %q: registered %T, requested %T",
					formatOptionName(long), s.commandPath(), value, *new(T))
				panic(err)
			}
		}
	}
	err := fmt.Errorf("internal error: option %q not found in command %q", formatOptionName(long), s.commandPath())
	panic(err)
}

func (s *State) commandPath() string {
	if s.Command == nil {
		return ""
	}
	return s.Command.Path()
}
