package cmdtree

import (
	"fmt"
	"strings"
)

// DefinitionError reports a problem with how a command tree was declared, such as a duplicate
// option or an unnamed command. Definition errors are programmer errors: they are returned
// immediately and never passed to a hook.
type DefinitionError struct {
	// Command is the path of the command being defined, if known.
	Command string
	Msg     string
}

func (e *DefinitionError) Error() string {
	if e.Command == "" {
		return "definition error: " + e.Msg
	}
	return fmt.Sprintf("definition error: command %q: %s", e.Command, e.Msg)
}

func definitionErrorf(c *Command, format string, args ...any) error {
	var path string
	if c != nil {
		path = c.Path()
	}
	return &DefinitionError{Command: path, Msg: fmt.Sprintf(format, args...)}
}

// InputErrorKind identifies the category of an [InputError].
type InputErrorKind int

const (
	MissingArguments InputErrorKind = iota + 1
	UnknownArguments
	UnknownOptions
	MissingValues
	MissingOptions
)

func (k InputErrorKind) String() string {
	switch k {
	case MissingArguments:
		return "missing arguments"
	case UnknownArguments:
		return "unknown arguments"
	case UnknownOptions:
		return "unknown options"
	case MissingValues:
		return "missing values"
	case MissingOptions:
		return "missing options"
	default:
		return "unknown input error"
	}
}

// InputError is returned by the default validation hooks. It carries every offending name found in
// a single parse, so the user sees all of them in one report.
type InputError struct {
	Kind  InputErrorKind
	Names []string
	// Suggestions holds close matches for unknown names, if any were found.
	Suggestions []string
}

func (e *InputError) Error() string {
	var b strings.Builder
	switch e.Kind {
	case MissingArguments:
		b.WriteString(plural(len(e.Names), "missing required argument", "missing required arguments"))
		b.WriteString(": " + strings.Join(e.Names, ", "))
	case UnknownArguments:
		b.WriteString(plural(len(e.Names), "unknown argument", "unknown arguments"))
		b.WriteString(": " + strings.Join(e.Names, ", "))
	case UnknownOptions:
		b.WriteString(plural(len(e.Names), "unknown option", "unknown options"))
		b.WriteString(": " + joinPrefixed(e.Names))
	case MissingValues:
		b.WriteString(plural(len(e.Names), "missing value for option", "missing values for options"))
		b.WriteString(": " + joinPrefixed(e.Names))
	case MissingOptions:
		b.WriteString(plural(len(e.Names), "missing required option", "missing required options"))
		b.WriteString(": " + joinPrefixed(e.Names))
	default:
		b.WriteString(e.Kind.String())
	}
	if len(e.Suggestions) > 0 {
		b.WriteString(". Did you mean one of these?\n\t")
		b.WriteString(strings.Join(e.Suggestions, "\n\t"))
	}
	return b.String()
}

// StageError wraps an error returned by a lifecycle callback with the stage it came from.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NoRunError is returned when the target command has no Run function.
type NoRunError struct {
	Command *Command
}

func (e *NoRunError) Error() string {
	return fmt.Sprintf("command %q has no run function", e.Command.Path())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// joinPrefixed renders option names for messages. Long names are stored bare and get "--"; names
// that kept their dash, such as unknown short options, are shown as typed.
func joinPrefixed(names []string) string {
	prefixed := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, "-") {
			prefixed = append(prefixed, name)
			continue
		}
		prefixed = append(prefixed, formatOptionName(name))
	}
	return strings.Join(prefixed, ", ")
}

func formatOptionName(long string) string {
	return "--" + long
}
