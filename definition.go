package cmdtree

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Argument describes one positional argument. Arguments are matched against positional tokens in
// the order they were added to a command.
type Argument struct {
	// Name identifies the argument within its command. It is used as the key in [State.Arguments]
	// and in help text.
	Name string

	// Description is shown in help text.
	Description string

	// Required marks the argument as mandatory. A missing required argument is reported to the
	// command's OnMissingArguments hook.
	Required bool
}

// Option describes one named flag option, matched by its long form (--name) or its short form (-n).
type Option struct {
	// Long is the option's long name without the leading dashes. It must be unique within a command
	// and is the key used by [GetOption] and [State.IsSet].
	Long string

	// Short is an optional single-character alias, without the leading dash.
	Short string

	// Description is shown in help text.
	Description string

	// Required marks the option as mandatory. An option with a Default is always satisfied.
	Required bool

	// TakesValue reports whether the option consumes a value. Options that do not take a value are
	// boolean flags, set to true by their presence.
	TakesValue bool

	// Default is used when a value-taking option is absent. The empty string means no default.
	Default string
}

func (o Option) hasDefault() bool {
	return o.TakesValue && o.Default != ""
}

func validateArgument(a Argument) string {
	if a.Name == "" {
		return "argument has no name"
	}
	if strings.ContainsAny(a.Name, " \t") {
		return "argument name " + strconv.Quote(a.Name) + " contains spaces"
	}
	return ""
}

func validateOption(o Option) string {
	switch {
	case o.Long == "":
		return "option has no long name"
	case strings.HasPrefix(o.Long, "-"):
		return "option name " + strconv.Quote(o.Long) + " must not start with a dash"
	case strings.ContainsAny(o.Long, "= \t"):
		return "option name " + strconv.Quote(o.Long) + " must not contain spaces or '='"
	}
	if o.Short != "" {
		if utf8.RuneCountInString(o.Short) != 1 {
			return "short name " + strconv.Quote(o.Short) + " of option " + strconv.Quote(o.Long) + " must be a single character"
		}
		if o.Short == "-" || o.Short == "=" {
			return "short name " + strconv.Quote(o.Short) + " of option " + strconv.Quote(o.Long) + " is not allowed"
		}
	}
	return ""
}
