package cmdtree

import (
	"slices"
	"strings"

	"github.com/mfridman/cmdtree/pkg/suggest"
)

// maxSuggestions caps the number of "did you mean" candidates in a default error.
const maxSuggestions = 3

// The Default hooks are used when a command leaves the corresponding hook nil. They are stateless
// and may be called from a custom hook to fall back to the default behavior.

// DefaultMissingArguments reports the required arguments that were not supplied.
func DefaultMissingArguments(_ *Command, names []string) error {
	return &InputError{Kind: MissingArguments, Names: slices.Clone(names)}
}

// DefaultUnknownArguments reports positional tokens left over after every argument was filled.
// When the command has subcommands, close matches among their names are suggested.
func DefaultUnknownArguments(c *Command, names []string) error {
	var known []string
	for _, sub := range c.subCommands {
		if !sub.Hidden {
			known = append(known, sub.names()...)
		}
	}
	return &InputError{
		Kind:        UnknownArguments,
		Names:       slices.Clone(names),
		Suggestions: suggestAll(names, known),
	}
}

// DefaultUnknownOptions reports option tokens that match no declared option, suggesting close
// matches among the declared long names.
func DefaultUnknownOptions(c *Command, names []string) error {
	bare := make([]string, 0, len(names))
	for _, name := range names {
		bare = append(bare, strings.TrimLeft(name, "-"))
	}
	suggestions := suggestAll(bare, c.optionOrder)
	for i, s := range suggestions {
		suggestions[i] = formatOptionName(s)
	}
	return &InputError{
		Kind:        UnknownOptions,
		Names:       slices.Clone(names),
		Suggestions: suggestions,
	}
}

// DefaultMissingValues reports value-taking options that were not followed by a value.
func DefaultMissingValues(_ *Command, names []string) error {
	return &InputError{Kind: MissingValues, Names: slices.Clone(names)}
}

// DefaultMissingOptions reports required options that were not supplied and have no default.
func DefaultMissingOptions(_ *Command, names []string) error {
	return &InputError{Kind: MissingOptions, Names: slices.Clone(names)}
}

// DefaultOnError returns err unchanged, so the failure propagates to the caller of [Execute].
func DefaultOnError(_ *Command, err error) error {
	return err
}

func suggestAll(targets, candidates []string) []string {
	if len(candidates) == 0 {
		return nil
	}
	var out []string
	for _, target := range targets {
		for _, s := range suggest.FindSimilar(target, candidates, maxSuggestions) {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
