package cmdtree

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mfridman/xflag"
)

// parseResult is the outcome of parsing the tokens left after resolution against one command. The
// problem lists are collected over the whole token sequence and reported together.
type parseResult struct {
	arguments map[string]string
	// args holds positional tokens that matched no declared argument.
	args    []string
	options *flag.FlagSet
	set     map[string]bool

	missingArguments []string
	unknownArguments []string
	unknownOptions   []string
	missingValues    []string
	missingOptions   []string
}

// parse classifies tokens as options or positionals for the command c.
//
// Option values are applied to a flag set built fresh for every call, so parsing never mutates the
// command's declarations and the same tokens always produce the same result. Known options are
// rewritten to their canonical --long or --long=value form before being handed to the flag set.
func parse(c *Command, tokens []string) (*parseResult, error) {
	r := &parseResult{
		arguments: make(map[string]string),
		options:   newOptionSet(c),
		set:       make(map[string]bool),
	}

	// Everything after the terminator is positional.
	argsToParse, remainingArgs := tokens, []string(nil)
	if i := slices.Index(tokens, "--"); i >= 0 {
		argsToParse, remainingArgs = tokens[:i], tokens[i+1:]
	}

	// canonical keeps positionals in place and carries known options in --long or --long=value
	// form. Unknown options are dropped.
	var canonical []string
	for i := 0; i < len(argsToParse); i++ {
		tok := argsToParse[i]
		if !isOptionToken(tok) {
			canonical = append(canonical, tok)
			continue
		}

		var (
			o         Option
			found     bool
			name      string
			inline    string
			hasInline bool
		)
		if strings.HasPrefix(tok, "--") {
			name, inline, hasInline = strings.Cut(tok[2:], "=")
			o, found = c.Option(name)
			if found && !o.TakesValue && hasInline {
				// Boolean flags take no value, not even inline.
				name, found = tok[2:], false
			}
			if !found {
				r.unknownOptions = appendUnique(r.unknownOptions, name)
				continue
			}
		} else {
			// Single-dash tokens name exactly one short option. Combined short flags such as -abc
			// are not supported and end up as unknown options, recorded with their dash.
			o, found = c.lookupShort(tok[1:])
			if !found {
				r.unknownOptions = appendUnique(r.unknownOptions, tok)
				continue
			}
		}

		switch {
		case !o.TakesValue:
			canonical = append(canonical, "--"+o.Long)
		case hasInline:
			canonical = append(canonical, "--"+o.Long+"="+inline)
		case i+1 < len(argsToParse) && !isOptionToken(argsToParse[i+1]):
			canonical = append(canonical, "--"+o.Long+"="+argsToParse[i+1])
			i++
		default:
			r.missingValues = appendUnique(r.missingValues, o.Long)
		}
	}

	if err := xflag.ParseToEnd(r.options, canonical); err != nil {
		return nil, fmt.Errorf("command %q: %w", c.Path(), err)
	}
	r.options.Visit(func(f *flag.Flag) {
		r.set[f.Name] = true
	})

	positionals := append(slices.Clone(r.options.Args()), remainingArgs...)
	for i, tok := range positionals {
		if i < len(c.arguments) {
			r.arguments[c.arguments[i].Name] = tok
			continue
		}
		r.unknownArguments = append(r.unknownArguments, tok)
	}
	r.args = slices.Clone(r.unknownArguments)
	for _, a := range c.arguments {
		if _, ok := r.arguments[a.Name]; !ok && a.Required {
			r.missingArguments = append(r.missingArguments, a.Name)
		}
	}
	for _, long := range c.optionOrder {
		o := c.options[long]
		if !o.Required || r.set[long] || o.hasDefault() || slices.Contains(r.missingValues, long) {
			continue
		}
		r.missingOptions = append(r.missingOptions, long)
	}
	return r, nil
}

func newOptionSet(c *Command) *flag.FlagSet {
	fset := flag.NewFlagSet(c.Name, flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	for _, long := range c.optionOrder {
		o := c.options[long]
		if o.TakesValue {
			fset.String(o.Long, o.Default, o.Description)
		} else {
			fset.Bool(o.Long, false, o.Description)
		}
	}
	return fset
}

// isOptionToken reports whether tok carries the option prefix. A lone "-" is positional.
func isOptionToken(tok string) bool {
	return len(tok) > 1 && tok[0] == '-'
}

func appendUnique(names []string, name string) []string {
	if slices.Contains(names, name) {
		return names
	}
	return append(names, name)
}
