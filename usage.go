package cmdtree

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mfridman/cmdtree/pkg/textutil"
)

const usageWidth = 80

// HelpOption is a conventional --help/-h flag. Add it to a command and set [HelpPreRun] as its
// PreRun to print usage and stop before Run.
var HelpOption = Option{
	Long:        "help",
	Short:       "h",
	Description: "show help for this command",
}

// HelpPreRun writes [DefaultUsage] to the state's Stdout and stops execution when the help option
// is set. Commands that do not declare [HelpOption] always proceed.
func HelpPreRun(_ context.Context, s *State) (bool, error) {
	if _, ok := s.Command.Option(HelpOption.Long); !ok || !s.IsSet(HelpOption.Long) {
		return true, nil
	}
	if _, err := fmt.Fprintln(s.Stdout, DefaultUsage(s.Command)); err != nil {
		return false, err
	}
	return false, nil
}

// DefaultUsage renders help text for c from its read-only accessors: header, description, usage
// line, arguments, visible subcommands, options and footer.
func DefaultUsage(c *Command) string {
	if c == nil {
		return ""
	}
	var b strings.Builder

	if c.Header != "" {
		b.WriteString(c.Header)
		b.WriteString("\n\n")
	}
	about := c.Description
	if about == "" {
		about = c.Summary
	}
	if about != "" {
		for _, line := range textutil.Wrap(about, usageWidth) {
			b.WriteString(line)
			b.WriteRune('\n')
		}
		b.WriteRune('\n')
	}

	subCommands := visibleSubCommands(c)
	options := c.Options()

	b.WriteString("Usage:\n  ")
	b.WriteString(usageLine(c, len(options) > 0, len(subCommands) > 0))
	b.WriteString("\n\n")

	if len(c.arguments) > 0 {
		b.WriteString("Arguments:\n")
		rows := make([]textutil.Row, 0, len(c.arguments))
		for _, a := range c.arguments {
			text := a.Description
			if a.Required {
				text = strings.TrimSpace(text + " (required)")
			}
			rows = append(rows, textutil.Row{Name: a.Name, Text: text})
		}
		textutil.WriteColumns(&b, rows, usageWidth)
		b.WriteRune('\n')
	}

	if len(subCommands) > 0 {
		b.WriteString("Available Commands:\n")
		rows := make([]textutil.Row, 0, len(subCommands))
		for _, sub := range subCommands {
			name := sub.Name
			if len(sub.Aliases) > 0 {
				name += " (" + strings.Join(sub.Aliases, ", ") + ")"
			}
			rows = append(rows, textutil.Row{Name: name, Text: sub.Summary})
		}
		textutil.WriteColumns(&b, rows, usageWidth)
		b.WriteRune('\n')
	}

	if len(options) > 0 {
		slices.SortFunc(options, func(a, b Option) int {
			return cmp.Compare(a.Long, b.Long)
		})
		b.WriteString("Options:\n")
		rows := make([]textutil.Row, 0, len(options))
		for _, o := range options {
			rows = append(rows, textutil.Row{Name: optionLabel(o), Text: optionText(o)})
		}
		textutil.WriteColumns(&b, rows, usageWidth)
		b.WriteRune('\n')
	}

	if len(subCommands) > 0 {
		fmt.Fprintf(&b, "Use \"%s <command> --help\" for more information about a command.\n", c.Path())
	}
	if c.Footer != "" {
		b.WriteRune('\n')
		b.WriteString(c.Footer)
	}
	return strings.TrimRight(b.String(), "\n")
}

func usageLine(c *Command, hasOptions, hasSubCommands bool) string {
	parts := []string{c.Path()}
	if hasSubCommands {
		parts = append(parts, "<command>")
	}
	if hasOptions {
		parts = append(parts, "[options]")
	}
	for _, a := range c.arguments {
		if a.Required {
			parts = append(parts, "<"+a.Name+">")
		} else {
			parts = append(parts, "["+a.Name+"]")
		}
	}
	return strings.Join(parts, " ")
}

func visibleSubCommands(c *Command) []*Command {
	var subs []*Command
	for _, sub := range c.subCommands {
		if !sub.Hidden {
			subs = append(subs, sub)
		}
	}
	slices.SortFunc(subs, func(a, b *Command) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return subs
}

func optionLabel(o Option) string {
	label := "    --" + o.Long
	if o.Short != "" {
		label = "-" + o.Short + ", --" + o.Long
	}
	if o.TakesValue {
		label += " <value>"
	}
	return label
}

func optionText(o Option) string {
	text := o.Description
	if o.hasDefault() {
		text += fmt.Sprintf(" (default: %s)", o.Default)
	}
	if o.Required && !o.hasDefault() {
		text += " (required)"
	}
	return strings.TrimSpace(text)
}
