package cmdtree

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Command is one node of a command tree. A command owns its arguments, options and subcommands,
// and carries the lifecycle callbacks and hooks used when it is the target of [Execute].
//
// A tree is built once, before any call to [Execute], and is treated as immutable afterwards. The
// engine has no internal synchronization: concurrent Execute calls sharing a command are not safe.
type Command struct {
	// Name is a single word identifying the command. Required before execution.
	Name string

	// Aliases are alternate names that resolve to this command.
	Aliases []string

	// Display metadata, consumed by help formatting.
	Header      string
	Summary     string
	Description string
	Footer      string

	// Hidden commands resolve normally but are left out of help text and suggestions.
	Hidden bool

	// InheritBorders copies the parent's Header and Footer into this command when it is attached.
	InheritBorders bool
	// InheritOptions merges the parent's options into this command when it is attached. Options
	// this command already declares are kept.
	InheritOptions bool

	// Standard streams. Nil streams are inherited from the parent at attach time, and fall back to
	// [RunOptions] at execution time.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// PreRun is called before Run. Returning false stops execution without calling Run or
	// PostRun, for example after printing help.
	PreRun func(ctx context.Context, s *State) (bool, error)

	// Run is the command's primary behavior. Every executable command must set it.
	Run func(ctx context.Context, s *State) error

	// PostRun is called after a successful Run.
	PostRun func(ctx context.Context, s *State) error

	// OnError receives any error returned by PreRun, Run or PostRun, wrapped in a [StageError].
	// Returning nil recovers and ends execution successfully; returning an error makes [Execute]
	// return it. The default returns the error unchanged.
	OnError func(c *Command, err error) error

	// Validation hooks, each called with every offending name found in one parse. Returning nil
	// recovers and execution continues; returning an error stops [Execute] with that error. The
	// defaults return an [InputError]. Unknown long options are passed by bare name; unknown
	// single-dash tokens keep their dash.
	OnMissingArguments func(c *Command, names []string) error
	OnUnknownArguments func(c *Command, names []string) error
	OnUnknownOptions   func(c *Command, names []string) error
	OnMissingValues    func(c *Command, names []string) error
	OnMissingOptions   func(c *Command, names []string) error

	parent      *Command
	subCommands []*Command
	children    map[string]*Command

	arguments   []Argument
	options     map[string]Option
	optionOrder []string
	shorts      map[string]string
}

// New creates a command and calls setup on it exactly once. Setup is expected to set the name and
// description and to declare arguments, options and subcommands.
func New(setup func(c *Command) error) (*Command, error) {
	c := &Command{}
	if setup != nil {
		if err := setup(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddArgument appends a positional argument. Arguments are matched in the order they are added.
func (c *Command) AddArgument(a Argument) error {
	if msg := validateArgument(a); msg != "" {
		return definitionErrorf(c, "%s", msg)
	}
	for _, existing := range c.arguments {
		if existing.Name == a.Name {
			return definitionErrorf(c, "duplicate argument %q", a.Name)
		}
	}
	c.arguments = append(c.arguments, a)
	return nil
}

// AddOption declares a flag option. It fails if the long name is already declared or the short
// name already belongs to another option.
func (c *Command) AddOption(o Option) error {
	if msg := validateOption(o); msg != "" {
		return definitionErrorf(c, "%s", msg)
	}
	if _, ok := c.options[o.Long]; ok {
		return definitionErrorf(c, "duplicate option %q", o.Long)
	}
	if o.Short != "" {
		if long, ok := c.shorts[o.Short]; ok {
			return definitionErrorf(c, "short name %q of option %q already used by option %q", o.Short, o.Long, long)
		}
	}
	c.putOption(o)
	return nil
}

func (c *Command) putOption(o Option) {
	if c.options == nil {
		c.options = make(map[string]Option)
		c.shorts = make(map[string]string)
	}
	c.options[o.Long] = o
	c.optionOrder = append(c.optionOrder, o.Long)
	if o.Short != "" {
		c.shorts[o.Short] = o.Long
	}
}

// AddCommand attaches child as a subcommand. Attachment is permanent. It fails, leaving both
// commands unchanged, if the child has no name, is already attached, or if its name or any alias
// collides with a name or alias of an existing subcommand.
//
// On success the child receives the parent's streams where its own are nil, the parent's header
// and footer if InheritBorders is set, and the parent's options it does not declare itself if
// InheritOptions is set.
func (c *Command) AddCommand(child *Command) error {
	if child == nil {
		return definitionErrorf(c, "subcommand is nil")
	}
	if child.Name == "" {
		return definitionErrorf(c, "subcommand has no name")
	}
	if child.parent != nil || slices.Contains(c.lineage(), child) {
		return definitionErrorf(c, "command %q is already attached", child.Name)
	}
	names := child.names()
	for i, name := range names {
		if name == "" {
			return definitionErrorf(c, "command %q has an empty alias", child.Name)
		}
		if strings.ContainsAny(name, " \t") {
			return definitionErrorf(c, "command name %q contains spaces, must be a single word", name)
		}
		if _, ok := c.children[name]; ok || slices.Contains(names[:i], name) {
			return definitionErrorf(c, "duplicate command %q", name)
		}
	}

	if c.children == nil {
		c.children = make(map[string]*Command)
	}
	for _, name := range names {
		c.children[name] = child
	}
	c.subCommands = append(c.subCommands, child)
	child.parent = c

	if child.Stdin == nil {
		child.Stdin = c.Stdin
	}
	if child.Stdout == nil {
		child.Stdout = c.Stdout
	}
	if child.Stderr == nil {
		child.Stderr = c.Stderr
	}
	if child.InheritBorders {
		child.Header = c.Header
		child.Footer = c.Footer
	}
	if child.InheritOptions {
		for _, long := range c.optionOrder {
			if _, ok := child.options[long]; ok {
				continue
			}
			o := c.options[long]
			if _, taken := child.shorts[o.Short]; taken {
				o.Short = ""
			}
			child.putOption(o)
		}
	}
	return nil
}

func (c *Command) names() []string {
	return append([]string{c.Name}, c.Aliases...)
}

// Parent returns the command this command is attached to, or nil for a root command.
func (c *Command) Parent() *Command {
	return c.parent
}

// SubCommands returns the attached subcommands in attach order.
func (c *Command) SubCommands() []*Command {
	return slices.Clone(c.subCommands)
}

// SubCommand returns the subcommand with the given name or alias, or nil.
func (c *Command) SubCommand(name string) *Command {
	return c.children[name]
}

// Arguments returns the declared arguments in match order.
func (c *Command) Arguments() []Argument {
	return slices.Clone(c.arguments)
}

// Options returns the declared options, including inherited ones, in declaration order.
func (c *Command) Options() []Option {
	opts := make([]Option, 0, len(c.optionOrder))
	for _, long := range c.optionOrder {
		opts = append(opts, c.options[long])
	}
	return opts
}

// Option returns the option with the given long name.
func (c *Command) Option(long string) (Option, bool) {
	o, ok := c.options[long]
	return o, ok
}

func (c *Command) lookupShort(short string) (Option, bool) {
	long, ok := c.shorts[short]
	if !ok {
		return Option{}, false
	}
	return c.options[long], true
}

// Path returns the space-separated names from the root down to this command.
func (c *Command) Path() string {
	return getCommandPath(c.lineage())
}

// lineage returns the commands from the root down to c.
func (c *Command) lineage() []*Command {
	var chain []*Command
	for cur := c; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	slices.Reverse(chain)
	return chain
}

func getCommandPath(commands []*Command) string {
	var commandPath []string
	for _, c := range commands {
		commandPath = append(commandPath, c.Name)
	}
	return strings.Join(commandPath, " ")
}

func validateCommands(root *Command, path []string) error {
	if root.Name == "" {
		if len(path) == 0 {
			return &DefinitionError{Msg: "root command has no name"}
		}
		return &DefinitionError{Msg: fmt.Sprintf("subcommand in path %q has no name", strings.Join(path, " "))}
	}
	if strings.ContainsAny(root.Name, " \t") {
		return &DefinitionError{Msg: fmt.Sprintf("command name %q contains spaces, must be a single word", root.Name)}
	}
	for _, alias := range root.Aliases {
		if alias == "" || strings.ContainsAny(alias, " \t") {
			return &DefinitionError{Msg: fmt.Sprintf("command %q has invalid alias %q, must be a single word", root.Name, alias)}
		}
	}

	currentPath := append(slices.Clone(path), root.Name)
	for _, sub := range root.subCommands {
		if err := validateCommands(sub, currentPath); err != nil {
			return err
		}
	}
	return nil
}
