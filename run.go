package cmdtree

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

// Stage is a step of the execution lifecycle.
type Stage int

const (
	StageResolving Stage = iota + 1
	StageParsing
	StageValidating
	StagePreRun
	StageRun
	StagePostRun
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageResolving:
		return "resolving"
	case StageParsing:
		return "parsing"
	case StageValidating:
		return "validating"
	case StagePreRun:
		return "pre-run"
	case StageRun:
		return "run"
	case StagePostRun:
		return "post-run"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown stage"
	}
}

// RunOptions specifies options for executing a command.
type RunOptions struct {
	// Stdin, Stdout, and Stderr are used for any stream the target command and its ancestors leave
	// nil. If any of these are nil, the default streams ([os.Stdin], [os.Stdout], and [os.Stderr],
	// respectively) are used.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Logger receives debug logs of lifecycle transitions. If nil, logs are discarded.
	Logger *slog.Logger
}

// Execute resolves the target command for args, typically os.Args[1:], parses the remaining tokens
// against it, and runs its lifecycle: PreRun, Run, then PostRun.
//
// Problems with the tree itself, such as an unnamed command, are returned immediately. Problems
// with the input go through the target's validation hooks, and errors from the lifecycle callbacks
// go through its OnError hook. Execute returns whatever error the hook in charge did not recover.
//
// The options parameter may be nil, in which case default values are used. See [RunOptions] for
// more details.
func Execute(ctx context.Context, root *Command, args []string, options *RunOptions) error {
	if root == nil {
		return &DefinitionError{Msg: "root command is nil"}
	}
	if err := validateCommands(root, nil); err != nil {
		return err
	}
	options = checkAndSetRunOptions(options)
	logger := options.Logger

	logger.DebugContext(ctx, "executing command", "stage", StageResolving, "root", root.Name, "args", args)
	target, remaining := Resolve(root, args)

	logger.DebugContext(ctx, "parsing", "stage", StageParsing, "command", target.Path(), "tokens", remaining)
	result, err := parse(target, remaining)
	if err != nil {
		logger.DebugContext(ctx, "parse failed", "stage", StageFailed, "error", err)
		return err
	}

	logger.DebugContext(ctx, "validating", "stage", StageValidating, "command", target.Path())
	if err := validate(target, result); err != nil {
		logger.DebugContext(ctx, "validation failed", "stage", StageFailed, "error", err)
		return err
	}

	s := newState(target, result, options)
	if err := runLifecycle(ctx, target, s); err != nil {
		var stageErr *StageError
		if errors.As(err, &stageErr) {
			logger.DebugContext(ctx, "lifecycle failed", "stage", stageErr.Stage, "error", stageErr.Err)
		}
		if err := onError(target, err); err != nil {
			logger.DebugContext(ctx, "error not recovered", "stage", StageFailed, "error", err)
			return err
		}
		logger.DebugContext(ctx, "error recovered", "stage", StageDone)
		return nil
	}
	logger.DebugContext(ctx, "command finished", "stage", StageDone, "command", target.Path())
	return nil
}

// validate dispatches each batch of input problems to its hook. The first hook that does not
// recover stops validation.
func validate(c *Command, r *parseResult) error {
	checks := []struct {
		names []string
		hook  func(*Command, []string) error
	}{
		{r.missingArguments, c.OnMissingArguments},
		{r.unknownArguments, c.OnUnknownArguments},
		{r.unknownOptions, c.OnUnknownOptions},
		{r.missingValues, c.OnMissingValues},
		{r.missingOptions, c.OnMissingOptions},
	}
	defaults := []func(*Command, []string) error{
		DefaultMissingArguments,
		DefaultUnknownArguments,
		DefaultUnknownOptions,
		DefaultMissingValues,
		DefaultMissingOptions,
	}
	for i, check := range checks {
		if len(check.names) == 0 {
			continue
		}
		hook := check.hook
		if hook == nil {
			hook = defaults[i]
		}
		if err := hook(c, check.names); err != nil {
			return err
		}
	}
	return nil
}

func runLifecycle(ctx context.Context, c *Command, s *State) error {
	if c.PreRun != nil {
		s.Logger.DebugContext(ctx, "running", "stage", StagePreRun, "command", c.Path())
		proceed, err := c.PreRun(ctx, s)
		if err != nil {
			return &StageError{Stage: StagePreRun, Err: err}
		}
		if !proceed {
			s.Logger.DebugContext(ctx, "pre-run stopped execution", "stage", StageDone, "command", c.Path())
			return nil
		}
	}
	if c.Run == nil {
		return &StageError{Stage: StageRun, Err: &NoRunError{Command: c}}
	}
	s.Logger.DebugContext(ctx, "running", "stage", StageRun, "command", c.Path())
	if err := c.Run(ctx, s); err != nil {
		return &StageError{Stage: StageRun, Err: err}
	}
	if c.PostRun != nil {
		s.Logger.DebugContext(ctx, "running", "stage", StagePostRun, "command", c.Path())
		if err := c.PostRun(ctx, s); err != nil {
			return &StageError{Stage: StagePostRun, Err: err}
		}
	}
	return nil
}

func onError(c *Command, err error) error {
	if c.OnError != nil {
		return c.OnError(c, err)
	}
	return DefaultOnError(c, err)
}

func newState(c *Command, r *parseResult, opt *RunOptions) *State {
	s := &State{
		Command:   c,
		Path:      c.lineage(),
		Arguments: r.arguments,
		Args:      r.args,
		Logger:    opt.Logger,
		options:   r.options,
		set:       r.set,
	}
	// The nearest command with a stream wins, then the run options.
	for i := len(s.Path) - 1; i >= 0; i-- {
		cmd := s.Path[i]
		if s.Stdin == nil {
			s.Stdin = cmd.Stdin
		}
		if s.Stdout == nil {
			s.Stdout = cmd.Stdout
		}
		if s.Stderr == nil {
			s.Stderr = cmd.Stderr
		}
	}
	if s.Stdin == nil {
		s.Stdin = opt.Stdin
	}
	if s.Stdout == nil {
		s.Stdout = opt.Stdout
	}
	if s.Stderr == nil {
		s.Stderr = opt.Stderr
	}
	return s
}

func checkAndSetRunOptions(opt *RunOptions) *RunOptions {
	if opt == nil {
		opt = &RunOptions{}
	} else {
		copied := *opt
		opt = &copied
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}
	return opt
}
