// Package cmdtree is a parsing and dispatch engine for tree-structured command-line applications.
// A root [Command] holds nested subcommands, and each command declares its own ordered positional
// [Argument] values and named [Option] flags.
//
// [Execute] resolves the target command by walking subcommand names at the front of the input,
// parses the remaining tokens against that command, reports every missing or unknown name in one
// batch through replaceable hooks, and then runs the command's PreRun, Run and PostRun callbacks.
//
// A command tree is declared once, before execution, and must not be changed afterwards. The
// engine is synchronous and has no internal locking, so a tree must not be executed concurrently.
package cmdtree
