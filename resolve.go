package cmdtree

// Resolve walks the tree from root, descending into a subcommand for as long as the next token is
// exactly the name or an alias of a child of the current command. It returns the command reached
// and the tokens left for that command to parse.
//
// Descent stops at the first token that is not a child name, so a leaf command's positional
// argument may look like a subcommand name of some other command without being mistaken for one.
func Resolve(root *Command, tokens []string) (*Command, []string) {
	current := root
	i := 0
	for ; i < len(tokens); i++ {
		sub := current.SubCommand(tokens[i])
		if sub == nil {
			break
		}
		current = sub
	}
	return current, tokens[i:]
}
