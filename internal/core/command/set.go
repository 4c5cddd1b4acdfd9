package command

// Set implements SET key value. It always overwrites.
type Set struct{}

// Name implements Command.
func (Set) Name() string { return "SET" }

// Execute stores the pair and replies +OK.
func (Set) Execute(args []string, store Store) string {
	if len(args) != 2 {
		return wrongArity("set")
	}
	store.Set(args[0], args[1])
	return OK
}
