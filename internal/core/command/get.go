package command

// Get implements GET key.
type Get struct{}

// Name implements Command.
func (Get) Name() string { return "GET" }

// Execute replies with the bulk value of the key, or a null bulk if absent.
func (Get) Execute(args []string, store Store) string {
	if len(args) != 1 {
		return wrongArity("get")
	}
	val, ok := store.Get(args[0])
	if !ok {
		return NullBulk()
	}
	return Bulk(val)
}
