package command

// OptionValue is an option's value slot. Has distinguishes "--name=..." from
// a bare "--name"; an explicit empty value ("--name=") keeps Has true.
type OptionValue struct {
	Text string
	Has  bool
}

// Command is one parsed argv unit: a name, its options, and its parameters.
// The zero value is invalid.
type Command struct {
	name       string
	options    map[string]OptionValue
	parameters []string
}

// New constructs a command. The name must be non-empty.
func New(name string, options map[string]OptionValue, parameters []string) (Command, error) {
	if name == "" {
		return Command{}, grammarErrorf("empty command name")
	}
	return Command{name: name, options: options, parameters: parameters}, nil
}

// Valid reports whether the command carries a name.
func (c Command) Valid() bool { return c.name != "" }

// Name returns the command name (or the program path for the first command).
func (c Command) Name() string { return c.name }

// Options returns the option map. Callers must not modify it.
func (c Command) Options() map[string]OptionValue { return c.options }

// Parameters returns the ordered parameter list. Callers must not modify it.
func (c Command) Parameters() []string { return c.parameters }

// Parameter returns the parameter at index i.
func (c Command) Parameter(i int) (string, error) {
	if i < 0 || i >= len(c.parameters) {
		return "", indexErrorf("invalid command parameter index %d", i)
	}
	return c.parameters[i], nil
}

// Option returns a reference to the named option. The reference is invalid
// when the command does not carry the option; lookup itself never fails.
func (c Command) Option(name string) OptRef {
	if value, ok := c.options[name]; ok {
		return OptRef{valid: true, name: name, value: value}
	}
	return OptRef{name: name}
}

// StrictOptions returns references for the expected options after verifying
// the command carries no option outside the expected set.
func (c Command) StrictOptions(expected ...string) ([]OptRef, error) {
	for name := range c.options {
		known := false
		for _, want := range expected {
			if name == want {
				known = true
				break
			}
		}
		if !known {
			return nil, usageErrorf("unexpected option --%s", name)
		}
	}
	refs := make([]OptRef, len(expected))
	for i, name := range expected {
		refs[i] = c.Option(name)
	}
	return refs, nil
}
