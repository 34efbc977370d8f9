package command

// OptRef is a transient view of one option lookup. An absent option yields an
// invalid reference rather than an error; the valency combinators below only
// fail when the reference is valid and the stated requirement is unmet.
type OptRef struct {
	valid bool
	name  string
	value OptionValue
}

// Valid reports whether the option is present on the command.
func (o OptRef) Valid() bool { return o.valid }

// Name returns the option name the reference was created for.
func (o OptRef) Name() string { return o.name }

// Value returns the option value and whether one was supplied.
func (o OptRef) Value() (string, bool) {
	return o.value.Text, o.value.Has
}

// Flag reports presence, failing if the option was given a value.
func (o OptRef) Flag() (bool, error) {
	if o.valid && o.value.Has {
		return false, o.requirement("requires no value")
	}
	return o.valid, nil
}

// Valued reports presence, failing if the option was given without a value.
func (o OptRef) Valued() (bool, error) {
	if o.valid && !o.value.Has {
		return false, o.requirement("requires a value")
	}
	return o.valid, nil
}

// RequiredValue returns the option value, failing if the option is absent or
// carries no value.
func (o OptRef) RequiredValue() (string, error) {
	if !o.valid {
		return "", o.requirement("is mandatory")
	}
	if !o.value.Has {
		return "", o.requirement("requires a value")
	}
	return o.value.Text, nil
}

// RequiredNonEmptyValue returns the option value, failing if the option is
// absent, carries no value, or carries an empty value.
func (o OptRef) RequiredNonEmptyValue() (string, error) {
	value, err := o.RequiredValue()
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", o.requirement("requires a non empty value")
	}
	return value, nil
}

func (o OptRef) requirement(requirement string) error {
	return usageErrorf("option --%s %s", o.name, requirement)
}
