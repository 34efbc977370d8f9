package command

import "strings"

// Mode selects the parsing policy for Parse.
type Mode int

const (
	// SingleCommand treats argv as one command: the first token names it,
	// options follow, and every token from the first non-option (or the "--"
	// marker) onward is a parameter.
	SingleCommand Mode = iota

	// MultiCommand chains commands: each non-option token opens the next
	// command, unless a "--" marker assigns all remaining tokens to the
	// current command as parameters.
	MultiCommand
)

// Parse converts argv into the ordered command sequence it encodes.
//
// Assumed syntax:
//
//	single command: command [--option[=[value]]] [--] [parameter ...]
//	multi command:  command [--option[=[value]]] [-- [parameter ...]] ...
//
// Short options ("-o") are not recognized and behave as parameters or
// command names by position. On success the result is non-empty and its
// first element is valid.
func Parse(argv []string, mode Mode) ([]Command, error) {
	if len(argv) == 0 {
		return nil, grammarErrorf("empty argument vector")
	}

	var result []Command
	i := 0
	for i < len(argv) {
		name := argv[i]
		if name == "" {
			return nil, grammarErrorf("empty command name at argv[%d]", i)
		}
		i++

		var options map[string]OptionValue
		endOfOptions := false
		for ; i < len(argv); i++ {
			optName, optValue, isOption := splitOption(argv[i])
			if !isOption {
				break
			}
			if optName == "" {
				endOfOptions = true
				i++
				break
			}
			if options == nil {
				options = make(map[string]OptionValue)
			}
			options[optName] = optValue
		}

		var parameters []string
		if endOfOptions || mode == SingleCommand {
			parameters = append(parameters, argv[i:]...)
			i = len(argv)
		}

		cmd, err := New(name, options, parameters)
		if err != nil {
			return nil, err
		}
		result = append(result, cmd)
	}
	return result, nil
}

// ParseSingle parses argv in single-command mode and returns the command.
func ParseSingle(argv []string) (Command, error) {
	cmds, err := Parse(argv, SingleCommand)
	if err != nil {
		return Command{}, err
	}
	return cmds[0], nil
}

// splitOption decodes one "--" prefixed token. It reports isOption false for
// anything else. A bare "--" (and a token with an empty option name, such as
// "--=x") decodes to an empty name, which the parser reads as the explicit
// end-of-options marker.
func splitOption(arg string) (name string, value OptionValue, isOption bool) {
	if !strings.HasPrefix(arg, "--") {
		return "", OptionValue{}, false
	}
	if len(arg) == 2 {
		return "", OptionValue{}, true
	}
	rest := arg[2:]
	if eq := strings.IndexByte(rest, '='); eq >= 0 {
		return rest[:eq], OptionValue{Text: rest[eq+1:], Has: true}, true
	}
	return rest, OptionValue{}, true
}

// CommandID joins the names of commands[offset:] with delim.
func CommandID(commands []Command, offset int, delim string) (string, error) {
	names := make([]string, len(commands))
	for i, cmd := range commands {
		names[i] = cmd.Name()
	}
	return JoinID(names, offset, delim)
}

// JoinID joins parts[offset:] with delim, without a trailing delimiter.
func JoinID(parts []string, offset int, delim string) (string, error) {
	if offset < 0 || offset >= len(parts) {
		return "", grammarErrorf("cannot generate command ID: offset %d is out of range", offset)
	}
	return strings.Join(parts[offset:], delim), nil
}
