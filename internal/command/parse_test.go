package command_test

import (
	"errors"
	"testing"

	"keel/internal/command"
)

func TestParseSingleCommand(t *testing.T) {
	cmds, err := command.Parse([]string{"app", "--x=1", "--y", "a", "b"}, command.SingleCommand)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cmds) != 1 {
		t.Fatalf("expected 1 command, got %d", len(cmds))
	}

	cmd := cmds[0]
	if !cmd.Valid() {
		t.Fatal("expected valid command")
	}
	if cmd.Name() != "app" {
		t.Fatalf("unexpected name: %q", cmd.Name())
	}

	opts := cmd.Options()
	if len(opts) != 2 {
		t.Fatalf("expected 2 options, got %d", len(opts))
	}
	if got := opts["x"]; !got.Has || got.Text != "1" {
		t.Fatalf("unexpected option x: %+v", got)
	}
	if got := opts["y"]; got.Has {
		t.Fatalf("option y should carry no value: %+v", got)
	}

	params := cmd.Parameters()
	if len(params) != 2 || params[0] != "a" || params[1] != "b" {
		t.Fatalf("unexpected parameters: %v", params)
	}
}

func TestParseMultiCommandChainsUntilMarker(t *testing.T) {
	cmds, err := command.Parse(
		[]string{"app", "--a", "cmd2", "--", "p1", "p2", "cmd3", "--b"},
		command.MultiCommand,
	)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}

	first := cmds[0]
	if first.Name() != "app" {
		t.Fatalf("unexpected first name: %q", first.Name())
	}
	if got := first.Options()["a"]; got.Has {
		t.Fatalf("option a should carry no value: %+v", got)
	}
	if len(first.Parameters()) != 0 {
		t.Fatalf("first command should have no parameters: %v", first.Parameters())
	}

	second := cmds[1]
	if second.Name() != "cmd2" {
		t.Fatalf("unexpected second name: %q", second.Name())
	}
	if len(second.Options()) != 0 {
		t.Fatalf("second command should have no options: %v", second.Options())
	}
	want := []string{"p1", "p2", "cmd3", "--b"}
	got := second.Parameters()
	if len(got) != len(want) {
		t.Fatalf("unexpected parameters: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("parameter %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseMultiCommandStopsOptionsAtNextName(t *testing.T) {
	cmds, err := command.Parse([]string{"app", "--x", "next", "--y=2"}, command.MultiCommand)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if cmds[1].Name() != "next" {
		t.Fatalf("unexpected follow-up name: %q", cmds[1].Name())
	}
	if got := cmds[1].Options()["y"]; !got.Has || got.Text != "2" {
		t.Fatalf("unexpected option y on follow-up: %+v", got)
	}
}

func TestParseSingleDashIsNotAnOption(t *testing.T) {
	cmds, err := command.Parse([]string{"app", "-o", "value"}, command.SingleCommand)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	params := cmds[0].Parameters()
	if len(params) != 2 || params[0] != "-o" || params[1] != "value" {
		t.Fatalf("single-dash token should become a parameter: %v", params)
	}
	if len(cmds[0].Options()) != 0 {
		t.Fatalf("unexpected options: %v", cmds[0].Options())
	}
}

func TestParseEmptyValueKeepsValuePresence(t *testing.T) {
	cmds, err := command.Parse([]string{"app", "--empty="}, command.SingleCommand)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	got := cmds[0].Options()["empty"]
	if !got.Has || got.Text != "" {
		t.Fatalf("expected present empty value, got %+v", got)
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		mode command.Mode
	}{
		{"empty argv", nil, command.SingleCommand},
		{"empty program name", []string{""}, command.SingleCommand},
		{"empty program name multi", []string{""}, command.MultiCommand},
		{"empty follow-up name", []string{"app", "--x", ""}, command.MultiCommand},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := command.Parse(tc.argv, tc.mode)
			var gerr *command.GrammarError
			if !errors.As(err, &gerr) {
				t.Fatalf("expected GrammarError, got %v", err)
			}
		})
	}
}

func TestParseErrorNamesOffendingPosition(t *testing.T) {
	_, err := command.Parse([]string{"app", "--x", ""}, command.MultiCommand)
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "empty command name at argv[2]"; err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestParseSingleReturnsFirstCommand(t *testing.T) {
	cmd, err := command.ParseSingle([]string{"app", "--flag"})
	if err != nil {
		t.Fatalf("ParseSingle returned error: %v", err)
	}
	if cmd.Name() != "app" {
		t.Fatalf("unexpected name: %q", cmd.Name())
	}
}

func TestCommandID(t *testing.T) {
	cmds, err := command.Parse([]string{"app", "sub1", "sub2"}, command.MultiCommand)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	id, err := command.CommandID(cmds, 1, ".")
	if err != nil {
		t.Fatalf("CommandID returned error: %v", err)
	}
	if id != "sub1.sub2" {
		t.Fatalf("unexpected id: %q", id)
	}

	if _, err := command.CommandID(cmds, 3, "."); err == nil {
		t.Fatal("expected error for out-of-range offset")
	}
}

func TestJoinID(t *testing.T) {
	id, err := command.JoinID([]string{"a", "b", "c"}, 0, "/")
	if err != nil {
		t.Fatalf("JoinID returned error: %v", err)
	}
	if id != "a/b/c" {
		t.Fatalf("unexpected id: %q", id)
	}

	_, err = command.JoinID(nil, 0, ".")
	var gerr *command.GrammarError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected GrammarError, got %v", err)
	}
}
