package main

import "testing"

func TestRootRegistersCommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"run", "probe", "check", "config"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("expected %q subcommand, got %v (%v)", name, cmd, err)
		}
	}
}

func TestShouldSkipConfigFollowsParents(t *testing.T) {
	root := newRootCommand()
	initCmd, _, err := root.Find([]string{"config", "init"})
	if err != nil {
		t.Fatal(err)
	}
	if !shouldSkipConfig(initCmd) {
		t.Fatal("config init should not load configuration")
	}
	runCmd, _, _ := root.Find([]string{"run"})
	if shouldSkipConfig(runCmd) {
		t.Fatal("run must load configuration")
	}
}
