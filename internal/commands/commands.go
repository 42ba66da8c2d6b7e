package commands

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCommand is returned by Execute for a key code nothing is bound to.
var ErrUnknownCommand = errors.New("unknown command")

// Command is an action bound to a key code.
type Command struct {
	Code int
	Name string
	Run  func() error
}

// Registry holds commands by key code. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[int]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[int]*Command)}
}

// Register binds run to code, replacing any previous binding. name is used in logs and help output.
func (r *Registry) Register(code int, name string, run func() error) {
	r.cmds[code] = &Command{Code: code, Name: name, Run: run}
}

// Has reports whether code is bound.
func (r *Registry) Has(code int) bool {
	_, ok := r.cmds[code]
	return ok
}

// Lookup returns the command bound to code.
func (r *Registry) Lookup(code int) (*Command, bool) {
	c, ok := r.cmds[code]
	return c, ok
}

// Execute runs the command bound to code.
// Returns an error wrapping ErrUnknownCommand for unbound codes, or the error from Run().
func (r *Registry) Execute(code int) error {
	cmd, ok := r.cmds[code]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, KeyName(code))
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return nil
}

// Commands returns every bound command ordered by key code.
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.cmds))
	for _, c := range r.cmds {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// KeyName renders a key code for log lines: printable ASCII as a quoted rune, everything else as a number.
func KeyName(code int) string {
	if code == ' ' {
		return "space"
	}
	if code > ' ' && code < 0x7f {
		return fmt.Sprintf("%q", rune(code))
	}
	return fmt.Sprintf("key %d", code)
}
