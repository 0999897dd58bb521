// Package console is an in-process developer console: a table of named
// commands, a scrollback log and an input history.
package console

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/shlex"
)

// Func runs a command. The returned text is printed when non-empty.
type Func func(args []string) string

// Command is a registered console command.
type Command struct {
	Name string
	Help string
	Fn   Func
}

// DefaultMaxLines bounds the scrollback.
const DefaultMaxLines = 500

// Console is safe for concurrent use. Commands run on the caller's
// goroutine without the console lock held, so they may print.
type Console struct {
	mu       sync.Mutex
	commands map[string]Command
	lines    []string
	history  []string
	histPos  int
	visible  bool
	maxLines int
	logger   *slog.Logger
}

// New creates a console with the built-in commands registered. A nil logger
// uses slog.Default().
func New(logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Console{
		commands: make(map[string]Command),
		histPos:  -1,
		maxLines: DefaultMaxLines,
		logger:   logger,
	}
	c.registerBuiltins()
	return c
}

// Add registers or replaces a command.
func (c *Console) Add(name, help string, fn Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands[name] = Command{Name: name, Help: help, Fn: fn}
}

// Exists reports whether a command is registered.
func (c *Console) Exists(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.commands[name]
	return ok
}

// Commands returns the registered commands sorted by name.
func (c *Console) Commands() []Command {
	c.mu.Lock()
	cmds := make([]Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		cmds = append(cmds, cmd)
	}
	c.mu.Unlock()

	slices.SortFunc(cmds, func(a, b Command) int { return strings.Compare(a.Name, b.Name) })
	return cmds
}

// Tokenize splits a command line into words, honoring single and double
// quotes and backslash escapes.
func Tokenize(line string) ([]string, error) {
	return shlex.Split(line)
}

// Exec tokenizes line and runs the named command, returning its output.
// It does not touch the log or history.
func (c *Console) Exec(line string) string {
	tokens, err := Tokenize(line)
	if err != nil {
		return fmt.Sprintf("Parse error: %v", err)
	}
	if len(tokens) == 0 {
		return ""
	}
	return c.Call(tokens[0], tokens[1:])
}

// Call runs a command with already-split arguments.
func (c *Console) Call(name string, args []string) string {
	c.mu.Lock()
	cmd, ok := c.commands[name]
	c.mu.Unlock()
	if !ok {
		return "Unknown: " + name
	}
	return cmd.Fn(args)
}

// Execute is what the input line does on enter: echo the line, record it in
// history, run it and print the result.
func (c *Console) Execute(line string) string {
	c.Print("> " + line)

	c.mu.Lock()
	c.history = append(c.history, line)
	c.histPos = -1
	c.mu.Unlock()

	c.logger.Debug("console command", "line", line)
	result := c.Exec(line)
	if result != "" {
		c.Print(result)
	}
	return result
}

// Print appends a message to the log. Multi-line messages are split.
func (c *Console) Print(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, strings.Split(msg, "\n")...)
	if over := len(c.lines) - c.maxLines; over > 0 {
		c.lines = slices.Delete(c.lines, 0, over)
	}
}

// Printf formats and prints.
func (c *Console) Printf(format string, args ...any) {
	c.Print(fmt.Sprintf(format, args...))
}

// Clear empties the log.
func (c *Console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = c.lines[:0]
}

// Lines returns a copy of the log.
func (c *Console) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.lines)
}

// History returns a copy of the executed lines, oldest first.
func (c *Console) History() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.history)
}

// HistoryPrev steps back through history, returning the line to show. The
// first call after Execute returns the newest line.
func (c *Console) HistoryPrev() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.history) == 0 {
		return ""
	}
	if c.histPos < 0 {
		c.histPos = len(c.history) - 1
	} else if c.histPos > 0 {
		c.histPos--
	}
	return c.history[c.histPos]
}

// HistoryNext steps forward, returning "" once past the newest line.
func (c *Console) HistoryNext() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.histPos < 0 {
		return ""
	}
	c.histPos++
	if c.histPos >= len(c.history) {
		c.histPos = -1
		return ""
	}
	return c.history[c.histPos]
}

func (c *Console) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

func (c *Console) SetVisible(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = v
}

// ToggleVisible flips visibility and returns the new state.
func (c *Console) ToggleVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = !c.visible
	return c.visible
}
