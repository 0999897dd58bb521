package console

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

func (c *Console) registerBuiltins() {
	c.Add("help", "list all commands", func([]string) string {
		var b strings.Builder
		for i, cmd := range c.Commands() {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(cmd.Name + " - " + cmd.Help)
		}
		return b.String()
	})

	c.Add("echo", "echo args", func(args []string) string {
		return strings.Join(args, " ")
	})

	c.Add("clear_console", "clear console log", func([]string) string {
		c.Clear()
		return ""
	})

	c.Add("run", "run <file> - execute commands from text file", func(args []string) string {
		if len(args) == 0 {
			return "Usage: run <file.txt>"
		}
		n, err := c.RunFile(args[0])
		if err != nil {
			return "Failed to open: " + args[0]
		}
		return fmt.Sprintf("Executed %d commands from %s", n, args[0])
	})
}

// RunFile executes every line of a script through Execute. Blank lines and
// lines starting with # or // are skipped. It returns the number of
// commands run.
func (c *Console) RunFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("run script: %w", err)
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		c.Execute(line)
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("read script %s: %w", path, err)
	}
	return n, nil
}
