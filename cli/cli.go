// Package cli is the plain line-based front end of Zuul's Dungeon. It also
// holds the pieces the terminal UI shares with it: the start hook, meta
// commands, "again" and the debug dumps.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/zuul/engine"
)

// DefaultName is used when the player doesn't type a name.
const DefaultName = "Adventurer"

const prompt = "> "

// StartFunc creates a new game for the named player.
type StartFunc func(name string) (*engine.Engine, error)

// CLI reads commands line by line and prints the engine's replies.
type CLI struct {
	Start     StartFunc
	Engine    *engine.Engine // set by Run once the player has a name
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool // repeat each line after the prompt, for script playback
	Width     int  // wrap output at this column, 0 disables wrapping

	repeat Repeater
}

// New creates a CLI on stdin and stdout.
func New(start StartFunc) *CLI {
	return &CLI{Start: start, In: os.Stdin, Out: os.Stdout, Width: 80}
}

// Run asks for the player's name, starts the game and then handles one line
// at a time. It returns when the player quits, the story ends or the input
// runs out.
func (c *CLI) Run() error {
	in := bufio.NewScanner(c.In)

	c.println("What is your name?")
	name, _ := c.read(in)
	if name == "" {
		name = DefaultName
	}
	eng, err := c.Start(name)
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}
	c.Engine = eng
	c.printAll(eng.Intro())
	c.println("")

	for {
		input, ok := c.read(in)
		if !ok {
			return in.Err()
		}
		// Blank lines and script comments are not commands.
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if done := c.handle(input); done {
			return nil
		}
	}
}

// read prompts and returns the next trimmed line.
func (c *CLI) read(in *bufio.Scanner) (string, bool) {
	fmt.Fprint(c.Out, prompt)
	if !in.Scan() {
		return "", false
	}
	line := strings.TrimSpace(in.Text())
	if c.EchoInput && line != "" && !strings.HasPrefix(line, "#") {
		c.println(line)
	}
	return line, true
}

// handle runs one non-empty input line and reports whether the session ended.
func (c *CLI) handle(input string) bool {
	if IsMeta(input) {
		return c.meta(MetaName(input))
	}

	cmd, ok := c.repeat.Resolve(input)
	if !ok {
		c.println("Nothing to repeat.")
		return false
	}

	result := c.Engine.Step(cmd)
	c.printAll(result.Output)
	if c.Trace {
		for _, line := range TraceLines(result) {
			fmt.Fprintln(c.Out, line)
		}
	}
	c.println("")
	return result.Quit || result.Over
}

// meta runs a slash command and reports whether the session ended.
func (c *CLI) meta(name string) bool {
	switch name {
	case "/quit", "/exit":
		c.system("Goodbye.")
		return true
	case "/help":
		c.printAll(HelpLines)
	case "/state":
		for _, line := range StateLines(c.Engine) {
			c.system(line)
		}
	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.system("Trace output enabled.")
		} else {
			c.system("Trace output disabled.")
		}
	default:
		c.system(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", name))
	}
	return false
}

func (c *CLI) printAll(lines []string) {
	for _, l := range lines {
		c.println(l)
	}
}

func (c *CLI) println(text string) {
	if c.Width > 0 {
		text = wordwrap.String(text, c.Width)
	}
	fmt.Fprintln(c.Out, text)
}

// system prints a front-end message in brackets so it stands apart from the story.
func (c *CLI) system(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
