// Package repl provides an interactive calculator session with colored
// terminal output.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"calculator-service/internal/operations"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Command represents a command executed in the session
type Command struct {
	Input     string
	Output    string
	Err       error
	Timestamp time.Time
}

// Session represents an interactive calculator session
type Session struct {
	ID        string
	History   []Command
	CreatedAt time.Time
}

// REPL represents the Read-Eval-Print Loop interface
type REPL struct {
	session     *Session
	input       io.Reader
	output      io.Writer
	promptColor *color.Color
	outputColor *color.Color
	errorColor  *color.Color
	infoColor   *color.Color
}

// infix operator symbols accepted next to the word forms.
var symbolOps = map[string]string{
	"+": operations.OpAdd,
	"-": operations.OpSubtract,
	"*": operations.OpMultiply,
	"x": operations.OpMultiply,
	"/": operations.OpDivide,
	"^": operations.OpPower,
	"%": operations.OpModulo,
}

// New creates a REPL reading from stdin and writing to stdout.
func New() *REPL {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO creates a REPL over explicit input and output streams.
func NewWithIO(input io.Reader, output io.Writer) *REPL {
	return &REPL{
		session: &Session{
			ID:        uuid.New().String(),
			History:   []Command{},
			CreatedAt: time.Now(),
		},
		input:       input,
		output:      output,
		promptColor: color.New(color.FgCyan, color.Bold),
		outputColor: color.New(color.FgGreen),
		errorColor:  color.New(color.FgRed),
		infoColor:   color.New(color.FgYellow),
	}
}

// Start runs the session until EOF, quit or context cancellation.
func (r *REPL) Start(ctx context.Context) error {
	r.printInfo(fmt.Sprintf("Calculator session %s", r.session.ID))
	r.printInfo(`Enter "add 2 3" or "2 + 3"; type "help" for commands.`)

	scanner := bufio.NewScanner(r.input)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.printPrompt()
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "quit", "exit":
			r.printInfo("Goodbye.")
			return nil
		case "help":
			r.printHelp()
			continue
		case "history":
			r.printHistory()
			continue
		}

		output, err := r.Evaluate(line)
		r.session.History = append(r.session.History, Command{
			Input:     line,
			Output:    output,
			Err:       err,
			Timestamp: time.Now(),
		})

		if err != nil {
			r.printError(err.Error())
			continue
		}
		r.printOutput(output)
	}
}

// Evaluate computes one input line and returns the rendered result.
// Accepted forms: "<operation> <a> <b>" and "<a> <op-symbol> <b>".
func (r *REPL) Evaluate(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return "", fmt.Errorf(`cannot parse %q; expected "add 2 3" or "2 + 3"`, line)
	}

	var opName, rawA, rawB string
	if name, ok := symbolOps[fields[1]]; ok {
		opName, rawA, rawB = name, fields[0], fields[2]
	} else {
		opName, rawA, rawB = fields[0], fields[1], fields[2]
	}

	op, err := operations.Lookup(opName)
	if err != nil {
		return "", err
	}

	a, err := operations.Parse(rawA)
	if err != nil {
		return "", err
	}
	b, err := operations.Parse(rawB)
	if err != nil {
		return "", err
	}

	result, err := op.Apply(a, b)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s: %s", op.DisplayName, result), nil
}

func (r *REPL) printPrompt() {
	_, _ = r.promptColor.Fprint(r.output, "calc> ")
}

func (r *REPL) printOutput(msg string) {
	_, _ = r.outputColor.Fprintln(r.output, msg)
}

func (r *REPL) printError(msg string) {
	_, _ = r.errorColor.Fprintln(r.output, "error: "+msg)
}

func (r *REPL) printInfo(msg string) {
	_, _ = r.infoColor.Fprintln(r.output, msg)
}

func (r *REPL) printHelp() {
	r.printInfo("Operations:")
	for _, op := range operations.All() {
		_, _ = fmt.Fprintf(r.output, "  %-9s %s <a> <b>\n", op.Name, op.Name)
	}
	r.printInfo(`Infix symbols: + - * / ^ %`)
	r.printInfo("Commands: help, history, quit")
}

func (r *REPL) printHistory() {
	if len(r.session.History) == 0 {
		r.printInfo("No calculations yet.")
		return
	}
	for i, cmd := range r.session.History {
		if cmd.Err != nil {
			_, _ = fmt.Fprintf(r.output, "%3d  %s  => error: %v\n", i+1, cmd.Input, cmd.Err)
			continue
		}
		_, _ = fmt.Fprintf(r.output, "%3d  %s  => %s\n", i+1, cmd.Input, cmd.Output)
	}
}
