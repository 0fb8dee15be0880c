package interaction

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tinybird-labs/tb-migrate/pkg/shared"
)

// Confirmer is the decision gate consulted before any destructive or bulk
// action. Implementations may be interactive or scripted.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmerFunc adapts a plain function to the Confirmer interface. Tests and
// non-interactive runs inject one instead of a terminal prompt.
type ConfirmerFunc func(message string) bool

func (f ConfirmerFunc) Confirm(message string) bool {
	return f(message)
}

// AlwaysConfirm returns a Confirmer that approves every request.
func AlwaysConfirm() Confirmer {
	return ConfirmerFunc(func(string) bool { return true })
}

// NeverConfirm returns a Confirmer that declines every request.
func NeverConfirm() Confirmer {
	return ConfirmerFunc(func(string) bool { return false })
}

// TerminalConfirmer asks yes/no questions on the given reader/writer pair,
// typically stdin/stdout.
type TerminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminalConfirmer(in io.Reader, out io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prompts until a definitive answer is given. Unrecognized input
// re-prompts; a closed input stream counts as a decline.
func (c *TerminalConfirmer) Confirm(message string) bool {
	for {
		fmt.Fprintf(c.out, "%s (y/n): ", message)

		line, err := c.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))

		if shared.IsInList(answer, []string{"y", "yes"}) {
			return true
		}
		if shared.IsInList(answer, []string{"n", "no"}) {
			return false
		}

		if err != nil {
			return false
		}
		fmt.Fprintln(c.out, "Please enter 'y' for yes or 'n' for no.")
	}
}
