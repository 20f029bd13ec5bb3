package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/illarion/credvault/internal/core"
	"golang.org/x/term"
)

// hiddenPrompts are read without echo when stdin is a terminal
var hiddenPrompts = map[string]bool{
	core.PromptMasterPassword:    true,
	core.PromptNewMasterPassword: true,
	PromptRecordPassword:         true,
}

// terminal reads answers line by line from in and writes prompts to out
type terminal struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	t := &terminal{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
		t.tty = true
	}
	return t
}

func (t *terminal) Prompt(text string) (string, error) {
	fmt.Fprint(t.out, text)
	if !strings.HasSuffix(text, " ") {
		fmt.Fprint(t.out, " ")
	}

	if t.tty && hiddenPrompts[text] {
		password, err := term.ReadPassword(t.fd)
		fmt.Fprintln(t.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
