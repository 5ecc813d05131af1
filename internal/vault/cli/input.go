package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// Prompter asks the operator questions and reads the answers. Secrets are
// read without echo when the input is a terminal.
type Prompter struct {
	r   *bufio.Reader
	w   io.Writer
	fd  int
	tty bool
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{r: bufio.NewReader(in), w: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// Line prints prompt and reads one line with surrounding whitespace
// trimmed. A final line without a newline is still returned; io.EOF is
// returned only when nothing was read.
func (p *Prompter) Line(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.w, prompt+": "); err != nil {
		return "", err
	}
	return p.readLine()
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Secret prints prompt and reads a value without echoing it. The value is
// not trimmed so leading and trailing spaces stay part of a password.
func (p *Prompter) Secret(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.w, prompt+": "); err != nil {
		return "", err
	}
	if !p.tty {
		line, err := p.r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	b, err := readPassword(p.fd)
	fmt.Fprintln(p.w)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Confirm asks a yes/no question. An empty answer picks def.
func (p *Prompter) Confirm(prompt string, def bool) (bool, error) {
	hint := "[yN]"
	if def {
		hint = "[Yn]"
	}
	for {
		answer, err := p.Line(prompt + " " + hint)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.w, "Please answer y or n.")
	}
}
