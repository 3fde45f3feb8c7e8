// Package view renders status lines for the CLI. Each terminal state has
// its own style: info, blocked, success and error. ANSI colors are used
// only when the output is a terminal; otherwise a bracketed tag marks the
// kind.
package view

import (
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/photodrop/internal/client/models"
	"golang.org/x/term"
)

type Kind int

const (
	Info Kind = iota
	Blocked
	Success
	Error
)

const reset = "\033[0m"

var styles = map[Kind]struct {
	ansi string
	tag  string
}{
	Info:    {ansi: "\033[36m", tag: "[info]"},
	Blocked: {ansi: "\033[1;33m", tag: "[blocked]"},
	Success: {ansi: "\033[32m", tag: "[ok]"},
	Error:   {ansi: "\033[31m", tag: "[error]"},
}

// isTerminal is swapped in tests.
var isTerminal = term.IsTerminal

type Printer struct {
	w     io.Writer
	color bool
}

// New colors output when w is a terminal.
func New(w io.Writer) *Printer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isTerminal(int(f.Fd()))
	}
	return &Printer{w: w, color: color}
}

func (p *Printer) Print(k Kind, msg string) {
	st := styles[k]
	if p.color {
		fmt.Fprintf(p.w, "%s%s%s\n", st.ansi, msg, reset)
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", st.tag, msg)
}

func (p *Printer) Info(msg string)    { p.Print(Info, msg) }
func (p *Printer) Blocked(msg string) { p.Print(Blocked, msg) }
func (p *Printer) Success(msg string) { p.Print(Success, msg) }
func (p *Printer) Error(msg string)   { p.Print(Error, msg) }

// Line writes msg without any styling.
func (p *Printer) Line(msg string) {
	fmt.Fprintln(p.w, msg)
}

// Home is the landing view.
func (p *Printer) Home(principal *models.Principal) {
	if principal == nil {
		p.Blocked("Not Logged In")
		p.Line("Please log in with `photodrop login`, or sync a session with `photodrop sync <url>`.")
		return
	}
	p.Line("Logged in as:")
	p.Success(principal.Email)
}
