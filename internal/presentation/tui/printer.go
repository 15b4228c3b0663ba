package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/maboss/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Prog is the program name used as the prefix of every diagnostic line.
const Prog = "maboss-client"

// ArtifactEntry is one row of the artifact report.
type ArtifactEntry struct {
	Kind domain.ArtifactKind
	Name string // Where the store put it (file path, redis key...)
	Size int
}

// Printer writes user-facing output.
// Colour and markdown rendering only apply when the destination is a terminal,
// so redirected output stays plain.
type Printer struct {
	out        io.Writer
	errOut     io.Writer
	outProfile termenv.Profile
	errProfile termenv.Profile
	render     bool
	width      int
}

// NewPrinter creates a printer for the given streams.
func NewPrinter(stdout, stderr io.Writer) *Printer {
	p := &Printer{
		out:        stdout,
		errOut:     stderr,
		outProfile: termenv.Ascii,
		errProfile: termenv.Ascii,
	}
	if fd, ok := IsTerminal(stdout); ok {
		p.outProfile = termenv.NewOutput(stdout).ColorProfile()
		p.render = true
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			p.width = w
		}
	}
	if _, ok := IsTerminal(stderr); ok {
		p.errProfile = termenv.NewOutput(stderr).ColorProfile()
	}
	return p
}

// IsTerminal reports whether w is a file descriptor attached to a terminal.
func IsTerminal(w io.Writer) (int, bool) {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// Error prints err on stderr.
// Application errors keep the historic "<prog> error: [msg] [status=n]" layout.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	var appErr *domain.ApplicationError
	if errors.As(err, &appErr) {
		p.errLine("#ef4444", fmt.Sprintf("%s error: %s", Prog, appErr.Error()))
		return
	}
	p.errLine("#ef4444", fmt.Sprintf("%s: %v", Prog, err))
}

// Warn prints a non-fatal notice on stderr.
func (p *Printer) Warn(format string, args ...any) {
	p.errLine("#f59e0b", fmt.Sprintf("%s: %s", Prog, fmt.Sprintf(format, args...)))
}

func (p *Printer) errLine(hex, text string) {
	s := p.errProfile.String(text).Foreground(p.errProfile.Color(hex)).Bold()
	fmt.Fprintln(p.errOut, s)
}

// Report prints the outcome of a successful exchange on stdout.
func (p *Printer) Report(cmd domain.Command, endpoint string, entries []ArtifactEntry) error {
	title := fmt.Sprintf("%s OK (%s)", cmd, endpoint)
	fmt.Fprintln(p.out, p.outProfile.String(title).Foreground(p.outProfile.Color("#22c55e")).Bold())

	if len(entries) == 0 {
		return nil
	}
	md := ArtifactTable(entries)
	if !p.render {
		_, err := io.WriteString(p.out, md)
		return err
	}

	rendered, err := p.renderMarkdown(md)
	if err != nil {
		// Fall back to the raw table rather than losing the report.
		_, err = io.WriteString(p.out, md)
		return err
	}
	_, err = io.WriteString(p.out, rendered)
	return err
}

func (p *Printer) renderMarkdown(md string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if p.width > 0 {
		opts = append(opts, glamour.WithWordWrap(p.width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// ArtifactTable formats entries as a markdown table.
func ArtifactTable(entries []ArtifactEntry) string {
	var b strings.Builder
	b.WriteString("| Artifact | Location | Bytes |\n")
	b.WriteString("|---|---|---:|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | `%s` | %d |\n", e.Kind, e.Name, e.Size)
	}
	return b.String()
}
