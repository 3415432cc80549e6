package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"exam-prep-assistant/internal/router"
	"exam-prep-assistant/internal/workflow"
)

const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

// printer writes plain text when piped and styled text on a terminal.
type printer struct {
	out    *termenv.Output
	styled bool
	md     *glamour.TermRenderer
}

func newPrinter(w io.Writer, noColor bool) *printer {
	styled := !noColor && isTerminal(w)
	p := &printer{styled: styled}
	if styled {
		p.out = termenv.NewOutput(w)
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100)); err == nil {
			p.md = r
		}
	} else {
		p.out = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Markdown renders md with glamour when styled, verbatim otherwise.
func (p *printer) Markdown(md string) {
	if p.md != nil {
		if rendered, err := p.md.Render(md); err == nil {
			fmt.Fprint(p.out, rendered)
			return
		}
	}
	fmt.Fprintln(p.out, md)
}

func (p *printer) Raw(s string) {
	fmt.Fprint(p.out, s)
}

func (p *printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, p.out.String(fmt.Sprintf(format, args...)).Faint())
}

func (p *printer) Error(format string, args ...any) {
	fmt.Fprintln(p.out, p.out.String(fmt.Sprintf(format, args...)).Foreground(p.out.Color("#fb7185")).Bold())
}

func encode(v any, format string) (string, error) {
	switch format {
	case formatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	case formatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: text, yaml, json)", format)
	}
}

func formatTopology(top workflow.Topology, format string) (string, error) {
	if format != formatText {
		return encode(top, format)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "entry: %s\n", top.Entry)
	for _, e := range top.Edges {
		if e.Condition != "" {
			fmt.Fprintf(&b, "  %s --[%s]--> %s\n", e.From, e.Condition, e.To)
			continue
		}
		fmt.Fprintf(&b, "  %s --> %s\n", e.From, e.To)
	}
	return b.String(), nil
}

func formatRules(rules []router.Rule, format string) (string, error) {
	if format != formatText {
		return encode(rules, format)
	}
	var b strings.Builder
	for i, r := range rules {
		fmt.Fprintf(&b, "%d. %-18s -> %s", i+1, r.Name, r.Intent)
		if len(r.Keywords) > 0 {
			fmt.Fprintf(&b, "  (%s)", strings.Join(r.Keywords, ", "))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
