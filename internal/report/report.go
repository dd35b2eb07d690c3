// Package report renders change streams for the command-line tool, either
// as JSON lines carrying is_breaking or as colored, localized text.
package report

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"github.com/reoring/skemadiff/change"
	"github.com/reoring/skemadiff/i18n"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat accepts "json" and "text".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatText:
		return f, nil
	case "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("report: unknown format %q", s)
}

// Options controls rendering.
type Options struct {
	Format       Format
	Color        bool
	BreakingOnly bool
	// Translator localizes text output; nil uses English.
	Translator i18n.Translator
}

// Printer writes changes one at a time so a diff can be streamed.
type Printer struct {
	w    io.Writer
	opts Options

	breakingColor *color.Color
	safeColor     *color.Color
	pathColor     *color.Color

	total, breaking int
}

// NewPrinter prepares a printer writing to w.
func NewPrinter(w io.Writer, opts Options) *Printer {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if opts.Translator == nil {
		opts.Translator = i18n.New("en")
	}
	p := &Printer{
		w:             w,
		opts:          opts,
		breakingColor: color.New(color.FgRed, color.Bold),
		safeColor:     color.New(color.FgGreen),
		pathColor:     color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.breakingColor, p.safeColor, p.pathColor} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Print renders one change, skipping non-breaking ones under BreakingOnly.
func (p *Printer) Print(c change.Change) error {
	isBreaking := c.IsBreaking()
	p.total++
	if isBreaking {
		p.breaking++
	}
	if p.opts.BreakingOnly && !isBreaking {
		return nil
	}
	if p.opts.Format == FormatText {
		return p.printText(c, isBreaking)
	}
	b, err := c.MarshalJSONWithBreaking()
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = p.w.Write(b)
	return err
}

func (p *Printer) printText(c change.Change, isBreaking bool) error {
	tr := p.opts.Translator
	path := c.Path
	if path == "" {
		path = tr.Message("root", nil)
	}
	msg := tr.Message(c.Kind().String(), Fields(c.Change))

	marker := p.safeColor.Sprint("  ")
	if isBreaking {
		marker = p.breakingColor.Sprint(tr.Message("breaking", nil))
	}
	_, err := fmt.Fprintf(p.w, "%s %s: %s %s\n", p.pathColor.Sprint(path), c.Kind(), msg, marker)
	return err
}

// Summary writes the totals line for text output. JSON output has none.
func (p *Printer) Summary() error {
	if p.opts.Format != FormatText {
		return nil
	}
	line := p.opts.Translator.Message("summary", map[string]string{
		"total":    strconv.Itoa(p.total),
		"breaking": strconv.Itoa(p.breaking),
	})
	if p.breaking > 0 {
		line = p.breakingColor.Sprint(line)
	} else {
		line = p.safeColor.Sprint(line)
	}
	_, err := fmt.Fprintln(p.w, line)
	return err
}

// Counts reports how many changes were seen and how many were breaking,
// including filtered ones.
func (p *Printer) Counts() (total, breaking int) { return p.total, p.breaking }

// Write renders all changes followed by the summary.
func Write(w io.Writer, changes []change.Change, opts Options) error {
	p := NewPrinter(w, opts)
	for _, c := range changes {
		if err := p.Print(c); err != nil {
			return err
		}
	}
	return p.Summary()
}

// Fields flattens a payload into template data keyed by its JSON field
// names. Ranges render as minimum(1.0); const values as JSON.
func Fields(p change.Payload) map[string]string {
	v := reflect.ValueOf(p)
	t := v.Type()
	out := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		f := v.Field(i)
		if f.Kind() == reflect.Interface {
			out[name] = constString(f.Interface())
			continue
		}
		out[name] = fieldString(f.Interface())
	}
	return out
}

func fieldString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

func constString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
