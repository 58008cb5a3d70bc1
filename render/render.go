// Package render draws page state as terminal text. Every function is pure: it reads the state
// it is given and writes to w, nothing else.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/internal/utils"
	"github.com/jrsteele09/go-admin-console/ui"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	empty        = "-"
	cellMaxRunes = 40
)

// Renderer holds the presentation settings shared by every page.
type Renderer struct {
	color   bool
	now     func() time.Time
	printer *message.Printer
}

type Option func(*Renderer)

// WithColor turns ANSI colours on or off.
func WithColor(enabled bool) Option {
	return func(r *Renderer) {
		r.color = enabled
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(r *Renderer) {
		r.now = nowFunc
	}
}

// WithLanguage selects the number formatting, e.g. language.German prints 1.500.
func WithLanguage(tag language.Tag) Option {
	return func(r *Renderer) {
		r.printer = message.NewPrinter(tag)
	}
}

func New(options ...Option) *Renderer {
	r := &Renderer{
		now:     time.Now,
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *Renderer) num(n int) string {
	return r.printer.Sprintf("%d", n)
}

func (r *Renderer) money(v float64) string {
	return r.printer.Sprintf("%.2f", v)
}

func (r *Renderer) ago(t time.Time) string {
	if t.IsZero() {
		return empty
	}
	return humanize.RelTime(t, r.now(), "ago", "from now")
}

func (r *Renderer) paint(color, s string) string {
	return ui.Colorize(r.color, color, s)
}

func (r *Renderer) active(active bool) string {
	label := "inactive"
	if active {
		label = "active"
	}
	return r.paint(ui.StatusColor(active), label)
}

func (r *Renderer) postStatus(s adminmodel.PostStatus) string {
	switch s {
	case adminmodel.PostActive:
		return r.paint(ui.Green, string(s))
	case adminmodel.PostPassive:
		return r.paint(ui.Yellow, string(s))
	case adminmodel.PostArchived:
		return r.paint(ui.Gray, string(s))
	}
	return string(s)
}

func (r *Renderer) trend(t adminmodel.Trend) string {
	if t.IsPositive {
		return r.paint(ui.Green, fmt.Sprintf("▲ %.1f%%", t.ChangeRate))
	}
	return r.paint(ui.Red, fmt.Sprintf("▼ %.1f%%", t.ChangeRate))
}

func (r *Renderer) title(w io.Writer, s string) {
	fmt.Fprintln(w, r.paint(ui.Cyan, s))
	fmt.Fprintln(w, strings.Repeat("=", len([]rune(s))))
}

// table writes header and rows as aligned columns. Cells are cut at cellMaxRunes.
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cell(c)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// fields writes label/value pairs as two aligned columns.
func fields(w io.Writer, pairs ...string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(tw, "%s:\t%s\n", pairs[i], utils.FirstNonEmpty(pairs[i+1], empty))
	}
	return tw.Flush()
}

func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return empty
	}
	return utils.Truncate(s, cellMaxRunes)
}

func id(n int64) string {
	if n == 0 {
		return empty
	}
	return fmt.Sprintf("%d", n)
}
