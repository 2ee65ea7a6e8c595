// Package render draws Gregorian month pages annotated with the Chinese
// calendar: a centred header naming the lunar months, a weekday row and a
// grid of day cells, optionally followed per week by a detail line.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/zapponejosh/lunarcal/internal/anniversary"
	"github.com/zapponejosh/lunarcal/internal/calendar"
)

// ErrOutOfRange is returned for a year or month the renderer does not draw.
var ErrOutOfRange = errors.New("date outside supported range")

const (
	pageWidth = 68
	cellWidth = 10
)

// Options are fixed for the life of a Renderer.
type Options struct {
	Locale   Locale
	Encoding Encoding

	// ShowDetail adds a line under each week with sexagesimal day names,
	// phenological markers and anniversaries.
	ShowDetail    bool
	PhenologyRule calendar.PhenologyRule
}

// Renderer draws pages. It keeps the tracker and phenology cache between
// months, so one Renderer serves one sequential run.
type Renderer struct {
	gw        calendar.Gateway
	opts      Options
	loc       locale
	tracker   *calendar.Tracker
	phenology *calendar.Phenology
	index     *anniversary.Index
	width     *runewidth.Condition
}

// New returns a Renderer. index may be nil when no anniversaries are shown.
func New(gw calendar.Gateway, opts Options, index *anniversary.Index) *Renderer {
	var loc locale = latinLocale{}
	if opts.Locale == LocaleLocalized {
		loc = localizedLocale{}
	}

	width := runewidth.NewCondition()
	width.EastAsianWidth = false

	return &Renderer{
		gw:        gw,
		opts:      opts,
		loc:       loc,
		tracker:   calendar.NewTracker(gw),
		phenology: calendar.NewPhenology(gw, opts.PhenologyRule, calendar.NewPhenologyCache()),
		index:     index,
		width:     width,
	}
}

// Tracker exposes the tracker driving the renderer.
func (r *Renderer) Tracker() *calendar.Tracker {
	return r.tracker
}

func validate(year, month int) error {
	if year < calendar.MinYear || year > calendar.MaxYear {
		return fmt.Errorf("%w: year %d not in %d-%d", ErrOutOfRange, year, calendar.MinYear, calendar.MaxYear)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d not in 1-12", ErrOutOfRange, month)
	}
	return nil
}

// RenderMonth writes one month page. prev is the Chinese date of the last
// day of the previous month, or nil; the Chinese date of the page's last
// day is returned for the next call.
func (r *Renderer) RenderMonth(w io.Writer, year, month int, prev *calendar.ChineseDate) (calendar.ChineseDate, error) {
	if err := validate(year, month); err != nil {
		return calendar.ChineseDate{}, err
	}

	var buf bytes.Buffer
	last := r.page(&buf, year, month, prev)
	return last, encode(w, r.opts.Encoding, buf.Bytes())
}

// RenderYear writes the twelve pages of a year, each continuing from the
// last day of the one before.
func (r *Renderer) RenderYear(w io.Writer, year int) error {
	if err := validate(year, 1); err != nil {
		return err
	}

	var buf bytes.Buffer
	var prev *calendar.ChineseDate
	for month := 1; month <= 12; month++ {
		last := r.page(&buf, year, month, prev)
		prev = &last
	}
	return encode(w, r.opts.Encoding, buf.Bytes())
}

type day struct {
	fixed int
	date  calendar.ChineseDate
	cell  calendar.Cell
}

func (r *Renderer) page(buf *bytes.Buffer, year, month int, prev *calendar.ChineseDate) calendar.ChineseDate {
	f := r.tracker.Resolve(year, month, prev)

	header := r.header(f)
	pad := max((pageWidth-r.width.StringWidth(header))/2, 0)
	writeLine(buf, strings.Repeat(" ", pad)+header)
	writeLine(buf, r.loc.weekdayRow())

	classifier := calendar.NewClassifier(f)
	days := make([]day, 0, f.Days)
	last := r.tracker.Walk(f, func(fixed int, date calendar.ChineseDate) {
		days = append(days, day{fixed: fixed, date: date, cell: classifier.Classify(fixed, date)})
	})

	dofw := r.gw.DayOfWeek(f.First)
	blank := strings.Repeat(" ", cellWidth)
	next := 0
	for week := 0; week < weekCount(dofw, f.Days); week++ {
		var top, bottom strings.Builder
		for weekday := 0; weekday < 7 && next < len(days); weekday++ {
			if week == 0 && weekday < dofw {
				top.WriteString(blank)
				bottom.WriteString(blank)
				continue
			}
			d := days[next]
			next++
			fmt.Fprintf(&top, "%2d", next)
			top.WriteString(r.annotation(d.cell))
			if r.opts.ShowDetail {
				bottom.WriteString(r.fit(r.detail(year, month, next, d)))
			}
		}
		writeLine(buf, top.String())
		if r.opts.ShowDetail {
			writeLine(buf, bottom.String())
		}
	}
	return last
}

// weekCount is 6 when a 31-day month starts on Friday or Saturday or a
// 30-day month starts on Saturday, else 5.
func weekCount(dofw, days int) int {
	if (dofw > 4 && days == 31) || (dofw > 5 && days == 30) {
		return 6
	}
	return 5
}

func writeLine(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte('\n')
}

// header names the lunar month of the 1st, or the months starting inside
// the page with their Gregorian start days.
func (r *Renderer) header(f calendar.MonthFacts) string {
	loc := r.loc
	yearOf := func(d calendar.ChineseDate) string {
		return loc.yearPart(loc.stem(d.YearStem()), loc.branch(d.YearBranch()))
	}

	var b strings.Builder
	b.WriteString(loc.open(monthNames[f.Month-1], f.Year))

	if f.Shape == calendar.ShapeWithin {
		b.WriteString(yearOf(f.Start))
		b.WriteString(loc.monthPart(f.Start, f.StartLength, true))
		b.WriteString(loc.close())
		return b.String()
	}

	first := f.Boundaries[0]
	b.WriteString(yearOf(first.Date))
	b.WriteString(loc.monthPart(first.Date, first.Length, true))
	b.WriteString(loc.startPart(first.Offset))

	if len(f.Boundaries) > 1 {
		second := f.Boundaries[1]
		b.WriteString(loc.separator())
		if f.Shape == calendar.ShapeTwoBoundariesNewYear {
			b.WriteString(yearOf(second.Date))
			b.WriteString(loc.monthPart(second.Date, second.Length, true))
		} else {
			b.WriteString(loc.monthPart(second.Date, second.Length, false))
		}
		b.WriteString(loc.startPart(second.Offset))
	}

	b.WriteString(loc.close())
	return b.String()
}

// annotation is the 8-column text after the day number.
func (r *Renderer) annotation(c calendar.Cell) string {
	switch c.Kind {
	case calendar.CellSolarTerm:
		return " " + r.loc.solarTerm(c.Term) + "   "
	case calendar.CellMonthName:
		return r.loc.monthCell(c.Date)
	default:
		return r.loc.dayCell(c.Date.Day)
	}
}
