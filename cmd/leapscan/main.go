package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zapponejosh/lunarcal/internal/astro"
	"github.com/zapponejosh/lunarcal/internal/calendar"
)

// This tool walks a range of Gregorian years day by day the way the
// renderer does, checks every incrementally derived Chinese date against
// a direct decomposition, and lists the leap months it passes.

type leapMonth struct {
	year, month, day int
	lunarMonth       int
	length           int
}

type mismatch struct {
	year, month, day int
	got, want        calendar.ChineseDate
}

func main() {
	from := flag.Int("from", 2000, "First Gregorian year to scan")
	to := flag.Int("to", 2050, "Last Gregorian year to scan")
	verbose := flag.Bool("v", false, "Print every mismatch")
	flag.Parse()

	if *from < calendar.MinYear || *to > calendar.MaxYear || *from > *to {
		fmt.Printf("Error: years must satisfy %d <= from <= to <= %d\n", calendar.MinYear, calendar.MaxYear)
		os.Exit(1)
	}

	fmt.Printf("=== Lunisolar Scan %d-%d ===\n\n", *from, *to)

	gw := astro.New()
	tr := calendar.NewTracker(gw)

	var (
		days       int
		leaps      []leapMonth
		mismatches []mismatch
		prev       *calendar.ChineseDate
	)

	for year := *from; year <= *to; year++ {
		for month := 1; month <= 12; month++ {
			f := tr.Resolve(year, month, prev)
			last := tr.Walk(f, func(fixed int, date calendar.ChineseDate) {
				days++
				y, m, d := gw.GregorianFromFixed(fixed)

				if want := calendar.FromGateway(gw, fixed); date != want {
					mismatches = append(mismatches, mismatch{y, m, d, date, want})
				}
				if date.Leap && date.Day == 1 {
					leaps = append(leaps, leapMonth{
						year: y, month: m, day: d,
						lunarMonth: date.Month,
						length:     monthLength(gw, fixed),
					})
				}
			})
			prev = &last
		}
	}

	// ==========================================================================
	// LEAP MONTHS
	// ==========================================================================
	fmt.Println("Leap Months:")
	for _, l := range leaps {
		fmt.Printf("  %04d-%02d-%02d  leap %s month (%d days)\n",
			l.year, l.month, l.day, ordinal(l.lunarMonth), l.length)
	}
	fmt.Println()

	// ==========================================================================
	// SUMMARY
	// ==========================================================================
	fmt.Println("Summary:")
	fmt.Printf("  Days walked:      %d\n", days)
	fmt.Printf("  Leap months:      %d\n", len(leaps))
	fmt.Printf("  Gateway lookups:  %d (%.2f%% of days)\n", tr.Lookups, 100*float64(tr.Lookups)/float64(days))
	fmt.Printf("  Mismatches:       %d\n", len(mismatches))

	if len(mismatches) == 0 {
		fmt.Println("\n✓ Incremental dates match direct decomposition")
		return
	}

	fmt.Println()
	shown := mismatches
	if !*verbose && len(shown) > 10 {
		shown = shown[:10]
	}
	for _, m := range shown {
		fmt.Printf("  ✗ %04d-%02d-%02d  got %s, want %s\n", m.year, m.month, m.day, describe(m.got), describe(m.want))
	}
	if len(shown) < len(mismatches) {
		fmt.Printf("  ... %d more (use -v)\n", len(mismatches)-len(shown))
	}
	os.Exit(1)
}

// monthLength is 30 when the next new moon is 30 days after newMoon.
func monthLength(gw calendar.Gateway, newMoon int) int {
	if gw.NewMoonOnOrAfter(newMoon+1)-newMoon == 30 {
		return 30
	}
	return 29
}

func describe(d calendar.ChineseDate) string {
	leap := ""
	if d.Leap {
		leap = " leap"
	}
	return fmt.Sprintf("cycle %d year %d%s month %d day %d", d.Cycle, d.Offset, leap, d.Month, d.Day)
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 10 {
	case 1:
		if n%100 != 11 {
			suffix = "st"
		}
	case 2:
		if n%100 != 12 {
			suffix = "nd"
		}
	case 3:
		if n%100 != 13 {
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
