package render

import (
	"strings"

	"github.com/zapponejosh/lunarcal/internal/database"
)

// detail is the unfitted detail text of one day: its anniversaries if any,
// else a phenological marker, else its sexagesimal name.
func (r *Renderer) detail(year, month, dayOfMonth int, d day) string {
	if m := r.index.Match(year, month, dayOfMonth, d.date.Month, d.date.Day); !m.Empty() {
		return "[" + r.bucket(m.Births, r.loc.birthLabel) + r.bucket(m.Deaths, r.loc.deathLabel) + "]"
	}
	if marker, ok := r.phenology.MarkerOn(d.fixed); ok {
		return "[" + r.loc.marker(marker) + "]"
	}
	stem, branch := r.gw.SexagesimalName(d.fixed)
	return r.loc.stem(stem) + r.loc.branch(branch)
}

func (r *Renderer) bucket(rs []database.Anniversary, label func(id string, n int) string) string {
	switch len(rs) {
	case 0:
		return ""
	case 1:
		return label(r.loc.pickID(rs[0].IDLatin, rs[0].IDLocal), 1)
	default:
		return label("", len(rs))
	}
}

// fit centres s in a cell, or cuts it to the cell keeping its last
// character behind "..".
func (r *Renderer) fit(s string) string {
	w := r.width.StringWidth(s)
	if w <= cellWidth {
		return centre(s, cellWidth-(w-len([]rune(s))))
	}

	runes := []rune(s)
	last := runes[len(runes)-1]
	budget := cellWidth - 2 - r.width.RuneWidth(last)

	var b strings.Builder
	for _, c := range runes[:len(runes)-1] {
		cw := r.width.RuneWidth(c)
		if cw > budget {
			b.WriteString(strings.Repeat(".", budget))
			break
		}
		b.WriteRune(c)
		budget -= cw
	}
	b.WriteString("..")
	b.WriteRune(last)
	return b.String()
}

// centre pads s to n runes, the odd space going left only when both the
// padding and n are odd.
func centre(s string, n int) string {
	margin := n - len([]rune(s))
	if margin <= 0 {
		return s
	}
	left := margin/2 + (margin & n & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", margin-left)
}
