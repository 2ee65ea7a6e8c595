package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/zapponejosh/lunarcal/internal/anniversary"
	"github.com/zapponejosh/lunarcal/internal/astro"
	"github.com/zapponejosh/lunarcal/internal/calendar"
	"github.com/zapponejosh/lunarcal/internal/database"
)

func renderLines(t *testing.T, r *Renderer, year, month int) []string {
	t.Helper()
	var buf bytes.Buffer
	_, err := r.RenderMonth(&buf, year, month, nil)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestHeader(t *testing.T) {
	tests := []struct {
		name        string
		locale      Locale
		year, month int
		want        string
	}{
		{"within one month", LocaleLatin, 2014, 2, "February 2014 (Year JiaWu, Month 1X)"},
		{"leap month starts", LocaleLatin, 2023, 3, "March 2023 (Year GuiMao, Month R2X S22)"},
		{"two months", LocaleLatin, 2014, 3, "March 2014 (Year JiaWu, Month 2D S1, 3X S31)"},
		{"new year", LocaleLatin, 2014, 1, "January 2014 (Year GuiSi, Month 12D S1, Year JiaWu, Month 1X S31)"},
		{"localized within", LocaleLocalized, 2014, 2, "February 2014  甲午年正月小"},
		{"localized leap", LocaleLocalized, 2023, 3, "March 2023  癸卯年闰二月小22日始"},
		{"localized two months", LocaleLocalized, 2014, 3, "March 2014  甲午年二月大1日始，三月小31日始"},
		{"localized new year", LocaleLocalized, 2014, 1, "January 2014  癸巳年十二月大1日始，甲午年正月小31日始"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(astro.New(), Options{Locale: tt.locale}, nil)
			f := r.tracker.Resolve(tt.year, tt.month, nil)
			assert.Equal(t, tt.want, r.header(f))
		})
	}
}

func TestRenderMonth_HeaderIsCentred(t *testing.T) {
	tests := []struct {
		locale      Locale
		year, month int
		pad         int
	}{
		{LocaleLatin, 2014, 1, 1},
		{LocaleLatin, 2023, 3, 14},
		{LocaleLocalized, 2014, 1, 7},
		{LocaleLocalized, 2023, 3, 18},
	}

	for _, tt := range tests {
		r := New(astro.New(), Options{Locale: tt.locale}, nil)
		header := renderLines(t, r, tt.year, tt.month)[0]
		trimmed := strings.TrimLeft(header, " ")
		assert.Equal(t, tt.pad, len(header)-len(trimmed), "%s %d-%02d", tt.locale, tt.year, tt.month)
	}
}

func TestRenderMonth_Latin(t *testing.T) {
	r := New(astro.New(), Options{}, nil)
	lines := renderLines(t, r, 2014, 2)

	require.Len(t, lines, 7)
	assert.Equal(t, "Sunday    Monday    Tuesday   Wednesday Thursday  Friday    Saturday  ", lines[1])
	// February 1, 2014 was a Saturday and the second day of the first month.
	assert.Equal(t, strings.Repeat(" ", 60)+" 1 [ 2]   ", lines[2])
	assert.Contains(t, lines[3], " 4 [LC]   ")
	assert.Contains(t, lines[4], "12 [13]   ")
}

func TestRenderMonth_LocalizedCells(t *testing.T) {
	r := New(astro.New(), Options{Locale: LocaleLocalized}, nil)
	lines := renderLines(t, r, 2023, 4)
	page := strings.Join(lines, "\n")

	assert.Equal(t, "Sun  日   Mon  一   Tue  二   Wed  三   Thu  四   Fri  五   Sat  六   ", lines[1])
	assert.Equal(t, strings.Repeat(" ", 60)+" 1 十一   ", lines[2])
	assert.Contains(t, page, " 5 清明   ")
	assert.Contains(t, page, "20 谷雨   ", "the solar term outranks the new moon")
	assert.Contains(t, page, "21 三月   ", "the month name follows on the next day")
	assert.Contains(t, page, "22 初三   ")
}

func TestRenderMonth_LeapMonthCell(t *testing.T) {
	latin := renderLines(t, New(astro.New(), Options{}, nil), 2023, 3)
	assert.Contains(t, strings.Join(latin, "\n"), "22 [ 2]YR ")

	local := renderLines(t, New(astro.New(), Options{Locale: LocaleLocalized}, nil), 2023, 3)
	assert.Contains(t, strings.Join(local, "\n"), "22 闰二月 ")
}

func TestWeekCount(t *testing.T) {
	tests := []struct {
		dofw, days, want int
	}{
		{0, 31, 5},
		{4, 31, 5},
		{5, 31, 6},
		{6, 31, 6},
		{5, 30, 5},
		{6, 30, 6},
		{6, 28, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, weekCount(tt.dofw, tt.days), "dofw %d days %d", tt.dofw, tt.days)
	}
}

func TestFit(t *testing.T) {
	r := New(astro.New(), Options{}, nil)

	tests := []struct {
		in, want string
	}{
		{"WuWu", "   WuWu   "},
		{"JiaZi", "  JiaZi   "},
		{"甲子", "   甲子   "},
		{"[ChuFu]", " [ChuFu]  "},
		{"[B.LiDx2]", "[B.LiDx2] "},
		{"[B.LiD.Wang]", "[B.LiD...]"},
		{"[李四生王五忌]", "[李四生..]"},
		{"[B李四生王]", "[B李四...]"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := r.fit(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, cellWidth, r.width.StringWidth(got))
		})
	}
}

func TestRenderMonth_DetailLine(t *testing.T) {
	ix := anniversary.NewIndex([]database.Anniversary{
		{IDLatin: "Li", IDLocal: "李", IsBirth: true, AnchorYear: 2000, AnchorMonth: 3, AnchorDay: 22},
		{IDLatin: "Wang", IDLocal: "王", LunarAnchored: true, AnchorYear: 2023, AnchorMonth: 3, AnchorDay: 22, LunarMonth: 2, LunarDay: 1},
		{IDLatin: "Zhao", IDLocal: "赵", LunarAnchored: true, AnchorYear: 1990, AnchorMonth: 3, AnchorDay: 27, LunarMonth: 3, LunarDay: 1},
	})

	t.Run("sexagesimal names", func(t *testing.T) {
		r := New(astro.New(), Options{ShowDetail: true}, nil)
		lines := renderLines(t, r, 2000, 1)
		// 2000-01-01, a Saturday, was a Wu-Wu day.
		assert.Equal(t, strings.Repeat(" ", 60)+"   WuWu   ", lines[3])
	})

	t.Run("anniversaries", func(t *testing.T) {
		r := New(astro.New(), Options{ShowDetail: true}, ix)
		page := strings.Join(renderLines(t, r, 2023, 3), "\n")
		assert.Contains(t, page, "[B.LiD...]")
	})

	t.Run("anniversaries localized", func(t *testing.T) {
		r := New(astro.New(), Options{Locale: LocaleLocalized, ShowDetail: true}, ix)
		page := strings.Join(renderLines(t, r, 2023, 4), "\n")
		assert.Contains(t, page, "  [赵忌]  ", "lunar 3/1 fell on April 20")
	})

	t.Run("phenology", func(t *testing.T) {
		r := New(astro.New(), Options{ShowDetail: true}, ix)
		page := strings.Join(renderLines(t, r, 2023, 7), "\n")
		assert.Contains(t, page, " [ChuFu]  ")
		assert.Contains(t, page, "[ZhongFu] ")
	})
}

func TestRenderYear_MatchesFreshMonths(t *testing.T) {
	gw := astro.New()
	opts := Options{Locale: LocaleLocalized, ShowDetail: true}

	var year bytes.Buffer
	require.NoError(t, New(gw, opts, nil).RenderYear(&year, 2023))

	var months bytes.Buffer
	for month := 1; month <= 12; month++ {
		_, err := New(gw, opts, nil).RenderMonth(&months, 2023, month, nil)
		require.NoError(t, err)
	}

	assert.Equal(t, months.String(), year.String())
}

func TestRenderMonth_GB2312(t *testing.T) {
	gw := astro.New()

	var utf8Page, gbPage bytes.Buffer
	_, err := New(gw, Options{Locale: LocaleLocalized}, nil).RenderMonth(&utf8Page, 2023, 4, nil)
	require.NoError(t, err)
	_, err = New(gw, Options{Locale: LocaleLocalized, Encoding: EncodingGB2312}, nil).RenderMonth(&gbPage, 2023, 4, nil)
	require.NoError(t, err)

	assert.NotEqual(t, utf8Page.Bytes(), gbPage.Bytes())
	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(gbPage.Bytes())
	require.NoError(t, err)
	assert.Equal(t, utf8Page.String(), string(decoded))
}

func TestRenderMonth_OutOfRange(t *testing.T) {
	r := New(astro.New(), Options{}, nil)

	_, err := r.RenderMonth(&bytes.Buffer{}, calendar.MinYear-1, 1, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = r.RenderMonth(&bytes.Buffer{}, 2024, 13, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.ErrorIs(t, r.RenderYear(&bytes.Buffer{}, calendar.MaxYear+1), ErrOutOfRange)
}
