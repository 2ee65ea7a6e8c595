package render

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/zapponejosh/lunarcal/internal/calendar"
)

// Locale selects the language of the page.
type Locale int

const (
	// LocaleLatin writes pinyin and ASCII abbreviations.
	LocaleLatin Locale = iota
	// LocaleLocalized writes simplified Chinese.
	LocaleLocalized
)

func (l Locale) String() string {
	if l == LocaleLocalized {
		return "localized"
	}
	return "latin"
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// locale supplies every string a page needs in one language.
type locale interface {
	solarTerm(i int) string
	weekdayRow() string
	stem(i int) string
	branch(i int) string
	marker(m calendar.Marker) string

	// dayCell and monthCell are the 8-column annotations after the day number.
	dayCell(day int) string
	monthCell(d calendar.ChineseDate) string

	// Header pieces.
	open(name string, year int) string
	yearPart(stem, branch string) string
	monthPart(d calendar.ChineseDate, length int, first bool) string
	startPart(offset int) string
	separator() string
	close() string

	// birthLabel and deathLabel render one bucket; id is empty when n > 1.
	birthLabel(id string, n int) string
	deathLabel(id string, n int) string
	pickID(latin, local string) string
}

func multiplier(n int) string {
	if n > 1 {
		return "x" + strconv.Itoa(n)
	}
	return ""
}

// =============================================================================
// Latin
// =============================================================================

type latinLocale struct{}

var latinSolarTerms = [24]string{
	"[XH]", "[DH]", "[LC]", "[YS]", "[JZ]", "[CF]", "[QM]", "[GY]",
	"[LX]", "[XM]", "[MZ]", "[XZ]", "[XS]", "[DS]", "[LQ]", "[CS]",
	"[BL]", "[QF]", "[HL]", "[SJ]", "[LD]", "[XX]", "[DX]", "[DZ]",
}

var latinWeekdays = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

var latinStems = [10]string{"Jia", "Yi", "Bing", "Ding", "Wu", "Ji", "Geng", "Xin", "Ren", "Gui"}

var latinBranches = [12]string{"Zi", "Chou", "Yin", "Mao", "Chen", "Si", "Wu", "Wei", "Shen", "You", "Xu", "Hai"}

var latinMarkers = [14]string{
	"RuMei", "ChuMei", "ChuFu", "ZhongFu", "MoFu",
	"YiJiu", "ErJiu", "SanJiu", "SiJiu", "WuJiu",
	"LiuJiu", "QiJiu", "BaJiu", "JiuJiu",
}

func (latinLocale) solarTerm(i int) string { return latinSolarTerms[i] }
func (latinLocale) stem(i int) string      { return latinStems[i] }
func (latinLocale) branch(i int) string    { return latinBranches[i] }

func (latinLocale) marker(m calendar.Marker) string { return latinMarkers[m] }

func (latinLocale) weekdayRow() string {
	var row string
	for _, d := range latinWeekdays {
		row += fmt.Sprintf("%-10s", d)
	}
	return row
}

func (latinLocale) dayCell(day int) string {
	return fmt.Sprintf(" [%2d]   ", day)
}

func (latinLocale) monthCell(d calendar.ChineseDate) string {
	leap := " "
	if d.Leap {
		leap = "R"
	}
	return fmt.Sprintf(" [%2d]Y%s ", d.Month, leap)
}

func (latinLocale) open(name string, year int) string {
	return fmt.Sprintf("%s %d (", name, year)
}

func (latinLocale) yearPart(stem, branch string) string {
	return "Year " + stem + branch + ", "
}

func (latinLocale) monthPart(d calendar.ChineseDate, length int, first bool) string {
	s := ""
	if first {
		s = "Month "
	}
	if d.Leap {
		s += "R"
	}
	s += strconv.Itoa(d.Month)
	if length == 30 {
		return s + "D"
	}
	return s + "X"
}

func (latinLocale) startPart(offset int) string { return " S" + strconv.Itoa(offset) }
func (latinLocale) separator() string           { return ", " }
func (latinLocale) close() string               { return ")" }

func (latinLocale) birthLabel(id string, n int) string { return "B." + id + multiplier(n) }
func (latinLocale) deathLabel(id string, n int) string { return "D." + id + multiplier(n) }
func (latinLocale) pickID(latin, _ string) string      { return latin }

// =============================================================================
// Localized
// =============================================================================

type localizedLocale struct{}

var localizedSolarTerms = [24]string{
	"小寒", "大寒", "立春", "雨水", "惊蛰", "春分", "清明", "谷雨",
	"立夏", "小满", "芒种", "夏至", "小暑", "大暑", "立秋", "处暑",
	"白露", "秋分", "寒露", "霜降", "立冬", "小雪", "大雪", "冬至",
}

var localizedWeekdays = [7]string{
	"Sun  日", "Mon  一", "Tue  二", "Wed  三", "Thu  四", "Fri  五", "Sat  六",
}

var localizedStems = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var localizedBranches = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var localizedMarkers = [14]string{
	"入梅", "出梅", "初伏", "中伏", "末伏",
	"一九", "二九", "三九", "四九", "五九",
	"六九", "七九", "八九", "九九",
}

// digits holds 初 at index 0, then 一 through 十.
var digits = [11]string{"初", "一", "二", "三", "四", "五", "六", "七", "八", "九", "十"}

func (localizedLocale) solarTerm(i int) string { return localizedSolarTerms[i] }
func (localizedLocale) stem(i int) string      { return localizedStems[i] }
func (localizedLocale) branch(i int) string    { return localizedBranches[i] }

func (localizedLocale) marker(m calendar.Marker) string { return localizedMarkers[m] }

func (localizedLocale) weekdayRow() string {
	var row string
	for _, d := range localizedWeekdays {
		row += d + "   "
	}
	return row
}

// dayName spells a lunar day: 初一..初十, 十一..十九, 二十, 廿一..廿九, 三十.
func dayName(day int) string {
	switch {
	case day <= 10:
		return digits[0] + digits[day]
	case day == 20 || day == 30:
		return digits[day/10] + digits[10]
	case day < 20:
		return digits[10] + digits[day-10]
	default:
		return "廿" + digits[day-20]
	}
}

// monthName spells a lunar month number; a regular first month is 正.
func monthName(d calendar.ChineseDate) string {
	switch {
	case d.Month == 1 && !d.Leap:
		return "正"
	case d.Month <= 10:
		return digits[d.Month]
	default:
		return digits[10] + digits[d.Month-10]
	}
}

func (localizedLocale) dayCell(day int) string {
	return " " + dayName(day) + "   "
}

func (localizedLocale) monthCell(d calendar.ChineseDate) string {
	s := monthName(d) + "月"
	if d.Leap {
		s = "闰" + s
	}
	switch utf8.RuneCountInString(s) {
	case 2:
		return " " + s + "   "
	case 3:
		return " " + s + " "
	default:
		return s
	}
}

func (localizedLocale) open(name string, year int) string {
	return fmt.Sprintf("%s %d  ", name, year)
}

func (localizedLocale) yearPart(stem, branch string) string {
	return stem + branch + "年"
}

func (localizedLocale) monthPart(d calendar.ChineseDate, length int, _ bool) string {
	s := monthName(d) + "月"
	if d.Leap {
		s = "闰" + s
	}
	if length == 30 {
		return s + "大"
	}
	return s + "小"
}

func (localizedLocale) startPart(offset int) string { return strconv.Itoa(offset) + "日始" }
func (localizedLocale) separator() string           { return "，" }
func (localizedLocale) close() string               { return "" }

func (localizedLocale) birthLabel(id string, n int) string { return id + "生" + multiplier(n) }
func (localizedLocale) deathLabel(id string, n int) string { return id + "忌" + multiplier(n) }
func (localizedLocale) pickID(_, local string) string      { return local }
