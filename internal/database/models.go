package database

import (
	"fmt"
	"time"
)

// anchorLayout is the stored form of Anniversary.AnchorDate.
const anchorLayout = "2006-01-02"

// Anniversary is one stored row. AnchorYear, AnchorMonth and AnchorDay give
// the Gregorian date the anniversary counts from; LunarMonth and LunarDay
// are its Chinese date, leap flag dropped.
//
// DecodeErr is set when a stored column could not be read back; the other
// fields then hold whatever did decode.
type Anniversary struct {
	ID            int64     `json:"id"`
	IDLatin       string    `json:"id_latin"`
	IDLocal       string    `json:"id_local"`
	IsBirth       bool      `json:"is_birth"`
	LunarAnchored bool      `json:"lunar_anchored"`
	AnchorYear    int       `json:"anchor_year"`
	AnchorMonth   int       `json:"anchor_month"`
	AnchorDay     int       `json:"anchor_day"`
	LunarMonth    int       `json:"lunar_month"`
	LunarDay      int       `json:"lunar_day"`
	Checksum      uint32    `json:"checksum"`
	CreatedAt     time.Time `json:"created_at"`
	DecodeErr     error     `json:"-"`

	storedAnchor string
}

// AnchorDate returns the anchor in YYYY-MM-DD form, or the stored text
// verbatim when it did not parse.
func (a Anniversary) AnchorDate() string {
	if a.storedAnchor != "" {
		return a.storedAnchor
	}
	return fmt.Sprintf("%04d-%02d-%02d", a.AnchorYear, a.AnchorMonth, a.AnchorDay)
}

// Kind returns "birth" or "death".
func (a Anniversary) Kind() string {
	if a.IsBirth {
		return "birth"
	}
	return "death"
}

// setAnchorDate parses a stored YYYY-MM-DD anchor.
func (a *Anniversary) setAnchorDate(s string) error {
	t, err := time.Parse(anchorLayout, s)
	if err != nil {
		a.storedAnchor = s
		return fmt.Errorf("anchor_date %q is not a YYYY-MM-DD date", s)
	}
	a.AnchorYear, a.AnchorMonth, a.AnchorDay = t.Year(), int(t.Month()), t.Day()
	return nil
}
