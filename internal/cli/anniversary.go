package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/zapponejosh/lunarcal/internal/anniversary"
	"github.com/zapponejosh/lunarcal/internal/database"
)

// Indicator column of the list output.
const (
	verifiedMark   = "  "
	unverifiedMark = "! "
)

var listColumns = []string{
	"id", "id_latin", "id_local", "birth", "lunar",
	"anchor_date", "lunar_month", "lunar_day", "checksum",
}

// parseAdd reads -a <id_latin> <id_local> <type> <calendar> <day> <month> <year>.
func parseAdd(idLatin string, args []string) (anniversary.NewRecord, error) {
	var rec anniversary.NewRecord

	if len(args) != 6 {
		return rec, &ValidationError{Msg: "-a needs <ID_en> <ID_cn> <type> <calendar> <Gregorian_day> <month> <year>."}
	}
	if idLatin == "" || !isASCII(idLatin) {
		return rec, &ValidationError{Msg: fmt.Sprintf("Invalid ID_en %q: ASCII only.", idLatin)}
	}
	if args[0] == "" {
		return rec, &ValidationError{Msg: "ID_cn is required."}
	}

	nums := make([]int, 5)
	names := []string{"type", "calendar", "day", "month", "year"}
	for i, s := range args[1:] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return rec, &ValidationError{Msg: fmt.Sprintf("Invalid %s %q.", names[i], s)}
		}
		nums[i] = n
	}
	for i := 0; i < 2; i++ {
		if nums[i] != 0 && nums[i] != 1 {
			return rec, &ValidationError{Msg: fmt.Sprintf("Invalid %s value: 0 or 1.", names[i])}
		}
	}

	rec = anniversary.NewRecord{
		IDLatin:       idLatin,
		IDLocal:       args[0],
		IsBirth:       nums[0] == 1,
		LunarAnchored: nums[1] == 1,
		Day:           nums[2],
		Month:         nums[3],
		Year:          nums[4],
	}
	return rec, nil
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func (app *App) add(ctx context.Context, svc *anniversary.Service, rec anniversary.NewRecord) error {
	_, err := svc.Add(ctx, rec)
	switch {
	case errors.Is(err, anniversary.ErrInvalidRecord):
		return &ValidationError{Msg: err.Error()}
	case errors.Is(err, database.ErrDuplicate):
		return fmt.Errorf("%s or %s already has a %s anniversary: %w", rec.IDLatin, rec.IDLocal, kind(rec.IsBirth), err)
	}
	return err
}

func kind(birth bool) string {
	if birth {
		return "birth"
	}
	return "death"
}

// remove deletes the records for id. Nothing to remove is reported but
// is not a failure.
func (app *App) remove(ctx context.Context, svc *anniversary.Service, id string) error {
	_, err := svc.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		fmt.Fprintf(app.Stderr, "%s: no anniversary for %s\n", app.Name, id)
		return nil
	}
	return err
}

// list writes every record, tab separated, each behind a mark telling
// whether its checksum verifies.
func (app *App) list(ctx context.Context, svc *anniversary.Service) error {
	entries, err := svc.List(ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(verifiedMark + strings.Join(listColumns, "\t") + "\n")
	for _, e := range entries {
		mark := verifiedMark
		if !e.Verified {
			mark = unverifiedMark
		}
		a := e.Anniversary
		fields := []string{
			strconv.FormatInt(a.ID, 10),
			a.IDLatin,
			a.IDLocal,
			bit(a.IsBirth),
			bit(a.LunarAnchored),
			a.AnchorDate(),
			strconv.Itoa(a.LunarMonth),
			strconv.Itoa(a.LunarDay),
			strconv.FormatUint(uint64(a.Checksum), 10),
		}
		b.WriteString(mark + strings.Join(fields, "\t") + "\n")
	}

	_, err = fmt.Fprint(app.Stdout, b.String())
	return err
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
