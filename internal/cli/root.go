// Package cli implements the lunarcal command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunarcal/internal/anniversary"
	"github.com/zapponejosh/lunarcal/internal/calendar"
	"github.com/zapponejosh/lunarcal/internal/config"
	"github.com/zapponejosh/lunarcal/internal/database"
	"github.com/zapponejosh/lunarcal/internal/render"
)

// ValidationError is bad command-line input. It is reported with the
// usage text and a non-zero exit status.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	if e.Msg == "" {
		return "invalid arguments"
	}
	return e.Msg
}

// App carries what the commands need from the process.
type App struct {
	Name    string
	Config  *config.Config
	Logger  *slog.Logger
	Gateway calendar.Gateway
	Stdout  io.Writer
	Stderr  io.Writer
	Now     func() time.Time
}

// flags holds the root command's flags.
type flags struct {
	localized bool
	utf8      bool
	show      bool
	bencao    bool
	list      bool
	add       string
	del       string
}

// NewRootCommand builds the root command and its serve subcommand.
func NewRootCommand(app *App) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   app.Name + " [[<month>] <year>]",
		Short: "Gregorian calendar pages with the Chinese lunisolar calendar overlaid",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, f, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fl := cmd.Flags()
	fl.BoolVarP(&f.localized, "localized", "g", false, "simplified Chinese output")
	fl.BoolVarP(&f.utf8, "utf8", "u", false, "UTF-8 rather than GB2312 for Chinese output")
	fl.BoolVarP(&f.show, "show", "s", false, "show daily sexagesimal names, phenology and anniversaries")
	fl.BoolVarP(&f.bencao, "bencao", "c", false, "BenCaoGangMu plum-rain rules")
	fl.BoolVarP(&f.list, "list", "l", false, "list anniversaries")
	fl.StringVarP(&f.add, "add", "a", "", "add anniversary")
	fl.StringVarP(&f.del, "delete", "d", "", "delete anniversary")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ValidationError{Msg: err.Error()}
	})

	cmd.AddCommand(newServeCommand(app))
	return cmd
}

// Execute runs the command line and returns the process exit status.
func Execute(ctx context.Context, app *App, args []string) int {
	cmd := NewRootCommand(app)
	cmd.SetArgs(args)
	cmd.SetOut(app.Stdout)
	cmd.SetErr(app.Stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		if verr.Msg != "" {
			fmt.Fprintf(app.Stderr, "%s: %s\n", app.Name, verr.Msg)
		}
		writeUsage(app.Stderr, app.Name)
		return 1
	}

	fmt.Fprintf(app.Stderr, "%s: %v\n", app.Name, err)
	return 1
}

func (app *App) run(cmd *cobra.Command, f *flags, args []string) error {
	ctx := cmd.Context()
	changed := cmd.Flags().Changed

	actions := 0
	for _, name := range []string{"list", "add", "delete"} {
		if changed(name) {
			actions++
		}
	}
	if actions > 1 {
		return &ValidationError{Msg: "Only one of -l, -a and -d may be given."}
	}

	switch {
	case f.list:
		if len(args) != 0 {
			return &ValidationError{Msg: "-l takes no parameters."}
		}
		return app.withService(ctx, func(svc *anniversary.Service) error {
			return app.list(ctx, svc)
		})

	case changed("delete"):
		if len(args) != 0 {
			return &ValidationError{Msg: "-d takes no parameters."}
		}
		if f.del == "" {
			return &ValidationError{Msg: "-d needs an id."}
		}
		return app.withService(ctx, func(svc *anniversary.Service) error {
			return app.remove(ctx, svc, f.del)
		})

	case changed("add"):
		rec, err := parseAdd(f.add, args)
		if err != nil {
			return err
		}
		// Reject before the store is opened, so a bad date leaves no file.
		if err := anniversary.Validate(app.Gateway, rec); err != nil {
			return &ValidationError{Msg: err.Error()}
		}
		return app.withService(ctx, func(svc *anniversary.Service) error {
			return app.add(ctx, svc, rec)
		})
	}

	year, month, whole, err := app.parseDate(args)
	if err != nil {
		return err
	}

	opts := render.Options{ShowDetail: f.show}
	if f.localized || f.utf8 {
		opts.Locale = render.LocaleLocalized
		if !f.utf8 {
			opts.Encoding = render.EncodingGB2312
		}
	}
	if f.bencao {
		opts.PhenologyRule = calendar.RuleBenCao
	}

	var index *anniversary.Index
	if f.show {
		err := app.withService(ctx, func(svc *anniversary.Service) error {
			var err error
			index, err = svc.Index(ctx)
			return err
		})
		if err != nil {
			return err
		}
	}

	r := render.New(app.Gateway, opts, index)
	if whole {
		return r.RenderYear(app.Stdout, year)
	}
	_, err = r.RenderMonth(app.Stdout, year, month, nil)
	return err
}

// parseDate reads [[<month>] <year>], defaulting to the current month.
// whole is set when only a year was given.
func (app *App) parseDate(args []string) (year, month int, whole bool, err error) {
	now := app.Now()
	year, month = now.Year(), int(now.Month())

	switch len(args) {
	case 0:
	case 1:
		if year, err = strconv.Atoi(args[0]); err != nil {
			return 0, 0, false, &ValidationError{Msg: fmt.Sprintf("Invalid year %q.", args[0])}
		}
		whole = true
	case 2:
		if month, err = strconv.Atoi(args[0]); err != nil {
			return 0, 0, false, &ValidationError{Msg: fmt.Sprintf("Invalid month %q.", args[0])}
		}
		if year, err = strconv.Atoi(args[1]); err != nil {
			return 0, 0, false, &ValidationError{Msg: fmt.Sprintf("Invalid year %q.", args[1])}
		}
	default:
		return 0, 0, false, &ValidationError{Msg: "Too many parameters."}
	}

	if month < 1 || month > 12 {
		return 0, 0, false, &ValidationError{Msg: "Invalid month value: month 1-12."}
	}
	if year < calendar.MinYear || year > calendar.MaxYear {
		return 0, 0, false, &ValidationError{
			Msg: fmt.Sprintf("Invalid year value: year %d-%d.", calendar.MinYear, calendar.MaxYear),
		}
	}
	return year, month, whole, nil
}

// withService opens the anniversary store for the duration of fn.
func (app *App) withService(ctx context.Context, fn func(*anniversary.Service) error) error {
	db, err := database.Open(database.DefaultConfig(app.Config.DatabasePath), app.Logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return err
	}

	return fn(anniversary.NewService(db, app.Gateway, app.Logger))
}

// writeUsage prints the usage text.
func writeUsage(w io.Writer, name string) {
	fmt.Fprintf(w, "Usage: %s [-g] [-u] [-s|-l|-a|-d] [-c] [[<month>] <year>].\n", name)
	fmt.Fprint(w, usageBody)
	fmt.Fprintf(w, "       %s serve\n", name)
	fmt.Fprint(w, "\t\t Serves pages and anniversaries over HTTP.\n")
}

const usageBody = "\t-g:\tGenerates simplified Chinese output.\n" +
	"\t-u:\tUses UTF-8 rather than GB for Chinese output.\n" +
	"\t-s:\tShow lines for daily sexagesimal names and misc terms.\n" +
	"\t-c:\tUse BenCaoGangMu rules for phenology of plum-rains\n" +
	"\t\t ShenShuJing rules: RuMei on 1st Bing day after MZ, ChuMei on 1st Wei day after XS (default)\n" +
	"\t\t BenCaoGangMu rules: RuMei on 1st Ren day after MZ, ChuMei on 1st Ren day after XS\n" +
	"\t-l:\tList of registered anniversaries of birth / death.\n" +
	"\t-a:\tAdd anniversary. Syntax: -a <ID_en> <ID_cn> <type> <calendar> <Gregorian_day> <month> <year>\n" +
	"\t\t <type> value 0 for death, 1 for birthday\n" +
	"\t\t <calendar> value 0 for Gregorian, 1 for Chinese calendar, by which anniversaries are calculated\n" +
	"\t-d:\tDelete anniversary. Syntax: -d <ID_en|ID_cn>\n"
