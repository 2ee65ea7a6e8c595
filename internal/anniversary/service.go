package anniversary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zapponejosh/lunarcal/internal/calendar"
	"github.com/zapponejosh/lunarcal/internal/database"
)

// ErrInvalidRecord is returned by Add for malformed input.
var ErrInvalidRecord = errors.New("invalid anniversary")

// Store is the persistence the service needs; *database.DB implements it.
type Store interface {
	InsertAnniversary(ctx context.Context, a *database.Anniversary) error
	DeleteAnniversary(ctx context.Context, id string) (int64, error)
	GetAnniversary(ctx context.Context, id int64) (*database.Anniversary, error)
	ListAnniversaries(ctx context.Context) ([]database.Anniversary, error)
}

// Service adds, deletes, lists and indexes anniversaries.
type Service struct {
	store  Store
	gw     calendar.Gateway
	logger *slog.Logger
}

// NewService returns a Service. A nil logger uses slog.Default().
func NewService(store Store, gw calendar.Gateway, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, gw: gw, logger: logger}
}

// NewRecord is the input to Add.
type NewRecord struct {
	IDLatin       string
	IDLocal       string
	IsBirth       bool
	LunarAnchored bool
	Year          int
	Month         int
	Day           int
}

// Validate reports, as ErrInvalidRecord, a record missing an identifier or
// whose anchor is not a real Gregorian date in the supported years.
func Validate(gw calendar.Gateway, r NewRecord) error {
	if r.IDLatin == "" || r.IDLocal == "" {
		return fmt.Errorf("%w: both identifiers are required", ErrInvalidRecord)
	}
	if r.Year < calendar.MinYear || r.Year > calendar.MaxYear {
		return fmt.Errorf("%w: year %d outside %d-%d", ErrInvalidRecord, r.Year, calendar.MinYear, calendar.MaxYear)
	}
	if r.Month < 1 || r.Month > 12 || r.Day < 1 || r.Day > calendar.DaysInMonth(gw, r.Year, r.Month) {
		return fmt.Errorf("%w: no such date %04d-%02d-%02d", ErrInvalidRecord, r.Year, r.Month, r.Day)
	}
	return nil
}

// Add stores an anniversary, deriving its lunar month and day from the
// anchor date. Returns database.ErrDuplicate if either identifier is taken
// for the same kind.
func (s *Service) Add(ctx context.Context, r NewRecord) (*database.Anniversary, error) {
	if err := Validate(s.gw, r); err != nil {
		return nil, err
	}

	date := calendar.FromGateway(s.gw, s.gw.FixedFromGregorian(r.Year, r.Month, r.Day))
	a := &database.Anniversary{
		IDLatin:       r.IDLatin,
		IDLocal:       r.IDLocal,
		IsBirth:       r.IsBirth,
		LunarAnchored: r.LunarAnchored,
		AnchorYear:    r.Year,
		AnchorMonth:   r.Month,
		AnchorDay:     r.Day,
		LunarMonth:    date.Month,
		LunarDay:      date.Day,
	}
	a.Checksum = ChecksumOf(*a)

	if err := s.store.InsertAnniversary(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Debug("anniversary added",
		slog.String("id_latin", a.IDLatin),
		slog.String("kind", a.Kind()),
		slog.String("anchor", a.AnchorDate()),
	)
	return a, nil
}

// Delete removes the records carrying id in either script.
// Returns database.ErrNotFound if there were none.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	n, err := s.store.DeleteAnniversary(ctx, id)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("anniversary deleted", slog.String("id", id), slog.Int64("rows", n))
	return n, nil
}

// Entry is a stored record with its verification result.
type Entry struct {
	database.Anniversary
	Verified bool `json:"verified"`
}

// List returns every record, flagging the ones that fail verification.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	records, err := s.store.ListAnniversaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list anniversaries: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for _, a := range records {
		entries = append(entries, Entry{Anniversary: a, Verified: Verify(a) == nil})
	}
	return entries, nil
}

// Get returns one record with its verification result.
// Returns database.ErrNotFound if there is no such record.
func (s *Service) Get(ctx context.Context, id int64) (Entry, error) {
	a, err := s.store.GetAnniversary(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Anniversary: *a, Verified: Verify(*a) == nil}, nil
}

// Index builds the match index from the verified records. Each record
// failing verification is logged as a warning and left out.
func (s *Service) Index(ctx context.Context) (*Index, error) {
	records, err := s.store.ListAnniversaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list anniversaries: %w", err)
	}

	verified := make([]database.Anniversary, 0, len(records))
	for _, a := range records {
		if err := Verify(a); err != nil {
			s.logger.Warn("anniversary excluded",
				slog.Any("error", err),
				slog.String("id_latin", a.IDLatin),
				slog.String("id_local", a.IDLocal),
			)
			continue
		}
		verified = append(verified, a)
	}
	return NewIndex(verified), nil
}
