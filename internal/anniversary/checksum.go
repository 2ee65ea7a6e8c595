// Package anniversary manages birth and death anniversaries anchored to the
// Gregorian or the Chinese calendar, and matches them against calendar days.
package anniversary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/zapponejosh/lunarcal/internal/database"
)

// ErrIntegrity is wrapped by every IntegrityError.
var ErrIntegrity = errors.New("anniversary checksum mismatch")

// IntegrityError reports a stored record whose checksum disagrees with its
// fields, or whose fields could not be read back at all (Err set).
type IntegrityError struct {
	ID       int64
	IDLatin  string
	Stored   uint32
	Computed uint32
	Err      error
}

func (e *IntegrityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("anniversary %d (%s): unreadable record: %v", e.ID, e.IDLatin, e.Err)
	}
	return fmt.Sprintf("anniversary %d (%s): stored checksum %08x, computed %08x",
		e.ID, e.IDLatin, e.Stored, e.Computed)
}

func (e *IntegrityError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrIntegrity, e.Err}
	}
	return []error{ErrIntegrity}
}

// Checksum is the CRC-32 (IEEE) of the anchor date and lunar month and day,
// packed big-endian as a 16-bit year followed by four bytes.
func Checksum(year, month, day, lunarMonth, lunarDay int) uint32 {
	var buf [6]byte
	binary.BigEndian.PutUint16(buf[:2], uint16(year))
	buf[2] = byte(month)
	buf[3] = byte(day)
	buf[4] = byte(lunarMonth)
	buf[5] = byte(lunarDay)
	return crc32.ChecksumIEEE(buf[:])
}

// ChecksumOf computes the checksum of a record's fields.
func ChecksumOf(a database.Anniversary) uint32 {
	return Checksum(a.AnchorYear, a.AnchorMonth, a.AnchorDay, a.LunarMonth, a.LunarDay)
}

// Verify returns an *IntegrityError if a did not decode or its stored
// checksum is stale.
func Verify(a database.Anniversary) error {
	if a.DecodeErr != nil {
		return &IntegrityError{ID: a.ID, IDLatin: a.IDLatin, Stored: a.Checksum, Err: a.DecodeErr}
	}
	if sum := ChecksumOf(a); sum != a.Checksum {
		return &IntegrityError{ID: a.ID, IDLatin: a.IDLatin, Stored: a.Checksum, Computed: sum}
	}
	return nil
}
