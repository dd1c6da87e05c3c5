package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Identifier length limits
const (
	MaxDocumentNumberLen = 15
	MaxUsernameLen       = 50
	MaxRadioCodeLen      = 25
)

// Shift is the work shift an assignment time falls into
type Shift uint8

const (
	Shift1 Shift = iota + 1 // 06:00 - 13:59
	Shift2                  // 14:00 - 21:59
	Shift3                  // 22:00 - 05:59
)

func (s Shift) String() string {
	switch s {
	case Shift1:
		return "Shift 1 (6 am - 2 pm)"
	case Shift2:
		return "Shift 2 (2 pm - 10 pm)"
	case Shift3:
		return "Shift 3 (10 pm - 6 am)"
	default:
		return fmt.Sprintf("Shift(%d)", uint8(s))
	}
}

// ParseShift parses the stored label of a shift
func ParseShift(s string) (Shift, error) {
	for _, shift := range []Shift{Shift1, Shift2, Shift3} {
		if shift.String() == s {
			return shift, nil
		}
	}
	return 0, fmt.Errorf("unknown shift %q: %w", s, ErrInvalidInput)
}

// ClassifyShift returns the shift for the local time-of-day of t.
// A zero time means no timestamp was supplied.
func ClassifyShift(t time.Time) (Shift, error) {
	if t.IsZero() {
		return 0, fmt.Errorf("a timestamp is required to classify the shift: %w", ErrInvalidInput)
	}
	switch h := t.Hour(); {
	case h >= 6 && h < 14:
		return Shift1, nil
	case h >= 14 && h < 22:
		return Shift2, nil
	default:
		return Shift3, nil
	}
}

// NormalizeDocumentNumber keeps only digits, truncated to MaxDocumentNumberLen
func NormalizeDocumentNumber(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return truncate(b.String(), MaxDocumentNumberLen)
}

// NormalizeUsername trims whitespace, truncated to MaxUsernameLen
func NormalizeUsername(s string) string {
	return truncate(strings.TrimSpace(s), MaxUsernameLen)
}

// NormalizeRadioCode trims and uppercases, truncated to MaxRadioCodeLen
func NormalizeRadioCode(s string) string {
	return truncate(strings.ToUpper(strings.TrimSpace(s)), MaxRadioCodeLen)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
