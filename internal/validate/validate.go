// Package validate checks and normalizes operator-supplied fields.
//
// Every function returns a *domain.Error with CodeValidation on bad input,
// so callers can re-prompt without inspecting the message.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/registry/internal/domain"
)

// ExitWord aborts a prompt. Where a number is expected it is reported as
// a validation error, the same as any other malformed input.
const ExitWord = "exit"

// MaxAmount bounds fines and payments, in whole dollars.
const MaxAmount = 1_000_000_000

var (
	phonePattern      = regexp.MustCompile(`^[0-9-]+$`)
	credentialPattern = regexp.MustCompile(`^[A-Za-z0-9_]*$`)
	titleCaser        = cases.Title(language.Und)
)

// clean trims surrounding whitespace and applies NFC normalization so that
// composed and decomposed spellings of the same name compare equal.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Name validates one half of a name pair and returns it in title case.
// Letters, underscores and apostrophes are allowed.
func Name(field, s string) (string, error) {
	s = clean(s)
	if s == "" {
		return "", domain.NewValidationError(field, "must not be empty")
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '_' && r != '\'' {
			return "", domain.NewValidationError(field, "may only contain letters, '_' and apostrophes")
		}
	}
	return titleCaser.String(s), nil
}

// NamePair validates and normalizes a first/last name pair.
func NamePair(prefix, first, last string) (domain.NamePair, error) {
	f, err := Name(prefix+" first name", first)
	if err != nil {
		return domain.NamePair{}, err
	}
	l, err := Name(prefix+" last name", last)
	if err != nil {
		return domain.NamePair{}, err
	}
	return domain.NamePair{First: f, Last: l}, nil
}

// Gender accepts M or F in either case.
func Gender(s string) (domain.Gender, error) {
	switch strings.ToUpper(clean(s)) {
	case string(domain.GenderMale):
		return domain.GenderMale, nil
	case string(domain.GenderFemale):
		return domain.GenderFemale, nil
	default:
		return "", domain.NewValidationError("gender", "must be M or F")
	}
}

// Date parses a real calendar date in YYYY-MM-DD form.
func Date(field, s string) (time.Time, error) {
	d, err := domain.ParseDate(clean(s))
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must be a date in YYYY-MM-DD form")
	}
	return d, nil
}

// OptionalDate is Date, except that an empty answer yields def.
func OptionalDate(field, s string, def time.Time) (time.Time, error) {
	if clean(s) == "" {
		return def, nil
	}
	return Date(field, s)
}

// Place validates a birth place, city or address: letters, digits, spaces,
// commas, periods and underscores.
func Place(field, s string) (string, error) {
	s = clean(s)
	if s == "" {
		return "", domain.NewValidationError(field, "must not be empty")
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		switch r {
		case ' ', ',', '.', '_':
			continue
		}
		return "", domain.NewValidationError(field, "may only contain letters, digits, spaces, commas, periods and '_'")
	}
	return s, nil
}

// Phone accepts digits and hyphens only.
func Phone(s string) (string, error) {
	s = clean(s)
	if !phonePattern.MatchString(s) {
		return "", domain.NewValidationError("phone", "may only contain digits and '-'")
	}
	return s, nil
}

// Text requires a non-empty free-text answer, such as a violation.
func Text(field, s string) (string, error) {
	s = clean(s)
	if s == "" {
		return "", domain.NewValidationError(field, "must not be empty")
	}
	return s, nil
}

// Fine parses a non-negative whole-dollar amount of at most MaxAmount.
func Fine(s string) (int64, error) {
	n, err := strconv.ParseInt(clean(s), 10, 64)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError("fine", "must be a non-negative whole number")
	}
	if n > MaxAmount {
		return 0, domain.NewValidationError("fine", "must not exceed 1000000000")
	}
	return n, nil
}

// Amount parses a payment amount. It must be a positive whole number no
// larger than MaxAmount; the exit word is rejected like any other
// malformed amount.
func Amount(s string) (int64, error) {
	s = clean(s)
	if strings.EqualFold(s, ExitWord) {
		return 0, domain.NewValidationError("amount", "payment aborted")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, domain.NewValidationError("amount", "must be a positive whole number")
	}
	if n > MaxAmount {
		return 0, domain.NewValidationError("amount", "must not exceed 1000000000")
	}
	return n, nil
}

// Number parses a registration or ticket number.
func Number(field, s string) (int64, error) {
	n, err := strconv.ParseInt(clean(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, domain.NewValidationError(field, "must be a positive whole number")
	}
	return n, nil
}

// Year parses a model year.
func Year(s string) (int, error) {
	n, err := strconv.Atoi(clean(s))
	if err != nil || n < 1886 || n > 9999 {
		return 0, domain.NewValidationError("year", "must be a four-digit year")
	}
	return n, nil
}

// Credential checks a user id or password. Only ASCII letters, digits and
// underscores are accepted; an empty value is allowed and simply fails to
// match any user.
func Credential(field, s string) (string, error) {
	if !credentialPattern.MatchString(s) {
		return "", domain.NewValidationError(field, "may only contain letters, digits and '_'")
	}
	return s, nil
}
