package profile

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/go-playground/validator/v10"
)

const (
	maxNameLength        = 100
	maxGenderLength      = 50
	maxSummaryLength     = 2000
	maxColorLength       = 50
	maxDietLength        = 100
	maxOtherPetsLength   = 200
	maxMessagingLength   = 1000
	maxListEntries       = 20
	maxListEntryLength   = 100
	minAccountAge        = 18
	maxAccountAge        = 120
	birthdayLayout       = "2006-01-02"
	maxDistanceMiles     = 10000
	minHeightInches      = 12
	maxHeightInches      = 108
	minWeightPounds      = 50
	maxWeightPounds      = 1000
	maxFitnessLevel      = 10
	maxCurrentKids       = 30
	maxMatchPercentValue = 100
)

var (
	zipcodePattern = regexp.MustCompile(`^[0-9]{4,5}$`)
	validate       = validator.New()
)

// checker is a pure field rule: it returns the normalised value or the
// reason the proposed value is rejected.
type checker[T any] func(field string, v T) (T, *domain.FieldError)

func fieldError(field, code, format string, args ...any) *domain.FieldError {
	return &domain.FieldError{Field: field, Code: code, Message: fmt.Sprintf(format, args...)}
}

func textUpTo(max int) checker[string] {
	return func(field, v string) (string, *domain.FieldError) {
		v = strings.TrimSpace(v)
		if utf8.RuneCountInString(v) > max {
			return "", fieldError(field, domain.CodeTooLong, "%s must be at most %d characters", field, max)
		}
		return v, nil
	}
}

func intBetween(min, max int) checker[int] {
	return func(field string, v int) (int, *domain.FieldError) {
		if v < min || v > max {
			return 0, fieldError(field, domain.CodeRange, "%s must be between %d and %d", field, min, max)
		}
		return v, nil
	}
}

func anyBool(_ string, v bool) (bool, *domain.FieldError) {
	return v, nil
}

// stringSet trims entries, drops empties and duplicates, and bounds the result.
func stringSet(field string, v []string) ([]string, *domain.FieldError) {
	out := make([]string, 0, len(v))
	seen := make(map[string]struct{}, len(v))
	for _, entry := range v {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if utf8.RuneCountInString(entry) > maxListEntryLength {
			return nil, fieldError(field, domain.CodeTooLong, "%s entries must be at most %d characters", field, maxListEntryLength)
		}
		key := strings.ToLower(entry)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
	}
	if len(out) > maxListEntries {
		return nil, fieldError(field, domain.CodeRange, "%s accepts at most %d entries", field, maxListEntries)
	}
	return out, nil
}

func zipcode(field, v string) (string, *domain.FieldError) {
	v = strings.TrimSpace(v)
	if v != "" && !zipcodePattern.MatchString(v) {
		return "", fieldError(field, domain.CodeInvalid, "zipcode must be 4 or 5 digits")
	}
	return v, nil
}

func email(field, v string) (string, *domain.FieldError) {
	v = domain.NormalizeEmail(v)
	if v == "" {
		return "", fieldError(field, domain.CodeRequired, "email is required")
	}
	if err := validate.Var(v, "email"); err != nil {
		return "", fieldError(field, domain.CodeInvalid, "email is not a valid address")
	}
	return v, nil
}

// birthday parses YYYY-MM-DD. An empty string clears the birthday and
// yields nil.
func birthday(now time.Time) checker[*time.Time] {
	return func(field string, v *time.Time) (*time.Time, *domain.FieldError) {
		if v == nil {
			return nil, nil
		}
		if v.After(now) {
			return nil, fieldError(field, domain.CodeRange, "birthday must not be in the future")
		}
		age := domain.AgeOn(*v, now)
		if age < minAccountAge || age > maxAccountAge {
			return nil, fieldError(field, domain.CodeRange, "age must be between %d and %d", minAccountAge, maxAccountAge)
		}
		return v, nil
	}
}

func parseBirthday(field, raw string) (*time.Time, *domain.FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(birthdayLayout, raw)
	if err != nil {
		return nil, fieldError(field, domain.CodeInvalid, "birthday must be formatted as YYYY-MM-DD")
	}
	return &t, nil
}

// ordered checks min <= max on the combined state. The error is reported
// against whichever bound the request changed, preferring max.
func ordered(minField, maxField string, min, max *int, changed func(string) bool) *domain.FieldError {
	if min == nil || max == nil || *min <= *max {
		return nil
	}
	field := maxField
	if !changed(maxField) && changed(minField) {
		field = minField
	}
	return fieldError(field, domain.CodeRange, "%s (%d) must not exceed %s (%d)", minField, *min, maxField, *max)
}
