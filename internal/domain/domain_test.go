package domain

import (
	"errors"
	"testing"
	"time"
)

func TestAstrologicalSignIgnoresYear(t *testing.T) {
	a := SignOf(time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC))
	b := SignOf(time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC))
	if a != b || a != "Pisces" {
		t.Fatalf("got %q and %q, want Pisces for both", a, b)
	}
}

func TestAstrologicalSignBoundaries(t *testing.T) {
	cases := []struct {
		month time.Month
		day   int
		want  string
	}{
		{time.January, 1, "Capricorn"},
		{time.January, 19, "Capricorn"},
		{time.January, 20, "Aquarius"},
		{time.February, 18, "Aquarius"},
		{time.February, 19, "Pisces"},
		{time.February, 29, "Pisces"},
		{time.March, 20, "Pisces"},
		{time.March, 21, "Aries"},
		{time.April, 20, "Taurus"},
		{time.May, 21, "Gemini"},
		{time.June, 21, "Cancer"},
		{time.July, 22, "Cancer"},
		{time.July, 23, "Leo"},
		{time.August, 23, "Virgo"},
		{time.September, 23, "Libra"},
		{time.October, 23, "Scorpio"},
		{time.November, 22, "Sagittarius"},
		{time.December, 21, "Sagittarius"},
		{time.December, 22, "Capricorn"},
		{time.December, 31, "Capricorn"},
	}
	for _, tc := range cases {
		if got := AstrologicalSign(tc.month, tc.day); got != tc.want {
			t.Errorf("AstrologicalSign(%s %d) = %q, want %q", tc.month, tc.day, got, tc.want)
		}
	}
}

func TestAgeOn(t *testing.T) {
	bd := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2018, 6, 14, 0, 0, 0, 0, time.UTC), 17},
		{time.Date(2018, 6, 15, 0, 0, 0, 0, time.UTC), 18},
		{time.Date(2018, 12, 1, 0, 0, 0, 0, time.UTC), 18},
		{time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), 18},
	}
	for _, tc := range cases {
		if got := AgeOn(bd, tc.now); got != tc.want {
			t.Errorf("AgeOn(%v) = %d, want %d", tc.now, got, tc.want)
		}
	}
}

func TestNewAccountDefaults(t *testing.T) {
	a := NewAccount("  Foo@Bar.COM ", "hash")
	if a.Email != "foo@bar.com" {
		t.Fatalf("email = %q", a.Email)
	}
	p := a.Profile.Preferences
	if p.MinAge == nil || *p.MinAge != DefaultMinAge || p.MaxAge == nil || *p.MaxAge != DefaultMaxAge {
		t.Fatalf("unexpected age defaults %+v", p)
	}
}

func TestProfilePatchApplyToCopiesOnlyChangedKeys(t *testing.T) {
	height, caffeine := 70, false
	a := NewAccount("a@b.c", "")
	a.Profile.Name = "Ada"
	a.Profile.Summary = "kept"

	patch := &ProfilePatch{
		Email: "new@b.c",
		Profile: Profile{
			Name:       "ignored",
			Appearance: Appearance{HeightInches: &height},
			Lifestyle:  Lifestyle{Caffeine: &caffeine},
		},
		Changed: []string{FieldEmail, FieldHeightInches, FieldCaffeine},
	}
	patch.ApplyTo(a)

	if a.Email != "new@b.c" || a.Profile.Name != "Ada" || a.Profile.Summary != "kept" {
		t.Fatalf("unexpected account %+v", a)
	}
	if *a.Profile.Appearance.HeightInches != 70 || *a.Profile.Lifestyle.Caffeine {
		t.Fatalf("changed keys not applied %+v", a.Profile)
	}
	if *a.Profile.Preferences.MinAge != DefaultMinAge {
		t.Fatal("untouched group modified")
	}
}

func TestNotFoundErrorsShareSentinel(t *testing.T) {
	for _, err := range []error{
		ErrAccountNotFound, ErrMatchNotFound, ErrMessageNotFound, ErrRatingNotFound,
		ErrReportNotFound, ErrInterestNotFound, ErrProviderNotLinked, ErrPictureNotFound,
		ErrSessionNotFound, ErrResetTokenInvalid,
	} {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%v does not wrap ErrNotFound", err)
		}
		if errors.Is(err, ErrValidation) {
			t.Errorf("%v must not be a validation error", err)
		}
	}
}

func TestValidationError(t *testing.T) {
	var verr ValidationError
	if verr.OrNil() != nil {
		t.Fatal("empty ValidationError should be nil")
	}
	verr.Add(nil)
	verr.Add(&FieldError{Field: "email", Code: CodeDuplicate, Message: "taken"})

	err := verr.OrNil()
	if !errors.Is(err, ErrValidation) {
		t.Fatal("expected errors.Is ErrValidation")
	}
	if !verr.HasCode(CodeDuplicate) || verr.HasCode(CodeRange) {
		t.Fatal("HasCode mismatch")
	}
	if err.Error() != "validation failed: email: taken" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestMatchFlagsApply(t *testing.T) {
	yes, no := true, false
	m := &Match{MutualLike: true, Hidden: false}
	flags := MatchFlags{MutualLike: &no, Hidden: &yes}
	if flags.Empty() {
		t.Fatal("flags reported empty")
	}
	flags.Apply(m)
	if m.MutualLike || !m.Hidden || m.Blocked || m.WasMessaged {
		t.Fatalf("unexpected match %+v", m)
	}
	if !(MatchFlags{}).Empty() {
		t.Fatal("zero flags should be empty")
	}
}

func TestParseProviderKind(t *testing.T) {
	if k, ok := ParseProviderKind(" GitHub "); !ok || k != ProviderGitHub {
		t.Fatalf("got %q %v", k, ok)
	}
	if _, ok := ParseProviderKind("myspace"); ok {
		t.Fatal("unknown provider accepted")
	}
}
