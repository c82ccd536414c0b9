package profile

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository/memory"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

type fixture struct {
	store     *memory.Store
	uc        *ProfileUseCase
	publisher *recordingPublisher
	account   *domain.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.SetClock(func() time.Time { return testNow })
	f := &fixture{store: store, publisher: &recordingPublisher{}}
	f.uc = NewProfileUseCase(store.Accounts(), store.Interests(), f.publisher, nil, nil, logger.Discard())
	f.uc.SetClock(func() time.Time { return testNow })

	f.account = domain.NewAccount("ada@example.com", "hash")
	if err := store.Accounts().Create(context.Background(), f.account); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return f
}

func (f *fixture) reload(t *testing.T) *domain.Account {
	t.Helper()
	a, err := f.store.Accounts().GetByID(context.Background(), f.account.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	return a
}

func ptr[T any](v T) *T { return &v }

func requireValidation(t *testing.T, err error, field, code string) {
	t.Helper()
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, fe := range verr.Fields {
		if fe.Field == field && fe.Code == code {
			return
		}
	}
	t.Fatalf("expected %s/%s in %+v", field, code, verr.Fields)
}

func TestUpdateProfileOmittedFieldsUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{
		Name:         ptr("Ada"),
		Zipcode:      ptr("94107"),
		HeightInches: ptr(66),
		Caffeine:     ptr(true),
		Language:     &[]string{"English"},
	})
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	before := f.reload(t)

	after, err := f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{Summary: ptr("hello")})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if after.Profile.Summary != "hello" {
		t.Fatalf("summary not applied: %q", after.Profile.Summary)
	}
	if after.Profile.Name != before.Profile.Name ||
		after.Profile.Zipcode != before.Profile.Zipcode ||
		*after.Profile.Appearance.HeightInches != 66 ||
		!*after.Profile.Lifestyle.Caffeine ||
		len(after.Profile.Culture.Language) != 1 ||
		*after.Profile.Preferences.MinAge != 18 ||
		*after.Profile.Preferences.MaxAge != 99 {
		t.Fatalf("omitted fields changed: before %+v after %+v", before.Profile, after.Profile)
	}
}

func TestUpdateProfileEmptyRequestIsNoop(t *testing.T) {
	f := newFixture(t)
	got, err := f.uc.UpdateProfile(context.Background(), f.account.ID, &UpdateProfileRequest{})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.Version != f.account.Version {
		t.Fatalf("version bumped by empty update: %d", got.Version)
	}
	if len(f.publisher.events) != 0 {
		t.Fatal("no event expected for empty update")
	}
}

func TestUpdateProfileMaxAgeBelowStoredMinAge(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.UpdateProfile(context.Background(), f.account.ID, &UpdateProfileRequest{MaxAge: ptr(17)})
	requireValidation(t, err, domain.FieldMaxAge, domain.CodeRange)

	if got := f.reload(t); *got.Profile.Preferences.MaxAge != 99 {
		t.Fatalf("maxAge changed to %d", *got.Profile.Preferences.MaxAge)
	}
}

func TestUpdateProfileCrossFieldUsesCombinedState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{MinAge: ptr(40)}); err != nil {
		t.Fatalf("set minAge: %v", err)
	}

	_, err := f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{MaxAge: ptr(30)})
	requireValidation(t, err, domain.FieldMaxAge, domain.CodeRange)

	_, err = f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{MinAge: ptr(99), MaxAge: ptr(98)})
	requireValidation(t, err, domain.FieldMaxAge, domain.CodeRange)

	got, err := f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{MinAge: ptr(25), MaxAge: ptr(30)})
	if err != nil {
		t.Fatalf("valid pair rejected: %v", err)
	}
	if *got.Profile.Preferences.MinAge != 25 || *got.Profile.Preferences.MaxAge != 30 {
		t.Fatalf("unexpected ages %+v", got.Profile.Preferences)
	}
}

func TestUpdateProfileRejectsWholeRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.UpdateProfile(context.Background(), f.account.ID, &UpdateProfileRequest{
		Name:             ptr("Ada"),
		Caffeine:         ptr(true),
		MinDistanceMiles: ptr(50),
		MaxDistanceMiles: ptr(10),
	})
	requireValidation(t, err, domain.FieldMaxDistanceMiles, domain.CodeRange)

	got := f.reload(t)
	if got.Profile.Name != "" || got.Profile.Lifestyle.Caffeine != nil || got.Profile.Preferences.MinDistanceMiles != nil {
		t.Fatalf("partial apply after rejection: %+v", got.Profile)
	}
	if got.Version != f.account.Version {
		t.Fatal("version changed after rejection")
	}
}

func TestUpdateProfileAggregatesFieldErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.UpdateProfile(context.Background(), f.account.ID, &UpdateProfileRequest{
		Zipcode:         ptr("12ab"),
		FitnessLevel:    ptr(11),
		MinMatchPercent: ptr(-1),
		Name:            ptr(strings.Repeat("n", maxNameLength+1)),
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 4 {
		t.Fatalf("expected 4 field errors, got %+v", verr.Fields)
	}
}

func TestUpdateProfileFalsyValuesHonoured(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{Caffeine: ptr(true), CurrentKids: ptr(2)}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	got, err := f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{
		Caffeine:        ptr(false),
		CurrentKids:     ptr(0),
		MinMatchPercent: ptr(0),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if c := got.Profile.Lifestyle.Caffeine; c == nil || *c {
		t.Fatalf("caffeine = %v, want false", c)
	}
	if k := got.Profile.Kids.CurrentKids; k == nil || *k != 0 {
		t.Fatalf("current kids = %v, want 0", k)
	}
	if p := got.Profile.Preferences.MinMatchPercent; p == nil || *p != 0 {
		t.Fatalf("min match percent = %v, want 0", p)
	}
}

func TestUpdateProfileBirthdayDerivesAgeAndSign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{Birthday: ptr("1990-03-15")})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.Profile.Age == nil || *got.Profile.Age != 35 {
		t.Fatalf("age = %v, want 35", got.Profile.Age)
	}
	if got.Profile.AstrologicalSign != "Pisces" {
		t.Fatalf("sign = %q, want Pisces", got.Profile.AstrologicalSign)
	}

	got, err = f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{Birthday: ptr("")})
	if err != nil {
		t.Fatalf("clear birthday: %v", err)
	}
	if got.Profile.Birthday != nil || got.Profile.Age != nil || got.Profile.AstrologicalSign != "" {
		t.Fatalf("derived fields not cleared: %+v", got.Profile)
	}
}

func TestUpdateProfileBirthdayValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]string{
		"15/03/1990": domain.CodeInvalid,
		"2030-01-01": domain.CodeRange,
		"2015-01-01": domain.CodeRange,
		"1890-01-01": domain.CodeRange,
	}
	for raw, code := range cases {
		_, err := f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{Birthday: ptr(raw)})
		requireValidation(t, err, domain.FieldBirthday, code)
	}
}

func TestUpdateProfileNormalisesLists(t *testing.T) {
	f := newFixture(t)

	got, err := f.uc.UpdateProfile(context.Background(), f.account.ID, &UpdateProfileRequest{
		Language: &[]string{" English ", "english", "", "French"},
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	want := []string{"English", "French"}
	if len(got.Profile.Culture.Language) != 2 || got.Profile.Culture.Language[0] != want[0] || got.Profile.Culture.Language[1] != want[1] {
		t.Fatalf("language = %q, want %q", got.Profile.Culture.Language, want)
	}

	tooMany := make([]string, maxListEntries+1)
	for i := range tooMany {
		tooMany[i] = strings.Repeat("x", i+1)
	}
	_, err = f.uc.UpdateProfile(context.Background(), f.account.ID, &UpdateProfileRequest{Religion: &tooMany})
	requireValidation(t, err, domain.FieldReligion, domain.CodeRange)
}

func TestUpdateProfileEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := domain.NewAccount("grace@example.com", "hash")
	if err := f.store.Accounts().Create(ctx, other); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{Email: ptr("Grace@Example.com")})
	requireValidation(t, err, domain.FieldEmail, domain.CodeDuplicate)

	_, err = f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{Email: ptr("not-an-email")})
	requireValidation(t, err, domain.FieldEmail, domain.CodeInvalid)

	got, err := f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{Email: ptr("ADA@example.com")})
	if err != nil {
		t.Fatalf("same email rejected: %v", err)
	}
	if got.Version != f.account.Version {
		t.Fatal("unchanged email should not write")
	}

	got, err = f.uc.UpdateProfile(ctx, f.account.ID, &UpdateProfileRequest{Email: ptr(" Lovelace@Example.com ")})
	if err != nil {
		t.Fatalf("email change: %v", err)
	}
	if got.Email != "lovelace@example.com" {
		t.Fatalf("email = %q", got.Email)
	}
}

func TestUpdateProfileUnknownAccount(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.UpdateProfile(context.Background(), 999, &UpdateProfileRequest{Name: ptr("x")})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProfilePublishesEvent(t *testing.T) {
	f := newFixture(t)

	if _, err := f.uc.UpdateProfile(context.Background(), f.account.ID, &UpdateProfileRequest{Name: ptr("Ada")}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if len(f.publisher.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(f.publisher.events))
	}
	e := f.publisher.events[0]
	if e.Type != domain.EventProfileUpdated || e.AccountID != f.account.ID || !strings.Contains(string(e.Payload), `"name"`) {
		t.Fatalf("unexpected event %+v", e)
	}
}

func TestUpdateProfilePublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")

	got, err := f.uc.UpdateProfile(context.Background(), f.account.ID, &UpdateProfileRequest{Name: ptr("Ada")})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.Profile.Name != "Ada" {
		t.Fatal("update lost")
	}
}

// racingAccounts lets another writer change the account right before each
// of the first `races` versioned writes.
type racingAccounts struct {
	repository.AccountRepository
	races int
	other *domain.ProfilePatch
}

func (r *racingAccounts) UpdateProfile(ctx context.Context, id, version int, patch *domain.ProfilePatch) (*domain.Account, error) {
	if r.races > 0 {
		r.races--
		if _, err := r.AccountRepository.UpdateProfile(ctx, id, version, r.other); err != nil {
			return nil, err
		}
	}
	return r.AccountRepository.UpdateProfile(ctx, id, version, patch)
}

func TestUpdateProfileRetriesOnceOnConflict(t *testing.T) {
	f := newFixture(t)
	height := 70
	racer := &racingAccounts{
		AccountRepository: f.store.Accounts(),
		races:             1,
		other: &domain.ProfilePatch{
			Profile: domain.Profile{Appearance: domain.Appearance{HeightInches: &height}},
			Changed: []string{domain.FieldHeightInches},
		},
	}
	f.uc.accounts = racer

	got, err := f.uc.UpdateProfile(context.Background(), f.account.ID, &UpdateProfileRequest{MinAge: ptr(21)})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if *got.Profile.Preferences.MinAge != 21 {
		t.Fatal("own change lost")
	}
	if got.Profile.Appearance.HeightInches == nil || *got.Profile.Appearance.HeightInches != 70 {
		t.Fatal("concurrent change lost")
	}
}

func TestUpdateProfileGivesUpAfterSecondConflict(t *testing.T) {
	f := newFixture(t)
	height := 70
	f.uc.accounts = &racingAccounts{
		AccountRepository: f.store.Accounts(),
		races:             2,
		other: &domain.ProfilePatch{
			Profile: domain.Profile{Appearance: domain.Appearance{HeightInches: &height}},
			Changed: []string{domain.FieldHeightInches},
		},
	}

	_, err := f.uc.UpdateProfile(context.Background(), f.account.ID, &UpdateProfileRequest{MinAge: ptr(21)})
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}
	if got := f.reload(t); *got.Profile.Preferences.MinAge != 18 {
		t.Fatal("change applied despite failure")
	}
}

type stubSummaries struct {
	out []string
	err error
}

func (s stubSummaries) GenerateProfileSummaries(ctx context.Context, name string, interests []string, zipcode string) ([]string, error) {
	return s.out, s.err
}

func TestGenerateSummaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat := f.store.SeedCategory(domain.InterestCategory{Name: "Outdoors"})
	hiking := f.store.SeedInterest(domain.Interest{CategoryID: &cat.ID, Name: "Hiking"})
	if err := f.store.Interests().AddToAccount(ctx, f.account.ID, hiking.ID); err != nil {
		t.Fatalf("AddToAccount: %v", err)
	}

	got, err := f.uc.GenerateSummaries(ctx, f.account.ID)
	if err != nil {
		t.Fatalf("GenerateSummaries: %v", err)
	}
	if len(got) != 3 || !strings.Contains(got[0], "Hiking") {
		t.Fatalf("unexpected fallback drafts %q", got)
	}

	f.uc.summaries = stubSummaries{out: []string{"from model"}}
	got, _ = f.uc.GenerateSummaries(ctx, f.account.ID)
	if len(got) != 1 || got[0] != "from model" {
		t.Fatalf("unexpected model drafts %q", got)
	}

	f.uc.summaries = stubSummaries{err: errors.New("quota")}
	got, err = f.uc.GenerateSummaries(ctx, f.account.ID)
	if err != nil || len(got) != 3 {
		t.Fatalf("expected fallback on model error, got %q %v", got, err)
	}
}

type memoryObjects struct {
	objects map[string][]byte
}

func (m *memoryObjects) EnsureBucket(ctx context.Context) error { return nil }

func (m *memoryObjects) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memoryObjects) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryObjects) URL(key string) string { return "http://cdn.test/" + key }

func (m *memoryObjects) Key(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, "http://cdn.test/")
	return key, ok
}

func TestPictures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.uc.UploadPicture(ctx, f.account.ID, bytes.NewReader(nil)); !errors.Is(err, domain.ErrCollaboratorNotEnabled) {
		t.Fatalf("expected collaborator error without storage, got %v", err)
	}

	objects := &memoryObjects{objects: map[string][]byte{}}
	f.uc.pictures = objects

	var img bytes.Buffer
	if err := png.Encode(&img, imaging.New(40, 40, color.White)); err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := f.uc.UploadPicture(ctx, f.account.ID, &img)
	if err != nil {
		t.Fatalf("UploadPicture: %v", err)
	}
	if len(got.Profile.Pictures) != 1 || len(objects.objects) != 1 {
		t.Fatalf("picture not stored: %+v", got.Profile.Pictures)
	}

	_, err = f.uc.UploadPicture(ctx, f.account.ID, strings.NewReader("garbage"))
	requireValidation(t, err, "picture", domain.CodeInvalid)

	url := got.Profile.Pictures[0]
	got, err = f.uc.RemovePicture(ctx, f.account.ID, url)
	if err != nil {
		t.Fatalf("RemovePicture: %v", err)
	}
	if len(got.Profile.Pictures) != 0 || len(objects.objects) != 0 {
		t.Fatal("picture not removed")
	}

	if _, err := f.uc.RemovePicture(ctx, f.account.ID, url); !errors.Is(err, domain.ErrPictureNotFound) {
		t.Fatalf("expected picture not found, got %v", err)
	}
}
