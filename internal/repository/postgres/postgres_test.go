package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}

func TestCreateAccountMapsUniqueEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO accounts (email, password_hash, min_age, max_age)")).
		WithArgs("ada@example.com", "hash", 18, 99).
		WillReturnError(&pq.Error{Code: codeUniqueViolation, Constraint: "accounts_email_key"})

	err := repo.Create(context.Background(), domain.NewAccount("Ada@Example.com", "hash"))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("Create = %v, want ErrEmailTaken", err)
	}
}

func TestUpdateProfileWritesOnlyChangedColumns(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepository(db)

	caffeine := false
	patch := &domain.ProfilePatch{
		Profile: domain.Profile{Name: "Ada", Lifestyle: domain.Lifestyle{Caffeine: &caffeine}},
		Changed: []string{domain.FieldName, domain.FieldCaffeine},
	}

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE accounts SET name = $1, caffeine = $2, version = version + 1, updated_at = CURRENT_TIMESTAMP WHERE id = $3 AND version = $4 RETURNING",
	)).
		WithArgs("Ada", false, 7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.UpdateProfile(context.Background(), 7, 3, patch)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("UpdateProfile = %v, want ErrConflict", err)
	}
}

func TestUpdateProfileUnknownAccount(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepository(db)

	patch := &domain.ProfilePatch{Profile: domain.Profile{Zipcode: "10001"}, Changed: []string{domain.FieldZipcode}}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE accounts SET zipcode = $1")).
		WithArgs("10001", 7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.UpdateProfile(context.Background(), 7, 1, patch)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("UpdateProfile = %v, want ErrAccountNotFound", err)
	}
}

func TestUpdateProfileRejectsUnknownKey(t *testing.T) {
	db, _ := newMock(t)
	repo := NewAccountRepository(db)

	patch := &domain.ProfilePatch{Changed: []string{"id; DROP TABLE accounts"}}
	if _, err := repo.UpdateProfile(context.Background(), 1, 1, patch); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestConsumeResetTokenEmptyTokenSkipsQuery(t *testing.T) {
	db, _ := newMock(t)
	repo := NewAccountRepository(db)

	_, err := repo.ConsumeResetToken(context.Background(), "", time.Now(), "")
	if !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Fatalf("ConsumeResetToken = %v", err)
	}
}

func TestConsumeResetTokenUnknownOrExpired(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepository(db)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE password_reset_token = $1 AND password_reset_expires > $2")).
		WithArgs("tok", now, "newhash").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.ConsumeResetToken(context.Background(), "tok", now, "newhash")
	if !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Fatalf("ConsumeResetToken = %v", err)
	}
}

func TestLinkProviderMapsIdentityCollision(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO account_providers")).
		WithArgs(1, "github", "gh-1", "tok").
		WillReturnError(&pq.Error{Code: codeUniqueViolation, Constraint: "account_providers_identity_key"})

	err := repo.LinkProvider(context.Background(), 1, domain.LinkedIdentity{Kind: domain.ProviderGitHub, ProviderID: "gh-1", AccessToken: "tok"})
	if !errors.Is(err, domain.ErrProviderAlreadyLinked) {
		t.Fatalf("LinkProvider = %v", err)
	}
}

func TestUnlinkProviderNotLinked(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM account_providers WHERE account_id = $1 AND kind = $2")).
		WithArgs(1, "google").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UnlinkProvider(context.Background(), 1, domain.ProviderGoogle)
	if !errors.Is(err, domain.ErrProviderNotLinked) {
		t.Fatalf("UnlinkProvider = %v", err)
	}
}

func TestRemovePictureDistinguishesMissingPicture(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("array_remove(pictures, $1)")).
		WithArgs("http://x/a.jpg", 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.RemovePicture(context.Background(), 1, "http://x/a.jpg")
	if !errors.Is(err, domain.ErrPictureNotFound) {
		t.Fatalf("RemovePicture = %v", err)
	}
}

func TestDeleteAccountNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accounts WHERE id = $1")).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 9); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("Delete = %v", err)
	}
}

var matchRowColumns = []string{
	"id", "account_id", "matched_account_id", "miles_away", "match_percent",
	"mutual_like", "was_messaged", "hidden", "blocked", "rating_id", "created_at", "updated_at",
}

func TestGetMatchScansRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMatchRepository(db)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM matches WHERE id = $1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(matchRowColumns).
			AddRow(5, 1, 2, 3.5, 87, true, false, false, false, nil, now, now))

	m, err := repo.GetByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if m.AccountID != 1 || m.MatchedAccountID != 2 || m.MatchPercent != 87 || !m.MutualLike || m.RatingID != nil {
		t.Fatalf("match = %+v", m)
	}
}

func TestUpdateFlagsLeavesUnsetFlags(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMatchRepository(db)
	now := time.Now()
	hidden := true

	mock.ExpectQuery(regexp.QuoteMeta("hidden = COALESCE($3, hidden)")).
		WithArgs(nil, nil, true, nil, 5).
		WillReturnRows(sqlmock.NewRows(matchRowColumns).
			AddRow(5, 1, 2, 3.5, 87, false, false, true, false, nil, now, now))

	m, err := repo.UpdateFlags(context.Background(), 5, domain.MatchFlags{Hidden: &hidden})
	if err != nil {
		t.Fatalf("UpdateFlags: %v", err)
	}
	if !m.Hidden {
		t.Fatal("hidden not set")
	}
}

func TestUpdateFlagsMissingMatch(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMatchRepository(db)
	blocked := true

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE matches")).
		WillReturnRows(sqlmock.NewRows(matchRowColumns))

	_, err := repo.UpdateFlags(context.Background(), 5, domain.MatchFlags{Blocked: &blocked})
	if !errors.Is(err, domain.ErrMatchNotFound) {
		t.Fatalf("UpdateFlags = %v", err)
	}
}
