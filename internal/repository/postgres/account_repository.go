package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/gdugdh24/fourthmouse-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const accountColumns = `id, email, password_hash, password_reset_token, password_reset_expires, version,
	auto_populated, name, birthday, age, astrological_sign, gender, zipcode, summary, pictures,
	eye_color, hair_color, height_inches, weight_pounds, fitness_level,
	ethnicity, language, religion, education,
	diet, caffeine, alcohol, tobacco, weed, other_drugs,
	cats, dogs, reptiles, birds, other_pets, other_pets_description,
	current_kids, want_more_kids, message_me_if, do_not_message_if,
	gender_interests, relationship_types, min_age, max_age,
	min_distance_miles, max_distance_miles, min_match_percent, max_match_percent,
	created_at, updated_at`

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var a domain.Account
	p := &a.Profile
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.PasswordResetToken, &a.PasswordResetExpires, &a.Version,
		&p.AutoPopulated, &p.Name, &p.Birthday, &p.Age, &p.AstrologicalSign, &p.Gender, &p.Zipcode, &p.Summary, pq.Array(&p.Pictures),
		&p.Appearance.EyeColor, &p.Appearance.HairColor, &p.Appearance.HeightInches, &p.Appearance.WeightPounds, &p.Appearance.FitnessLevel,
		pq.Array(&p.Culture.Ethnicity), pq.Array(&p.Culture.Language), pq.Array(&p.Culture.Religion), pq.Array(&p.Culture.Education),
		&p.Lifestyle.Diet, &p.Lifestyle.Caffeine, &p.Lifestyle.Alcohol, &p.Lifestyle.Tobacco, &p.Lifestyle.Weed, &p.Lifestyle.OtherDrugs,
		&p.Pets.Cats, &p.Pets.Dogs, &p.Pets.Reptiles, &p.Pets.Birds, &p.Pets.OtherPets, &p.Pets.OtherPetsDescription,
		&p.Kids.CurrentKids, &p.Kids.WantMoreKids, &p.Messaging.MessageMeIf, &p.Messaging.DoNotMessageIf,
		pq.Array(&p.Preferences.GenderInterests), pq.Array(&p.Preferences.RelationshipTypes),
		&p.Preferences.MinAge, &p.Preferences.MaxAge,
		&p.Preferences.MinDistanceMiles, &p.Preferences.MaxDistanceMiles,
		&p.Preferences.MinMatchPercent, &p.Preferences.MaxMatchPercent,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// profileValue returns the column value for a profile key. Only keys known
// here can reach generated SQL.
func profileValue(key string, patch *domain.ProfilePatch) (any, bool) {
	p := &patch.Profile
	switch key {
	case domain.FieldEmail:
		return patch.Email, true
	case domain.FieldName:
		return p.Name, true
	case domain.FieldBirthday:
		return p.Birthday, true
	case domain.FieldAge:
		return p.Age, true
	case domain.FieldAstrologicalSign:
		return p.AstrologicalSign, true
	case domain.FieldGender:
		return p.Gender, true
	case domain.FieldZipcode:
		return p.Zipcode, true
	case domain.FieldSummary:
		return p.Summary, true
	case domain.FieldEyeColor:
		return p.Appearance.EyeColor, true
	case domain.FieldHairColor:
		return p.Appearance.HairColor, true
	case domain.FieldHeightInches:
		return p.Appearance.HeightInches, true
	case domain.FieldWeightPounds:
		return p.Appearance.WeightPounds, true
	case domain.FieldFitnessLevel:
		return p.Appearance.FitnessLevel, true
	case domain.FieldEthnicity:
		return pq.Array(p.Culture.Ethnicity), true
	case domain.FieldLanguage:
		return pq.Array(p.Culture.Language), true
	case domain.FieldReligion:
		return pq.Array(p.Culture.Religion), true
	case domain.FieldEducation:
		return pq.Array(p.Culture.Education), true
	case domain.FieldDiet:
		return p.Lifestyle.Diet, true
	case domain.FieldCaffeine:
		return p.Lifestyle.Caffeine, true
	case domain.FieldAlcohol:
		return p.Lifestyle.Alcohol, true
	case domain.FieldTobacco:
		return p.Lifestyle.Tobacco, true
	case domain.FieldWeed:
		return p.Lifestyle.Weed, true
	case domain.FieldOtherDrugs:
		return p.Lifestyle.OtherDrugs, true
	case domain.FieldCats:
		return p.Pets.Cats, true
	case domain.FieldDogs:
		return p.Pets.Dogs, true
	case domain.FieldReptiles:
		return p.Pets.Reptiles, true
	case domain.FieldBirds:
		return p.Pets.Birds, true
	case domain.FieldOtherPets:
		return p.Pets.OtherPets, true
	case domain.FieldOtherPetsDescription:
		return p.Pets.OtherPetsDescription, true
	case domain.FieldCurrentKids:
		return p.Kids.CurrentKids, true
	case domain.FieldWantMoreKids:
		return p.Kids.WantMoreKids, true
	case domain.FieldMessageMeIf:
		return p.Messaging.MessageMeIf, true
	case domain.FieldDoNotMessageIf:
		return p.Messaging.DoNotMessageIf, true
	case domain.FieldGenderInterests:
		return pq.Array(p.Preferences.GenderInterests), true
	case domain.FieldRelationshipTypes:
		return pq.Array(p.Preferences.RelationshipTypes), true
	case domain.FieldMinAge:
		return p.Preferences.MinAge, true
	case domain.FieldMaxAge:
		return p.Preferences.MaxAge, true
	case domain.FieldMinDistanceMiles:
		return p.Preferences.MinDistanceMiles, true
	case domain.FieldMaxDistanceMiles:
		return p.Preferences.MaxDistanceMiles, true
	case domain.FieldMinMatchPercent:
		return p.Preferences.MinMatchPercent, true
	case domain.FieldMaxMatchPercent:
		return p.Preferences.MaxMatchPercent, true
	}
	return nil, false
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (email, password_hash, min_age, max_age)
		VALUES ($1, $2, $3, $4)
		RETURNING id, version, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		domain.NormalizeEmail(account.Email), account.PasswordHash,
		account.Profile.Preferences.MinAge, account.Profile.Preferences.MaxAge,
	).Scan(&account.ID, &account.Version, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	account.Email = domain.NormalizeEmail(account.Email)
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE LOWER(email) = $1`
	return r.getOne(ctx, query, domain.NormalizeEmail(email))
}

func (r *accountRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	if err := r.loadRelations(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) loadRelations(ctx context.Context, account *domain.Account) error {
	providers := []domain.LinkedIdentity{}
	err := r.db.SelectContext(ctx, &providers, `
		SELECT kind, provider_id, access_token, linked_at
		FROM account_providers WHERE account_id = $1
		ORDER BY kind
	`, account.ID)
	if err != nil {
		return fmt.Errorf("failed to load providers: %w", err)
	}
	account.Providers = providers

	interestIDs := []int{}
	err = r.db.SelectContext(ctx, &interestIDs, `
		SELECT interest_id FROM account_interests WHERE account_id = $1 ORDER BY interest_id
	`, account.ID)
	if err != nil {
		return fmt.Errorf("failed to load interests: %w", err)
	}
	account.InterestIDs = interestIDs
	return nil
}

func (r *accountRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *accountRepository) UpdateProfile(ctx context.Context, id, version int, patch *domain.ProfilePatch) (*domain.Account, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	sets := make([]string, 0, len(patch.Changed)+2)
	args := make([]any, 0, len(patch.Changed)+2)
	for _, key := range patch.Changed {
		value, ok := profileValue(key, patch)
		if !ok {
			return nil, fmt.Errorf("unknown profile field %q", key)
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", key, len(args)))
	}
	sets = append(sets, "version = version + 1", "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id, version)

	query := fmt.Sprintf(
		"UPDATE accounts SET %s WHERE id = $%d AND version = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args)-1, len(args), accountColumns,
	)

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, translateError(err)
		}
		exists, existsErr := r.Exists(ctx, id)
		if existsErr != nil {
			return nil, existsErr
		}
		if !exists {
			return nil, domain.ErrAccountNotFound
		}
		return nil, domain.ErrConflict
	}
	if err := r.loadRelations(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	query := `UPDATE accounts SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	return affectedOrNotFound(rows, err, domain.ErrAccountNotFound)
}

func (r *accountRepository) SetResetToken(ctx context.Context, id int, token string, expiresAt time.Time) error {
	query := `
		UPDATE accounts
		SET password_reset_token = $1, password_reset_expires = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, token, expiresAt, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	return affectedOrNotFound(rows, err, domain.ErrAccountNotFound)
}

func (r *accountRepository) ConsumeResetToken(ctx context.Context, token string, now time.Time, passwordHash string) (*domain.Account, error) {
	if token == "" {
		return nil, domain.ErrResetTokenInvalid
	}
	query := `
		UPDATE accounts
		SET password_reset_token = NULL,
		    password_reset_expires = NULL,
		    password_hash = COALESCE(NULLIF($3, ''), password_hash),
		    updated_at = CURRENT_TIMESTAMP
		WHERE password_reset_token = $1 AND password_reset_expires > $2
		RETURNING ` + accountColumns
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, token, now, passwordHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, err
	}
	if err := r.loadRelations(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	return affectedOrNotFound(rows, err, domain.ErrAccountNotFound)
}

func (r *accountRepository) LinkProvider(ctx context.Context, id int, identity domain.LinkedIdentity) error {
	query := `
		INSERT INTO account_providers (account_id, kind, provider_id, access_token)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id, kind) DO UPDATE
		SET provider_id = EXCLUDED.provider_id,
		    access_token = EXCLUDED.access_token,
		    linked_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query, id, string(identity.Kind), identity.ProviderID, identity.AccessToken)
	return translateError(err)
}

func (r *accountRepository) UnlinkProvider(ctx context.Context, id int, kind domain.ProviderKind) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM account_providers WHERE account_id = $1 AND kind = $2`, id, string(kind))
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	return affectedOrNotFound(rows, err, domain.ErrProviderNotLinked)
}

func (r *accountRepository) MarkAutoPopulated(ctx context.Context, id int, name string) error {
	query := `
		UPDATE accounts
		SET auto_populated = (auto_populated OR name = ''),
		    name = CASE WHEN name = '' THEN $1 ELSE name END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, name, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	return affectedOrNotFound(rows, err, domain.ErrAccountNotFound)
}

func (r *accountRepository) AddPicture(ctx context.Context, id int, url string) error {
	query := `
		UPDATE accounts SET pictures = array_append(pictures, $1), updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, url, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	return affectedOrNotFound(rows, err, domain.ErrAccountNotFound)
}

func (r *accountRepository) RemovePicture(ctx context.Context, id int, url string) error {
	query := `
		UPDATE accounts SET pictures = array_remove(pictures, $1), updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND $1 = ANY(pictures)
	`
	result, err := r.db.ExecContext(ctx, query, url, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}
	exists, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrAccountNotFound
	}
	return domain.ErrPictureNotFound
}
