package profile

import (
	"time"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

// UpdateProfileRequest is a partial profile edit. A nil field is absent and
// leaves the stored value untouched; JSON null is treated as absent.
type UpdateProfileRequest struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Birthday *string `json:"birthday"`
	Gender   *string `json:"gender"`
	Zipcode  *string `json:"zipcode"`
	Summary  *string `json:"summary"`

	EyeColor     *string `json:"eye_color"`
	HairColor    *string `json:"hair_color"`
	HeightInches *int    `json:"height_inches"`
	WeightPounds *int    `json:"weight_pounds"`
	FitnessLevel *int    `json:"fitness_level"`

	Ethnicity *[]string `json:"ethnicity"`
	Language  *[]string `json:"language"`
	Religion  *[]string `json:"religion"`
	Education *[]string `json:"education"`

	Diet       *string `json:"diet"`
	Caffeine   *bool   `json:"caffeine"`
	Alcohol    *bool   `json:"alcohol"`
	Tobacco    *bool   `json:"tobacco"`
	Weed       *bool   `json:"weed"`
	OtherDrugs *bool   `json:"other_drugs"`

	Cats                 *bool   `json:"cats"`
	Dogs                 *bool   `json:"dogs"`
	Reptiles             *bool   `json:"reptiles"`
	Birds                *bool   `json:"birds"`
	OtherPets            *bool   `json:"other_pets"`
	OtherPetsDescription *string `json:"other_pets_description"`

	CurrentKids  *int  `json:"current_kids"`
	WantMoreKids *bool `json:"want_more_kids"`

	MessageMeIf    *string `json:"message_me_if"`
	DoNotMessageIf *string `json:"do_not_message_if"`

	GenderInterests   *[]string `json:"gender_interests"`
	RelationshipTypes *[]string `json:"relationship_types"`
	MinAge            *int      `json:"min_age"`
	MaxAge            *int      `json:"max_age"`
	MinDistanceMiles  *int      `json:"min_distance_miles"`
	MaxDistanceMiles  *int      `json:"max_distance_miles"`
	MinMatchPercent   *int      `json:"min_match_percent"`
	MaxMatchPercent   *int      `json:"max_match_percent"`
}

type merger struct {
	patch *domain.ProfilePatch
	errs  *domain.ValidationError
}

func (m *merger) mark(keys ...string) {
	m.patch.Changed = append(m.patch.Changed, keys...)
}

func set[T any](m *merger, key string, in *T, check checker[T], dst *T) {
	if in == nil {
		return
	}
	v, fe := check(key, *in)
	if fe != nil {
		m.errs.Add(fe)
		return
	}
	*dst = v
	m.mark(key)
}

func setOptional[T any](m *merger, key string, in *T, check checker[T], dst **T) {
	if in == nil {
		return
	}
	v, fe := check(key, *in)
	if fe != nil {
		m.errs.Add(fe)
		return
	}
	*dst = &v
	m.mark(key)
}

// merge validates every present field of req against current and returns
// the combined state with the list of changed keys. Email uniqueness is not
// checked here. Nothing in current is modified.
func merge(current *domain.Account, req *UpdateProfileRequest, now time.Time) (*domain.ProfilePatch, error) {
	m := &merger{
		patch: &domain.ProfilePatch{Email: current.Email, Profile: current.Profile},
		errs:  &domain.ValidationError{},
	}
	p := &m.patch.Profile

	if req.Email != nil {
		v, fe := email(domain.FieldEmail, *req.Email)
		switch {
		case fe != nil:
			m.errs.Add(fe)
		case v != domain.NormalizeEmail(current.Email):
			m.patch.Email = v
			m.mark(domain.FieldEmail)
		}
	}

	set(m, domain.FieldName, req.Name, textUpTo(maxNameLength), &p.Name)

	if req.Birthday != nil {
		bd, fe := parseBirthday(domain.FieldBirthday, *req.Birthday)
		if fe == nil {
			bd, fe = birthday(now)(domain.FieldBirthday, bd)
		}
		if fe != nil {
			m.errs.Add(fe)
		} else {
			p.Birthday = bd
			p.Age = nil
			p.AstrologicalSign = ""
			if bd != nil {
				age := domain.AgeOn(*bd, now)
				p.Age = &age
				p.AstrologicalSign = domain.SignOf(*bd)
			}
			m.mark(domain.FieldBirthday, domain.FieldAge, domain.FieldAstrologicalSign)
		}
	}

	set(m, domain.FieldGender, req.Gender, textUpTo(maxGenderLength), &p.Gender)
	set(m, domain.FieldZipcode, req.Zipcode, zipcode, &p.Zipcode)
	set(m, domain.FieldSummary, req.Summary, textUpTo(maxSummaryLength), &p.Summary)

	set(m, domain.FieldEyeColor, req.EyeColor, textUpTo(maxColorLength), &p.Appearance.EyeColor)
	set(m, domain.FieldHairColor, req.HairColor, textUpTo(maxColorLength), &p.Appearance.HairColor)
	setOptional(m, domain.FieldHeightInches, req.HeightInches, intBetween(minHeightInches, maxHeightInches), &p.Appearance.HeightInches)
	setOptional(m, domain.FieldWeightPounds, req.WeightPounds, intBetween(minWeightPounds, maxWeightPounds), &p.Appearance.WeightPounds)
	setOptional(m, domain.FieldFitnessLevel, req.FitnessLevel, intBetween(0, maxFitnessLevel), &p.Appearance.FitnessLevel)

	set(m, domain.FieldEthnicity, req.Ethnicity, stringSet, &p.Culture.Ethnicity)
	set(m, domain.FieldLanguage, req.Language, stringSet, &p.Culture.Language)
	set(m, domain.FieldReligion, req.Religion, stringSet, &p.Culture.Religion)
	set(m, domain.FieldEducation, req.Education, stringSet, &p.Culture.Education)

	set(m, domain.FieldDiet, req.Diet, textUpTo(maxDietLength), &p.Lifestyle.Diet)
	setOptional(m, domain.FieldCaffeine, req.Caffeine, anyBool, &p.Lifestyle.Caffeine)
	setOptional(m, domain.FieldAlcohol, req.Alcohol, anyBool, &p.Lifestyle.Alcohol)
	setOptional(m, domain.FieldTobacco, req.Tobacco, anyBool, &p.Lifestyle.Tobacco)
	setOptional(m, domain.FieldWeed, req.Weed, anyBool, &p.Lifestyle.Weed)
	setOptional(m, domain.FieldOtherDrugs, req.OtherDrugs, anyBool, &p.Lifestyle.OtherDrugs)

	setOptional(m, domain.FieldCats, req.Cats, anyBool, &p.Pets.Cats)
	setOptional(m, domain.FieldDogs, req.Dogs, anyBool, &p.Pets.Dogs)
	setOptional(m, domain.FieldReptiles, req.Reptiles, anyBool, &p.Pets.Reptiles)
	setOptional(m, domain.FieldBirds, req.Birds, anyBool, &p.Pets.Birds)
	setOptional(m, domain.FieldOtherPets, req.OtherPets, anyBool, &p.Pets.OtherPets)
	set(m, domain.FieldOtherPetsDescription, req.OtherPetsDescription, textUpTo(maxOtherPetsLength), &p.Pets.OtherPetsDescription)

	setOptional(m, domain.FieldCurrentKids, req.CurrentKids, intBetween(0, maxCurrentKids), &p.Kids.CurrentKids)
	setOptional(m, domain.FieldWantMoreKids, req.WantMoreKids, anyBool, &p.Kids.WantMoreKids)

	set(m, domain.FieldMessageMeIf, req.MessageMeIf, textUpTo(maxMessagingLength), &p.Messaging.MessageMeIf)
	set(m, domain.FieldDoNotMessageIf, req.DoNotMessageIf, textUpTo(maxMessagingLength), &p.Messaging.DoNotMessageIf)

	prefs := &p.Preferences
	set(m, domain.FieldGenderInterests, req.GenderInterests, stringSet, &prefs.GenderInterests)
	set(m, domain.FieldRelationshipTypes, req.RelationshipTypes, stringSet, &prefs.RelationshipTypes)
	setOptional(m, domain.FieldMinAge, req.MinAge, intBetween(domain.DefaultMinAge, domain.DefaultMaxAge), &prefs.MinAge)
	setOptional(m, domain.FieldMaxAge, req.MaxAge, intBetween(domain.DefaultMinAge, domain.DefaultMaxAge), &prefs.MaxAge)
	setOptional(m, domain.FieldMinDistanceMiles, req.MinDistanceMiles, intBetween(0, maxDistanceMiles), &prefs.MinDistanceMiles)
	setOptional(m, domain.FieldMaxDistanceMiles, req.MaxDistanceMiles, intBetween(0, maxDistanceMiles), &prefs.MaxDistanceMiles)
	setOptional(m, domain.FieldMinMatchPercent, req.MinMatchPercent, intBetween(0, maxMatchPercentValue), &prefs.MinMatchPercent)
	setOptional(m, domain.FieldMaxMatchPercent, req.MaxMatchPercent, intBetween(0, maxMatchPercentValue), &prefs.MaxMatchPercent)

	m.errs.Add(ordered(domain.FieldMinAge, domain.FieldMaxAge, prefs.MinAge, prefs.MaxAge, m.patch.Has))
	m.errs.Add(ordered(domain.FieldMinDistanceMiles, domain.FieldMaxDistanceMiles, prefs.MinDistanceMiles, prefs.MaxDistanceMiles, m.patch.Has))
	m.errs.Add(ordered(domain.FieldMinMatchPercent, domain.FieldMaxMatchPercent, prefs.MinMatchPercent, prefs.MaxMatchPercent, m.patch.Has))

	if err := m.errs.OrNil(); err != nil {
		return nil, err
	}
	return m.patch, nil
}
