package domain

import "time"

const (
	DefaultMinAge = 18
	DefaultMaxAge = 99
)

// Profile keys. They double as the column names of the accounts table and
// identify which fields a ProfilePatch changes.
const (
	FieldEmail                = "email"
	FieldName                 = "name"
	FieldBirthday             = "birthday"
	FieldAge                  = "age"
	FieldAstrologicalSign     = "astrological_sign"
	FieldGender               = "gender"
	FieldZipcode              = "zipcode"
	FieldSummary              = "summary"
	FieldEyeColor             = "eye_color"
	FieldHairColor            = "hair_color"
	FieldHeightInches         = "height_inches"
	FieldWeightPounds         = "weight_pounds"
	FieldFitnessLevel         = "fitness_level"
	FieldEthnicity            = "ethnicity"
	FieldLanguage             = "language"
	FieldReligion             = "religion"
	FieldEducation            = "education"
	FieldDiet                 = "diet"
	FieldCaffeine             = "caffeine"
	FieldAlcohol              = "alcohol"
	FieldTobacco              = "tobacco"
	FieldWeed                 = "weed"
	FieldOtherDrugs           = "other_drugs"
	FieldCats                 = "cats"
	FieldDogs                 = "dogs"
	FieldReptiles             = "reptiles"
	FieldBirds                = "birds"
	FieldOtherPets            = "other_pets"
	FieldOtherPetsDescription = "other_pets_description"
	FieldCurrentKids          = "current_kids"
	FieldWantMoreKids         = "want_more_kids"
	FieldMessageMeIf          = "message_me_if"
	FieldDoNotMessageIf       = "do_not_message_if"
	FieldGenderInterests      = "gender_interests"
	FieldRelationshipTypes    = "relationship_types"
	FieldMinAge               = "min_age"
	FieldMaxAge               = "max_age"
	FieldMinDistanceMiles     = "min_distance_miles"
	FieldMaxDistanceMiles     = "max_distance_miles"
	FieldMinMatchPercent      = "min_match_percent"
	FieldMaxMatchPercent      = "max_match_percent"
	FieldAutoPopulated        = "auto_populated"
)

type Profile struct {
	AutoPopulated    bool       `json:"auto_populated"`
	Name             string     `json:"name"`
	Birthday         *time.Time `json:"birthday"`
	Age              *int       `json:"age"`
	AstrologicalSign string     `json:"astrological_sign"`
	Gender           string     `json:"gender"`
	Zipcode          string     `json:"zipcode"`
	Summary          string     `json:"summary"`
	Pictures         []string   `json:"pictures"`

	Appearance  Appearance       `json:"appearance"`
	Culture     Culture          `json:"culture"`
	Lifestyle   Lifestyle        `json:"lifestyle"`
	Pets        Pets             `json:"pets"`
	Kids        Kids             `json:"kids"`
	Messaging   Messaging        `json:"messaging"`
	Preferences MatchPreferences `json:"preferences"`
}

type Appearance struct {
	EyeColor     string `json:"eye_color"`
	HairColor    string `json:"hair_color"`
	HeightInches *int   `json:"height_inches"`
	WeightPounds *int   `json:"weight_pounds"`
	FitnessLevel *int   `json:"fitness_level"`
}

type Culture struct {
	Ethnicity []string `json:"ethnicity"`
	Language  []string `json:"language"`
	Religion  []string `json:"religion"`
	Education []string `json:"education"`
}

type Lifestyle struct {
	Diet       string `json:"diet"`
	Caffeine   *bool  `json:"caffeine"`
	Alcohol    *bool  `json:"alcohol"`
	Tobacco    *bool  `json:"tobacco"`
	Weed       *bool  `json:"weed"`
	OtherDrugs *bool  `json:"other_drugs"`
}

type Pets struct {
	Cats                 *bool  `json:"cats"`
	Dogs                 *bool  `json:"dogs"`
	Reptiles             *bool  `json:"reptiles"`
	Birds                *bool  `json:"birds"`
	OtherPets            *bool  `json:"other_pets"`
	OtherPetsDescription string `json:"other_pets_description"`
}

type Kids struct {
	CurrentKids  *int  `json:"current_kids"`
	WantMoreKids *bool `json:"want_more_kids"`
}

type Messaging struct {
	MessageMeIf    string `json:"message_me_if"`
	DoNotMessageIf string `json:"do_not_message_if"`
}

// MatchPreferences holds what an account is looking for. Each min/max pair
// must satisfy min <= max whenever both are set.
type MatchPreferences struct {
	GenderInterests   []string `json:"gender_interests"`
	RelationshipTypes []string `json:"relationship_types"`
	MinAge            *int     `json:"min_age"`
	MaxAge            *int     `json:"max_age"`
	MinDistanceMiles  *int     `json:"min_distance_miles"`
	MaxDistanceMiles  *int     `json:"max_distance_miles"`
	MinMatchPercent   *int     `json:"min_match_percent"`
	MaxMatchPercent   *int     `json:"max_match_percent"`
}

// ProfilePatch is a validated, merged profile plus the set of keys that
// actually changed. Stores write only the changed keys.
type ProfilePatch struct {
	Email   string
	Profile Profile
	Changed []string
}

// Has reports whether key is part of the patch.
func (p *ProfilePatch) Has(key string) bool {
	for _, k := range p.Changed {
		if k == key {
			return true
		}
	}
	return false
}

// Empty reports whether the patch changes nothing.
func (p *ProfilePatch) Empty() bool {
	return len(p.Changed) == 0
}

// AgeOn returns the number of whole years between birthday and now.
func AgeOn(birthday, now time.Time) int {
	age := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() ||
		(now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		age--
	}
	return age
}

// ApplyTo copies the changed keys of the patch onto a. Keys outside the
// patch keep their stored values.
func (p *ProfilePatch) ApplyTo(a *Account) {
	src, dst := &p.Profile, &a.Profile
	for _, key := range p.Changed {
		switch key {
		case FieldEmail:
			a.Email = p.Email
		case FieldName:
			dst.Name = src.Name
		case FieldBirthday:
			dst.Birthday = src.Birthday
		case FieldAge:
			dst.Age = src.Age
		case FieldAstrologicalSign:
			dst.AstrologicalSign = src.AstrologicalSign
		case FieldGender:
			dst.Gender = src.Gender
		case FieldZipcode:
			dst.Zipcode = src.Zipcode
		case FieldSummary:
			dst.Summary = src.Summary
		case FieldEyeColor:
			dst.Appearance.EyeColor = src.Appearance.EyeColor
		case FieldHairColor:
			dst.Appearance.HairColor = src.Appearance.HairColor
		case FieldHeightInches:
			dst.Appearance.HeightInches = src.Appearance.HeightInches
		case FieldWeightPounds:
			dst.Appearance.WeightPounds = src.Appearance.WeightPounds
		case FieldFitnessLevel:
			dst.Appearance.FitnessLevel = src.Appearance.FitnessLevel
		case FieldEthnicity:
			dst.Culture.Ethnicity = src.Culture.Ethnicity
		case FieldLanguage:
			dst.Culture.Language = src.Culture.Language
		case FieldReligion:
			dst.Culture.Religion = src.Culture.Religion
		case FieldEducation:
			dst.Culture.Education = src.Culture.Education
		case FieldDiet:
			dst.Lifestyle.Diet = src.Lifestyle.Diet
		case FieldCaffeine:
			dst.Lifestyle.Caffeine = src.Lifestyle.Caffeine
		case FieldAlcohol:
			dst.Lifestyle.Alcohol = src.Lifestyle.Alcohol
		case FieldTobacco:
			dst.Lifestyle.Tobacco = src.Lifestyle.Tobacco
		case FieldWeed:
			dst.Lifestyle.Weed = src.Lifestyle.Weed
		case FieldOtherDrugs:
			dst.Lifestyle.OtherDrugs = src.Lifestyle.OtherDrugs
		case FieldCats:
			dst.Pets.Cats = src.Pets.Cats
		case FieldDogs:
			dst.Pets.Dogs = src.Pets.Dogs
		case FieldReptiles:
			dst.Pets.Reptiles = src.Pets.Reptiles
		case FieldBirds:
			dst.Pets.Birds = src.Pets.Birds
		case FieldOtherPets:
			dst.Pets.OtherPets = src.Pets.OtherPets
		case FieldOtherPetsDescription:
			dst.Pets.OtherPetsDescription = src.Pets.OtherPetsDescription
		case FieldCurrentKids:
			dst.Kids.CurrentKids = src.Kids.CurrentKids
		case FieldWantMoreKids:
			dst.Kids.WantMoreKids = src.Kids.WantMoreKids
		case FieldMessageMeIf:
			dst.Messaging.MessageMeIf = src.Messaging.MessageMeIf
		case FieldDoNotMessageIf:
			dst.Messaging.DoNotMessageIf = src.Messaging.DoNotMessageIf
		case FieldGenderInterests:
			dst.Preferences.GenderInterests = src.Preferences.GenderInterests
		case FieldRelationshipTypes:
			dst.Preferences.RelationshipTypes = src.Preferences.RelationshipTypes
		case FieldMinAge:
			dst.Preferences.MinAge = src.Preferences.MinAge
		case FieldMaxAge:
			dst.Preferences.MaxAge = src.Preferences.MaxAge
		case FieldMinDistanceMiles:
			dst.Preferences.MinDistanceMiles = src.Preferences.MinDistanceMiles
		case FieldMaxDistanceMiles:
			dst.Preferences.MaxDistanceMiles = src.Preferences.MaxDistanceMiles
		case FieldMinMatchPercent:
			dst.Preferences.MinMatchPercent = src.Preferences.MinMatchPercent
		case FieldMaxMatchPercent:
			dst.Preferences.MaxMatchPercent = src.Preferences.MaxMatchPercent
		}
	}
}
