package domain

import "time"

// zodiacStarts lists, in calendar order, the first day of each sign.
var zodiacStarts = []struct {
	month time.Month
	day   int
	sign  string
}{
	{time.January, 20, "Aquarius"},
	{time.February, 19, "Pisces"},
	{time.March, 21, "Aries"},
	{time.April, 20, "Taurus"},
	{time.May, 21, "Gemini"},
	{time.June, 21, "Cancer"},
	{time.July, 23, "Leo"},
	{time.August, 23, "Virgo"},
	{time.September, 23, "Libra"},
	{time.October, 23, "Scorpio"},
	{time.November, 22, "Sagittarius"},
	{time.December, 22, "Capricorn"},
}

// AstrologicalSign returns the western zodiac sign for a month and day.
// The year is ignored.
func AstrologicalSign(month time.Month, day int) string {
	sign := "Capricorn"
	for _, z := range zodiacStarts {
		if month > z.month || (month == z.month && day >= z.day) {
			sign = z.sign
		}
	}
	return sign
}

// SignOf is AstrologicalSign for a full date.
func SignOf(t time.Time) string {
	return AstrologicalSign(t.Month(), t.Day())
}
