package entity

import "time"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type Profile struct {
	Id               uint
	UserId           uint
	Nickname         string
	BirthDate        time.Time
	Gender           Gender
	Bio              string
	Location         string
	ImageUrls        []string
	Interests        []string
	MinAgePreference int
	MaxAgePreference int
	MaxDistance      int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Age is the calendar-year difference, not a birthday-aware calculation.
// A birthday later in the year than now overstates the age by up to one year;
// matching eligibility depends on this exact semantics.
func (p *Profile) Age(now time.Time) int {
	return now.Year() - p.BirthDate.Year()
}

// AcceptsAge reports whether a candidate age falls inside this profile's
// stated preference window.
func (p *Profile) AcceptsAge(age int) bool {
	return age >= p.MinAgePreference && age <= p.MaxAgePreference
}
