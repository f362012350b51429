package profile

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrValidation is the base error for every value-object and aggregate
// invariant violation. Callers match it with errors.Is.
var ErrValidation = errors.New("validation failed")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

const maxWorkDescriptionLength = 1000

// PersonName is a first/last name pair. Both parts are required.
type PersonName struct {
	first string
	last  string
}

func NewPersonName(first, last string) (PersonName, error) {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" {
		return PersonName{}, invalidf("first name is required")
	}
	if last == "" {
		return PersonName{}, invalidf("last name is required")
	}
	return PersonName{first: first, last: last}, nil
}

func (n PersonName) First() string { return n.first }
func (n PersonName) Last() string  { return n.last }

func (n PersonName) String() string {
	return n.first + " " + n.last
}

// EmailAddress holds a trimmed, non-empty address containing an '@'.
type EmailAddress struct {
	value string
}

func NewEmailAddress(value string) (EmailAddress, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return EmailAddress{}, invalidf("email is required")
	}
	if !strings.Contains(value, "@") {
		return EmailAddress{}, invalidf("email %q is malformed", value)
	}
	return EmailAddress{value: value}, nil
}

func (e EmailAddress) Value() string { return e.value }

// URL holds an absolute URI.
type URL struct {
	value string
}

func NewURL(value string) (URL, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return URL{}, invalidf("url is required")
	}
	parsed, err := url.Parse(value)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return URL{}, invalidf("url %q is not an absolute URI", value)
	}
	return URL{value: value}, nil
}

func (u URL) Value() string { return u.value }

type PhoneNumber struct {
	value string
}

func NewPhoneNumber(value string) (PhoneNumber, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return PhoneNumber{}, invalidf("phone number is required")
	}
	return PhoneNumber{value: value}, nil
}

func (p PhoneNumber) Value() string { return p.value }

// Location is a city/country pair. Either part may be absent, both may not.
type Location struct {
	city    string
	country string
}

func NewLocation(city, country string) (Location, error) {
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)
	if city == "" && country == "" {
		return Location{}, invalidf("location needs at least a city or a country")
	}
	return Location{city: city, country: country}, nil
}

func (l Location) City() string    { return l.city }
func (l Location) Country() string { return l.country }

// SocialLinks groups the optional public links of a profile. A nil entry
// means the link is not set.
type SocialLinks struct {
	linkedIn *URL
	gitHub   *URL
	twitter  *URL
	telegram *URL
}

func NewSocialLinks(linkedIn, gitHub, twitter, telegram *URL) SocialLinks {
	return SocialLinks{linkedIn: linkedIn, gitHub: gitHub, twitter: twitter, telegram: telegram}
}

func (s SocialLinks) LinkedIn() *URL { return s.linkedIn }
func (s SocialLinks) GitHub() *URL   { return s.gitHub }
func (s SocialLinks) Twitter() *URL  { return s.twitter }
func (s SocialLinks) Telegram() *URL { return s.telegram }

// ContactInfo is the reachable-at surface of a profile. Email is required.
type ContactInfo struct {
	email    EmailAddress
	phone    *PhoneNumber
	website  *URL
	location *Location
}

func NewContactInfo(email EmailAddress, phone *PhoneNumber, website *URL, location *Location) ContactInfo {
	return ContactInfo{email: email, phone: phone, website: website, location: location}
}

func (c ContactInfo) Email() EmailAddress  { return c.email }
func (c ContactInfo) Phone() *PhoneNumber  { return c.phone }
func (c ContactInfo) Website() *URL        { return c.website }
func (c ContactInfo) Location() *Location  { return c.location }

// DateRange is a start date with an optional end. Timestamps are normalized
// to UTC at millisecond precision so both backends round-trip them.
type DateRange struct {
	start time.Time
	end   *time.Time
}

func NewDateRange(start time.Time, end *time.Time) (DateRange, error) {
	if start.IsZero() {
		return DateRange{}, invalidf("start date is required")
	}
	start = normalizeTime(start)
	if end == nil {
		return DateRange{start: start}, nil
	}
	e := normalizeTime(*end)
	if e.Before(start) {
		return DateRange{}, invalidf("end date must not be before start date")
	}
	return DateRange{start: start, end: &e}, nil
}

func (d DateRange) Start() time.Time { return d.start }
func (d DateRange) End() *time.Time  { return d.end }

func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

type TechTag struct {
	value string
}

func NewTechTag(value string) (TechTag, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return TechTag{}, invalidf("tech tag must not be blank")
	}
	return TechTag{value: value}, nil
}

func (t TechTag) Value() string { return t.value }

type SkillTag struct {
	value string
}

func NewSkillTag(value string) (SkillTag, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return SkillTag{}, invalidf("skill tag must not be blank")
	}
	return SkillTag{value: value}, nil
}

func (s SkillTag) Value() string { return s.value }

type RoleTitle struct {
	value string
}

func NewRoleTitle(value string) (RoleTitle, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return RoleTitle{}, invalidf("role title must not be blank")
	}
	return RoleTitle{value: value}, nil
}

func (r RoleTitle) Value() string { return r.value }

type CompanyName struct {
	value string
}

func NewCompanyName(value string) (CompanyName, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return CompanyName{}, invalidf("company name must not be blank")
	}
	return CompanyName{value: value}, nil
}

func (c CompanyName) Value() string { return c.value }

type ProjectName struct {
	value string
}

func NewProjectName(value string) (ProjectName, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ProjectName{}, invalidf("project name must not be blank")
	}
	return ProjectName{value: value}, nil
}

func (p ProjectName) Value() string { return p.value }

type ProjectDescription struct {
	value string
}

func NewProjectDescription(value string) (ProjectDescription, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ProjectDescription{}, invalidf("project description must not be blank")
	}
	return ProjectDescription{value: value}, nil
}

func (p ProjectDescription) Value() string { return p.value }

type WorkDescription struct {
	value string
}

func NewWorkDescription(value string) (WorkDescription, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return WorkDescription{}, invalidf("work description must not be blank")
	}
	if utf8.RuneCountInString(value) > maxWorkDescriptionLength {
		return WorkDescription{}, invalidf("work description exceeds %d characters", maxWorkDescriptionLength)
	}
	return WorkDescription{value: value}, nil
}

func (w WorkDescription) Value() string { return w.value }

// ProjectIcon wraps the image URL a project is rendered with.
type ProjectIcon struct {
	imageURL URL
}

func NewProjectIcon(imageURL URL) ProjectIcon {
	return ProjectIcon{imageURL: imageURL}
}

func (p ProjectIcon) ImageURL() URL { return p.imageURL }

// ProjectLink is the optional external link of a project. The zero value
// means "no link".
type ProjectLink struct {
	url *URL
}

func NewProjectLink(url *URL) ProjectLink {
	return ProjectLink{url: url}
}

func (p ProjectLink) URL() *URL { return p.url }

type Avatar struct {
	imageURL URL
}

func NewAvatar(imageURL URL) Avatar {
	return Avatar{imageURL: imageURL}
}

func (a Avatar) ImageURL() URL { return a.imageURL }

type YearsOfExperience struct {
	value int
}

func NewYearsOfExperience(value int) (YearsOfExperience, error) {
	if value < 0 || value > 80 {
		return YearsOfExperience{}, invalidf("years of experience must be between 0 and 80, got %d", value)
	}
	return YearsOfExperience{value: value}, nil
}

func (y YearsOfExperience) Value() int { return y.value }

// VerificationLevel is the ordered trust status of a profile.
type VerificationLevel int

const (
	NotVerified VerificationLevel = iota
	Verified
	Premium
)

func NewVerificationLevel(value int) (VerificationLevel, error) {
	switch v := VerificationLevel(value); v {
	case NotVerified, Verified, Premium:
		return v, nil
	default:
		return NotVerified, invalidf("unknown verification level %d", value)
	}
}

func (v VerificationLevel) String() string {
	switch v {
	case Verified:
		return "verified"
	case Premium:
		return "premium"
	default:
		return "not_verified"
	}
}
