package generator

import (
	"strings"
	"time"

	"pillar2/internal/utils"

	"github.com/brianvoe/gofakeit/v6"
)

const uppercaseLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Source supplies the random values a record is assembled from.
type Source interface {
	Surname() string
	Forename() string
	Postcode() string
	DateOfBirth(asOf time.Time) time.Time
	Int64Range(min, max int64) int64
	Letter() string
	Choice(options []string) string
}

// FakerSource draws from gofakeit using en_GB name and postcode data.
type FakerSource struct {
	faker *gofakeit.Faker
}

// NewFakerSource returns a source seeded with seed. A zero seed is replaced with a random one.
func NewFakerSource(seed int64) *FakerSource {
	return &FakerSource{faker: gofakeit.New(seed)}
}

func (s *FakerSource) Surname() string {
	return s.faker.RandomString(Surnames)
}

func (s *FakerSource) Forename() string {
	if s.faker.Bool() {
		return s.faker.RandomString(FemaleForenames)
	}
	return s.faker.RandomString(MaleForenames)
}

// Postcode renders one of the Royal Mail outward code shapes followed by a digit and two letters.
func (s *FakerSource) Postcode() string {
	pattern := s.faker.RandomString(postcodePatterns)

	var b strings.Builder
	b.Grow(len(pattern))
	for _, ch := range pattern {
		switch ch {
		case 'A':
			b.WriteByte(s.pick(postcodeAreaLetters))
		case 'B':
			b.WriteByte(s.pick(postcodeDistrictLetters))
		case 'I':
			b.WriteByte(s.pick(postcodeInwardLetters))
		case '9':
			b.WriteByte(byte('0' + s.faker.Number(0, 9)))
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func (s *FakerSource) DateOfBirth(asOf time.Time) time.Time {
	oldest := asOf.AddDate(-MaxAdultAge, 0, 1)
	youngest := asOf.AddDate(-MinAdultAge, 0, 0)
	return utils.Day(s.faker.DateRange(oldest, youngest))
}

// Int64Range returns a uniform value in [min, max].
func (s *FakerSource) Int64Range(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + s.faker.Rand.Int63n(max-min+1)
}

func (s *FakerSource) Letter() string {
	return string(s.pick(uppercaseLetters))
}

func (s *FakerSource) Choice(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[s.faker.Rand.Intn(len(options))]
}

func (s *FakerSource) pick(set string) byte {
	return set[s.faker.Rand.Intn(len(set))]
}
