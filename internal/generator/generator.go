package generator

import (
	"strconv"
	"time"

	"pillar2/internal/models"
	"pillar2/internal/utils"
)

const (
	MinBatchSize = 100
	MaxBatchSize = 200

	nhsNumberMin      int64 = 1_000_000_000
	nhsNumberMax      int64 = 9_999_999_999
	hospitalNumberMin int64 = 1_000_000
	hospitalNumberMax int64 = 9_999_999
	testNumberMin     int64 = 10_000_000_000
	testNumberMax     int64 = 99_999_999_999
)

var testResultChoices = []string{
	string(models.TestResultPositive),
	string(models.TestResultNegative),
}

type Generator struct {
	source Source
}

func New(source Source) *Generator {
	return &Generator{source: source}
}

// BatchSize draws how many records a single run produces.
func (g *Generator) BatchSize() int {
	return int(g.source.Int64Range(MinBatchSize, MaxBatchSize))
}

// GenerateBatch returns count fresh records dated asOf. A count of zero or less yields an
// empty batch rather than an error.
func (g *Generator) GenerateBatch(count int, asOf time.Time) []models.TestingRecord {
	if count <= 0 {
		return []models.TestingRecord{}
	}

	day := utils.Day(asOf)
	records := make([]models.TestingRecord, count)
	for i := range records {
		records[i] = g.record(day)
	}
	return records
}

func (g *Generator) record(day time.Time) models.TestingRecord {
	return models.TestingRecord{
		NHSNumber:      g.source.Int64Range(nhsNumberMin, nhsNumberMax),
		Date:           day,
		Surname:        g.source.Surname(),
		Forename:       g.source.Forename(),
		HospitalNumber: g.hospitalNumber(),
		DateOfBirth:    g.source.DateOfBirth(day),
		Postcode:       g.source.Postcode(),
		TestNumber:     "T" + strconv.FormatInt(g.source.Int64Range(testNumberMin, testNumberMax), 10),
		TestResult:     models.TestResult(g.source.Choice(testResultChoices)),
	}
}

func (g *Generator) hospitalNumber() string {
	number := g.source.Int64Range(hospitalNumberMin, hospitalNumberMax)
	return g.source.Letter() + strconv.FormatInt(number, 10)
}
