package session

import (
	"testing"
	"time"

	"pillar2/internal/generator"
	"pillar2/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestState(seed int64) *State {
	return New(generator.New(generator.NewFakerSource(seed)), fixedClock)
}

func TestNew_StartsEmpty(t *testing.T) {
	state := newTestState(1)

	assert.Equal(t, PhaseEmpty, state.Phase())
	assert.Equal(t, 0, state.RunCount())
	assert.Equal(t, MaxRuns, state.Remaining())
	assert.Empty(t, state.Records())
	assert.Equal(t, time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC), state.StartDate())
	assert.Equal(t, state.StartDate(), state.CursorDate())
}

func TestRequestGeneration_FirstRun(t *testing.T) {
	state := newTestState(2)

	result := state.RequestGeneration()

	require.True(t, result.Ran)
	assert.False(t, result.LimitReached)
	assert.Equal(t, 6, result.Remaining)
	assert.Equal(t, 1, state.RunCount())
	assert.Equal(t, PhaseAccumulating, state.Phase())

	records := state.Records()
	assert.GreaterOrEqual(t, len(records), generator.MinBatchSize)
	assert.LessOrEqual(t, len(records), generator.MaxBatchSize)
	assert.Equal(t, len(records), result.Generated)
	assert.Len(t, result.Batch, result.Generated)

	expectedDate := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, expectedDate, result.Date)
	for _, record := range records {
		assert.Equal(t, expectedDate, record.Date)
		assert.Equal(t, 1, record.Run)
	}
}

func TestRequestGeneration_CursorAdvancesPerRun(t *testing.T) {
	state := newTestState(3)
	start := state.StartDate()

	for k := 1; k <= MaxRuns; k++ {
		result := state.RequestGeneration()
		require.True(t, result.Ran)
		assert.Equal(t, start.AddDate(0, 0, k-1), result.Date)
		assert.Equal(t, start.AddDate(0, 0, k), state.CursorDate())
		assert.Equal(t, MaxRuns-k, result.Remaining)
	}
}

func TestRequestGeneration_LimitIsNoOp(t *testing.T) {
	state := newTestState(4)

	var last GenerationResult
	for i := 0; i < MaxRuns; i++ {
		last = state.RequestGeneration()
	}
	require.Equal(t, MaxRuns, state.RunCount())
	assert.True(t, last.Ran)
	assert.True(t, last.LimitReached)
	assert.Equal(t, PhaseFull, state.Phase())

	before := state.Records()
	cursor := state.CursorDate()

	result := state.RequestGeneration()

	assert.False(t, result.Ran)
	assert.True(t, result.LimitReached)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, 0, result.Generated)
	assert.Nil(t, result.Batch)
	assert.Equal(t, MaxRuns, state.RunCount())
	assert.Equal(t, before, state.Records())
	assert.Equal(t, cursor, state.CursorDate())
}

func TestRequestGeneration_AppendsInOrder(t *testing.T) {
	state := newTestState(5)

	first := state.RequestGeneration()
	second := state.RequestGeneration()

	records := state.Records()
	require.Len(t, records, first.Generated+second.Generated)
	assert.Equal(t, first.Batch, records[:first.Generated])
	assert.Equal(t, second.Batch, records[first.Generated:])
}

func TestReset_FromAnyPhase(t *testing.T) {
	for runs := 0; runs <= MaxRuns; runs++ {
		state := newTestState(int64(10 + runs))
		for i := 0; i < runs; i++ {
			state.RequestGeneration()
		}

		state.Reset()

		assert.Equal(t, PhaseEmpty, state.Phase())
		assert.Equal(t, 0, state.RunCount())
		assert.Empty(t, state.Records())
		assert.Equal(t, InitialDate(fixedNow), state.CursorDate())

		summary := state.Summarize()
		assert.Equal(t, 0, summary.Total)
		assert.Equal(t, 0, summary.Positive)
		assert.Equal(t, 0.0, summary.Percentage)
		assert.Empty(t, summary.ByDate)
	}
}

func TestReset_UsesCurrentDay(t *testing.T) {
	now := fixedNow
	state := New(generator.New(generator.NewFakerSource(6)), func() time.Time { return now })
	state.RequestGeneration()

	now = now.AddDate(0, 0, 3)
	state.Reset()

	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), state.StartDate())
}

func TestRecords_ReturnsCopy(t *testing.T) {
	state := newTestState(7)
	state.RequestGeneration()

	records := state.Records()
	records[0].Surname = "Changed"

	assert.NotEqual(t, "Changed", state.Records()[0].Surname)
}

func TestRestore(t *testing.T) {
	gen := generator.New(generator.NewFakerSource(8))
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	records := gen.GenerateBatch(120, start)

	state := Restore(gen, fixedClock, start, 1, records)

	assert.Equal(t, PhaseAccumulating, state.Phase())
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), state.CursorDate())
	assert.Equal(t, 120, state.Len())

	result := state.RequestGeneration()
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), result.Date)
	assert.Equal(t, 5, result.Remaining)

	clamped := Restore(gen, fixedClock, start, 12, nil)
	assert.Equal(t, MaxRuns, clamped.RunCount())
	assert.Equal(t, PhaseFull, clamped.Phase())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "empty", PhaseEmpty.String())
	assert.Equal(t, "accumulating", PhaseAccumulating.String())
	assert.Equal(t, "full", PhaseFull.String())
	assert.Equal(t, "unknown", Phase(9).String())
}

func TestSummarize(t *testing.T) {
	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	record := func(date time.Time, result models.TestResult) models.TestingRecord {
		return models.TestingRecord{Date: date, TestResult: result}
	}

	tests := []struct {
		name       string
		records    []models.TestingRecord
		total      int
		positive   int
		percentage float64
		byDate     []models.DateCount
	}{
		{
			name:       "empty",
			records:    nil,
			percentage: 0,
			byDate:     []models.DateCount{},
		},
		{
			name: "all positive",
			records: []models.TestingRecord{
				record(day1, models.TestResultPositive),
				record(day1, models.TestResultPositive),
			},
			total:      2,
			positive:   2,
			percentage: 100,
			byDate:     []models.DateCount{{Date: day1, Count: 2}},
		},
		{
			name: "rounded to two places and ordered by date",
			records: []models.TestingRecord{
				record(day3, models.TestResultNegative),
				record(day1, models.TestResultPositive),
				record(day2, models.TestResultNegative),
			},
			total:      3,
			positive:   1,
			percentage: 33.33,
			byDate: []models.DateCount{
				{Date: day1, Count: 1},
				{Date: day2, Count: 1},
				{Date: day3, Count: 1},
			},
		},
		{
			name: "times within a day collapse",
			records: []models.TestingRecord{
				record(day2.Add(3*time.Hour), models.TestResultNegative),
				record(day2, models.TestResultPositive),
				record(day2, models.TestResultNegative),
			},
			total:      3,
			positive:   1,
			percentage: 33.33,
			byDate:     []models.DateCount{{Date: day2, Count: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Summarize(tt.records)
			assert.Equal(t, tt.total, summary.Total)
			assert.Equal(t, tt.positive, summary.Positive)
			assert.Equal(t, tt.percentage, summary.Percentage)
			assert.Equal(t, tt.byDate, summary.ByDate)
		})
	}
}

func TestSummarize_PercentageMatchesCounts(t *testing.T) {
	state := newTestState(21)
	for i := 0; i < MaxRuns; i++ {
		state.RequestGeneration()
	}

	summary := state.Summarize()
	expected := float64(summary.Positive) / float64(summary.Total) * 100

	assert.InDelta(t, expected, summary.Percentage, 0.005)
	assert.GreaterOrEqual(t, summary.Percentage, 0.0)
	assert.LessOrEqual(t, summary.Percentage, 100.0)
	assert.Len(t, summary.ByDate, MaxRuns)

	sum := 0
	for _, point := range summary.ByDate {
		sum += point.Count
	}
	assert.Equal(t, summary.Total, sum)
}
