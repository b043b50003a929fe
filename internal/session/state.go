package session

import (
	"time"

	"pillar2/internal/generator"
	"pillar2/internal/models"
	"pillar2/internal/utils"
)

const (
	// MaxRuns bounds how many batches a session may generate before it is full.
	MaxRuns = 7
	// LookbackDays is how far before today the first batch is dated.
	LookbackDays = 7
)

// Clock reports the current time.
type Clock func() time.Time

// Phase is where a session stands in its week of runs.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseAccumulating
	PhaseFull
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseAccumulating:
		return "accumulating"
	case PhaseFull:
		return "full"
	default:
		return "unknown"
	}
}

// GenerationResult describes one RequestGeneration call. Ran is false when the limit was
// already reached and nothing was generated.
type GenerationResult struct {
	Ran          bool
	Generated    int
	Remaining    int
	LimitReached bool
	Date         time.Time
	Batch        []models.TestingRecord
}

// State is one session's accumulated records. It is not safe for concurrent use; the owner
// serialises calls.
type State struct {
	generator *generator.Generator
	clock     Clock
	records   []models.TestingRecord
	runCount  int
	startDate time.Time
}

// New returns an empty state whose first batch is dated LookbackDays before today. A nil
// clock uses time.Now.
func New(gen *generator.Generator, clock Clock) *State {
	if clock == nil {
		clock = time.Now
	}

	s := &State{generator: gen, clock: clock}
	s.Reset()
	return s
}

// Restore rebuilds a state from stored values. runCount is clamped to [0, MaxRuns].
func Restore(
	gen *generator.Generator,
	clock Clock,
	startDate time.Time,
	runCount int,
	records []models.TestingRecord,
) *State {
	if clock == nil {
		clock = time.Now
	}

	runCount = max(0, min(runCount, MaxRuns))

	return &State{
		generator: gen,
		clock:     clock,
		records:   append([]models.TestingRecord(nil), records...),
		runCount:  runCount,
		startDate: utils.Day(startDate),
	}
}

// InitialDate is the cursor date of a fresh session created at now.
func InitialDate(now time.Time) time.Time {
	return utils.AddDays(now, -LookbackDays)
}

// RequestGeneration appends one batch dated at the cursor and advances the cursor by a day.
// Once MaxRuns batches exist it does nothing and reports the limit.
func (s *State) RequestGeneration() GenerationResult {
	if s.runCount >= MaxRuns {
		return GenerationResult{LimitReached: true}
	}

	date := s.CursorDate()
	batch := s.generator.GenerateBatch(s.generator.BatchSize(), date)

	s.runCount++
	for i := range batch {
		batch[i].Run = s.runCount
	}
	s.records = append(s.records, batch...)

	return GenerationResult{
		Ran:          true,
		Generated:    len(batch),
		Remaining:    s.Remaining(),
		LimitReached: s.runCount >= MaxRuns,
		Date:         date,
		Batch:        batch,
	}
}

func (s *State) Reset() {
	s.records = nil
	s.runCount = 0
	s.startDate = InitialDate(s.clock())
}

func (s *State) Summarize() models.Summary {
	return Summarize(s.records)
}

func (s *State) Records() []models.TestingRecord {
	return append([]models.TestingRecord{}, s.records...)
}

func (s *State) Len() int {
	return len(s.records)
}

func (s *State) RunCount() int {
	return s.runCount
}

func (s *State) Remaining() int {
	return MaxRuns - s.runCount
}

func (s *State) StartDate() time.Time {
	return s.startDate
}

func (s *State) CursorDate() time.Time {
	return utils.AddDays(s.startDate, s.runCount)
}

func (s *State) Phase() Phase {
	switch {
	case s.runCount == 0:
		return PhaseEmpty
	case s.runCount >= MaxRuns:
		return PhaseFull
	default:
		return PhaseAccumulating
	}
}
