package sessionController

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"pillar2/internal/export"
	"pillar2/internal/generator"
	"pillar2/internal/logger"
	. "pillar2/internal/models"
	"pillar2/internal/repositories"
	"pillar2/internal/services"
	"pillar2/internal/session"
	"pillar2/internal/utils"
	"sync"
	"time"
)

const (
	MESSAGE_LIMIT_REACHED = "Reached maximum allowed runs (generated 1 week of data)"
	MESSAGE_RESET         = "Session data reset."

	DEFAULT_PAGE_SIZE = 50
	MAX_PAGE_SIZE     = 500
)

var ErrSessionNotFound = repositories.ErrSessionNotFound

// WSManager interface for WebSocket operations to avoid import cycles
type WSManager interface {
	SendSessionUpdate(sessionID string, data map[string]any)
	SendSessionReset(sessionID string)
}

type SessionView struct {
	ID         string  `json:"id"`
	RunCount   int     `json:"runCount"`
	Remaining  int     `json:"remaining"`
	Phase      string  `json:"phase"`
	StartDate  string  `json:"startDate"`
	CursorDate string  `json:"cursorDate"`
	Summary    Summary `json:"summary"`
}

type RunResult struct {
	Message      string  `json:"message"`
	Remaining    int     `json:"remaining"`
	Generated    int     `json:"generated"`
	Date         string  `json:"date,omitempty"`
	LimitReached bool    `json:"limitReached"`
	Summary      Summary `json:"summary"`
}

type RecordsPage struct {
	Records []TestingRecord `json:"records"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

type Preview struct {
	Columns []string `json:"columns"`
	Lines   []string `json:"lines"`
	Total   int      `json:"total"`
}

type SessionController struct {
	sessionRepo        repositories.SessionRepository
	transactionService *services.TransactionService
	generator          *generator.Generator
	wsManager          WSManager
	clock              session.Clock
	ttl                time.Duration
	log                logger.Logger

	locks      sync.Map
	generateMu sync.Mutex
}

func New(
	sessionRepo repositories.SessionRepository,
	transactionService *services.TransactionService,
	gen *generator.Generator,
	wsManager WSManager,
	clock session.Clock,
	ttl time.Duration,
) *SessionController {
	if clock == nil {
		clock = time.Now
	}

	return &SessionController{
		sessionRepo:        sessionRepo,
		transactionService: transactionService,
		generator:          gen,
		wsManager:          wsManager,
		clock:              clock,
		ttl:                ttl,
		log:                logger.New("SessionController"),
	}
}

func RunMessage(remaining int) string {
	if remaining <= 0 {
		return MESSAGE_LIMIT_REACHED
	}
	return fmt.Sprintf("%d runs remaining.", remaining)
}

func (sc *SessionController) lock(sessionID string) func() {
	value, _ := sc.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Start creates an empty session dated LookbackDays before today.
func (sc *SessionController) Start(ctx context.Context) (*SessionView, error) {
	log := sc.log.Function("Start")

	now := sc.clock()
	stored := &Session{
		StartDate:  session.InitialDate(now),
		LastSeenAt: now.UTC(),
	}
	if err := sc.sessionRepo.Create(ctx, stored); err != nil {
		return nil, log.Err("failed to create session", err)
	}

	log.Info("Started session", "sessionID", stored.ID)
	return sc.view(stored.ID, session.Restore(sc.generator, sc.clock, stored.StartDate, 0, nil)), nil
}

// Resolve returns sessionID when it names a live session and refreshes its idle timer.
// Unknown or empty ids get a fresh session.
func (sc *SessionController) Resolve(ctx context.Context, sessionID string) (string, bool, error) {
	log := sc.log.Function("Resolve")

	if sessionID != "" {
		_, err := sc.sessionRepo.GetByID(ctx, sessionID)
		switch {
		case err == nil:
			if err := sc.sessionRepo.Touch(ctx, sessionID, sc.clock()); err != nil {
				log.Warn("failed to touch session", "sessionID", sessionID, "error", err)
			}
			return sessionID, false, nil
		case !errors.Is(err, ErrSessionNotFound):
			return "", false, log.Err("failed to resolve session", err, "sessionID", sessionID)
		}
	}

	view, err := sc.Start(ctx)
	if err != nil {
		return "", false, err
	}
	return view.ID, true, nil
}

func (sc *SessionController) Get(ctx context.Context, sessionID string) (*SessionView, error) {
	state, err := sc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sc.view(sessionID, state), nil
}

// Run generates the next day's batch. At the limit nothing is generated or stored.
func (sc *SessionController) Run(ctx context.Context, sessionID string) (*RunResult, error) {
	log := sc.log.Function("Run")

	unlock := sc.lock(sessionID)
	defer unlock()

	state, err := sc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sc.generateMu.Lock()
	result := state.RequestGeneration()
	sc.generateMu.Unlock()

	summary := state.Summarize()

	if !result.Ran {
		log.Debug("Run ignored at limit", "sessionID", sessionID)
		return &RunResult{
			Message:      MESSAGE_LIMIT_REACHED,
			Remaining:    0,
			LimitReached: true,
			Summary:      summary,
		}, nil
	}

	err = sc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		if err := sc.sessionRepo.AppendBatch(txCtx, sessionID, state.RunCount(), result.Batch); err != nil {
			return err
		}
		return sc.sessionRepo.Touch(txCtx, sessionID, sc.clock())
	})
	if err != nil {
		return nil, log.Err("failed to store batch", err, "sessionID", sessionID)
	}

	sc.cacheSummary(ctx, sessionID, summary)

	response := &RunResult{
		Message:      RunMessage(result.Remaining),
		Remaining:    result.Remaining,
		Generated:    result.Generated,
		Date:         utils.FormatDate(result.Date),
		LimitReached: result.LimitReached,
		Summary:      summary,
	}

	sc.wsManager.SendSessionUpdate(sessionID, map[string]any{
		"remaining":    response.Remaining,
		"generated":    response.Generated,
		"date":         response.Date,
		"limitReached": response.LimitReached,
		"summary":      summary,
	})

	log.Info("Generated batch", "sessionID", sessionID, "generated", result.Generated, "date", response.Date)
	return response, nil
}

func (sc *SessionController) Reset(ctx context.Context, sessionID string) (*SessionView, error) {
	log := sc.log.Function("Reset")

	unlock := sc.lock(sessionID)
	defer unlock()

	state, err := sc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state.Reset()

	err = sc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		if err := sc.sessionRepo.Reset(txCtx, sessionID, state.StartDate()); err != nil {
			return err
		}
		return sc.sessionRepo.Touch(txCtx, sessionID, sc.clock())
	})
	if err != nil {
		return nil, log.Err("failed to reset session", err, "sessionID", sessionID)
	}

	sc.cacheSummary(ctx, sessionID, state.Summarize())
	sc.wsManager.SendSessionReset(sessionID)

	log.Info("Reset session", "sessionID", sessionID)
	return sc.view(sessionID, state), nil
}

// Summary serves from the cache when possible and fills it on a miss. It holds the session
// lock so a fill never races a run or reset of the same session.
func (sc *SessionController) Summary(ctx context.Context, sessionID string) (*Summary, error) {
	unlock := sc.lock(sessionID)
	defer unlock()

	if cached, found := sc.sessionRepo.GetSummary(ctx, sessionID); found {
		return cached, nil
	}

	records, err := sc.records(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := session.Summarize(records)
	sc.cacheSummary(ctx, sessionID, summary)
	return &summary, nil
}

func (sc *SessionController) Records(
	ctx context.Context,
	sessionID string,
	query RecordsQuery,
) (*RecordsPage, error) {
	log := sc.log.Function("Records")

	if query.Limit <= 0 {
		query.Limit = DEFAULT_PAGE_SIZE
	}
	query.Limit = min(query.Limit, MAX_PAGE_SIZE)
	query.Offset = max(query.Offset, 0)

	if _, err := sc.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}

	records, err := sc.sessionRepo.GetRecordsPage(ctx, sessionID, query)
	if err != nil {
		return nil, log.Err("failed to get records page", err, "sessionID", sessionID)
	}

	total, err := sc.sessionRepo.CountRecords(ctx, sessionID)
	if err != nil {
		return nil, log.Err("failed to count records", err, "sessionID", sessionID)
	}

	return &RecordsPage{
		Records: records,
		Total:   total,
		Limit:   query.Limit,
		Offset:  query.Offset,
	}, nil
}

func (sc *SessionController) Preview(ctx context.Context, sessionID string) (*Preview, error) {
	unlock := sc.lock(sessionID)
	defer unlock()

	records, err := sc.records(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	lines, err := export.PreviewLines(records, export.PreviewSize)
	if err != nil {
		return nil, sc.log.Function("Preview").Err("failed to render preview", err, "sessionID", sessionID)
	}

	return &Preview{Columns: export.Columns, Lines: lines, Total: len(records)}, nil
}

func (sc *SessionController) CSV(ctx context.Context, sessionID string) ([]byte, error) {
	unlock := sc.lock(sessionID)
	defer unlock()

	records, err := sc.records(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	data, err := export.EncodeCSV(records)
	if err != nil {
		return nil, sc.log.Function("CSV").Err("failed to encode csv", err, "sessionID", sessionID)
	}

	return data, nil
}

func (sc *SessionController) Parquet(ctx context.Context, sessionID string) ([]byte, error) {
	unlock := sc.lock(sessionID)
	defer unlock()

	records, err := sc.records(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteParquet(&buf, records); err != nil {
		return nil, sc.log.Function("Parquet").Err("failed to encode parquet", err, "sessionID", sessionID)
	}

	return buf.Bytes(), nil
}

// SweepExpired deletes sessions idle for longer than the configured ttl.
func (sc *SessionController) SweepExpired(ctx context.Context) (int64, error) {
	log := sc.log.Function("SweepExpired")

	cutoff := sc.clock().Add(-sc.ttl)

	var ids []string
	err := sc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		var err error
		ids, err = sc.sessionRepo.DeleteExpired(txCtx, cutoff)
		return err
	})
	if err != nil {
		return 0, log.Err("failed to sweep expired sessions", err, "cutoff", cutoff)
	}

	for _, id := range ids {
		sc.locks.Delete(id)
	}

	if len(ids) > 0 {
		log.Info("Swept expired sessions", "deleted", len(ids), "cutoff", cutoff)
	}
	return int64(len(ids)), nil
}

func (sc *SessionController) load(ctx context.Context, sessionID string) (*session.State, error) {
	stored, err := sc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	records, err := sc.sessionRepo.GetRecords(ctx, sessionID)
	if err != nil {
		return nil, sc.log.Function("load").Err("failed to load records", err, "sessionID", sessionID)
	}

	return session.Restore(sc.generator, sc.clock, stored.StartDate, stored.RunCount, records), nil
}

func (sc *SessionController) records(ctx context.Context, sessionID string) ([]TestingRecord, error) {
	if _, err := sc.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}

	records, err := sc.sessionRepo.GetRecords(ctx, sessionID)
	if err != nil {
		return nil, sc.log.Function("records").Err("failed to load records", err, "sessionID", sessionID)
	}
	return records, nil
}

func (sc *SessionController) cacheSummary(ctx context.Context, sessionID string, summary Summary) {
	if err := sc.sessionRepo.SetSummary(ctx, sessionID, summary); err != nil {
		sc.log.Function("cacheSummary").
			Warn("failed to cache summary", "sessionID", sessionID, "error", err)
	}
}

func (sc *SessionController) view(sessionID string, state *session.State) *SessionView {
	return &SessionView{
		ID:         sessionID,
		RunCount:   state.RunCount(),
		Remaining:  state.Remaining(),
		Phase:      state.Phase().String(),
		StartDate:  utils.FormatDate(state.StartDate()),
		CursorDate: utils.FormatDate(state.CursorDate()),
		Summary:    state.Summarize(),
	}
}
