package seed

import (
	"context"
	"pillar2/internal/generator"
	"pillar2/internal/logger"
	. "pillar2/internal/models"
	"pillar2/internal/repositories"
	"pillar2/internal/session"
	"time"
)

// Seed stores a demo session with the given number of runs already generated and returns
// its id.
func Seed(
	ctx context.Context,
	repo repositories.SessionRepository,
	gen *generator.Generator,
	runs int,
	log logger.Logger,
) (string, error) {
	log = log.Function("seed")
	log.Info("Seeding development session", "runs", runs)

	now := time.Now()
	state := session.New(gen, func() time.Time { return now })

	stored := &Session{StartDate: state.StartDate(), LastSeenAt: now.UTC()}
	if err := repo.Create(ctx, stored); err != nil {
		return "", log.Err("failed to create session", err)
	}

	for range runs {
		result := state.RequestGeneration()
		if !result.Ran {
			log.Info("Session full, stopping", "runs", state.RunCount())
			break
		}

		if err := repo.AppendBatch(ctx, stored.ID, state.RunCount(), result.Batch); err != nil {
			return "", log.Err("failed to store batch", err, "run", state.RunCount())
		}
		log.Info("Seeded run", "run", state.RunCount(), "records", result.Generated)
	}

	log.Info("Seeding complete", "sessionID", stored.ID, "records", state.Len())
	return stored.ID, nil
}
