package matchmaking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielrhuynh/cs-446-ece-452/internal/dependencies/clock"
	"github.com/danielrhuynh/cs-446-ece-452/internal/dependencies/random"
	"github.com/danielrhuynh/cs-446-ece-452/internal/metrics"
	"github.com/danielrhuynh/cs-446-ece-452/internal/model"
	"github.com/danielrhuynh/cs-446-ece-452/internal/services/directory"
	"github.com/danielrhuynh/cs-446-ece-452/internal/services/projection"
	"github.com/danielrhuynh/cs-446-ece-452/internal/storage"
)

// maxCodeAttempts bounds code generation retries on collision
const maxCodeAttempts = 10

// Controller orchestrates the directory and the session store into the
// create / join / get use cases. It holds no state of its own; every
// request is an independent unit of work against the store, and the
// single-winner join guarantee comes entirely from the store's atomic
// conditional update.
type Controller struct {
	storage    storage.Storage
	directory  *directory.Service
	projection *projection.Service
	clock      clock.Clock
	random     random.Random
	recorder   metrics.Recorder
	logger     *slog.Logger
}

// NewController creates a new matchmaking controller
func NewController(
	storage storage.Storage,
	directory *directory.Service,
	projection *projection.Service,
	clock clock.Clock,
	random random.Random,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    storage,
		directory:  directory,
		projection: projection,
		clock:      clock,
		random:     random,
		recorder:   recorder,
		logger:     logger,
	}
}

// Create resolves the caller's player and opens a new session with a
// freshly generated code. Code collisions trigger regeneration rather
// than failure, bounded to maxCodeAttempts.
func (c *Controller) Create(ctx context.Context, deviceID, displayName, deviceToken string) (*model.Session, error) {
	player, err := c.directory.Resolve(ctx, deviceID, displayName, deviceToken)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		session := &model.Session{
			Code:      model.SessionCode(c.random.String(model.CodeLength, model.CodeAlphabet)),
			Status:    model.SessionStatusOpen,
			Player1ID: player.ID,
			CreatedAt: c.clock.Now(),
		}

		err := c.storage.CreateSession(ctx, session)
		if errors.Is(err, model.ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		c.recorder.RecordSessionCreated()
		c.logger.Info("session created",
			slog.String("code", string(session.Code)),
			slog.String("player_1_id", string(player.ID)),
		)
		return session, nil
	}

	return nil, fmt.Errorf("no unused session code after %d attempts", maxCodeAttempts)
}

// Join resolves the caller's player and attempts the single-winner join
// transition against the given code. Every rule failure surfaces as
// model.ErrJoinFailed with no indication of which condition blocked it.
func (c *Controller) Join(ctx context.Context, deviceID, displayName, deviceToken, rawCode string) (*model.Session, error) {
	code := model.NormalizeCode(rawCode)
	if !model.ValidCode(code) {
		return nil, model.ErrInvalidCode
	}

	player, err := c.directory.Resolve(ctx, deviceID, displayName, deviceToken)
	if err != nil {
		return nil, err
	}

	session, err := c.storage.JoinSession(ctx, code, player.ID)
	if err != nil {
		if errors.Is(err, model.ErrJoinFailed) {
			c.recorder.RecordJoin(metrics.OutcomeRejected)
		}
		return nil, err
	}

	c.recorder.RecordJoin(metrics.OutcomeWon)
	c.logger.Info("session joined",
		slog.String("code", string(session.Code)),
		slog.String("player_2_id", string(player.ID)),
	)
	return session, nil
}

// Get fetches a session by code and expands its players for polling
// clients. Malformed codes read as not found.
func (c *Controller) Get(ctx context.Context, rawCode string) (*model.SessionWithPlayers, error) {
	code := model.NormalizeCode(rawCode)
	if !model.ValidCode(code) {
		return nil, model.ErrSessionNotFound
	}

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}

	return c.projection.Expand(ctx, session)
}
