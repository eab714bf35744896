package audit

import (
	"context"
	"log/slog"

	"condo-reservations/internal/infra"
	"condo-reservations/internal/infra/db"
	"condo-reservations/internal/pkg/pgconv"
	"condo-reservations/internal/usecase/shared"
)

// PostgresSink appends one audit_log row per booking change.
type PostgresSink struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewPostgresSink(dbtx db.DBTX, logger *slog.Logger) *PostgresSink {
	return &PostgresSink{db: dbtx, logger: logger}
}

var _ shared.AuditSink = (*PostgresSink)(nil)

func (s *PostgresSink) Record(ctx context.Context, entry shared.AuditEntry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO audit_log (actor_id, action, reservation_id, description, occurred_at)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ActorID,
		entry.Action.String(),
		entry.ReservationID,
		entry.Description,
		pgconv.TimeToPgtype(entry.At),
	)
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.ClassifyPgError(err), "failed to record audit entry", err)
	}
	return nil
}

// LogSink writes audit entries to the structured log, for the in-memory storage mode.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

var _ shared.AuditSink = (*LogSink)(nil)

func (s *LogSink) Record(ctx context.Context, entry shared.AuditEntry) error {
	s.logger.InfoContext(ctx, "audit",
		slog.String("actor_id", entry.ActorID.String()),
		slog.String("action", entry.Action.String()),
		slog.String("reservation_id", entry.ReservationID.String()),
		slog.Time("at", entry.At),
		slog.String("description", entry.Description),
	)
	return nil
}
