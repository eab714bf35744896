package outbox

import (
	"context"
	"encoding/json"
	"log/slog"

	"condo-reservations/internal/infra"
	"condo-reservations/internal/infra/db"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/pkg/pgconv"
	"condo-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	JobKind      = "reservation_status"
	StatusQueued = "queued"
)

type payload struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	RequesterID   uuid.UUID `json:"requester_id"`
	ResourceID    uuid.UUID `json:"resource_id"`
	Status        string    `json:"status"`
	Reason        string    `json:"reason,omitempty"`
}

// Topic names the delivery channel of a status change, e.g. "reservation.confirmed".
func Topic(n shared.Notification) string {
	return "reservation." + n.Status.String()
}

// Notifier queues notification jobs for an external delivery worker.
type Notifier struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewNotifier(dbtx db.DBTX, logger *slog.Logger) *Notifier {
	return &Notifier{db: dbtx, logger: logger}
}

var _ shared.Notifier = (*Notifier)(nil)

func (n *Notifier) Notify(ctx context.Context, note shared.Notification) error {
	body, err := json.Marshal(payload{
		ReservationID: note.ReservationID,
		RequesterID:   note.RequesterID,
		ResourceID:    note.ResourceID,
		Status:        note.Status.String(),
		Reason:        note.Reason,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode notification payload")
	}

	_, err = n.db.Exec(ctx, `
		INSERT INTO notification_jobs (id, kind, topic, payload, run_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(),
		JobKind,
		Topic(note),
		body,
		pgconv.TimeToPgtype(note.At),
		StatusQueued,
	)
	if err != nil {
		return infra.WrapRepoErr(n.logger, infra.ClassifyPgError(err), "failed to create notification job", err)
	}
	return nil
}

// LogNotifier writes notifications to the structured log, for the in-memory storage mode.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

var _ shared.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) Notify(ctx context.Context, note shared.Notification) error {
	n.logger.InfoContext(ctx, "notification",
		slog.String("topic", Topic(note)),
		slog.String("reservation_id", note.ReservationID.String()),
		slog.String("requester_id", note.RequesterID.String()),
		slog.String("reason", note.Reason),
	)
	return nil
}
