package commands

import (
	"context"
	"log/slog"
	"sync"

	"condo-reservations/internal/domain/reservation"
	"condo-reservations/internal/usecase/shared"
)

// Effects delivers audit records and notifications after commit. Delivery is
// detached from the request and its failures are only logged.
type Effects struct {
	audit    shared.AuditSink
	notifier shared.Notifier
	logger   *slog.Logger
	wg       sync.WaitGroup
}

func NewEffects(audit shared.AuditSink, notifier shared.Notifier, logger *slog.Logger) *Effects {
	return &Effects{
		audit:    audit,
		notifier: notifier,
		logger:   logger,
	}
}

func (e *Effects) Publish(ctx context.Context, r *reservation.Reservation, tr reservation.Transition, description string) {
	detached := context.WithoutCancel(ctx)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		entry := shared.AuditEntry{
			ActorID:       tr.ActorID,
			Action:        tr.Action,
			ReservationID: r.ID(),
			At:            tr.At,
			Description:   description,
		}
		if err := e.audit.Record(detached, entry); err != nil {
			e.logger.Warn("audit record failed",
				"reservation_id", r.ID().String(),
				"action", tr.Action.String(),
				"error", err.Error())
		}

		if !shared.ShouldNotify(tr.To) {
			return
		}
		note := shared.Notification{
			ReservationID: r.ID(),
			RequesterID:   r.RequesterID(),
			ResourceID:    r.ResourceID(),
			Status:        tr.To,
			Reason:        tr.Reason,
			At:            tr.At,
		}
		if err := e.notifier.Notify(detached, note); err != nil {
			e.logger.Warn("notification failed",
				"reservation_id", r.ID().String(),
				"status", tr.To.String(),
				"error", err.Error())
		}
	}()
}

// Wait blocks until every published effect has been delivered or has failed.
func (e *Effects) Wait() {
	e.wg.Wait()
}
