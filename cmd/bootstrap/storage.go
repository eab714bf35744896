package bootstrap

import (
	"log/slog"

	"condo-reservations/internal/infra/audit"
	"condo-reservations/internal/infra/memstore"
	"condo-reservations/internal/infra/outbox"
	"condo-reservations/internal/infra/readstore"
	"condo-reservations/internal/infra/uow"
	"condo-reservations/internal/pkg/config"
	"condo-reservations/internal/usecase/queries"
	"condo-reservations/internal/usecase/shared"

	"go.uber.org/fx"
)

var StorageModule = fx.Module("storage",
	fx.Provide(
		NewStorage,
	),
)

// Storage is every persistence port, backed by one store.
type Storage struct {
	fx.Out

	UoW          shared.UnitOfWork
	Resources    queries.ResourceReadStore
	Reservations queries.ReservationReadStore
	Audit        shared.AuditSink
	Notifier     shared.Notifier
}

// NewStorage selects the backend from BOOKING_STORAGE. The memory backend keeps
// audit entries and notifications in the log only.
func NewStorage(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Storage, error) {
	if cfg.Booking.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage; all data is lost on restart")
		store := memstore.NewStore()
		return Storage{
			UoW:          memstore.NewUoW(store, logger),
			Resources:    memstore.NewResourceReadStore(store),
			Reservations: memstore.NewReservationReadStore(store),
			Audit:        audit.NewLogSink(logger),
			Notifier:     outbox.NewLogNotifier(logger),
		}, nil
	}

	pool, err := NewDB(lc, cfg)
	if err != nil {
		return Storage{}, err
	}
	return Storage{
		UoW:          uow.NewPostgresUoW(pool, logger),
		Resources:    readstore.NewResourceReadStore(pool, logger),
		Reservations: readstore.NewReservationReadStore(pool, logger),
		Audit:        audit.NewPostgresSink(pool, logger),
		Notifier:     outbox.NewNotifier(pool, logger),
	}, nil
}
