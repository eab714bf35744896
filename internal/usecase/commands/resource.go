package commands

import (
	"context"
	"log/slog"

	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/domain/user"
	"condo-reservations/internal/infra/telemetry"
	"condo-reservations/internal/pkg/clock"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/usecase/queries"
	"condo-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

// ResourceCommands maintains the catalog. Every operation is administrator-only.
//go:generate mockgen -source=resource.go -destination=../../../tests/mock/commands/resource.go -package=commandsmock

type ResourceCommands interface {
	Create(ctx context.Context, actor user.Actor, rules resource.Rules) (*queries.ResourceView, error)
	Update(ctx context.Context, actor user.Actor, id uuid.UUID, rules resource.Rules) (*queries.ResourceView, error)
	Deactivate(ctx context.Context, actor user.Actor, id uuid.UUID) (*queries.ResourceView, error)
}

type resourceCommandsImpl struct {
	uow             shared.UnitOfWork
	resourceQueries queries.ResourceQueries
	clock           clock.Clock
	tracer          telemetry.Tracer
	logger          *slog.Logger
}

func NewResourceCommands(
	uow shared.UnitOfWork,
	resourceQueries queries.ResourceQueries,
	clk clock.Clock,
	tracer telemetry.Tracer,
	logger *slog.Logger,
) ResourceCommands {
	return &resourceCommandsImpl{
		uow:             uow,
		resourceQueries: resourceQueries,
		clock:           clk,
		tracer:          tracer,
		logger:          logger,
	}
}

func (c *resourceCommandsImpl) Create(ctx context.Context, actor user.Actor, rules resource.Rules) (view *queries.ResourceView, err error) {
	ctx, scope := c.tracer.NewScope(ctx, otelScopeName, otelScopeName+".CreateResource")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !actor.IsAdministrator() {
		return nil, resource.ErrAdministratorOnly
	}
	res, err := resource.NewResource(uuid.New(), rules, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureNameFree(ctx, tx, res.Name(), res.ID()); err != nil {
			return err
		}
		return tx.Resources().Create(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	scope.SetAttribute("resource.id", res.ID())
	c.logger.Info("resource created",
		"resource_id", res.ID().String(),
		"name", res.Name(),
		"actor_id", actor.ID().String())
	return c.resourceQueries.GetByID(ctx, res.ID())
}

// Update replaces the rules. Existing bookings keep the cost they were created with.
func (c *resourceCommandsImpl) Update(ctx context.Context, actor user.Actor, id uuid.UUID, rules resource.Rules) (view *queries.ResourceView, err error) {
	ctx, scope := c.tracer.NewScope(ctx, otelScopeName, otelScopeName+".UpdateResource")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	scope.SetAttribute("resource.id", id)

	if !actor.IsAdministrator() {
		return nil, resource.ErrAdministratorOnly
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Resources().FindByID(ctx, id)
		if err != nil {
			return err
		}
		next, err := current.Update(rules, c.clock.Now())
		if err != nil {
			return err
		}
		if err := ensureNameFree(ctx, tx, next.Name(), id); err != nil {
			return err
		}
		return tx.Resources().Update(ctx, next)
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("resource updated",
		"resource_id", id.String(),
		"actor_id", actor.ID().String())
	return c.resourceQueries.GetByID(ctx, id)
}

// Deactivate is the only removal: bookings keep pointing at the row.
func (c *resourceCommandsImpl) Deactivate(ctx context.Context, actor user.Actor, id uuid.UUID) (view *queries.ResourceView, err error) {
	ctx, scope := c.tracer.NewScope(ctx, otelScopeName, otelScopeName+".DeactivateResource")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	scope.SetAttribute("resource.id", id)

	if !actor.IsAdministrator() {
		return nil, resource.ErrAdministratorOnly
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Resources().FindByID(ctx, id)
		if err != nil {
			return err
		}
		return tx.Resources().Update(ctx, current.Deactivate(c.clock.Now()))
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("resource deactivated",
		"resource_id", id.String(),
		"actor_id", actor.ID().String())
	return c.resourceQueries.GetByID(ctx, id)
}

func ensureNameFree(ctx context.Context, tx shared.Tx, name string, self uuid.UUID) error {
	taken, err := tx.Resources().NameTaken(ctx, name, self)
	if err != nil {
		return err
	}
	if taken {
		return errs.Wrapf(resource.ErrDuplicateName, "%q", name)
	}
	return nil
}
