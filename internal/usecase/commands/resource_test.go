//go:build unit

package commands_test

import (
	"context"
	"testing"

	"condo-reservations/internal/domain/resource"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/usecase/commands"
	"condo-reservations/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 管理者が施設を登録できる", func(t *testing.T) {
		f := newFixture(t)
		rules := resource.DefaultRules("  Rooftop   Grill ", decimal.RequireFromString("12.5"))

		view, err := f.resources.Create(ctx, builder.NewAdministrator(), rules)
		require.NoError(t, err)
		assert.Equal(t, "Rooftop Grill", view.Name)
		assert.Equal(t, "12.50", view.HourlyRate.StringFixed(2))
		assert.Equal(t, resource.StatusActive.String(), view.Status)
		assert.Equal(t, resource.DefaultOpeningTime, view.OpeningTime)
	})

	t.Run("住民は施設を管理できない", func(t *testing.T) {
		f := newFixture(t)
		res := f.seedResource(t, builder.NewResourceBuilder())
		resident := builder.NewResident()
		rules := builder.NewResourceBuilder().Rules

		_, err := f.resources.Create(ctx, resident, rules)
		assert.ErrorIs(t, err, resource.ErrAdministratorOnly)
		_, err = f.resources.Update(ctx, resident, res.ID(), rules)
		assert.True(t, errs.Is(err, errs.ErrPermissionDenied))
		_, err = f.resources.Deactivate(ctx, resident, res.ID())
		assert.True(t, errs.Is(err, errs.ErrPermissionDenied))
	})

	t.Run("大文字小文字違いの同名はValidation", func(t *testing.T) {
		f := newFixture(t)
		f.seedResource(t, builder.NewResourceBuilder().WithName("Pool"))

		_, err := f.resources.Create(ctx, builder.NewAdministrator(), resource.DefaultRules("POOL", decimal.Zero))
		assert.ErrorIs(t, err, resource.ErrDuplicateName)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("不正なルールは登録できない", func(t *testing.T) {
		f := newFixture(t)
		rules := builder.NewResourceBuilder().Rules
		rules.Capacity = 0

		_, err := f.resources.Create(ctx, builder.NewAdministrator(), rules)
		assert.ErrorIs(t, err, resource.ErrInvalidCapacity)
	})

	t.Run("更新は自分の名前と衝突しない", func(t *testing.T) {
		f := newFixture(t)
		res := f.seedResource(t, builder.NewResourceBuilder().WithName("Gym"))
		rules := builder.NewResourceBuilder().WithName("gym").WithCapacity(12).Rules

		view, err := f.resources.Update(ctx, builder.NewAdministrator(), res.ID(), rules)
		require.NoError(t, err)
		assert.Equal(t, "gym", view.Name)
		assert.Equal(t, 12, view.Capacity)
	})

	t.Run("更新しても既存予約の料金は変わらない", func(t *testing.T) {
		f := newFixture(t)
		res := f.seedResource(t, builder.NewResourceBuilder())
		booked := f.book(t, res, "10:00", "12:00")

		rules := builder.NewResourceBuilder().WithName(res.Name()).WithHourlyRate("80.00").Rules
		_, err := f.resources.Update(ctx, builder.NewAdministrator(), res.ID(), rules)
		require.NoError(t, err)

		view, err := f.workflow.Approve(ctx, builder.NewAdministrator(), booked.ID)
		require.NoError(t, err)
		assert.True(t, booked.Cost.Equal(view.Cost))
	})

	t.Run("存在しない施設の停止はNotFound", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.resources.Deactivate(ctx, builder.NewAdministrator(), builder.NewResourceBuilder().ID)
		assert.ErrorIs(t, err, resource.ErrResourceNotFound)
	})

	t.Run("停止後は予約できない", func(t *testing.T) {
		f := newFixture(t)
		res := f.seedResource(t, builder.NewResourceBuilder())

		view, err := f.resources.Deactivate(ctx, builder.NewAdministrator(), res.ID())
		require.NoError(t, err)
		assert.Equal(t, resource.StatusInactive.String(), view.Status)

		in := commands.CreateReservationInput{ResourceID: res.ID(), Request: builder.NewReservationBuilder().BuildRequest()}
		_, err = f.reservations.Create(ctx, builder.NewResident(), in)
		assert.ErrorIs(t, err, resource.ErrResourceInactive)
	})
}
