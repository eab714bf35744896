package response

import (
	"condo-reservations/internal/pkg/errs"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

// money is rendered with exactly two decimals so clients never see 1E+2 or 12.5.
var copyOptions = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				d, ok := src.(decimal.Decimal)
				if !ok {
					return nil, errs.New("expected decimal.Decimal")
				}
				return d.StringFixed(2), nil
			},
		},
	},
}

func copyView(dst, src any) error {
	if err := copier.CopyWithOption(dst, src, copyOptions); err != nil {
		return errs.Wrap(err, "map view to response")
	}
	return nil
}
