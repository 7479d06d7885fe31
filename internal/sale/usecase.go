package sale

import (
	"context"

	"github.com/afifurrozaq/tillpos/internal/sale/dto"
)

type UseCase interface {
	Checkout(ctx context.Context, input *dto.CheckoutInput) (int64, error)
}
