package purchases

import "context"

type (
	Storage interface {
		CreatePurchase(ctx context.Context, purchase Purchase) (*Purchase, error)
		GetPurchase(ctx context.Context, criteria GetCriteria) (*Purchase, error)
		ListPurchases(ctx context.Context, criteria ListCriteria) ([]*Purchase, error)
		// UpdatePurchase возвращает nil, nil если ни одна запись не подошла под критерии
		UpdatePurchase(ctx context.Context, criteria GetCriteria, params UpdateParams) (*Purchase, error)
		DeletePurchase(ctx context.Context, criteria GetCriteria) (bool, error)
	}
)
