package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"jembox-bot/internal/stories/purchases"
)

const purchasesTable = "purchases"

var purchaseRowFields = fields(purchaseRow{})

type purchaseRow struct {
	ID              int64     `db:"id"`
	Username        string    `db:"username"`
	TelegramID      int64     `db:"telegram_id"`
	Service         string    `db:"service"`
	Plan            string    `db:"plan"`
	Duration        string    `db:"duration"`
	Price           string    `db:"price"`
	Country         string    `db:"country"`
	PaymentMethod   string    `db:"payment_method"`
	Screenshot      string    `db:"screenshot"`
	Status          string    `db:"status"`
	AccountEmail    *string   `db:"account_email"`
	AccountPassword *string   `db:"account_password"`
	ApprovedBy      *string   `db:"approved_by"`
	RejectionReason *string   `db:"rejection_reason"`
	RejectedBy      *string   `db:"rejected_by"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (p purchaseRow) ToModel() *purchases.Purchase {
	return &purchases.Purchase{
		ID:              p.ID,
		Username:        p.Username,
		TelegramID:      p.TelegramID,
		Service:         p.Service,
		Plan:            p.Plan,
		Duration:        p.Duration,
		Price:           p.Price,
		Country:         p.Country,
		PaymentMethod:   p.PaymentMethod,
		Screenshot:      p.Screenshot,
		Status:          purchases.Status(p.Status),
		AccountEmail:    p.AccountEmail,
		AccountPassword: p.AccountPassword,
		ApprovedBy:      p.ApprovedBy,
		RejectionReason: p.RejectionReason,
		RejectedBy:      p.RejectedBy,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (s *storageImpl) CreatePurchase(ctx context.Context, purchase purchases.Purchase) (*purchases.Purchase, error) {
	now := s.now()

	params := map[string]interface{}{
		"username":       purchase.Username,
		"telegram_id":    purchase.TelegramID,
		"service":        purchase.Service,
		"plan":           purchase.Plan,
		"duration":       purchase.Duration,
		"price":          purchase.Price,
		"country":        purchase.Country,
		"payment_method": purchase.PaymentMethod,
		"screenshot":     purchase.Screenshot,
		"status":         string(purchases.StatusPending),
		"created_at":     now,
		"updated_at":     now,
	}

	q, args, err := s.stmpBuilder().
		Insert(purchasesTable).
		SetMap(params).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("result.LastInsertId: %w", err)
	}

	return s.GetPurchase(ctx, purchases.GetCriteria{ID: &id})
}

func (s *storageImpl) GetPurchase(ctx context.Context, criteria purchases.GetCriteria) (*purchases.Purchase, error) {
	query := s.stmpBuilder().
		Select(purchaseRowFields).
		From(purchasesTable).
		Limit(1)

	query = applyPurchaseCriteria(query, criteria)

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var p purchaseRow
	err = s.db.GetContext(ctx, &p, q, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}

	return p.ToModel(), nil
}

func (s *storageImpl) ListPurchases(ctx context.Context, criteria purchases.ListCriteria) ([]*purchases.Purchase, error) {
	query := s.stmpBuilder().
		Select(purchaseRowFields).
		From(purchasesTable)

	if criteria.Username != nil {
		query = query.Where(sq.Eq{"username": *criteria.Username})
	}
	if criteria.Status != nil {
		query = query.Where(sq.Eq{"status": string(*criteria.Status)})
	}
	if criteria.CreatedBefore != nil {
		query = query.Where(sq.Lt{"created_at": *criteria.CreatedBefore})
	}

	query = query.OrderBy("created_at DESC")

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []purchaseRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	result := make([]*purchases.Purchase, 0, len(rows))
	for _, p := range rows {
		result = append(result, p.ToModel())
	}

	return result, nil
}

// UpdatePurchase обновляет заявку по критериям. Если критерии включают статус,
// UPDATE срабатывает только пока запись в этом статусе — так обеспечивается
// ровно один переход pending -> approved/rejected.
func (s *storageImpl) UpdatePurchase(ctx context.Context, criteria purchases.GetCriteria, params purchases.UpdateParams) (*purchases.Purchase, error) {
	query := s.stmpBuilder().
		Update(purchasesTable).
		Set("updated_at", s.now())

	if params.Status != nil {
		query = query.Set("status", string(*params.Status))
	}
	if params.AccountEmail != nil {
		query = query.Set("account_email", *params.AccountEmail)
	}
	if params.AccountPassword != nil {
		query = query.Set("account_password", *params.AccountPassword)
	}
	if params.ApprovedBy != nil {
		query = query.Set("approved_by", *params.ApprovedBy)
	}
	if params.RejectionReason != nil {
		query = query.Set("rejection_reason", *params.RejectionReason)
	}
	if params.RejectedBy != nil {
		query = query.Set("rejected_by", *params.RejectedBy)
	}

	if criteria.ID != nil {
		query = query.Where(sq.Eq{"id": *criteria.ID})
	}
	if criteria.Status != nil {
		query = query.Where(sq.Eq{"status": string(*criteria.Status)})
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("result.RowsAffected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return s.GetPurchase(ctx, purchases.GetCriteria{ID: criteria.ID})
}

func (s *storageImpl) DeletePurchase(ctx context.Context, criteria purchases.GetCriteria) (bool, error) {
	query := s.stmpBuilder().Delete(purchasesTable)

	if criteria.ID != nil {
		query = query.Where(sq.Eq{"id": *criteria.ID})
	}
	if criteria.Status != nil {
		query = query.Where(sq.Eq{"status": string(*criteria.Status)})
	}

	q, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("build sql query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected: %w", err)
	}

	return affected > 0, nil
}

func applyPurchaseCriteria(query sq.SelectBuilder, criteria purchases.GetCriteria) sq.SelectBuilder {
	if criteria.ID != nil {
		query = query.Where(sq.Eq{"id": *criteria.ID})
	}
	if criteria.Status != nil {
		query = query.Where(sq.Eq{"status": string(*criteria.Status)})
	}
	return query
}
