package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lincyaw/storefront/internal/domain/order"
	"github.com/lincyaw/storefront/internal/domain/shared"
)

// GormOrderRepository implements the order Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).Where("user_id = ?", userID),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) FindByReference(ctx context.Context, reference string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Where("gateway_reference = ?", reference).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&order.Order{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&order.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// salesByDateRow is the raw scan target for the daily sales aggregate.
// The day is scanned as text so the query works on both postgres and
// sqlite.
type salesByDateRow struct {
	Day     string          `gorm:"column:day"`
	Orders  int64           `gorm:"column:orders"`
	Revenue decimal.Decimal `gorm:"column:revenue"`
}

func (r *GormOrderRepository) SalesByDate(ctx context.Context, from, to time.Time) ([]order.SalesByDateRow, error) {
	var raw []salesByDateRow
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Select("DATE(paid_at) AS day, COUNT(*) AS orders, SUM(total_price) AS revenue").
		Where("is_paid = ? AND paid_at >= ? AND paid_at < ?", true, from, to.AddDate(0, 0, 1)).
		Group("DATE(paid_at)").
		Order("day ASC").
		Scan(&raw).Error; err != nil {
		return nil, err
	}

	rows := make([]order.SalesByDateRow, 0, len(raw))
	for _, row := range raw {
		day := row.Day
		if len(day) > 10 {
			day = day[:10]
		}
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("unexpected day value %q: %w", row.Day, err)
		}
		rows = append(rows, order.SalesByDateRow{
			Date:    date,
			Orders:  row.Orders,
			Revenue: row.Revenue,
		})
	}
	return rows, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "is_paid":
			query = query.Where("is_paid = ?", value)
		case "is_delivered":
			query = query.Where("is_delivered = ?", value)
		}
	}
	return query
}

var _ order.Repository = (*GormOrderRepository)(nil)
