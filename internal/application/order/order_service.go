package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lincyaw/storefront/internal/domain/cart"
	"github.com/lincyaw/storefront/internal/domain/catalog"
	"github.com/lincyaw/storefront/internal/domain/order"
	"github.com/lincyaw/storefront/internal/domain/shared"
	"github.com/lincyaw/storefront/internal/domain/shared/valueobject"
)

// Service handles order-related business operations
type Service struct {
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
	cartStore   cart.Store
	logger      *zap.Logger
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository, productRepo catalog.ProductRepository, cartStore cart.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartStore:   cartStore,
		logger:      logger,
	}
}

// Create places an order. Unit prices are re-fetched from the catalog
// per product id; client-supplied prices are never trusted. Any unknown
// product id aborts the whole request, so no partial order is ever
// persisted. On success the user's cart is cleared.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, input := range req.Items {
		product, ok := byID[input.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND",
				fmt.Sprintf("Product %s does not exist", input.ProductID))
		}
		if !product.IsActive() {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE",
				fmt.Sprintf("Product %s is not available", product.Slug))
		}

		item, err := order.NewItem(product, input.Quantity, catalog.VariantSelection(input.Variants))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	address, err := toAddress(req.ShippingAddress)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	o, err := order.NewOrder(userID, items, address, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	// The cart has been converted into an order; a stale cart is not
	// worth failing the checkout over.
	if err := s.cartStore.Delete(ctx, userID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// GetByID retrieves an order. Non-admin callers may only read their
// own orders.
func (s *Service) GetByID(ctx context.Context, orderID, requesterID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !o.BelongsTo(requesterID) {
		return nil, shared.ErrForbidden
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// ListMine retrieves the requesting user's orders
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := buildOrderFilter(filter)
	domainFilter.Filters["user_id"] = userID

	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return toOrderResponses(orders), total, nil
}

// ListAll retrieves all orders (admin)
func (s *Service) ListAll(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := buildOrderFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return toOrderResponses(orders), total, nil
}

// MarkDelivered marks a paid order as delivered (admin)
func (s *Service) MarkDelivered(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.MarkDelivered(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// MarkPaid records an out-of-band payment (admin override)
func (s *Service) MarkPaid(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.MarkPaidManually(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// SalesByDate aggregates paid orders and revenue per day over the
// requested range (admin)
func (s *Service) SalesByDate(ctx context.Context, req SalesByDateRequest) ([]SalesByDateResponse, error) {
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "from must be formatted YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "to must be formatted YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_DATE", "to cannot be before from")
	}

	rows, err := s.orderRepo.SalesByDate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]SalesByDateResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, SalesByDateResponse{
			Date:    row.Date.Format("2006-01-02"),
			Orders:  row.Orders,
			Revenue: row.Revenue,
		})
	}
	return responses, nil
}

func toAddress(input AddressInput) (valueobject.Address, error) {
	opts := make([]valueobject.AddressOption, 0, 2)
	if input.State != "" {
		opts = append(opts, valueobject.WithState(input.State))
	}
	if input.Country != "" {
		opts = append(opts, valueobject.WithCountry(input.Country))
	}
	return valueobject.NewAddress(input.Street, input.City, input.PostalCode, opts...)
}

func toOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}

func buildOrderFilter(filter OrderListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Paid != nil {
		domainFilter.Filters["is_paid"] = *filter.Paid
	}
	if filter.Delivered != nil {
		domainFilter.Filters["is_delivered"] = *filter.Delivered
	}
	return domainFilter
}
