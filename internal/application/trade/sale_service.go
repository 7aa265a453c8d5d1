package trade

import (
	"context"

	"github.com/google/uuid"
	appactivity "github.com/stocker/backend/internal/application/activity"
	"github.com/stocker/backend/internal/application/txn"
	"github.com/stocker/backend/internal/domain/activity"
	"github.com/stocker/backend/internal/domain/trade"
	"go.uber.org/zap"
)

const modelSale = "sale"

// SaleService reads and deletes sales. Sales are created only by the
// client order engine on transition to Delivered.
type SaleService struct {
	sales   trade.SaleRepository
	scope   txn.TransactionScope
	metrics Recorder
	logger  *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(sales trade.SaleRepository, scope txn.TransactionScope, metrics Recorder, logger *zap.Logger) *SaleService {
	if metrics == nil {
		metrics = NopRecorder
	}
	return &SaleService{sales: sales, scope: scope, metrics: metrics, logger: logger}
}

// GetByID retrieves one sale with its lines
func (s *SaleService) GetByID(ctx context.Context, tenantID, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.sales.FindByIDForTenant(ctx, saleID, tenantID)
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// List retrieves the tenant's sales
func (s *SaleService) List(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) ([]SaleResponse, int64, error) {
	domainFilter := buildDomainFilter(filter)

	sales, err := s.sales.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.sales.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSaleResponses(sales), total, nil
}

// Delete removes a sale. An order-linked sale only detaches from its
// parent order; the order keeps the stock delta. A standalone sale
// restocks each sold line.
func (s *SaleService) Delete(ctx context.Context, tenantID, saleID uuid.UUID) error {
	var restocked int64
	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		sale, err := repos.SaleRepo().FindByIDForTenant(ctx, saleID, tenantID)
		if err != nil {
			return err
		}

		if sale.FromOrder && sale.OrderID != nil {
			order, err := repos.ClientOrderRepo().FindByIDForTenant(ctx, *sale.OrderID, tenantID)
			if err != nil && !isNotFound(err) {
				return err
			}
			if err == nil {
				order.DetachSale()
				if err := repos.ClientOrderRepo().Update(ctx, order); err != nil {
					return err
				}
			}
		}

		if sale.RestocksOnDelete() {
			ids := make([]uuid.UUID, 0, len(sale.Items))
			for _, line := range sale.Items {
				ids = append(ids, line.ItemID)
			}
			locked, err := lockItems(ctx, repos, ids, tenantID)
			if err != nil {
				return err
			}
			for _, line := range sale.Items {
				if err := locked[line.ItemID].Restock(line.SoldQuantity); err != nil {
					return err
				}
				if err := repos.ItemRepo().Update(ctx, locked[line.ItemID]); err != nil {
					return err
				}
				restocked += line.SoldQuantity
			}
		}

		if err := repos.SaleRepo().DeleteForTenant(ctx, sale.ID, tenantID); err != nil {
			return err
		}

		s.logger.Info("sale deleted",
			zap.String("tenant_id", tenantID.String()),
			zap.String("reference_id", sale.ReferenceID),
			zap.Bool("restocked", sale.RestocksOnDelete()))

		return appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionDeleted, modelSale, []string{sale.ReferenceID, sale.ClientName})
	})
	if err != nil {
		return err
	}

	if restocked > 0 {
		s.metrics.StockMovement(MovementIn, restocked)
	}
	return nil
}
