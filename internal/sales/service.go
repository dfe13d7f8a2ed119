package sales

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/mvillegas/cabstock-backend/internal/activitylog"
	"github.com/mvillegas/cabstock-backend/internal/dashboard"
	"github.com/mvillegas/cabstock-backend/internal/inventory"
	"github.com/mvillegas/cabstock-backend/pkg/db/models"
	"github.com/mvillegas/cabstock-backend/pkg/enums"
	pkgerrors "github.com/mvillegas/cabstock-backend/pkg/errors"
	"github.com/mvillegas/cabstock-backend/pkg/logger"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
)

type cabStore interface {
	FindByID(ctx context.Context, id uint) (*models.Cab, error)
	FindByIDWithTx(tx *gorm.DB, id uint) (*models.Cab, error)
	SaveWithTx(tx *gorm.DB, row *models.Cab) error
}

type accessoryStore interface {
	FindByID(ctx context.Context, id uint) (*models.Accessory, error)
	FindByIDWithTx(tx *gorm.DB, id uint) (*models.Accessory, error)
	SaveWithTx(tx *gorm.DB, row *models.Accessory) error
}

type customerStore interface {
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
}

type ledger interface {
	Create(ctx context.Context, sale *models.Sale) error
	Void(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Sale, error)
	List(ctx context.Context, p pagination.Params) ([]models.Sale, int64, error)
	ListRecorded(ctx context.Context) ([]models.Sale, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// cabCache and accessoryCache keep the in-memory inventory views aligned
// with what the orchestrator wrote.
type cabCache interface {
	Sync(row models.Cab)
	Resync(ctx context.Context) error
}

type accessoryCache interface {
	Sync(row models.Accessory)
	Resync(ctx context.Context) error
}

type dashboardPublisher interface {
	PublishSale(ctx context.Context, ev dashboard.SaleEvent)
}

type auditor interface {
	Record(ctx context.Context, input activitylog.RecordInput) error
}

// Service orchestrates the sell-a-cab workflow and serves the ledger.
type Service interface {
	SellCab(ctx context.Context, actor activitylog.Actor, input SellCabInput) (*SaleResult, error)
	Get(ctx context.Context, id uint) (*models.Sale, error)
	List(ctx context.Context, p pagination.Params) (*SalePage, error)
	LoadEvents(ctx context.Context) ([]dashboard.SaleEvent, error)
}

type service struct {
	tx        txRunner
	cabs      cabStore
	accs      accessoryStore
	customers customerStore
	ledger    ledger

	cabCache cabCache
	accCache accessoryCache

	dash  dashboardPublisher
	audit auditor
	logg  *logger.Logger
	now   func() time.Time
}

// Deps bundles the orchestrator's collaborators.
type Deps struct {
	Tx             txRunner
	Cabs           cabStore
	Accessories    accessoryStore
	Customers      customerStore
	Ledger         ledger
	CabCache       cabCache
	AccessoryCache accessoryCache
	Dashboard      dashboardPublisher
	Audit          auditor
	Logger         *logger.Logger
}

// NewService builds the sale orchestrator.
func NewService(deps Deps) (Service, error) {
	switch {
	case deps.Tx == nil:
		return nil, fmt.Errorf("tx runner required")
	case deps.Cabs == nil:
		return nil, fmt.Errorf("cab store required")
	case deps.Accessories == nil:
		return nil, fmt.Errorf("accessory store required")
	case deps.Customers == nil:
		return nil, fmt.Errorf("customer store required")
	case deps.Ledger == nil:
		return nil, fmt.Errorf("ledger required")
	case deps.Logger == nil:
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:        deps.Tx,
		cabs:      deps.Cabs,
		accs:      deps.Accessories,
		customers: deps.Customers,
		ledger:    deps.Ledger,
		cabCache:  deps.CabCache,
		accCache:  deps.AccessoryCache,
		dash:      deps.Dashboard,
		audit:     deps.Audit,
		logg:      deps.Logger,
		now:       time.Now,
	}, nil
}

// SellCab runs the five-step sale workflow:
//
//  1. validate the request against current stock,
//  2. record the sale in the purchase ledger,
//  3. decrement each bundled accessory concurrently,
//  4. decrement the cab and recompute its status,
//  5. publish the dashboard event and audit entry.
//
// A failure after step 2 triggers compensation: already-applied inventory
// decrements are restored and the ledger entry is voided. Only when that
// compensation itself fails is the error surfaced as a critical
// inconsistency needing manual reconciliation.
func (s *service) SellCab(ctx context.Context, actor activitylog.Actor, input SellCabInput) (*SaleResult, error) {
	ctx = s.logg.WithEntity(ctx, "sale")

	plan, err := s.validate(ctx, input)
	if err != nil {
		s.auditSale(ctx, actor, enums.ActivityStatusFailed, fmt.Sprintf("sale of cab %d rejected: %v", input.CabID, err))
		return nil, err
	}

	sale, err := s.recordLedger(ctx, actor, plan)
	if err != nil {
		s.auditSale(ctx, actor, enums.ActivityStatusFailed, fmt.Sprintf("ledger write failed for cab %d", input.CabID))
		return nil, err
	}
	ctx = s.logg.WithSaleID(ctx, sale.ID)

	applied, err := s.decrementAccessories(ctx, plan)
	if err != nil {
		return nil, s.compensate(ctx, actor, sale, applied, err, "accessories")
	}

	updatedCab, err := s.decrementCab(ctx, plan)
	if err != nil {
		return nil, s.compensate(ctx, actor, sale, applied, err, "cab")
	}

	s.publish(ctx, actor, sale, plan, updatedCab)

	return &SaleResult{
		Sale:       sale,
		Cab:        updatedCab,
		TotalPrice: sale.TotalPrice,
		SoldAt:     sale.SaleDate,
	}, nil
}

// salePlan is the validated, priced request.
type salePlan struct {
	cab      models.Cab
	customer models.Customer
	quantity int
	lines    []plannedLine
	total    decimal.Decimal
}

type plannedLine struct {
	accessory models.Accessory
	quantity  int
	subtotal  decimal.Decimal
}

func (s *service) validate(ctx context.Context, input SellCabInput) (*salePlan, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	cab, err := s.cabs.FindByID(ctx, input.CabID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cab not found")
	}
	if input.Quantity > cab.Quantity {
		return nil, pkgerrors.New(pkgerrors.CodeStockConflict, "requested quantity exceeds cab stock").
			WithDetails(map[string]any{"available": cab.Quantity, "requested": input.Quantity})
	}

	customer, err := s.customers.FindByID(ctx, input.CustomerID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}

	seen := map[uint]bool{}
	total := cab.Price.Mul(decimal.NewFromInt(int64(input.Quantity)))
	lines := make([]plannedLine, 0, len(input.Accessories))
	for _, line := range input.Accessories {
		if line.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "accessory quantity cannot be negative")
		}
		if line.Quantity == 0 {
			continue
		}
		if seen[line.AccessoryID] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate accessory line")
		}
		seen[line.AccessoryID] = true

		acc, err := s.accs.FindByID(ctx, line.AccessoryID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("accessory %d not found", line.AccessoryID))
		}
		if line.Quantity > acc.Quantity {
			return nil, pkgerrors.New(pkgerrors.CodeStockConflict, fmt.Sprintf("accessory %q is short on stock", acc.Name)).
				WithDetails(map[string]any{"accessoryId": acc.ID, "available": acc.Quantity, "requested": line.Quantity})
		}

		subtotal := acc.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)
		lines = append(lines, plannedLine{accessory: *acc, quantity: line.Quantity, subtotal: subtotal})
	}

	return &salePlan{
		cab:      *cab,
		customer: *customer,
		quantity: input.Quantity,
		lines:    lines,
		total:    total,
	}, nil
}

func (s *service) recordLedger(ctx context.Context, actor activitylog.Actor, plan *salePlan) (*models.Sale, error) {
	soldBy := actor.FullName
	if soldBy == "" {
		soldBy = "system"
	}

	items := make([]models.SaleItem, 0, len(plan.lines)+1)
	items = append(items, models.SaleItem{
		ItemType:  enums.SaleItemTypeCab,
		ItemID:    plan.cab.ID,
		Name:      plan.cab.Name,
		Quantity:  plan.quantity,
		UnitPrice: plan.cab.Price,
		Subtotal:  plan.cab.Price.Mul(decimal.NewFromInt(int64(plan.quantity))),
	})
	for _, line := range plan.lines {
		items = append(items, models.SaleItem{
			ItemType:  enums.SaleItemTypeAccessory,
			ItemID:    line.accessory.ID,
			Name:      line.accessory.Name,
			Quantity:  line.quantity,
			UnitPrice: line.accessory.Price,
			Subtotal:  line.subtotal,
		})
	}

	sale := &models.Sale{
		CustomerID: plan.customer.ID,
		SoldBy:     soldBy,
		SaleDate:   s.now().UTC(),
		TotalPrice: plan.total,
		Status:     enums.SaleStatusRecorded,
		Items:      items,
	}
	if err := s.ledger.Create(ctx, sale); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeLedger, err, "recording sale")
	}
	return sale, nil
}

// decrementAccessories fans the bundled accessory decrements out across
// goroutines, each in its own transaction, and fans the results back in.
// It returns the rows it managed to decrement so a later failure can
// restore them.
func (s *service) decrementAccessories(ctx context.Context, plan *salePlan) ([]models.Accessory, error) {
	if len(plan.lines) == 0 {
		return nil, nil
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied []models.Accessory
		errs    error
	)

	for _, line := range plan.lines {
		wg.Add(1)
		go func(line plannedLine) {
			defer wg.Done()

			var updated models.Accessory
			err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
				acc, err := s.accs.FindByIDWithTx(tx, line.accessory.ID)
				if err != nil {
					return err
				}
				// stock may have moved since validation
				if acc.Quantity < line.quantity {
					return pkgerrors.New(pkgerrors.CodeStockConflict, fmt.Sprintf("accessory %q is short on stock", acc.Name))
				}
				acc.Quantity -= line.quantity
				acc.Status = inventory.AccessoryStatus(acc.Quantity)
				if err := s.accs.SaveWithTx(tx, acc); err != nil {
					return err
				}
				updated = *acc
				return nil
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierr.Append(errs, err)
				return
			}
			applied = append(applied, updated)
		}(line)
	}
	wg.Wait()

	if errs != nil {
		if appErr := pkgerrors.As(errs); appErr != nil && appErr.Code() == pkgerrors.CodeStockConflict {
			return applied, errs
		}
		return applied, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "decrementing accessories")
	}
	return applied, nil
}

func (s *service) decrementCab(ctx context.Context, plan *salePlan) (*models.Cab, error) {
	var updated models.Cab
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cab, err := s.cabs.FindByIDWithTx(tx, plan.cab.ID)
		if err != nil {
			return err
		}
		if cab.Quantity < plan.quantity {
			return pkgerrors.New(pkgerrors.CodeStockConflict, "requested quantity exceeds cab stock")
		}
		cab.Quantity -= plan.quantity
		cab.Status = inventory.CabStatus(cab.Quantity)
		if err := s.cabs.SaveWithTx(tx, cab); err != nil {
			return err
		}
		updated = *cab
		return nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrementing cab stock")
	}
	return &updated, nil
}

// compensate reverses the partial sale: restore decremented accessory stock,
// void the ledger entry, and resync caches. If any reversal fails the error
// is upgraded to a critical inconsistency.
func (s *service) compensate(ctx context.Context, actor activitylog.Actor, sale *models.Sale, applied []models.Accessory, cause error, step string) error {
	s.logg.Warn(s.logg.WithField(ctx, "step", step), "sale failed, compensating")

	var compErr error
	for _, acc := range applied {
		restored := acc
		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			row, err := s.accs.FindByIDWithTx(tx, restored.ID)
			if err != nil {
				return err
			}
			for _, line := range saleAccessoryQuantities(sale) {
				if line.itemID == row.ID {
					row.Quantity += line.quantity
				}
			}
			row.Status = inventory.AccessoryStatus(row.Quantity)
			return s.accs.SaveWithTx(tx, row)
		})
		compErr = multierr.Append(compErr, err)
	}

	compErr = multierr.Append(compErr, s.ledger.Void(ctx, sale.ID))

	s.resyncCaches(ctx)

	if compErr != nil {
		s.logg.Error(ctx, "sale compensation failed", compErr)
		s.auditSale(ctx, actor, enums.ActivityStatusFailed,
			fmt.Sprintf("sale %d partially completed and could not be reversed", sale.ID))
		return pkgerrors.Wrap(pkgerrors.CodeCritical, multierr.Append(cause, compErr), "sale left inconsistent").
			WithDetails(map[string]any{"saleId": sale.ID, "step": step})
	}

	s.auditSale(ctx, actor, enums.ActivityStatusFailed,
		fmt.Sprintf("sale %d reversed after %s failure", sale.ID, step))

	if appErr := pkgerrors.As(cause); appErr != nil {
		return appErr.WithDetails(map[string]any{"saleId": sale.ID, "step": step, "reversed": true})
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, cause, "sale reversed").
		WithDetails(map[string]any{"saleId": sale.ID, "step": step, "reversed": true})
}

type accessoryQty struct {
	itemID   uint
	quantity int
}

func saleAccessoryQuantities(sale *models.Sale) []accessoryQty {
	out := make([]accessoryQty, 0, len(sale.Items))
	for _, item := range sale.Items {
		if item.ItemType == enums.SaleItemTypeAccessory {
			out = append(out, accessoryQty{itemID: item.ItemID, quantity: item.Quantity})
		}
	}
	return out
}

// publish is step 5: caches, dashboard, audit. Everything here is
// best-effort; the sale already committed.
func (s *service) publish(ctx context.Context, actor activitylog.Actor, sale *models.Sale, plan *salePlan, cab *models.Cab) {
	if s.cabCache != nil && cab != nil {
		s.cabCache.Sync(*cab)
	}
	if s.accCache != nil {
		if err := s.accCache.Resync(ctx); err != nil {
			s.logg.Warn(ctx, "accessory cache resync failed after sale")
		}
	}

	if s.dash != nil {
		s.dash.PublishSale(ctx, saleToEvent(sale, plan.customer.FullName))
	}

	s.auditSale(ctx, actor, enums.ActivityStatusSuccessful,
		fmt.Sprintf("sold %dx %s to %s for %s", plan.quantity, plan.cab.Name, plan.customer.FullName, sale.TotalPrice.StringFixed(2)))
}

func (s *service) auditSale(ctx context.Context, actor activitylog.Actor, status enums.ActivityStatus, details string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, activitylog.RecordInput{
		Actor:      actor,
		ActionType: enums.ActivityActionCreated,
		Details:    details,
		Status:     status,
	}); err != nil {
		s.logg.Warn(ctx, "audit entry for sale could not be written")
	}
}

func (s *service) resyncCaches(ctx context.Context) {
	if s.cabCache != nil {
		if err := s.cabCache.Resync(ctx); err != nil {
			s.logg.Warn(ctx, "cab cache resync failed")
		}
	}
	if s.accCache != nil {
		if err := s.accCache.Resync(ctx); err != nil {
			s.logg.Warn(ctx, "accessory cache resync failed")
		}
	}
}

func (s *service) Get(ctx context.Context, id uint) (*models.Sale, error) {
	sale, err := s.ledger.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
	}
	return sale, nil
}

func (s *service) List(ctx context.Context, p pagination.Params) (*SalePage, error) {
	rows, total, err := s.ledger.List(ctx, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return &SalePage{
		Data:     rows,
		Total:    total,
		LastPage: pagination.LastPage(total, p.Limit),
	}, nil
}

// LoadEvents converts the recorded ledger into dashboard events, oldest
// first. Customer names are resolved per distinct customer.
func (s *service) LoadEvents(ctx context.Context) ([]dashboard.SaleEvent, error) {
	rows, err := s.ledger.ListRecorded(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading recorded sales")
	}

	names := map[uint]string{}
	events := make([]dashboard.SaleEvent, 0, len(rows))
	for i := range rows {
		sale := &rows[i]
		name, ok := names[sale.CustomerID]
		if !ok {
			if customer, err := s.customers.FindByID(ctx, sale.CustomerID); err == nil {
				name = customer.FullName
			}
			names[sale.CustomerID] = name
		}
		events = append(events, saleToEvent(sale, name))
	}
	return events, nil
}

func saleToEvent(sale *models.Sale, customerName string) dashboard.SaleEvent {
	ev := dashboard.SaleEvent{
		SaleID:       sale.ID,
		CustomerName: customerName,
		Total:        sale.TotalPrice,
		OccurredAt:   sale.SaleDate,
	}
	for _, item := range sale.Items {
		switch item.ItemType {
		case enums.SaleItemTypeCab:
			ev.CabsSold += item.Quantity
			ev.CabName = item.Name
			ev.CabRevenue = ev.CabRevenue.Add(item.Subtotal)
		case enums.SaleItemTypeAccessory:
			ev.AccessoryUnits += item.Quantity
			ev.AccessoryRevenue = ev.AccessoryRevenue.Add(item.Subtotal)
		}
	}
	return ev
}
