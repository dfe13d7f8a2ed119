package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mvillegas/cabstock-backend/pkg/db/models"
	"github.com/mvillegas/cabstock-backend/pkg/enums"
	pkgerrors "github.com/mvillegas/cabstock-backend/pkg/errors"
	"github.com/mvillegas/cabstock-backend/pkg/images"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
)

// CabService exposes cab inventory operations.
type CabService interface {
	List(ctx context.Context, filter Filter) ([]models.Cab, error)
	Get(ctx context.Context, id uint) (*models.Cab, error)
	Create(ctx context.Context, input CreateCabInput) (*models.Cab, error)
	Update(ctx context.Context, id uint, input UpdateCabInput) (*models.Cab, error)
	Delete(ctx context.Context, id uint) error
	Sync(row models.Cab)
	Resync(ctx context.Context) error
}

// AccessoryService exposes accessory inventory operations.
type AccessoryService interface {
	List(ctx context.Context, filter Filter) ([]models.Accessory, error)
	Get(ctx context.Context, id uint) (*models.Accessory, error)
	Create(ctx context.Context, input CreateAccessoryInput) (*models.Accessory, error)
	Update(ctx context.Context, id uint, input UpdateAccessoryInput) (*models.Accessory, error)
	Delete(ctx context.Context, id uint) error
	Sync(row models.Accessory)
	Resync(ctx context.Context) error
}

// MaterialService exposes material inventory operations.
type MaterialService interface {
	List(ctx context.Context, filter Filter) ([]models.Material, error)
	ListPage(ctx context.Context, filter Filter, p pagination.Params) (*MaterialPage, error)
	Get(ctx context.Context, id uint) (*models.Material, error)
	Create(ctx context.Context, input CreateMaterialInput) (*models.Material, error)
	Update(ctx context.Context, id uint, input UpdateMaterialInput) (*models.Material, error)
	Delete(ctx context.Context, id uint) error
}

type cabService struct {
	repo      *CabRepository
	cache     *Cache[models.Cab]
	sanitizer *images.Sanitizer
}

// NewCabService wires the cab repository, cache and image sanitizer.
func NewCabService(ctx context.Context, repo *CabRepository, sanitizer *images.Sanitizer) (CabService, error) {
	if repo == nil {
		return nil, fmt.Errorf("cab repository required")
	}
	if sanitizer == nil {
		return nil, fmt.Errorf("image sanitizer required")
	}
	cache, err := NewCache(repo.List, func(c models.Cab) uint { return c.ID })
	if err != nil {
		return nil, err
	}
	if err := cache.Reload(ctx); err != nil {
		return nil, err
	}
	return &cabService{repo: repo, cache: cache, sanitizer: sanitizer}, nil
}

func (s *cabService) List(_ context.Context, filter Filter) ([]models.Cab, error) {
	rows := s.cache.List()
	if filter.IsZero() {
		return rows, nil
	}
	out := make([]models.Cab, 0, len(rows))
	for _, row := range rows {
		if filter.matches(searchable{
			Name:   row.Name,
			Make:   row.Make.String(),
			Color:  row.UnitColor.String(),
			Status: row.Status.String(),
		}) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *cabService) Get(ctx context.Context, id uint) (*models.Cab, error) {
	if row, ok := s.cache.Get(id); ok {
		return &row, nil
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "cab")
	}
	s.cache.Put(*row)
	return row, nil
}

func (s *cabService) Create(ctx context.Context, input CreateCabInput) (*models.Cab, error) {
	mk, err := enums.ParseCabMake(input.Make)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	color, err := enums.ParseCabColor(input.UnitColor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if err := validateCommon(input.Name, input.Quantity, input.Price); err != nil {
		return nil, err
	}

	row := &models.Cab{
		Name:      input.Name,
		Make:      mk,
		UnitColor: color,
		Quantity:  input.Quantity,
		Price:     input.Price,
		Status:    CabStatus(input.Quantity),
		Image:     s.sanitizer.Sanitize(ctx, input.Image),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cab")
	}
	s.cache.Put(*row)
	return row, nil
}

func (s *cabService) Update(ctx context.Context, id uint, input UpdateCabInput) (*models.Cab, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *current
	if input.Name != nil {
		next.Name = *input.Name
	}
	if input.Make != nil {
		mk, err := enums.ParseCabMake(*input.Make)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		next.Make = mk
	}
	if input.UnitColor != nil {
		color, err := enums.ParseCabColor(*input.UnitColor)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		next.UnitColor = color
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
		next.Quantity = *input.Quantity
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		next.Price = *input.Price
	}
	if input.Image != nil {
		next.Image = s.sanitizer.Sanitize(ctx, *input.Image)
	}
	// status always tracks quantity; never trust the stored value
	next.Status = CabStatus(next.Quantity)

	saved, err := s.cache.UpdateWithRollback(ctx, next, func(ctx context.Context) (models.Cab, error) {
		row := next
		if err := s.repo.Save(ctx, &row); err != nil {
			return models.Cab{}, err
		}
		return row, nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cab")
	}
	return &saved, nil
}

func (s *cabService) Delete(ctx context.Context, id uint) error {
	err := s.cache.DeleteWithRollback(ctx, id, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return mapLookupErr(err, "cab")
	}
	return nil
}

func (s *cabService) Sync(row models.Cab) {
	s.cache.Put(row)
}

func (s *cabService) Resync(ctx context.Context) error {
	return s.cache.Reload(ctx)
}

type accessoryService struct {
	repo      *AccessoryRepository
	cache     *Cache[models.Accessory]
	sanitizer *images.Sanitizer
}

// NewAccessoryService wires the accessory repository, cache and sanitizer.
func NewAccessoryService(ctx context.Context, repo *AccessoryRepository, sanitizer *images.Sanitizer) (AccessoryService, error) {
	if repo == nil {
		return nil, fmt.Errorf("accessory repository required")
	}
	if sanitizer == nil {
		return nil, fmt.Errorf("image sanitizer required")
	}
	cache, err := NewCache(repo.List, func(a models.Accessory) uint { return a.ID })
	if err != nil {
		return nil, err
	}
	if err := cache.Reload(ctx); err != nil {
		return nil, err
	}
	return &accessoryService{repo: repo, cache: cache, sanitizer: sanitizer}, nil
}

func (s *accessoryService) List(_ context.Context, filter Filter) ([]models.Accessory, error) {
	rows := s.cache.List()
	if filter.IsZero() {
		return rows, nil
	}
	out := make([]models.Accessory, 0, len(rows))
	for _, row := range rows {
		if filter.matches(searchable{
			Name:     row.Name,
			Category: row.Category.String(),
			Supplier: row.Supplier.String(),
			Status:   row.Status.String(),
		}) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *accessoryService) Get(ctx context.Context, id uint) (*models.Accessory, error) {
	if row, ok := s.cache.Get(id); ok {
		return &row, nil
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "accessory")
	}
	s.cache.Put(*row)
	return row, nil
}

func (s *accessoryService) Create(ctx context.Context, input CreateAccessoryInput) (*models.Accessory, error) {
	category, err := enums.ParseAccessoryCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	supplier, err := enums.ParseSupplier(input.Supplier)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if err := validateCommon(input.Name, input.Quantity, input.Price); err != nil {
		return nil, err
	}

	row := &models.Accessory{
		Name:     input.Name,
		Category: category,
		Supplier: supplier,
		Quantity: input.Quantity,
		Price:    input.Price,
		Status:   AccessoryStatus(input.Quantity),
		Image:    s.sanitizer.Sanitize(ctx, input.Image),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create accessory")
	}
	s.cache.Put(*row)
	return row, nil
}

func (s *accessoryService) Update(ctx context.Context, id uint, input UpdateAccessoryInput) (*models.Accessory, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *current
	if input.Name != nil {
		next.Name = *input.Name
	}
	if input.Category != nil {
		category, err := enums.ParseAccessoryCategory(*input.Category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		next.Category = category
	}
	if input.Supplier != nil {
		supplier, err := enums.ParseSupplier(*input.Supplier)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		next.Supplier = supplier
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
		next.Quantity = *input.Quantity
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		next.Price = *input.Price
	}
	if input.Image != nil {
		next.Image = s.sanitizer.Sanitize(ctx, *input.Image)
	}
	next.Status = AccessoryStatus(next.Quantity)

	saved, err := s.cache.UpdateWithRollback(ctx, next, func(ctx context.Context) (models.Accessory, error) {
		row := next
		if err := s.repo.Save(ctx, &row); err != nil {
			return models.Accessory{}, err
		}
		return row, nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update accessory")
	}
	return &saved, nil
}

func (s *accessoryService) Delete(ctx context.Context, id uint) error {
	err := s.cache.DeleteWithRollback(ctx, id, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return mapLookupErr(err, "accessory")
	}
	return nil
}

func (s *accessoryService) Sync(row models.Accessory) {
	s.cache.Put(row)
}

func (s *accessoryService) Resync(ctx context.Context) error {
	return s.cache.Reload(ctx)
}

type materialService struct {
	repo      *MaterialRepository
	sanitizer *images.Sanitizer
}

// NewMaterialService wires the material repository and sanitizer. Materials
// are listed straight from the database because the paginated endpoint
// filters server-side.
func NewMaterialService(repo *MaterialRepository, sanitizer *images.Sanitizer) (MaterialService, error) {
	if repo == nil {
		return nil, fmt.Errorf("material repository required")
	}
	if sanitizer == nil {
		return nil, fmt.Errorf("image sanitizer required")
	}
	return &materialService{repo: repo, sanitizer: sanitizer}, nil
}

func (s *materialService) List(ctx context.Context, filter Filter) ([]models.Material, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list materials")
	}
	if filter.IsZero() {
		return rows, nil
	}
	out := make([]models.Material, 0, len(rows))
	for _, row := range rows {
		if filter.matches(searchable{
			Name:     row.Name,
			Category: row.Category.String(),
			Supplier: row.Supplier.String(),
			Status:   row.Status.String(),
		}) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *materialService) ListPage(ctx context.Context, filter Filter, p pagination.Params) (*MaterialPage, error) {
	rows, total, err := s.repo.ListPage(ctx, filter, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list materials page")
	}
	return &MaterialPage{
		Data:     rows,
		Total:    total,
		LastPage: pagination.LastPage(total, p.Limit),
	}, nil
}

func (s *materialService) Get(ctx context.Context, id uint) (*models.Material, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "material")
	}
	return row, nil
}

func (s *materialService) Create(ctx context.Context, input CreateMaterialInput) (*models.Material, error) {
	category, err := enums.ParseMaterialCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	supplier, err := enums.ParseSupplier(input.Supplier)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	row := &models.Material{
		Name:     input.Name,
		Category: category,
		Supplier: supplier,
		Quantity: input.Quantity,
		Price:    input.Price,
		Status:   MaterialStatus(input.Quantity),
		Image:    s.sanitizer.Sanitize(ctx, input.Image),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create material")
	}
	return row, nil
}

func (s *materialService) Update(ctx context.Context, id uint, input UpdateMaterialInput) (*models.Material, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *current
	if input.Name != nil {
		next.Name = *input.Name
	}
	if input.Category != nil {
		category, err := enums.ParseMaterialCategory(*input.Category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		next.Category = category
	}
	if input.Supplier != nil {
		supplier, err := enums.ParseSupplier(*input.Supplier)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		next.Supplier = supplier
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
		next.Quantity = *input.Quantity
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		next.Price = input.Price
	}
	if input.Image != nil {
		next.Image = s.sanitizer.Sanitize(ctx, *input.Image)
	}
	next.Status = MaterialStatus(next.Quantity)

	if err := s.repo.Save(ctx, &next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update material")
	}
	return &next, nil
}

func (s *materialService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapLookupErr(err, "material")
	}
	return nil
}

func validateCommon(name string, quantity int, price decimal.Decimal) error {
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return nil
}

func mapLookupErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading "+entity)
}
