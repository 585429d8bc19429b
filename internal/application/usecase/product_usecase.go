package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/dto"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/pkg/logger"
)

// ProductUseCase casos de uso del catálogo. Quantity solo se mueve vía libro de stock.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	ledger   *inventory.LedgerUseCase
	log      *logger.Logger
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	txRunner inventory.TxRunner,
	ledger *inventory.LedgerUseCase,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		repo:     repo,
		txRunner: txRunner,
		ledger:   ledger,
		log:      log.Component("catalog"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create crea un producto. Si Quantity > 0, la entrada "initial stock" se registra en la misma
// transacción para que libro y contador nazcan de acuerdo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "código y nombre son requeridos")
	}
	if in.CostValue.LessThan(decimal.Zero) || in.SaleValue.LessThan(decimal.Zero) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "los valores no pueden ser negativos")
	}
	if in.Quantity < 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "la cantidad inicial no puede ser negativa")
	}
	existing, err := uc.repo.GetActiveByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.ErrDuplicate, "ya existe un producto activo con código %s", in.Code)
	}

	now := uc.now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		CostValue: in.CostValue,
		SaleValue: in.SaleValue,
		Quantity:  in.Quantity,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if product.Quantity > 0 {
			if _, err := uc.ledger.RegisterInitialStockInTx(ctx, movRepo, product.ID, product.Quantity, product.Name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("code", product.Code).Int("quantity", product.Quantity).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza datos de catálogo. No permite modificar Quantity (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, domain.Errorf(domain.ErrInvalidInput, "código requerido")
		}
		if code != product.Code && product.Active {
			other, err := uc.repo.GetActiveByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != product.ID {
				return nil, domain.Errorf(domain.ErrDuplicate, "ya existe un producto activo con código %s", code)
			}
		}
		product.Code = code
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Errorf(domain.ErrInvalidInput, "nombre requerido")
		}
		product.Name = name
	}
	if in.CostValue != nil {
		if in.CostValue.LessThan(decimal.Zero) {
			return nil, domain.Errorf(domain.ErrInvalidInput, "el costo no puede ser negativo")
		}
		product.CostValue = *in.CostValue
	}
	if in.SaleValue != nil {
		if in.SaleValue.LessThan(decimal.Zero) {
			return nil, domain.Errorf(domain.ErrInvalidInput, "el valor de venta no puede ser negativo")
		}
		product.SaleValue = *in.SaleValue
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate marca el producto como inactivo (borrado lógico); libera su código.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	product, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if !product.Active {
		return nil
	}
	product.Active = false
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Msg("producto desactivado")
	return nil
}

// List lista productos con paginación, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context, includeInactive bool, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, includeInactive, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *ProductUseCase) find(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "producto %s no encontrado", id)
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		CostValue: p.CostValue,
		SaleValue: p.SaleValue,
		Quantity:  p.Quantity,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
