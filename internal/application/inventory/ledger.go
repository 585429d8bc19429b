package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/dto"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/entity"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/repository"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/pkg/logger"
)

// LedgerUseCase registra movimientos del libro de stock de forma transaccional.
// El libro es la fuente de verdad; Product.Quantity es una caché que solo se ajusta
// dentro de la misma transacción que agrega el movimiento.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	cache       BalanceCache
	log         *logger.Logger
	now         func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		log:         log.Component("ledger"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithBalanceCache activa la invalidación de la caché de saldos tras cada escritura.
func (uc *LedgerUseCase) WithBalanceCache(cache BalanceCache) *LedgerUseCase {
	uc.cache = cache
	return uc
}

// WithClock reemplaza el reloj (tests).
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = func() time.Time { return now().UTC() }
	return uc
}

// RegisterEntry agrega una entrada e incrementa el contador del producto. Sin cota superior.
func (uc *LedgerUseCase) RegisterEntry(ctx context.Context, productID string, quantity int, origin, note string) (*entity.StockMovement, error) {
	if err := validateMovementInput(productID, quantity); err != nil {
		return nil, err
	}
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		var err error
		mov, err = uc.registerEntryInTx(ctx, movRepo, productRepo, productID, quantity, origin, note)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", productID).Int("quantity", quantity).Msg("entrada rechazada")
		return nil, err
	}
	uc.committed(ctx, mov)
	return mov, nil
}

// RegisterExit agrega una salida si el saldo del libro lo permite y decrementa el contador.
// El saldo se lee del libro (no del contador) con la fila del producto bloqueada.
func (uc *LedgerUseCase) RegisterExit(ctx context.Context, productID string, quantity int, origin, note string) (*entity.StockMovement, error) {
	if err := validateMovementInput(productID, quantity); err != nil {
		return nil, err
	}
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		var err error
		mov, err = uc.registerExitInTx(ctx, movRepo, productRepo, productID, quantity, origin, note)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", productID).Int("quantity", quantity).Msg("salida rechazada")
		return nil, err
	}
	uc.committed(ctx, mov)
	return mov, nil
}

// RegisterInitialStock agrega la entrada sintética "initial stock" de un producto cuyo contador
// ya fue sembrado al crearlo. Solo se permite si el producto no tiene movimientos y el contador
// coincide con quantity; no vuelve a tocar el contador.
func (uc *LedgerUseCase) RegisterInitialStock(ctx context.Context, productID string, quantity int, productName string) (*entity.StockMovement, error) {
	if err := validateMovementInput(productID, quantity); err != nil {
		return nil, err
	}
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.Errorf(domain.ErrNotFound, "producto %s no encontrado", productID)
		}
		existing, err := movRepo.ListByProduct(ctx, productID, nil, nil, 1, 0)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return domain.Errorf(domain.ErrConflict, "el producto ya tiene movimientos")
		}
		if product.Quantity != quantity {
			return domain.Errorf(domain.ErrConflict, "el contador (%d) no coincide con el stock inicial (%d)", product.Quantity, quantity)
		}
		mov, err = uc.RegisterInitialStockInTx(ctx, movRepo, productID, quantity, productName)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.committed(ctx, mov)
	return mov, nil
}

// RegisterInitialStockInTx agrega la entrada "initial stock" usando los repositorios del caller
// (misma transacción que crea el producto). No ajusta el contador: el producto nace con él.
func (uc *LedgerUseCase) RegisterInitialStockInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productID string,
	quantity int,
	productName string,
) (*entity.StockMovement, error) {
	mov := uc.newMovement(productID, entity.MovementTypeEntrada, quantity,
		entity.OriginInitialStock, fmt.Sprintf("Estoque inicial - %s", productName))
	if err := mov.Validate(); err != nil {
		return nil, err
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterMovementFromRequest adapta el request HTTP a RegisterEntry/RegisterExit según el tipo.
func (uc *LedgerUseCase) RegisterMovementFromRequest(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	var (
		mov *entity.StockMovement
		err error
	)
	switch entity.MovementType(in.Type) {
	case entity.MovementTypeEntrada:
		mov, err = uc.RegisterEntry(ctx, in.ProductID, in.Quantity, in.Origin, in.Note)
	case entity.MovementTypeSaida:
		mov, err = uc.RegisterExit(ctx, in.ProductID, in.Quantity, in.Origin, in.Note)
	default:
		return nil, domain.Errorf(domain.ErrInvalidInput, "tipo de movimiento %q desconocido", in.Type)
	}
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(mov), nil
}

// ComputeBalance calcula {entradas, saidas, total} directamente del libro. Sin efectos secundarios.
func (uc *LedgerUseCase) ComputeBalance(ctx context.Context, productID string) (inventory.Balance, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return inventory.Balance{}, err
	}
	if product == nil {
		return inventory.Balance{}, domain.Errorf(domain.ErrNotFound, "producto %s no encontrado", productID)
	}
	movs, err := uc.movRepo.ListByProduct(ctx, productID, nil, nil, 0, 0)
	if err != nil {
		return inventory.Balance{}, err
	}
	return inventory.ComputeBalance(productID, movs), nil
}

// ListMovements historial de movimientos de un producto, más recientes primero.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]dto.MovementResponse, error) {
	movs, err := uc.movRepo.ListByProduct(ctx, productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, *ToMovementResponse(m))
	}
	return out, nil
}

func (uc *LedgerUseCase) registerEntryInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	productID string, quantity int, origin, note string,
) (*entity.StockMovement, error) {
	// Bloquea la fila del producto (SELECT FOR UPDATE) para serializar movimientos concurrentes
	product, err := productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "producto %s no encontrado", productID)
	}
	mov := uc.newMovement(productID, entity.MovementTypeEntrada, quantity, origin, note)
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	if err := productRepo.AdjustQuantity(ctx, productID, quantity); err != nil {
		return nil, err
	}
	return mov, nil
}

func (uc *LedgerUseCase) registerExitInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	productID string, quantity int, origin, note string,
) (*entity.StockMovement, error) {
	product, err := productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "producto %s no encontrado", productID)
	}
	movs, err := movRepo.ListByProduct(ctx, productID, nil, nil, 0, 0)
	if err != nil {
		return nil, err
	}
	balance := inventory.ComputeBalance(productID, movs)
	if !balance.CanWithdraw(quantity) {
		return nil, domain.Errorf(domain.ErrInsufficientStock,
			"saldo disponible %d, solicitado %d", balance.Total, quantity)
	}
	mov := uc.newMovement(productID, entity.MovementTypeSaida, quantity, origin, note)
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	if err := productRepo.AdjustQuantity(ctx, productID, -quantity); err != nil {
		return nil, err
	}
	return mov, nil
}

func (uc *LedgerUseCase) newMovement(productID string, typ entity.MovementType, quantity int, origin, note string) *entity.StockMovement {
	return &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Type:      typ,
		Quantity:  quantity,
		Origin:    origin,
		Note:      note,
		CreatedAt: uc.now(),
		Active:    true,
	}
}

// committed registra el movimiento confirmado e invalida la caché del producto.
func (uc *LedgerUseCase) committed(ctx context.Context, mov *entity.StockMovement) {
	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("product_id", mov.ProductID).
		Str("type", string(mov.Type)).
		Int("quantity", mov.Quantity).
		Str("origin", mov.Origin).
		Msg("movimiento registrado")
	uc.invalidate(ctx, mov.ProductID)
}

func (uc *LedgerUseCase) invalidate(ctx context.Context, productIDs ...string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, productIDs...); err != nil {
		// La caché queda desactualizada hasta su TTL; el libro sigue siendo correcto.
		uc.log.Error().Err(err).Strs("product_ids", productIDs).Msg("invalidar caché de saldos")
	}
}

func validateMovementInput(productID string, quantity int) error {
	if productID == "" {
		return domain.Errorf(domain.ErrInvalidInput, "producto requerido")
	}
	if quantity <= 0 {
		return domain.Errorf(domain.ErrInvalidInput, "la cantidad debe ser mayor que cero")
	}
	return nil
}

// ToMovementResponse mapea la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      string(m.Type),
		Quantity:  m.Quantity,
		Origin:    m.Origin,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
		Active:    m.Active,
	}
}
