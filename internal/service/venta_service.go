package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"updatepos/internal/dto"
	"updatepos/internal/model"
	"updatepos/internal/pricing"
	"updatepos/internal/repository"
	"updatepos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, vendedorID uuid.UUID, vendedorNombre string, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	stock        StockService
	cuenta       CuentaCorrienteService
	computadoras repository.ComputadoraRepository
	celulares    repository.CelularRepository
	otros        repository.OtroRepository
	clientes     repository.ClienteRepository
	dispatcher   *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	stock StockService,
	cuenta CuentaCorrienteService,
	computadoras repository.ComputadoraRepository,
	celulares repository.CelularRepository,
	otros repository.OtroRepository,
	clientes repository.ClienteRepository,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		repo:         repo,
		stock:        stock,
		cuenta:       cuenta,
		computadoras: computadoras,
		celulares:    celulares,
		otros:        otros,
		clientes:     clientes,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with stub repos).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// resolvedItem is a cart line after pricing: cost, margin and descripcion are
// frozen here and never re-read from the catalog.
type resolvedItem struct {
	tipo        string
	productoID  uuid.UUID
	serial      *string
	descripcion string
	categoria   *string
	cantidad    int
	precio      decimal.Decimal
	costo       decimal.Decimal
	subtotal    decimal.Decimal
	ganancia    decimal.Decimal
	// personalizado holds the new Otro row for a custom off-stock item,
	// inserted inside the checkout transaction before its own decrement.
	personalizado *model.Otro
}

// RegistrarVenta runs the checkout pipeline:
//
//  1. Validate cart, cliente and pagos. No side effects on failure.
//  2. Resolve products and freeze cost, margin and descripcion.
//  3. One transaction: venta header + items + pagos, then stock decrements in
//     cart order. Any failure rolls back the whole sale, including earlier
//     lines' stock.
//  4. After commit: cuenta corriente movement for the store-credit portion
//     (failure is a warning, the sale stands), cache invalidation and async
//     receipt + audit jobs.
func (s *ventaService) RegistrarVenta(ctx context.Context, vendedorID uuid.UUID, vendedorNombre string, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	var clienteID *uuid.UUID
	clienteNombre := "Consumidor Final"
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("cliente_id inválido: %w", err)
		}
		cliente, err := s.clientes.FindByID(ctx, cid)
		if err != nil {
			return nil, ErrClienteNoEncontrado
		}
		clienteID = &cid
		clienteNombre = strings.TrimSpace(cliente.Nombre + " " + cliente.Apellido)
	} else if !req.ConsumidorFinal {
		return nil, ErrClienteRequerido
	}

	if len(req.Items) == 0 {
		return nil, ErrCarritoVacio
	}

	resolved := make([]resolvedItem, 0, len(req.Items))
	total := decimal.Zero
	totalCosto := decimal.Zero
	for _, item := range req.Items {
		r, err := s.resolverItem(ctx, item, req.Sucursal)
		if err != nil {
			return nil, err
		}
		total = total.Add(r.subtotal)
		totalCosto = totalCosto.Add(r.costo.Mul(decimal.NewFromInt(int64(r.cantidad))))
		resolved = append(resolved, *r)
	}
	totalGanancia := total.Sub(totalCosto)

	// Pagos: one or two entries whose sum must equal the sale total. The
	// previous system only enforced this client-side.
	totalPagos := decimal.Zero
	montoCuenta := decimal.Zero
	for _, pago := range req.Pagos {
		if pago.Monto.IsNegative() {
			return nil, ErrPrecioNegativo
		}
		totalPagos = totalPagos.Add(pago.Monto)
		if pago.Metodo == model.PagoCuentaCorriente {
			montoCuenta = montoCuenta.Add(pago.Monto)
		}
	}
	if !totalPagos.Equal(total) {
		return nil, ErrPagosNoCoinciden
	}
	if montoCuenta.IsPositive() && clienteID == nil {
		return nil, ErrCuentaSinCliente
	}

	var venta model.Venta
	var prestamos []dto.PrestamoSucursal

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta = model.Venta{
			Numero:         generarNumeroVenta(),
			ClienteID:      clienteID,
			ClienteNombre:  clienteNombre,
			Sucursal:       req.Sucursal,
			VendedorID:     vendedorID,
			VendedorNombre: vendedorNombre,
			Total:          total,
			TotalCosto:     totalCosto,
			TotalGanancia:  totalGanancia,
			Observaciones:  req.Observaciones,
		}
		for _, r := range resolved {
			venta.Items = append(venta.Items, model.VentaItem{
				TipoProducto:   r.tipo,
				ProductoID:     r.productoID,
				Serial:         r.serial,
				Descripcion:    r.descripcion,
				Categoria:      r.categoria,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precio,
				Subtotal:       r.subtotal,
				CostoUnitario:  r.costo,
				Ganancia:       r.ganancia,
			})
		}
		for _, pago := range req.Pagos {
			venta.Pagos = append(venta.Pagos, model.VentaPago{Metodo: pago.Metodo, Monto: pago.Monto})
		}

		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			// Includes a Numero uniqueness collision, which is not retried.
			return &PersistenceError{Paso: "venta", Err: err}
		}

		for _, r := range resolved {
			if r.personalizado != nil {
				if err := s.otros.CreateTx(tx, r.personalizado); err != nil {
					return &PersistenceError{Paso: "stock", Err: err}
				}
			}
			res, err := s.stock.DescontarTx(ctx, tx, r.tipo, r.productoID, r.cantidad, req.Sucursal, venta.ID)
			if err != nil {
				return err
			}
			if res.Prestamo {
				prestamos = append(prestamos, dto.PrestamoSucursal{
					Descripcion: r.descripcion,
					Sucursal:    res.SucursalPrestamo,
					Cantidad:    res.CantidadPrestada,
				})
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := ventaToResponse(&venta)
	resp.Prestamos = prestamos

	// Cuenta corriente is a secondary step and never rolls the sale back.
	if montoCuenta.IsPositive() && clienteID != nil {
		concepto := fmt.Sprintf("Venta %s", venta.Numero)
		if _, err := s.cuenta.RegistrarDeuda(ctx, *clienteID, venta.ID, montoCuenta, concepto); err != nil {
			log.Error().Err(err).
				Str("venta", venta.Numero).
				Str("cliente_id", clienteID.String()).
				Msg("venta registrada pero falló el movimiento de cuenta corriente")
			advertencia := "la venta se registró pero no se pudo asentar la deuda en cuenta corriente"
			resp.Advertencia = &advertencia
		}
	}

	s.stock.InvalidarCatalogos(ctx)
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecibo(ctx, worker.ReciboJobPayload{VentaID: venta.ID.String()})
		_ = s.dispatcher.EnqueueAuditoria(ctx, worker.AuditoriaJobPayload{
			UsuarioID:     vendedorID.String(),
			UsuarioNombre: vendedorNombre,
			Accion:        "venta",
			Tabla:         "ventas",
			RegistroID:    venta.ID.String(),
			Detalle:       fmt.Sprintf("Venta %s por %s", venta.Numero, venta.Total.StringFixed(2)),
		})
	}

	return resp, nil
}

// resolverItem validates one cart line and freezes its pricing.
func (s *ventaService) resolverItem(ctx context.Context, item dto.ItemVentaRequest, sucursal string) (*resolvedItem, error) {
	if item.PrecioUnitario.IsNegative() {
		return nil, ErrPrecioNegativo
	}
	if item.Cantidad < 1 {
		return nil, ErrCantidadInvalida
	}

	r := resolvedItem{
		tipo:     item.TipoProducto,
		cantidad: item.Cantidad,
		precio:   item.PrecioUnitario,
	}

	switch item.TipoProducto {
	case model.TipoComputadora, model.TipoCelular:
		// Unique units: quantity pinned to 1.
		if item.Cantidad != 1 {
			return nil, ErrCantidadInvalida
		}
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, ErrProductoInvalido
		}
		r.productoID = pid

		if item.TipoProducto == model.TipoComputadora {
			c, err := s.computadoras.FindByID(ctx, pid)
			if err != nil {
				return nil, fmt.Errorf("computadora %s no encontrada", item.ProductoID)
			}
			r.serial = &c.Serial
			r.costo = pricing.CostoComputadora(c)
			r.descripcion = descripcionComputadora(c)
		} else {
			c, err := s.celulares.FindByID(ctx, pid)
			if err != nil {
				return nil, fmt.Errorf("celular %s no encontrado", item.ProductoID)
			}
			r.serial = &c.Serial
			r.costo = pricing.CostoCelular(c)
			r.descripcion = descripcionCelular(c)
		}

	case model.TipoOtro:
		switch {
		case item.Personalizado != nil:
			// Custom off-stock item: the product row is inserted inside the
			// checkout transaction stocked in the selling branch, so its own
			// decrement zeroes it out and removes it again.
			nuevo := &model.Otro{
				ID:          uuid.New(),
				Nombre:      item.Personalizado.Nombre,
				Categoria:   item.Personalizado.Categoria,
				PrecioCosto: item.Personalizado.PrecioCosto,
				PrecioVenta: item.PrecioUnitario,
			}
			if sucursal == model.SucursalMitre {
				nuevo.StockMitre = item.Cantidad
			} else {
				nuevo.StockLaPlata = item.Cantidad
			}
			r.productoID = nuevo.ID
			r.personalizado = nuevo
			r.categoria = &nuevo.Categoria
			r.costo = pricing.CostoOtro(nuevo)
			r.descripcion = descripcionOtro(nuevo)

		case item.ProductoID != "":
			pid, err := uuid.Parse(item.ProductoID)
			if err != nil {
				return nil, ErrProductoInvalido
			}
			o, err := s.otros.FindByID(ctx, pid)
			if err != nil {
				return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
			}
			r.productoID = pid
			r.serial = o.Serial
			r.categoria = &o.Categoria
			r.costo = pricing.CostoOtro(o)
			r.descripcion = descripcionOtro(o)

		default:
			return nil, ErrProductoInvalido
		}

	default:
		return nil, ErrProductoInvalido
	}

	if item.Descripcion != nil && *item.Descripcion != "" {
		r.descripcion = *item.Descripcion
	}

	m := pricing.MargenLinea(r.precio, r.costo, r.cantidad)
	r.subtotal = m.Total
	r.ganancia = m.Ganancia
	return &r, nil
}

// generarNumeroVenta builds the human-readable transaction number from a
// timestamp plus a short random suffix. Uniqueness is enforced by the DB
// index; a collision aborts the checkout instead of retrying.
func generarNumeroVenta() string {
	sufijo := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("V-%s-%s", time.Now().Format("20060102-150405"), sufijo)
}

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrVentaNoEncontrada
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, dto.ItemVentaResponse{
			TipoProducto:   item.TipoProducto,
			ProductoID:     item.ProductoID.String(),
			Serial:         item.Serial,
			Descripcion:    item.Descripcion,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
			Ganancia:       item.Ganancia,
		})
	}
	pagos := make([]dto.PagoRequest, 0, len(v.Pagos))
	for _, p := range v.Pagos {
		pagos = append(pagos, dto.PagoRequest{Metodo: p.Metodo, Monto: p.Monto})
	}
	return &dto.VentaResponse{
		ID:            v.ID.String(),
		Numero:        v.Numero,
		Cliente:       v.ClienteNombre,
		Sucursal:      v.Sucursal,
		Vendedor:      v.VendedorNombre,
		Items:         items,
		Pagos:         pagos,
		Total:         v.Total,
		TotalCosto:    v.TotalCosto,
		TotalGanancia: v.TotalGanancia,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
	}
}
