package dto

import "github.com/shopspring/decimal"

// ─── Computadoras ────────────────────────────────────────────────────────────

type CrearComputadoraRequest struct {
	Serial            string          `json:"serial"             validate:"required,min=3"`
	Modelo            string          `json:"modelo"             validate:"required,min=2"`
	Procesador        string          `json:"procesador"`
	RAM               string          `json:"ram"`
	SSD               string          `json:"ssd"`
	Pantalla          string          `json:"pantalla"`
	Idioma            string          `json:"idioma"`
	Color             string          `json:"color"`
	PrecioCosto       decimal.Decimal `json:"precio_costo"       validate:"min=0"`
	CostosAdicionales decimal.Decimal `json:"costos_adicionales" validate:"min=0"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"       validate:"min=0"`
	Sucursal          string          `json:"sucursal"           validate:"required,oneof=la_plata mitre"`
	FotoURL           *string         `json:"foto_url"           validate:"omitempty,url"`
}

type ComputadoraResponse struct {
	ID                string          `json:"id"`
	Serial            string          `json:"serial"`
	Modelo            string          `json:"modelo"`
	Procesador        string          `json:"procesador"`
	RAM               string          `json:"ram"`
	SSD               string          `json:"ssd"`
	Pantalla          string          `json:"pantalla"`
	PrecioCosto       decimal.Decimal `json:"precio_costo"`
	CostosAdicionales decimal.Decimal `json:"costos_adicionales"`
	PrecioCostoTotal  decimal.Decimal `json:"precio_costo_total"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"`
	Sucursal          string          `json:"sucursal"`
	Disponible        bool            `json:"disponible"`
	FotoURL           *string         `json:"foto_url"`
}

// ─── Celulares ───────────────────────────────────────────────────────────────

type CrearCelularRequest struct {
	Serial            string          `json:"serial"             validate:"required,min=3"`
	Modelo            string          `json:"modelo"             validate:"required,min=2"`
	Marca             string          `json:"marca"              validate:"required"`
	Capacidad         string          `json:"capacidad"`
	Color             string          `json:"color"`
	BateriaPct        *int            `json:"bateria_pct"        validate:"omitempty,min=0,max=100"`
	Estado            string          `json:"estado"             validate:"omitempty,oneof=nuevo usado"`
	PrecioCosto       decimal.Decimal `json:"precio_costo"       validate:"min=0"`
	CostosAdicionales decimal.Decimal `json:"costos_adicionales" validate:"min=0"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"       validate:"min=0"`
	Sucursal          string          `json:"sucursal"           validate:"required,oneof=la_plata mitre"`
	FotoURL           *string         `json:"foto_url"           validate:"omitempty,url"`
}

type CelularResponse struct {
	ID               string          `json:"id"`
	Serial           string          `json:"serial"`
	Modelo           string          `json:"modelo"`
	Marca            string          `json:"marca"`
	Capacidad        string          `json:"capacidad"`
	Color            string          `json:"color"`
	BateriaPct       *int            `json:"bateria_pct"`
	Estado           string          `json:"estado"`
	PrecioCostoTotal decimal.Decimal `json:"precio_costo_total"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"`
	Sucursal         string          `json:"sucursal"`
	Disponible       bool            `json:"disponible"`
	FotoURL          *string         `json:"foto_url"`
}

// ─── Otros ───────────────────────────────────────────────────────────────────

type CrearOtroRequest struct {
	Nombre            string          `json:"nombre"             validate:"required,min=2"`
	Categoria         string          `json:"categoria"          validate:"required"`
	Serial            *string         `json:"serial"`
	PrecioCosto       decimal.Decimal `json:"precio_costo"       validate:"min=0"`
	CostosAdicionales decimal.Decimal `json:"costos_adicionales" validate:"min=0"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"       validate:"min=0"`
	StockLaPlata      int             `json:"stock_la_plata"     validate:"min=0"`
	StockMitre        int             `json:"stock_mitre"        validate:"min=0"`
	FotoURL           *string         `json:"foto_url"           validate:"omitempty,url"`
}

type AjustarStockOtroRequest struct {
	Sucursal string `json:"sucursal" validate:"required,oneof=la_plata mitre"`
	Delta    int    `json:"delta"    validate:"required"`
	Motivo   string `json:"motivo"   validate:"required,min=3"`
}

type OtroResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Categoria    string          `json:"categoria"`
	Serial       *string         `json:"serial"`
	PrecioCosto  decimal.Decimal `json:"precio_costo"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	StockLaPlata int             `json:"stock_la_plata"`
	StockMitre   int             `json:"stock_mitre"`
	StockTotal   int             `json:"stock_total"`
	FotoURL      *string         `json:"foto_url"`
}

// ─── Shared ──────────────────────────────────────────────────────────────────

// CatalogoFilter is shared by the three catalog listings.
type CatalogoFilter struct {
	Busqueda  string `form:"q"`
	Categoria string `form:"categoria"`
	Sucursal  string `form:"sucursal"`
	// Disponible: "false" = vendidos, "all" = todos, default = disponibles
	Disponible string `form:"disponible"`
}
