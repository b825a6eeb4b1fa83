package dto

import "github.com/shopspring/decimal"

// ResumenDiarioResponse aggregates the committed sales of one day.
// Margin figures come from the frozen per-item values, never recomputed
// against the live catalog.
type ResumenDiarioResponse struct {
	Fecha          string                     `json:"fecha"`
	CantidadVentas int                        `json:"cantidad_ventas"`
	TotalVendido   decimal.Decimal            `json:"total_vendido"`
	TotalCosto     decimal.Decimal            `json:"total_costo"`
	TotalGanancia  decimal.Decimal            `json:"total_ganancia"`
	PorMetodo      map[string]decimal.Decimal `json:"por_metodo"`
}
