package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryResponse resumen de ventas y donaciones.
type SalesSummaryResponse struct {
	GeneratedAt    time.Time       `json:"generated_at"`
	TotalVendas    decimal.Decimal `json:"total_vendas"`
	VendaDia       decimal.Decimal `json:"venda_dia"`
	VendasCount    int             `json:"vendas_count"`
	VendasDiaCount int             `json:"vendas_dia_count"`
	TotalDoacoes   decimal.Decimal `json:"total_doacoes"`
	DoacoesCount   int             `json:"doacoes_count"`
	ByStatus       map[string]int  `json:"by_status"`
}
