package dto

import "github.com/shopspring/decimal"

type ComprobanteResponse struct {
	ID         string          `json:"id"`
	VentaID    string          `json:"venta_id"`
	Tipo       string          `json:"tipo"`
	MontoTotal decimal.Decimal `json:"monto_total"`
	Estado     string          `json:"estado"`
	PDFUrl     *string         `json:"pdf_url"`
	CreatedAt  string          `json:"created_at"`
}
