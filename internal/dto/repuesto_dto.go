package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearRepuestoRequest struct {
	Codigo       string           `json:"codigo"        validate:"required,min=2,max=50"`
	Nombre       string           `json:"nombre"        validate:"required,min=2,max=120"`
	Descripcion  *string          `json:"descripcion"`
	Marca        string           `json:"marca"         validate:"required"`
	Modelo       string           `json:"modelo"        validate:"required"`
	Stock        int              `json:"stock"         validate:"min=0"`
	StockMinimo  int              `json:"stock_minimo"  validate:"min=0"`
	PrecioCompra decimal.Decimal  `json:"precio_compra" validate:"required"`
	PrecioVenta  decimal.Decimal  `json:"precio_venta"  validate:"required"`
}

type ActualizarRepuestoRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=2,max=120"`
	Descripcion  *string          `json:"descripcion"`
	Marca        *string          `json:"marca"`
	Modelo       *string          `json:"modelo"`
	StockMinimo  *int             `json:"stock_minimo"  validate:"omitempty,min=0"`
	PrecioCompra *decimal.Decimal `json:"precio_compra"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
}

// AjustarStockRequest is a manual inventory correction, independent of orders.
type AjustarStockRequest struct {
	Cantidad int    `json:"cantidad" validate:"required,min=1"`
	Tipo     string `json:"tipo"     validate:"required,oneof=entrada salida"`
	Motivo   string `json:"motivo"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type RepuestoBusquedaFilter struct {
	Q      string `form:"q"`
	Marca  string `form:"marca"`
	Modelo string `form:"modelo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RepuestoResponse struct {
	ID           string          `json:"id"`
	Codigo       string          `json:"codigo"`
	Nombre       string          `json:"nombre"`
	Descripcion  *string         `json:"descripcion"`
	Marca        string          `json:"marca"`
	Modelo       string          `json:"modelo"`
	Stock        int             `json:"stock"`
	StockMinimo  int             `json:"stock_minimo"`
	StockBajo    bool            `json:"stock_bajo"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Activo       bool            `json:"activo"`
}

type MovimientoStockResponse struct {
	ID            string  `json:"id"`
	RepuestoID    string  `json:"repuesto_id"`
	Repuesto      string  `json:"repuesto,omitempty"`
	Tipo          string  `json:"tipo"`
	Cantidad      int     `json:"cantidad"`
	StockAnterior int     `json:"stock_anterior"`
	StockNuevo    int     `json:"stock_nuevo"`
	Motivo        string  `json:"motivo"`
	ReferenciaID  *string `json:"referencia_id"`
	CreatedAt     string  `json:"created_at"`
}

type MovimientoStockListResponse struct {
	Data  []MovimientoStockResponse `json:"data"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}
