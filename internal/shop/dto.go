package shop

import (
	"time"

	"github.com/shopspring/decimal"

	"MiniCart/internal/inventory"
)

type cartReq struct {
	ProductID *int `json:"productId"`
	Quantity  *int `json:"quantity"`
}

type productResp struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type lineItemResp struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type cartResp struct {
	Items      []lineItemResp `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPrice float64        `json:"total_price"`
}

type ackResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type orderSummaryResp struct {
	OrderID    string         `json:"order_id"`
	Items      []lineItemResp `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPrice float64        `json:"total_price"`
	PlacedAt   time.Time      `json:"placed_at"`
}

type checkoutResp struct {
	Success      bool             `json:"success"`
	Message      string           `json:"message"`
	OrderSummary orderSummaryResp `json:"order_summary"`
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func toProductResp(p inventory.Product) productResp {
	return productResp{ID: p.ID, Name: p.Name, Price: money(p.Price), Stock: p.Stock}
}

func toLineItems(items []inventory.LineItem) []lineItemResp {
	out := make([]lineItemResp, 0, len(items))
	for _, it := range items {
		out = append(out, lineItemResp{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     money(it.Price),
			Quantity:  it.Quantity,
			Subtotal:  money(it.Subtotal),
		})
	}
	return out
}

func toCartResp(v inventory.CartView) cartResp {
	return cartResp{
		Items:      toLineItems(v.Items),
		TotalItems: v.TotalItems,
		TotalPrice: money(v.TotalPrice),
	}
}

func toOrderSummary(o inventory.Order) orderSummaryResp {
	return orderSummaryResp{
		OrderID:    o.ID,
		Items:      toLineItems(o.Items),
		TotalItems: o.TotalItems,
		TotalPrice: money(o.TotalPrice),
		PlacedAt:   o.PlacedAt,
	}
}
