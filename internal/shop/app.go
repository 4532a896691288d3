// Package shop exposes the inventory engine and the order journal over HTTP.
package shop

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniCart/internal/inventory"
	"MiniCart/internal/orders"
	"MiniCart/pkg/kit"
)

const apiVersion = "1.0.0"

// Inventory is the engine surface the HTTP layer needs.
type Inventory interface {
	ListProducts() []inventory.Product
	Product(id int) (inventory.Product, error)
	AddToCart(productID, quantity int) (inventory.Ack, error)
	UpdateCart(productID, quantity int) (inventory.Ack, error)
	Cart() inventory.CartView
	Checkout() (inventory.Receipt, error)
}

type Server struct {
	Engine Inventory
	Orders orders.Store
	Log    *zap.Logger

	metrics *shopMetrics
}

// Routes builds the API router. cartWrite wraps the routes that mutate the
// cart or stock.
func (s *Server) Routes(cartWrite func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.info)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	r.Route("/api", func(api chi.Router) {
		api.Get("/products", s.listProducts)
		api.Get("/products/{id}", s.getProduct)

		api.Get("/cart", s.viewCart)
		api.Group(func(wr chi.Router) {
			wr.Use(cartWrite)
			wr.Post("/cart/add", s.addToCart)
			wr.Patch("/cart/update", s.updateCart)
			wr.Post("/cart/checkout", s.checkout)
		})

		api.Get("/orders/{id}", s.getOrder)
	})

	return r
}

func (s *Server) info(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "MiniCart API",
		"version": apiVersion,
		"endpoints": map[string]string{
			"products":    "/api/products",
			"cart_add":    "/api/cart/add",
			"cart_update": "/api/cart/update",
			"cart_view":   "/api/cart",
			"checkout":    "/api/cart/checkout",
			"orders":      "/api/orders/{id}",
		},
	})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Orders.Ping(ctx); err != nil {
		if s.Log != nil {
			s.Log.Warn("readyz failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) listProducts(w http.ResponseWriter, _ *http.Request) {
	products := s.Engine.ListProducts()

	out := make([]productResp, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResp(p))
	}
	kit.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", map[string]any{"id": raw})
		return
	}

	p, err := s.Engine.Product(id)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
			return
		}
		s.writeEngineError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, toProductResp(p))
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	productID, qty, ok := s.decodeCartReq(w, r)
	if !ok {
		return
	}

	ack, err := s.Engine.AddToCart(productID, qty)
	s.metrics.mutation("add", err)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, ackResp{Success: true, Message: ack.Message})
}

func (s *Server) updateCart(w http.ResponseWriter, r *http.Request) {
	productID, qty, ok := s.decodeCartReq(w, r)
	if !ok {
		return
	}

	ack, err := s.Engine.UpdateCart(productID, qty)
	s.metrics.mutation("update", err)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, ackResp{Success: true, Message: ack.Message})
}

func (s *Server) viewCart(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, toCartResp(s.Engine.Cart()))
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	rcpt, err := s.Engine.Checkout()
	s.metrics.checkout(err)
	if err != nil {
		if s.Log != nil && errors.Is(err, inventory.ErrCheckoutFailed) {
			s.Log.Info("checkout rejected", zap.Error(err))
		}
		s.writeEngineError(w, r, err)
		return
	}

	// Stock is already debited, so a journal failure must not turn into a
	// failed checkout for the client. The write must also outlive a client
	// that hangs up mid-request.
	if err := s.Orders.Create(context.WithoutCancel(r.Context()), rcpt.Order); err != nil && s.Log != nil {
		s.Log.Error("journal order failed", zap.Error(err), zap.String("order_id", rcpt.Order.ID))
	}

	if s.Log != nil {
		s.Log.Info("order placed",
			zap.String("order_id", rcpt.Order.ID),
			zap.Int("total_items", rcpt.Order.TotalItems),
			zap.String("total_price", rcpt.Order.TotalPrice.StringFixed(2)),
		)
	}

	kit.WriteJSON(w, http.StatusOK, checkoutResp{
		Success:      true,
		Message:      rcpt.Message,
		OrderSummary: toOrderSummary(rcpt.Order),
	})
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, found, err := s.Orders.Get(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("journal get order failed", zap.Error(err), zap.String("order_id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, toOrderSummary(o))
}

func (s *Server) decodeCartReq(w http.ResponseWriter, r *http.Request) (productID, qty int, ok bool) {
	var req cartReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return 0, 0, false
	}
	if req.ProductID == nil || req.Quantity == nil {
		kit.WriteError(w, r, http.StatusBadRequest, "productId and quantity required", nil)
		return 0, 0, false
	}
	return *req.ProductID, *req.Quantity, true
}
