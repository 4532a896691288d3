package shop

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"MiniCart/internal/inventory"
	"MiniCart/pkg/kit"
)

func errorKind(err error) string {
	switch {
	case errors.Is(err, inventory.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, inventory.ErrNotFound):
		return "not_found"
	case errors.Is(err, inventory.ErrNotInCart):
		return "not_in_cart"
	case errors.Is(err, inventory.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, inventory.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, inventory.ErrCheckoutFailed):
		return "checkout_failed"
	default:
		return "internal"
	}
}

// writeEngineError surfaces engine taxonomy errors as 400 with the engine
// message verbatim. Anything else is a 500 and gets logged.
func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var ie *inventory.Error
	if !errors.As(err, &ie) || !inventory.IsClientError(err) {
		if s.Log != nil {
			s.Log.Error("engine call failed", zap.Error(err), zap.String("path", r.URL.Path))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	details := map[string]any{"kind": errorKind(err)}
	if ie.Shortage != nil {
		details["product_id"] = ie.Shortage.ProductID
		details["available"] = ie.Shortage.Available
		details["requested"] = ie.Shortage.Requested
	}
	if len(ie.Violations) > 0 {
		details["violations"] = ie.Violations
	}

	kit.WriteError(w, r, http.StatusBadRequest, ie.Msg, details)
}
