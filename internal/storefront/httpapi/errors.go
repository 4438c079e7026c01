package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartapp "github.com/dwikikusuma/stylehub/internal/cart/app"
	catalogapp "github.com/dwikikusuma/stylehub/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/stylehub/internal/checkout/app"
	checkoutdomain "github.com/dwikikusuma/stylehub/internal/checkout/domain"
	compareapp "github.com/dwikikusuma/stylehub/internal/compare/app"
	wishlistapp "github.com/dwikikusuma/stylehub/internal/wishlist/app"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// toStatus classifies a service error as a gRPC status so every transport
// agrees on what went wrong.
func toStatus(err error) *status.Status {
	if st, ok := status.FromError(err); ok {
		return st
	}

	switch {
	case errors.Is(err, checkoutdomain.ErrValidation),
		errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrMalformedSnapshot),
		errors.Is(err, catalogapp.ErrInvalidInput):
		return status.New(codes.InvalidArgument, err.Error())
	case errors.Is(err, cartapp.ErrUnknownProduct),
		errors.Is(err, catalogapp.ErrUnknownProduct),
		errors.Is(err, wishlistapp.ErrUnknownProduct),
		errors.Is(err, compareapp.ErrUnknownProduct),
		errors.Is(err, checkoutapp.ErrSessionNotFound):
		return status.New(codes.NotFound, err.Error())
	case errors.Is(err, checkoutdomain.ErrEmptyCart),
		errors.Is(err, checkoutdomain.ErrInvalidTransition),
		errors.Is(err, compareapp.ErrCompareFull):
		return status.New(codes.FailedPrecondition, err.Error())
	case errors.Is(err, cartapp.ErrPersistenceUnavailable),
		errors.Is(err, checkoutapp.ErrClosed):
		return status.New(codes.Unavailable, err.Error())
	default:
		return status.New(codes.Internal, err.Error())
	}
}

func httpStatusFromGRPC(err error) (int, string, string) {
	st, ok := status.FromError(err)
	if !ok {
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return http.StatusBadRequest, "INVALID_ARGUMENT", st.Message()
	case codes.NotFound:
		return http.StatusNotFound, "NOT_FOUND", st.Message()
	case codes.FailedPrecondition:
		return http.StatusConflict, "FAILED_PRECONDITION", st.Message()
	case codes.Unavailable, codes.DeadlineExceeded:
		return http.StatusServiceUnavailable, "UNAVAILABLE", st.Message()
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

func fieldOf(err error) string {
	var missing *checkoutdomain.MissingFieldError
	if errors.As(err, &missing) {
		return missing.Field
	}
	var perr *checkoutdomain.PaymentError
	if errors.As(err, &perr) {
		return perr.Field
	}
	return ""
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	httpStatus, code, msg := httpStatusFromGRPC(toStatus(err).Err())
	if httpStatus >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("err", err),
		)
	}
	writeJSON(w, httpStatus, errorBody{Error: errorDetail{Code: code, Message: msg, Field: fieldOf(err)}})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request body: %v", err)
	}
	return nil
}
