package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"productapi/internal/auth"
	"productapi/internal/catalog"
)

// APIError is the JSON error body: {"message": ..., "error": ...}.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Err     string `json:"error,omitempty"`
}

func (e *APIError) Error() string {
	if e.Err == "" {
		return e.Message
	}
	return e.Message + ": " + e.Err
}

type apiFunc func(http.ResponseWriter, *http.Request) error

func makeHTTPHandleFunc(f apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			apiErr := toAPIError(err)
			if apiErr.Err != "" {
				slog.ErrorContext(r.Context(), "request failed",
					"method", r.Method, "path", r.URL.Path, "message", apiErr.Message, "error", apiErr.Err)
			}
			WriteJSON(w, apiErr.Status, apiErr)
		}
	}
}

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

var productOpMessages = map[string]string{
	catalog.OpCreate:   "Product creation failed",
	catalog.OpList:     "Error fetching products",
	catalog.OpFeatured: "Error fetching featured products",
	catalog.OpGet:      "Error fetching product",
	catalog.OpUpdate:   "Product update failed",
	catalog.OpDelete:   "Product deletion failed",
}

var authOpMessages = map[string]string{
	auth.OpRegister: "User registration failed",
	auth.OpLogin:    "User login failed",
}

// toAPIError maps service errors to a status and body. Anything unrecognised is a 400.
func toAPIError(err error) *APIError {
	var (
		apiErr     *APIError
		authOp     *auth.OpError
		productOp  *catalog.OpError
		validation *catalog.ValidationError
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, auth.ErrValidation):
		return &APIError{Status: http.StatusBadRequest, Message: "Please provide username and password"}
	case errors.Is(err, auth.ErrUserExists):
		return &APIError{Status: http.StatusBadRequest, Message: "User already exists"}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &APIError{Status: http.StatusBadRequest, Message: "Invalid credentials"}
	case errors.As(err, &authOp):
		return &APIError{Status: http.StatusBadRequest, Message: authOpMessages[authOp.Op], Err: authOp.Err.Error()}
	case errors.As(err, &validation):
		return &APIError{Status: http.StatusBadRequest, Message: validation.Message}
	case errors.Is(err, catalog.ErrInvalidID):
		return &APIError{Status: http.StatusBadRequest, Message: "Invalid product ID"}
	case errors.Is(err, catalog.ErrNotFound):
		return &APIError{Status: http.StatusNotFound, Message: "Product not found"}
	case errors.As(err, &productOp):
		return &APIError{Status: http.StatusBadRequest, Message: productOpMessages[productOp.Op], Err: productOp.Err.Error()}
	default:
		return &APIError{Status: http.StatusBadRequest, Message: "Request failed", Err: err.Error()}
	}
}
