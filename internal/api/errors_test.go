package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"productapi/internal/auth"
	"productapi/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func TestToAPIError(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name    string
		err     error
		status  int
		message string
		detail  string
	}{
		{"conflict", auth.ErrUserExists, http.StatusBadRequest, "User already exists", ""},
		{"credentials", auth.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials", ""},
		{"registration", &auth.OpError{Op: auth.OpRegister, Err: cause}, http.StatusBadRequest, "User registration failed", "connection reset"},
		{"login", &auth.OpError{Op: auth.OpLogin, Err: cause}, http.StatusBadRequest, "User login failed", "connection reset"},
		{"validation", &catalog.ValidationError{Message: "Invalid price"}, http.StatusBadRequest, "Invalid price", ""},
		{"invalid id", catalog.ErrInvalidID, http.StatusBadRequest, "Invalid product ID", ""},
		{"not found", fmt.Errorf("wrapped: %w", catalog.ErrNotFound), http.StatusNotFound, "Product not found", ""},
		{"creation", &catalog.OpError{Op: catalog.OpCreate, Err: cause}, http.StatusBadRequest, "Product creation failed", "connection reset"},
		{"deletion", &catalog.OpError{Op: catalog.OpDelete, Err: cause}, http.StatusBadRequest, "Product deletion failed", "connection reset"},
		{"featured", &catalog.OpError{Op: catalog.OpFeatured, Err: cause}, http.StatusBadRequest, "Error fetching featured products", "connection reset"},
		{"unknown", cause, http.StatusBadRequest, "Request failed", "connection reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toAPIError(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.message, got.Message)
			assert.Equal(t, tt.detail, got.Err)
		})
	}
}
