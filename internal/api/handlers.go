package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"productapi/internal/model"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &APIError{Status: http.StatusBadRequest, Message: "Invalid request body", Err: err.Error()}
	}
	return nil
}

func (s *APIServer) handleRegister(w http.ResponseWriter, r *http.Request) error {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	token, err := s.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return WriteJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (s *APIServer) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *APIServer) handleCreateProduct(w http.ResponseWriter, r *http.Request) error {
	var in model.Product
	if err := decodeJSON(w, r, &in); err != nil {
		return err
	}
	slog.DebugContext(r.Context(), "received product data", "product", in)

	product, err := s.products.Create(r.Context(), in)
	if err != nil {
		return err
	}
	return WriteJSON(w, http.StatusCreated, product)
}

func (s *APIServer) handleListProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := s.products.List(r.Context())
	if err != nil {
		return err
	}
	return WriteJSON(w, http.StatusOK, products)
}

func (s *APIServer) handleFeaturedProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := s.products.Featured(r.Context())
	if err != nil {
		return err
	}
	return WriteJSON(w, http.StatusOK, products)
}

func (s *APIServer) handleProductsByPrice(w http.ResponseWriter, r *http.Request) error {
	products, err := s.products.CheaperThan(r.Context(), mux.Vars(r)["maxPrice"])
	if err != nil {
		return err
	}
	return WriteJSON(w, http.StatusOK, products)
}

func (s *APIServer) handleProductsByRating(w http.ResponseWriter, r *http.Request) error {
	products, err := s.products.RatedAbove(r.Context(), mux.Vars(r)["minRating"])
	if err != nil {
		return err
	}
	return WriteJSON(w, http.StatusOK, products)
}

func (s *APIServer) handleGetProduct(w http.ResponseWriter, r *http.Request) error {
	product, err := s.products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	return WriteJSON(w, http.StatusOK, product)
}

func (s *APIServer) handleUpdateProduct(w http.ResponseWriter, r *http.Request) error {
	var patch model.ProductPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		return err
	}
	product, err := s.products.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		return err
	}
	return WriteJSON(w, http.StatusOK, product)
}

func (s *APIServer) handleDeleteProduct(w http.ResponseWriter, r *http.Request) error {
	if err := s.products.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		return err
	}
	return WriteJSON(w, http.StatusOK, messageResponse{Message: "Product deleted"})
}
