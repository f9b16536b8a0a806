package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cartloom/cartloom/internal/model"
	"github.com/cartloom/cartloom/internal/server/middleware"
	"github.com/cartloom/cartloom/internal/service"
	"github.com/cartloom/cartloom/internal/store"
	"github.com/cartloom/cartloom/internal/validate"
)

// Shipping pricing for checkout. Orders at or above the threshold ship
// free.
const (
	FlatShipping     = 50.0
	FreeShippingOver = 500.0
)

// StorefrontHandler serves the public shop API: catalog, checkout, the
// contact form, and customer accounts.
type StorefrontHandler struct {
	store *store.Store
	auth  *service.AuthService
}

func NewStorefrontHandler(st *store.Store, auth *service.AuthService) *StorefrontHandler {
	return &StorefrontHandler{store: st, auth: auth}
}

// Catalog lists active products. The sort query parameter accepts newest,
// price_asc, price_desc, and reviews; anything else is newest-first.
// home=true restricts the list to home-page picks.
func (h *StorefrontHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	homeOnly := q.Get("home") == "true" || q.Get("home") == "1"

	products, err := h.store.ListCatalog(r.Context(), q.Get("sort"), homeOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Data: products})
}

// ProductBySKU fetches one active product by SKU.
func (h *StorefrontHandler) ProductBySKU(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	p, err := h.store.GetProductBySKU(r.Context(), sku)
	if err != nil {
		writeStoreError(w, err, "failed to load product")
		return
	}
	if p.Status != model.StatusActive {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Data: p})
}

// PlaceOrder validates the checkout form and records the order. Prices are
// computed from the product row, never trusted from the client. A valid
// customer session links the order to the account; guests order freely.
func (h *StorefrontHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var form validate.OrderForm
	if err := readJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := form.Validate(); !errs.Ok() {
		writeValidationError(w, errs)
		return
	}

	p, err := h.store.GetProduct(r.Context(), form.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "unknown product")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to place order")
		return
	}
	if p.Status != model.StatusActive {
		writeError(w, http.StatusBadRequest, "product is not available")
		return
	}

	unit := p.SalePrice
	if unit <= 0 {
		unit = p.RegularPrice
	}
	subtotal := unit * float64(form.Quantity)
	shipping := FlatShipping
	if subtotal >= FreeShippingOver {
		shipping = 0
	}

	o := &model.Order{
		ProductID:  &p.ID,
		FullName:   strings.TrimSpace(form.FullName),
		PhoneNo:    form.PhoneNo,
		Address:    strings.TrimSpace(form.Address),
		Landmark:   strings.TrimSpace(form.Landmark),
		Pincode:    form.Pincode,
		State:      strings.TrimSpace(form.State),
		City:       strings.TrimSpace(form.City),
		Quantity:   form.Quantity,
		Subtotal:   subtotal,
		Shipping:   shipping,
		TotalPrice: subtotal + shipping,
	}
	if cust := h.sessionCustomer(r); cust != nil {
		o.CustomerID = &cust.ID
	}

	if err := h.store.CreateOrder(r.Context(), o); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to place order")
		return
	}
	writeJSON(w, http.StatusCreated, model.SuccessResponse{Success: true, Data: o})
}

// Contact records a contact-form submission.
func (h *StorefrontHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var form validate.ContactForm
	if err := readJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := form.Validate(); !errs.Ok() {
		writeValidationError(w, errs)
		return
	}

	c := &model.Contact{
		Name:    strings.TrimSpace(form.Name),
		Email:   form.Email,
		Phone:   form.Phone,
		Message: strings.TrimSpace(form.Message),
	}
	if err := h.store.CreateContact(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to send message")
		return
	}
	writeJSON(w, http.StatusCreated, model.SuccessResponse{Success: true, Message: "message received"})
}

// Register creates a customer account and starts a session.
func (h *StorefrontHandler) Register(w http.ResponseWriter, r *http.Request) {
	var form validate.RegisterForm
	if err := readJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := form.Validate(); !errs.Ok() {
		writeValidationError(w, errs)
		return
	}

	token, p, err := h.auth.RegisterCustomer(r.Context(),
		strings.TrimSpace(form.Name), form.Email, form.MobileNo, form.Password)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "an account with this email already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, model.SuccessResponse{
		Success: true,
		Data: map[string]interface{}{
			"token": token,
			"name":  p.Name,
			"email": p.Email,
		},
	})
}

// Login authenticates a customer and starts a session.
func (h *StorefrontHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form validate.LoginForm
	if err := readJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := form.Validate(); !errs.Ok() {
		writeValidationError(w, errs)
		return
	}

	token, p, err := h.auth.LoginCustomer(r.Context(), form.Email, form.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, model.SuccessResponse{
		Success: true,
		Data: map[string]interface{}{
			"token": token,
			"name":  p.Name,
			"email": p.Email,
		},
	})
}

// Logout clears the session cookie.
func (h *StorefrontHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "logged out"})
}

// Me returns the authenticated customer identity.
func (h *StorefrontHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	writeJSON(w, http.StatusOK, model.SuccessResponse{
		Success: true,
		Data:    map[string]interface{}{"id": p.ID, "name": p.Name, "email": p.Email},
	})
}

// sessionCustomer resolves an optional customer session from the request.
// Checkout works for guests, so token problems are ignored.
func (h *StorefrontHandler) sessionCustomer(r *http.Request) *service.Principal {
	token := ""
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token = strings.TrimPrefix(auth, "Bearer ")
	} else if c, err := r.Cookie(middleware.SessionCookie); err == nil {
		token = c.Value
	}
	if token == "" {
		return nil
	}
	p, err := h.auth.ValidateToken(token)
	if err != nil || p.Role != service.RoleCustomer {
		return nil
	}
	return p
}
