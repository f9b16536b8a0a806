package handler

import (
	"errors"
	"net/http"

	"github.com/cartloom/cartloom/internal/model"
	"github.com/cartloom/cartloom/internal/server/middleware"
	"github.com/cartloom/cartloom/internal/service"
	"github.com/cartloom/cartloom/internal/store"
	"github.com/cartloom/cartloom/internal/upload"
	"github.com/cartloom/cartloom/internal/validate"
)

// AdminHandler serves the back-office API: entity tables through the query
// engine, product CRUD, order management, status toggles, and uploads.
type AdminHandler struct {
	store   *store.Store
	auth    *service.AuthService
	uploads upload.Storage
}

func NewAdminHandler(st *store.Store, auth *service.AuthService, uploads upload.Storage) *AdminHandler {
	return &AdminHandler{store: st, auth: auth, uploads: uploads}
}

// Login authenticates a back-office account and sets the session cookie.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form validate.LoginForm
	if err := readJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := form.Validate(); !errs.Ok() {
		writeValidationError(w, errs)
		return
	}

	token, p, err := h.auth.LoginAdmin(r.Context(), form.Email, form.Password)
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
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "logged out"})
}

// Me returns the authenticated admin identity.
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	writeJSON(w, http.StatusOK, model.SuccessResponse{
		Success: true,
		Data:    map[string]interface{}{"id": p.ID, "name": p.Name, "email": p.Email},
	})
}

// ListProducts serves the products table.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListProducts(r.Context(), listRequest(r))
	if err != nil {
		writeStoreError(w, err, "failed to list products")
		return
	}
	writeList(w, page.Items, page.Pagination)
}

// CreateProduct validates and inserts a product.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var form validate.ProductForm
	if err := readJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := form.Validate(); !errs.Ok() {
		writeValidationError(w, errs)
		return
	}

	p := form.Product()
	if err := h.store.CreateProduct(r.Context(), p); err != nil {
		writeStoreError(w, err, "failed to create product")
		return
	}
	writeJSON(w, http.StatusCreated, model.SuccessResponse{Success: true, Data: p})
}

// GetProduct fetches one product by id.
func (h *AdminHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	p, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "failed to load product")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Data: p})
}

// UpdateProduct validates and rewrites a product.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var form validate.ProductForm
	if err := readJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := form.Validate(); !errs.Ok() {
		writeValidationError(w, errs)
		return
	}

	p := form.Product()
	p.ID = id
	if err := h.store.UpdateProduct(r.Context(), p); err != nil {
		writeStoreError(w, err, "failed to update product")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Data: p})
}

// DeleteProduct removes a product.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		writeStoreError(w, err, "failed to delete product")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "product deleted"})
}

// toggleStatus flips one row's Active/InActive flag and reports the new
// value. The entity name is fixed by the route, never taken from input.
func (h *AdminHandler) toggleStatus(entity string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		next, err := h.store.ToggleStatus(r.Context(), entity, id)
		if err != nil {
			writeStoreError(w, err, "failed to update status")
			return
		}
		writeJSON(w, http.StatusOK, model.SuccessResponse{
			Success: true,
			Data:    map[string]interface{}{"id": id, "status": next},
		})
	}
}

// ToggleProductStatus flips a product between Active and InActive.
func (h *AdminHandler) ToggleProductStatus(w http.ResponseWriter, r *http.Request) {
	h.toggleStatus("product")(w, r)
}

// ToggleOrderStatus flips an order between Active and InActive.
func (h *AdminHandler) ToggleOrderStatus(w http.ResponseWriter, r *http.Request) {
	h.toggleStatus("order")(w, r)
}

// ToggleCustomerStatus flips a customer between Active and InActive.
func (h *AdminHandler) ToggleCustomerStatus(w http.ResponseWriter, r *http.Request) {
	h.toggleStatus("customer")(w, r)
}

// ListOrders serves the orders table with joined customer and product.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListOrders(r.Context(), listRequest(r))
	if err != nil {
		writeStoreError(w, err, "failed to list orders")
		return
	}
	writeList(w, page.Items, page.Pagination)
}

// GetOrder fetches one order by id.
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	o, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "failed to load order")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Data: o})
}

// UpdateOrder rewrites an order's delivery details and fulfillment state.
// Pricing fields are untouched; they were fixed at checkout.
func (h *AdminHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var body struct {
		validate.DeliveryForm
		ShippingStatus model.ShippingStatus `json:"shipping_status"`
	}
	if err := readJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := body.Validate(); !errs.Ok() {
		writeValidationError(w, errs)
		return
	}
	if !body.ShippingStatus.Valid() {
		writeError(w, http.StatusBadRequest, "unknown shipping status")
		return
	}

	o, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "failed to load order")
		return
	}

	o.FullName = body.FullName
	o.PhoneNo = body.PhoneNo
	o.Address = body.Address
	o.Landmark = body.Landmark
	o.Pincode = body.Pincode
	o.State = body.State
	o.City = body.City
	o.ShippingStatus = body.ShippingStatus

	if err := h.store.UpdateOrder(r.Context(), o); err != nil {
		writeStoreError(w, err, "failed to update order")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Data: o})
}

// UpdateShipping sets an order's fulfillment state.
func (h *AdminHandler) UpdateShipping(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var body struct {
		ShippingStatus model.ShippingStatus `json:"shipping_status"`
	}
	if err := readJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !body.ShippingStatus.Valid() {
		writeError(w, http.StatusBadRequest, "unknown shipping status")
		return
	}

	if err := h.store.SetShippingStatus(r.Context(), id, body.ShippingStatus); err != nil {
		writeStoreError(w, err, "failed to update shipping status")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{
		Success: true,
		Data:    map[string]interface{}{"id": id, "shipping_status": body.ShippingStatus},
	})
}

// DeleteOrder removes an order.
func (h *AdminHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.DeleteOrder(r.Context(), id); err != nil {
		writeStoreError(w, err, "failed to delete order")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "order deleted"})
}

// ListCustomers serves the customers table.
func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListCustomers(r.Context(), listRequest(r))
	if err != nil {
		writeStoreError(w, err, "failed to list customers")
		return
	}
	writeList(w, page.Items, page.Pagination)
}

// DeleteCustomer removes a customer account.
func (h *AdminHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.DeleteCustomer(r.Context(), id); err != nil {
		writeStoreError(w, err, "failed to delete customer")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "customer deleted"})
}

// ListContacts serves the contact-messages table.
func (h *AdminHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListContacts(r.Context(), listRequest(r))
	if err != nil {
		writeStoreError(w, err, "failed to list contacts")
		return
	}
	writeList(w, page.Items, page.Pagination)
}

// DeleteContact removes a contact message.
func (h *AdminHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.DeleteContact(r.Context(), id); err != nil {
		writeStoreError(w, err, "failed to delete contact")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "contact deleted"})
}

// Upload accepts one multipart image and returns its stored URL.
func (h *AdminHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// The extra headroom covers multipart framing; the file itself is
	// bounded by Save.
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(upload.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	url, err := h.uploads.Save(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		if errors.Is(err, upload.ErrUnsupportedType) {
			writeError(w, http.StatusBadRequest, "unsupported file type")
			return
		}
		if errors.Is(err, upload.ErrTooLarge) {
			writeError(w, http.StatusBadRequest, "file too large")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	writeJSON(w, http.StatusCreated, model.SuccessResponse{
		Success: true,
		Data:    map[string]interface{}{"url": url},
	})
}

// DeleteUpload removes a stored image by its public URL.
func (h *AdminHandler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if err := readJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	if err := h.uploads.Remove(r.Context(), body.URL); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove upload")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "upload removed"})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(service.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
