package validate

import (
	"strings"

	"github.com/cartloom/cartloom/internal/model"
)

// ProductForm is the admin create/update payload for a product.
type ProductForm struct {
	Title        string          `json:"title"`
	SKU          string          `json:"sku"`
	MainImage    string          `json:"main_image"`
	Images       model.ImageList `json:"images"`
	RegularPrice float64         `json:"regular_price"`
	SalePrice    float64         `json:"sale_price"`
	Rating       float64         `json:"rating"`
	Review       int64           `json:"review"`
	Desc         string          `json:"desc"`
	HomePage     bool            `json:"home_page"`
	Status       model.Status    `json:"status"`
	Shorting     string          `json:"shorting"`
}

func (f *ProductForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if !between(f.Title, 2, 255) {
		errs["title"] = "title must be between 2 and 255 characters"
	}
	if !between(f.SKU, 1, 255) {
		errs["sku"] = "sku is required"
	}
	if f.RegularPrice < 0 {
		errs["regular_price"] = "regular price cannot be negative"
	}
	if f.SalePrice < 0 {
		errs["sale_price"] = "sale price cannot be negative"
	}
	if f.SalePrice > 0 && f.RegularPrice > 0 && f.SalePrice > f.RegularPrice {
		errs["sale_price"] = "sale price cannot exceed regular price"
	}
	if f.Rating < 0 || f.Rating > 5 {
		errs["rating"] = "rating must be between 0 and 5"
	}
	if f.Review < 0 {
		errs["review"] = "review count cannot be negative"
	}
	if f.Status != "" && !f.Status.Valid() {
		errs["status"] = "status must be Active or InActive"
	}
	return errs
}

// Product builds the model from a validated form.
func (f *ProductForm) Product() *model.Product {
	return &model.Product{
		Title:        strings.TrimSpace(f.Title),
		SKU:          strings.TrimSpace(f.SKU),
		MainImage:    f.MainImage,
		Images:       f.Images,
		RegularPrice: f.RegularPrice,
		SalePrice:    f.SalePrice,
		Rating:       f.Rating,
		Review:       f.Review,
		Desc:         f.Desc,
		HomePage:     f.HomePage,
		Status:       f.Status,
		Shorting:     f.Shorting,
	}
}

// OrderForm is the storefront checkout payload.
type OrderForm struct {
	ProductID  int64   `json:"product_id"`
	FullName   string  `json:"full_name"`
	PhoneNo    string  `json:"phone_no"`
	Address    string  `json:"address"`
	Landmark   string  `json:"landmark"`
	Pincode    string  `json:"pincode"`
	State      string  `json:"state"`
	City       string  `json:"city"`
	Quantity   int64   `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	TotalPrice float64 `json:"total_price"`
}

func (f *OrderForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if f.ProductID <= 0 {
		errs["product_id"] = "product is required"
	}
	if !between(f.FullName, 2, 255) {
		errs["full_name"] = "full name must be between 2 and 255 characters"
	}
	if !digits(f.PhoneNo, 7, 15) {
		errs["phone_no"] = "phone number must be 7 to 15 digits"
	}
	if !between(f.Address, 5, 500) {
		errs["address"] = "address must be between 5 and 500 characters"
	}
	if f.Landmark != "" && !between(f.Landmark, 2, 200) {
		errs["landmark"] = "landmark must be between 2 and 200 characters"
	}
	if !digits(f.Pincode, 4, 6) {
		errs["pincode"] = "pincode must be 4 to 6 digits"
	}
	if !between(f.State, 2, 100) {
		errs["state"] = "state must be between 2 and 100 characters"
	}
	if !between(f.City, 2, 100) {
		errs["city"] = "city must be between 2 and 100 characters"
	}
	if f.Quantity < 1 {
		errs["quantity"] = "quantity must be at least 1"
	}
	return errs
}

// DeliveryForm is the back-office order edit payload: delivery details only,
// pricing stays as fixed at checkout.
type DeliveryForm struct {
	FullName string `json:"full_name"`
	PhoneNo  string `json:"phone_no"`
	Address  string `json:"address"`
	Landmark string `json:"landmark"`
	Pincode  string `json:"pincode"`
	State    string `json:"state"`
	City     string `json:"city"`
}

func (f *DeliveryForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if !between(f.FullName, 2, 255) {
		errs["full_name"] = "full name must be between 2 and 255 characters"
	}
	if !digits(f.PhoneNo, 7, 15) {
		errs["phone_no"] = "phone number must be 7 to 15 digits"
	}
	if !between(f.Address, 5, 500) {
		errs["address"] = "address must be between 5 and 500 characters"
	}
	if f.Landmark != "" && !between(f.Landmark, 2, 200) {
		errs["landmark"] = "landmark must be between 2 and 200 characters"
	}
	if !digits(f.Pincode, 4, 6) {
		errs["pincode"] = "pincode must be 4 to 6 digits"
	}
	if !between(f.State, 2, 100) {
		errs["state"] = "state must be between 2 and 100 characters"
	}
	if !between(f.City, 2, 100) {
		errs["city"] = "city must be between 2 and 100 characters"
	}
	return errs
}

// ContactForm is the public contact-page payload.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (f *ContactForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if !between(f.Name, 2, 255) {
		errs["name"] = "name must be between 2 and 255 characters"
	}
	if !validEmail(f.Email) {
		errs["email"] = "a valid email is required"
	}
	if f.Phone != "" && !digits(f.Phone, 7, 15) {
		errs["phone"] = "phone number must be 7 to 15 digits"
	}
	if !between(f.Message, 2, 2000) {
		errs["message"] = "message must be between 2 and 2000 characters"
	}
	return errs
}

// RegisterForm is the storefront sign-up payload.
type RegisterForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	MobileNo        string `json:"mobile_no"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (f *RegisterForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if !between(f.Name, 2, 255) {
		errs["name"] = "name must be between 2 and 255 characters"
	}
	if !validEmail(f.Email) {
		errs["email"] = "a valid email is required"
	}
	if f.MobileNo != "" && !digits(f.MobileNo, 7, 15) {
		errs["mobile_no"] = "mobile number must be 7 to 15 digits"
	}
	if len(f.Password) < 6 {
		errs["password"] = "password must be at least 6 characters"
	}
	if f.ConfirmPassword != f.Password {
		errs["confirm_password"] = "passwords do not match"
	}
	return errs
}

// LoginForm is the shared admin and customer login payload.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f *LoginForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if !validEmail(f.Email) {
		errs["email"] = "a valid email is required"
	}
	if f.Password == "" {
		errs["password"] = "password is required"
	}
	return errs
}
