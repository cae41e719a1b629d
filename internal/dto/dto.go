package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/model"
)

// --- Auth ---

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Mobile   string `json:"mobile"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type AdminLoginResponse struct {
	// Token carries the "Bearer " prefix already; callers must not re-add it.
	Token string `json:"token"`
	Admin struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	} `json:"admin"`
}

type UserResponse struct {
	ID       primitive.ObjectID `json:"id"`
	FullName string             `json:"fullName"`
	Email    string             `json:"email"`
	Mobile   string             `json:"mobile"`
	Address  string             `json:"address"`
	Bio      string             `json:"bio"`
	IsAdmin  bool               `json:"isAdmin"`
}

func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Mobile:   u.Mobile,
		Address:  u.Address,
		Bio:      u.Bio,
		IsAdmin:  u.IsAdmin,
	}
}

type UpdateProfileRequest struct {
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	Bio     *string `json:"bio"`
}

// --- Catalog ---

type CreateServiceRequest struct {
	Category    string  `form:"category" binding:"required"`
	SubCategory string  `form:"subCategory" binding:"required"`
	ProductName string  `form:"productName" binding:"required"`
	Price       float64 `form:"price" binding:"required,min=0"`
	Description string  `form:"description"`
	Offers      string  `form:"offers"`
	Review      string  `form:"review"`
	Rating      float64 `form:"rating" binding:"min=0,max=5"`
	Duration    int     `form:"duration"`
}

type UpdateServiceRequest struct {
	ProductName *string  `json:"productName"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Description *string  `json:"description"`
	Offers      *string  `json:"offers"`
	Review      *string  `json:"review"`
	Rating      *float64 `json:"rating" binding:"omitempty,min=0,max=5"`
	IsAvailable *bool    `json:"isAvailable"`
}

type ListServicesRequest struct {
	Category    string `form:"category"`
	SubCategory string `form:"subCategory"`
}

// --- Cart ---

type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// PricedCartItem is a line item with its live catalog price applied.
type PricedCartItem struct {
	ID        primitive.ObjectID `json:"id"`
	ProductID primitive.ObjectID `json:"productId"`
	Name      string             `json:"name"`
	Price     float64            `json:"price"`
	Quantity  int                `json:"quantity"`
	Category  string             `json:"category"`
	Image     string             `json:"image,omitempty"`
	ItemTotal float64            `json:"itemTotal"`
}

type CartSummary struct {
	Subtotal         float64 `json:"subtotal"`
	PlatformFee      float64 `json:"platformFee"`
	AdditionalCharge float64 `json:"additionalCharge"`
	GST              float64 `json:"gst"`
	Total            float64 `json:"total"`
}

type CartResponse struct {
	Items   []PricedCartItem `json:"items"`
	Summary CartSummary      `json:"summary"`
}

type CartCountResponse struct {
	TotalItems  int     `json:"totalItems"`
	TotalAmount float64 `json:"totalAmount"`
}

// --- Orders ---

type CreateOrderRequest struct {
	CustomerName  string  `json:"customerName" binding:"required"`
	ServiceName   string  `json:"serviceName" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,min=0"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
}

type UpdateOrderRequest struct {
	CustomerName  *string  `json:"customerName"`
	ServiceName   *string  `json:"serviceName"`
	Amount        *float64 `json:"amount" binding:"omitempty,min=0"`
	Status        *string  `json:"status"`
	PaymentStatus *string  `json:"paymentStatus"`
}

// --- Payments ---

type CreatePaymentRequest struct {
	OrderID string  `json:"orderId"`
	Amount  float64 `json:"amount" binding:"required,min=0"`
	Status  string  `json:"status"`
	Method  string  `json:"method"`
}

type UpdatePaymentRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- Dashboard ---

type DashboardStats struct {
	TotalUsers   int64   `json:"totalUsers"`
	TotalOrders  int64   `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
}
