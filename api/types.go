package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire types for the 67foodstreet backend. Field names follow the backend's
// camelCase JSON; money is decimal end to end, never float64.

// Product is read-only from the customer paths; sellers mutate it through
// the seller namespace.
type Product struct {
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Stock       int             `json:"stock"`
	IsAvailable bool            `json:"isAvailable"`
	Category    string          `json:"category,omitempty"`
	SellerID    int             `json:"sellerId"`
	SellerName  string          `json:"sellerName,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// CartItem carries the stock observed at fetch time; quantity bounds are
// re-derived from it on every refresh rather than cached.
type CartItem struct {
	CartItemID  int             `json:"cartItemId"`
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// Cart is the server-authoritative aggregate; Subtotal is server-computed.
type Cart struct {
	Items      []CartItem      `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalItems int             `json:"totalItems"`
}

type AddCartItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type OrderItem struct {
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// OrderType is the closed set the backend accepts for order fulfillment.
type OrderType string

const (
	OrderTypePickup   OrderType = "Pickup"
	OrderTypeDelivery OrderType = "Delivery"
)

type CreateOrderRequest struct {
	Type            OrderType   `json:"type"`
	Items           []OrderItem `json:"items"`
	Notes           string      `json:"notes,omitempty"`
	DeliveryAddress string      `json:"deliveryAddress,omitempty"`
}

type CreateOrderResponse struct {
	Order struct {
		OrderID int             `json:"orderId"`
		Status  string          `json:"status"`
		Total   decimal.Decimal `json:"total"`
	} `json:"order"`
}

// PaymentRequest carries a method from the server-accepted vocabulary,
// see MapPaymentMethod.
type PaymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

type Order struct {
	OrderID         int             `json:"orderId"`
	Type            OrderType       `json:"type"`
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	Items           []OrderItem     `json:"items,omitempty"`
	DeliveryAddress string          `json:"deliveryAddress,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type CreateReservationRequest struct {
	ProductID       int       `json:"productId"`
	ReservationDate time.Time `json:"reservationDate"`
	NumberOfPeople  int       `json:"numberOfPeople"`
	Quantity        int       `json:"quantity"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	DeliveryMethod  string    `json:"deliveryMethod"`
	DeliveryAddress string    `json:"deliveryAddress,omitempty"`
	PaymentMethod   string    `json:"paymentMethod"`
}

type Reservation struct {
	ReservationID   int       `json:"reservationId"`
	ProductID       int       `json:"productId"`
	CustomerName    string    `json:"customerName,omitempty"`
	CustomerEmail   string    `json:"customerEmail,omitempty"`
	CustomerPhone   string    `json:"customerPhone,omitempty"`
	ReservationDate time.Time `json:"reservationDate"`
	NumberOfPeople  int       `json:"numberOfPeople"`
	Quantity        int       `json:"quantity"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

type ChatRoom struct {
	RoomID       int       `json:"roomId"`
	CustomerID   int       `json:"customerId"`
	CustomerName string    `json:"customerName,omitempty"`
	SellerID     int       `json:"sellerId"`
	SellerName   string    `json:"sellerName,omitempty"`
	LastMessage  string    `json:"lastMessage,omitempty"`
	UnreadCount  int       `json:"unreadCount"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

type ChatMessage struct {
	MessageID  int       `json:"messageId"`
	RoomID     int       `json:"roomId"`
	SenderID   int       `json:"senderId"`
	SenderType string    `json:"senderType"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
	// ClientMessageID lets the backend deduplicate resends.
	ClientMessageID string `json:"clientMessageId,omitempty"`
}

// Profile is the server-side user record attached to auth responses.
// Fields are sparse: customers have Email, sellers Username and StoreName.
type Profile struct {
	ID          int    `json:"id"`
	Name        string `json:"name,omitempty"`
	Username    string `json:"username,omitempty"`
	StoreName   string `json:"storeName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	IsVerified  bool   `json:"isVerified,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

type RegisterCustomerRequest struct {
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	Address      string `json:"address,omitempty"`
}

type RegisterSellerRequest struct {
	Username    string `json:"username"`
	StoreName   string `json:"storeName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

// AuthResponse nests the profile under a role-specific key
// ({access_token, customer|seller|admin: {...}}).
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	Customer    *Profile `json:"customer,omitempty"`
	Seller      *Profile `json:"seller,omitempty"`
	Admin       *Profile `json:"admin,omitempty"`
}

// UserProfile returns whichever role profile the response carries.
func (a *AuthResponse) UserProfile() *Profile {
	switch {
	case a.Customer != nil:
		return a.Customer
	case a.Seller != nil:
		return a.Seller
	default:
		return a.Admin
	}
}

// Seller namespace types.

type SellerProductRequest struct {
	ProductName string          `json:"productName"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Stock       int             `json:"stock"`
	IsAvailable bool            `json:"isAvailable"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

type RevenueSummary struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalOrders    int             `json:"totalOrders"`
	PendingOrders  int             `json:"pendingOrders"`
	ProductsListed int             `json:"productsListed"`
}

// Admin namespace types.

type AdminUser struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	UserType   string `json:"userType"`
	IsVerified bool   `json:"isVerified"`
}
