package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Email        string             `bson:"email" json:"email"`
	Mobile       string             `bson:"mobile" json:"mobile"`
	Password     string             `bson:"password" json:"-"`
	Address      string             `bson:"address" json:"address"`
	Bio          string             `bson:"bio" json:"bio"`
	ProfileImage string             `bson:"profileImage" json:"profileImage"`
	IsAdmin      bool               `bson:"isAdmin" json:"isAdmin"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Admin is the singleton administrative account. Exactly one record exists;
// startup reconciliation creates the default and prunes extras.
type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Service is a catalog record: a product or service belonging to exactly one
// (category, subCategory) pair of the fixed taxonomy.
type Service struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductName string             `bson:"productName" json:"productName"`
	Category    string             `bson:"category" json:"category"`
	SubCategory string             `bson:"subCategory" json:"subCategory"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Offers      string             `bson:"offers" json:"offers"`
	Review      string             `bson:"review" json:"review"`
	Rating      float64            `bson:"rating" json:"rating"`
	Duration    int                `bson:"duration" json:"duration"`
	Images      []string           `bson:"images" json:"images"`
	IsAvailable bool               `bson:"isAvailable" json:"isAvailable"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	// Category is copied from the product at insertion time.
	Category string `bson:"category" json:"category"`
}

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Order is a snapshot record, created independently of the cart.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerName  string             `bson:"customerName" json:"customerName"`
	ServiceName   string             `bson:"serviceName" json:"serviceName"`
	Amount        float64            `bson:"amount" json:"amount"`
	Status        string             `bson:"status" json:"status"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

type Payment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID   primitive.ObjectID `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Amount    float64            `bson:"amount" json:"amount"`
	Status    string             `bson:"status" json:"status"`
	Method    string             `bson:"method" json:"method"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
