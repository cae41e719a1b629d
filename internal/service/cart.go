package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/model"
	"github.com/boldserve/boldserve-api/internal/repository"
)

var (
	ErrCartItemNotFound = errors.New("item not found in cart")
	ErrProductNotFound  = errors.New("product not found")
)

// Pricing rules: a fixed platform fee, a 2% surcharge on the subtotal, and
// 18% GST applied to the fee-inclusive base. Intermediate arithmetic is
// exact; amounts are rounded to 2 decimals only at the response edge.
var (
	platformFee   = decimal.NewFromInt(5)
	surchargeRate = decimal.NewFromFloat(0.02)
	gstRate       = decimal.NewFromFloat(0.18)
)

type CartService struct {
	cartRepo    repository.CartRepository
	serviceRepo repository.ServiceRepository
}

func NewCartService(cartRepo repository.CartRepository, serviceRepo repository.ServiceRepository) *CartService {
	return &CartService{cartRepo: cartRepo, serviceRepo: serviceRepo}
}

// GetCart prices the user's cart against live catalog prices. Line items
// whose product no longer resolves are dropped, never an error.
func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*dto.CartResponse, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if cart == nil {
		return &dto.CartResponse{
			Items:   []dto.PricedCartItem{},
			Summary: dto.CartSummary{PlatformFee: platformFee.InexactFloat64()},
		}, nil
	}
	items, err := s.priceItems(ctx, cart.Items)
	if err != nil {
		return nil, err
	}
	return &dto.CartResponse{Items: items, Summary: summarize(items)}, nil
}

// GetCartCount returns the line item count and plain subtotal, without fees.
func (s *CartService) GetCartCount(ctx context.Context, userID primitive.ObjectID) (*dto.CartCountResponse, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if cart == nil {
		return &dto.CartCountResponse{}, nil
	}
	items, err := s.priceItems(ctx, cart.Items)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(
			decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))),
		)
	}
	return &dto.CartCountResponse{
		TotalItems:  len(cart.Items),
		TotalAmount: total.Round(2).InexactFloat64(),
	}, nil
}

// AddItem appends a line item, or increments quantity in place when the
// product is already in the cart. The product's category is denormalized
// onto the line item at insertion time.
func (s *CartService) AddItem(ctx context.Context, userID primitive.ObjectID, productID primitive.ObjectID, quantity int) (*dto.CartResponse, error) {
	if quantity < 1 {
		quantity = 1
	}
	product, err := s.serviceRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if cart == nil {
		cart = &model.Cart{UserID: userID}
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, model.CartItem{
			ID:        primitive.NewObjectID(),
			ProductID: productID,
			Quantity:  quantity,
			Category:  product.Category,
		})
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	items, err := s.priceItems(ctx, cart.Items)
	if err != nil {
		return nil, err
	}
	return &dto.CartResponse{Items: items, Summary: summarize(items)}, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID primitive.ObjectID, itemID primitive.ObjectID, quantity int) (*dto.CartResponse, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCartItemNotFound
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	items, err := s.priceItems(ctx, cart.Items)
	if err != nil {
		return nil, err
	}
	return &dto.CartResponse{Items: items, Summary: summarize(items)}, nil
}

// RemoveItem deletes a line item. Removing the last item leaves an empty
// cart, not a deleted one.
func (s *CartService) RemoveItem(ctx context.Context, userID primitive.ObjectID, itemID primitive.ObjectID) error {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get cart: %w", err)
	}
	if cart == nil {
		return ErrCartItemNotFound
	}

	kept := cart.Items[:0]
	found := false
	for _, item := range cart.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return ErrCartItemNotFound
	}
	cart.Items = kept

	return s.cartRepo.Save(ctx, cart)
}

// priceItems resolves line items against the catalog and computes per-item
// totals from the current price. Unresolvable references are excluded.
func (s *CartService) priceItems(ctx context.Context, items []model.CartItem) ([]dto.PricedCartItem, error) {
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.serviceRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve cart items: %w", err)
	}

	priced := make([]dto.PricedCartItem, 0, len(items))
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		itemTotal := decimal.NewFromFloat(product.Price).
			Mul(decimal.NewFromInt(int64(item.Quantity)))

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		priced = append(priced, dto.PricedCartItem{
			ID:        item.ID,
			ProductID: product.ID,
			Name:      product.ProductName,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Category:  product.Category,
			Image:     image,
			ItemTotal: itemTotal.Round(2).InexactFloat64(),
		})
	}
	return priced, nil
}

// summarize aggregates priced items into the order summary:
//
//	subtotal         = Σ price*quantity
//	additionalCharge = subtotal * 2%
//	gst              = (subtotal + platformFee + additionalCharge) * 18%
//	total            = subtotal + platformFee + additionalCharge + gst
func summarize(items []dto.PricedCartItem) dto.CartSummary {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(
			decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))),
		)
	}
	charge := subtotal.Mul(surchargeRate)
	gst := subtotal.Add(platformFee).Add(charge).Mul(gstRate)
	total := subtotal.Add(platformFee).Add(charge).Add(gst)

	return dto.CartSummary{
		Subtotal:         subtotal.Round(2).InexactFloat64(),
		PlatformFee:      platformFee.InexactFloat64(),
		AdditionalCharge: charge.Round(2).InexactFloat64(),
		GST:              gst.Round(2).InexactFloat64(),
		Total:            total.Round(2).InexactFloat64(),
	}
}
