package order

import (
	"context"
	"log"
	"time"
)

// View is an order with its references resolved for presentation.
// Customer is only filled for the admin listing.
type View struct {
	ID            string         `json:"id"`
	CustomerID    string         `json:"customerId"`
	Customer      *CustomerView  `json:"customer,omitempty"`
	Items         []ItemView     `json:"items"`
	TotalAmount   float64        `json:"totalAmount"`
	PaymentStatus PaymentStatus  `json:"paymentStatus"`
	OrderStatus   Status         `json:"orderStatus"`
	Address       Address        `json:"address"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// ItemView is an order line with the referenced menu item's display
// fields joined in at read time.
type ItemView struct {
	MenuItem MenuItemView `json:"menuItem"`
	Quantity int          `json:"quantity"`
}

// MenuItemView carries the display fields of a referenced menu item. A
// dangling reference (item deleted since ordering) keeps only the ID.
type MenuItemView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price,omitempty"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	Available bool    `json:"available,omitempty"`
}

type CustomerView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// populate resolves menu item references, and customer references when
// withCustomer is set. Resolution failures degrade to bare references
// rather than failing the listing.
func (s *Service) populate(ctx context.Context, orders []*Order, withCustomer bool) ([]*View, error) {
	views := make([]*View, 0, len(orders))
	for _, o := range orders {
		view := &View{
			ID:            o.ID,
			CustomerID:    o.CustomerID,
			Items:         make([]ItemView, 0, len(o.Items)),
			TotalAmount:   o.TotalAmount,
			PaymentStatus: o.PaymentStatus,
			OrderStatus:   o.OrderStatus,
			Address:       o.Address,
			CreatedAt:     o.CreatedAt,
		}

		for _, item := range o.Items {
			itemView := ItemView{MenuItem: MenuItemView{ID: item.MenuItemID}, Quantity: item.Quantity}
			if m, ok, err := s.menus.Get(ctx, item.MenuItemID); err != nil {
				log.Printf("[Order] Failed to resolve menu item %s: %v", item.MenuItemID, err)
			} else if ok {
				itemView.MenuItem = MenuItemView{
					ID:        m.ID,
					Name:      m.Name,
					Price:     m.Price,
					ImageURL:  m.ImageURL,
					Available: m.Available,
				}
			}
			view.Items = append(view.Items, itemView)
		}

		if withCustomer {
			if u, ok, err := s.users.FindByID(ctx, o.CustomerID); err != nil {
				log.Printf("[Order] Failed to resolve customer %s: %v", o.CustomerID, err)
			} else if ok {
				view.Customer = &CustomerView{ID: u.ID, Name: u.Name, Email: u.Email}
			}
		}

		views = append(views, view)
	}
	return views, nil
}
