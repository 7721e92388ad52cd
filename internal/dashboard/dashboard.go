// Package dashboard projects the ledger and directory into the three role views.
package dashboard

import (
	"yoyo-delivery/internal/domain"
	"yoyo-delivery/internal/geo"
	"yoyo-delivery/internal/session"
)

// Orders is the read side of the ledger.
type Orders interface {
	Filter(f domain.Filter) []domain.Order
}

// Accounts is the read side of the directory.
type Accounts interface {
	Get(id int64) (domain.Account, bool)
	Couriers() []domain.Account
}

// Dashboard builds role views. It holds no state of its own.
type Dashboard struct {
	orders   Orders
	accounts Accounts
}

// New returns a Dashboard over orders and accounts.
func New(orders Orders, accounts Accounts) *Dashboard {
	return &Dashboard{orders: orders, accounts: accounts}
}

// Intake is the customer order form.
type Intake struct {
	TimeSlots []string `json:"timeSlots"`
}

// Courier is a courier as shown to the manager.
type Courier struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Card is an order on the dispatch board.
type Card struct {
	domain.Order
	CourierName string `json:"courierName,omitempty"`
}

// Column groups the board cards of one status.
type Column struct {
	Status domain.OrderStatus `json:"status"`
	Count  int                `json:"count"`
	Orders []Card             `json:"orders"`
}

// Dispatch is the manager board.
type Dispatch struct {
	Columns  []Column  `json:"columns"`
	Couriers []Courier `json:"couriers"`
}

// Stop is an order on a courier's list with where to drive next.
type Stop struct {
	domain.Order
	Target        string `json:"target"`
	NavigationURL string `json:"navigationUrl"`
}

// Delivery is the courier's work list.
type Delivery struct {
	CourierID int64  `json:"courierId"`
	Orders    []Stop `json:"orders"`
}

// Projection is whatever the current role sees. Exactly one body is set,
// except for the login view which has none.
type Projection struct {
	View     domain.View `json:"view"`
	Intake   *Intake     `json:"intake,omitempty"`
	Dispatch *Dispatch   `json:"dispatch,omitempty"`
	Delivery *Delivery   `json:"delivery,omitempty"`
}

// Intake returns the customer form data.
func (d *Dashboard) Intake() Intake {
	slots := make([]string, len(domain.TimeSlots))
	copy(slots, domain.TimeSlots[:])
	return Intake{TimeSlots: slots}
}

// Dispatch returns the filtered orders split into one column per status.
func (d *Dashboard) Dispatch(f domain.Filter) Dispatch {
	couriers := d.accounts.Couriers()
	names := make(map[int64]string, len(couriers))
	refs := make([]Courier, 0, len(couriers))
	for _, c := range couriers {
		names[c.ID] = c.Name
		refs = append(refs, Courier{ID: c.ID, Name: c.Name})
	}

	columns := make([]Column, len(domain.OrderStatuses))
	pos := make(map[domain.OrderStatus]int, len(domain.OrderStatuses))
	for i, s := range domain.OrderStatuses {
		columns[i] = Column{Status: s, Orders: []Card{}}
		pos[s] = i
	}

	for _, o := range d.orders.Filter(f) {
		i, ok := pos[o.Status]
		if !ok {
			continue
		}
		card := Card{Order: o}
		if o.CourierID != nil {
			card.CourierName = d.courierName(names, *o.CourierID)
		}
		columns[i].Orders = append(columns[i].Orders, card)
		columns[i].Count++
	}
	return Dispatch{Columns: columns, Couriers: refs}
}

func (d *Dashboard) courierName(names map[int64]string, id int64) string {
	if n, ok := names[id]; ok {
		return n
	}
	if acc, ok := d.accounts.Get(id); ok {
		return acc.Name
	}
	return ""
}

// Delivery returns the courier's assigned and in-progress orders.
func (d *Dashboard) Delivery(courierID int64) Delivery {
	id := courierID
	stops := make([]Stop, 0)
	for _, o := range d.orders.Filter(domain.Filter{CourierID: &id}) {
		if o.Status != domain.StatusAssigned && o.Status != domain.StatusInProgress {
			continue
		}
		target := geo.NavigationTarget(o)
		stops = append(stops, Stop{Order: o, Target: target, NavigationURL: geo.NavigationURL(target)})
	}
	return Delivery{CourierID: courierID, Orders: stops}
}

// ForAccount picks the projection for acc. A nil account sees the login view.
func (d *Dashboard) ForAccount(acc *domain.Account, f domain.Filter) Projection {
	var role domain.Role
	if acc != nil {
		role = acc.Role
	}
	p := Projection{View: session.View(role)}
	switch p.View {
	case domain.ViewIntake:
		in := d.Intake()
		p.Intake = &in
	case domain.ViewDispatch:
		disp := d.Dispatch(f)
		p.Dispatch = &disp
	case domain.ViewDelivery:
		del := d.Delivery(acc.ID)
		p.Delivery = &del
	}
	return p
}
