// Package ledger owns the order collection and its lifecycle transitions.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"yoyo-delivery/internal/apperr"
	"yoyo-delivery/internal/domain"
	"yoyo-delivery/internal/events"
	"yoyo-delivery/internal/logx"
	"yoyo-delivery/internal/store"
)

// Metrics are optional; nil collectors are skipped.
type Metrics struct {
	Created     prometheus.Counter
	Transitions *prometheus.CounterVec
}

// Ledger is the ordered, append-only order collection, written through to the store.
type Ledger struct {
	mu        sync.Mutex
	store     *store.Store
	accounts  Accounts
	publisher Publisher
	logger    logx.Logger
	metrics   Metrics
	now       func() time.Time
	orders    []domain.Order
}

// New loads the order list, seeding the store when it holds none.
func New(
	ctx context.Context,
	st *store.Store,
	seed []domain.Order,
	accounts Accounts,
	publisher Publisher,
	logger logx.Logger,
	metrics Metrics,
) *Ledger {
	orders := store.Load(ctx, st, store.KeyOrders, seed)
	if orders == nil {
		orders = []domain.Order{}
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Ledger{
		store:     st,
		accounts:  accounts,
		publisher: publisher,
		logger:    logger.With(logx.String("component", "ledger")),
		metrics:   metrics,
		now:       time.Now,
		orders:    orders,
	}
}

// Add validates an intake submission and appends it as a new order.
func (l *Ledger) Add(ctx context.Context, in domain.NewOrder) (domain.Order, error) {
	if err := validateNewOrder(in); err != nil {
		return domain.Order{}, err
	}

	l.mu.Lock()
	order := domain.Order{
		ID:                  nextID(l.orders),
		PickupAddress:       in.PickupAddress,
		DropoffAddress:      in.DropoffAddress,
		Bags:                in.Bags,
		PickupContactName:   in.PickupContactName,
		PickupContactPhone:  in.PickupContactPhone,
		DropoffContactName:  in.DropoffContactName,
		DropoffContactPhone: in.DropoffContactPhone,
		DeliveryDate:        in.DeliveryDate,
		DeliveryTimeSlot:    in.DeliveryTimeSlot,
		Status:              domain.StatusNew,
	}
	updated := make([]domain.Order, len(l.orders), len(l.orders)+1)
	copy(updated, l.orders)
	updated = append(updated, order)

	if err := store.Save(ctx, l.store, store.KeyOrders, updated); err != nil {
		l.mu.Unlock()
		return domain.Order{}, fmt.Errorf("add order: %w", err)
	}
	l.orders = updated
	l.mu.Unlock()

	if l.metrics.Created != nil {
		l.metrics.Created.Inc()
	}
	l.logger.Info("order created",
		logx.String("event", "order_created"),
		logx.Int64("order_id", order.ID),
		logx.String("delivery_date", order.DeliveryDate),
	)
	l.publish(ctx, events.Event{
		Type:    events.TypeOrderCreated,
		OrderID: order.ID,
		Status:  order.Status,
		At:      l.now(),
	})
	return order, nil
}

// Update replaces the order with the same id. An unknown id is a silent no-op.
// No transition rules are applied here.
func (l *Ledger) Update(ctx context.Context, order domain.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.index(order.ID)
	if idx < 0 {
		l.logger.Debug("update of unknown order ignored", logx.Int64("order_id", order.ID))
		return nil
	}
	updated := make([]domain.Order, len(l.orders))
	copy(updated, l.orders)
	updated[idx] = order

	if err := store.Save(ctx, l.store, store.KeyOrders, updated); err != nil {
		return fmt.Errorf("update order %d: %w", order.ID, err)
	}
	l.orders = updated
	l.logger.Info("order updated", logx.String("event", "order_updated"), logx.Int64("order_id", order.ID))
	return nil
}

// Filter returns the orders matching every active criterion, in collection order.
func (l *Ledger) Filter(f domain.Filter) []domain.Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Order, 0, len(l.orders))
	for _, o := range l.orders {
		if matches(o, f) {
			out = append(out, o)
		}
	}
	return out
}

// List returns every order.
func (l *Ledger) List() []domain.Order {
	return l.Filter(domain.Filter{})
}

// Get returns the order with id.
func (l *Ledger) Get(id int64) (domain.Order, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if idx := l.index(id); idx >= 0 {
		return l.orders[idx], true
	}
	return domain.Order{}, false
}

// Assign hands a new order to a courier.
func (l *Ledger) Assign(ctx context.Context, orderID, courierID int64) error {
	return l.transition(ctx, orderID, "order_assigned", func(o *domain.Order) error {
		acc, ok := l.accounts.Get(courierID)
		if !ok || acc.Role != domain.RoleCourier {
			return fmt.Errorf("%w: account %d is not a courier", apperr.ErrInvalid, courierID)
		}
		if err := checkTransition(o.Status, domain.StatusAssigned); err != nil {
			return err
		}
		id := courierID
		o.CourierID = &id
		o.Status = domain.StatusAssigned
		return nil
	})
}

// AdvanceStatus moves an order to status without touching other fields.
// Delivery goes through RecordProof instead.
func (l *Ledger) AdvanceStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", apperr.ErrInvalid, status)
	}
	if status == domain.StatusDelivered {
		return fmt.Errorf("%w: delivery requires proof", apperr.ErrInvalid)
	}
	return l.transition(ctx, orderID, "order_status_advanced", func(o *domain.Order) error {
		if err := checkTransition(o.Status, status); err != nil {
			return err
		}
		o.Status = status
		return nil
	})
}

// RecordProof marks an order delivered with the supplied signature and/or photo.
func (l *Ledger) RecordProof(ctx context.Context, orderID int64, proof domain.Proof) error {
	if proof.Empty() {
		return fmt.Errorf("%w: signature or photo is required", apperr.ErrInvalid)
	}
	return l.transition(ctx, orderID, "order_delivered", func(o *domain.Order) error {
		if err := checkTransition(o.Status, domain.StatusDelivered); err != nil {
			return err
		}
		o.Status = domain.StatusDelivered
		if proof.Signature != nil && *proof.Signature != "" {
			s := *proof.Signature
			o.Signature = &s
		}
		if proof.ProofPhoto != nil && *proof.ProofPhoto != "" {
			p := *proof.ProofPhoto
			o.ProofPhoto = &p
		}
		return nil
	})
}

// transition applies mutate to a copy of the order and persists the result.
// A missing order is a silent no-op.
func (l *Ledger) transition(ctx context.Context, orderID int64, event string, mutate func(*domain.Order) error) error {
	l.mu.Lock()
	idx := l.index(orderID)
	if idx < 0 {
		l.mu.Unlock()
		l.logger.Debug("transition of unknown order ignored", logx.String("event", event), logx.Int64("order_id", orderID))
		return nil
	}
	before := l.orders[idx]
	after := before
	if err := mutate(&after); err != nil {
		l.mu.Unlock()
		return err
	}

	updated := make([]domain.Order, len(l.orders))
	copy(updated, l.orders)
	updated[idx] = after
	if err := store.Save(ctx, l.store, store.KeyOrders, updated); err != nil {
		l.mu.Unlock()
		return fmt.Errorf("%s %d: %w", strings.ReplaceAll(event, "_", " "), orderID, err)
	}
	l.orders = updated
	l.mu.Unlock()

	if l.metrics.Transitions != nil {
		l.metrics.Transitions.WithLabelValues(string(before.Status), string(after.Status)).Inc()
	}
	fields := []logx.Field{
		logx.String("event", event),
		logx.Int64("order_id", orderID),
		logx.String("from", string(before.Status)),
		logx.String("to", string(after.Status)),
	}
	if after.CourierID != nil {
		fields = append(fields, logx.Int64("courier_id", *after.CourierID))
	}
	l.logger.Info("order status changed", fields...)

	l.publish(ctx, events.Event{
		Type:      events.TypeStatusChanged,
		OrderID:   orderID,
		Status:    after.Status,
		From:      before.Status,
		CourierID: after.CourierID,
		At:        l.now(),
	})
	return nil
}

// publish never fails the caller; the mutation is already durable.
func (l *Ledger) publish(ctx context.Context, ev events.Event) {
	if err := l.publisher.Publish(ctx, ev); err != nil {
		l.logger.Error("event publish failed",
			logx.String("type", string(ev.Type)),
			logx.Int64("order_id", ev.OrderID),
			logx.Err(err),
		)
	}
}

func (l *Ledger) index(id int64) int {
	for i, o := range l.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func checkTransition(from, to domain.OrderStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: cannot move order from %s to %s", apperr.ErrConflict, from, to)
	}
	return nil
}

func matches(o domain.Order, f domain.Filter) bool {
	if f.DeliveryDate != "" && o.DeliveryDate != f.DeliveryDate {
		return false
	}
	if f.CourierID != nil && (o.CourierID == nil || *o.CourierID != *f.CourierID) {
		return false
	}
	if f.DropoffContains != "" && !strings.Contains(o.DropoffAddress, f.DropoffContains) {
		return false
	}
	return true
}

func nextID(orders []domain.Order) int64 {
	var max int64
	for _, o := range orders {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}
