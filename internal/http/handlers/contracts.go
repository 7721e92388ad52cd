package handlers

import (
	"context"

	"yoyo-delivery/internal/dashboard"
	"yoyo-delivery/internal/directory"
	"yoyo-delivery/internal/domain"
	"yoyo-delivery/internal/ledger"
	"yoyo-delivery/internal/session"
)

type sessionUsecase interface {
	Login(ctx context.Context, username, password string) (session.Record, error)
	Logout(ctx context.Context) error
	Current() (session.Record, bool)
}

// NewSessionUsecase wires a Session into a sessionUsecase.
func NewSessionUsecase(s *session.Session) sessionUsecase {
	return s
}

type accountUsecase interface {
	List() []domain.Account
	Couriers() []domain.Account
	Get(id int64) (domain.Account, bool)
	Add(ctx context.Context, in domain.NewAccount) (domain.Account, error)
}

// NewAccountUsecase wires a Directory into an accountUsecase.
func NewAccountUsecase(d *directory.Directory) accountUsecase {
	return d
}

type orderUsecase interface {
	Add(ctx context.Context, in domain.NewOrder) (domain.Order, error)
	Update(ctx context.Context, o domain.Order) error
	Filter(f domain.Filter) []domain.Order
	Get(id int64) (domain.Order, bool)
	Assign(ctx context.Context, orderID, courierID int64) error
	AdvanceStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
	RecordProof(ctx context.Context, orderID int64, proof domain.Proof) error
}

// NewOrderUsecase wires a Ledger into an orderUsecase.
func NewOrderUsecase(l *ledger.Ledger) orderUsecase {
	return l
}

type viewUsecase interface {
	Intake() dashboard.Intake
	ForAccount(acc *domain.Account, f domain.Filter) dashboard.Projection
}

// NewViewUsecase wires a Dashboard into a viewUsecase.
func NewViewUsecase(d *dashboard.Dashboard) viewUsecase {
	return d
}
