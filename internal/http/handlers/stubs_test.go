package handlers_test

import (
	"context"

	"yoyo-delivery/internal/dashboard"
	"yoyo-delivery/internal/domain"
	"yoyo-delivery/internal/session"
)

type stubSessionUsecase struct {
	loginFn   func(ctx context.Context, username, password string) (session.Record, error)
	logoutFn  func(ctx context.Context) error
	currentFn func() (session.Record, bool)
}

func (s *stubSessionUsecase) Login(ctx context.Context, username, password string) (session.Record, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubSessionUsecase) Logout(ctx context.Context) error { return s.logoutFn(ctx) }

func (s *stubSessionUsecase) Current() (session.Record, bool) { return s.currentFn() }

type stubAccountUsecase struct {
	listFn     func() []domain.Account
	couriersFn func() []domain.Account
	getFn      func(id int64) (domain.Account, bool)
	addFn      func(ctx context.Context, in domain.NewAccount) (domain.Account, error)
}

func (s *stubAccountUsecase) Get(id int64) (domain.Account, bool) { return s.getFn(id) }

func (s *stubAccountUsecase) List() []domain.Account     { return s.listFn() }
func (s *stubAccountUsecase) Couriers() []domain.Account { return s.couriersFn() }

func (s *stubAccountUsecase) Add(ctx context.Context, in domain.NewAccount) (domain.Account, error) {
	return s.addFn(ctx, in)
}

type stubOrderUsecase struct {
	addFn           func(ctx context.Context, in domain.NewOrder) (domain.Order, error)
	updateFn        func(ctx context.Context, o domain.Order) error
	filterFn        func(f domain.Filter) []domain.Order
	getFn           func(id int64) (domain.Order, bool)
	assignFn        func(ctx context.Context, orderID, courierID int64) error
	advanceStatusFn func(ctx context.Context, orderID int64, status domain.OrderStatus) error
	recordProofFn   func(ctx context.Context, orderID int64, proof domain.Proof) error
}

func (s *stubOrderUsecase) Add(ctx context.Context, in domain.NewOrder) (domain.Order, error) {
	return s.addFn(ctx, in)
}

func (s *stubOrderUsecase) Update(ctx context.Context, o domain.Order) error {
	return s.updateFn(ctx, o)
}

func (s *stubOrderUsecase) Filter(f domain.Filter) []domain.Order { return s.filterFn(f) }

func (s *stubOrderUsecase) Get(id int64) (domain.Order, bool) { return s.getFn(id) }

func (s *stubOrderUsecase) Assign(ctx context.Context, orderID, courierID int64) error {
	return s.assignFn(ctx, orderID, courierID)
}

func (s *stubOrderUsecase) AdvanceStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	return s.advanceStatusFn(ctx, orderID, status)
}

func (s *stubOrderUsecase) RecordProof(ctx context.Context, orderID int64, proof domain.Proof) error {
	return s.recordProofFn(ctx, orderID, proof)
}

type stubViewUsecase struct {
	intakeFn     func() dashboard.Intake
	forAccountFn func(acc *domain.Account, f domain.Filter) dashboard.Projection
}

func (s *stubViewUsecase) Intake() dashboard.Intake { return s.intakeFn() }

func (s *stubViewUsecase) ForAccount(acc *domain.Account, f domain.Filter) dashboard.Projection {
	return s.forAccountFn(acc, f)
}
