package handlers

import (
	"yoyo-delivery/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// accountDTO is an account without its password.
type accountDTO struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	Name     string      `json:"name"`
}

type sessionDTO struct {
	Account   *accountDTO `json:"account"`
	SessionID string      `json:"sessionId,omitempty"`
	View      domain.View `json:"view"`
}

type createAccountRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
	Name     string      `json:"name"`
}

type createOrderRequest struct {
	PickupAddress       string `json:"pickupAddress"`
	DropoffAddress      string `json:"dropoffAddress"`
	Bags                int    `json:"bags"`
	PickupContactName   string `json:"pickupContactName"`
	PickupContactPhone  string `json:"pickupContactPhone"`
	DropoffContactName  string `json:"dropoffContactName"`
	DropoffContactPhone string `json:"dropoffContactPhone"`
	DeliveryDate        string `json:"deliveryDate"`
	DeliveryTimeSlot    string `json:"deliveryTimeSlot"`
}

type assignRequest struct {
	CourierID int64 `json:"courierId"`
}

type statusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

type proofRequest struct {
	Signature  *string `json:"signature,omitempty"`
	ProofPhoto *string `json:"proofPhoto,omitempty"`
}
