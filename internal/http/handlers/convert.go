package handlers

import (
	"yoyo-delivery/internal/domain"
	"yoyo-delivery/internal/session"
)

func accountToResponse(a domain.Account) accountDTO {
	return accountDTO{ID: a.ID, Username: a.Username, Role: a.Role, Name: a.Name}
}

func accountsToResponse(list []domain.Account) []accountDTO {
	out := make([]accountDTO, 0, len(list))
	for _, a := range list {
		out = append(out, accountToResponse(a))
	}
	return out
}

func sessionToResponse(rec session.Record, ok bool) sessionDTO {
	if !ok {
		return sessionDTO{View: domain.ViewLogin}
	}
	acc := accountToResponse(rec.Account)
	return sessionDTO{Account: &acc, SessionID: rec.SessionID, View: session.View(rec.Role)}
}

func (r createAccountRequest) toModel() domain.NewAccount {
	return domain.NewAccount{Username: r.Username, Password: r.Password, Role: r.Role, Name: r.Name}
}

func (r createOrderRequest) toModel() domain.NewOrder {
	return domain.NewOrder{
		PickupAddress:       r.PickupAddress,
		DropoffAddress:      r.DropoffAddress,
		Bags:                r.Bags,
		PickupContactName:   r.PickupContactName,
		PickupContactPhone:  r.PickupContactPhone,
		DropoffContactName:  r.DropoffContactName,
		DropoffContactPhone: r.DropoffContactPhone,
		DeliveryDate:        r.DeliveryDate,
		DeliveryTimeSlot:    r.DeliveryTimeSlot,
	}
}

func (r proofRequest) toModel() domain.Proof {
	return domain.Proof{Signature: r.Signature, ProofPhoto: r.ProofPhoto}
}
