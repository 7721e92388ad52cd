package domain

// OrderStatus is a step of the order lifecycle.
type OrderStatus string

// Order lifecycle states, in order.
const (
	StatusNew        OrderStatus = "new"
	StatusAssigned   OrderStatus = "assigned"
	StatusInProgress OrderStatus = "in-progress"
	StatusDelivered  OrderStatus = "delivered"
)

// OrderStatuses lists the lifecycle states in board column order.
var OrderStatuses = [...]OrderStatus{StatusNew, StatusAssigned, StatusInProgress, StatusDelivered}

// next holds the single forward step allowed from each state.
var next = map[OrderStatus]OrderStatus{
	StatusNew:        StatusAssigned,
	StatusAssigned:   StatusInProgress,
	StatusInProgress: StatusDelivered,
}

// Valid checks if the OrderStatus is a known state.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether to is the single forward step from s.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	n, ok := next[s]
	return ok && n == to
}

// DateLayout is the format of Order.DeliveryDate.
const DateLayout = "2006-01-02"

// TimeSlots is the fixed set of delivery windows offered at intake.
var TimeSlots = [...]string{"10:00-12:00", "12:00-14:00", "14:00-16:00", "16:00-18:00"}

// ValidTimeSlot checks s against TimeSlots.
func ValidTimeSlot(s string) bool {
	for _, v := range TimeSlots {
		if s == v {
			return true
		}
	}
	return false
}

// Order is a delivery order. Signature and ProofPhoto are opaque image blobs
// (data URLs) attached at delivery.
type Order struct {
	ID                  int64       `json:"id" yaml:"id"`
	PickupAddress       string      `json:"pickupAddress" yaml:"pickupAddress"`
	DropoffAddress      string      `json:"dropoffAddress" yaml:"dropoffAddress"`
	Bags                int         `json:"bags" yaml:"bags"`
	PickupContactName   string      `json:"pickupContactName" yaml:"pickupContactName"`
	PickupContactPhone  string      `json:"pickupContactPhone" yaml:"pickupContactPhone"`
	DropoffContactName  string      `json:"dropoffContactName" yaml:"dropoffContactName"`
	DropoffContactPhone string      `json:"dropoffContactPhone" yaml:"dropoffContactPhone"`
	DeliveryDate        string      `json:"deliveryDate" yaml:"deliveryDate"`
	DeliveryTimeSlot    string      `json:"deliveryTimeSlot" yaml:"deliveryTimeSlot"`
	Status              OrderStatus `json:"status" yaml:"status"`
	CourierID           *int64      `json:"courierId,omitempty" yaml:"courierId,omitempty"`
	Signature           *string     `json:"signature,omitempty" yaml:"signature,omitempty"`
	ProofPhoto          *string     `json:"proofPhoto,omitempty" yaml:"proofPhoto,omitempty"`
}

// NewOrder is the intake payload: an order without id, status or courier.
type NewOrder struct {
	PickupAddress       string
	DropoffAddress      string
	Bags                int
	PickupContactName   string
	PickupContactPhone  string
	DropoffContactName  string
	DropoffContactPhone string
	DeliveryDate        string
	DeliveryTimeSlot    string
}

// Proof is the delivery evidence. At least one field must be set.
type Proof struct {
	Signature  *string
	ProofPhoto *string
}

// Empty reports whether neither proof field carries data.
func (p Proof) Empty() bool {
	return (p.Signature == nil || *p.Signature == "") && (p.ProofPhoto == nil || *p.ProofPhoto == "")
}

// Filter narrows the dispatch board. Zero-valued criteria match everything.
type Filter struct {
	DeliveryDate    string
	CourierID       *int64
	DropoffContains string
}

// Empty reports whether no criterion is active.
func (f Filter) Empty() bool {
	return f.DeliveryDate == "" && f.CourierID == nil && f.DropoffContains == ""
}
