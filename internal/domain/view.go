package domain

// View names the role-specific screen a session lands on.
type View string

// Known views.
const (
	ViewLogin    View = "login"
	ViewIntake   View = "intake"
	ViewDispatch View = "dispatch"
	ViewDelivery View = "delivery"
)
