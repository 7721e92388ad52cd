package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yoyo-delivery/internal/domain"
	"yoyo-delivery/internal/seed"
)

type stubOrders struct {
	orders []domain.Order
	last   domain.Filter
}

func (s *stubOrders) Filter(f domain.Filter) []domain.Order {
	s.last = f
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if f.DeliveryDate != "" && o.DeliveryDate != f.DeliveryDate {
			continue
		}
		if f.CourierID != nil && (o.CourierID == nil || *o.CourierID != *f.CourierID) {
			continue
		}
		out = append(out, o)
	}
	return out
}

type stubAccounts struct {
	accounts []domain.Account
}

func (s stubAccounts) Get(id int64) (domain.Account, bool) {
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Account{}, false
}

func (s stubAccounts) Couriers() []domain.Account {
	var out []domain.Account
	for _, a := range s.accounts {
		if a.Role == domain.RoleCourier {
			out = append(out, a)
		}
	}
	return out
}

func seededDashboard(t *testing.T) (*Dashboard, *stubOrders, seed.Data) {
	t.Helper()
	data, err := seed.Default()
	require.NoError(t, err)
	orders := &stubOrders{orders: data.Orders}
	return New(orders, stubAccounts{accounts: data.Accounts}), orders, data
}

func TestIntake(t *testing.T) {
	t.Parallel()
	d, _, _ := seededDashboard(t)

	in := d.Intake()
	assert.Equal(t, []string{"10:00-12:00", "12:00-14:00", "14:00-16:00", "16:00-18:00"}, in.TimeSlots)

	in.TimeSlots[0] = "changed"
	assert.Equal(t, "10:00-12:00", domain.TimeSlots[0])
}

func TestDispatch_ColumnsAndCounts(t *testing.T) {
	t.Parallel()
	d, _, _ := seededDashboard(t)

	board := d.Dispatch(domain.Filter{})
	require.Len(t, board.Columns, 4)

	var statuses []domain.OrderStatus
	var counts []int
	for _, c := range board.Columns {
		statuses = append(statuses, c.Status)
		counts = append(counts, c.Count)
		assert.Len(t, c.Orders, c.Count)
	}
	assert.Equal(t, []domain.OrderStatus{domain.StatusNew, domain.StatusAssigned, domain.StatusInProgress, domain.StatusDelivered}, statuses)
	assert.Equal(t, []int{2, 1, 1, 1}, counts)

	assigned := board.Columns[1].Orders[0]
	assert.EqualValues(t, 3, assigned.ID)
	assert.Equal(t, "יוסי שליח", assigned.CourierName)
	assert.Empty(t, board.Columns[0].Orders[0].CourierName)

	assert.Equal(t, []Courier{{ID: 2, Name: "יוסי שליח"}, {ID: 3, Name: "משה שליח"}}, board.Couriers)
}

func TestDispatch_PassesFilterThrough(t *testing.T) {
	t.Parallel()
	d, orders, _ := seededDashboard(t)

	f := domain.Filter{DeliveryDate: "2024-07-29"}
	board := d.Dispatch(f)
	assert.Equal(t, f, orders.last)
	assert.Equal(t, 0, board.Columns[0].Count)
	assert.Equal(t, 1, board.Columns[1].Count)
	assert.Equal(t, 1, board.Columns[2].Count)
	assert.NotNil(t, board.Columns[0].Orders)
}

func TestDelivery(t *testing.T) {
	t.Parallel()
	d, _, _ := seededDashboard(t)

	// courier 2 holds order 3 (assigned) and order 5 (delivered)
	got := d.Delivery(2)
	require.Len(t, got.Orders, 1)
	stop := got.Orders[0]
	assert.EqualValues(t, 3, stop.ID)
	assert.Equal(t, stop.PickupAddress, stop.Target)
	assert.Contains(t, stop.NavigationURL, "https://www.waze.com/ul?q=")

	// courier 3 holds order 4 (in progress), heading to the dropoff
	got = d.Delivery(3)
	require.Len(t, got.Orders, 1)
	assert.Equal(t, "בן יהודה 200, תל אביב", got.Orders[0].Target)

	got = d.Delivery(99)
	assert.NotNil(t, got.Orders)
	assert.Empty(t, got.Orders)
}

func TestForAccount(t *testing.T) {
	t.Parallel()
	d, _, data := seededDashboard(t)

	p := d.ForAccount(nil, domain.Filter{})
	assert.Equal(t, domain.ViewLogin, p.View)
	assert.Nil(t, p.Intake)
	assert.Nil(t, p.Dispatch)
	assert.Nil(t, p.Delivery)

	manager := data.Accounts[0]
	p = d.ForAccount(&manager, domain.Filter{})
	assert.Equal(t, domain.ViewDispatch, p.View)
	require.NotNil(t, p.Dispatch)

	courier := data.Accounts[1]
	p = d.ForAccount(&courier, domain.Filter{})
	assert.Equal(t, domain.ViewDelivery, p.View)
	require.NotNil(t, p.Delivery)
	assert.EqualValues(t, 2, p.Delivery.CourierID)

	customer := data.Accounts[3]
	p = d.ForAccount(&customer, domain.Filter{})
	assert.Equal(t, domain.ViewIntake, p.View)
	require.NotNil(t, p.Intake)
}

func TestCardJSONIsFlat(t *testing.T) {
	t.Parallel()
	d, _, _ := seededDashboard(t)

	board := d.Dispatch(domain.Filter{})
	raw, err := json.Marshal(board.Columns[1].Orders[0])
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "assigned", m["status"])
	assert.Equal(t, "יוסי שליח", m["courierName"])
	assert.EqualValues(t, 2, m["courierId"])
}
