package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yoyo-delivery/internal/domain"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	d, err := Default()
	require.NoError(t, err)
	require.Len(t, d.Accounts, 4)
	require.Len(t, d.Orders, 5)

	assert.Equal(t, domain.Account{ID: 1, Username: "manager", Password: "123", Role: domain.RoleManager, Name: "אבי מנהל"}, d.Accounts[0])

	statuses := make([]domain.OrderStatus, 0, len(d.Orders))
	for _, o := range d.Orders {
		statuses = append(statuses, o.Status)
	}
	assert.Equal(t, []domain.OrderStatus{
		domain.StatusNew, domain.StatusNew, domain.StatusAssigned, domain.StatusInProgress, domain.StatusDelivered,
	}, statuses)

	delivered := d.Orders[4]
	require.NotNil(t, delivered.Signature)
	assert.Contains(t, *delivered.Signature, "data:image/png;base64,")
	require.NotNil(t, delivered.CourierID)
	assert.EqualValues(t, 2, *delivered.CourierID)
	assert.Equal(t, "קינג ג'ורג' 30, תל אביב", d.Orders[2].DropoffAddress)
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	a, err := Default()
	require.NoError(t, err)
	a.Accounts[0].Name = "changed"

	b, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "אבי מנהל", b.Accounts[0].Name)
}

func TestLoad_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
accounts:
  - {id: 10, username: boss, password: pw, role: manager, name: Boss}
`), 0o600))

	d, err := Load(path)
	require.NoError(t, err)
	require.Len(t, d.Accounts, 1)
	assert.Equal(t, "boss", d.Accounts[0].Username)
	assert.NotNil(t, d.Orders)
	assert.Empty(t, d.Orders)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "read seed file")
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bad yaml",
			in:   "accounts: [",
			want: "decode seed",
		},
		{
			name: "duplicate account",
			in: `
accounts:
  - {id: 1, username: a, password: p, role: manager, name: A}
  - {id: 1, username: b, password: p, role: courier, name: B}`,
			want: "duplicate account id 1",
		},
		{
			name: "unknown role",
			in: `
accounts:
  - {id: 1, username: a, password: p, role: admin, name: A}`,
			want: `unknown role "admin"`,
		},
		{
			name: "unknown status",
			in: `
orders:
  - {id: 1, status: lost}`,
			want: `unknown status "lost"`,
		},
		{
			name: "assigned without courier",
			in: `
orders:
  - {id: 1, status: assigned}`,
			want: "without a courier",
		},
		{
			name: "courier is not a courier",
			in: `
accounts:
  - {id: 1, username: a, password: p, role: manager, name: A}
orders:
  - {id: 1, status: assigned, courierId: 1}`,
			want: "unknown courier 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.in))
			require.ErrorContains(t, err, tt.want)
		})
	}
}
