package geo

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yoyo-delivery/internal/domain"
)

func TestGeocode_KnownAddresses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		address string
		want    Point
	}{
		{"אלנבי 1, תל אביב", Point{32.065, 34.768}},
		{"רוטשילד 10, תל אביב", Point{32.063, 34.770}},
		{"קינג ג'ורג' 30, תל אביב", Point{32.074, 34.773}},
		{"בן יהודה 200", Point{32.086, 34.774}},
		{"אחד העם 1, תל אביב", Point{32.062, 34.767}},
	}
	for _, tt := range tests {
		got, ok := Geocode(tt.address)
		require.True(t, ok, tt.address)
		assert.Equal(t, tt.want, got, tt.address)
	}
}

func TestGeocode_FirstRegisteredFragmentWins(t *testing.T) {
	t.Parallel()

	// "אלנבי 1" is a prefix of "אלנבי 100" and is registered first.
	got, ok := Geocode("אלנבי 100")
	require.True(t, ok)
	assert.Equal(t, Point{32.065, 34.768}, got)
}

func TestGeocode_Blank(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "\t\n"} {
		_, ok := Geocode(in)
		assert.False(t, ok, "%q", in)
	}
}

func TestGeocode_HashFallback(t *testing.T) {
	t.Parallel()

	// "a": h = 97
	got, ok := Geocode("a")
	require.True(t, ok)
	assert.InDelta(t, 32.07+97.0/20000, got.Lat, 1e-12)
	assert.InDelta(t, 34.77+97.0/20000, got.Lng, 1e-12)

	// "ab": h = 98 + (97<<5 - 97) = 3105
	got, ok = Geocode("ab")
	require.True(t, ok)
	assert.InDelta(t, 32.07+105.0/20000, got.Lat, 1e-12)
	assert.InDelta(t, 34.77+1105.0/20000, got.Lng, 1e-12)
}

func TestGeocode_CaseInsensitive(t *testing.T) {
	t.Parallel()

	a, _ := Geocode("Main Street 5, Haifa")
	b, _ := Geocode("MAIN STREET 5, HAIFA")
	assert.Equal(t, a, b)
}

func TestHash_MatchesThirtyTwoBitShift(t *testing.T) {
	t.Parallel()

	// String long enough for the shift to overflow 32 bits.
	s := "zzzzzzzzzzzzzzzzzzzz"
	var want int64
	for _, c := range s {
		shifted := int64(int32(want) << 5)
		want = int64(c) + shifted - want
	}
	assert.Equal(t, want, hash(s))
}

func TestHash_UsesUTF16CodeUnits(t *testing.T) {
	t.Parallel()

	// U+1F600 is the surrogate pair D83D DE00.
	h1 := int64(0xD83D)
	h2 := int64(0xDE00) + (int64(int32(h1)<<5) - h1)
	assert.Equal(t, h2, hash("😀"))
}

func TestDistance(t *testing.T) {
	t.Parallel()

	a := Point{32.065, 34.768}
	assert.Zero(t, Distance(a, a))

	b := Point{32.063, 34.770}
	d := Distance(a, b)
	assert.InDelta(t, 0.2915, d, 0.001)
	assert.InDelta(t, d, Distance(b, a), 1e-12)

	// one degree of latitude
	assert.InDelta(t, 111.19, Distance(Point{0, 0}, Point{1, 0}), 0.01)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	r := Resolve("אלנבי 1, תל אביב", "רוטשילד 10, תל אביב")
	require.NotNil(t, r.Pickup)
	require.NotNil(t, r.Dropoff)
	require.NotNil(t, r.DistanceKm)
	assert.InDelta(t, Distance(*r.Pickup, *r.Dropoff), *r.DistanceKm, 1e-12)

	r = Resolve("אלנבי 1", "")
	require.NotNil(t, r.Pickup)
	assert.Nil(t, r.Dropoff)
	assert.Nil(t, r.DistanceKm)
}

func TestNavigationURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://www.waze.com/ul?q=Main%20St%201%2C%20Tel-Aviv", NavigationURL("Main St 1, Tel-Aviv"))
	assert.Equal(t, "https://www.waze.com/ul?q=King%20George's%20(30)!", NavigationURL("King George's (30)!"))
	assert.Equal(t, "https://www.waze.com/ul?q=%D7%90", NavigationURL("א"))
	assert.Equal(t, "https://www.waze.com/ul?q=a%2Bb%26c", NavigationURL("a+b&c"))
}

func TestNavigationTarget(t *testing.T) {
	t.Parallel()

	o := domain.Order{PickupAddress: "from", DropoffAddress: "to", Status: domain.StatusAssigned}
	assert.Equal(t, "from", NavigationTarget(o))
	o.Status = domain.StatusInProgress
	assert.Equal(t, "to", NavigationTarget(o))
}

func TestNavigationQR(t *testing.T) {
	t.Parallel()

	raw, err := NavigationQR("אלנבי 1, תל אביב", 0)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}
