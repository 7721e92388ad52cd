package geo

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"yoyo-delivery/internal/domain"
)

const wazeBase = "https://www.waze.com/ul?q="

// uriComponentKeep undoes url.QueryEscape for the characters a URI component leaves bare.
var uriComponentKeep = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// NavigationURL builds a Waze deep link searching for address.
func NavigationURL(address string) string {
	return wazeBase + uriComponentKeep.Replace(url.QueryEscape(address))
}

// NavigationTarget is where the courier heads next: the pickup while the order
// is assigned, the dropoff otherwise.
func NavigationTarget(o domain.Order) string {
	if o.Status == domain.StatusAssigned {
		return o.PickupAddress
	}
	return o.DropoffAddress
}

// NavigationQR renders the Waze link for address as a PNG QR code.
func NavigationQR(address string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(NavigationURL(address), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode navigation qr: %w", err)
	}
	return png, nil
}
