// Package seed provides the initial accounts and orders written to an empty store.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"yoyo-delivery/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

// Data is a complete seed.
type Data struct {
	Accounts []domain.Account `yaml:"accounts"`
	Orders   []domain.Order   `yaml:"orders"`
}

// Default returns the built-in seed.
func Default() (Data, error) {
	return Parse(defaultSeed)
}

// Load returns the seed read from path, or the built-in one when path is empty.
func Load(path string) (Data, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML seed.
func Parse(raw []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("decode seed: %w", err)
	}
	if err := d.validate(); err != nil {
		return Data{}, err
	}
	if d.Accounts == nil {
		d.Accounts = []domain.Account{}
	}
	if d.Orders == nil {
		d.Orders = []domain.Order{}
	}
	return d, nil
}

func (d Data) validate() error {
	accounts := make(map[int64]domain.Account, len(d.Accounts))
	for _, a := range d.Accounts {
		if _, dup := accounts[a.ID]; dup {
			return fmt.Errorf("seed: duplicate account id %d", a.ID)
		}
		if !a.Role.Valid() {
			return fmt.Errorf("seed: account %d: unknown role %q", a.ID, a.Role)
		}
		accounts[a.ID] = a
	}

	seen := make(map[int64]struct{}, len(d.Orders))
	for _, o := range d.Orders {
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("seed: duplicate order id %d", o.ID)
		}
		seen[o.ID] = struct{}{}
		if !o.Status.Valid() {
			return fmt.Errorf("seed: order %d: unknown status %q", o.ID, o.Status)
		}
		if o.Status != domain.StatusNew {
			if o.CourierID == nil {
				return fmt.Errorf("seed: order %d is %s without a courier", o.ID, o.Status)
			}
			if a, ok := accounts[*o.CourierID]; !ok || a.Role != domain.RoleCourier {
				return fmt.Errorf("seed: order %d references unknown courier %d", o.ID, *o.CourierID)
			}
		}
	}
	return nil
}
