// Package report exports the dispatch board as a spreadsheet.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"yoyo-delivery/internal/domain"
)

// SheetName is the single worksheet of the export.
const SheetName = "Orders"

var headers = []string{
	"ID", "Status", "Delivery date", "Time slot",
	"Pickup address", "Pickup contact", "Pickup phone",
	"Dropoff address", "Dropoff contact", "Dropoff phone",
	"Bags", "Courier", "Proof",
}

// OrdersXLSX renders orders, one per row, with courier names resolved from couriers.
func OrdersXLSX(orders []domain.Order, couriers []domain.Account) ([]byte, error) {
	names := make(map[int64]string, len(couriers))
	for _, c := range couriers {
		names[c.ID] = c.Name
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if _, err := f.NewSheet(SheetName); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	if index, err := f.GetSheetIndex(SheetName); err == nil {
		f.SetActiveSheet(index)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for r, o := range orders {
		courier := ""
		if o.CourierID != nil {
			courier = names[*o.CourierID]
			if courier == "" {
				courier = fmt.Sprintf("#%d", *o.CourierID)
			}
		}
		row := []any{
			o.ID, string(o.Status), o.DeliveryDate, o.DeliveryTimeSlot,
			o.PickupAddress, o.PickupContactName, o.PickupContactPhone,
			o.DropoffAddress, o.DropoffContactName, o.DropoffContactPhone,
			o.Bags, courier, proofLabel(o),
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write order %d: %w", o.ID, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func proofLabel(o domain.Order) string {
	hasSig := o.Signature != nil && *o.Signature != ""
	hasPhoto := o.ProofPhoto != nil && *o.ProofPhoto != ""
	switch {
	case hasSig && hasPhoto:
		return "signature+photo"
	case hasSig:
		return "signature"
	case hasPhoto:
		return "photo"
	default:
		return ""
	}
}
