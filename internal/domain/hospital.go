package domain

import "strings"

// Hospital is a registered hospital. License is the natural key and doubles
// as the hospital's login secret.
type Hospital struct {
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	Email     string           `json:"email"`
	License   string           `json:"license"`
	Address   string           `json:"addr"`
	Created   Millis           `json:"created"`
	Inventory []InventoryEntry `json:"inventory"`
}

// InventoryEntry is the stock held for one blood type, in millilitres.
type InventoryEntry struct {
	Blood BloodType `json:"blood"`
	Qty   int       `json:"qty"`
}

// HospitalFields holds the raw form values submitted at hospital registration.
type HospitalFields struct {
	Name    string
	Phone   string
	Email   string
	License string
	Address string
}

// AddStock credits qty millilitres of blood to the ledger. The ledger keeps
// at most one entry per blood type and is never debited.
func (h *Hospital) AddStock(blood BloodType, qty int) {
	for i := range h.Inventory {
		if h.Inventory[i].Blood == blood {
			h.Inventory[i].Qty += qty
			return
		}
	}
	h.Inventory = append(h.Inventory, InventoryEntry{Blood: blood, Qty: qty})
}

// Stock returns the quantity held for blood.
func (h *Hospital) Stock(blood BloodType) int {
	for _, e := range h.Inventory {
		if e.Blood == blood {
			return e.Qty
		}
	}
	return 0
}

// SameLicense reports whether a and b are the same license, ignoring case.
func SameLicense(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
