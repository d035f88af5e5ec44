package models

// InventoryItem is a supply line (feed, medication, equipment).
type InventoryItem struct {
	ID           string  `bson:"_id,omitempty" json:"id"`
	Name         string  `bson:"name" json:"name"`
	Category     string  `bson:"category" json:"category"`
	Quantity     float64 `bson:"quantity" json:"quantity"`
	Unit         string  `bson:"unit" json:"unit"`
	ReorderLevel float64 `bson:"reorderLevel" json:"reorderLevel"`
	UnitPrice    float64 `bson:"unitPrice" json:"unitPrice"`
}

// LowStock reports whether the item is at or below its reorder level.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

// InventoryStats summarises the supply inventory.
type InventoryStats struct {
	TotalItems    int     `json:"totalItems"`
	LowStockItems int     `json:"lowStockItems"`
	TotalValue    float64 `json:"totalValue"`
}
