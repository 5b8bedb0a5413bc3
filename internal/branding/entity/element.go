package entity

// Element is one physical branding item on a request, priced per unit.
type Element struct {
	ID            int64
	RequestID     int64
	ElementTypeID int64
	Width         float64
	Height        float64
	Quantity      int
	UnitCost      float64
}

// TotalCost is the line total for the element.
func (e Element) TotalCost() float64 {
	return float64(e.Quantity) * e.UnitCost
}
