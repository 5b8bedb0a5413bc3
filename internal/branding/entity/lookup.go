package entity

// LookupCategory partitions the shared lookup table.
type LookupCategory string

const (
	LookupRequestType LookupCategory = "request_type"
	LookupElementType LookupCategory = "element_type"
	LookupStatus      LookupCategory = "status"
	LookupStage       LookupCategory = "stage"
)

// Lookup is one selectable value within a category.
type Lookup struct {
	ID       int64
	Category LookupCategory
	Name     string
	SortKey  int
}
