package domain

// EntityType names a structured field recognizable in free text.
type EntityType string

const (
	EntityOrderNumber EntityType = "order_number"
	EntityEmail       EntityType = "email"
	EntityPhone       EntityType = "phone"
	EntityProduct     EntityType = "product"
)

// Entities maps an entity type to the extracted value.
// Absent types are simply omitted, never nil-valued.
type Entities map[EntityType]string

// Merge returns a copy of e overlaid with the values of other.
// Newer values win so a clarification turn can replace a stale slot.
func (e Entities) Merge(other Entities) Entities {
	merged := make(Entities, len(e)+len(other))
	for k, v := range e {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}
