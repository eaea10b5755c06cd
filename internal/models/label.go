package models

// Label is a tag definition that can be attached to residents. System labels
// ship with the application and cannot be changed or deleted.
type Label struct {
	Base
	Name     string `json:"name"`
	Color    string `json:"color"`
	Category string `json:"category"`
	Icon     string `json:"icon,omitempty"`
	System   bool   `json:"system"`
}

// Field returns the named field's value for filtering and sorting.
func (l *Label) Field(name string) any {
	switch name {
	case "id":
		return l.ID
	case "name":
		return l.Name
	case "color":
		return l.Color
	case "category":
		return l.Category
	case "system":
		if l.System {
			return "true"
		}
		return "false"
	case "created_at":
		return l.CreatedAt
	default:
		return nil
	}
}
