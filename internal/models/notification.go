package models

// NotificationType mirrors the toast styles the dashboard renders.
type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

// Notification is a dashboard message produced by workflow events, such as a
// leave request decision or a completed import.
type Notification struct {
	Base
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
	Read    bool             `json:"read"`
}

// Field returns the named field's value for filtering and sorting.
func (n *Notification) Field(name string) any {
	switch name {
	case "id":
		return n.ID
	case "message":
		return n.Message
	case "type":
		return string(n.Type)
	case "read":
		if n.Read {
			return "true"
		}
		return "false"
	case "created_at":
		return n.CreatedAt
	default:
		return nil
	}
}
