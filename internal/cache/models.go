package cache

import "time"

// Notification is the cached representation of one GitHub notification thread.
type Notification struct {
	ID        string
	Name      string
	Repo      string
	Subject   string
	Kind      string
	URL       string
	UpdatedAt time.Time
}

func (n Notification) validate() error {
	if n.ID == "" {
		return ErrInvalidRecord{Reason: "id is empty"}
	}
	if n.UpdatedAt.IsZero() {
		return ErrInvalidRecord{Reason: "updated_at is zero"}
	}
	return nil
}
