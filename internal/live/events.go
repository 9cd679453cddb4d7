package live

import "time"

// Event types observable by connected pages and the CLI watch command.
const (
	TypeCatalogLoaded = "catalog.loaded"
	TypeCatalogFailed = "catalog.failed"
	TypeSearch        = "search.performed"
	TypeModalLoaded   = "modal.loaded"
	TypeModalFailed   = "modal.failed"
	TypeLogin         = "session.login"
	TypeLogout        = "session.logout"
)

type Event struct {
	Type    string    `json:"type"`
	MovieID int64     `json:"movie_id,omitempty"`
	Query   string    `json:"query,omitempty"`
	Email   string    `json:"email,omitempty"`
	At      time.Time `json:"at"`
}
