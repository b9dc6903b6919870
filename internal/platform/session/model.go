package session

import "time"

// DefaultMainView is the navigation fallback when nothing is persisted or a
// persisted value fails to parse.
const DefaultMainView = "dashboard"

// User is the logged-in admin as the panel displays it. The upstream token
// stays opaque; identity comes from the credentials the user logged in with.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// BusinessUnit is the currently selected business unit
type BusinessUnit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// State is the panel's session-continuity state: current user, current
// main/sub view, selected business unit.
type State struct {
	User         *User         `json:"current_user,omitempty"`
	MainView     string        `json:"main_view"`
	SubView      string        `json:"sub_view"`
	BusinessUnit *BusinessUnit `json:"selected_business_unit,omitempty"`
}

// DefaultState is the post-logout/fresh-install state: dashboard view, no
// business unit selected, nobody logged in.
func DefaultState() State {
	return State{MainView: DefaultMainView}
}

// Session binds a panel session id to the upstream bearer token
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
