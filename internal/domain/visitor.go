package domain

// Visitor is the per-session state a handler reads: anonymous until
// login sets LoggedIn and Name, anonymous again after logout.
type Visitor struct {
	LoggedIn bool
	Name     string
}

// Greeting is the home page title for this visitor.
func (v Visitor) Greeting() string {
	if v.LoggedIn {
		return "Welcome " + v.Name + "!"
	}
	return "Welcome Guest!"
}
