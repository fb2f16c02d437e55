package webpath

const (
	Home       = "/"
	NewPlayer  = "/players/new"
	Player     = "/players/:id<int>"
	EditPlayer = "/players/:id<int>/edit"
	Metrics    = "/metrics"

	Api        = "/api"
	ApiPlayers = Api + "/players"
	ApiPlayer  = ApiPlayers + "/:id<int>"
)

// Path returns the links templates and page scripts build URLs from.
func Path() map[string]string {
	return map[string]string{
		"Home":       Home,
		"NewPlayer":  NewPlayer,
		"Players":    "/players",
		"ApiPlayers": ApiPlayers,
	}
}
