package auction_api_client

const (
	// Paths
	userInfoPath        = "/api/user-info"
	initPath            = "/api/init"
	playerInfoPath      = "/api/player-info/"
	categorySetPath     = "/api/get-category-set/"
	myTeamPath          = "/api/my-team"
	updatePlayingXIPath = "/api/update-playing-11"
	logoutPath          = "/logout"

	// Headers
	contentTypeHeader = "Content-Type"
	jsonContentType   = "application/json"
)
