package gateway

import "time"

const (
	defaultBaseURL     = "http://localhost:8000"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBodyBytes  = 512

	// unsetFilter is the value the search endpoints read as "any".
	unsetFilter = "0"
)

// Operation names used in logs and metrics.
const (
	OpListPlayers       = "list_players"
	OpListClubs         = "list_clubs"
	OpListNationalities = "list_nationalities"
	OpGetClub           = "get_club"
	OpGetPlayer         = "get_player"
	OpSearchOutfield    = "search_outfield"
	OpSearchGoalkeepers = "search_goalkeepers"
	OpTransferMarket    = "transfer_market"
	OpTransferPlayer    = "transfer_player"
	OpLogin             = "login"
)

const (
	pathAllPlayers       = "/all-players"
	pathAllClubs         = "/all-clubs"
	pathAllNationalities = "/all-nationalities"
	pathClub             = "/clubs/%d"
	pathPlayer           = "/player/%d"
	pathOutfieldSearch   = "/player_route"
	pathGoalkeeperSearch = "/goalkeeper_route"
	pathTransferMarket   = "/transfer-market"
	pathTransferPlayer   = "/transfer-player"
	pathLogin            = "/login"
)
