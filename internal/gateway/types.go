package gateway

// Wire shapes returned by the remote service. Records come back either with
// nested Club/Nationality objects or with flattened ClubName/NationalityName
// columns depending on the endpoint, so both are declared.

type nationalityResponse struct {
	NationalityID   int    `json:"NationalityID"`
	NationalityName string `json:"NationalityName"`
}

type clubResponse struct {
	ClubID          int                  `json:"ClubID"`
	ClubName        string               `json:"ClubName"`
	LeagueName      string               `json:"LeagueName"`
	NationalityID   int                  `json:"NationalityID"`
	NationalityName string               `json:"NationalityName"`
	Nationality     *nationalityResponse `json:"Nationality"`
}

type contractResponse struct {
	PlayerID      int           `json:"PlayerID"`
	ClubID        int           `json:"ClubID"`
	ClubName      string        `json:"ClubName"`
	LeagueName    string        `json:"LeagueName"`
	Club          *clubResponse `json:"Club"`
	DateOfJoin    string        `json:"DateOfJoin"`
	DateOfEnd     string        `json:"DateOfEnd"`
	ReleaseClause int64         `json:"ReleaseClause"`
}

type playerResponse struct {
	PlayerID        int                  `json:"PlayerID"`
	Name            string               `json:"Name"`
	Position        string               `json:"Position"`
	NationalityID   int                  `json:"NationalityID"`
	NationalityName string               `json:"NationalityName"`
	Nationality     *nationalityResponse `json:"Nationality"`
	ClubID          int                  `json:"ClubID"`
	ClubName        string               `json:"ClubName"`
	LeagueName      string               `json:"LeagueName"`
	Club            *clubResponse        `json:"Club"`
	DOB             string               `json:"DOB"`
	Overall         int                  `json:"Overall"`
	Value           int64                `json:"Value"`
	Contract        *contractResponse    `json:"Contract"`

	Pace      *int `json:"Pace"`
	Shooting  *int `json:"Shooting"`
	Passing   *int `json:"Passing"`
	Dribbling *int `json:"Dribbling"`
	Defending *int `json:"Defending"`
	Physical  *int `json:"Physical"`

	Reflexes    *int `json:"Reflexes"`
	Diving      *int `json:"Diving"`
	Handling    *int `json:"Handling"`
	Positioning *int `json:"Positioning"`
	Speed       *int `json:"Speed"`
}

// clubDetailResponse accepts the club either inline or under "club".
type clubDetailResponse struct {
	clubResponse
	Club    *clubResponse    `json:"club"`
	Players []playerResponse `json:"players"`
}

type listingResponse struct {
	Player   playerResponse   `json:"player"`
	Contract contractResponse `json:"contract"`
}

type searchRequest struct {
	StartsWith      string `json:"starts_with"`
	Nationality     string `json:"nationality"`
	Club            string `json:"club"`
	OutfieldPlayers bool   `json:"outfield_players"`
	GoalKeepers     bool   `json:"goal_keepers"`
}

type transferRequest struct {
	PlayerID      int    `json:"player_id"`
	NewClubID     int    `json:"new_club_id"`
	ReleaseClause int64  `json:"release_clause"`
	ContractStart string `json:"contract_start"`
	ContractEnd   string `json:"contract_end"`
}

type transferResponse struct {
	Message  string            `json:"message"`
	Contract *contractResponse `json:"contract"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token       string        `json:"token"`
	AccessToken string        `json:"access_token"`
	User        *userResponse `json:"user"`
}

type errorResponse struct {
	Detail  any    `json:"detail"`
	Message string `json:"message"`
}
