package client

// Filter scopes a match history query. Zero-valued fields are omitted.
type Filter struct {
	AccountID           int64
	HeroID              int
	GameMode            int
	Skill               int
	DateMin             int64
	DateMax             int64
	MinPlayers          int
	LeagueID            int
	MatchesRequested    int
	TournamentGamesOnly bool
}

// HistoryPlayer is one slot of a match summary.
type HistoryPlayer struct {
	AccountID  uint32 `json:"account_id"`
	PlayerSlot int    `json:"player_slot"`
	HeroID     int    `json:"hero_id"`
}

// MatchSummary is a lightweight match entry returned by GetMatchHistory.
type MatchSummary struct {
	MatchID       int64           `json:"match_id"`
	MatchSeqNum   int64           `json:"match_seq_num"`
	StartTime     int64           `json:"start_time"`
	LobbyType     int             `json:"lobby_type"`
	RadiantTeamID int64           `json:"radiant_team_id"`
	DireTeamID    int64           `json:"dire_team_id"`
	Players       []HistoryPlayer `json:"players"`
}

// HistoryPage is one page of match history.
type HistoryPage struct {
	Status           int            `json:"status"`
	StatusDetail     string         `json:"statusDetail,omitempty"`
	NumResults       int            `json:"num_results"`
	TotalResults     int            `json:"total_results"`
	ResultsRemaining int            `json:"results_remaining"`
	Matches          []MatchSummary `json:"matches"`
}

// AbilityUpgrade is one skill point spent by a player.
type AbilityUpgrade struct {
	Ability int `json:"ability"`
	Time    int `json:"time"`
	Level   int `json:"level"`
}

// DetailPlayer is a player entry of a match detail.
type DetailPlayer struct {
	AccountID       uint32           `json:"account_id"`
	PlayerSlot      int              `json:"player_slot"`
	HeroID          int              `json:"hero_id"`
	Item0           int              `json:"item_0"`
	Item1           int              `json:"item_1"`
	Item2           int              `json:"item_2"`
	Item3           int              `json:"item_3"`
	Item4           int              `json:"item_4"`
	Item5           int              `json:"item_5"`
	Backpack0       int              `json:"backpack_0"`
	Backpack1       int              `json:"backpack_1"`
	Backpack2       int              `json:"backpack_2"`
	Kills           int              `json:"kills"`
	Deaths          int              `json:"deaths"`
	Assists         int              `json:"assists"`
	LeaverStatus    int              `json:"leaver_status"`
	LastHits        int              `json:"last_hits"`
	Denies          int              `json:"denies"`
	GoldPerMin      int              `json:"gold_per_min"`
	XPPerMin        int              `json:"xp_per_min"`
	Level           int              `json:"level"`
	NetWorth        int              `json:"net_worth"`
	HeroDamage      int              `json:"hero_damage"`
	TowerDamage     int              `json:"tower_damage"`
	HeroHealing     int              `json:"hero_healing"`
	Gold            int              `json:"gold"`
	GoldSpent       int              `json:"gold_spent"`
	AbilityUpgrades []AbilityUpgrade `json:"ability_upgrades,omitempty"`
}

// PickBan is one draft action in captains mode.
type PickBan struct {
	IsPick bool `json:"is_pick"`
	HeroID int  `json:"hero_id"`
	Team   int  `json:"team"`
	Order  int  `json:"order"`
}

// MatchDetail is the full record of one match.
type MatchDetail struct {
	MatchID               int64          `json:"match_id"`
	MatchSeqNum           int64          `json:"match_seq_num"`
	RadiantWin            bool           `json:"radiant_win"`
	Duration              int            `json:"duration"`
	PreGameDuration       int            `json:"pre_game_duration"`
	StartTime             int64          `json:"start_time"`
	TowerStatusRadiant    int            `json:"tower_status_radiant"`
	TowerStatusDire       int            `json:"tower_status_dire"`
	BarracksStatusRadiant int            `json:"barracks_status_radiant"`
	BarracksStatusDire    int            `json:"barracks_status_dire"`
	Cluster               int            `json:"cluster"`
	FirstBloodTime        int            `json:"first_blood_time"`
	LobbyType             int            `json:"lobby_type"`
	HumanPlayers          int            `json:"human_players"`
	LeagueID              int            `json:"leagueid"`
	PositiveVotes         int            `json:"positive_votes"`
	NegativeVotes         int            `json:"negative_votes"`
	GameMode              int            `json:"game_mode"`
	Engine                int            `json:"engine"`
	RadiantScore          int            `json:"radiant_score"`
	DireScore             int            `json:"dire_score"`
	Players               []DetailPlayer `json:"players"`
	PicksBans             []PickBan      `json:"picks_bans,omitempty"`
}

// SeqNumHistory is the response of GetMatchHistoryBySequenceNum.
type SeqNumHistory struct {
	Status  int           `json:"status"`
	Matches []MatchDetail `json:"matches"`
}

// Hero is a playable character.
type Hero struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LocalizedName string `json:"localized_name,omitempty"`
}

// Heroes is the response of GetHeroes.
type Heroes struct {
	Heroes []Hero `json:"heroes"`
	Count  int    `json:"count"`
}

// GameItem is an in-game item.
type GameItem struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Cost          int    `json:"cost"`
	SecretShop    int    `json:"secret_shop"`
	SideShop      int    `json:"side_shop"`
	Recipe        int    `json:"recipe"`
	LocalizedName string `json:"localized_name,omitempty"`
}

// GameItems is the response of GetGameItems.
type GameItems struct {
	Items []GameItem `json:"items"`
}

// League is a ticketed league.
type League struct {
	Name          string `json:"name"`
	LeagueID      int    `json:"leagueid"`
	Description   string `json:"description"`
	TournamentURL string `json:"tournament_url"`
	ItemDef       int    `json:"itemdef"`
}

// Leagues is the response of GetLeagueListing.
type Leagues struct {
	Leagues []League `json:"leagues"`
}

// LivePlayer is a player slot in a live league game.
type LivePlayer struct {
	AccountID uint32 `json:"account_id"`
	Name      string `json:"name"`
	HeroID    int    `json:"hero_id"`
	Team      int    `json:"team"`
}

// LiveTeam is one side of a live league game.
type LiveTeam struct {
	TeamName string `json:"team_name"`
	TeamID   int64  `json:"team_id"`
	TeamLogo int64  `json:"team_logo"`
	Complete bool   `json:"complete"`
}

// LiveGame is a ticketed game in progress.
type LiveGame struct {
	Players       []LivePlayer `json:"players"`
	RadiantTeam   *LiveTeam    `json:"radiant_team,omitempty"`
	DireTeam      *LiveTeam    `json:"dire_team,omitempty"`
	LobbyID       int64        `json:"lobby_id"`
	MatchID       int64        `json:"match_id"`
	Spectators    int          `json:"spectators"`
	LeagueID      int          `json:"league_id"`
	StreamDelayS  float64      `json:"stream_delay_s"`
	RadiantSeries int          `json:"radiant_series_wins"`
	DireSeries    int          `json:"dire_series_wins"`
	SeriesType    int          `json:"series_type"`
}

// LiveLeagueGames is the response of GetLiveLeagueGames.
type LiveLeagueGames struct {
	Games []LiveGame `json:"games"`
}

// Team is an in-game team.
type Team struct {
	TeamID                       int64  `json:"team_id"`
	Name                         string `json:"name"`
	Tag                          string `json:"tag"`
	TimeCreated                  int64  `json:"time_created"`
	Rating                       string `json:"rating"`
	Logo                         int64  `json:"logo"`
	LogoSponsor                  int64  `json:"logo_sponsor"`
	CountryCode                  string `json:"country_code"`
	URL                          string `json:"url"`
	GamesPlayedWithCurrentRoster int    `json:"games_played_with_current_roster"`
	AdminAccountID               uint32 `json:"admin_account_id"`
}

// TeamInfo is the response of GetTeamInfoByTeamID.
type TeamInfo struct {
	Status int    `json:"status"`
	Teams  []Team `json:"teams"`
}

// PlayerSummary is a Steam community profile.
type PlayerSummary struct {
	SteamID                  string `json:"steamid"`
	CommunityVisibilityState int    `json:"communityvisibilitystate"`
	ProfileState             int    `json:"profilestate"`
	PersonaName              string `json:"personaname"`
	LastLogoff               int64  `json:"lastlogoff"`
	ProfileURL               string `json:"profileurl"`
	Avatar                   string `json:"avatar"`
	AvatarMedium             string `json:"avatarmedium"`
	AvatarFull               string `json:"avatarfull"`
	PersonaState             int    `json:"personastate"`
	RealName                 string `json:"realname,omitempty"`
	TimeCreated              int64  `json:"timecreated,omitempty"`
	LocCountryCode           string `json:"loccountrycode,omitempty"`
}

// PlayerSummaries is the response of GetPlayerSummaries.
type PlayerSummaries struct {
	Players []PlayerSummary `json:"players"`
}

// PrizePool is the response of GetTournamentPrizePool.
type PrizePool struct {
	PrizePool int64 `json:"prize_pool"`
	LeagueID  int   `json:"league_id"`
}
