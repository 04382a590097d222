package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Web API method paths, relative to BaseURL.
const (
	EndpointMatchHistory      = "IDOTA2Match_570/GetMatchHistory/V001/"
	EndpointMatchHistoryBySeq = "IDOTA2Match_570/GetMatchHistoryBySequenceNum/V001/"
	EndpointMatchDetails      = "IDOTA2Match_570/GetMatchDetails/V001/"
	EndpointLeagueListing     = "IDOTA2Match_570/GetLeagueListing/V001/"
	EndpointLiveLeagueGames   = "IDOTA2Match_570/GetLiveLeagueGames/V001/"
	EndpointTeamInfo          = "IDOTA2Match_570/GetTeamInfoByTeamID/V001/"
	EndpointPlayerSummaries   = "ISteamUser/GetPlayerSummaries/V002/"
	EndpointHeroes            = "IEconDOTA2_570/GetHeroes/V001/"
	EndpointGameItems         = "IEconDOTA2_570/GetGameItems/V001/"
	EndpointPrizePool         = "IEconDOTA2_570/GetTournamentPrizePool/V001/"
)

// steamID64Base is the offset between 32-bit account ids and 64-bit Steam ids.
const steamID64Base int64 = 76561197960265728

// ConvertTo64Bit converts a 32-bit account id to a 64-bit Steam id.
// Ids that are already 64-bit are returned unchanged.
func ConvertTo64Bit(id int64) int64 {
	if id >= steamID64Base {
		return id
	}
	return id + steamID64Base
}

// ConvertTo32Bit converts a 64-bit Steam id to a 32-bit account id.
func ConvertTo32Bit(id int64) int64 {
	if id < steamID64Base {
		return id
	}
	return id - steamID64Base
}

// Values encodes the filter as Web API query parameters.
func (f Filter) Values() url.Values {
	v := url.Values{}
	setInt64 := func(name string, n int64) {
		if n != 0 {
			v.Set(name, strconv.FormatInt(n, 10))
		}
	}
	setInt64("account_id", f.AccountID)
	setInt64("hero_id", int64(f.HeroID))
	setInt64("game_mode", int64(f.GameMode))
	setInt64("skill", int64(f.Skill))
	setInt64("date_min", f.DateMin)
	setInt64("date_max", f.DateMax)
	setInt64("min_players", int64(f.MinPlayers))
	setInt64("league_id", int64(f.LeagueID))
	setInt64("matches_requested", int64(f.MatchesRequested))
	if f.TournamentGamesOnly {
		v.Set("tournament_games_only", "1")
	}
	return v
}

// GetMatchHistory returns one page of match history. A cursor of 0 asks for
// the newest matches; otherwise the page starts at that match id.
func (c *Client) GetMatchHistory(ctx context.Context, filter Filter, cursor int64) (*HistoryPage, error) {
	params := filter.Values()
	if cursor != 0 {
		params.Set("start_at_match_id", strconv.FormatInt(cursor, 10))
	}
	return get[HistoryPage](ctx, c, EndpointMatchHistory, params)
}

// FetchPage returns one history page restricted to a hero. Category 0
// leaves the filter's own hero id in place.
func (c *Client) FetchPage(ctx context.Context, filter Filter, cursor int64, category int) (*HistoryPage, error) {
	if category != 0 {
		filter.HeroID = category
	}
	return c.GetMatchHistory(ctx, filter, cursor)
}

// GetMatchHistoryBySeqNum returns matches ordered by sequence number.
func (c *Client) GetMatchHistoryBySeqNum(ctx context.Context, startAtSeqNum int64, matchesRequested int) (*SeqNumHistory, error) {
	params := url.Values{}
	if startAtSeqNum != 0 {
		params.Set("start_at_match_seq_num", strconv.FormatInt(startAtSeqNum, 10))
	}
	if matchesRequested > 0 {
		params.Set("matches_requested", strconv.Itoa(matchesRequested))
	}
	return get[SeqNumHistory](ctx, c, EndpointMatchHistoryBySeq, params)
}

// GetMatchDetails returns the full record of one match.
func (c *Client) GetMatchDetails(ctx context.Context, matchID int64) (*MatchDetail, error) {
	if matchID <= 0 {
		return nil, fmt.Errorf("%w: match id must be positive (got %d)", ErrConfiguration, matchID)
	}
	params := url.Values{}
	params.Set("match_id", strconv.FormatInt(matchID, 10))
	return get[MatchDetail](ctx, c, EndpointMatchDetails, params)
}

// GetLeagueListing returns all ticketed leagues.
func (c *Client) GetLeagueListing(ctx context.Context) (*Leagues, error) {
	return get[Leagues](ctx, c, EndpointLeagueListing, nil)
}

// GetLiveLeagueGames returns the ticketed games in progress.
func (c *Client) GetLiveLeagueGames(ctx context.Context) (*LiveLeagueGames, error) {
	return get[LiveLeagueGames](ctx, c, EndpointLiveLeagueGames, nil)
}

// GetTeamInfoByTeamID returns teams starting at the given id.
func (c *Client) GetTeamInfoByTeamID(ctx context.Context, startAtTeamID int64, teamsRequested int) (*TeamInfo, error) {
	params := url.Values{}
	if startAtTeamID != 0 {
		params.Set("start_at_team_id", strconv.FormatInt(startAtTeamID, 10))
	}
	if teamsRequested > 0 {
		params.Set("teams_requested", strconv.Itoa(teamsRequested))
	}
	return get[TeamInfo](ctx, c, EndpointTeamInfo, params)
}

// GetPlayerSummaries returns Steam profiles. Account ids may be given in
// 32-bit or 64-bit form.
func (c *Client) GetPlayerSummaries(ctx context.Context, ids ...int64) (*PlayerSummaries, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one steam id required", ErrConfiguration)
	}
	steamIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		steamIDs = append(steamIDs, strconv.FormatInt(ConvertTo64Bit(id), 10))
	}
	params := url.Values{}
	params.Set("steamids", strings.Join(steamIDs, ","))
	return get[PlayerSummaries](ctx, c, EndpointPlayerSummaries, params)
}

// GetHeroes returns the hero list in the client language.
func (c *Client) GetHeroes(ctx context.Context) (*Heroes, error) {
	return get[Heroes](ctx, c, EndpointHeroes, nil)
}

// GetGameItems returns the item list in the client language.
func (c *Client) GetGameItems(ctx context.Context) (*GameItems, error) {
	return get[GameItems](ctx, c, EndpointGameItems, nil)
}

// GetTournamentPrizePool returns the current prize pool of a league.
func (c *Client) GetTournamentPrizePool(ctx context.Context, leagueID int) (*PrizePool, error) {
	params := url.Values{}
	if leagueID != 0 {
		params.Set("leagueid", strconv.Itoa(leagueID))
	}
	return get[PrizePool](ctx, c, EndpointPrizePool, params)
}
