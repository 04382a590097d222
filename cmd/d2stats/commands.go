package main

import (
	"github.com/Sternrassler/dota2-api-client/pkg/client"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		filter client.Filter
		cursor int64
	)

	cmd := &cobra.Command{
		Use:   "history <account-id>",
		Short: "Fetch one page of match history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := parseID(args[0], "account id")
			if err != nil {
				return err
			}
			filter.AccountID = accountID

			page, err := a.client.GetMatchHistory(cmd.Context(), filter, cursor)
			if err != nil {
				return err
			}
			return a.writeJSON(cmd, page)
		},
	}

	addFilterFlags(cmd, &filter)
	cmd.Flags().Int64Var(&cursor, "start-at", 0, "start at this match id (0 = newest)")
	return cmd
}

func newMatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "match <match-id>",
		Short: "Fetch the details of one match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matchID, err := parseID(args[0], "match id")
			if err != nil {
				return err
			}
			detail, err := a.client.GetMatchDetails(cmd.Context(), matchID)
			if err != nil {
				return err
			}
			return a.writeJSON(cmd, detail)
		},
	}
}

func newHeroesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "heroes",
		Short: "List heroes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			heroes, err := a.client.GetHeroes(cmd.Context())
			if err != nil {
				return err
			}
			return a.writeJSON(cmd, heroes.Heroes)
		},
	}
}

func newItemsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List game items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.client.GetGameItems(cmd.Context())
			if err != nil {
				return err
			}
			return a.writeJSON(cmd, items.Items)
		},
	}
}

func newLeaguesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List ticketed leagues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			leagues, err := a.client.GetLeagueListing(cmd.Context())
			if err != nil {
				return err
			}
			return a.writeJSON(cmd, leagues.Leagues)
		},
	}
}

func newLiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "live",
		Short: "List live league games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := a.client.GetLiveLeagueGames(cmd.Context())
			if err != nil {
				return err
			}
			return a.writeJSON(cmd, games.Games)
		},
	}
}

func newTeamsCmd(a *app) *cobra.Command {
	var (
		startAt   int64
		requested int
	)

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List teams by team id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := a.client.GetTeamInfoByTeamID(cmd.Context(), startAt, requested)
			if err != nil {
				return err
			}
			return a.writeJSON(cmd, teams.Teams)
		},
	}

	cmd.Flags().Int64Var(&startAt, "start-at", 0, "first team id")
	cmd.Flags().IntVar(&requested, "count", 0, "number of teams")
	return cmd
}

func newPrizePoolCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prize-pool <league-id>",
		Short: "Show the prize pool of a league",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			leagueID, err := parseID(args[0], "league id")
			if err != nil {
				return err
			}
			pool, err := a.client.GetTournamentPrizePool(cmd.Context(), int(leagueID))
			if err != nil {
				return err
			}
			return a.writeJSON(cmd, pool)
		},
	}
}

func newPlayersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "players <account-id>...",
		Short: "Show Steam profiles (32-bit or 64-bit ids)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg, "account id")
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			players, err := a.client.GetPlayerSummaries(cmd.Context(), ids...)
			if err != nil {
				return err
			}
			return a.writeJSON(cmd, players.Players)
		},
	}
}

func newRefDataCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refdata",
		Short: "Manage stored reference data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "update",
		Short: "Fetch and store heroes and items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			updater, err := a.updater(cmd.Context())
			if err != nil {
				return err
			}
			heroes, err := updater.UpdateHeroes(cmd.Context())
			if err != nil {
				return err
			}
			items, err := updater.UpdateGameItems(cmd.Context())
			if err != nil {
				return err
			}
			a.logger.Info().
				Str("backend", a.cfg.RefData.Backend).
				Int("heroes", len(heroes)).
				Int("items", len(items)).
				Msg("Reference data updated")
			return nil
		},
	})

	return cmd
}
