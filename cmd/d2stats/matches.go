package main

import (
	"fmt"
	"strconv"

	"github.com/Sternrassler/dota2-api-client/pkg/client"
	"github.com/Sternrassler/dota2-api-client/pkg/pagination"
	"github.com/Sternrassler/dota2-api-client/pkg/refdata"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newMatchesCmd(a *app) *cobra.Command {
	var filter client.Filter

	cmd := &cobra.Command{
		Use:   "matches <account-id>",
		Short: "Collect the details of every match played by an account",
		Long: `Collect walks the match history of an account and fetches the detail of
every match. Histories with 500 or more results are collected hero by hero.
Requests are paced to one per second, so large histories take a while.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := parseID(args[0], "account id")
			if err != nil {
				return err
			}
			filter.AccountID = accountID

			updater, err := a.updater(cmd.Context())
			if err != nil {
				return err
			}

			aggCfg := a.cfg.AggregatorConfig()
			if !a.quiet {
				aggCfg.Observer = progressObserver(a.logger)
			}

			agg, err := pagination.NewAggregator(a.client, a.client,
				refdata.NewHeroLister(updater, a.cfg.RefData.MaxAge), aggCfg)
			if err != nil {
				return fmt.Errorf("create aggregator: %w", err)
			}

			matches, err := agg.Collect(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return a.writeJSON(cmd, matches)
		},
	}

	addFilterFlags(cmd, &filter)
	return cmd
}

func addFilterFlags(cmd *cobra.Command, filter *client.Filter) {
	cmd.Flags().IntVar(&filter.HeroID, "hero", 0, "restrict to one hero id")
	cmd.Flags().IntVar(&filter.GameMode, "game-mode", 0, "restrict to one game mode")
	cmd.Flags().IntVar(&filter.Skill, "skill", 0, "skill bracket (1-3)")
	cmd.Flags().Int64Var(&filter.DateMin, "date-min", 0, "earliest start time (unix seconds)")
	cmd.Flags().Int64Var(&filter.DateMax, "date-max", 0, "latest start time (unix seconds)")
	cmd.Flags().IntVar(&filter.MinPlayers, "min-players", 0, "minimum number of human players")
	cmd.Flags().IntVar(&filter.LeagueID, "league", 0, "restrict to one league id")
	cmd.Flags().IntVar(&filter.MatchesRequested, "matches-requested", 0, "page size")
	cmd.Flags().BoolVar(&filter.TournamentGamesOnly, "tournament-only", false, "only tournament games")
}

// progressObserver logs walk progress at page and hero boundaries.
func progressObserver(logger zerolog.Logger) pagination.Observer {
	return pagination.ObserverFuncs{
		OnPage: func(p pagination.PageProgress) {
			logger.Info().
				Int("hero_id", p.Category.ID).
				Int("page", p.Page).
				Int("matches", p.Matches).
				Int("results_remaining", p.Remaining).
				Int("fetched", p.Fetched).
				Msg("Batch fetched")
		},
		OnCategory: func(c pagination.CategoryProgress) {
			logger.Info().
				Int("hero_id", c.Category.ID).
				Str("hero", c.Category.Name).
				Str("progress", fmt.Sprintf("%d/%d", c.Index+1, c.Count)).
				Int("fetched", c.Fetched).
				Msg("Collecting hero")
		},
	}
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return id, nil
}
