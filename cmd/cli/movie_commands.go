package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"movietier/pkg/models"
)

func newMovieCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{Use: "movie", Short: "Search movies and place them in tiers"}

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the movie catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Movies []models.Movie `json:"movies"`
			}
			if err := ctx.doJSON(cmd.Context(), http.MethodPost, "/api/movies/search", map[string]string{"query": args[0]}, &resp); err != nil {
				return err
			}
			if *ctx.jsonFlag {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			if len(resp.Movies) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no movies found")
				return nil
			}
			rows := make([][]string, 0, len(resp.Movies))
			for _, m := range resp.Movies {
				rows = append(rows, []string{m.ImdbID, m.Title, m.Year})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"IMDb", "Title", "Year"}, rows, nil))
			return nil
		},
	}

	var listFlag, containerFlag string

	add := &cobra.Command{
		Use:   "add <imdbId>",
		Short: "Add a movie to a tier list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ctx.listID(listFlag)
			if err != nil {
				return err
			}
			var m models.Movie
			if err := ctx.doJSON(cmd.Context(), http.MethodGet, "/api/movies/"+url.PathEscape(args[0]), nil, &m); err != nil {
				return err
			}
			payload := map[string]any{"movie": m}
			if containerFlag != "" {
				payload["container"] = containerFlag
			}
			var tl models.TierList
			if err := ctx.doJSON(cmd.Context(), http.MethodPost, "/api/tierlists/"+url.PathEscape(id)+"/movies", payload, &tl); err != nil {
				return err
			}
			return ctx.printList(cmd.OutOrStdout(), tl)
		},
	}
	add.Flags().StringVar(&listFlag, "id", "", "tier list id (default: current)")
	add.Flags().StringVar(&containerFlag, "to", "", "container: toBeWatched, watched, S, A, B, C, D or F")

	move := &cobra.Command{
		Use:   "move <imdbId> <container>",
		Short: "Move a movie to another container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := models.ParseContainer(args[1]); err != nil {
				return err
			}
			id, err := ctx.listID(listFlag)
			if err != nil {
				return err
			}
			var tl models.TierList
			path := "/api/tierlists/" + url.PathEscape(id) + "/movies/" + url.PathEscape(args[0])
			if err := ctx.doJSON(cmd.Context(), http.MethodPatch, path, map[string]string{"container": args[1]}, &tl); err != nil {
				return err
			}
			return ctx.printList(cmd.OutOrStdout(), tl)
		},
	}
	move.Flags().StringVar(&listFlag, "id", "", "tier list id (default: current)")

	rm := &cobra.Command{
		Use:   "rm <imdbId>",
		Short: "Remove a movie from a tier list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ctx.listID(listFlag)
			if err != nil {
				return err
			}
			var tl models.TierList
			path := "/api/tierlists/" + url.PathEscape(id) + "/movies/" + url.PathEscape(args[0])
			if err := ctx.doJSON(cmd.Context(), http.MethodDelete, path, nil, &tl); err != nil {
				return err
			}
			return ctx.printList(cmd.OutOrStdout(), tl)
		},
	}
	rm.Flags().StringVar(&listFlag, "id", "", "tier list id (default: current)")

	cmd.AddCommand(search, add, move, rm)
	return cmd
}
