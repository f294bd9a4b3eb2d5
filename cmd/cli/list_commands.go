package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"movietier/pkg/models"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{Use: "list", Short: "Create and inspect tier lists"}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tier list and make it the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tl models.TierList
			if err := ctx.doJSON(cmd.Context(), http.MethodPost, "/api/tierlists", map[string]string{"name": args[0]}, &tl); err != nil {
				return err
			}
			if err := ctx.remember(tl.ID); err != nil {
				return err
			}
			return ctx.printList(cmd.OutOrStdout(), tl)
		},
	}

	var showID string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print every container of a tier list",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ctx.listID(showID)
			if err != nil {
				return err
			}
			var tl models.TierList
			if err := ctx.doJSON(cmd.Context(), http.MethodGet, "/api/tierlists/"+url.PathEscape(id), nil, &tl); err != nil {
				return err
			}
			return ctx.printList(cmd.OutOrStdout(), tl)
		},
	}
	show.Flags().StringVar(&showID, "id", "", "tier list id (default: current)")

	var renameID string
	rename := &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename a tier list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ctx.listID(renameID)
			if err != nil {
				return err
			}
			var tl models.TierList
			if err := ctx.doJSON(cmd.Context(), http.MethodPatch, "/api/tierlists/"+url.PathEscape(id), map[string]string{"name": args[0]}, &tl); err != nil {
				return err
			}
			return ctx.printList(cmd.OutOrStdout(), tl)
		},
	}
	rename.Flags().StringVar(&renameID, "id", "", "tier list id (default: current)")

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List the tier lists you own",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Total int                      `json:"total"`
				Items []models.TierListSummary `json:"items"`
			}
			if err := ctx.doJSON(cmd.Context(), http.MethodGet, "/users/me/tierlists?limit=100", nil, &resp); err != nil {
				return err
			}
			if *ctx.jsonFlag {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			rows := make([][]string, 0, len(resp.Items))
			for _, it := range resp.Items {
				rows = append(rows, []string{it.ID, it.Name, strconv.Itoa(it.MovieCount), strconv.FormatInt(it.Version, 10)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name", "Movies", "Version"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight}))
			return nil
		},
	}

	cmd.AddCommand(create, show, rename, mine)
	return cmd
}

func (c *commandContext) listID(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	s, err := c.session()
	if err != nil {
		return "", err
	}
	if s.LastList == "" {
		return "", errors.New("no current tier list: pass --id or run `list create`")
	}
	return s.LastList, nil
}

func (c *commandContext) remember(id string) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	s.API = s.baseURL(*c.apiFlag)
	s.LastList = id
	return c.saveSession(s)
}

func (c *commandContext) printList(w io.Writer, tl models.TierList) error {
	if *c.jsonFlag {
		return printJSON(w, tl)
	}
	fmt.Fprintf(w, "%s  (id %s, version %d)\n", tl.Name, tl.ID, tl.Version)

	rows := make([][]string, 0, tl.Count())
	for _, ct := range models.Containers() {
		for i, m := range tl.Movies(ct) {
			rows = append(rows, []string{ct.String(), strconv.Itoa(i + 1), m.ImdbID, m.Title, m.Year})
		}
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "(empty)")
		return nil
	}
	fmt.Fprintln(w, renderTable([]string{"Container", "#", "IMDb", "Title", "Year"}, rows,
		[]columnAlignment{alignLeft, alignRight}))
	return nil
}
