package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{Use: "sync", Short: "Follow live tier-list changes"}

	var listFlag string
	var all bool
	listen := &cobra.Command{
		Use:   "listen",
		Short: "Stream change events over WebSocket until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.session()
			if err != nil {
				return err
			}
			id := ""
			if !all {
				if id, err = ctx.listID(listFlag); err != nil {
					return err
				}
			}
			wsURL, err := websocketURL(s.baseURL(*ctx.apiFlag), id)
			if err != nil {
				return err
			}

			ws, _, err := websocket.DefaultDialer.DialContext(cmd.Context(), wsURL, nil)
			if err != nil {
				return fmt.Errorf("dial %s: %w", wsURL, err)
			}
			defer ws.Close()
			go func() {
				<-cmd.Context().Done()
				_ = ws.Close()
			}()

			for {
				_, msg, err := ws.ReadMessage()
				if err != nil {
					if cmd.Context().Err() != nil {
						return nil
					}
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(msg))
			}
		},
	}
	listen.Flags().StringVar(&listFlag, "id", "", "tier list id (default: current)")
	listen.Flags().BoolVar(&all, "all", false, "follow every tier list")

	cmd.AddCommand(listen)
	return cmd
}

func websocketURL(baseURL, tierListID string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid api url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	q := url.Values{}
	if tierListID != "" {
		q.Set("tierlist", tierListID)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
