package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

func newAuthCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{Use: "auth", Short: "Manage your account session"}

	var username, email, password string

	register := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"username": username, "email": email, "password": password}
			return ctx.authenticate(cmd, "/auth/register", payload)
		},
	}
	register.Flags().StringVar(&username, "username", "", "username")
	register.Flags().StringVar(&email, "email", "", "email address")
	register.Flags().StringVar(&password, "password", "", "password")
	_ = register.MarkFlagRequired("username")
	_ = register.MarkFlagRequired("email")
	_ = register.MarkFlagRequired("password")

	login := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"email": email, "password": password}
			return ctx.authenticate(cmd, "/auth/login", payload)
		},
	}
	login.Flags().StringVar(&email, "email", "", "email address")
	login.Flags().StringVar(&password, "password", "", "password")
	_ = login.MarkFlagRequired("email")
	_ = login.MarkFlagRequired("password")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Revoke the token and forget it",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.session()
			if err != nil {
				return err
			}
			if s.Token != "" {
				err := ctx.doJSON(cmd.Context(), http.MethodPost, "/auth/logout", nil, nil)
				var apiErr *apiError
				if err != nil && !(errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized) {
					return err
				}
			}
			s.Token, s.Username = "", ""
			if err := ctx.saveSession(s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}

	cmd.AddCommand(register, login, logout)
	return cmd
}

func (c *commandContext) authenticate(cmd *cobra.Command, path string, payload any) error {
	var resp authResponse
	if err := c.doJSON(cmd.Context(), http.MethodPost, path, payload, &resp); err != nil {
		return err
	}

	s, err := c.session()
	if err != nil {
		return err
	}
	s.API = s.baseURL(*c.apiFlag)
	s.Token = resp.Token
	s.Username = resp.User.Username
	if err := c.saveSession(s); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", resp.User.Username)
	return nil
}
