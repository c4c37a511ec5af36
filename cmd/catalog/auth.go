package main

import (
	"log"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/KirkDiggler/calamity-catalog/internal/errors"
)

func newLoginCmd(a *app) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the bearer credential used for mutations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token = strings.TrimSpace(token)
			if token == "" {
				return apperrors.InvalidArgument("--token cannot be empty")
			}

			s, cleanup, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := s.SetToken(cmd.Context(), token); err != nil {
				return err
			}
			log.Printf("Credential stored (%s session)", a.cfg.SessionBackend)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "bearer token issued by the catalog API")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, cleanup, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := s.Clear(cmd.Context()); err != nil {
				return err
			}
			log.Println("Credential cleared")
			return nil
		},
	}
}
