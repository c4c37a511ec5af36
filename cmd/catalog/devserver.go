package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/calamity-catalog/internal/devserver"
)

func newDevServerCmd(a *app) *cobra.Command {
	var (
		port  int
		token string
	)

	cmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Serve a seeded in-memory catalog API",
		Long: `Start a local catalog API seeded with sample weapons. Point the CLI at it with
--api-url http://localhost:<port> and log in with the dev token to try mutations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.cfg.Debug {
				gin.SetMode(gin.ReleaseMode)
			}

			srv, err := devserver.New(&devserver.Config{
				Token:  token,
				Logger: a.logger,
			})
			if err != nil {
				return err
			}

			lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
			if err != nil {
				return fmt.Errorf("failed to listen on port %d: %w", port, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Printf("Dev server listening on %s (token %q)", lis.Addr(), token)
			if err := srv.Serve(ctx, lis); err != nil {
				return err
			}
			log.Println("Dev server stopped")
			return nil
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	cmd.Flags().StringVar(&token, "token", devserver.DefaultToken, "bearer token accepted on mutations")
	return cmd
}
