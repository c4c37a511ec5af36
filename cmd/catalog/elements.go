package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/fetch"
	"github.com/KirkDiggler/calamity-catalog/internal/views"
)

func newElementsCmd(a *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "elements [name]",
		Short: "List damage elements, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			client, cleanup, err := a.newClient(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var producer fetch.Producer[[]calamity.ElementInfo] = client.ListElements
			if len(args) == 1 {
				name := args[0]
				producer = func(ctx context.Context) ([]calamity.ElementInfo, error) {
					info, err := client.GetElement(ctx, name)
					if err != nil {
						return nil, err
					}
					return []calamity.ElementInfo{*info}, nil
				}
			}

			log.Printf("Requesting elements from %s...", a.cfg.APIURL)

			ctrl, err := fetch.New(producer, a.fetchConfig(ctx, "elements"))
			if err != nil {
				return err
			}
			defer ctrl.Close()
			defer ctrl.Subscribe(logRetries[[]calamity.ElementInfo](a.cfg.RetryLimit))()

			state, err := ctrl.Wait(ctx)
			if err != nil {
				return fmt.Errorf("interrupted while loading elements: %w", err)
			}

			out := cmd.OutOrStdout()
			if state.Status == fetch.StatusError {
				if err := views.RenderError(out, state.Err); err != nil {
					return err
				}
				return errReported
			}
			if jsonOut {
				return writeJSON(out, elementsJSON(state.Value))
			}
			return views.RenderElements(out, state.Value)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}
