package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/calamity-catalog/internal/attack"
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/fetch"
	"github.com/KirkDiggler/calamity-catalog/internal/views"
)

// loadWeapon runs a DetailView to completion. A failed load is rendered before errReported is returned.
func (a *app) loadWeapon(ctx context.Context, cmd *cobra.Command, id string) (*views.DetailView, error) {
	client, cleanup, err := a.newClient(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	log.Printf("Requesting weapon '%s' from %s...", id, a.cfg.APIURL)

	view, err := views.NewDetailView(&views.DetailConfig{
		Client: client,
		ID:     id,
		Fetch:  a.fetchConfig(ctx, "weapon "+id),
	})
	if err != nil {
		return nil, err
	}
	unsubscribe := view.Subscribe(logRetries[*calamity.Weapon](a.cfg.RetryLimit))
	defer unsubscribe()

	state, err := view.Wait(ctx)
	if err != nil {
		view.Close()
		return nil, fmt.Errorf("interrupted while loading weapon %s: %w", id, err)
	}
	if state.Status == fetch.StatusError {
		defer view.Close()
		if err := views.RenderDetail(cmd.OutOrStdout(), view); err != nil {
			return nil, err
		}
		return nil, errReported
	}
	return view, nil
}

func newGetCmd(a *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "get [weapon-id]",
		Short: "Show one weapon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			view, err := a.loadWeapon(ctx, cmd, args[0])
			if err != nil {
				return err
			}
			defer view.Close()

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), toWeaponJSON(view.State().Value))
			}
			return views.RenderDetail(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func newAttackCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attack [weapon-id]",
		Short: "Roll one turn of attacks with a weapon",
		Long: `Roll a d20 for each attack the weapon makes per turn. Rolls at or above
21 minus the weapon's critical chance are critical hits and deal double damage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			view, err := a.loadWeapon(ctx, cmd, args[0])
			if err != nil {
				return err
			}
			defer view.Close()

			previewer, err := attack.New(&attack.Config{})
			if err != nil {
				return err
			}
			preview, err := previewer.Preview(view.State().Value)
			if err != nil {
				return fmt.Errorf("failed to roll attack: %w", err)
			}
			return views.RenderAttack(cmd.OutOrStdout(), preview)
		},
	}
	return cmd
}

func newSectionsCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List catalog sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return views.RenderSections(cmd.OutOrStdout())
		},
	}
}
