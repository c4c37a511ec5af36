package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/calamity-catalog/internal/clients/catalog"
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/fetch"
	"github.com/KirkDiggler/calamity-catalog/internal/views"
)

// listSource builds the producer for a list command once the client exists
type listSource func(client catalog.Client) fetch.Producer[[]*calamity.Weapon]

// showWeapons loads a list through a WeaponsView and renders it
func (a *app) showWeapons(cmd *cobra.Command, what string, source listSource, filter views.Filter, jsonOut bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	client, cleanup, err := a.newClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	log.Printf("Requesting %s from %s...", what, a.cfg.APIURL)

	view, err := views.NewWeaponsView(&views.WeaponsConfig{
		Load:   source(client),
		Fetch:  a.fetchConfig(ctx, what),
		Filter: filter,
	})
	if err != nil {
		return err
	}
	defer view.Close()
	defer view.Subscribe(logRetries[[]*calamity.Weapon](a.cfg.RetryLimit))()

	state, err := view.Wait(ctx)
	if err != nil {
		return fmt.Errorf("interrupted while loading %s: %w", what, err)
	}

	out := cmd.OutOrStdout()
	if jsonOut && state.Status == fetch.StatusSuccess {
		return writeJSON(out, weaponsJSON(view.Visible()))
	}
	if err := views.RenderWeapons(out, view); err != nil {
		return err
	}
	if state.Status == fetch.StatusError {
		return errReported
	}
	return nil
}

func listAll(client catalog.Client) fetch.Producer[[]*calamity.Weapon] {
	return client.ListAll
}

func newListCmd(a *app) *cobra.Command {
	var (
		class, rarity, element, search, sortBy string
		jsonOut                                bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List weapons with local filters",
		Long: `List every weapon in the catalog. Filters and sorting run locally on the loaded
list; when a search matches nothing, close names are suggested.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := parseLocalFilter(class, rarity, element, search, sortBy)
			if err != nil {
				return err
			}
			return a.showWeapons(cmd, "weapons", listAll, filter, jsonOut)
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "weapon class (melee, ranged, mage, summon, rogue)")
	cmd.Flags().StringVar(&rarity, "rarity", "", "rarity tier (common..legendary)")
	cmd.Flags().StringVar(&element, "element", "", "damage element")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name substring")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "sort order: name or damage")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func parseLocalFilter(class, rarity, element, search, sortBy string) (views.Filter, error) {
	var filter views.Filter
	var ok bool

	if class != "" {
		if filter.Class, ok = calamity.ParseWeaponClass(class); !ok {
			return filter, fmt.Errorf("unknown weapon class %q", class)
		}
	}
	if rarity != "" {
		if filter.Rarity, ok = calamity.ParseRarity(rarity); !ok {
			return filter, fmt.Errorf("unknown rarity %q", rarity)
		}
	}
	if element != "" {
		if filter.Element, ok = calamity.ParseElement(element); !ok {
			return filter, fmt.Errorf("unknown element %q", element)
		}
	}
	if filter.SortBy, ok = views.ParseSortBy(sortBy); !ok {
		return filter, fmt.Errorf("unknown sort order %q", sortBy)
	}
	filter.Search = search
	return filter, nil
}

func newFilterCmd(a *app) *cobra.Command {
	var (
		category, element, rarity, namePrefix string
		minStat, maxStat                      int
		jsonOut                               bool
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter weapons on the server",
		Long:  `Send only the flags that are set as filter criteria; with no flags every weapon is returned.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			values := url.Values{}
			if flags.Changed("category") {
				values.Set("category", category)
			}
			if flags.Changed("element") {
				values.Set("element", element)
			}
			if flags.Changed("rarity") {
				values.Set("rarity", rarity)
			}
			if prefix := strings.TrimSpace(namePrefix); prefix != "" {
				values.Set("namePrefix", prefix)
			}
			if flags.Changed("min-stat") {
				values.Set("minStat", strconv.Itoa(minStat))
			}
			if flags.Changed("max-stat") {
				values.Set("maxStat", strconv.Itoa(maxStat))
			}

			criteria, err := catalog.ParseCriteria(values)
			if err != nil {
				return err
			}
			source := func(client catalog.Client) fetch.Producer[[]*calamity.Weapon] {
				return func(ctx context.Context) ([]*calamity.Weapon, error) {
					return client.ListByFilter(ctx, criteria)
				}
			}
			return a.showWeapons(cmd, "filtered weapons", source, views.Filter{}, jsonOut)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "weapon class")
	cmd.Flags().StringVar(&element, "element", "", "damage element")
	cmd.Flags().StringVar(&rarity, "rarity", "", "rarity tier")
	cmd.Flags().StringVar(&namePrefix, "name-prefix", "", "name prefix")
	cmd.Flags().IntVar(&minStat, "min-stat", 0, "minimum base damage")
	cmd.Flags().IntVar(&maxStat, "max-stat", 0, "maximum base damage")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search [name...]",
		Short: "Search weapons by name on the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			source := func(client catalog.Client) fetch.Producer[[]*calamity.Weapon] {
				return func(ctx context.Context) ([]*calamity.Weapon, error) {
					return client.SearchByName(ctx, name)
				}
			}
			return a.showWeapons(cmd, fmt.Sprintf("weapons named %q", name), source, views.Filter{}, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func newByClassCmd(a *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "by-class [class]",
		Short: "List weapons of one class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, ok := calamity.ParseWeaponClass(args[0])
			if !ok {
				return fmt.Errorf("unknown weapon class %q", args[0])
			}
			source := func(client catalog.Client) fetch.Producer[[]*calamity.Weapon] {
				return func(ctx context.Context) ([]*calamity.Weapon, error) {
					return client.ListByClass(ctx, class)
				}
			}
			return a.showWeapons(cmd, string(class)+" weapons", source, views.Filter{}, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func newByElementCmd(a *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "by-element [element]",
		Short: "List weapons of one element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			element, ok := calamity.ParseElement(args[0])
			if !ok {
				return fmt.Errorf("unknown element %q", args[0])
			}
			source := func(client catalog.Client) fetch.Producer[[]*calamity.Weapon] {
				return func(ctx context.Context) ([]*calamity.Weapon, error) {
					return client.ListByElement(ctx, element)
				}
			}
			return a.showWeapons(cmd, string(element)+" weapons", source, views.Filter{}, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func newByRarityCmd(a *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "by-rarity [tier|level]",
		Short: "List weapons of one rarity tier or in-game rarity level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rarity := strings.TrimSpace(args[0])
			if tier, ok := calamity.ParseRarity(rarity); ok {
				rarity = string(tier)
			}
			source := func(client catalog.Client) fetch.Producer[[]*calamity.Weapon] {
				return func(ctx context.Context) ([]*calamity.Weapon, error) {
					return client.ListByRarity(ctx, rarity)
				}
			}
			return a.showWeapons(cmd, "rarity "+rarity+" weapons", source, views.Filter{}, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}
