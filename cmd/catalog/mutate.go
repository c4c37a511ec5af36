package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KirkDiggler/calamity-catalog/internal/clients/catalog"
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	apperrors "github.com/KirkDiggler/calamity-catalog/internal/errors"
	"github.com/KirkDiggler/calamity-catalog/internal/views"
)

// weaponFlags are the editable weapon fields shared by create and update
type weaponFlags struct {
	name        string
	description string
	class       string
	element     string
	rarity      int
	damage      int
	crit        int
	attacks     float64
	reach       int
	knockback   float64
	price       int
	quality     int
	abilities   string
	imageURL    string
}

func (f *weaponFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.name, "name", "", "weapon name")
	flags.StringVar(&f.description, "description", "", "flavor text")
	flags.StringVar(&f.class, "class", "", "MELEE, RANGED, MAGE, SUMMON or ROGUE")
	flags.StringVar(&f.element, "element", string(calamity.ElementNeutral), "damage element")
	flags.IntVar(&f.rarity, "rarity", 0, "in-game rarity level (-1..17)")
	flags.IntVar(&f.damage, "damage", 0, "base damage")
	flags.IntVar(&f.crit, "crit", 4, "critical chance on a d20 (1..20)")
	flags.Float64Var(&f.attacks, "attacks", 1, "attacks per turn")
	flags.IntVar(&f.reach, "range", 0, "range in feet")
	flags.Float64Var(&f.knockback, "knockback", 0, "knockback")
	flags.IntVar(&f.price, "price", 0, "price in copper")
	flags.IntVar(&f.quality, "quality", 0, "quality (0..10)")
	flags.StringVar(&f.abilities, "abilities", "", "special abilities")
	flags.StringVar(&f.imageURL, "image-url", "", "image URL")
}

func (f *weaponFlags) draft() (*catalog.Draft, error) {
	class, ok := calamity.ParseWeaponClass(f.class)
	if !ok {
		return nil, apperrors.InvalidArgumentf("unknown weapon class %q", f.class)
	}
	element, ok := calamity.ParseElement(f.element)
	if !ok {
		return nil, apperrors.InvalidArgumentf("unknown element %q", f.element)
	}

	d := &catalog.Draft{
		Name:        f.name,
		Description: f.description,
		Class:       class,
		Element:     element,
		RarityLevel: f.rarity,
		Stats: calamity.Stats{
			BaseDamage:     f.damage,
			CriticalChance: f.crit,
			AttacksPerTurn: f.attacks,
			Range:          f.reach,
			Knockback:      f.knockback,
		},
		Price:     f.price,
		Quality:   f.quality,
		Abilities: f.abilities,
		ImageURL:  f.imageURL,
	}
	if err := d.Validate(); err != nil {
		return nil, apperrors.Wrap(err, "invalid weapon")
	}
	return d, nil
}

// patch carries only the flags the user set
func (f *weaponFlags) patch(flags *pflag.FlagSet) (*catalog.Patch, error) {
	p := &catalog.Patch{}
	if flags.Changed("name") {
		p.Name = &f.name
	}
	if flags.Changed("description") {
		p.Description = &f.description
	}
	if flags.Changed("class") {
		class, ok := calamity.ParseWeaponClass(f.class)
		if !ok {
			return nil, apperrors.InvalidArgumentf("unknown weapon class %q", f.class)
		}
		p.Class = &class
	}
	if flags.Changed("element") {
		element, ok := calamity.ParseElement(f.element)
		if !ok {
			return nil, apperrors.InvalidArgumentf("unknown element %q", f.element)
		}
		p.Element = &element
	}
	if flags.Changed("rarity") {
		p.RarityLevel = &f.rarity
	}
	if flags.Changed("damage") {
		p.BaseDamage = &f.damage
	}
	if flags.Changed("crit") {
		p.CriticalChance = &f.crit
	}
	if flags.Changed("attacks") {
		p.AttacksPerTurn = &f.attacks
	}
	if flags.Changed("range") {
		p.Range = &f.reach
	}
	if flags.Changed("knockback") {
		p.Knockback = &f.knockback
	}
	if flags.Changed("price") {
		p.Price = &f.price
	}
	if flags.Changed("quality") {
		p.Quality = &f.quality
	}
	if flags.Changed("abilities") {
		p.Abilities = &f.abilities
	}
	if flags.Changed("image-url") {
		p.ImageURL = &f.imageURL
	}

	if p.IsEmpty() {
		return nil, apperrors.InvalidArgument("nothing to update, set at least one field flag")
	}
	if err := p.Validate(); err != nil {
		return nil, apperrors.Wrap(err, "invalid update")
	}
	return p, nil
}

// mutate runs fn against a fresh client and renders a catalog failure instead of returning it
func (a *app) mutate(cmd *cobra.Command, fn func(ctx context.Context, client catalog.Client) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	client, cleanup, err := a.newClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	err = fn(ctx, client)
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsShape(err); ok {
		if rerr := views.RenderError(cmd.OutOrStdout(), err); rerr != nil {
			return rerr
		}
		return errReported
	}
	return err
}

func newCreateCmd(a *app) *cobra.Command {
	f := &weaponFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a weapon to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := f.draft()
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(ctx context.Context, client catalog.Client) error {
				log.Printf("Creating weapon '%s'...", d.Name)
				w, err := client.Create(ctx, d)
				if err != nil {
					return err
				}
				return views.RenderWeapon(cmd.OutOrStdout(), w)
			})
		},
	}
	f.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("class")
	_ = cmd.MarkFlagRequired("damage")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	f := &weaponFlags{}

	cmd := &cobra.Command{
		Use:   "update [weapon-id]",
		Short: "Change fields of an existing weapon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.patch(cmd.Flags())
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(ctx context.Context, client catalog.Client) error {
				log.Printf("Updating weapon %s...", args[0])
				w, err := client.Update(ctx, args[0], p)
				if err != nil {
					return err
				}
				return views.RenderWeapon(cmd.OutOrStdout(), w)
			})
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [weapon-id]",
		Short: "Remove a weapon from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, func(ctx context.Context, client catalog.Client) error {
				if err := client.Remove(ctx, args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted weapon %s\n", args[0])
				return err
			})
		},
	}
}
