package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"svmm/internal/domain"

	"github.com/spf13/cobra"
)

var (
	listActive   bool
	listInactive bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List mods in the live profile",
	Long: `List the mods of the live profile: active mods from the game's Mods folder
and inactive mods from the profile's disabled folder.

Examples:
  svmm list
  svmm list --inactive
  svmm list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listActive, "active", false, "only list active mods")
	listCmd.Flags().BoolVar(&listInactive, "inactive", false, "only list inactive mods")
	listCmd.MarkFlagsMutuallyExclusive("active", "inactive")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	active, inactive, err := service.Mods(context.Background())
	if err != nil {
		return fmt.Errorf("scanning mods: %w", err)
	}

	var mods []domain.InstalledMod
	if !listInactive {
		mods = append(mods, active...)
	}
	if !listActive {
		mods = append(mods, inactive...)
	}

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		return writeJSON(out, toModViews(mods))
	}

	if settings.GetBool("verbose") {
		profile, err := service.ActiveProfile()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n\n", title("Profile:"), profile)
	}

	if len(mods) == 0 {
		fmt.Fprintln(out, "No mods found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVERSION\tAUTHOR\tSTATE")
	fmt.Fprintln(w, "--\t----\t-------\t------\t-----")
	for _, mod := range mods {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			mod.ID(),
			truncate(mod.Name, 40),
			mod.Version,
			truncate(mod.Author, 24),
			stateLabel(mod.Active),
		)
	}
	w.Flush()

	if settings.GetBool("verbose") {
		fmt.Fprintf(out, "\nTotal: %d mod(s), %d active\n", len(mods), countActive(mods))
	}
	return nil
}

func countActive(mods []domain.InstalledMod) int {
	n := 0
	for _, m := range mods {
		if m.Active {
			n++
		}
	}
	return n
}
