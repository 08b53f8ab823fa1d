package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"svmm/internal/domain"

	"github.com/spf13/cobra"
)

var depsOffline bool

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check active mods for missing dependencies",
	Long: `List dependencies that active mods declare but no active mod provides, and look
them up in the SMAPI mod registry to find where to download them.

With --offline the registry is not contacted.

Examples:
  svmm deps
  svmm deps --offline`,
	Args: cobra.NoArgs,
	RunE: runDeps,
}

func init() {
	depsCmd.Flags().BoolVar(&depsOffline, "offline", false, "do not contact the mod registry")

	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	var gaps []gapView
	if depsOffline {
		missing, err := service.MissingDependencies(ctx)
		if err != nil {
			return err
		}
		gaps = toGapViews(missing)
	} else {
		resolved, err := service.ResolveDependencies(ctx)
		if err != nil && !errors.Is(err, domain.ErrRemoteUnavailable) {
			return err
		}
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), render(warningStyle, "Registry unavailable, showing cached results: "+err.Error()))
		}
		gaps = toResolvedViews(resolved)
	}

	if settings.GetBool("json") {
		return writeJSON(out, gaps)
	}
	if len(gaps) == 0 {
		fmt.Fprintln(out, "No missing dependencies.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tNEEDED BY\tDOWNLOAD")
	for _, g := range gaps {
		download := g.URL
		if download == "" {
			download = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", g.ID, requiredLabel(g.Required), truncate(strings.Join(g.ForMods, ", "), 50), download)
	}
	w.Flush()

	if settings.GetBool("verbose") {
		for _, g := range gaps {
			if g.Summary != "" {
				fmt.Fprintf(out, "\n%s: %s\n", title(g.ID), g.Summary)
			}
		}
	}
	return nil
}
