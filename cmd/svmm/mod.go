package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var modCmd = &cobra.Command{
	Use:   "mod",
	Short: "Inspect and change a single mod",
	Long: `Inspect and change a single mod of the live profile, addressed by its
unique ID (for example Pathoschild.ContentPatcher).`,
}

var modShowCmd = &cobra.Command{
	Use:   "show <unique-id>",
	Short: "Show a mod's manifest and links",
	Long: `Show a mod's manifest details, its declared dependencies and the web pages
derived from its update keys.

Examples:
  svmm mod show Pathoschild.ContentPatcher`,
	Args: cobra.ExactArgs(1),
	RunE: runModShow,
}

var modToggleCmd = &cobra.Command{
	Use:   "toggle <unique-id>",
	Short: "Activate or deactivate a mod",
	Long: `Move a mod between the game's Mods folder and the live profile's disabled folder.

Examples:
  svmm mod toggle Pathoschild.ContentPatcher`,
	Args: cobra.ExactArgs(1),
	RunE: runModToggle,
}

var modRemoveCmd = &cobra.Command{
	Use:   "remove <unique-id>",
	Short: "Move a mod to the deleted folder",
	Long: `Remove a mod by moving its folder to SVMM/deleted. Nothing is erased;
the folder can be moved back by hand.

Examples:
  svmm mod remove Pathoschild.ContentPatcher`,
	Args: cobra.ExactArgs(1),
	RunE: runModRemove,
}

func init() {
	modCmd.AddCommand(modShowCmd)
	modCmd.AddCommand(modToggleCmd)
	modCmd.AddCommand(modRemoveCmd)

	rootCmd.AddCommand(modCmd)
}

func runModShow(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	mod, err := service.FindMod(context.Background(), args[0])
	if err != nil {
		return err
	}
	links := service.Links(mod.ModManifest)

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		view := toModView(*mod)
		if !links.IsEmpty() {
			view.Links = &links
		}
		return writeJSON(out, view)
	}

	fmt.Fprintf(out, "%s %s\n", title(mod.Name), mod.Version)
	fmt.Fprintf(out, "  ID:      %s\n", mod.ID())
	fmt.Fprintf(out, "  Author:  %s\n", mod.Author)
	fmt.Fprintf(out, "  State:   %s\n", stateLabel(mod.Active))
	fmt.Fprintf(out, "  Path:    %s\n", mod.Path)
	if mod.Description != "" {
		fmt.Fprintf(out, "  About:   %s\n", mod.Description)
	}

	if len(mod.Dependencies) > 0 {
		fmt.Fprintln(out, "  Dependencies:")
		for _, d := range mod.Dependencies {
			line := fmt.Sprintf("    %s (%s)", d.UniqueID, requiredLabel(d.IsRequired))
			if d.Version != "" {
				line += " >= " + d.Version
			}
			fmt.Fprintln(out, line)
		}
	}

	var pages []string
	for _, p := range []struct{ site, url string }{
		{"Nexus", links.Nexus},
		{"GitHub", links.GitHub},
		{"ModDrop", links.ModDrop},
	} {
		if p.url != "" {
			pages = append(pages, fmt.Sprintf("    %-8s %s", p.site, p.url))
		}
	}
	if len(pages) > 0 {
		fmt.Fprintf(out, "  Links:\n%s\n", strings.Join(pages, "\n"))
	}
	return nil
}

func runModToggle(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	mod, err := service.ToggleMod(context.Background(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		return writeJSON(out, toModView(*mod))
	}
	fmt.Fprintf(out, "%s is now %s\n", mod.ID(), stateLabel(mod.Active))
	return nil
}

func runModRemove(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	dest, err := service.RemoveMod(context.Background(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		return writeJSON(out, map[string]string{"id": args[0], "moved_to": dest})
	}
	fmt.Fprintf(out, "Moved %s to %s\n", args[0], dest)
	return nil
}
