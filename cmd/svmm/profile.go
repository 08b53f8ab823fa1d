package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyLimit int

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage mod profiles",
	Long: `Manage mod profiles.

Each profile is a separate set of mods. The live profile occupies the game's
Mods folder; switching moves its mods back into SVMM/profiles and brings the
target profile's mods in.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Long: `List all profiles, marking the live one.

Examples:
  svmm profile list`,
	Args: cobra.NoArgs,
	RunE: runProfileList,
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new profile",
	Long: `Create a new empty profile.

Examples:
  svmm profile create "Expanded Farm"`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileCreate,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Long: `Delete a profile by moving it, with its mods, to SVMM/deleted.
The live profile cannot be deleted; switch away from it first.

Examples:
  svmm profile delete "Profile 3"`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileDelete,
}

var profileSwitchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Switch to a different profile",
	Long: `Switch to a different profile, moving the current profile's active mods out
of the game's Mods folder and the target profile's mods in.

Examples:
  svmm profile switch "Profile 2"`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileSwitch,
}

var profileRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Finish an interrupted profile switch",
	Long: `Finish a profile switch that was interrupted, for example by a crash or a
full disk. Switching profiles is refused until the interrupted switch is repaired.

Examples:
  svmm profile repair`,
	Args: cobra.NoArgs,
	RunE: runProfileRepair,
}

var profileHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent profile switches",
	Long: `Show recent profile switches, newest first.

Examples:
  svmm profile history --limit 5`,
	Args: cobra.NoArgs,
	RunE: runProfileHistory,
}

func init() {
	profileHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of switches to show")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileSwitchCmd)
	profileCmd.AddCommand(profileRepairCmd)
	profileCmd.AddCommand(profileHistoryCmd)

	rootCmd.AddCommand(profileCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	profiles, err := service.Profiles()
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		return writeJSON(out, toProfileViews(profiles))
	}

	for _, p := range profiles {
		marker := "  "
		if p.Active {
			marker = render(activeStyle, "* ")
		}
		fmt.Fprintf(out, "%s%s\n", marker, p.Name)
	}
	return nil
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	profile, err := service.CreateProfile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		return writeJSON(out, profileView{Name: profile.Name, Path: profile.Path})
	}
	fmt.Fprintf(out, "Created profile %s\n", profile.Name)
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	dest, err := service.DeleteProfile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		return writeJSON(out, map[string]string{"name": args[0], "moved_to": dest})
	}
	fmt.Fprintf(out, "Deleted profile %s (moved to %s)\n", args[0], dest)
	return nil
}

func runProfileSwitch(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if err := service.SelectProfile(context.Background(), args[0]); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		return writeJSON(out, map[string]string{"active": args[0]})
	}
	fmt.Fprintf(out, "Switched to profile %s\n", args[0])
	return nil
}

func runProfileRepair(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	record, err := service.Repair(context.Background())
	if err != nil {
		return fmt.Errorf("repairing profile switch: %w", err)
	}

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		if record == nil {
			return writeJSON(out, map[string]bool{"repaired": false})
		}
		return writeJSON(out, toSwitchViews(*record))
	}
	if record == nil {
		fmt.Fprintln(out, "Nothing to repair.")
		return nil
	}
	fmt.Fprintf(out, "Finished switch from %s to %s\n", record.From, record.To)
	return nil
}

func runProfileHistory(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	records, err := service.SwitchHistory(historyLimit)
	if err != nil {
		return fmt.Errorf("reading switch history: %w", err)
	}

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		return writeJSON(out, toSwitchViews(records...))
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No profile switches recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tFROM\tTO\tPHASE")
	for _, r := range records {
		phase := string(r.Phase)
		if r.Pending() {
			phase = render(warningStyle, phase)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.From, r.To, phase)
	}
	w.Flush()
	return nil
}
