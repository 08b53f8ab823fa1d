package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <archive.zip>",
	Short: "Install a mod from a zip archive",
	Long: `Extract a downloaded zip archive into the game's Mods folder.

An archive with manifest.json at its root is extracted into a folder named after
the archive; otherwise its top-level folders are extracted as they are.

Examples:
  svmm install ~/Downloads/ContentPatcher-1915-2-0-0.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive.zip>",
	Short: "List the mods inside a zip archive",
	Long: `List the manifests found inside a zip archive without extracting it.

Examples:
  svmm inspect ~/Downloads/ContentPatcher-1915-2-0-0.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var archivesCmd = &cobra.Command{
	Use:   "archives",
	Short: "List mod archives in the downloads folder",
	Long: `List zip archives in the configured downloads folder that contain at least
one mod manifest, newest first.

Examples:
  svmm archives`,
	Args: cobra.NoArgs,
	RunE: runArchives,
}

func init() {
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(archivesCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	dest, err := service.InstallArchive(context.Background(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		return writeJSON(out, map[string]string{"archive": args[0], "installed_to": dest})
	}
	fmt.Fprintf(out, "Installed %s into %s\n", filepath.Base(args[0]), dest)
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	candidate, err := service.InspectArchive(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		return writeJSON(out, toArchiveView(*candidate))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENTRY\tID\tNAME\tVERSION")
	for _, m := range candidate.Manifests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Entry, m.Manifest.ID(), truncate(m.Manifest.Name, 40), m.Manifest.Version)
	}
	w.Flush()
	return nil
}

func runArchives(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	candidates, err := service.FindArchives(context.Background())
	if err != nil {
		return fmt.Errorf("searching %s: %w", service.Config().DownloadsDir, err)
	}

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		views := make([]archiveView, len(candidates))
		for i, c := range candidates {
			views[i] = toArchiveView(c)
		}
		return writeJSON(out, views)
	}
	if len(candidates) == 0 {
		fmt.Fprintf(out, "No mod archives in %s\n", service.Config().DownloadsDir)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ARCHIVE\tMODIFIED\tMODS")
	for _, c := range candidates {
		view := toArchiveView(c)
		fmt.Fprintf(w, "%s\t%s\t%s\n", filepath.Base(c.Path), c.ModTime.Local().Format("2006-01-02 15:04"), strings.Join(view.Mods, ", "))
	}
	w.Flush()
	return nil
}
