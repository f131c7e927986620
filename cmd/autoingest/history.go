package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/foligraf/autoingest/internal/history"
)

var (
	historyQuery   string
	historyLimit   int
	historyVerbose bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded import jobs",
	Long: `List recent import jobs from the local catalog, or search past
collection names with --query (fuzzy, accent-insensitive).`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyQuery, "query", "", "Fuzzy-search collection names")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum results")
	historyCmd.Flags().BoolVar(&historyVerbose, "verbose", false, "Show per-file outcomes")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.Database.Path); err != nil {
		return fmt.Errorf("no history recorded yet at %s", cfg.Database.Path)
	}

	db, err := history.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	store := history.NewStore(db)

	if historyQuery != "" {
		matches, err := store.SearchCollections(historyQuery, historyLimit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(matches)
		}
		for _, m := range matches {
			fmt.Printf("%-30s %5.2f  %s (job %s)\n", m.Collection, m.Score, m.File, m.JobID)
		}
		fmt.Printf("%d match(es)\n", len(matches))
		return nil
	}

	jobs, err := store.ListJobs(historyLimit)
	if err != nil {
		return err
	}
	if historyVerbose {
		for i, j := range jobs {
			full, err := store.GetJob(j.ID)
			if err != nil {
				return err
			}
			jobs[i] = full
		}
	}
	if jsonOutput {
		return printJSON(jobs)
	}
	for _, j := range jobs {
		fmt.Printf("%s  %-10s %3d/%-3d  %s  %s\n",
			j.StartedAt.Format("2006-01-02 15:04"), j.State, j.Imported, j.Total, j.Folder, j.ID)
		if !historyVerbose {
			continue
		}
		for _, f := range j.Files {
			switch {
			case f.Error != "":
				fmt.Printf("    %-30s error: %s\n", f.File, f.Error)
			case f.Collection == "":
				fmt.Printf("    %-30s (no geometry)\n", f.File)
			default:
				fmt.Printf("    %-30s -> %s\n", f.File, f.Collection)
			}
		}
	}
	fmt.Printf("%d job(s)\n", len(jobs))
	return nil
}
