package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foligraf/autoingest/internal/ingest"
)

var scanCmd = &cobra.Command{
	Use:   "scan <folder>",
	Short: "List the OBJ files a run would import",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	files, err := ingest.CollectMeshFiles(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(files)
	}
	for _, f := range files {
		fmt.Println(f)
	}
	fmt.Printf("%d file(s)\n", len(files))
	return nil
}
