package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/orrery/content"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets [dir]",
	Short: "Validate every dataset file in a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		files, err := content.DiscoverDatasets(dir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(os.Stderr, "no %s datasets in %s\n", content.DatasetExt, dir)
			return nil
		}

		ok := true
		for _, f := range files {
			ds, err := content.LoadFile(f)
			if err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", f, err)
				ok = false
				continue
			}
			fmt.Fprintf(os.Stderr, "✓ %s: %d entities, %d periods, %d bodies\n",
				f, len(ds.Entities), len(ds.Periods), len(ds.Bodies))
		}
		if !ok {
			return fmt.Errorf("dataset validation failed")
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the built-in dataset to a file as a starting point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := content.Default()
		if err != nil {
			return err
		}
		if err := content.WriteFile(args[0], ds); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
		return nil
	},
}

func init() {
	datasetsCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(datasetsCmd)
}
