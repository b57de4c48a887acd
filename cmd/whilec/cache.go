package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"whilec/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the assembly cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached assembly",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cache.Open("whilec")
		if err != nil {
			return err
		}
		if err := c.DropAll(); err != nil {
			return fmt.Errorf("failed to clean cache: %w", err)
		}
		dir, _ := cache.Dir("whilec")
		fmt.Fprintf(cmd.OutOrStdout(), "cache cleared: %s\n", dir)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
}
