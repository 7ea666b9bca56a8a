package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "postboard",
	Short: "postboard - a tiny board of short text posts",
	Long: `postboard serves an HTML board where users create, list, view and
edit short text posts. Posts live in memory by default; MySQL, SQLite and
Redis stores can be selected with STORE_DRIVER.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	addServeFlags(rootCmd)
}
