package main

import (
	"os"

	"postboard/internal/config"

	"go.uber.org/zap"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		config.Logger.Error("Command execution failed", zap.Error(err))
		os.Exit(1)
	}
}
