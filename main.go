// Package main is the entry point of the leaderlens CLI.
package main

import (
	"github.com/huangsam/leaderlens/cmd"
	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/internal/iocache"
)

func main() {
	cmd.SetRunLogManager(iocache.Manager)

	err := cmd.Execute()

	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	iocache.CloseStores()

	if err != nil {
		contract.LogFatal("Error starting CLI", err)
	}
}
