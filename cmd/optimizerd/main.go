// Package main is the entry point for the dispatch optimizer service.
package main

import (
	"log"
	"os"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
