// Package main provides the entry point for the TalentMatch API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talentmatch",
	Short: "TalentMatch recruiting API server",
	Long:  "TalentMatch lets recruiters publish job openings, collects candidate applications with PDF resumes, and scores each candidate's fit via a generative model.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
