package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lost-found",
	Short: "A lost and found service that matches items by photo similarity",
	Long: `Lost Found is a service that matches reported lost items against found
item submissions using image feature embeddings and cosine similarity, and
notifies owners by email or SMS when a likely match turns up.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
