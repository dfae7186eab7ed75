// Package cli implements the blog-client command line tool, a thin client for the /posts API.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/blog-demo/internal/config"
	"github.com/information-sharing-networks/blog-demo/internal/logger"
	"github.com/information-sharing-networks/blog-demo/internal/version"
)

var (
	cfg       *config.ClientEnvironment
	appLogger *slog.Logger
	client    *Client
)

var rootCmd = &cobra.Command{
	Use:               "blog-client",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "Blog posts API client",
	Long:              `blog-client lists, creates, updates and deletes blog posts on the server at BLOG_API_URL`,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("failed to load .env file: %v", err)
		}

		var err error
		cfg, err = config.NewClientConfig()
		if err != nil {
			log.Printf("failed to load configuration: %v", err.Error())
			return err
		}

		appLogger = logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), "dev")

		client, err = NewClient(cfg.APIURL, cfg.Timeout)
		return err
	},
}

func Execute() {
	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// printJSON writes v to the command's output as indented JSON
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
}
