package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/dblp2wd/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after defaults, the config file, .env, and
DBLP2WD_* environment variables are applied.

Keys:
  sparql_endpoint  dblp SPARQL endpoint
  search_endpoint  dblp author search API
  user_agent       User-Agent sent to dblp
  rate_limit       requests per second (0 or negative disables limiting)
  timeout          HTTP timeout, e.g. 60s
  log_file         JSON log file (optional)
  log_level        debug, info, warn, or error`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Path           string  `json:"path"`
	Workspace      string  `json:"workspace,omitempty"`
	SPARQLEndpoint string  `json:"sparql_endpoint"`
	SearchEndpoint string  `json:"search_endpoint"`
	UserAgent      string  `json:"user_agent"`
	RateLimit      float64 `json:"rate_limit"`
	Timeout        string  `json:"timeout"`
	LogFile        string  `json:"log_file,omitempty"`
	LogLevel       string  `json:"log_level"`
}

func runConfig(cmd *cobra.Command, args []string) {
	resp := ConfigResponse{
		Path:           config.GlobalConfigPath(),
		Workspace:      findWorkspace(),
		SPARQLEndpoint: globalCfg.SPARQLEndpoint,
		SearchEndpoint: globalCfg.SearchEndpoint,
		UserAgent:      globalCfg.UserAgent,
		RateLimit:      globalCfg.RateLimit,
		Timeout:        globalCfg.Timeout.String(),
		LogFile:        globalCfg.LogFile,
		LogLevel:       globalCfg.LogLevel,
	}

	if !humanOutput {
		outputJSON(resp)
		return
	}

	fmt.Printf("config file:      %s\n", resp.Path)
	if resp.Workspace != "" {
		fmt.Printf("workspace:        %s\n", resp.Workspace)
	} else {
		fmt.Printf("workspace:        (none, running stateless)\n")
	}
	fmt.Printf("sparql_endpoint:  %s\n", resp.SPARQLEndpoint)
	fmt.Printf("search_endpoint:  %s\n", resp.SearchEndpoint)
	fmt.Printf("user_agent:       %s\n", resp.UserAgent)
	fmt.Printf("rate_limit:       %g/s\n", resp.RateLimit)
	fmt.Printf("timeout:          %s\n", resp.Timeout)
	fmt.Printf("log_file:         %s\n", resp.LogFile)
	fmt.Printf("log_level:        %s\n", resp.LogLevel)
}
