package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/dblp2wd/internal/config"
	"github.com/matsen/dblp2wd/internal/session"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a dblp2wd workspace in the current directory",
	Long: `Create a .dblp2wd directory holding the session database.

Inside a workspace, subject commands cache derived tables per dblp person,
exports are recorded with a run ID, and generate/publish write to ./out
by default.`,
	Args: cobra.NoArgs,
	Run:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	created, err := config.InitWorkspace(cwd)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	// Create the schema now so later commands only open it.
	store, err := session.Open(config.SessionPath(cwd))
	if err != nil {
		exitWithError(ExitConfigError, "creating session: %v", err)
	}
	store.Close()

	status := "created"
	if !created {
		status = "exists"
	}
	path := config.WorkspacePath(cwd)

	if humanOutput {
		if created {
			fmt.Printf("Initialized dblp2wd workspace in %s\n", path)
		} else {
			fmt.Printf("Workspace already exists at %s\n", path)
		}
		return
	}
	outputJSON(StatusResponse{Status: status, Path: path})
}
