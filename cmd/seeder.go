package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Load the Admin and User roles, two vessels, two employees, two jobs with two weeks of time, and the bootstrap admin.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := initializeDependencies(ctx)
		if err != nil {
			log.Fatalf("failed to initialize: %v", err)
		}
		defer deps.Close()

		if deps.Config.Bootstrap.AdminPassword == "" {
			deps.Logger.Warn("no bootstrap admin password configured, using the default")
		}

		report, err := deps.App.Seed(ctx, deps.Gorm, deps.Config.Bootstrap.AdminPassword, clearData)
		if err != nil {
			log.Fatalf("seed failed: %v", err)
		}

		fmt.Printf("roles created: %d\n", report.RolesCreated)
		if report.SampleLoaded {
			fmt.Printf("sample data loaded: 2 vessels, 2 employees, 2 jobs, %d time entries\n", report.TimebookRows)
		} else {
			fmt.Println("sample data already present; run with --clear to reload it")
		}
		if report.AdminCreated {
			fmt.Println("bootstrap admin created")
		}
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
