package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

var reconcileAdminCmd = &cobra.Command{
	Use:   "reconcile-admin",
	Short: "Restore full page access for the bootstrap admin",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := initializeDependencies(ctx)
		if err != nil {
			log.Fatalf("failed to initialize: %v", err)
		}
		defer deps.Close()

		if err := deps.App.Users.ReconcileBootstrapAdmin(ctx); err != nil {
			log.Fatalf("reconcile failed: %v", err)
		}
	},
}
