package main

import (
	"os"

	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {

	var listenAddr string
	var tenantID string

	// rootCmd represents the base command when called without any subcommands
	var rootCmd = &cobra.Command{
		Use: "console-sync",
	}

	var dashboardMonitorCmd = &cobra.Command{
		Use:   "dashboard_monitor",
		Short: "Real-time mirror of a tenant's admin dashboard",
		Run: func(cmd *cobra.Command, args []string) {
			startDashboardMonitor(listenAddr, tenantID)
		},
	}

	rootCmd.AddCommand(dashboardMonitorCmd)
	dashboardMonitorCmd.Flags().StringVarP(&listenAddr, "listen-addr", "l", ":8081", "Hostname:port")
	dashboardMonitorCmd.Flags().StringVarP(&tenantID, "tenant-id", "t", "", "Tenant (company) identifier to mirror")

	return rootCmd
}

func main() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
