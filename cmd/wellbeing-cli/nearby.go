package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newNearbyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nearby <address>",
		Short: "Find support-service points near an address",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			router, err := buildRouter("")
			if err != nil {
				return err
			}

			address := strings.Join(args, "")
			resp := router.LookupAddress(cmd.Context(), address)

			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(resp)
			}

			if resp.Message != "" {
				color.Yellow(resp.Message)
				return nil
			}
			for _, p := range resp.Points {
				color.New(color.FgGreen).Printf("• %s", p.Title)
				fmt.Printf("  %s  %s  (%.2f km)\n", p.Address, p.Tel, p.DistanceKm)
			}
			return nil
		},
	}
	return cmd
}
