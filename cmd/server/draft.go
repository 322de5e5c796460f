package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newDraftCmd() *cobra.Command {
	var (
		presetPath string
		flags      presetFlags
	)

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Run one draft against the catalog and print the teams as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(presetPath, cmd.Flags())
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.service.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&presetPath, "preset", "", "draft preset file (yaml, json or toml)")
	flags.register(cmd.Flags())
	return cmd
}
