package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProbeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Open the native driver once and report the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.initialize(cmd); err != nil {
				return err
			}
			a.logger.Debug("native driver opened")
			fmt.Fprintln(cmd.OutOrStdout(), "native driver initialized")
			return nil
		},
	}
}
