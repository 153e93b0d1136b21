package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rapidsai/cufile-go/pkg/cufile"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print wrapper and libcufile versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cufile-go version: %s\n", cufile.WrapperVersion())
			fmt.Fprintf(out, "libcufile version: %s\n", cufile.NativeVersion())
			return nil
		},
	}
}
