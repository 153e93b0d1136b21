package cmd

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rapidsai/cufile-go/internal/fileio"
	"github.com/rapidsai/cufile-go/pkg/cufile"
)

func newStatCmd(a *app) *cobra.Command {
	var (
		flags   string
		oDirect bool
	)
	cmd := &cobra.Command{
		Use:   "stat PATH",
		Short: "Register a file with the driver and print what it reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := a.initialize(cmd)
			if err != nil {
				return err
			}

			var opts []cufile.FileOption
			if cmd.Flags().Changed("o-direct") {
				opts = append(opts, cufile.WithODirect(oDirect))
			}
			f, err := cufile.OpenFile(cmd.Context(), sub, args[0], flags, opts...)
			if err != nil {
				return err
			}
			defer f.Close()

			size, err := f.Size()
			if err != nil {
				return err
			}
			status, err := f.OpenFlags()
			if err != nil {
				return err
			}
			fd, err := f.FD()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Property", "Value")
			table.Append([]string{"Path", f.Path()})
			table.Append([]string{"Size", strconv.FormatInt(size, 10)})
			table.Append([]string{"Flags", fileio.DescribeFlags(status)})
			table.Append([]string{"Descriptor", strconv.Itoa(fd)})
			if err := table.Render(); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags, "flags", "r", "open mode: r, r+, w, w+")
	cmd.Flags().BoolVar(&oDirect, "o-direct", false, "open with O_DIRECT (default from config)")
	return cmd
}
