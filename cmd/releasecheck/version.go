package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/releasecheck/pkg/version"
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next <version>",
		Short: "Print the version after <version>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := version.Parse(args[0])
			if err != nil {
				return err
			}
			raw, _ := cmd.Flags().GetString("bump")
			kind, err := version.ParseBump(raw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Next(v, kind))
			return nil
		},
	}
	cmd.Flags().String("bump", string(version.BumpPatch), "Increment: patch | minor | major")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <current> <candidate>",
		Short: "Print which increment turns <current> into <candidate>",
		Long: `Prints patch, minor or major when <candidate> is the direct successor of
<current> for that increment, and none otherwise. Suffixes are ignored.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := version.Parse(args[0])
			if err != nil {
				return err
			}
			candidate, err := version.Parse(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.ClassifyBump(current, candidate))
			return nil
		},
	}
}
