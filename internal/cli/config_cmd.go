package cli

import (
	"fmt"
	"os"

	"github.com/FrenchBear/myglob/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newConfigCmd(global *globalFlags) *cobra.Command {
	var write, defaults bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				fmt.Fprintln(cmd.OutOrStdout(), config.GenerateConfigContent())
				return nil
			}

			cfg, err := config.Load(global.configOptions())
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}
			data, err := config.Generate(cfg)
			if err != nil {
				return err
			}

			if !write {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(config.ProjectFileName, data, 0644); err != nil {
				return fmt.Errorf(MsgErrWriteConfig, config.ProjectFileName, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, config.ProjectFileName)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	cmd.MarkFlagsMutuallyExclusive("write", "defaults")
	return cmd
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			header := &doc.GenManHeader{
				Title:   "MYGLOB",
				Section: "1",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "man", MsgFlagManDir)
	return cmd
}
