package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tether/internal/config"
	terrors "github.com/vango-dev/tether/internal/errors"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default tether.json",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path, err := writeDefaultConfig(dir, force)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing tether.json")

	return cmd
}

func writeDefaultConfig(dir string, force bool) (string, error) {
	path := filepath.Join(dir, config.ConfigFileName)
	if config.Exists(dir) && !force {
		return "", terrors.New("E121").
			WithDetail(path + " already exists.").
			WithSuggestion("Run 'tetherd init --force' to overwrite it, or edit it in place.")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", terrors.New("E120").Wrap(err)
	}
	if err := config.New().SaveTo(path); err != nil {
		return "", err
	}
	return path, nil
}
