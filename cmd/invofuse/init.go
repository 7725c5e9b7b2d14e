package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/invofuse/invofuse/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the invofuse home directory",
	Long: `Create ~/.invofuse with a default config file and empty master
list files. Existing files are left untouched.

Populate the master lists before processing:
  ~/.invofuse/masters/dealer_master.txt   one dealer name per line
  ~/.invofuse/masters/asset_master.txt    one tractor model per line`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := getHome()
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		if h.ConfigExists() {
			fmt.Printf("Config already exists: %s\n", h.ConfigPath())
		} else {
			if err := config.WriteDefault(h.ConfigPath()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Printf("Wrote default config: %s\n", h.ConfigPath())
		}

		cfg := config.DefaultConfig()
		for _, path := range []string{
			h.Resolve(cfg.Masters.DealerPath),
			h.Resolve(cfg.Masters.AssetPath),
		} {
			if _, err := os.Stat(path); err == nil {
				continue
			}
			if err := os.WriteFile(path, nil, 0o644); err != nil {
				return fmt.Errorf("failed to seed master list %s: %w", path, err)
			}
			fmt.Printf("Created empty master list: %s\n", path)
		}

		return nil
	},
}
