package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invofuse/invofuse/internal/config"
	"github.com/invofuse/invofuse/internal/sidecar"
)

var sidecarCmd = &cobra.Command{
	Use:   "sidecar",
	Short: "Manage the OCR and detector model-server containers",
	Long: `Manage the docker containers backing the processing pipeline:
the PaddleOCR recognizer and the YOLO signature/stamp detector.

Both servers load model weights on boot; 'start' waits until their
health endpoints answer before returning.`,
}

var sidecarStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the model-server containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachSidecar(cmd, func(name string, m *sidecar.Manager) error {
			fmt.Printf("Starting %s...\n", name)
			if err := m.Start(cmd.Context()); err != nil {
				return fmt.Errorf("failed to start %s: %w", name, err)
			}
			fmt.Printf("%s ready at %s\n", name, m.URL())
			return nil
		})
	},
}

var sidecarStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the model-server containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachSidecar(cmd, func(name string, m *sidecar.Manager) error {
			if err := m.Stop(cmd.Context()); err != nil {
				return fmt.Errorf("failed to stop %s: %w", name, err)
			}
			fmt.Printf("%s stopped\n", name)
			return nil
		})
	},
}

var sidecarRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Stop and remove the model-server containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachSidecar(cmd, func(name string, m *sidecar.Manager) error {
			if err := m.Remove(cmd.Context()); err != nil {
				return fmt.Errorf("failed to remove %s: %w", name, err)
			}
			fmt.Printf("%s removed\n", name)
			return nil
		})
	},
}

var sidecarStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show model-server container status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachSidecar(cmd, func(name string, m *sidecar.Manager) error {
			status, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%-20s %s\n", name, status)
			return nil
		})
	},
}

var sidecarLogsTail string

var sidecarLogsCmd = &cobra.Command{
	Use:   "logs <ocr|detector>",
	Short: "Show logs from a model-server container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := getHome()
		if err != nil {
			return err
		}
		cfg, err := getConfig(h)
		if err != nil {
			return err
		}

		specs := sidecarSpecs(cfg)
		spec, ok := specs[args[0]]
		if !ok {
			return fmt.Errorf("unknown sidecar %q (want ocr or detector)", args[0])
		}

		m, err := sidecar.NewManager(spec)
		if err != nil {
			return err
		}
		defer m.Close()

		logs, err := m.Logs(cmd.Context(), sidecarLogsTail)
		if err != nil {
			return err
		}
		fmt.Print(logs)
		return nil
	},
}

func init() {
	sidecarLogsCmd.Flags().StringVar(&sidecarLogsTail, "tail", "100", "number of log lines to show")

	sidecarCmd.AddCommand(sidecarStartCmd)
	sidecarCmd.AddCommand(sidecarStopCmd)
	sidecarCmd.AddCommand(sidecarRemoveCmd)
	sidecarCmd.AddCommand(sidecarStatusCmd)
	sidecarCmd.AddCommand(sidecarLogsCmd)
}

// sidecarSpecs builds the container specs from config, keyed by short name.
func sidecarSpecs(cfg *config.Config) map[string]sidecar.Spec {
	return map[string]sidecar.Spec{
		"ocr": {
			Name:          "invofuse-ocr",
			Image:         cfg.Sidecars.OCR.Image,
			HostPort:      cfg.Sidecars.OCR.HostPort,
			ContainerPort: "8868/tcp",
			HealthPath:    "/health",
		},
		"detector": {
			Name:          "invofuse-detector",
			Image:         cfg.Sidecars.Detector.Image,
			HostPort:      cfg.Sidecars.Detector.HostPort,
			ContainerPort: "8869/tcp",
			HealthPath:    "/health",
		},
	}
}

// forEachSidecar runs fn against both sidecars in a stable order.
func forEachSidecar(cmd *cobra.Command, fn func(string, *sidecar.Manager) error) error {
	h, err := getHome()
	if err != nil {
		return err
	}
	cfg, err := getConfig(h)
	if err != nil {
		return err
	}

	specs := sidecarSpecs(cfg)
	for _, name := range []string{"ocr", "detector"} {
		m, err := sidecar.NewManager(specs[name])
		if err != nil {
			return err
		}
		if err := fn(name, m); err != nil {
			m.Close()
			return err
		}
		m.Close()
	}
	return nil
}
