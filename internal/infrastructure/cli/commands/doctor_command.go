package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/minebot/internal/app"
	"github.com/doeshing/minebot/internal/domain"
)

const doctorTimeout = 10 * time.Second

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run diagnostics on config, token, history and telemetry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), doctorTimeout)
			defer cancel()
			return runDoctorDiagnostics(ctx, cmd.OutOrStdout(), container)
		},
	}
}

func runDoctorDiagnostics(ctx context.Context, out io.Writer, container *app.Container) error {
	if container.DoctorService == nil {
		return errors.New("doctor service unavailable")
	}
	report, err := container.DoctorService.Run(ctx)
	displayHealthReport(out, report)
	if err != nil {
		return err
	}
	if !report.Healthy() {
		return errors.New("one or more checks failed")
	}
	return nil
}

func displayHealthReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s: %s\n", strings.ToUpper(string(check.Status)), check.Name, check.Details)
	}
}
