package main

import (
	"fmt"

	financeapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/finance"
	settingsapp "github.com/ceodigitcare/fastflow01-sub002/internal/application/settings"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/config"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newOverdueCmd(opts *rootOptions) *cobra.Command {
	var kinds []string
	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "Mark sent documents past their due date as overdue in every store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := persistence.NewDatabase(&cfg.Database, opts.log, cfg.Log.Level)
			if err != nil {
				return err
			}
			defer db.Close()

			settingsService := settingsapp.NewSettingsService(persistence.NewGormSettingsRepository(db.DB), opts.log)
			docs := financeapp.NewDocumentService(
				persistence.NewGormDocumentRepository(db.DB),
				persistence.NewGormContactRepository(db.DB),
				persistence.NewGormProductRepository(db.DB),
				settingsService,
				financeapp.WithLogger(opts.log),
			)
			for _, k := range kinds {
				kind := finance.DocumentKind(k)
				if !kind.IsValid() {
					return fmt.Errorf("unknown document kind %q", k)
				}
				changed, err := docs.SweepOverdue(cmd.Context(), kind)
				if err != nil {
					return err
				}
				opts.log.Info("Overdue sweep finished", zap.String("kind", k), zap.Int("changed", changed))
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d marked overdue\n", k, changed)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&kinds, "kind", []string{string(finance.KindInvoice), string(finance.KindBill)}, "Document kinds to sweep")
	return cmd
}
