package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Recompute every checksum and compare it with the manifests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := a.config()
			if err != nil {
				return err
			}
			cfg.Verify = false

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			svc, err := openService(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.Verify(ctx); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "verified %d sequences\n", len(svc.Records()))
			return err
		},
	}
}
