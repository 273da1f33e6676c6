package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/refget"
	"github.com/hupe1980/refget/negotiate"
)

func (a *app) newMetadataCommand() *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "metadata <checksum>",
		Short: "Write the metadata document of a sequence to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := a.config()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			labels := cfg.Server.LabelEndpoints || algorithm != ""
			svc, err := openService(ctx, cfg, logger, refget.WithLabelEndpoints(labels))
			if err != nil {
				return err
			}
			defer svc.Close()

			resp, err := svc.Metadata(ctx, refget.MetadataRequest{
				ID:        args[0],
				Algorithm: algorithm,
				Accept:    negotiate.ContentTypeMetadata,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := out.Write(resp.Body); err != nil {
				return err
			}
			_, err = out.Write([]byte("\n"))
			return err
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", "", "resolve the checksum under this algorithm only")
	return cmd
}
