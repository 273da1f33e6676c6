package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/refget"
	"github.com/hupe1980/refget/negotiate"
)

func (a *app) newFetchCommand() *cobra.Command {
	var req refget.SequenceRequest

	cmd := &cobra.Command{
		Use:   "fetch <checksum>",
		Short: "Write a sequence to stdout",
		Example: `  refget fetch -m manifest.json 6681ac2f62509cfc220d78751b8dc524 --start 0 --end 10
  refget fetch -m manifest.json 6681ac2f62509cfc220d78751b8dc524 --strand -1 --accept text/x-fasta`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ID = args[0]
			return a.fetch(cmd, req)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Algorithm, "algorithm", "", "resolve the checksum under this algorithm only")
	f.StringVar(&req.Accept, "accept", "", "media type, as in an Accept header")
	f.StringVar(&req.Start, "start", "", "first base, 0-based inclusive")
	f.StringVar(&req.End, "end", "", "end base, exclusive")
	f.StringVar(&req.Range, "range", "", "byte range, as in a Range header")
	f.StringVar(&req.Strand, "strand", "", "1 or -1")
	f.StringVar(&req.Translate, "translate", "", "1 to translate to amino acids")
	return cmd
}

func (a *app) fetch(cmd *cobra.Command, req refget.SequenceRequest) error {
	ctx := cmd.Context()

	cfg, err := a.config()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	// --algorithm implies label lookups.
	labels := cfg.Server.LabelEndpoints || req.Algorithm != ""
	svc, err := openService(ctx, cfg, logger, refget.WithLabelEndpoints(labels))
	if err != nil {
		return err
	}
	defer svc.Close()

	resp, err := svc.Sequence(ctx, req)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	if _, err := resp.WriteTo(ctx, w); err != nil {
		return err
	}
	if resp.Representation != negotiate.FASTA {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return w.Flush()
}
