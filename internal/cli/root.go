// Package cli implements the refget command line.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/refget/config"
)

// Version is set at build time.
var Version = "dev"

type app struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand returns the refget command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "refget",
		Short: "Serve reference sequences by checksum",
		Long: `refget serves FASTA sequences addressed by their checksums
(md5, sha1, sha256, sha512, trunc512) from local disk, S3 or MinIO.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "path to a YAML config file")
	flags.String("storage", "", "storage kind: local, s3 or minio")
	flags.String("root", "", "root directory for local storage")
	flags.String("bucket", "", "bucket for s3 or minio storage")
	flags.String("prefix", "", "key prefix inside the bucket")
	flags.String("endpoint", "", "s3 or minio endpoint")
	flags.StringSliceP("manifest", "m", nil, "manifest paths; a path ending in / is scanned")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.String("log-format", "", "text or json")
	flags.Int64("cache-size", 0, "block cache size in bytes, 0 disables the cache")

	a.bind(root, map[string]string{
		"storage.kind":     "storage",
		"storage.root":     "root",
		"storage.bucket":   "bucket",
		"storage.prefix":   "prefix",
		"storage.endpoint": "endpoint",
		"manifest.paths":   "manifest",
		"log.level":        "log-level",
		"log.format":       "log-format",
		"cache.size":       "cache-size",
	})

	root.AddCommand(
		a.newServeCommand(),
		a.newFetchCommand(),
		a.newMetadataCommand(),
		a.newVerifyCommand(),
	)
	return root
}

// bind maps config keys to persistent flags of cmd. Flags only override
// the config when set, so their zero defaults never shadow it.
func (a *app) bind(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		f := cmd.PersistentFlags().Lookup(flag)
		if f == nil {
			f = cmd.Flags().Lookup(flag)
		}
		_ = a.v.BindPFlag(key, f)
	}
}

func (a *app) config() (*config.Config, error) {
	return config.Load(a.v, a.cfgFile)
}
