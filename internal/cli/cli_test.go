package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/refget/checksum"
	"github.com/hupe1980/refget/testutil"
)

type fixture struct {
	dir   string
	bases []byte
	sums  checksum.Sums
}

func newFixture(t *testing.T, corrupt bool) *fixture {
	t.Helper()

	bases := testutil.NewRNG(3).Bases(130)
	copy(bases, "ACGTACGTAC")

	sums, err := checksum.Compute(bytes.NewReader(bases))
	require.NoError(t, err)
	md5 := sums[checksum.MD5]
	if corrupt {
		md5 = "00000000000000000000000000000000"
	}

	dir := t.TempDir()
	fasta, fai := testutil.NewFASTA(60).Add("chr1", bases).Build()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ref.fa"), fasta, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ref.fa.fai"), fai, 0o600))
	manifest := fmt.Sprintf(`files:
  - path: ref.fa
    sequences:
      - name: chr1
        checksums:
          - {type: md5, value: %q}
          - {type: sha512, value: %q}
        aliases: [chr1]
`, md5, sums[checksum.SHA512])
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifest), 0o600))

	return &fixture{dir: dir, bases: bases, sums: sums}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (f *fixture) args(args ...string) []string {
	return append(args, "--root", f.dir, "--manifest", "manifest.yaml", "--log-level", "error")
}

func TestFetch(t *testing.T) {
	f := newFixture(t, false)

	out, err := run(t, f.args("fetch", f.sums[checksum.MD5], "--start", "0", "--end", "4")...)
	require.NoError(t, err)
	assert.Equal(t, "ACGT\n", out)

	out, err = run(t, f.args("fetch", f.sums[checksum.MD5], "--range", "bytes=0-5", "--translate", "1")...)
	require.NoError(t, err)
	assert.Equal(t, "TY\n", out)

	out, err = run(t, f.args("fetch", f.sums[checksum.MD5], "--end", "4", "--accept", "text/x-fasta")...)
	require.NoError(t, err)
	assert.Equal(t, ">"+f.sums[checksum.MD5]+"\nACGT\n", out)

	out, err = run(t, f.args("fetch", f.sums[checksum.SHA512], "--algorithm", "sha512", "--end", "2")...)
	require.NoError(t, err)
	assert.Equal(t, "AC\n", out)

	out, err = run(t, f.args("fetch", "chr1")...)
	require.NoError(t, err)
	assert.Equal(t, string(f.bases)+"\n", out)

	_, err = run(t, f.args("fetch", "unknown")...)
	assert.Error(t, err)
}

func TestMetadata(t *testing.T) {
	f := newFixture(t, false)

	out, err := run(t, f.args("metadata", f.sums[checksum.MD5])...)
	require.NoError(t, err)
	assert.Contains(t, out, `"length":130`)
	assert.Contains(t, out, f.sums[checksum.SHA512])
}

func TestVerify(t *testing.T) {
	out, err := run(t, newFixture(t, false).args("verify")...)
	require.NoError(t, err)
	assert.Equal(t, "verified 1 sequences\n", out)

	_, err = run(t, newFixture(t, true).args("verify")...)
	assert.ErrorIs(t, err, checksum.ErrMismatch)
}

func TestConfigErrors(t *testing.T) {
	_, err := run(t, "fetch", "x", "--storage", "ftp")
	assert.Error(t, err)

	_, err = run(t, "fetch", "x", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
