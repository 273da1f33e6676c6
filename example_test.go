package refget_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/hupe1980/refget"
	"github.com/hupe1980/refget/blobstore"
	"github.com/hupe1980/refget/checksum"
	"github.com/hupe1980/refget/testutil"
)

const exampleBases = "ATGGCCATTGTAATGGGCCGCTGAAAGGGTGCCCGATAG"

// openExample serves exampleBases under its md5 digest and the label "demo".
func openExample() *refget.Service {
	ctx := context.Background()

	sums, err := checksum.Compute(strings.NewReader(exampleBases))
	if err != nil {
		log.Fatal(err)
	}

	fasta, fai := testutil.NewFASTA(60).Add("demo", []byte(exampleBases)).Build()
	manifest := fmt.Sprintf(`{"files": [{"path": "demo.fa", "sequences": [
  {"name": "demo", "checksums": [{"type": "md5", "value": %q}], "aliases": ["demo"]}
]}]}`, sums[checksum.MD5])

	store := blobstore.NewMemoryStore()
	_ = store.Put(ctx, "demo.fa", fasta)
	_ = store.Put(ctx, "demo.fa.fai", fai)
	_ = store.Put(ctx, "manifest.json", []byte(manifest))

	svc, err := refget.Open(ctx, refget.Remote(store, "manifest.json"), refget.WithLogger(refget.NoopLogger()))
	if err != nil {
		log.Fatal(err)
	}
	return svc
}

// ExampleService_Fetch reads a sub-sequence on both strands.
func ExampleService_Fetch() {
	svc := openExample()
	defer svc.Close()

	ctx := context.Background()
	for _, strand := range []string{"1", "-1"} {
		_, body, err := svc.Fetch(ctx, refget.SequenceRequest{ID: "demo", Start: "0", End: "12", Strand: strand})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(body))
	}
	// Output:
	// ATGGCCATTGTA
	// TACAATGGCCAT
}

// ExampleService_Fetch_translate translates up to and including the first stop codon.
func ExampleService_Fetch_translate() {
	svc := openExample()
	defer svc.Close()

	_, body, err := svc.Fetch(context.Background(), refget.SequenceRequest{ID: "demo", Translate: "1"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(body))
	// Output: MAIVMGRX
}

// ExampleStatusCode maps service errors to HTTP statuses.
func ExampleStatusCode() {
	svc := openExample()
	defer svc.Close()

	ctx := context.Background()
	requests := []refget.SequenceRequest{
		{ID: "missing"},
		{ID: "demo", Start: "5", End: "5"},
		{ID: "demo", Start: "9", End: "3"},
		{ID: "demo", Accept: "image/png"},
	}
	for _, req := range requests {
		_, err := svc.Sequence(ctx, req)
		fmt.Println(refget.StatusCode(err))
	}
	// Output:
	// 404
	// 400
	// 501
	// 416
}
