package main

// assetgen.go is a tiny helper utility to generate a deterministic set of
// named raw-asset text blobs for standalone benchmarking of the asset store
// (outside `go test`). It emits newline-separated "name\tbody" pairs which
// can be fed to a loader that pushes NewAssetRecord values.
//
// Usage:
//   go run ./tools/assetgen -n 100000 -seed=42 -out assets.tsv
//
// Flags:
//   -n      number of assets to generate (default 100000)
//   -size   body size in bytes (default 256)
//   -seed   RNG seed (default current time)
//   -out    output file (default stdout)
//
// © 2025 asset-store authors. MIT License.

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func main() {
	var (
		n       = flag.Int("n", 100_000, "number of assets to generate")
		size    = flag.Int("size", 256, "body size in bytes")
		seedVal = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed")
		outPath = flag.String("out", "", "output file (default stdout)")
	)
	flag.Parse()

	rnd := rand.New(rand.NewSource(*seedVal))

	var out *os.File
	var err error
	if *outPath == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(*outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot create file:", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	w := bufio.NewWriterSize(out, 1<<20)
	defer w.Flush()

	body := make([]byte, *size)
	for i := 0; i < *n; i++ {
		for j := range body {
			body[j] = alphabet[rnd.Intn(len(alphabet))]
		}
		fmt.Fprintf(w, "asset-%08d\t%s\n", i, body)
	}
}
