package lookup_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hupe1980/lookup"
	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/dtype"
	"github.com/hupe1980/lookup/loader"
)

// Example demonstrates creating, filling and querying a table.
func Example() {
	eng := lookup.New()
	h := lookup.NewHandle()
	defer h.Release()

	if err := eng.Create(h, "custom[string]64", "int64"); err != nil {
		log.Fatal(err)
	}

	keys := batch.MustOf([]string{"cat", "dog"})
	values := batch.MustOf([]int64{1, 2})
	if err := eng.Init(h, keys, values, nil); err != nil {
		log.Fatal(err)
	}

	out, _ := batch.New(dtype.Int64, 3)
	if err := eng.Find(h, batch.MustOf([]string{"dog", "emu", "cat"}), batch.Scalar(int64(-1)), out); err != nil {
		log.Fatal(err)
	}

	v, _ := batch.Values[int64](out)
	fmt.Println(v)
	// Output: [2 -1 1]
}

// Example_initFromTextFile loads a vocabulary file mapping ids to lines.
func Example_initFromTextFile() {
	dir, _ := os.MkdirTemp("", "lookup-example")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "vocab.txt")
	_ = os.WriteFile(path, []byte("5 dog\n7 cat\n"), 0o600)

	eng := lookup.New()
	h := lookup.NewHandle()
	_ = eng.Create(h, "int32", "custom[string]64")

	file := batch.MustOf([]string{path})
	if err := eng.InitFromTextFile(context.Background(), h, file, 2, 0, loader.WholeLine, " ", nil); err != nil {
		log.Fatal(err)
	}

	out, _ := batch.New(dtype.String, 2)
	_ = eng.Find(h, batch.MustOf([]int32{7, 5}), batch.Scalar("<unk>"), out)

	v, _ := batch.Values[string](out)
	fmt.Printf("%q\n", v)
	// Output: ["7 cat" "5 dog"]
}

// Example_reduceJoin joins the rows of a 2x3 string batch.
func Example_reduceJoin() {
	eng := lookup.New()

	in := batch.MustOf([]string{"a", "b", "c", "d", "e", "f"}, 2, 3)
	out, _ := batch.New(dtype.String, 2, 1)
	if err := eng.ReduceJoin(in, batch.MustOf([]int32{1}), true, "-", out); err != nil {
		log.Fatal(err)
	}

	v, _ := batch.Values[string](out)
	fmt.Println(out.Shape(), v)
	// Output: [2 1] [a-b-c d-e-f]
}

// Example_errors shows matching engine errors.
func Example_errors() {
	eng := lookup.New()

	err := eng.Create(lookup.NewHandle(), "int8", "int32")
	fmt.Println(errors.Is(err, lookup.ErrUnsupportedType))

	out, _ := batch.New(dtype.Int32, 1)
	err = eng.Find(lookup.NewHandle(), batch.MustOf([]int32{1}), batch.Scalar(int32(0)), out)
	fmt.Println(errors.Is(err, lookup.ErrNotCreated))
	// Output:
	// true
	// true
}

// Example_metrics collects hit and miss counts.
func Example_metrics() {
	metrics := &lookup.BasicMetricsCollector{}
	eng := lookup.New(lookup.WithMetricsCollector(metrics))
	h := lookup.NewHandle()
	_ = eng.Create(h, "int64", "int64")
	_ = eng.Init(h, batch.MustOf([]int64{1, 2, 3}), batch.MustOf([]int64{10, 20, 30}), nil)

	out, _ := batch.New(dtype.Int64, 4)
	_ = eng.Find(h, batch.MustOf([]int64{1, 2, 3, 4}), batch.Scalar(int64(0)), out)

	stats := metrics.GetStats()
	fmt.Printf("keys=%d misses=%d hit-rate=%.2f\n", stats.FindKeys, stats.FindMisses, stats.HitRate())
	// Output: keys=4 misses=1 hit-rate=0.75
}
