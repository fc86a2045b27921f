// Package lookup provides typed key/value lookup tables operated on dense
// N-dimensional batches.
//
// A table maps keys of one element type to values of another. Both types
// are chosen at creation from int32, int64, float32, float64 and string,
// giving 25 supported pairs. Tables are filled once, either from explicit
// batches or from a delimited vocabulary file, and then queried batch-wise
// with a default value for absent keys.
//
// # Quick Start
//
//	eng := lookup.New()
//	h := lookup.NewHandle()
//	_ = eng.Create(h, "custom[string]64", "int64")
//
//	keys := batch.MustOf([]string{"cat", "dog"})
//	values := batch.MustOf([]int64{1, 2})
//	_ = eng.Init(h, keys, values, nil)
//
//	out, _ := batch.New(dtype.Int64, 3)
//	_ = eng.Find(h, batch.MustOf([]string{"dog", "emu", "cat"}), batch.Scalar(int64(-1)), out)
//	// out = [2, -1, 1]
//
// # Vocabulary Files
//
// InitFromTextFile reads one pair per line. A column index selects a field
// split by the delimiter; loader.LineNumber (-1) selects the 0-based line
// number and loader.WholeLine (-2) the line itself:
//
//	file := batch.MustOf([]string{"vocab.txt.gz"})
//	err := eng.InitFromTextFile(ctx, h, file, loader.Unchecked, loader.WholeLine, loader.LineNumber, " ", nil)
//
// Files are opened through a blobstore.BlobStore (local by default; S3 and
// MinIO stores live in sub-packages) and may be gzip, zstd, s2 or lz4
// compressed.
//
// # Duplicate Keys
//
// The first insert of a key wins. Later pairs with the same key, within one
// batch or across loads, are ignored. Init and InitFromTextFile do nothing
// on a table that already holds entries.
//
// # Reduce-Join
//
// ReduceJoin concatenates the strings of a batch along a set of axes and is
// independent of any table; see package reducejoin.
//
// # Errors
//
// Every failure is returned as an error. Use errors.Is with
// ErrUnsupportedType, ErrInvalidArgument, ErrNotCreated, ErrFileOpen,
// ErrVocabularySize, ErrMemoryLimit or ErrAxis, and errors.As with
// *ErrTypeMismatch or *ErrShapeMismatch for details.
package lookup
