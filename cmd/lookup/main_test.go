package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lookup/blobstore"
	"github.com/hupe1980/lookup/testutil"
)

func execute(t *testing.T, a *app, args ...string) (string, string, error) {
	t.Helper()

	cmd := newCommand(a)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()

	p := filepath.Join(dir, "tables.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func fixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	words := testutil.WriteVocabulary(t, dir, "words.txt.gz", []string{"apple", "banana", "cherry"})
	ids := testutil.WriteVocabulary(t, dir, "ids.tsv", []string{"10\tten", "20\ttwenty"})

	return writeManifest(t, dir, fmt.Sprintf(`
tables:
  - name: words
    key_type: custom[string]64
    value_type: int64
    file: %s
    vocabulary_size: 3
  - name: ids
    key_type: int64
    value_type: custom[string]64
    file: %s
    key_index: 0
    value_index: 1
    delimiter: "\t"
`, words, ids))
}

func TestLoadCmd(t *testing.T) {
	manifest := fixture(t)

	out, _, err := execute(t, &app{}, "load", manifest, "--concurrency", "1")
	require.NoError(t, err)

	var results []loadResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "words", results[0].Name)
	assert.Equal(t, 3, results[0].Size)
	assert.Equal(t, "int64", results[0].ValueType)
	assert.Equal(t, "ids", results[1].Name)
	assert.Equal(t, 2, results[1].Size)
	assert.Equal(t, "custom[string]64", results[1].ValueType)
}

func TestLoadCmd_VocabularyMismatch(t *testing.T) {
	dir := t.TempDir()
	words := testutil.WriteVocabulary(t, dir, "words.txt", []string{"a", "b"})
	manifest := writeManifest(t, dir, fmt.Sprintf(`
tables:
  - {name: words, key_type: string, value_type: int64, file: %s, vocabulary_size: 5}
`, words))

	_, _, err := execute(t, &app{}, "load", manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `table "words"`)
	assert.Contains(t, err.Error(), "vocabulary size mismatch")
}

func TestFindCmd(t *testing.T) {
	manifest := fixture(t)

	t.Run("StringKeys", func(t *testing.T) {
		out, _, err := execute(t, &app{}, "find", "-m", manifest, "-t", "words", "--default=-1", "cherry", "kiwi", "apple")
		require.NoError(t, err)

		var got []struct {
			Key   string `json:"key"`
			Value int64  `json:"value"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 3)
		assert.Equal(t, int64(2), got[0].Value)
		assert.Equal(t, int64(-1), got[1].Value)
		assert.Equal(t, int64(0), got[2].Value)
	})

	t.Run("NumericKeys", func(t *testing.T) {
		out, _, err := execute(t, &app{}, "find", "-m", manifest, "-t", "ids", "-d", "?", "20", "30")
		require.NoError(t, err)

		var got []struct {
			Key   int64  `json:"key"`
			Value string `json:"value"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "twenty", got[0].Value)
		assert.Equal(t, "?", got[1].Value)
	})

	t.Run("BadKey", func(t *testing.T) {
		_, _, err := execute(t, &app{}, "find", "-m", manifest, "-t", "ids", "ten")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "keys")
	})

	t.Run("AmbiguousTable", func(t *testing.T) {
		_, _, err := execute(t, &app{}, "find", "-m", manifest, "apple")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--table")
	})

	t.Run("Metrics", func(t *testing.T) {
		_, stderr, err := execute(t, &app{}, "--metrics", "find", "-m", manifest, "-t", "words", "apple", "kiwi")
		require.NoError(t, err)
		assert.Contains(t, stderr, `lookup_find_keys_total{result="hit"} 1`)
		assert.Contains(t, stderr, `lookup_find_keys_total{result="miss"} 1`)
		assert.Contains(t, stderr, "lookup_load_lines_total 3")
	})
}

func TestFindCmd_RemoteSource(t *testing.T) {
	ctx := context.Background()
	remote := blobstore.NewMemoryStore()
	require.NoError(t, remote.Put(ctx, "vocab/words.txt.zst",
		testutil.EncodeVocabulary(t, ".zst", []string{"x", "y"})))

	dir := t.TempDir()
	manifest := writeManifest(t, dir, `
tables:
  - {name: words, key_type: string, value_type: int32, file: "s3://bucket/vocab/words.txt.zst"}
`)

	a := &app{
		storeFactory: func(_ context.Context, scheme, bucket string) (blobstore.BlobStore, error) {
			assert.Equal(t, "s3", scheme)
			assert.Equal(t, "bucket", bucket)
			return remote, nil
		},
	}
	out, _, err := execute(t, a, "find", "-m", manifest, "y")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"y","value":1}]`, out)
}

func TestExportCmd(t *testing.T) {
	manifest := fixture(t)

	t.Run("JSON", func(t *testing.T) {
		out, _, err := execute(t, &app{}, "export", "-m", manifest, "-t", "ids")
		require.NoError(t, err)

		var got []struct {
			Key   int64  `json:"key"`
			Value string `json:"value"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		m := map[int64]string{}
		for _, e := range got {
			m[e.Key] = e.Value
		}
		assert.Equal(t, map[int64]string{10: "ten", 20: "twenty"}, m)
	})

	t.Run("Arrow", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "words.arrow")
		_, _, err := execute(t, &app{}, "export", "-m", manifest, "-t", "words", "-f", "arrow", "-o", path)
		require.NoError(t, err)

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
		require.NoError(t, err)
		defer r.Close()

		require.Equal(t, 1, r.NumRecords())
		rec, err := r.Record(0)
		require.NoError(t, err)
		require.Equal(t, int64(3), rec.NumRows())
		assert.Equal(t, "key", rec.ColumnName(0))

		keys := rec.Column(0).(*array.String)
		vals := rec.Column(1).(*array.Int64)
		m := map[string]int64{}
		for i := 0; i < keys.Len(); i++ {
			m[keys.Value(i)] = vals.Value(i)
		}
		assert.Equal(t, map[string]int64{"apple": 0, "banana": 1, "cherry": 2}, m)
	})

	t.Run("BadFormat", func(t *testing.T) {
		_, _, err := execute(t, &app{}, "export", "-m", manifest, "-f", "csv")
		assert.Error(t, err)
	})
}

func TestReduceJoinCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Rows", []string{"--shape", "2,2", "--axes", "1", "--separator", " ", "a", "b", "c", "d"}, `{"shape":[2],"values":["a b","c d"]}`},
		{"ColumnsKeepDims", []string{"--shape", "2,2", "--axes", "0", "--keep-dims", "a", "b", "c", "d"}, `{"shape":[1,2],"values":["ac","bd"]}`},
		{"All", []string{"--shape", "2,2", "--axes", "0,1", "--separator", "-", "a", "b", "c", "d"}, `{"shape":[],"values":["a-b-c-d"]}`},
		{"DefaultShape", []string{"--axes", "-1", "x", "y"}, `{"shape":[],"values":["xy"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, &app{}, append([]string{"reduce-join"}, tt.args...)...)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, out)
		})
	}

	t.Run("BadAxis", func(t *testing.T) {
		_, _, err := execute(t, &app{}, "reduce-join", "--axes", "3", "a")
		assert.Error(t, err)
	})

	t.Run("BadShape", func(t *testing.T) {
		_, _, err := execute(t, &app{}, "reduce-join", "--shape", "3", "a")
		assert.Error(t, err)
	})
}

func TestEncodeDecodeCmd(t *testing.T) {
	out, _, err := execute(t, &app{}, "encode", "hi", "a")
	require.NoError(t, err)

	var enc encodeResult
	require.NoError(t, json.Unmarshal([]byte(out), &enc))
	assert.Equal(t, 2, enc.MaxLength)
	assert.Equal(t, 8, enc.RecordWidth)
	assert.Equal(t, 16, enc.ByteSize)
	assert.Equal(t, []byte{'h', 0, 0, 0, 'i', 0, 0, 0, 'a', 0, 0, 0, 0, 0, 0, 0}, enc.Data)

	out, _, err = execute(t, &app{}, "decode", "--width", "8", base64.StdEncoding.EncodeToString(enc.Data))
	require.NoError(t, err)
	assert.JSONEq(t, `["hi","a"]`, out)

	out, _, err = execute(t, &app{}, "encode", "--max-length", "1", "hi")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &enc))
	assert.Equal(t, 4, enc.ByteSize)

	_, _, err = execute(t, &app{}, "decode", "--width", "3", "AAAA")
	assert.Error(t, err)

	_, _, err = execute(t, &app{}, "decode", "--width", "4", "!!")
	assert.Error(t, err)
}

func TestRootCmd_BadLogLevel(t *testing.T) {
	_, _, err := execute(t, &app{}, "--log-level", "loud", "encode", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--log-level")
}
