package compression

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "Default is zstd", input: ""},
		{name: "Zstd", input: "zstd"},
		{name: "Gzip", input: "gzip"},
		{name: "None", input: "none"},
		{name: "Unknown", input: "lz4", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.input)
			if tc.expectError {
				if err == nil {
					t.Errorf("Expected error for %q", tc.input)
				}
				return
			}
			if err != nil || c == nil {
				t.Fatalf("Expected compressor, got %v (err=%v)", c, err)
			}
		})
	}
}

func TestCompressorsPreserveContent(t *testing.T) {
	compressors := map[string]Compressor{
		"zstd": ZstdCompressor{},
		"gzip": GzipCompressor{},
		"none": NoopCompressor{},
	}
	inputs := [][]byte{
		[]byte("hello"),
		[]byte(""),
		[]byte("  leading and trailing  "),
		[]byte(strings.Repeat("long message body ", 200)),
		[]byte("unicode ✓ 🔼🔽"),
	}

	for name, c := range compressors {
		t.Run(name, func(t *testing.T) {
			for _, in := range inputs {
				packed, err := c.Compress(in)
				if err != nil {
					t.Fatalf("Compress failed: %v", err)
				}
				out, err := c.Decompress(packed)
				if err != nil {
					t.Fatalf("Decompress failed: %v", err)
				}
				if !bytes.Equal(in, out) {
					t.Errorf("Content mismatch: %q != %q", in, out)
				}
			}
		})
	}
}

func TestZstdShrinksRepetitiveInput(t *testing.T) {
	in := []byte(strings.Repeat("abc", 1000))
	packed, err := ZstdCompressor{}.Compress(in)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if len(packed) >= len(in) {
		t.Errorf("Expected compressed size < %d, got %d", len(in), len(packed))
	}
}

func TestGzipRejectsGarbage(t *testing.T) {
	if _, err := (GzipCompressor{}).Decompress([]byte("not gzip")); err == nil {
		t.Error("Expected error decompressing garbage")
	}
}

func TestEmptyContentIsEmptyBlob(t *testing.T) {
	compressors := map[string]Compressor{
		"zstd": ZstdCompressor{},
		"gzip": GzipCompressor{},
	}

	for name, c := range compressors {
		t.Run(name, func(t *testing.T) {
			packed, err := c.Compress(nil)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			if packed == nil || len(packed) != 0 {
				t.Errorf("Expected empty non-nil blob, got %v", packed)
			}

			out, err := c.Decompress(nil)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if out == nil || len(out) != 0 {
				t.Errorf("Expected empty non-nil content, got %v", out)
			}
		})
	}
}

func TestGzipShrinksRepetitiveInput(t *testing.T) {
	in := []byte(strings.Repeat("abc", 1000))
	packed, err := GzipCompressor{}.Compress(in)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if len(packed) >= len(in) {
		t.Errorf("Expected compressed size < %d, got %d", len(in), len(packed))
	}
}

func TestZstdRejectsGarbage(t *testing.T) {
	if _, err := (ZstdCompressor{}).Decompress([]byte("not zstd")); err == nil {
		t.Error("Expected error decompressing garbage")
	}
}

func TestZstdConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 20)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := []byte(fmt.Sprintf("draft %d %s", i, strings.Repeat("x", i*10)))
			packed, err := ZstdCompressor{}.Compress(in)
			if err != nil {
				errs <- err
				return
			}
			out, err := ZstdCompressor{}.Decompress(packed)
			if err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(in, out) {
				errs <- fmt.Errorf("content mismatch for %d", i)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
