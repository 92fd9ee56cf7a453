package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"codinglint/internal/diag"
	"codinglint/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := NewCacheKey([32]byte{1}, 0, "fp", "coding@1")
	in := []diag.Diagnostic{
		diag.New(diag.SevWarning, diag.CodingUnknownEncoding, diag.At(2, 0), diag.CodingUnknownEncoding.Title()).WithOrigin("coding"),
	}
	if err := c.Put(key, toPayload("a.py", in)); err != nil {
		t.Fatal(err)
	}

	var out CachePayload
	ok, err := c.Get(key, &out)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	got := fromPayload(&out)
	if len(got) != 1 || got[0] != in[0] || out.Path != "a.py" {
		t.Fatalf("got %+v", out)
	}

	tmp, _ := filepath.Glob(filepath.Join(c.Dir(), "results", "*", "tmp-*"))
	if len(tmp) != 0 {
		t.Fatalf("temp files left behind: %v", tmp)
	}
}

func TestDiskCacheMissAndKeys(t *testing.T) {
	c, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var out CachePayload
	ok, err := c.Get(NewCacheKey([32]byte{}, 0, "", ""), &out)
	if ok || err != nil {
		t.Fatalf("miss: ok=%v err=%v", ok, err)
	}
	if NewCacheKey([32]byte{1}, 0, "a", "b") == NewCacheKey([32]byte{1}, 0, "ab", "") {
		t.Fatal("key fields must be separated")
	}
}

func TestDiskCacheSchemaAndCorruption(t *testing.T) {
	c, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	old := NewCacheKey([32]byte{2}, 0, "", "")
	data, err := msgpack.Marshal(&CachePayload{Schema: cacheSchemaVersion + 1, Path: "x.py"})
	if err != nil {
		t.Fatal(err)
	}
	writeRaw(t, c.pathFor(old), data)
	var out CachePayload
	if ok, err := c.Get(old, &out); ok || err != nil {
		t.Fatalf("foreign schema: ok=%v err=%v", ok, err)
	}

	broken := NewCacheKey([32]byte{3}, 0, "", "")
	writeRaw(t, c.pathFor(broken), []byte{0xc1})
	if ok, err := c.Get(broken, &out); ok || err == nil {
		t.Fatalf("corrupt entry: ok=%v err=%v", ok, err)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := OpenDiskCacheAt(dir)
	if err != nil {
		t.Fatal(err)
	}
	key := NewCacheKey([32]byte{4}, 0, "", "")
	if err := c.Put(key, toPayload("a.py", nil)); err != nil {
		t.Fatal(err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	var out CachePayload
	if ok, _ := c.Get(key, &out); ok {
		t.Fatal("entry survived DropAll")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("cache dir must be recreated: %v", err)
	}
}

func TestOpenDiskCacheXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	c, err := OpenDiskCache("codinglint-test")
	if err != nil {
		t.Fatal(err)
	}
	if c.Dir() != filepath.Join(base, "codinglint-test") {
		t.Fatalf("dir = %q", c.Dir())
	}
}

func writeRaw(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestCacheKeySeparatesStdin(t *testing.T) {
	content := [32]byte{5}
	disk := NewCacheKey(content, 0, "fp", "coding@1")
	stdin := NewCacheKey(content, source.FileVirtual|source.FileStdin, "fp", "coding@1")
	if disk == stdin {
		t.Fatal("stdin and disk content share a cache key")
	}
	// BOM and CRLF only change the bytes, which the content hash covers
	if bom := NewCacheKey(content, source.FileHadBOM|source.FileNormalizedCRLF, "fp", "coding@1"); bom != disk {
		t.Fatal("normalisation flags must not change the key")
	}
}
