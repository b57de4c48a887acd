package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"whilec/internal/cache"
	"whilec/internal/project"
)

func TestPutGet(t *testing.T) {
	c, err := cache.OpenAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := project.HashString("program p begin end")
	key := cache.Key(src, "flatten=true")
	in := &cache.Payload{SourcePath: "p.while", SourceHash: src, OptionsKey: "flatten=true", Assembly: "global main\n", Blocks: 3, Symbols: []string{"x"}}
	if err := c.Put(key, in); err != nil {
		t.Fatal(err)
	}
	var out cache.Payload
	ok, err := c.Get(key, &out)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if out.Assembly != in.Assembly || out.Blocks != 3 || out.SourceHash != src || len(out.Symbols) != 1 || out.Schema != cache.SchemaVersion {
		t.Errorf("payload = %+v", out)
	}
}

func TestMissAndKeys(t *testing.T) {
	c, err := cache.OpenAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := project.HashString("x")
	var out cache.Payload
	if ok, err := c.Get(cache.Key(src, ""), &out); ok || err != nil {
		t.Errorf("empty cache Get = %v, %v", ok, err)
	}
	if cache.Key(src, "a") == cache.Key(src, "b") {
		t.Error("options do not affect the key")
	}
	if cache.Key(src, "a") == cache.Key(project.HashString("y"), "a") {
		t.Error("source does not affect the key")
	}
}

func TestCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	c, err := cache.OpenAt(dir)
	if err != nil {
		t.Fatal(err)
	}
	key := cache.Key(project.HashString("z"), "")
	if err := c.Put(key, &cache.Payload{Assembly: "a"}); err != nil {
		t.Fatal(err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "asm", "*.mp"))
	if len(matches) != 1 {
		t.Fatalf("entries = %v", matches)
	}
	if err := os.WriteFile(matches[0], []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	var out cache.Payload
	if _, err := c.Get(key, &out); err == nil {
		t.Error("corrupt entry decoded")
	}
}

func TestDropAll(t *testing.T) {
	dir := t.TempDir()
	c, err := cache.OpenAt(dir)
	if err != nil {
		t.Fatal(err)
	}
	key := cache.Key(project.HashString("p"), "")
	if err := c.Put(key, &cache.Payload{Assembly: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	var out cache.Payload
	if ok, _ := c.Get(key, &out); ok {
		t.Error("entry survived DropAll")
	}
	if err := c.Put(key, &cache.Payload{Assembly: "b"}); err != nil {
		t.Errorf("cache unusable after DropAll: %v", err)
	}
}

func TestDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := cache.Dir("whilec")
	if err != nil || dir != filepath.Join("/tmp/xdg", "whilec") {
		t.Errorf("Dir = %q, %v", dir, err)
	}
}
