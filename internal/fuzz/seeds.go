package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var languageSeeds = []string{
	"program p begin end",
	"program p natural x; begin x := 1 + 2 * 3; write(x) end",
	"program p boolean b; begin b := not true or 1 < 2; write(b) end",
	"program p natural i; begin i := 3; while i > 0 do write(i); i := i - 1 done end",
	"program p natural x; begin read(x); if x % 2 = 0 then write(0) else write(1) endif end",
	"program p natural x; begin x := 10 / 0; write(x) end",
	"program p /* nested /* comment */ */ natural x; begin x := 1 // tail\n end",
}

// addCorpusSeeds adds the programs under testdata and the built-in snippets.
func addCorpusSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	// проходим по дереву testdata, добавляем все *.while файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".while" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	f.Add([]byte{})
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

// clampInput copies at most maxFuzzInput bytes. The result is never nil:
// CompileRequest treats a nil Source as "read Path from disk".
func clampInput(input []byte) []byte {
	out := make([]byte, min(len(input), maxFuzzInput))
	copy(out, input)
	return out
}
