package fuzztests

import (
	"testing"

	"whilec/internal/diag"
	"whilec/internal/lexer"
	"whilec/internal/source"
	"whilec/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.while", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		// каждый токен съедает хотя бы байт, иначе лексер зациклился
		for n := 0; ; n++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if n > len(input) {
				t.Fatalf("lexer produced more tokens than input bytes (%d)", len(input))
			}
		}
	})
}
