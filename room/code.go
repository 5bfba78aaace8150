package room

import (
	crand "crypto/rand"
	"io"
	"math/big"
	"strings"
)

const (
	CodeLength = 6
	codeChars  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// placeholder for glyphs that read ambiguously on screen
	codePlaceholder = "X"
)

var confusables = strings.NewReplacer(
	"0", codePlaceholder,
	"O", codePlaceholder,
	"1", codePlaceholder,
	"l", codePlaceholder,
)

// CodeGenerator produces short room codes. Source defaults to crypto/rand.
type CodeGenerator struct {
	Source io.Reader
}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{Source: crand.Reader}
}

func (g *CodeGenerator) random() (string, error) {
	source := g.Source
	if source == nil {
		source = crand.Reader
	}
	code := make([]byte, CodeLength)
	max := big.NewInt(int64(len(codeChars)))
	for i := range code {
		n, err := crand.Int(source, max)
		if err != nil {
			return "", err
		}
		code[i] = codeChars[n.Int64()]
	}
	return confusables.Replace(string(code)), nil
}

// Generate returns a code for which exists reports false.
func (g *CodeGenerator) Generate(exists func(string) bool) (string, error) {
	for {
		code, err := g.random()
		if err != nil {
			return "", err
		}
		if exists == nil || !exists(code) {
			return code, nil
		}
	}
}
