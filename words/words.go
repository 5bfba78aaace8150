// Package words maps a drawing category to candidate prompt words.
package words

import (
	"math/rand"
	"sort"
)

var defaultCategories = map[string][]string{
	"blending":  {"cat", "dog", "giraffe"},
	"hatching":  {"table", "ball", "apple"},
	"stippling": {"beach", "castle", "school"},
}

// Bank is read-only after construction and safe for concurrent use.
type Bank struct {
	categories map[string][]string
}

func NewBank(categories map[string][]string) *Bank {
	return &Bank{categories: categories}
}

// Default returns the built-in category table.
func Default() *Bank {
	return NewBank(defaultCategories)
}

// Prompt picks a random word from the category.
func (b *Bank) Prompt(category string) (string, bool) {
	list := b.categories[category]
	if len(list) == 0 {
		return "", false
	}
	return list[rand.Intn(len(list))], true
}

func (b *Bank) Categories() []string {
	names := make([]string, 0, len(b.categories))
	for name := range b.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *Bank) Words(category string) []string {
	return append([]string(nil), b.categories[category]...)
}
