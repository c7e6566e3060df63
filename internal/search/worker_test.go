package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimelordUK/mseek/internal/store"
)

func TestEvaluate(t *testing.T) {
	s := newMemStore()
	s.add("a.txt", "Hello World")
	s.add("b.txt", "hello")

	tests := []struct {
		name  string
		file  string
		terms []string
		want  bool
	}{
		{"all terms", "a.txt", []string{"hello", "world"}, true},
		{"order independent", "a.txt", []string{"world", "hello"}, true},
		{"missing term", "b.txt", []string{"hello", "world"}, false},
		{"case insensitive content", "a.txt", []string{"lo wo"}, true},
		{"no terms", "b.txt", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Query{Generation: 7, Terms: tt.terms}
			res := Evaluate(s, q, tt.file)
			assert.Equal(t, tt.want, res.Matched)
			assert.Equal(t, uint64(7), res.Generation)
			assert.Equal(t, tt.file, res.Name)
			assert.Equal(t, tt.terms, res.Terms)
			assert.NoError(t, res.Err)
		})
	}
}

func TestEvaluateReadFailure(t *testing.T) {
	res := Evaluate(newMemStore(), Query{Generation: 1, Terms: []string{"x"}}, "missing.txt")
	assert.False(t, res.Matched)
	assert.ErrorIs(t, res.Err, store.ErrNotFound)
}
