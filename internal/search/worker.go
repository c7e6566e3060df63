package search

import (
	"bytes"
)

// Reader loads the content of a single log file
type Reader interface {
	Read(name string) ([]byte, error)
}

// Result is the outcome of evaluating one file against one query
type Result struct {
	Generation uint64
	Terms      []string
	Name       string
	Matched    bool
	Err        error
}

// Evaluate decides whether file name contains every term of q. Terms must
// already be lowercased. A read failure is a non-match; the error is kept
// on the result for logging only.
func Evaluate(r Reader, q Query, name string) Result {
	res := Result{
		Generation: q.Generation,
		Terms:      q.Terms,
		Name:       name,
	}

	content, err := r.Read(name)
	if err != nil {
		res.Err = err
		return res
	}

	res.Matched = containsAll(bytes.ToLower(content), q.Terms)
	return res
}

func containsAll(content []byte, terms []string) bool {
	for _, term := range terms {
		if !bytes.Contains(content, []byte(term)) {
			return false
		}
	}
	return true
}
