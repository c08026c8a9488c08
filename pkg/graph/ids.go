// Package graph implements the editor-facing graph engine: materializing
// node templates onto the canvas, reconciling stored nodes against current
// templates, resolving cross-node references, and validating graphs before
// save or publish. All operations are pure transformations over pkg/models
// entities; nothing here performs I/O.
package graph

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource hands out node ids that are unique within a session.
type IDSource interface {
	Next() string
}

type sessionIDSource struct {
	prefix  string
	counter atomic.Uint64
}

// NewIDSource returns the default id source: a random session prefix plus a
// monotonic counter, so ids never repeat within a process.
func NewIDSource() IDSource {
	return &sessionIDSource{prefix: uuid.NewString()[:8]}
}

func (s *sessionIDSource) Next() string {
	return s.prefix + "-" + strconv.FormatUint(s.counter.Add(1), 10)
}

// Translator maps a template label key to a display string for the current
// locale. Identity is a valid translator.
type Translator func(string) string

func translateOr(translate Translator, s string) string {
	if translate == nil {
		return s
	}

	return translate(s)
}
