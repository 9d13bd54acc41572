package ingest

import (
	"fmt"
	"strconv"
	"strings"
)

// ID sequences continue from the highest numeric suffix already persisted,
// so IDs stay stable and sortable across runs.
type idSequence struct {
	prefix string
	next   int
}

func newIDSequence(prefix string, existingIDs []string) *idSequence {
	max := 0
	for _, id := range existingIDs {
		n, ok := parseSeq(prefix, id)
		if ok && n > max {
			max = n
		}
	}
	return &idSequence{prefix: prefix, next: max + 1}
}

func parseSeq(prefix, id string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Next returns the next ID in the sequence, zero-padded to three digits.
func (s *idSequence) Next() string {
	id := fmt.Sprintf("%s%03d", s.prefix, s.next)
	s.next++
	return id
}
