package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type keyed struct {
	key   string
	value int
}

func TestDedupeBy_FirstSeenWins(t *testing.T) {
	in := []keyed{{"b", 1}, {"a", 2}, {"b", 3}, {"c", 4}, {"a", 5}}

	out := DedupeBy(in, func(k keyed) string { return k.key })

	assert.Equal(t, []keyed{{"b", 1}, {"a", 2}, {"c", 4}}, out)
}

func TestDedupeBy_Idempotent(t *testing.T) {
	in := []keyed{{"x", 1}, {"y", 2}, {"x", 3}}
	key := func(k keyed) string { return k.key }

	once := DedupeBy(in, key)
	twice := DedupeBy(once, key)

	assert.Equal(t, once, twice)
}

func TestDedupeBy_Empty(t *testing.T) {
	out := DedupeBy([]keyed(nil), func(k keyed) string { return k.key })
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestDedupeStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, DedupeStrings([]string{"a", "b", "a", "b"}))
}
