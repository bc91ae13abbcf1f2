package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	next := Fixed(start, time.Second)
	assert.Equal(t, start, next())
	assert.Equal(t, start.Add(time.Second), next())

	defer func(prev func() time.Time) { NowFunc = prev }(NowFunc)
	NowFunc = Fixed(start, time.Minute)
	now := Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.True(t, start.Equal(now))
}
