package chart

import "github.com/plumsirawit/the-researcher-covid-bot/internal/series"

type cacheKey struct {
	series        *series.Series
	width, height float64
	margins       Margins
	padding       float64
}

// ScaleCache keeps the scales of the last (series, viewport) pair so pointer
// movement only reruns the resolver.
type ScaleCache struct {
	key    cacheKey
	scales Scales
	valid  bool
	builds int
}

func (c *ScaleCache) Get(s *series.Series, width, height float64, m Margins, padding float64) Scales {
	key := cacheKey{series: s, width: width, height: height, margins: m, padding: padding}
	if c.valid && c.key == key {
		return c.scales
	}
	c.key = key
	c.scales = BuildScales(s, width, height, m, padding)
	c.valid = true
	c.builds++
	return c.scales
}

func (c *ScaleCache) Invalidate() { c.valid = false }

// Builds counts how many times scales were actually rebuilt.
func (c *ScaleCache) Builds() int { return c.builds }
