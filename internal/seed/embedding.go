package seed

import (
	"hash/fnv"
	"math"
	"strings"
)

// FallbackEmbedding maps text onto a deterministic unit vector of the
// given dimension, used when no embedding server is configured. Each
// token hashes into a signed bucket, so products sharing words land
// near each other. Crude next to a real model, but enough to demo
// vector similarity offline.
func FallbackEmbedding(text string, dimension int) []float32 {
	if dimension <= 0 {
		return nil
	}

	vec := make([]float32, dimension)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,!?:;\"'()")
		if token == "" {
			continue
		}

		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		sum := h.Sum32()

		sign := float32(1)
		if sum&0x80000000 != 0 {
			sign = -1
		}
		vec[sum%uint32(dimension)] += sign
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}

	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}

	return vec
}
