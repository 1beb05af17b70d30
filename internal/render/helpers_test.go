package render

import "math"

func float64Inf() float64 {
	return math.Inf(1)
}
