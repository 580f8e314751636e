package matcher

import "math"

// CosineSimilarity computes the cosine similarity between two vectors.
// A zero-magnitude vector has similarity 0 with everything. Vectors of
// different length panic with *ContractViolation.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		panic(&ContractViolation{A: len(a), B: len(b)})
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
