package classifier

import (
	"context"
	"errors"
)

// Model runs one forward pass over a batch of one and returns the score
// vector for that image. Implementations must be safe for concurrent use.
type Model interface {
	Predict(ctx context.Context, in Tensor) ([]float32, error)
}

// UniformModel scores every class 1/Classes. It stands in for a real model
// when the demo is run without an artifact.
type UniformModel struct {
	Classes int
}

func (m UniformModel) Predict(ctx context.Context, in Tensor) ([]float32, error) {
	if m.Classes <= 0 {
		return nil, errors.New("uniform model has no classes")
	}
	scores := make([]float32, m.Classes)
	for i := range scores {
		scores[i] = 1 / float32(m.Classes)
	}
	return scores, nil
}
