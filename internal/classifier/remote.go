package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RemoteModel calls a TensorFlow Serving style REST predict endpoint.
type RemoteModel struct {
	BaseURL string
	Name    string
	Client  *http.Client
}

type predictRequest struct {
	Instances []any `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float32 `json:"predictions"`
	Error       string      `json:"error"`
}

func (m RemoteModel) Predict(ctx context.Context, in Tensor) ([]float32, error) {
	client := m.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if len(in.Shape) < 2 || in.Shape[0] != 1 {
		return nil, fmt.Errorf("remote model expects a batch of one, got shape %v", in.Shape)
	}

	b, err := json.Marshal(predictRequest{Instances: []any{nest(in.Data, in.Shape[1:])}})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/models/%s:predict", strings.TrimRight(m.BaseURL, "/"), m.Name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var r predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if r.Error != "" {
			return nil, fmt.Errorf("model service error: %s", r.Error)
		}
		return nil, errors.New("model service error")
	}
	if len(r.Predictions) != 1 {
		return nil, fmt.Errorf("expected 1 prediction, got %d", len(r.Predictions))
	}
	return r.Predictions[0], nil
}

// nest reshapes flat row-major data into nested slices of the given shape.
func nest(data []float32, shape []int64) any {
	if len(shape) == 1 {
		return data
	}
	n := int(shape[0])
	stride := len(data) / n
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = nest(data[i*stride:(i+1)*stride], shape[1:])
	}
	return out
}
