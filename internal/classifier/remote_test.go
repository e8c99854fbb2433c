package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoteModelPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/models/issues:predict", r.URL.Path)

		var body struct {
			Instances [][][][]float32 `json:"instances"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Instances, 1)
		require.Len(t, body.Instances[0], 2)
		require.Len(t, body.Instances[0][0], 2)
		require.Len(t, body.Instances[0][0][0], 3)

		_ = json.NewEncoder(w).Encode(map[string]any{"predictions": [][]float32{{0.7, 0.2, 0.1}}})
	}))
	defer srv.Close()

	m := RemoteModel{BaseURL: srv.URL + "/", Name: "issues"}
	in := Tensor{Shape: []int64{1, 2, 2, 3}, Data: make([]float32, 12)}
	scores, err := m.Predict(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, []float32{0.7, 0.2, 0.1}, scores)
}

func TestRemoteModelServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "bad input shape"})
	}))
	defer srv.Close()

	m := RemoteModel{BaseURL: srv.URL, Name: "issues"}
	_, err := m.Predict(context.Background(), Tensor{Shape: []int64{1, 3}, Data: make([]float32, 3)})
	require.ErrorContains(t, err, "bad input shape")
}

func TestRemoteModelRejectsBatch(t *testing.T) {
	m := RemoteModel{BaseURL: "http://127.0.0.1:0", Name: "issues"}
	_, err := m.Predict(context.Background(), Tensor{Shape: []int64{2, 3}, Data: make([]float32, 6)})
	require.Error(t, err)
}
