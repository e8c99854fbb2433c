package classifier

import (
	"context"
	"fmt"
	"os"

	ort "github.com/yalue/onnxruntime_go"
)

type ONNXOptions struct {
	ModelPath   string
	LibraryPath string
	InputName   string
	OutputName  string
	NumClasses  int
}

// ONNXModel allocates fresh tensors per call, so one session serves
// concurrent requests.
type ONNXModel struct {
	session    *ort.DynamicAdvancedSession
	numClasses int
}

func NewONNXModel(opts ONNXOptions) (*ONNXModel, error) {
	if opts.NumClasses <= 0 {
		return nil, fmt.Errorf("onnx model needs a positive class count, got %d", opts.NumClasses)
	}
	if _, err := os.Stat(opts.ModelPath); err != nil {
		return nil, fmt.Errorf("model artifact: %w", err)
	}
	if opts.LibraryPath != "" {
		ort.SetSharedLibraryPath(opts.LibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(opts.ModelPath,
		[]string{opts.InputName}, []string{opts.OutputName}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXModel{session: session, numClasses: opts.NumClasses}, nil
}

func (m *ONNXModel) Predict(ctx context.Context, in Tensor) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input, err := ort.NewTensor(ort.NewShape(in.Shape...), in.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(m.numClasses)))
	if err != nil {
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer output.Destroy()

	if err := m.session.Run([]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{output}); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	scores := make([]float32, m.numClasses)
	copy(scores, output.GetData())
	return scores, nil
}

func (m *ONNXModel) Close() error {
	if m.session != nil {
		m.session.Destroy()
	}
	return ort.DestroyEnvironment()
}
