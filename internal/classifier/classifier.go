package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"strings"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/civic-issues/backend/internal/config"
	"github.com/civic-issues/backend/internal/models"
)

var (
	ErrNotReady = errors.New("model is not loaded")
	ErrNoImage  = errors.New("no image provided")
)

// InferenceError wraps a failure inside the decode/preprocess/predict pipeline.
type InferenceError struct {
	Stage string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// Result is either a ranked prediction list or an error, never both.
type Result struct {
	Predictions models.Predictions
	Err         error
}

func (r Result) OK() bool {
	return r.Err == nil
}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(map[string]string{"error": r.Err.Error()})
	}
	return r.Predictions.MarshalJSON()
}

type Options struct {
	ImageSize int
	Layout    Layout
	TopK      int
	// MaxPixels bounds width*height of an encoded upload before it is decoded.
	MaxPixels int
}

const defaultMaxPixels = 40_000_000

func DefaultOptions() Options {
	return Options{ImageSize: 224, Layout: LayoutNHWC, TopK: 3, MaxPixels: defaultMaxPixels}
}

// Classifier holds a loaded model and its labels. It is never mutated after
// construction.
type Classifier struct {
	model   Model
	labels  *Labels
	opts    Options
	loadErr error
}

func New(model Model, labels *Labels, opts Options) *Classifier {
	if model == nil || labels == nil {
		return NotReady(errors.New("model and labels are required"))
	}
	return &Classifier{model: model, labels: labels, opts: opts}
}

// NotReady builds a classifier whose every call fails with ErrNotReady.
func NotReady(cause error) *Classifier {
	return &Classifier{loadErr: cause}
}

// Load builds a classifier from configuration. Load failures are logged once
// and produce a not-ready classifier rather than an error.
func Load(cfg config.Classifier, logger zerolog.Logger) *Classifier {
	c, err := load(cfg, logger)
	if err != nil {
		logger.Error().Err(err).
			Str("backend", cfg.ModelBackend).
			Str("model_path", cfg.ModelPath).
			Str("labels_path", cfg.LabelsPath).
			Msg("classifier failed to load")
		return NotReady(err)
	}
	logger.Info().
		Str("backend", cfg.ModelBackend).
		Int("classes", c.labels.Size()).
		Msg("classifier loaded")
	return c
}

func load(cfg config.Classifier, logger zerolog.Logger) (*Classifier, error) {
	layout, err := ParseLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}
	opts := Options{ImageSize: cfg.ImageSize, Layout: layout, TopK: cfg.TopK, MaxPixels: cfg.MaxPixels}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = defaultMaxPixels
	}
	if opts.ImageSize <= 0 || opts.TopK <= 0 {
		return nil, fmt.Errorf("invalid classifier options: %+v", opts)
	}

	labels, err := LoadLabels(cfg.LabelsPath, logger)
	if err != nil {
		return nil, err
	}
	numClasses := cfg.NumClasses
	if numClasses <= 0 {
		numClasses = labels.Size()
	}

	var model Model
	switch strings.ToLower(cfg.ModelBackend) {
	case "", "onnx":
		model, err = NewONNXModel(ONNXOptions{
			ModelPath:   cfg.ModelPath,
			LibraryPath: cfg.ORTLibraryPath,
			InputName:   cfg.ModelInputName,
			OutputName:  cfg.ModelOutput,
			NumClasses:  numClasses,
		})
	case "remote":
		if cfg.ModelURL == "" {
			return nil, errors.New("MODEL_URL is required for the remote backend")
		}
		model = RemoteModel{BaseURL: cfg.ModelURL, Name: cfg.ModelName}
	case "uniform":
		model = UniformModel{Classes: numClasses}
	default:
		return nil, fmt.Errorf("unknown model backend %q", cfg.ModelBackend)
	}
	if err != nil {
		return nil, err
	}
	return New(model, labels, opts), nil
}

func (c *Classifier) Ready() bool {
	return c.loadErr == nil
}

// LoadErr is the reason the classifier is not ready, or nil.
func (c *Classifier) LoadErr() error {
	return c.loadErr
}

func (c *Classifier) Close() error {
	if closer, ok := c.model.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Classify runs the full pipeline on img. It never panics.
func (c *Classifier) Classify(ctx context.Context, img image.Image) (res Result) {
	if !c.Ready() {
		return Result{Err: ErrNotReady}
	}
	if img == nil {
		return Result{Err: ErrNoImage}
	}

	stage := "preprocess"
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: &InferenceError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}}
		}
	}()

	in := Preprocess(img, c.opts.ImageSize, c.opts.Layout)

	stage = "predict"
	scores, err := c.model.Predict(ctx, in)
	if err != nil {
		return Result{Err: &InferenceError{Stage: stage, Err: err}}
	}
	if err := checkFinite(scores); err != nil {
		return Result{Err: &InferenceError{Stage: stage, Err: err}}
	}

	stage = "rank"
	top := TopK(scores, c.opts.TopK)
	preds := make(models.Predictions, 0, len(top))
	for _, idx := range top {
		preds = append(preds, models.Prediction{Label: c.labels.Name(idx), Confidence: scores[idx]})
	}
	return Result{Predictions: preds}
}

// ClassifyBytes decodes an encoded image and classifies it. Empty input is
// treated as no image.
func (c *Classifier) ClassifyBytes(ctx context.Context, data []byte) Result {
	if !c.Ready() {
		return Result{Err: ErrNotReady}
	}
	if len(data) == 0 {
		return Result{Err: ErrNoImage}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Result{Err: &InferenceError{Stage: "decode", Err: err}}
	}
	if c.opts.MaxPixels > 0 && cfg.Width*cfg.Height > c.opts.MaxPixels {
		return Result{Err: &InferenceError{
			Stage: "decode",
			Err:   fmt.Errorf("image is %dx%d, above the %d pixel limit", cfg.Width, cfg.Height, c.opts.MaxPixels),
		}}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{Err: &InferenceError{Stage: "decode", Err: err}}
	}
	return c.Classify(ctx, img)
}

func checkFinite(scores []float32) error {
	for i, v := range scores {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("model returned non-finite score %v at index %d", v, i)
		}
	}
	return nil
}
