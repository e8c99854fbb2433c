package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	BindHost       string        `mapstructure:"BIND_HOST"`
	Port           string        `mapstructure:"PORT"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`

	UploadDir         string `mapstructure:"UPLOAD_DIR"`
	UploadUniqueNames bool   `mapstructure:"UPLOAD_UNIQUE_NAMES"`
	MaxUploadSizeMB   int64  `mapstructure:"MAX_UPLOAD_MB"`

	Classifier Classifier `mapstructure:",squash"`
}

// Classifier holds the settings of the inference demo binary.
type Classifier struct {
	Port           string `mapstructure:"CLASSIFIER_PORT"`
	ModelBackend   string `mapstructure:"MODEL_BACKEND"`
	ModelPath      string `mapstructure:"MODEL_PATH"`
	LabelsPath     string `mapstructure:"LABELS_PATH"`
	ModelInputName string `mapstructure:"MODEL_INPUT_NAME"`
	ModelOutput    string `mapstructure:"MODEL_OUTPUT_NAME"`
	NumClasses     int    `mapstructure:"MODEL_NUM_CLASSES"`
	Layout         string `mapstructure:"MODEL_LAYOUT"`
	ModelURL       string `mapstructure:"MODEL_URL"`
	ModelName      string `mapstructure:"MODEL_NAME"`
	ORTLibraryPath string `mapstructure:"ORT_LIBRARY_PATH"`
	TopK           int    `mapstructure:"TOP_K"`
	ImageSize      int    `mapstructure:"IMAGE_SIZE"`
	MaxPixels      int    `mapstructure:"IMAGE_MAX_PIXELS"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "dev")
	v.SetDefault("BIND_HOST", "0.0.0.0")
	v.SetDefault("PORT", "5000")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_UNIQUE_NAMES", false)
	v.SetDefault("MAX_UPLOAD_MB", 20)

	v.SetDefault("CLASSIFIER_PORT", "7860")
	v.SetDefault("MODEL_BACKEND", "onnx")
	v.SetDefault("MODEL_PATH", "model.onnx")
	v.SetDefault("LABELS_PATH", "class_indices.json")
	v.SetDefault("MODEL_INPUT_NAME", "input")
	v.SetDefault("MODEL_OUTPUT_NAME", "output")
	v.SetDefault("MODEL_NUM_CLASSES", 0)
	v.SetDefault("MODEL_LAYOUT", "NHWC")
	v.SetDefault("MODEL_URL", "")
	v.SetDefault("MODEL_NAME", "classifier")
	v.SetDefault("ORT_LIBRARY_PATH", "")
	v.SetDefault("TOP_K", 3)
	v.SetDefault("IMAGE_SIZE", 224)
	v.SetDefault("IMAGE_MAX_PIXELS", 40_000_000)
}
