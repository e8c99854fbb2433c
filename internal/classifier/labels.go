package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
)

// Labels is the inverted class index of a model: output position -> name.
type Labels struct {
	byIndex map[int]string
	size    int
}

// LoadLabels reads a {"name": index} JSON file and inverts it.
func LoadLabels(path string, logger zerolog.Logger) (*Labels, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	var byName map[string]int
	if err := json.Unmarshal(raw, &byName); err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	return NewLabels(byName, logger), nil
}

// NewLabels inverts byName. When two names share an index the
// alphabetically first one is kept and the clash is logged.
func NewLabels(byName map[string]int, logger zerolog.Logger) *Labels {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	l := &Labels{byIndex: make(map[int]string, len(byName))}
	for _, name := range names {
		idx := byName[name]
		if prev, ok := l.byIndex[idx]; ok {
			logger.Warn().
				Int("index", idx).
				Str("kept", prev).
				Str("dropped", name).
				Msg("duplicate class index in label map")
			continue
		}
		l.byIndex[idx] = name
		if idx+1 > l.size {
			l.size = idx + 1
		}
	}
	return l
}

func (l *Labels) Name(idx int) string {
	if name, ok := l.byIndex[idx]; ok {
		return name
	}
	return fmt.Sprintf("Unknown_%d", idx)
}

// Size is one past the highest known index.
func (l *Labels) Size() int {
	return l.size
}
