package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	log "github.com/sirupsen/logrus"

	"churn-insight-service/internal/core/domain"
	ports "churn-insight-service/internal/core/ports/output"
)

const DefaultPath = "model.json"

type fileLoader struct {
	path string
}

// NewFileLoader reads the classifier artifact at path on every Load.
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
func NewFileLoader(path string) ports.ArtifactLoader {
	if path == "" {
		path = DefaultPath
	}
	return &fileLoader{path: path}
}

func (l *fileLoader) Path() string {
	return l.path
}

func (l *fileLoader) Load(ctx context.Context) (ports.Classifier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", domain.ErrArtifactMissing, l.path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrArtifactMissing, l.path, err)
	}

	classifier, doc, err := parse(l.path, payload)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"path":       l.path,
		"model_type": classifier.ModelType(),
		"version":    doc.Version,
		"features":   len(doc.FeatureNames),
	}).Debug("model artifact loaded")

	return classifier, nil
}

// Decode parses an artifact document without touching the filesystem.
func Decode(name string, payload []byte) (ports.Classifier, error) {
	classifier, _, err := parse(name, payload)
	return classifier, err
}

func parse(name string, payload []byte) (ports.Classifier, *document, error) {
	doc, err := decode(name, payload)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: decode %s: %v", domain.ErrArtifactMissing, name, err)
	}
	classifier, err := doc.build()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", domain.ErrArtifactMissing, name, err)
	}
	return classifier, doc, nil
}

func decode(name string, payload []byte) (*document, error) {
	var doc document
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(payload, &doc); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}
