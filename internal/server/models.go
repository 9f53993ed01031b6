package server

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/example/go-subword/internal/bpe"
	"github.com/example/go-subword/internal/config"
)

// LineSegmenter segments one line of text into subword tokens.
type LineSegmenter interface {
	Segment(line string) string
}

// ModelInfo describes one loaded model for the listing endpoint.
type ModelInfo struct {
	Name        string `json:"name"`
	Separator   string `json:"separator"`
	CaseFeature bool   `json:"case_feature"`
}

// ModelStore resolves model names to loaded segmenters.
type ModelStore interface {
	Lookup(name string) (LineSegmenter, bool)
	List() []ModelInfo
}

// Model wraps one bpe.Segmenter for serving. The segmenter's word
// cache is not safe for concurrent mutation, so a mutex serializes
// all segmentation calls against one model.
type Model struct {
	info ModelInfo
	nfc  bool

	mu  sync.Mutex
	seg *bpe.Segmenter
}

// Segment runs one line through the model's segmenter.
func (m *Model) Segment(line string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.nfc {
		line = norm.NFC.String(line)
	}
	return m.seg.SegmentLine(line)
}

// Registry holds the models loaded at startup. Read-only after
// LoadModels; safe for concurrent lookups.
type Registry struct {
	models map[string]*Model
	order  []string
}

// LoadModels builds a Registry from the configured model definitions,
// loading each model's codes and optional vocabulary from disk.
func LoadModels(configs []config.ModelConfig) (*Registry, error) {
	r := &Registry{models: make(map[string]*Model)}

	for _, mc := range configs {
		if mc.Name == "" {
			return nil, fmt.Errorf("model with codes file %q has no name", mc.CodesFile)
		}
		if _, dup := r.models[mc.Name]; dup {
			return nil, fmt.Errorf("duplicate model name %q", mc.Name)
		}

		m, err := loadModel(mc)
		if err != nil {
			return nil, fmt.Errorf("load model %q: %w", mc.Name, err)
		}

		r.models[mc.Name] = m
		r.order = append(r.order, mc.Name)
	}

	return r, nil
}

func loadModel(mc config.ModelConfig) (*Model, error) {
	codes, err := bpe.LoadCodesFile(mc.CodesFile)
	if err != nil {
		return nil, err
	}

	separator := mc.Separator
	if separator == "" {
		separator = bpe.DefaultSeparator
	}

	opts := []bpe.Option{bpe.WithSeparator(separator)}

	if mc.VocabFile != "" {
		vocab, err := bpe.LoadVocabularyFile(mc.VocabFile, mc.VocabThreshold)
		if err != nil {
			return nil, err
		}
		opts = append(opts, bpe.WithVocabulary(vocab))
	}
	if len(mc.Glossaries) > 0 {
		opts = append(opts, bpe.WithGlossaries(mc.Glossaries...))
	}
	if mc.CaseFeature {
		opts = append(opts, bpe.WithCaseFeature())
	}
	if mc.CacheSize > 0 {
		opts = append(opts, bpe.WithCacheSize(mc.CacheSize))
	}

	return &Model{
		info: ModelInfo{
			Name:        mc.Name,
			Separator:   separator,
			CaseFeature: mc.CaseFeature,
		},
		nfc: mc.NFC,
		seg: bpe.NewSegmenter(codes, opts...),
	}, nil
}

// Lookup returns the model registered under name.
func (r *Registry) Lookup(name string) (LineSegmenter, bool) {
	m, ok := r.models[name]
	if !ok {
		return nil, false
	}
	return m, true
}

// List returns the loaded models in configuration order.
func (r *Registry) List() []ModelInfo {
	infos := make([]ModelInfo, 0, len(r.order))
	for _, name := range r.order {
		infos = append(infos, r.models[name].info)
	}
	return infos
}

// Names returns the model names in configuration order, for logging.
func (r *Registry) Names() string {
	return strings.Join(r.order, ",")
}
