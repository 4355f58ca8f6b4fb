package dataset

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"cinecluster/internal/logging"
	"cinecluster/internal/metrics"
)

type Algorithm string

const (
	PCA Algorithm = "pca"
	NMF Algorithm = "nmf"
)

// Algorithms en el orden en que se muestran y se cargan.
var Algorithms = []Algorithm{PCA, NMF}

var (
	ErrUnknownAlgorithm = errors.New("algoritmo de clustering desconocido (pca|nmf)")
	ErrNotLoaded        = errors.New("dataset no cargado")
)

// ParseAlgorithm acepta "pca"/"nmf" sin importar mayúsculas; vacío = pca.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pca":
		return PCA, nil
	case "nmf":
		return NMF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// Registry mantiene los datasets cargados durante toda la vida del proceso.
type Registry struct {
	paths map[Algorithm]string

	mu     sync.RWMutex
	tables map[Algorithm]*Table
}

func NewRegistry(paths map[Algorithm]string) *Registry {
	return &Registry{paths: paths, tables: map[Algorithm]*Table{}}
}

// NewRegistryFromTables arma un registry con tablas ya cargadas (tests, CLI).
func NewRegistryFromTables(tables ...*Table) *Registry {
	r := &Registry{paths: map[Algorithm]string{}, tables: map[Algorithm]*Table{}}
	for _, t := range tables {
		r.paths[t.Algorithm] = t.Path
		r.tables[t.Algorithm] = t
	}
	return r
}

// Load lee todos los archivos. Si alguno falla no se reemplaza nada: los
// lectores siguen viendo las tablas anteriores.
func (r *Registry) Load() error {
	next := make(map[Algorithm]*Table, len(r.paths))
	for _, algo := range Algorithms {
		path, ok := r.paths[algo]
		if !ok {
			continue
		}
		t, err := Load(algo, path)
		if err != nil {
			metrics.DatasetReloads.WithLabelValues("error").Inc()
			return err
		}
		next[algo] = t
	}

	r.mu.Lock()
	r.tables = next
	r.mu.Unlock()

	for algo, t := range next {
		metrics.DatasetRows.WithLabelValues(string(algo)).Set(float64(len(t.Rows)))
		metrics.DatasetSkippedRows.WithLabelValues(string(algo)).Set(float64(t.Skipped))
		logging.Info().
			Str("algo", string(algo)).
			Str("path", t.Path).
			Int("rows", len(t.Rows)).
			Int("skipped", t.Skipped).
			Msg("[dataset] cargado")
	}
	metrics.DatasetReloads.WithLabelValues("ok").Inc()
	return nil
}

// Reload vuelve a leer los CSV (endpoint de admin).
func (r *Registry) Reload() error {
	return r.Load()
}

func (r *Registry) Get(algo Algorithm) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[algo]
	if !ok {
		if _, known := r.paths[algo]; !known {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
		}
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, algo)
	}
	return t, nil
}

// Titles une los títulos de todos los datasets sin repetir, en orden de aparición
// (primero PCA, luego NMF).
func (r *Registry) Titles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, algo := range Algorithms {
		t, ok := r.tables[algo]
		if !ok {
			continue
		}
		for _, m := range t.Rows {
			if _, dup := seen[m.Title]; dup {
				continue
			}
			seen[m.Title] = struct{}{}
			out = append(out, m.Title)
		}
	}
	return out
}
