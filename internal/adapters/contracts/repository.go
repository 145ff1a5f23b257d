package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/domain/config"
	"github.com/gmonad/gmd-deploy/internal/domain/models"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// Repository indexes compiled artifacts under the artifacts directory.
// Hardhat (artifacts/) and Foundry (out/) layouts are both understood.
type Repository struct {
	projectRoot  string
	artifactsDir string
	log          *slog.Logger

	mu      sync.RWMutex
	indexed bool
	byName  map[string][]string // contract name -> artifact paths
	byFQN   map[string]string   // sourceName:ContractName -> artifact path
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		projectRoot:  cfg.ProjectRoot,
		artifactsDir: cfg.ArtifactsDir,
		log:          log.With("component", "artifacts"),
	}
}

// artifactHeader is the part of an artifact needed for indexing
type artifactHeader struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	Bytecode     json.RawMessage `json:"bytecode"`
	Metadata     struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

// names returns sourceName and contractName, falling back to Foundry's compilation target
func (h *artifactHeader) names() (string, string) {
	if h.ContractName != "" {
		return h.SourceName, h.ContractName
	}
	for source, contract := range h.Metadata.Settings.CompilationTarget {
		return source, contract
	}
	return "", ""
}

// Index walks the artifacts directory. It runs once, on first lookup.
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if _, err := os.Stat(r.artifactsDir); err != nil {
		return fmt.Errorf("%w: artifacts directory %s does not exist (compile the contracts first)",
			domain.ErrArtifactNotFound, r.relative(r.artifactsDir))
	}

	r.byName = make(map[string][]string)
	r.byFQN = make(map[string]string)

	err := filepath.Walk(r.artifactsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		return r.indexArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.indexed = true
	r.log.Debug("indexed artifacts", "dir", r.artifactsDir, "contracts", len(r.byName))
	return nil
}

func (r *Repository) indexArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var header artifactHeader
	if err := json.Unmarshal(data, &header); err != nil {
		// Not an artifact (cache files and the like)
		return nil
	}

	sourceName, contractName := header.names()
	if contractName == "" || len(header.Bytecode) == 0 {
		return nil
	}

	r.byName[contractName] = append(r.byName[contractName], path)
	if sourceName != "" {
		r.byFQN[sourceName+":"+contractName] = path
	}
	return nil
}

// GetArtifact loads an artifact by contract name or sourceName:ContractName
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}

	path, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	return r.load(path)
}

func (r *Repository) lookup(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.Contains(name, ":") {
		if path, ok := r.byFQN[name]; ok {
			return path, nil
		}
		return "", r.notFound(name)
	}

	paths := r.byName[name]
	switch len(paths) {
	case 0:
		return "", r.notFound(name)
	case 1:
		return paths[0], nil
	default:
		return "", domain.AmbiguousArtifactErr{
			Name:  name,
			Paths: lo.Map(paths, func(p string, _ int) string { return r.relative(p) }),
		}
	}
}

func (r *Repository) notFound(name string) error {
	names := lo.Keys(r.byName)
	sort.Strings(names)

	contractName := name
	if i := strings.LastIndex(name, ":"); i >= 0 {
		contractName = name[i+1:]
	}

	matches := fuzzy.Find(contractName, names)
	suggestions := lo.Map(matches, func(m fuzzy.Match, _ int) string { return m.Str })
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}

	if len(suggestions) > 0 {
		return fmt.Errorf("%w: %s in %s (did you mean %s?)",
			domain.ErrArtifactNotFound, name, r.relative(r.artifactsDir), strings.Join(suggestions, ", "))
	}
	return fmt.Errorf("%w: %s in %s", domain.ErrArtifactNotFound, name, r.relative(r.artifactsDir))
}

func (r *Repository) load(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", r.relative(path), err)
	}
	artifact.Path = path

	if artifact.ContractName == "" {
		var header artifactHeader
		if err := json.Unmarshal(data, &header); err == nil {
			artifact.SourceName, artifact.ContractName = header.names()
		}
	}

	if artifact.RawMetadata != "" {
		var meta solcMetadata
		if err := json.Unmarshal([]byte(artifact.RawMetadata), &meta); err == nil {
			artifact.CompilerVersion = meta.Compiler.Version
		}
	} else if info, err := r.buildInfo(&artifact); err == nil {
		artifact.CompilerVersion = info.SolcLongVersion
	} else {
		r.log.Debug("no build info for artifact", "artifact", artifact.ContractName, "error", err)
	}

	return &artifact, nil
}

// relative shortens a path for messages
func (r *Repository) relative(path string) string {
	if rel, err := filepath.Rel(r.projectRoot, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
