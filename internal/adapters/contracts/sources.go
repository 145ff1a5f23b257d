package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gmonad/gmd-deploy/internal/domain/models"
)

// solcMetadata is the subset of solc's metadata JSON used here
type solcMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Sources map[string]struct {
		Content string `json:"content"`
	} `json:"sources"`
}

// hardhatDebugFile points from an artifact to its build info
type hardhatDebugFile struct {
	BuildInfo string `json:"buildInfo"`
}

// hardhatBuildInfo is the subset of a Hardhat build-info file used here
type hardhatBuildInfo struct {
	SolcVersion     string `json:"solcVersion"`
	SolcLongVersion string `json:"solcLongVersion"`
	Input           struct {
		Sources map[string]struct {
			Content string `json:"content"`
		} `json:"sources"`
	} `json:"input"`
	Output struct {
		Contracts map[string]map[string]struct {
			Metadata string `json:"metadata"`
		} `json:"contracts"`
	} `json:"output"`
}

// SourceBundle collects metadata and sources for source verification
func (r *Repository) SourceBundle(ctx context.Context, artifact *models.Artifact) (*models.SourceBundle, error) {
	if artifact.RawMetadata != "" {
		return r.foundryBundle(artifact)
	}
	return r.hardhatBundle(artifact)
}

// foundryBundle reads sources from disk as listed in the artifact metadata
func (r *Repository) foundryBundle(artifact *models.Artifact) (*models.SourceBundle, error) {
	var meta solcMetadata
	if err := json.Unmarshal([]byte(artifact.RawMetadata), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse metadata of %s: %w", artifact.ContractName, err)
	}

	sources := make(map[string]string, len(meta.Sources))
	for name, src := range meta.Sources {
		if src.Content != "" {
			sources[name] = src.Content
			continue
		}
		content, err := os.ReadFile(filepath.Join(r.projectRoot, filepath.FromSlash(name)))
		if err != nil {
			return nil, fmt.Errorf("source %s of %s not found: %w", name, artifact.ContractName, err)
		}
		sources[name] = string(content)
	}

	return &models.SourceBundle{
		CompilerVersion: meta.Compiler.Version,
		Metadata:        artifact.RawMetadata,
		Sources:         sources,
	}, nil
}

// hardhatBundle follows the .dbg.json file to the build info
func (r *Repository) hardhatBundle(artifact *models.Artifact) (*models.SourceBundle, error) {
	info, err := r.buildInfo(artifact)
	if err != nil {
		return nil, err
	}

	contracts, ok := info.Output.Contracts[artifact.SourceName]
	if !ok {
		return nil, fmt.Errorf("build info has no output for %s", artifact.SourceName)
	}
	output, ok := contracts[artifact.ContractName]
	if !ok || output.Metadata == "" {
		return nil, fmt.Errorf("build info has no metadata for %s (enable outputSelection metadata)", artifact.FullyQualifiedName())
	}

	// Only the sources the contract was compiled from
	var meta solcMetadata
	if err := json.Unmarshal([]byte(output.Metadata), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse metadata of %s: %w", artifact.ContractName, err)
	}

	sources := make(map[string]string, len(meta.Sources))
	for name := range meta.Sources {
		src, ok := info.Input.Sources[name]
		if !ok {
			return nil, fmt.Errorf("build info is missing source %s", name)
		}
		sources[name] = src.Content
	}

	version := info.SolcLongVersion
	if version == "" {
		version = meta.Compiler.Version
	}

	return &models.SourceBundle{
		CompilerVersion: version,
		Metadata:        output.Metadata,
		Sources:         sources,
	}, nil
}

func (r *Repository) buildInfo(artifact *models.Artifact) (*hardhatBuildInfo, error) {
	if artifact.Path == "" {
		return nil, fmt.Errorf("artifact %s has no path", artifact.ContractName)
	}

	dbgPath := strings.TrimSuffix(artifact.Path, ".json") + ".dbg.json"
	data, err := os.ReadFile(dbgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.relative(dbgPath), err)
	}

	var dbg hardhatDebugFile
	if err := json.Unmarshal(data, &dbg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", r.relative(dbgPath), err)
	}
	if dbg.BuildInfo == "" {
		return nil, fmt.Errorf("%s does not reference a build info", r.relative(dbgPath))
	}

	buildInfoPath := filepath.Join(filepath.Dir(dbgPath), filepath.FromSlash(dbg.BuildInfo))
	data, err = os.ReadFile(buildInfoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read build info: %w", err)
	}

	var info hardhatBuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse build info %s: %w", r.relative(buildInfoPath), err)
	}
	return &info, nil
}
