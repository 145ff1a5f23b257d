package contracts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/domain/config"
)

const tokenABI = `[{"type":"function","name":"initialize","inputs":[{"name":"name_","type":"string"},{"name":"symbol_","type":"string"},{"name":"initialSupply","type":"uint256"},{"name":"cap_","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},{"type":"function","name":"proxiableUUID","inputs":[],"outputs":[{"type":"bytes32"}],"stateMutability":"view"}]`

const tokenMetadata = `{"compiler":{"version":"0.8.28+commit.7893614a"},"language":"Solidity","sources":{"contracts/Token.sol":{"keccak256":"0x01"}}}`

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func newTestRepository(root, artifactsDir string) *Repository {
	cfg := &config.RuntimeConfig{ProjectRoot: root, ArtifactsDir: filepath.Join(root, artifactsDir)}
	return NewRepository(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func hardhatProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"artifacts/contracts/Token.sol/Token.json": `{
			"_format": "hh-sol-artifact-1",
			"contractName": "Token",
			"sourceName": "contracts/Token.sol",
			"abi": ` + tokenABI + `,
			"bytecode": "0x6080604052"
		}`,
		"artifacts/contracts/Token.sol/Token.dbg.json": `{"_format":"hh-sol-dbg-1","buildInfo":"../../build-info/abc123.json"}`,
		"artifacts/contracts/interfaces/IToken.sol/IToken.json": `{
			"contractName": "IToken",
			"sourceName": "contracts/interfaces/IToken.sol",
			"abi": [],
			"bytecode": "0x"
		}`,
		"artifacts/build-info/abc123.json": `{
			"solcVersion": "0.8.28",
			"solcLongVersion": "0.8.28+commit.7893614a",
			"input": {"sources": {
				"contracts/Token.sol": {"content": "contract Token {}"},
				"contracts/Other.sol": {"content": "contract Other {}"}
			}},
			"output": {"contracts": {"contracts/Token.sol": {"Token": {"metadata": ` + jsonString(tokenMetadata) + `}}}}
		}`,
	})
	return root
}

func jsonString(s string) string {
	out := `"`
	for _, c := range s {
		if c == '"' {
			out += `\"`
			continue
		}
		out += string(c)
	}
	return out + `"`
}

func TestRepository_Hardhat(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(hardhatProject(t), "artifacts")

	artifact, err := repo.GetArtifact(ctx, "Token")
	require.NoError(t, err)
	assert.Equal(t, "Token", artifact.ContractName)
	assert.Equal(t, "contracts/Token.sol", artifact.SourceName)
	assert.Equal(t, "0.8.28+commit.7893614a", artifact.CompilerVersion)

	code, err := artifact.CreationCode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, code)

	parsed, err := artifact.ParseABI()
	require.NoError(t, err)
	assert.Contains(t, parsed.Methods, "initialize")

	byFQN, err := repo.GetArtifact(ctx, "contracts/Token.sol:Token")
	require.NoError(t, err)
	assert.Equal(t, artifact.Path, byFQN.Path)

	bundle, err := repo.SourceBundle(ctx, artifact)
	require.NoError(t, err)
	assert.Equal(t, "0.8.28+commit.7893614a", bundle.CompilerVersion)
	assert.Equal(t, map[string]string{"contracts/Token.sol": "contract Token {}"}, bundle.Sources)
	assert.JSONEq(t, tokenMetadata, bundle.Metadata)
}

func TestRepository_Foundry(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"out/Token.sol/Token.json": `{
			"abi": ` + tokenABI + `,
			"bytecode": {"object": "0x6080604052", "linkReferences": {}},
			"metadata": {"settings": {"compilationTarget": {"src/Token.sol": "Token"}}},
			"rawMetadata": ` + jsonString(`{"compiler":{"version":"0.8.28+commit.7893614a"},"sources":{"src/Token.sol":{"keccak256":"0x01"}}}`) + `
		}`,
		"out/build-info/ignored.json": `{"id":"x"}`,
		"src/Token.sol":               "contract Token {}",
	})
	repo := newTestRepository(root, "out")

	artifact, err := repo.GetArtifact(ctx, "Token")
	require.NoError(t, err)
	assert.Equal(t, "Token", artifact.ContractName)
	assert.Equal(t, "src/Token.sol", artifact.SourceName)
	assert.Equal(t, "0.8.28+commit.7893614a", artifact.CompilerVersion)

	bundle, err := repo.SourceBundle(ctx, artifact)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"src/Token.sol": "contract Token {}"}, bundle.Sources)
}

func TestRepository_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing artifacts dir", func(t *testing.T) {
		repo := newTestRepository(t.TempDir(), "artifacts")
		_, err := repo.GetArtifact(ctx, "Token")
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
		assert.Contains(t, err.Error(), "compile the contracts first")
	})

	t.Run("unknown name suggests close matches", func(t *testing.T) {
		repo := newTestRepository(hardhatProject(t), "artifacts")
		_, err := repo.GetArtifact(ctx, "Tokn")
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
		assert.Contains(t, err.Error(), "did you mean")
		assert.Contains(t, err.Error(), "Token")
	})

	t.Run("ambiguous name", func(t *testing.T) {
		root := hardhatProject(t)
		writeFiles(t, root, map[string]string{
			"artifacts/contracts/legacy/Token.sol/Token.json": `{"contractName":"Token","sourceName":"contracts/legacy/Token.sol","abi":[],"bytecode":"0x6080"}`,
		})
		repo := newTestRepository(root, "artifacts")

		_, err := repo.GetArtifact(ctx, "Token")
		var ambiguous domain.AmbiguousArtifactErr
		require.True(t, errors.As(err, &ambiguous))
		assert.Len(t, ambiguous.Paths, 2)

		artifact, err := repo.GetArtifact(ctx, "contracts/legacy/Token.sol:Token")
		require.NoError(t, err)
		assert.Equal(t, "contracts/legacy/Token.sol", artifact.SourceName)
	})

	t.Run("interface has no creation code", func(t *testing.T) {
		repo := newTestRepository(hardhatProject(t), "artifacts")
		artifact, err := repo.GetArtifact(ctx, "IToken")
		require.NoError(t, err)
		_, err = artifact.CreationCode()
		assert.Error(t, err)
	})

	t.Run("hardhat artifact without build info", func(t *testing.T) {
		root := hardhatProject(t)
		require.NoError(t, os.Remove(filepath.Join(root, "artifacts/contracts/Token.sol/Token.dbg.json")))
		repo := newTestRepository(root, "artifacts")

		artifact, err := repo.GetArtifact(ctx, "Token")
		require.NoError(t, err)
		assert.Empty(t, artifact.CompilerVersion)

		_, err = repo.SourceBundle(ctx, artifact)
		assert.Error(t, err)
	})
}
