package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"

	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/domain/config"
	"github.com/gmonad/gmd-deploy/internal/domain/models"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		ProjectRoot: "/project",
		ConfigPath:  "/project/deploy.toml",
		Network: &config.Network{
			Name:    "monadTestnet",
			RPCURL:  "https://rpc.monad.example/v1/secret",
			ChainID: 10143,
		},
		Project: &config.ProjectConfig{
			Compiler: config.CompilerConfig{Version: "0.8.28"},
			Sourcify: config.SourcifyConfig{Enabled: true},
		},
		Token: models.DefaultTokenParams(),
	}
}

// MockSignerProvider is a mock implementation of SignerProvider
type MockSignerProvider struct {
	mock.Mock
}

func (m *MockSignerProvider) Signers(ctx context.Context) ([]*models.Signer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Signer), args.Error(1)
}

// mockProxyDeployer records requests and hands out handles
type mockProxyDeployer struct {
	deployFunc func(context.Context, *models.Signer, usecase.ProxyDeployRequest) (usecase.DeploymentHandle, error)
	requests   []usecase.ProxyDeployRequest
}

func (m *mockProxyDeployer) DeployProxy(ctx context.Context, signer *models.Signer, req usecase.ProxyDeployRequest) (usecase.DeploymentHandle, error) {
	m.requests = append(m.requests, req)
	if m.deployFunc != nil {
		return m.deployFunc(ctx, signer, req)
	}
	return nil, fmt.Errorf("no deploy func")
}

// sequentialDeployer returns a fresh address for every deployment
func sequentialDeployer() *mockProxyDeployer {
	n := 0
	return &mockProxyDeployer{
		deployFunc: func(context.Context, *models.Signer, usecase.ProxyDeployRequest) (usecase.DeploymentHandle, error) {
			n++
			return &mockHandle{address: common.BigToAddress(big.NewInt(int64(0xabc000 + n)))}, nil
		},
	}
}

type mockHandle struct {
	address  common.Address
	waitErr  error
	addrErr  error
	waited   bool
	readAddr bool
}

func (h *mockHandle) WaitForDeployment(ctx context.Context) error {
	h.waited = true
	return h.waitErr
}

func (h *mockHandle) GetAddress(ctx context.Context) (common.Address, error) {
	h.readAddr = true
	return h.address, h.addrErr
}

func (h *mockHandle) Info() models.ProxyDeployment {
	return models.ProxyDeployment{Kind: models.ProxyKindUUPS, Proxy: h.address}
}

// recordingProgress captures progress events
type recordingProgress struct {
	events []usecase.ProgressEvent
}

func (p *recordingProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	p.events = append(p.events, event)
}
func (p *recordingProgress) Info(string)  {}
func (p *recordingProgress) Error(string) {}

func (p *recordingProgress) stages() []string {
	stages := make([]string, 0, len(p.events))
	for _, e := range p.events {
		stages = append(stages, e.Stage)
	}
	return stages
}

// MockProxyInspector is a mock implementation of ProxyInspector
type MockProxyInspector struct {
	mock.Mock
}

func (m *MockProxyInspector) InspectProxy(ctx context.Context, proxy common.Address) (*models.ProxyInfo, error) {
	args := m.Called(ctx, proxy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProxyInfo), args.Error(1)
}

// mockArtifacts serves artifacts from a map
type mockArtifacts struct {
	artifacts map[string]*models.Artifact
}

func (m *mockArtifacts) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if a, ok := m.artifacts[name]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
}

func (m *mockArtifacts) SourceBundle(ctx context.Context, artifact *models.Artifact) (*models.SourceBundle, error) {
	return &models.SourceBundle{
		CompilerVersion: "0.8.28+commit.7893614a",
		Metadata:        "{}",
		Sources:         map[string]string{artifact.SourceName: "// SPDX"},
	}, nil
}

// mockVerifier returns statuses from verifyFunc
type mockVerifier struct {
	verifyFunc func(context.Context, *usecase.VerificationTarget) map[string]models.VerifierStatus
	targets    []*usecase.VerificationTarget
}

func (m *mockVerifier) Verify(ctx context.Context, target *usecase.VerificationTarget) map[string]models.VerifierStatus {
	m.targets = append(m.targets, target)
	return m.verifyFunc(ctx, target)
}

// mockNetworkResolver resolves from a fixed set
type mockNetworkResolver struct {
	networks map[string]*config.Network
	names    []string
}

func (m *mockNetworkResolver) GetNetworks(ctx context.Context) []string {
	return m.names
}

func (m *mockNetworkResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	if n, ok := m.networks[name]; ok {
		return n, nil
	}
	return nil, domain.NetworkNotFoundErr{Name: name}
}

// mockChainChecker answers chain IDs per RPC URL
type mockChainChecker struct {
	chainIDs map[string]uint64
	calls    int
}

func (m *mockChainChecker) ChainID(ctx context.Context, rpcURL string) (uint64, error) {
	m.calls++
	if id, ok := m.chainIDs[rpcURL]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("dial %s: connection refused", rpcURL)
}
