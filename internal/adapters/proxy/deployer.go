package proxy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/samber/lo"

	"github.com/gmonad/gmd-deploy/internal/adapters/blockchain"
	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/domain/config"
	"github.com/gmonad/gmd-deploy/internal/domain/models"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// uupsMarker is the function every UUPS implementation exposes
const uupsMarker = "proxiableUUID"

// BackendProvider hands out the RPC connection of the selected network
type BackendProvider interface {
	Backend(ctx context.Context) (blockchain.Backend, *big.Int, error)
}

type deployFunc func(opts *bind.TransactOpts, contractABI abi.ABI, code []byte, backend bind.ContractBackend, params ...any) (common.Address, *types.Transaction, error)

type waitFunc func(ctx context.Context, backend bind.DeployBackend, tx *types.Transaction) (*types.Receipt, error)

// Deployer deploys an implementation contract behind an OpenZeppelin proxy
type Deployer struct {
	config    *config.RuntimeConfig
	backends  BackendProvider
	artifacts usecase.ArtifactRepository
	log       *slog.Logger

	deploy    deployFunc
	waitMined waitFunc
}

// NewDeployer creates a new proxy deployer
func NewDeployer(
	cfg *config.RuntimeConfig,
	backends BackendProvider,
	artifacts usecase.ArtifactRepository,
	log *slog.Logger,
) *Deployer {
	return &Deployer{
		config:    cfg,
		backends:  backends,
		artifacts: artifacts,
		log:       log.With("component", "proxy"),
		deploy:    deployContract,
		waitMined: bind.WaitMined,
	}
}

func deployContract(opts *bind.TransactOpts, contractABI abi.ABI, code []byte, backend bind.ContractBackend, params ...any) (common.Address, *types.Transaction, error) {
	address, tx, _, err := bind.DeployContract(opts, contractABI, code, backend, params...)
	return address, tx, err
}

// compiledContract is an artifact with its ABI and creation code decoded
type compiledContract struct {
	artifact *models.Artifact
	abi      *abi.ABI
	code     []byte
}

func (d *Deployer) load(ctx context.Context, name string) (*compiledContract, error) {
	artifact, err := d.artifacts.GetArtifact(ctx, name)
	if err != nil {
		return nil, err
	}
	parsed, err := artifact.ParseABI()
	if err != nil {
		return nil, err
	}
	code, err := artifact.CreationCode()
	if err != nil {
		return nil, err
	}
	return &compiledContract{artifact: artifact, abi: parsed, code: code}, nil
}

// DeployProxy deploys the implementation, waits for it to be mined, then
// submits the proxy whose constructor runs the initializer.
func (d *Deployer) DeployProxy(ctx context.Context, signer *models.Signer, req usecase.ProxyDeployRequest) (usecase.DeploymentHandle, error) {
	impl, err := d.load(ctx, req.Contract)
	if err != nil {
		return nil, err
	}
	if err := d.checkCompiler(impl.artifact); err != nil {
		return nil, err
	}

	initData, err := EncodeInitializer(impl.abi, req.Initializer, req.Args...)
	if err != nil {
		return nil, err
	}

	kind := ResolveKind(req.Kind, impl.abi)
	proxy, err := d.load(ctx, models.ProxyContractName(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s proxy (compile @openzeppelin/contracts proxies in the project): %w", kind, err)
	}

	backend, chainID, err := d.backends.Backend(ctx)
	if err != nil {
		return nil, err
	}

	auth, err := bind.NewKeyedTransactorWithChainID(signer.Key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	implAddr, implTx, err := d.deploy(auth, *impl.abi, impl.code, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s implementation: %w", req.Contract, err)
	}
	d.log.Debug("implementation submitted", "address", implAddr, "tx", implTx.Hash())

	if err := d.confirm(ctx, backend, implTx, "implementation"); err != nil {
		return nil, err
	}

	proxyAddr, proxyTx, err := d.deploy(auth, *proxy.abi, proxy.code, backend,
		ProxyConstructorArgs(kind, implAddr, signer.Address, initData)...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", proxy.artifact.ContractName, err)
	}
	d.log.Debug("proxy submitted", "address", proxyAddr, "tx", proxyTx.Hash(), "kind", kind)

	return &handle{
		deployer: d,
		backend:  backend,
		tx:       proxyTx,
		info: models.ProxyDeployment{
			Kind:             kind,
			Proxy:            proxyAddr,
			Implementation:   implAddr,
			ProxyTx:          proxyTx.Hash(),
			ImplementationTx: implTx.Hash(),
		},
	}, nil
}

// confirm waits for tx to be mined and checks it succeeded
func (d *Deployer) confirm(ctx context.Context, backend bind.DeployBackend, tx *types.Transaction, what string) error {
	receipt, err := d.waitMined(ctx, backend, tx)
	if err != nil {
		return fmt.Errorf("failed waiting for %s tx %s: %w", what, tx.Hash().Hex(), err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return fmt.Errorf("%w: %s tx %s", domain.ErrDeploymentReverted, what, tx.Hash().Hex())
	}
	return nil
}

// checkCompiler rejects artifacts built with another solc than deploy.toml pins
func (d *Deployer) checkCompiler(artifact *models.Artifact) error {
	if d.config.Project == nil || d.config.Project.Compiler.Version == "" || artifact.CompilerVersion == "" {
		return nil
	}
	want := models.ShortVersion(d.config.Project.Compiler.Version)
	got := models.ShortVersion(artifact.CompilerVersion)
	if want != got {
		return fmt.Errorf("%w: %s was built with solc %s, deploy.toml expects %s (recompile)",
			domain.ErrCompilerMismatch, artifact.ContractName, got, want)
	}
	return nil
}

// ResolveKind picks the proxy kind, detecting UUPS implementations in auto mode
func ResolveKind(kind models.ProxyKind, implABI *abi.ABI) models.ProxyKind {
	if kind != models.ProxyKindAuto && kind != "" {
		return kind
	}
	if _, ok := implABI.Methods[uupsMarker]; ok {
		return models.ProxyKindUUPS
	}
	return models.ProxyKindTransparent
}

// ProxyConstructorArgs returns the constructor arguments of the proxy contract
func ProxyConstructorArgs(kind models.ProxyKind, impl, owner common.Address, initData []byte) []any {
	if kind == models.ProxyKindTransparent {
		return []any{impl, owner, initData}
	}
	return []any{impl, initData}
}

// EncodeInitializer packs the initializer call of the implementation
func EncodeInitializer(implABI *abi.ABI, initializer string, args ...any) ([]byte, error) {
	method, ok := implABI.Methods[initializer]
	if !ok {
		available := lo.Filter(lo.Keys(implABI.Methods), func(name string, _ int) bool {
			return strings.HasPrefix(name, "init")
		})
		sort.Strings(available)
		if len(available) > 0 {
			return nil, fmt.Errorf("%w: %s (available: %s)", domain.ErrInitializerNotFound, initializer, strings.Join(available, ", "))
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrInitializerNotFound, initializer)
	}
	if len(method.Inputs) != len(args) {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", method.Sig, len(method.Inputs), len(args))
	}

	data, err := implABI.Pack(initializer, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s arguments: %w", method.Sig, err)
	}
	return data, nil
}

// handle tracks the submitted proxy transaction
type handle struct {
	deployer *Deployer
	backend  bind.DeployBackend
	tx       *types.Transaction
	info     models.ProxyDeployment
	mined    bool
}

// WaitForDeployment blocks until the proxy is mined and has code
func (h *handle) WaitForDeployment(ctx context.Context) error {
	if err := h.deployer.confirm(ctx, h.backend, h.tx, "proxy"); err != nil {
		return err
	}

	code, err := h.backend.CodeAt(ctx, h.info.Proxy, nil)
	if err != nil {
		return fmt.Errorf("failed to read proxy code: %w", err)
	}
	if len(code) == 0 {
		return fmt.Errorf("%w: no code at %s", domain.ErrDeploymentReverted, h.info.Proxy.Hex())
	}
	h.mined = true
	return nil
}

// GetAddress returns the proxy address once the deployment is confirmed
func (h *handle) GetAddress(ctx context.Context) (common.Address, error) {
	if !h.mined {
		return common.Address{}, errors.New("proxy deployment not confirmed yet")
	}
	return h.info.Proxy, nil
}

func (h *handle) Info() models.ProxyDeployment {
	return h.info
}
