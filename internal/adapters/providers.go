package adapters

import (
	"github.com/google/wire"

	"github.com/gmonad/gmd-deploy/internal/adapters/blockchain"
	"github.com/gmonad/gmd-deploy/internal/adapters/contracts"
	"github.com/gmonad/gmd-deploy/internal/adapters/interactive"
	"github.com/gmonad/gmd-deploy/internal/adapters/proxy"
	"github.com/gmonad/gmd-deploy/internal/adapters/senders"
	"github.com/gmonad/gmd-deploy/internal/adapters/verification"
	"github.com/gmonad/gmd-deploy/internal/config"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// BlockchainSet provides RPC-backed implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ChainChecker), new(*blockchain.Client)),
	wire.Bind(new(usecase.ProxyInspector), new(*blockchain.Client)),
	wire.Bind(new(proxy.BackendProvider), new(*blockchain.Client)),

	proxy.NewDeployer,
	wire.Bind(new(usecase.ProxyDeployer), new(*proxy.Deployer)),
)

// ContractsSet provides artifact loading
var ContractsSet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.Repository)),
)

// SendersSet provides signing accounts
var SendersSet = wire.NewSet(
	senders.NewManager,
	wire.Bind(new(usecase.SignerProvider), new(*senders.Manager)),
)

// VerificationSet provides source verifiers
var VerificationSet = wire.NewSet(
	verification.NewManager,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.Manager)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*config.NetworkResolver)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	BlockchainSet,
	ContractsSet,
	SendersSet,
	VerificationSet,
	InteractiveSet,
	ConfigSet,
)
