package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	internalconfig "github.com/gmonad/gmd-deploy/internal/config"
	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/domain/config"
	"github.com/gmonad/gmd-deploy/internal/domain/models"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// ERC-1967 storage slots
var (
	// bytes32(uint256(keccak256("eip1967.proxy.implementation")) - 1)
	ImplementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")
	// bytes32(uint256(keccak256("eip1967.proxy.admin")) - 1)
	AdminSlot = common.HexToHash("0xb53127684a568b3173ae13b9f8a6016e243e63b6e8ee1178d6a717850b5d6103")
)

// Backend is what contract deployment needs from the RPC connection
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// stateReader is the subset of ethclient used to inspect deployed contracts
type stateReader interface {
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
}

// Client holds the RPC connection of the selected network. The connection
// is dialed on first use so commands that never touch the chain stay offline.
type Client struct {
	config *config.RuntimeConfig
	log    *slog.Logger

	mu      sync.Mutex
	client  *ethclient.Client
	url     string
	chainID *big.Int
}

// NewClient creates a new blockchain client
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{
		config: cfg,
		log:    log.With("component", "blockchain"),
	}
}

// Connect returns the client for the selected network, dialing it once and
// checking that the endpoint serves the configured chain.
func (c *Client) Connect(ctx context.Context) (*ethclient.Client, error) {
	network := c.config.Network
	if network == nil {
		return nil, domain.ErrNoNetwork
	}
	if network.RPCURL == "" {
		return nil, fmt.Errorf("network %s has no RPC URL (set %s in .env)",
			network.Name, internalconfig.GenerateEnvVarName(network.Name, "RPC_URL"))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil && c.url == network.RPCURL {
		return c.client, nil
	}
	return c.dial(ctx, network)
}

func (c *Client) dial(ctx context.Context, network *config.Network) (*ethclient.Client, error) {
	c.log.Debug("dialing rpc", "network", network.Name)
	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		client.Close()
		return nil, fmt.Errorf("%w: %s expects %d, RPC reports %d",
			domain.ErrChainIDMismatch, network.Name, network.ChainID, chainID.Uint64())
	}

	if c.client != nil {
		c.client.Close()
	}
	c.client, c.url, c.chainID = client, network.RPCURL, chainID
	return client, nil
}

// Backend returns the connection for contract deployment with its chain ID
func (c *Client) Backend(ctx context.Context) (Backend, *big.Int, error) {
	client, err := c.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return client, new(big.Int).Set(c.chainID), nil
}

// ChainID dials rpcURL and returns the chain ID it reports
func (c *Client) ChainID(ctx context.Context, rpcURL string) (uint64, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}

// InspectProxy reads the ERC-1967 implementation and admin slots
func (c *Client) InspectProxy(ctx context.Context, proxy common.Address) (*models.ProxyInfo, error) {
	client, err := c.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return inspectProxy(ctx, client, proxy)
}

// Close releases the RPC connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}

func inspectProxy(ctx context.Context, reader stateReader, proxy common.Address) (*models.ProxyInfo, error) {
	code, err := reader.CodeAt(ctx, proxy, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check code: %w", err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: no contract at %s", domain.ErrNotFound, proxy.Hex())
	}

	impl, err := reader.StorageAt(ctx, proxy, ImplementationSlot, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read implementation slot: %w", err)
	}
	admin, err := reader.StorageAt(ctx, proxy, AdminSlot, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read admin slot: %w", err)
	}

	return &models.ProxyInfo{
		Proxy:          proxy,
		Implementation: common.BytesToAddress(impl),
		Admin:          common.BytesToAddress(admin),
	}, nil
}

var (
	_ usecase.ChainChecker   = (*Client)(nil)
	_ usecase.ProxyInspector = (*Client)(nil)
)
