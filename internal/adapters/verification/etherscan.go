package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gmonad/gmd-deploy/internal/domain/models"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// EtherscanClient verifies contracts through an Etherscan-compatible API
// using the standard JSON input rebuilt from solc metadata.
type EtherscanClient struct {
	client       *http.Client
	apiURL       string
	apiKey       string
	pollInterval time.Duration
	maxPolls     int
}

// NewEtherscanClient creates a new Etherscan client
func NewEtherscanClient(client *http.Client, apiURL, apiKey string) *EtherscanClient {
	return &EtherscanClient{
		client:       client,
		apiURL:       strings.TrimSuffix(strings.TrimRight(apiURL, "/"), "/api"),
		apiKey:       apiKey,
		pollInterval: 3 * time.Second,
		maxPolls:     20,
	}
}

// etherscanResponse represents Etherscan API response
type etherscanResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// Verify submits the contract and waits for the verification outcome
func (e *EtherscanClient) Verify(ctx context.Context, target *usecase.VerificationTarget) models.VerifierStatus {
	if e.apiURL == "" {
		return models.VerifierStatus{Status: models.VerifierStatusFailed, Reason: "no [etherscan] url configured"}
	}
	if e.apiKey == "" {
		return models.VerifierStatus{Status: models.VerifierStatusFailed, Reason: "no [etherscan] api_key configured"}
	}

	guid, err := e.submit(ctx, target)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already verified") {
			return e.verified(target)
		}
		return models.VerifierStatus{Status: models.VerifierStatusFailed, Reason: err.Error()}
	}

	if err := e.waitForResult(ctx, guid); err != nil {
		return models.VerifierStatus{Status: models.VerifierStatusFailed, Reason: err.Error()}
	}
	return e.verified(target)
}

func (e *EtherscanClient) submit(ctx context.Context, target *usecase.VerificationTarget) (string, error) {
	input, err := StandardJSONInput(target.Bundle)
	if err != nil {
		return "", err
	}

	data := url.Values{}
	data.Set("apikey", e.apiKey)
	data.Set("module", "contract")
	data.Set("action", "verifysourcecode")
	data.Set("chainid", fmt.Sprintf("%d", target.Network.ChainID))
	data.Set("contractaddress", target.Address.Hex())
	data.Set("sourceCode", input)
	data.Set("codeformat", "solidity-standard-json-input")
	data.Set("contractname", target.Artifact.FullyQualifiedName())
	data.Set("compilerversion", "v"+strings.TrimPrefix(target.Bundle.CompilerVersion, "v"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.apiURL+"/api", strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	result, err := e.do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit verification: %w", err)
	}
	if result.Status != "1" {
		return "", fmt.Errorf("etherscan: %s", result.Result)
	}
	return result.Result, nil
}

// waitForResult polls checkverifystatus until the submission leaves the queue
func (e *EtherscanClient) waitForResult(ctx context.Context, guid string) error {
	params := url.Values{}
	params.Set("apikey", e.apiKey)
	params.Set("module", "contract")
	params.Set("action", "checkverifystatus")
	params.Set("guid", guid)

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for i := 0; i < e.maxPolls; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.apiURL+"/api?"+params.Encode(), nil)
		if err != nil {
			return err
		}
		result, err := e.do(req)
		if err != nil {
			return fmt.Errorf("failed to check status: %w", err)
		}

		lower := strings.ToLower(result.Result)
		switch {
		case strings.Contains(lower, "pending"):
			continue
		case result.Status == "1", strings.Contains(lower, "already verified"):
			return nil
		default:
			return fmt.Errorf("etherscan: %s", result.Result)
		}
	}
	return fmt.Errorf("etherscan: verification still pending after %d checks (guid %s)", e.maxPolls, guid)
}

func (e *EtherscanClient) do(req *http.Request) (*etherscanResponse, error) {
	resp, err := e.client.Do(req) //nolint:gosec // URL is the configured explorer endpoint
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result etherscanResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

func (e *EtherscanClient) verified(target *usecase.VerificationTarget) models.VerifierStatus {
	status := models.VerifierStatus{Status: models.VerifierStatusVerified}
	if target.Network != nil && target.Network.ExplorerURL != "" {
		status.URL = fmt.Sprintf("%s/address/%s#code", strings.TrimRight(target.Network.ExplorerURL, "/"), target.Address.Hex())
	}
	return status
}
