package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gmonad/gmd-deploy/internal/domain/models"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// DefaultSourcifyURL is the public Sourcify server
const DefaultSourcifyURL = "https://sourcify.dev/server"

// SourcifyClient submits metadata and sources to a Sourcify server
type SourcifyClient struct {
	client     *http.Client
	apiURL     string
	browserURL string
}

// NewSourcifyClient creates a new Sourcify client
func NewSourcifyClient(client *http.Client, apiURL, browserURL string) *SourcifyClient {
	if apiURL == "" {
		apiURL = DefaultSourcifyURL
	}
	return &SourcifyClient{
		client:     client,
		apiURL:     strings.TrimRight(apiURL, "/"),
		browserURL: strings.TrimRight(browserURL, "/"),
	}
}

type sourcifyCheck struct {
	Address  string   `json:"address"`
	Status   string   `json:"status"`
	ChainIDs []string `json:"chainIds"`
}

type sourcifyVerifyRequest struct {
	Address string            `json:"address"`
	Chain   string            `json:"chain"`
	Files   map[string]string `json:"files"`
}

type sourcifyVerifyResponse struct {
	Result []struct {
		Address string `json:"address"`
		ChainID string `json:"chainId"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"result"`
	Error string `json:"error"`
}

// Verify checks whether the contract is already known and submits it otherwise
func (s *SourcifyClient) Verify(ctx context.Context, target *usecase.VerificationTarget) models.VerifierStatus {
	chainID := strconv.FormatUint(target.Network.ChainID, 10)

	status, err := s.check(ctx, target.Address, chainID)
	if err == nil && status != "" {
		return s.result(status, target.Address)
	}

	status, err = s.submit(ctx, target, chainID)
	if err != nil {
		return models.VerifierStatus{Status: models.VerifierStatusFailed, Reason: err.Error()}
	}
	return s.result(status, target.Address)
}

// check returns "perfect", "partial" or "" when the address is not verified
func (s *SourcifyClient) check(ctx context.Context, address common.Address, chainID string) (string, error) {
	query := url.Values{}
	query.Set("addresses", address.Hex())
	query.Set("chainIds", chainID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"/check-by-addresses?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req) //nolint:gosec // URL is the configured Sourcify endpoint
	if err != nil {
		return "", fmt.Errorf("failed to query sourcify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sourcify check returned %s", resp.Status)
	}

	var checks []sourcifyCheck
	if err := json.NewDecoder(resp.Body).Decode(&checks); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	for _, c := range checks {
		if strings.EqualFold(c.Address, address.Hex()) && (c.Status == "perfect" || c.Status == "partial") {
			return c.Status, nil
		}
	}
	return "", nil
}

func (s *SourcifyClient) submit(ctx context.Context, target *usecase.VerificationTarget, chainID string) (string, error) {
	files := make(map[string]string, len(target.Bundle.Sources)+1)
	files["metadata.json"] = target.Bundle.Metadata
	for name, content := range target.Bundle.Sources {
		files[name] = content
	}

	body, err := json.Marshal(sourcifyVerifyRequest{
		Address: target.Address.Hex(),
		Chain:   chainID,
		Files:   files,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+"/verify", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req) //nolint:gosec // URL is the configured Sourcify endpoint
	if err != nil {
		return "", fmt.Errorf("failed to submit verification: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var result sourcifyVerifyResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("sourcify returned %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	if result.Error != "" {
		return "", fmt.Errorf("sourcify: %s", result.Error)
	}
	if len(result.Result) == 0 {
		return "", fmt.Errorf("sourcify returned no result")
	}

	r := result.Result[0]
	if r.Status != "perfect" && r.Status != "partial" {
		if r.Message != "" {
			return "", fmt.Errorf("sourcify: %s", r.Message)
		}
		return "", fmt.Errorf("sourcify: unexpected status %q", r.Status)
	}
	return r.Status, nil
}

func (s *SourcifyClient) result(status string, address common.Address) models.VerifierStatus {
	out := models.VerifierStatus{Status: models.VerifierStatusVerified}
	if status == "partial" {
		out.Status = models.VerifierStatusPartial
		out.Reason = "metadata hash differs (partial match)"
	}
	if s.browserURL != "" {
		out.URL = fmt.Sprintf("%s/address/%s", s.browserURL, address.Hex())
	}
	return out
}
