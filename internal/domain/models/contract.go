package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BytecodeObject holds creation bytecode. Hardhat stores it as a plain hex
// string, Foundry as {"object": "0x..."}; both decode into Object.
type BytecodeObject struct {
	Object string `json:"object"`
}

func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Object)
	}

	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	b.Object = obj.Object
	return nil
}

// Artifact represents a compiled contract (Hardhat or Foundry layout)
type Artifact struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     BytecodeObject  `json:"bytecode"`
	RawMetadata  string          `json:"rawMetadata"`

	// Path is the artifact file the contract was loaded from
	Path string `json:"-"`
	// CompilerVersion is the long solc version, e.g. 0.8.28+commit.7893614a
	CompilerVersion string `json:"-"`
}

// FullyQualifiedName returns sourceName:ContractName
func (a *Artifact) FullyQualifiedName() string {
	if a.SourceName == "" {
		return a.ContractName
	}
	return a.SourceName + ":" + a.ContractName
}

// ParseABI decodes the artifact ABI
func (a *Artifact) ParseABI() (*abi.ABI, error) {
	if len(a.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no ABI", a.ContractName)
	}
	parsed, err := abi.JSON(bytes.NewReader(a.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", a.ContractName, err)
	}
	return &parsed, nil
}

// CreationCode decodes the creation bytecode
func (a *Artifact) CreationCode() ([]byte, error) {
	object := a.Bytecode.Object
	if object == "" || object == "0x" {
		return nil, fmt.Errorf("artifact %s has no bytecode (abstract contract or interface?)", a.ContractName)
	}
	if strings.Contains(object, "__") {
		return nil, fmt.Errorf("artifact %s has unlinked library references", a.ContractName)
	}
	if !strings.HasPrefix(object, "0x") {
		object = "0x" + object
	}
	code, err := hexutil.Decode(object)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bytecode of %s: %w", a.ContractName, err)
	}
	return code, nil
}

// SourceBundle is everything a source verifier needs for one contract
type SourceBundle struct {
	CompilerVersion string
	// Metadata is the solc metadata JSON
	Metadata string
	// Sources maps source unit names to file contents
	Sources map[string]string
}

// ShortVersion strips the commit suffix from a solc version
func ShortVersion(version string) string {
	version = strings.TrimPrefix(version, "v")
	if i := strings.IndexByte(version, '+'); i >= 0 {
		return version[:i]
	}
	return version
}
