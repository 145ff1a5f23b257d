package models

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytecodeObject_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"hardhat string", `{"bytecode": "0x6080"}`, "0x6080"},
		{"foundry object", `{"bytecode": {"object": "0x6080", "linkReferences": {}}}`, "0x6080"},
		{"missing", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Artifact
			require.NoError(t, json.Unmarshal([]byte(tt.json), &a))
			assert.Equal(t, tt.want, a.Bytecode.Object)
		})
	}
}

func TestArtifact_CreationCode(t *testing.T) {
	tests := []struct {
		name    string
		object  string
		want    []byte
		wantErr string
	}{
		{"prefixed", "0x6080", []byte{0x60, 0x80}, ""},
		{"foundry without prefix", "6080", []byte{0x60, 0x80}, ""},
		{"interface", "0x", nil, "no bytecode"},
		{"unlinked library", "0x73__$abc$__", nil, "unlinked"},
		{"odd length", "0x608", nil, "failed to decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Artifact{ContractName: "Token", Bytecode: BytecodeObject{Object: tt.object}}
			code, err := a.CreationCode()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestArtifact_FullyQualifiedName(t *testing.T) {
	assert.Equal(t, "contracts/Token.sol:Token", (&Artifact{ContractName: "Token", SourceName: "contracts/Token.sol"}).FullyQualifiedName())
	assert.Equal(t, "Token", (&Artifact{ContractName: "Token"}).FullyQualifiedName())
}

func TestShortVersion(t *testing.T) {
	assert.Equal(t, "0.8.28", ShortVersion("0.8.28+commit.7893614a"))
	assert.Equal(t, "0.8.28", ShortVersion("v0.8.28+commit.7893614a"))
	assert.Equal(t, "0.8.28", ShortVersion("0.8.28"))
}

func TestParseProxyKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ProxyKind
		wantErr bool
	}{
		{"", ProxyKindAuto, false},
		{"auto", ProxyKindAuto, false},
		{"uups", ProxyKindUUPS, false},
		{"transparent", ProxyKindTransparent, false},
		{"beacon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProxyKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProxyInfo(t *testing.T) {
	impl := common.HexToAddress("0x01")
	admin := common.HexToAddress("0x02")

	assert.False(t, (&ProxyInfo{}).IsProxy())

	uups := &ProxyInfo{Implementation: impl}
	assert.True(t, uups.IsProxy())
	assert.Equal(t, ProxyKindUUPS, uups.Kind())
	assert.Equal(t, "ERC1967Proxy", ProxyContractName(uups.Kind()))

	transparent := &ProxyInfo{Implementation: impl, Admin: admin}
	assert.Equal(t, ProxyKindTransparent, transparent.Kind())
	assert.Equal(t, "TransparentUpgradeableProxy", ProxyContractName(transparent.Kind()))
}

func TestDeploymentPlan_InitializerArgs(t *testing.T) {
	plan := &DeploymentPlan{
		Token:         DefaultTokenParams(),
		InitialSupply: big.NewInt(1),
		Cap:           big.NewInt(2),
	}
	assert.Equal(t, []any{"GMonad", "GMD", big.NewInt(1), big.NewInt(2)}, plan.InitializerArgs())
}
