package models

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// Signer is an account able to authorize and pay for transactions
type Signer struct {
	Address common.Address
	Key     *ecdsa.PrivateKey
}
