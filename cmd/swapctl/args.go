package main

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/tinychain/swap-contract/deploy"
)

// parseAccount decodes account or contract address given either in Neo
// address form or as LE hex string with optional 0x prefix.
func parseAccount(s string) (util.Uint160, error) {
	if s == "" {
		return util.Uint160{}, errors.New("empty address")
	}

	if h, err := address.StringToUint160(s); err == nil {
		return h, nil
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return h, fmt.Errorf("invalid address %q", s)
	}
	return h, nil
}

// parseAmount decodes non-negative integer amount in the minimal token units.
func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %q", s)
	}
	return v, nil
}

// tokenList is a repeated flag describing ledgers to deploy in
// NAME:SYMBOL:DECIMALS form.
type tokenList []deploy.TokenContractPrm

func (l *tokenList) String() string {
	ss := make([]string, len(*l))
	for i, t := range *l {
		ss[i] = t.Name + ":" + t.Symbol + ":" + strconv.FormatInt(t.Decimals, 10)
	}
	return strings.Join(ss, ",")
}

func (l *tokenList) Set(s string) error {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return fmt.Errorf("token %q is not in NAME:SYMBOL:DECIMALS form", s)
	}

	if parts[1] == "" {
		return fmt.Errorf("token %q has empty symbol", s)
	}

	dec, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || dec < 0 {
		return fmt.Errorf("token %q has invalid decimals", s)
	}

	*l = append(*l, deploy.TokenContractPrm{
		Name:     parts[0],
		Symbol:   parts[1],
		Decimals: dec,
	})
	return nil
}
