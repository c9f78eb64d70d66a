/*
Package contracts provides access to the compiled swap contracts.

Contracts are either compiled from the sources (see Compile) or read from the
build directory written by WriteDir where every contract is stored in its own
subdirectory as a pair of contract.nef and manifest.json files.
*/
package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

const (
	// TokenDir is the directory of the ledger contract.
	TokenDir = "token"
	// SwapDir is the directory of the swap contract.
	SwapDir = "swap"

	nefName      = "contract.nef"
	manifestName = "manifest.json"
)

// Contract groups information about Neo contract stored in the current package.
type Contract struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Set is a pair of contracts deployed to run swaps.
type Set struct {
	Token Contract
	Swap  Contract
}

var (
	errInvalidNEF      = errors.New("invalid NEF")
	errInvalidManifest = errors.New("invalid manifest")
)

// ReadDir reads compiled contracts from the given build directory.
func ReadDir(dir string) (Set, error) {
	return Read(os.DirFS(dir))
}

// Read is the same as ReadDir but allows to override source fs.FS.
func Read(_fs fs.FS) (Set, error) {
	var (
		s   Set
		err error
	)

	s.Token, err = readContractFromDir(_fs, TokenDir)
	if err != nil {
		return s, fmt.Errorf("read contract %s: %w", TokenDir, err)
	}

	s.Swap, err = readContractFromDir(_fs, SwapDir)
	if err != nil {
		return s, fmt.Errorf("read contract %s: %w", SwapDir, err)
	}

	return s, nil
}

func readContractFromDir(_fs fs.FS, dir string) (Contract, error) {
	var c Contract

	// fs.FS paths are always slash-separated, so filepath.Join() is not
	// applicable.
	fNEF, err := _fs.Open(dir + "/" + nefName)
	if err != nil {
		return c, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := _fs.Open(dir + "/" + manifestName)
	if err != nil {
		return c, fmt.Errorf("open manifest: %w", err)
	}
	defer fManifest.Close()

	bReader := io.NewBinReaderFromIO(fNEF)
	c.NEF.DecodeBinary(bReader)
	if bReader.Err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidNEF, bReader.Err)
	}

	err = json.NewDecoder(fManifest).Decode(&c.Manifest)
	if err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidManifest, err)
	}

	return c, nil
}

// WriteDir stores contracts in the given build directory, so they can be read
// back with ReadDir.
func WriteDir(dir string, s Set) error {
	for _, c := range []struct {
		dir string
		c   Contract
	}{
		{TokenDir, s.Token},
		{SwapDir, s.Swap},
	} {
		err := writeContractToDir(filepath.Join(dir, c.dir), c.c)
		if err != nil {
			return fmt.Errorf("write contract %s: %w", c.dir, err)
		}
	}
	return nil
}

func writeContractToDir(dir string, c Contract) error {
	bNEF, err := c.NEF.Bytes()
	if err != nil {
		return fmt.Errorf("encode NEF: %w", err)
	}

	jManifest, err := json.Marshal(c.Manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return err
	}

	err = os.WriteFile(filepath.Join(dir, nefName), bNEF, 0o644)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, manifestName), jManifest, 0o644)
}
