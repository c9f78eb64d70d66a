package contracts

import (
	"fmt"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/cli/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/compiler"
	"github.com/nspcc-dev/neo-go/pkg/config"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
)

// Compile compiles contract sources located in the given directory. The
// directory must contain config.yml with the contract name, events,
// permissions and safe methods.
func Compile(dir string) (Contract, error) {
	// nef.NewFile() cares about version a lot.
	if config.Version == "" {
		config.Version = "0.0.0-dev"
	}

	ne, di, err := compiler.CompileWithOptions(dir, nil, nil)
	if err != nil {
		return Contract{}, fmt.Errorf("compile: %w", err)
	}

	conf, err := smartcontract.ParseContractConfig(filepath.Join(dir, "config.yml"))
	if err != nil {
		return Contract{}, fmt.Errorf("parse contract config: %w", err)
	}

	o := &compiler.Options{}
	o.Name = conf.Name
	o.ContractEvents = conf.Events
	o.DeclaredNamedTypes = conf.NamedTypes
	o.ContractSupportedStandards = conf.SupportedStandards
	o.Permissions = make([]manifest.Permission, len(conf.Permissions))
	for i := range conf.Permissions {
		o.Permissions[i] = manifest.Permission(conf.Permissions[i])
	}
	o.SafeMethods = conf.SafeMethods
	o.Overloads = conf.Overloads
	o.SourceURL = conf.SourceURL
	m, err := compiler.CreateManifest(di, o)
	if err != nil {
		return Contract{}, fmt.Errorf("create manifest: %w", err)
	}

	return Contract{NEF: *ne, Manifest: *m}, nil
}

// CompileAll compiles both contracts from the sources located in the given
// repository root.
func CompileAll(root string) (Set, error) {
	var (
		s   Set
		err error
	)

	s.Token, err = Compile(filepath.Join(root, "contracts", TokenDir))
	if err != nil {
		return s, fmt.Errorf("contract %s: %w", TokenDir, err)
	}

	s.Swap, err = Compile(filepath.Join(root, "contracts", SwapDir))
	if err != nil {
		return s, fmt.Errorf("contract %s: %w", SwapDir, err)
	}

	return s, nil
}
