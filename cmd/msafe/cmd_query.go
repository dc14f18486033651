package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/x/cash"
	"github.com/iov-one/multisafe/x/factory"
	"github.com/iov-one/multisafe/x/vm"
	"github.com/iov-one/multisafe/x/wallet"
)

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `
Query the committed state and print the result in JSON format.

Supported paths are:
	%s

Proposal queries require -id, approval queries require -id and -owner.
`, strings.Join(availableQueries(), "\n\t"))
		fl.PrintDefaults()
	}
	var (
		nodeFl    = declareNodeFlags(fl)
		pathFl    = fl.String("path", "/wallets", "Query path.")
		addressFl = flAddress(fl, "address", "", "Address of the queried account.")
		idFl      = fl.Uint64("id", 0, "Proposal ID.")
		ownerFl   = flAddress(fl, "owner", "", "Owner address, used by approval queries.")
	)
	fl.Parse(args)

	q, ok := queries[*pathFl]
	if !ok {
		flagDie("unknown query path %q", *pathFl)
	}
	if err := addressFl.Validate(); err != nil {
		flagDie("invalid address: %s", err)
	}

	data := addressFl.Clone()
	switch *pathFl {
	case "/wallets/proposals":
		data = append(data, wallet.ProposalKey(*idFl)...)
	case "/wallets/approvals":
		if err := ownerFl.Validate(); err != nil {
			flagDie("invalid owner: %s", err)
		}
		data = append(data, wallet.ApprovalKey(*idFl, *ownerFl)...)
	}

	a, err := nodeFl.open()
	if err != nil {
		return err
	}
	defer a.Close()

	models, err := a.Query(*pathFl, data)
	if err != nil {
		return fmt.Errorf("query: %s", err)
	}
	if len(models) == 0 {
		return writeView(output, q.empty)
	}
	v, err := q.view(models[0].Value)
	if err != nil {
		return fmt.Errorf("cannot decode %s result: %s", *pathFl, err)
	}
	return writeView(output, v)
}

func writeView(output io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(output, "%s\n", raw)
	return err
}

type query struct {
	// empty is printed when nothing is stored under the key.
	empty interface{}
	view  func([]byte) (interface{}, error)
}

var queries = map[string]query{
	"/balances": {
		empty: balanceView{},
		view: func(raw []byte) (interface{}, error) {
			var b cash.Balance
			if err := proto.Unmarshal(raw, &b); err != nil {
				return nil, err
			}
			return balanceView{Amount: b.Coins()}, nil
		},
	},
	"/accounts": {
		empty: nil,
		view: func(raw []byte) (interface{}, error) {
			var acc vm.Account
			if err := proto.Unmarshal(raw, &acc); err != nil {
				return nil, err
			}
			return accountView{Kind: acc.Kind, Creator: acc.Creator}, nil
		},
	},
	"/wallets": {
		empty: nil,
		view: func(raw []byte) (interface{}, error) {
			var w wallet.Wallet
			if err := proto.Unmarshal(raw, &w); err != nil {
				return nil, err
			}
			owners := make([]multisafe.Address, len(w.Owners))
			for i, o := range w.Owners {
				owners[i] = o
			}
			return walletView{
				Owners:        owners,
				Required:      w.Required,
				ProposalCount: w.ProposalCount,
			}, nil
		},
	},
	"/wallets/proposals": {
		empty: nil,
		view: func(raw []byte) (interface{}, error) {
			var p wallet.Proposal
			if err := proto.Unmarshal(raw, &p); err != nil {
				return nil, err
			}
			return proposalView{
				Target:   p.Target,
				Value:    coin.Amount(p.Value),
				Payload:  hex.EncodeToString(p.Payload),
				Executed: p.Executed,
			}, nil
		},
	},
	"/wallets/approvals": {
		empty: approvalView{Approved: false},
		view: func(raw []byte) (interface{}, error) {
			var a wallet.Approval
			if err := proto.Unmarshal(raw, &a); err != nil {
				return nil, err
			}
			return approvalView{Approved: a.Approved}, nil
		},
	},
	"/factories": {
		empty: nil,
		view: func(raw []byte) (interface{}, error) {
			var f factory.Factory
			if err := proto.Unmarshal(raw, &f); err != nil {
				return nil, err
			}
			return factoryView{Administrator: f.Administrator}, nil
		},
	},
}

func availableQueries() []string {
	paths := make([]string, 0, len(queries))
	for p := range queries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

type balanceView struct {
	Amount coin.Amount `json:"amount"`
}

type accountView struct {
	Kind    string            `json:"kind"`
	Creator multisafe.Address `json:"creator"`
}

type walletView struct {
	Owners        []multisafe.Address `json:"owners"`
	Required      uint32              `json:"required"`
	ProposalCount uint64              `json:"proposal_count"`
}

type proposalView struct {
	Target   multisafe.Address `json:"target"`
	Value    coin.Amount       `json:"value"`
	Payload  string            `json:"payload,omitempty"`
	Executed bool              `json:"executed"`
}

type approvalView struct {
	Approved bool `json:"approved"`
}

type factoryView struct {
	Administrator multisafe.Address `json:"administrator"`
}
