package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signedTx builds a transaction using given command and sets its signer.
func signedTx(t *testing.T, key string, build func(out *bytes.Buffer) error) []byte {
	t.Helper()
	var raw, signed bytes.Buffer
	require.NoError(t, build(&raw))
	require.NoError(t, cmdWithSigner(&raw, &signed, []string{"-key", key}))
	return signed.Bytes()
}

// apply runs all given transactions in a single apply call.
func apply(t *testing.T, args []string, txs ...[]byte) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, cmdApply(bytes.NewReader(bytes.Join(txs, nil)), &out, args))
	return out.String()
}

var dataLine = regexp.MustCompile(`(?m)^\tdata: ([0-9A-F]+)$`)

func TestWalletScenario(t *testing.T) {
	dir := t.TempDir()
	home := filepath.Join(dir, "state")
	aliceKey := filepath.Join(dir, "alice.key")
	bobKey := filepath.Join(dir, "bob.key")

	var out bytes.Buffer
	require.NoError(t, cmdKeygen(nil, &out, []string{"-key", aliceKey}))
	alice := strings.TrimSpace(out.String())
	out.Reset()
	require.NoError(t, cmdKeygen(nil, &out, []string{"-key", bobKey}))
	bob := strings.TrimSpace(out.String())

	// keys are never overwritten
	assert.Error(t, cmdKeygen(nil, &out, []string{"-key", bobKey}))

	out.Reset()
	require.NoError(t, cmdKeyaddr(nil, &out, []string{"-key", aliceKey}))
	assert.Equal(t, alice, strings.TrimSpace(out.String()))

	genesis := filepath.Join(dir, "genesis.json")
	gen := fmt.Sprintf(`{"chain_id": "cli-test", "app_state": {"cash": [{"address": %q, "amount": "100"}]}}`, alice)
	require.NoError(t, ioutil.WriteFile(genesis, []byte(gen), 0600))

	node := []string{"-home", home, "-backend", "badger"}

	deploy := signedTx(t, aliceKey, func(out *bytes.Buffer) error {
		return cmdDeployWallet(nil, out, []string{"-owners", alice + "," + bob, "-required", "2", "-value", "30"})
	})
	res := apply(t, append(node, "-genesis", genesis), deploy)
	assert.Contains(t, res, "chain cli-test initialized")
	m := dataLine.FindStringSubmatch(res)
	require.Len(t, m, 2, res)
	walletAddr := m[1]

	submit := signedTx(t, aliceKey, func(out *bytes.Buffer) error {
		return cmdWalletSubmit(nil, out, []string{"-wallet", walletAddr, "-target", bob, "-value", "12"})
	})
	approveBob := signedTx(t, bobKey, func(out *bytes.Buffer) error {
		return cmdWalletApprove(nil, out, []string{"-wallet", walletAddr, "-id", "0"})
	})
	res = apply(t, node, submit, approveBob)
	assert.Contains(t, res, "tx 0: ok")
	assert.Contains(t, res, "tx 1: ok")

	approveAlice := signedTx(t, aliceKey, func(out *bytes.Buffer) error {
		return cmdWalletApprove(nil, out, []string{"-wallet", walletAddr, "-id", "0"})
	})
	execute := signedTx(t, bobKey, func(out *bytes.Buffer) error {
		return cmdWalletExecute(nil, out, []string{"-wallet", walletAddr, "-id", "0"})
	})
	res = apply(t, node, approveAlice, execute)
	assert.Contains(t, res, "execute(")

	var view struct {
		Amount   string `json:"amount"`
		Executed bool   `json:"executed"`
		Value    string `json:"value"`
	}
	out.Reset()
	require.NoError(t, cmdQuery(nil, &out, append(node, "-path", "/balances", "-address", bob)))
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	assert.Equal(t, "12", view.Amount)

	out.Reset()
	require.NoError(t, cmdQuery(nil, &out, append(node, "-path", "/wallets/proposals", "-address", walletAddr, "-id", "0")))
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	assert.True(t, view.Executed)
	assert.Equal(t, "12", view.Value)

	out.Reset()
	require.NoError(t, cmdQuery(nil, &out, append(node, "-path", "/wallets/approvals", "-address", walletAddr, "-id", "0", "-owner", alice)))
	assert.Contains(t, out.String(), `"approved": true`)
}

func TestApplyReportsFailures(t *testing.T) {
	dir := t.TempDir()
	key := filepath.Join(dir, "key")
	var out bytes.Buffer
	require.NoError(t, cmdKeygen(nil, &out, []string{"-key", key}))

	genesis := filepath.Join(dir, "genesis.json")
	require.NoError(t, ioutil.WriteFile(genesis, []byte(`{"chain_id": "cli-test", "app_state": {}}`), 0600))

	var txs bytes.Buffer
	require.NoError(t, cmdSendTokens(nil, &txs, []string{"-dst", addrA, "-amount", "1"}))
	var signed bytes.Buffer
	require.NoError(t, cmdWithSigner(&txs, &signed, []string{"-key", key}))

	out.Reset()
	err := cmdApply(&signed, &out, []string{"-backend", "memory", "-genesis", genesis})
	assert.EqualError(t, err, "1 of 1 transactions failed")
	assert.Contains(t, out.String(), "tx 0: failed (code 12)")
	assert.Contains(t, out.String(), "committed version 1")

	// without genesis a fresh chain cannot process anything
	err = cmdApply(&bytes.Buffer{}, &out, []string{"-backend", "memory"})
	assert.Error(t, err)
}
