package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/app"
)

// writeTx writes the JSON representation of a transaction followed by a new
// line. Many transactions written one after another form a stream that can
// be read using readTxs.
func writeTx(w io.Writer, tx *app.Tx) error {
	raw, err := app.EncodeJSONTx(tx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", raw)
	return err
}

// writeMsg writes an unsigned transaction carrying given message.
func writeMsg(w io.Writer, msg multisafe.Msg) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	return writeTx(w, &app.Tx{Msg: msg})
}

// readTxs reads a stream of JSON encoded transactions until the end of the
// input.
func readTxs(r io.Reader) ([]*app.Tx, error) {
	var txs []*app.Tx
	dec := json.NewDecoder(r)
	for {
		var raw json.RawMessage
		switch err := dec.Decode(&raw); {
		case err == io.EOF:
			return txs, nil
		case err != nil:
			return nil, fmt.Errorf("cannot read transaction %d: %s", len(txs), err)
		}
		tx, err := app.DecodeJSONTx(raw)
		if err != nil {
			return nil, fmt.Errorf("cannot decode transaction %d: %s", len(txs), err)
		}
		txs = append(txs, tx)
	}
}
