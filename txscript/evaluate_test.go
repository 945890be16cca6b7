// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/TrustDataNetworkProject/libbitcoin/wire"
)

// signSpend builds a legacy SigHashAll signature authorizing tx to spend
// its input at inputIndex through prevOutScript.
func signSpend(t *testing.T, priv *btcec.PrivateKey, tx *wire.MsgTx, inputIndex int, prevOutScript Script) []byte {
	t.Helper()

	hash := calcSignatureHash(tx, inputIndex, prevOutScript, byte(SigHashAll))
	sig := ecdsa.Sign(priv, hash[:])
	return append(sig.Serialize(), byte(SigHashAll))
}

func sampleTx() *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(wire.NewTxIn(&wire.OutPoint{Index: 0}, nil))
	tx.AddTxOut(wire.NewTxOut(5000, nil))
	return tx
}

func TestEvaluateP2PKAccept(t *testing.T) {
	t.Parallel()

	priv, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("NewPrivateKey: %v", err)
	}
	pubkeyBytes := priv.PubKey().SerializeCompressed()

	outputScript := Script{
		{Op: OP_SPECIAL, Data: pubkeyBytes},
		{Op: OP_CHECKSIG},
	}
	tx := sampleTx()
	sig := signSpend(t, priv, tx, 0, outputScript)

	inputScript := Script{{Op: OP_SPECIAL, Data: sig}}

	if err := Evaluate(inputScript, outputScript, tx, 0, false); err != nil {
		t.Fatalf("Evaluate: expected accept, got %v", err)
	}
}

func TestEvaluateP2PKHRejectsWrongKey(t *testing.T) {
	t.Parallel()

	priv, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("NewPrivateKey: %v", err)
	}
	other, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("NewPrivateKey: %v", err)
	}

	pubkeyBytes := priv.PubKey().SerializeCompressed()
	wrongPubkeyBytes := other.PubKey().SerializeCompressed()

	outputScript := Script{
		{Op: OP_DUP},
		{Op: OP_HASH160},
		{Op: OP_SPECIAL, Data: hash160(pubkeyBytes)},
		{Op: OP_EQUALVERIFY},
		{Op: OP_CHECKSIG},
	}
	tx := sampleTx()
	sig := signSpend(t, priv, tx, 0, outputScript)

	inputScript := Script{
		{Op: OP_SPECIAL, Data: sig},
		{Op: OP_SPECIAL, Data: wrongPubkeyBytes},
	}

	err = Evaluate(inputScript, outputScript, tx, 0, false)
	if err != ErrVerifyFailed {
		t.Fatalf("Evaluate: err = %v, want ErrVerifyFailed (at EQUALVERIFY)", err)
	}
}

func TestEvaluateP2SHAccept(t *testing.T) {
	t.Parallel()

	priv, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("NewPrivateKey: %v", err)
	}
	pubkeyBytes := priv.PubKey().SerializeCompressed()

	redeemScript := Script{
		{Op: OP_SPECIAL, Data: pubkeyBytes},
		{Op: OP_CHECKSIG},
	}
	redeemBytes := redeemScript.Serialize()
	redeemHash := hash160(redeemBytes)

	outputScript := Script{
		{Op: OP_HASH160},
		{Op: OP_SPECIAL, Data: redeemHash},
		{Op: OP_EQUAL},
	}
	if GetScriptClass(outputScript) != ScriptHashTy {
		t.Fatal("expected output script to classify as script_hash")
	}

	tx := sampleTx()
	sig := signSpend(t, priv, tx, 0, redeemScript)

	inputScript := Script{
		{Op: OP_SPECIAL, Data: sig},
		{Op: OP_SPECIAL, Data: redeemBytes},
	}

	if err := Evaluate(inputScript, outputScript, tx, 0, true); err != nil {
		t.Fatalf("Evaluate with BIP16 on: expected accept, got %v", err)
	}
}

func TestEvaluateP2SHGatingOffIgnoresRedeemScript(t *testing.T) {
	t.Parallel()

	// With BIP16 off, the output script's own HASH160...EQUAL surface
	// is all that is checked; a non-push-only input script that would
	// fail the BIP16 gate is simply irrelevant. The input script must
	// still run successfully on its own (step 1 of Evaluate happens
	// unconditionally), so it uses OP_NOP rather than a non-push opcode
	// that would itself fail for lack of stack items.
	redeemHash := hash160([]byte("redeem"))
	outputScript := Script{
		{Op: OP_HASH160},
		{Op: OP_SPECIAL, Data: redeemHash},
		{Op: OP_EQUAL},
	}
	inputScript := Script{
		{Op: OP_SPECIAL, Data: []byte("redeem")},
		{Op: OP_NOP}, // non-push, would fail the BIP16 gate if it ran
	}

	tx := sampleTx()
	if err := Evaluate(inputScript, outputScript, tx, 0, false); err != nil {
		t.Fatalf("Evaluate with BIP16 off: expected accept, got %v", err)
	}
}

func TestCodeSeparatorChangesSignatureHash(t *testing.T) {
	t.Parallel()

	priv, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("NewPrivateKey: %v", err)
	}
	pubkeyBytes := priv.PubKey().SerializeCompressed()
	tx := sampleTx()

	// scriptNoSep's whole body is signed. scriptWithSep places a
	// CODESEPARATOR right before the same push+CHECKSIG tail, which
	// drops the leading OP_NOP from the signed script code.
	scriptNoSep := Script{
		{Op: OP_NOP},
		{Op: OP_SPECIAL, Data: pubkeyBytes},
		{Op: OP_CHECKSIG},
	}
	scriptWithSep := Script{
		{Op: OP_NOP},
		{Op: OP_CODESEPARATOR},
		{Op: OP_SPECIAL, Data: pubkeyBytes},
		{Op: OP_CHECKSIG},
	}

	codeNoSep := (&Interpreter{script: scriptNoSep, codeHashBegin: 0}).scriptCodeForCheckSig(nil)
	codeWithSep := (&Interpreter{script: scriptWithSep, codeHashBegin: 1}).scriptCodeForCheckSig(nil)

	hashNoSep := calcSignatureHash(tx, 0, codeNoSep, byte(SigHashAll))
	hashWithSep := calcSignatureHash(tx, 0, codeWithSep, byte(SigHashAll))
	if hashNoSep == hashWithSep {
		t.Fatal("expected different signature hashes once CODESEPARATOR excludes the leading OP_NOP")
	}

	sig := append(ecdsa.Sign(priv, hashNoSep[:]).Serialize(), byte(SigHashAll))
	inputScript := Script{{Op: OP_SPECIAL, Data: sig}}

	// Valid against scriptNoSep, whose codeHashBegin never moves...
	if err := Evaluate(inputScript, scriptNoSep, tx, 0, false); err != nil {
		t.Fatalf("expected sig to validate against scriptNoSep, got %v", err)
	}

	// ...but invalid against scriptWithSep, whose CODESEPARATOR moves
	// codeHashBegin past the OP_NOP the signature committed to.
	if err := Evaluate(inputScript, scriptWithSep, tx, 0, false); err != ErrEvalFalse {
		t.Fatalf("expected sig to be rejected against scriptWithSep with ErrEvalFalse, got %v", err)
	}
}
