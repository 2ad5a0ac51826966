package wallet

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/mycitadel/citadel-wallet/internal/core/domain"
)

// WalletInfo is a summary of a stored wallet.
type WalletInfo struct {
	ID         string
	Descriptor domain.WalletDescriptor
	State      domain.WalletState
	NumHistory int
	NumWip     int
}

func newWalletInfo(id string, w *domain.Wallet) WalletInfo {
	return WalletInfo{
		ID:         id,
		Descriptor: w.ToDescriptor(),
		State:      w.State(),
		NumHistory: len(w.History()),
		NumWip:     len(w.Wip()),
	}
}

func decodePsbt(b64 string) (*psbt.Packet, error) {
	b64 = strings.TrimSpace(b64)
	if b64 == "" {
		return nil, domain.ErrNullPsbt
	}
	p, err := psbt.NewFromRawBytes(strings.NewReader(b64), true)
	if err != nil {
		return nil, fmt.Errorf("invalid psbt: %w", err)
	}
	return p, nil
}

func parseTxid(txid string) (chainhash.Hash, error) {
	hash, err := chainhash.NewHashFromStr(strings.TrimSpace(txid))
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("invalid txid: %w", err)
	}
	return *hash, nil
}
