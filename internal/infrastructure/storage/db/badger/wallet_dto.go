package dbbadger

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/mycitadel/citadel-wallet/internal/core/domain"
)

// walletDTO is the persisted layout of a wallet. Formats, purposes and
// networks are stored by name, psbts in base64.
type walletDTO struct {
	ID         string `badgerhold:"key"`
	Descriptor descriptorDTO
	Balance    uint64
	History    []string
	Wip        []string
}

type descriptorDTO struct {
	Format     string
	Network    string
	Signers    []domain.Signer
	Conditions []domain.SpendingCondition
}

func newWalletDTO(id string, w *domain.Wallet) (*walletDTO, error) {
	if w == nil {
		return nil, fmt.Errorf("wallet must not be null")
	}

	d := w.AsDescriptor()
	format, err := d.Format().MarshalText()
	if err != nil {
		return nil, err
	}
	network, err := d.Network().MarshalText()
	if err != nil {
		return nil, err
	}

	history, err := encodePackets(w.History())
	if err != nil {
		return nil, err
	}
	wip, err := encodePackets(w.Wip())
	if err != nil {
		return nil, err
	}

	return &walletDTO{
		ID: id,
		Descriptor: descriptorDTO{
			Format:     string(format),
			Network:    string(network),
			Signers:    d.Signers(),
			Conditions: d.Conditions(),
		},
		Balance: uint64(w.State().Balance),
		History: history,
		Wip:     wip,
	}, nil
}

func (dto walletDTO) toDomain() (*domain.Wallet, error) {
	format, err := domain.ParseWalletFormat(dto.Descriptor.Format)
	if err != nil {
		return nil, err
	}
	network, err := domain.ParseNetwork(dto.Descriptor.Network)
	if err != nil {
		return nil, err
	}
	descriptor := domain.NewWalletDescriptorUnchecked(
		format, dto.Descriptor.Signers, dto.Descriptor.Conditions, network,
	)

	history, err := decodePackets(dto.History)
	if err != nil {
		return nil, err
	}
	wip, err := decodePackets(dto.Wip)
	if err != nil {
		return nil, err
	}

	return domain.RestoreWallet(
		descriptor, domain.WalletState{Balance: domain.Sats(dto.Balance)},
		history, wip,
	)
}

func encodePackets(packets []*psbt.Packet) ([]string, error) {
	encoded := make([]string, 0, len(packets))
	for _, p := range packets {
		b64, err := p.B64Encode()
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, b64)
	}
	return encoded, nil
}

func decodePackets(encoded []string) ([]*psbt.Packet, error) {
	packets := make([]*psbt.Packet, 0, len(encoded))
	for _, b64 := range encoded {
		p, err := psbt.NewFromRawBytes(strings.NewReader(b64), true)
		if err != nil {
			return nil, fmt.Errorf("failed to decode psbt: %w", err)
		}
		packets = append(packets, p)
	}
	return packets, nil
}
