package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedPurpose is returned when decoding a purpose identifier
	// that is none of the known BIP43 purposes.
	ErrUnrecognizedPurpose = errors.New("unrecognized purpose")
	// ErrUnrecognizedNetwork ...
	ErrUnrecognizedNetwork = errors.New("unrecognized network")
	// ErrUnrecognizedFormat ...
	ErrUnrecognizedFormat = errors.New("unrecognized wallet format")

	// ErrArithmetic is the parent of every error returned by Sats arithmetic.
	ErrArithmetic = errors.New("arithmetic error")
	// ErrAmountOverflow ...
	ErrAmountOverflow = fmt.Errorf("%w: amount overflow", ErrArithmetic)
	// ErrAmountUnderflow ...
	ErrAmountUnderflow = fmt.Errorf("%w: amount underflow", ErrArithmetic)

	// ErrInvalidDescriptor is the parent of every descriptor validation error.
	// A descriptor failing validation must be rejected and the one currently
	// in use kept.
	ErrInvalidDescriptor = errors.New("invalid wallet descriptor")
	// ErrInvalidFormat ...
	ErrInvalidFormat = fmt.Errorf("%w: format is neither a descriptor nor a bip43 one", ErrInvalidDescriptor)
	// ErrInvalidSigner ...
	ErrInvalidSigner = fmt.Errorf("%w: invalid signer", ErrInvalidDescriptor)
	// ErrInvalidSignerFingerprint ...
	ErrInvalidSignerFingerprint = fmt.Errorf("%w: fingerprint must be 4 bytes in hex format", ErrInvalidSigner)
	// ErrInvalidSignerXpub ...
	ErrInvalidSignerXpub = fmt.Errorf("%w: xpub is not a valid extended public key", ErrInvalidSigner)
	// ErrSignerXpubIsPrivate ...
	ErrSignerXpubIsPrivate = fmt.Errorf("%w: extended key must not be private", ErrInvalidSigner)
	// ErrSignerWrongNetwork ...
	ErrSignerWrongNetwork = fmt.Errorf("%w: extended key belongs to another network", ErrInvalidSigner)
	// ErrDuplicatedSigner ...
	ErrDuplicatedSigner = fmt.Errorf("%w: signer fingerprint is duplicated", ErrInvalidDescriptor)
	// ErrNotEnoughSigners ...
	ErrNotEnoughSigners = fmt.Errorf("%w: not enough signers for the wallet format", ErrInvalidDescriptor)
	// ErrTooManySigners ...
	ErrTooManySigners = fmt.Errorf("%w: too many signers for the wallet format", ErrInvalidDescriptor)
	// ErrNullConditions ...
	ErrNullConditions = fmt.Errorf("%w: spending conditions must not be empty", ErrInvalidDescriptor)
	// ErrConditionNullSigners ...
	ErrConditionNullSigners = fmt.Errorf("%w: spending condition must reference at least one signer", ErrInvalidDescriptor)
	// ErrConditionUnknownSigner ...
	ErrConditionUnknownSigner = fmt.Errorf("%w: spending condition references an unknown signer", ErrInvalidDescriptor)
	// ErrConditionInvalidThreshold ...
	ErrConditionInvalidThreshold = fmt.Errorf("%w: threshold exceeds the number of condition signers", ErrInvalidDescriptor)
	// ErrConditionInvalidTimelock ...
	ErrConditionInvalidTimelock = fmt.Errorf("%w: invalid timelock", ErrInvalidDescriptor)

	// ErrNullPsbt ...
	ErrNullPsbt = errors.New("psbt must not be null")
	// ErrWipNotFound is returned when a pending transaction is not in the
	// work-in-progress list of a wallet.
	ErrWipNotFound = errors.New("pending transaction not found")
	// ErrWalletNotFound ...
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrWalletAlreadyExists ...
	ErrWalletAlreadyExists = errors.New("wallet already exists")
)
