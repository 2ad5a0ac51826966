package domain

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/txscript"
)

// TimelockKind is the kind of lock applied to a spending condition.
type TimelockKind uint8

const (
	// TimelockAnytime means the condition can be satisfied at any time.
	TimelockAnytime TimelockKind = iota
	// TimelockAfterHeight is an absolute lock on a block height.
	TimelockAfterHeight
	// TimelockAfterTime is an absolute lock on a unix timestamp.
	TimelockAfterTime
	// TimelockOlderBlocks is a relative lock expressed in blocks.
	TimelockOlderBlocks
	// TimelockOlderTime is a relative lock expressed in 512 seconds units.
	TimelockOlderTime
)

const (
	// maxRelativeLock is the biggest value of a BIP68 relative lock.
	maxRelativeLock = 0xffff
	// lockTimeThreshold separates block heights from timestamps in lock
	// times.
	lockTimeThreshold = uint32(txscript.LockTimeThreshold)
)

var timelockNames = map[TimelockKind]string{
	TimelockAnytime:     "anytime",
	TimelockAfterHeight: "after_height",
	TimelockAfterTime:   "after_time",
	TimelockOlderBlocks: "older_blocks",
	TimelockOlderTime:   "older_time",
}

func (k TimelockKind) String() string {
	if name, ok := timelockNames[k]; ok {
		return name
	}
	return fmt.Sprintf("timelock(%d)", uint8(k))
}

// Timelock restricts when a spending condition becomes satisfiable.
type Timelock struct {
	Kind  TimelockKind
	Value uint32
}

func (t Timelock) validate() error {
	switch t.Kind {
	case TimelockAnytime:
		if t.Value != 0 {
			return fmt.Errorf("%w: anytime lock must have no value", ErrConditionInvalidTimelock)
		}
	case TimelockAfterHeight:
		if t.Value == 0 || t.Value >= lockTimeThreshold {
			return fmt.Errorf(
				"%w: block height must be in range [1, %d)",
				ErrConditionInvalidTimelock, lockTimeThreshold,
			)
		}
	case TimelockAfterTime:
		if t.Value < lockTimeThreshold {
			return fmt.Errorf(
				"%w: timestamp must not be lower than %d",
				ErrConditionInvalidTimelock, lockTimeThreshold,
			)
		}
	case TimelockOlderBlocks, TimelockOlderTime:
		if t.Value == 0 || t.Value > maxRelativeLock {
			return fmt.Errorf(
				"%w: relative lock must be in range [1, %d]",
				ErrConditionInvalidTimelock, maxRelativeLock,
			)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrConditionInvalidTimelock, t.Kind)
	}
	return nil
}

func (t Timelock) String() string {
	if t.Kind == TimelockAnytime {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%d)", t.Kind, t.Value)
}

// SpendingCondition requires Threshold signatures out of the referenced
// signers once Timelock is satisfied. A Threshold of 0 requires all of them.
type SpendingCondition struct {
	Threshold uint32
	Signers   []string
	Timelock  Timelock
}

// NewSpendingCondition returns a condition that can be satisfied anytime.
func NewSpendingCondition(threshold uint32, fingerprints ...string) SpendingCondition {
	signers := make([]string, 0, len(fingerprints))
	for _, fp := range fingerprints {
		signers = append(signers, strings.ToLower(fp))
	}
	return SpendingCondition{Threshold: threshold, Signers: signers}
}

// RequiredSigs returns the number of signatures needed to satisfy the
// condition.
func (c SpendingCondition) RequiredSigs() int {
	if c.Threshold == 0 {
		return len(c.Signers)
	}
	return int(c.Threshold)
}

// Equal compares two conditions field by field, signers order included.
func (c SpendingCondition) Equal(o SpendingCondition) bool {
	if c.Threshold != o.Threshold || c.Timelock != o.Timelock ||
		len(c.Signers) != len(o.Signers) {
		return false
	}
	for i := range c.Signers {
		if c.Signers[i] != o.Signers[i] {
			return false
		}
	}
	return true
}

func (c SpendingCondition) clone() SpendingCondition {
	signers := make([]string, len(c.Signers))
	copy(signers, c.Signers)
	return SpendingCondition{c.Threshold, signers, c.Timelock}
}

// validate checks the condition against the signers of the descriptor it
// belongs to.
func (c SpendingCondition) validate(signers SignerSet) error {
	if len(c.Signers) <= 0 {
		return ErrConditionNullSigners
	}
	seen := make(map[string]struct{}, len(c.Signers))
	for _, fp := range c.Signers {
		if !signers.Contains(fp) {
			return fmt.Errorf("%w: %s", ErrConditionUnknownSigner, fp)
		}
		if _, ok := seen[fp]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatedSigner, fp)
		}
		seen[fp] = struct{}{}
	}
	if int(c.Threshold) > len(c.Signers) {
		return ErrConditionInvalidThreshold
	}
	return c.Timelock.validate()
}

func (c SpendingCondition) String() string {
	return fmt.Sprintf(
		"%d-of-%s@%s", c.RequiredSigs(), strings.Join(c.Signers, ","), c.Timelock,
	)
}
