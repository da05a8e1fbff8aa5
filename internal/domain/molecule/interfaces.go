package molecule

import (
	"context"

	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// StructuralIdentifiers holds computed chemical identifiers produced by a
// structure standardisation step (canonical SMILES, InChI, formula, weight).
type StructuralIdentifiers struct {
	CanonicalSMILES string
	InChI           string
	InChIKey        string
	Formula         string
	Weight          float64
}

// FingerprintCalcOptions defines parameters for fingerprint generation.
type FingerprintCalcOptions struct {
	Radius int
	Bits   int
}

// DefaultFingerprintCalcOptions returns the default Morgan-fingerprint radius
// and bit-length used throughout the platform.
func DefaultFingerprintCalcOptions() FingerprintCalcOptions {
	return FingerprintCalcOptions{Radius: 2, Bits: 2048}
}

// FingerprintCalculator standardises a SMILES string and computes fingerprints
// for it. Implementations may delegate to an external cheminformatics service.
type FingerprintCalculator interface {
	Standardize(ctx context.Context, smiles string) (*StructuralIdentifiers, error)
	Calculate(ctx context.Context, smiles string, fpType mtypes.FingerprintType, opts FingerprintCalcOptions) (*Fingerprint, error)
	BatchCalculate(ctx context.Context, smilesList []string, fpType mtypes.FingerprintType, opts FingerprintCalcOptions) ([]*Fingerprint, error)
}

// FingerprintFusionStrategy defines how to combine similarity scores computed
// under multiple fingerprint types into a single ranking score.
type FingerprintFusionStrategy interface {
	Fuse(scores map[mtypes.FingerprintType]float64, weights map[mtypes.FingerprintType]float64) (float64, error)
}

// WeightedAverageFusion combines per-fingerprint scores using a weighted mean.
// A fingerprint type with no entry in weights is treated as weight 1.0.
type WeightedAverageFusion struct{}

func (f *WeightedAverageFusion) Fuse(scores, weights map[mtypes.FingerprintType]float64) (float64, error) {
	var totalScore, totalWeight float64
	for t, s := range scores {
		w := 1.0
		if weights != nil {
			if val, ok := weights[t]; ok {
				w = val
			}
		}
		totalScore += s * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0, nil
	}
	return totalScore / totalWeight, nil
}

// MaxFusion returns the highest per-fingerprint score, ignoring weights.
type MaxFusion struct{}

func (f *MaxFusion) Fuse(scores, weights map[mtypes.FingerprintType]float64) (float64, error) {
	best := 0.0
	first := true
	for _, s := range scores {
		if first || s > best {
			best = s
			first = false
		}
	}
	return best, nil
}

// MinFusion returns the lowest per-fingerprint score, ignoring weights.
type MinFusion struct{}

func (f *MinFusion) Fuse(scores, weights map[mtypes.FingerprintType]float64) (float64, error) {
	worst := 0.0
	first := true
	for _, s := range scores {
		if first || s < worst {
			worst = s
			first = false
		}
	}
	return worst, nil
}
