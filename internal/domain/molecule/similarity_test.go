package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

func fp(bits []byte) *Fingerprint {
	return NewFingerprint(mtypes.FPMorgan, bits, len(bits)*8)
}

func TestSimilarityMetric_IsValid(t *testing.T) {
	assert.True(t, MetricTanimoto.IsValid())
	assert.True(t, MetricDice.IsValid())
	assert.True(t, MetricCosine.IsValid())
	assert.False(t, SimilarityMetric("invalid").IsValid())
}

func TestParseSimilarityMetric(t *testing.T) {
	m, err := ParseSimilarityMetric("dice")
	require.NoError(t, err)
	assert.Equal(t, MetricDice, m)

	_, err = ParseSimilarityMetric("invalid")
	assert.Error(t, err)
}

func TestTanimotoCalculator_Calculate(t *testing.T) {
	calc := &TanimotoCalculator{}
	assert.Equal(t, MetricTanimoto, calc.Metric())

	got, err := calc.Calculate(fp([]byte{0xFF, 0x00}), fp([]byte{0xFF, 0xFF}))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestTanimotoCalculator_RejectsMismatchedLength(t *testing.T) {
	calc := &TanimotoCalculator{}
	_, err := calc.Calculate(fp([]byte{0xFF}), fp([]byte{0xFF, 0xFF}))
	assert.Error(t, err)
}

func TestDiceCalculator_Calculate(t *testing.T) {
	calc := &DiceCalculator{}
	assert.Equal(t, MetricDice, calc.Metric())

	// 8 bits set vs 16 bits set, intersection 8: dice = 2*8/(8+16) = 2/3
	got, err := calc.Calculate(fp([]byte{0xFF, 0x00}), fp([]byte{0xFF, 0xFF}))
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, got, 1e-9)

	tanimoto, err := (&TanimotoCalculator{}).Calculate(fp([]byte{0xFF, 0x00}), fp([]byte{0xFF, 0xFF}))
	require.NoError(t, err)
	assert.True(t, got >= tanimoto, "dice should never be lower than tanimoto for the same pair")
}

func TestCosineCalculator_Calculate(t *testing.T) {
	calc := &CosineCalculator{}
	assert.Equal(t, MetricCosine, calc.Metric())

	got, err := calc.Calculate(fp([]byte{0xFF}), fp([]byte{0xFF}))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)

	got, err = calc.Calculate(fp([]byte{0xF0}), fp([]byte{0x0F}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestNewSimilarityCalculator(t *testing.T) {
	c, err := NewSimilarityCalculator(MetricTanimoto)
	require.NoError(t, err)
	assert.IsType(t, &TanimotoCalculator{}, c)

	_, err = NewSimilarityCalculator(SimilarityMetric("invalid"))
	assert.Error(t, err)
}

func TestDefaultSimilarityEngine_ComputeAndBatch(t *testing.T) {
	engine := NewDefaultSimilarityEngine()
	fp1 := fp([]byte{0xFF})
	fp2 := fp([]byte{0x0F})

	score, err := engine.ComputeSimilarity(fp1, fp2, MetricTanimoto)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score, 1e-9)

	scores, err := engine.BatchComputeSimilarity(fp1, []*Fingerprint{fp1, fp2}, MetricTanimoto)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.InDelta(t, 1.0, scores[0], 1e-9)
	assert.InDelta(t, 0.5, scores[1], 1e-9)
}

func TestDefaultSimilarityEngine_SearchSimilarNotImplemented(t *testing.T) {
	engine := NewDefaultSimilarityEngine()
	_, err := engine.SearchSimilar(nil, fp([]byte{0xFF}), MetricTanimoto, 0.7, 10)
	assert.Error(t, err)
}

func TestClassifySimilarity(t *testing.T) {
	assert.Equal(t, "identical", ClassifySimilarity(1.0))
	assert.Equal(t, "identical", ClassifySimilarity(0.99))
	assert.Equal(t, "high", ClassifySimilarity(0.85))
	assert.Equal(t, "moderate", ClassifySimilarity(0.70))
	assert.Equal(t, "low", ClassifySimilarity(0.50))
	assert.Equal(t, "dissimilar", ClassifySimilarity(0.0))
}

func TestSimilaritySearchOptions_Validate(t *testing.T) {
	opts := DefaultSimilaritySearchOptions()
	assert.NoError(t, opts.Validate())

	opts.Metric = SimilarityMetric("bogus")
	assert.Error(t, opts.Validate())

	opts = DefaultSimilaritySearchOptions()
	opts.Threshold = 1.5
	assert.Error(t, opts.Validate())

	opts = DefaultSimilaritySearchOptions()
	opts.Limit = 0
	assert.Error(t, opts.Validate())
}

func TestFusionStrategies(t *testing.T) {
	scores := map[mtypes.FingerprintType]float64{
		mtypes.FPMorgan: 0.8,
		mtypes.FPMACCS:  0.6,
	}

	t.Run("WeightedAverage", func(t *testing.T) {
		strategy := &WeightedAverageFusion{}

		got, err := strategy.Fuse(scores, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0.7, got, 1e-9)

		weights := map[mtypes.FingerprintType]float64{
			mtypes.FPMorgan: 2.0,
			mtypes.FPMACCS:  1.0,
		}
		got, err = strategy.Fuse(scores, weights)
		require.NoError(t, err)
		assert.InDelta(t, (0.8*2+0.6*1)/3.0, got, 1e-9)

		got, err = strategy.Fuse(map[mtypes.FingerprintType]float64{}, nil)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	})

	t.Run("Max", func(t *testing.T) {
		got, err := (&MaxFusion{}).Fuse(scores, nil)
		require.NoError(t, err)
		assert.Equal(t, 0.8, got)
	})

	t.Run("Min", func(t *testing.T) {
		got, err := (&MinFusion{}).Fuse(scores, nil)
		require.NoError(t, err)
		assert.Equal(t, 0.6, got)
	})
}
