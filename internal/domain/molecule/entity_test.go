package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/pkg/types/common"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

func TestNewMolecule_ParsesAndCanonicalizes(t *testing.T) {
	mol, err := NewMolecule("OCC", mtypes.TypeSmallMolecule)
	require.NoError(t, err)

	assert.NotEmpty(t, mol.ID)
	assert.Equal(t, "OCC", mol.SMILES)
	assert.NotEmpty(t, mol.CanonicalSMILES)
	assert.NotEmpty(t, mol.InChIKey)
	assert.Equal(t, mtypes.TypeSmallMolecule, mol.Type)
	assert.Empty(t, mol.SourcePatentIDs)

	events := mol.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "molecule.created", events[0].EventType())

	// Events are cleared after being read once.
	assert.Empty(t, mol.Events())
}

func TestNewMolecule_RejectsEmptySMILES(t *testing.T) {
	_, err := NewMolecule("", mtypes.TypeSmallMolecule)
	assert.Error(t, err)

	_, err = NewMolecule("   ", mtypes.TypeSmallMolecule)
	assert.Error(t, err)
}

func TestNewMolecule_RejectsInvalidSMILES(t *testing.T) {
	_, err := NewMolecule("((", mtypes.TypeSmallMolecule)
	assert.Error(t, err)
}

func TestNewMolecule_RejectsMultiFragment(t *testing.T) {
	_, err := NewMolecule("C.C", mtypes.TypeSmallMolecule)
	assert.Error(t, err)
}

func TestMolecule_CalculateFingerprint(t *testing.T) {
	mol, err := NewMolecule("c1ccccc1", mtypes.TypeSmallMolecule)
	require.NoError(t, err)

	err = mol.CalculateFingerprint(mtypes.FPMorgan)
	require.NoError(t, err)

	fp, ok := mol.Fingerprints[mtypes.FPMorgan]
	require.True(t, ok)
	assert.Equal(t, mtypes.FPMorgan, fp.Type)

	events := mol.Events()
	require.Len(t, events, 2) // created + fingerprint_calculated
	assert.Equal(t, "molecule.fingerprint_calculated", events[1].EventType())
}

func TestMolecule_CalculateFingerprint_AtomPairNotImplemented(t *testing.T) {
	mol, err := NewMolecule("CCO", mtypes.TypeSmallMolecule)
	require.NoError(t, err)

	err = mol.CalculateFingerprint(mtypes.FPAtomPair)
	assert.Error(t, err)
}

func TestMolecule_CalculateFingerprint_RejectsUnknownType(t *testing.T) {
	mol, err := NewMolecule("CCO", mtypes.TypeSmallMolecule)
	require.NoError(t, err)

	err = mol.CalculateFingerprint(mtypes.FingerprintType("bogus"))
	assert.Error(t, err)
}

func TestMolecule_CalculateProperties(t *testing.T) {
	mol, err := NewMolecule("CCO", mtypes.TypeSmallMolecule)
	require.NoError(t, err)

	err = mol.CalculateProperties()
	require.NoError(t, err)

	assert.NotEmpty(t, mol.MolecularFormula)
	assert.Greater(t, mol.MolecularWeight, 0.0)
}

func TestMolecule_SimilarityTo(t *testing.T) {
	mol1, err := NewMolecule("CCO", mtypes.TypeSmallMolecule)
	require.NoError(t, err)
	mol2, err := NewMolecule("CCO", mtypes.TypeSmallMolecule)
	require.NoError(t, err)

	require.NoError(t, mol1.CalculateFingerprint(mtypes.FPMorgan))
	require.NoError(t, mol2.CalculateFingerprint(mtypes.FPMorgan))

	score, err := mol1.SimilarityTo(mol2, mtypes.FPMorgan)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestMolecule_SimilarityTo_RequiresComputedFingerprint(t *testing.T) {
	mol1, err := NewMolecule("CCO", mtypes.TypeSmallMolecule)
	require.NoError(t, err)
	mol2, err := NewMolecule("CCO", mtypes.TypeSmallMolecule)
	require.NoError(t, err)

	_, err = mol1.SimilarityTo(mol2, mtypes.FPMorgan)
	assert.Error(t, err)

	require.NoError(t, mol1.CalculateFingerprint(mtypes.FPMorgan))
	_, err = mol1.SimilarityTo(mol2, mtypes.FPMorgan)
	assert.Error(t, err)
}

func TestMolecule_AddSourcePatent_DeduplicatesEntries(t *testing.T) {
	mol, err := NewMolecule("CCO", mtypes.TypeSmallMolecule)
	require.NoError(t, err)

	mol.AddSourcePatent(common.ID("patent-1"))
	mol.AddSourcePatent(common.ID("patent-1"))
	mol.AddSourcePatent(common.ID("patent-2"))

	assert.Equal(t, []common.ID{common.ID("patent-1"), common.ID("patent-2")}, mol.SourcePatentIDs)
}

func TestMolecule_IsOLEDMaterial(t *testing.T) {
	mol, err := NewMolecule("CCO", mtypes.TypeSmallMolecule)
	require.NoError(t, err)
	assert.False(t, mol.IsOLEDMaterial())

	oled, err := NewMolecule("CCO", mtypes.TypeOLEDMaterial)
	require.NoError(t, err)
	assert.True(t, oled.IsOLEDMaterial())
}

func TestMolecule_SetOLEDProperties(t *testing.T) {
	mol, err := NewMolecule("CCO", mtypes.TypeOLEDMaterial)
	require.NoError(t, err)

	mol.SetOLEDProperties(-5.2, -2.4, 2.8)

	require.NotNil(t, mol.Properties.HOMO)
	require.NotNil(t, mol.Properties.LUMO)
	require.NotNil(t, mol.Properties.BandGap)
	assert.Equal(t, -5.2, *mol.Properties.HOMO)
	assert.Equal(t, -2.4, *mol.Properties.LUMO)
	assert.Equal(t, 2.8, *mol.Properties.BandGap)
}

func TestMolecule_ToDTOAndFromDTO_RoundTrip(t *testing.T) {
	mol, err := NewMolecule("c1ccccc1", mtypes.TypeSmallMolecule)
	require.NoError(t, err)
	require.NoError(t, mol.CalculateFingerprint(mtypes.FPMorgan))
	require.NoError(t, mol.CalculateFingerprint(mtypes.FPMACCS))
	mol.AddSourcePatent("patent-1")

	dto := mol.ToDTO()
	assert.Equal(t, mol.ID, dto.ID)
	assert.Equal(t, mol.SMILES, dto.SMILES)
	assert.Equal(t, mol.InChIKey, dto.InChIKey)
	assert.Len(t, dto.Fingerprints, 2)

	restored := MoleculeFromDTO(dto)
	assert.Equal(t, mol.ID, restored.ID)
	assert.Equal(t, mol.SMILES, restored.SMILES)
	require.Contains(t, restored.Fingerprints, mtypes.FPMorgan)
	assert.Equal(t, mol.Fingerprints[mtypes.FPMorgan].NumOnBits, restored.Fingerprints[mtypes.FPMorgan].NumOnBits)
}
