package molecule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/pkg/errors"
	"github.com/turtacn/molgraph/pkg/types/common"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// mockRepository is a testify-based mock of Repository.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Save(ctx context.Context, mol *Molecule) error {
	return m.Called(ctx, mol).Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id common.ID) (*Molecule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Molecule), args.Error(1)
}

func (m *mockRepository) FindBySMILES(ctx context.Context, smiles string) (*Molecule, error) {
	args := m.Called(ctx, smiles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Molecule), args.Error(1)
}

func (m *mockRepository) FindByInChIKey(ctx context.Context, inchiKey string) (*Molecule, error) {
	args := m.Called(ctx, inchiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Molecule), args.Error(1)
}

func (m *mockRepository) Search(ctx context.Context, req mtypes.MoleculeSearchRequest) (*mtypes.MoleculeSearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mtypes.MoleculeSearchResponse), args.Error(1)
}

func (m *mockRepository) FindSimilar(ctx context.Context, fp *Fingerprint, fpType mtypes.FingerprintType, threshold float64, maxResults int) ([]*Molecule, error) {
	args := m.Called(ctx, fp, fpType, threshold, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Molecule), args.Error(1)
}

func (m *mockRepository) SubstructureSearch(ctx context.Context, smarts string, maxResults int) ([]*Molecule, error) {
	args := m.Called(ctx, smarts, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Molecule), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, mol *Molecule) error {
	return m.Called(ctx, mol).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id common.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) FindByPatentID(ctx context.Context, patentID common.ID) ([]*Molecule, error) {
	args := m.Called(ctx, patentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Molecule), args.Error(1)
}

func (m *mockRepository) BatchSave(ctx context.Context, molecules []*Molecule) error {
	return m.Called(ctx, molecules).Error(0)
}

func (m *mockRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_CreateMolecule_New(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, logging.NewNopLogger())

	repo.On("FindBySMILES", mock.Anything, "CCO").
		Return(nil, errors.New(errors.CodeNotFound, "not found"))
	repo.On("Save", mock.Anything, mock.AnythingOfType("*molecule.Molecule")).Return(nil)

	mol, err := svc.CreateMolecule(context.Background(), "CCO", mtypes.TypeSmallMolecule)

	require.NoError(t, err)
	assert.Equal(t, "CCO", mol.CanonicalSMILES)
	assert.NotEmpty(t, mol.Fingerprints)
	repo.AssertExpectations(t)
}

func TestService_CreateMolecule_Deduplicates(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, logging.NewNopLogger())

	existing, err := NewMolecule("CCO", mtypes.TypeSmallMolecule)
	require.NoError(t, err)

	repo.On("FindBySMILES", mock.Anything, "CCO").Return(existing, nil)

	mol, err := svc.CreateMolecule(context.Background(), "CCO", mtypes.TypeSmallMolecule)

	require.NoError(t, err)
	assert.Equal(t, existing.ID, mol.ID)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_CreateMolecule_InvalidSMILES(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, logging.NewNopLogger())

	repo.On("FindBySMILES", mock.Anything, "((").
		Return(nil, errors.New(errors.CodeNotFound, "not found"))

	_, err := svc.CreateMolecule(context.Background(), "((", mtypes.TypeSmallMolecule)
	assert.Error(t, err)
}

func TestService_GetMolecule_NotFound(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, logging.NewNopLogger())

	repo.On("FindByID", mock.Anything, common.ID("missing")).
		Return(nil, errors.New(errors.CodeNotFound, "not found"))

	_, err := svc.GetMolecule(context.Background(), common.ID("missing"))
	assert.Error(t, err)
}

func TestService_FindSimilarMolecules(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, logging.NewNopLogger())

	match, err := NewMolecule("CCO", mtypes.TypeSmallMolecule)
	require.NoError(t, err)

	repo.On("FindSimilar", mock.Anything, mock.AnythingOfType("*molecule.Fingerprint"), mtypes.FPMorgan, 0.7, 10).
		Return([]*Molecule{match}, nil)

	results, err := svc.FindSimilarMolecules(context.Background(), "CCO", 0.7, mtypes.FPMorgan, 10)

	require.NoError(t, err)
	assert.Len(t, results, 1)
	repo.AssertExpectations(t)
}

func TestService_SubstructureSearch_RejectsEmptyPattern(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, logging.NewNopLogger())

	_, err := svc.SubstructureSearch(context.Background(), "", 10)
	assert.Error(t, err)
}

func TestService_BatchImportMolecules_SkipsInvalidAndDuplicate(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, logging.NewNopLogger())

	dup, err := NewMolecule("CCO", mtypes.TypeSmallMolecule)
	require.NoError(t, err)

	repo.On("FindBySMILES", mock.Anything, "CCO").Return(dup, nil)
	repo.On("FindBySMILES", mock.Anything, "((").
		Return(nil, errors.New(errors.CodeNotFound, "not found"))
	repo.On("FindBySMILES", mock.Anything, "c1ccccc1").
		Return(nil, errors.New(errors.CodeNotFound, "not found"))
	repo.On("BatchSave", mock.Anything, mock.MatchedBy(func(mols []*Molecule) bool {
		return len(mols) == 1
	})).Return(nil)

	count, err := svc.BatchImportMolecules(context.Background(), []string{"CCO", "((", "c1ccccc1"}, mtypes.TypeSmallMolecule)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestService_GetMoleculesByPatent_RejectsEmptyID(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, logging.NewNopLogger())

	_, err := svc.GetMoleculesByPatent(context.Background(), common.ID(""))
	assert.Error(t, err)
}

func TestService_GetMoleculesByPatent(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, logging.NewNopLogger())

	mol, err := NewMolecule("CCO", mtypes.TypeSmallMolecule)
	require.NoError(t, err)

	repo.On("FindByPatentID", mock.Anything, common.ID("patent-1")).Return([]*Molecule{mol}, nil)

	results, err := svc.GetMoleculesByPatent(context.Background(), common.ID("patent-1"))

	require.NoError(t, err)
	assert.Len(t, results, 1)
}
