package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type mockMoleculeApp struct {
	mock.Mock
}

func (m *mockMoleculeApp) GetByID(ctx context.Context, id string) (*Molecule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Molecule), args.Error(1)
}

func (m *mockMoleculeApp) Create(ctx context.Context, cmd *CreateMoleculeCommand) (*Molecule, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Molecule), args.Error(1)
}

func (m *mockMoleculeApp) Update(ctx context.Context, cmd *UpdateMoleculeCommand) (*Molecule, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Molecule), args.Error(1)
}

func (m *mockMoleculeApp) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMoleculeApp) List(ctx context.Context, opts *ListMoleculesOptions) (*MoleculeList, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MoleculeList), args.Error(1)
}

func (m *mockMoleculeApp) PredictProperties(ctx context.Context, smiles string) (*MoleculeProperties, error) {
	args := m.Called(ctx, smiles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MoleculeProperties), args.Error(1)
}

type mockSimilaritySearch struct {
	mock.Mock
}

func (m *mockSimilaritySearch) Search(ctx context.Context, query string, threshold float64, fingerprintType string, limit int) ([]*SimilarMolecule, error) {
	args := m.Called(ctx, query, threshold, fingerprintType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*SimilarMolecule), args.Error(1)
}

func testMolecule() *Molecule {
	return &Molecule{
		ID:              "mol-123",
		SMILES:          "c1ccccc1",
		InChIKey:        "UHOVQNZJYSORNB-UHFFFAOYSA-N",
		MolecularWeight: 78.11,
		Formula:         "C6H6",
		Name:            "Benzene",
		MoleculeType:    "small_molecule",
	}
}

func TestGetMolecule_Success(t *testing.T) {
	repo := new(mockMoleculeApp)
	server := NewMoleculeServiceServer(repo, nil, nil)

	repo.On("GetByID", mock.Anything, "mol-123").Return(testMolecule(), nil)

	resp, err := server.GetMolecule(context.Background(), &GetMoleculeRequest{Id: "mol-123"})

	assert.NoError(t, err)
	assert.Equal(t, "c1ccccc1", resp.Molecule.Smiles)
	repo.AssertExpectations(t)
}

func TestGetMolecule_NotFound(t *testing.T) {
	repo := new(mockMoleculeApp)
	server := NewMoleculeServiceServer(repo, nil, nil)

	repo.On("GetByID", mock.Anything, "nonexistent").Return(nil, &ErrNotFound{Msg: "molecule not found"})

	resp, err := server.GetMolecule(context.Background(), &GetMoleculeRequest{Id: "nonexistent"})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestGetMolecule_EmptyID(t *testing.T) {
	server := NewMoleculeServiceServer(nil, nil, nil)

	resp, err := server.GetMolecule(context.Background(), &GetMoleculeRequest{Id: ""})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetMolecule_NilApp_ReturnsSimulatedResponse(t *testing.T) {
	server := NewMoleculeServiceServer(nil, nil, nil)

	resp, err := server.GetMolecule(context.Background(), &GetMoleculeRequest{Id: "mol-999"})

	assert.NoError(t, err)
	assert.Equal(t, "mol-999", resp.Molecule.Id)
}

func TestCreateMolecule_Success(t *testing.T) {
	repo := new(mockMoleculeApp)
	server := NewMoleculeServiceServer(repo, nil, nil)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*services.CreateMoleculeCommand")).
		Return(testMolecule(), nil)

	resp, err := server.CreateMolecule(context.Background(), &CreateMoleculeRequest{
		Smiles: "c1ccccc1",
		Name:   "Test Molecule",
	})

	assert.NoError(t, err)
	assert.Equal(t, "c1ccccc1", resp.Molecule.Smiles)
	repo.AssertExpectations(t)
}

func TestCreateMolecule_RejectsEmptySMILES(t *testing.T) {
	server := NewMoleculeServiceServer(nil, nil, nil)

	resp, err := server.CreateMolecule(context.Background(), &CreateMoleculeRequest{Smiles: ""})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCreateMolecule_RejectsInvalidSMILESChars(t *testing.T) {
	server := NewMoleculeServiceServer(nil, nil, nil)

	resp, err := server.CreateMolecule(context.Background(), &CreateMoleculeRequest{Smiles: "not smiles!"})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCreateMolecule_Conflict(t *testing.T) {
	repo := new(mockMoleculeApp)
	server := NewMoleculeServiceServer(repo, nil, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, &ErrConflict{Msg: "molecule already exists"})

	resp, err := server.CreateMolecule(context.Background(), &CreateMoleculeRequest{Smiles: "c1ccccc1"})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestUpdateMolecule_Success(t *testing.T) {
	repo := new(mockMoleculeApp)
	server := NewMoleculeServiceServer(repo, nil, nil)

	repo.On("Update", mock.Anything, mock.AnythingOfType("*services.UpdateMoleculeCommand")).
		Return(testMolecule(), nil)

	resp, err := server.UpdateMolecule(context.Background(), &UpdateMoleculeRequest{
		Id:   "mol-123",
		Name: "Updated Name",
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	repo.AssertExpectations(t)
}

func TestUpdateMolecule_NotFound(t *testing.T) {
	repo := new(mockMoleculeApp)
	server := NewMoleculeServiceServer(repo, nil, nil)

	repo.On("Update", mock.Anything, mock.Anything).Return(nil, &ErrNotFound{Msg: "molecule not found"})

	resp, err := server.UpdateMolecule(context.Background(), &UpdateMoleculeRequest{Id: "nonexistent"})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestDeleteMolecule_Success(t *testing.T) {
	repo := new(mockMoleculeApp)
	server := NewMoleculeServiceServer(repo, nil, nil)

	repo.On("Delete", mock.Anything, "mol-123").Return(nil)

	resp, err := server.DeleteMolecule(context.Background(), &DeleteMoleculeRequest{Id: "mol-123"})

	assert.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestListMolecules_FirstPage(t *testing.T) {
	repo := new(mockMoleculeApp)
	server := NewMoleculeServiceServer(repo, nil, nil)

	repo.On("List", mock.Anything, mock.Anything).Return(&MoleculeList{
		Molecules:  []*Molecule{testMolecule(), testMolecule()},
		TotalCount: 50,
	}, nil)

	resp, err := server.ListMolecules(context.Background(), &ListMoleculesRequest{PageSize: 20})

	assert.NoError(t, err)
	assert.Len(t, resp.Molecules, 2)
	assert.Equal(t, int32(50), resp.TotalCount)
}

func TestListMolecules_RejectsOversizedPage(t *testing.T) {
	server := NewMoleculeServiceServer(nil, nil, nil)

	resp, err := server.ListMolecules(context.Background(), &ListMoleculesRequest{PageSize: 200})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestSearchSimilar_BySMILES(t *testing.T) {
	search := new(mockSimilaritySearch)
	server := NewMoleculeServiceServer(nil, search, nil)

	search.On("Search", mock.Anything, "c1ccccc1", 0.8, "", 10).
		Return([]*SimilarMolecule{{Molecule: testMolecule(), Similarity: 0.95}}, nil)

	resp, err := server.SearchSimilar(context.Background(), &SearchSimilarRequest{
		Smiles:    "c1ccccc1",
		Threshold: 0.8,
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, 0.95, resp.Results[0].Similarity)
}

func TestSearchSimilar_RejectsMissingQuery(t *testing.T) {
	server := NewMoleculeServiceServer(nil, nil, nil)

	resp, err := server.SearchSimilar(context.Background(), &SearchSimilarRequest{})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestSearchSimilar_RejectsInvalidThreshold(t *testing.T) {
	server := NewMoleculeServiceServer(nil, nil, nil)

	resp, err := server.SearchSimilar(context.Background(), &SearchSimilarRequest{
		Smiles:    "c1ccccc1",
		Threshold: 1.5,
	})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestPredictProperties_Success(t *testing.T) {
	repo := new(mockMoleculeApp)
	server := NewMoleculeServiceServer(repo, nil, nil)

	repo.On("PredictProperties", mock.Anything, "c1ccccc1").Return(&MoleculeProperties{
		HOMO: -5.2, LUMO: -2.1, BandGap: 3.1,
	}, nil)

	resp, err := server.PredictProperties(context.Background(), &PredictPropertiesRequest{Smiles: "c1ccccc1"})

	assert.NoError(t, err)
	assert.Equal(t, -5.2, resp.Properties.Homo)
	repo.AssertExpectations(t)
}

func TestPredictProperties_RejectsInvalidSMILES(t *testing.T) {
	server := NewMoleculeServiceServer(nil, nil, nil)

	resp, err := server.PredictProperties(context.Background(), &PredictPropertiesRequest{Smiles: ""})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestMapDomainError_AllCodes(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode codes.Code
	}{
		{"NotFound", &ErrNotFound{Msg: "not found"}, codes.NotFound},
		{"Validation", &ErrValidation{Msg: "invalid"}, codes.InvalidArgument},
		{"Conflict", &ErrConflict{Msg: "conflict"}, codes.AlreadyExists},
		{"Unauthorized", &ErrUnauthorized{Msg: "unauthorized"}, codes.PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grpcErr := mapDomainError(tt.err)
			assert.Equal(t, tt.expectedCode, status.Code(grpcErr))
		})
	}
}

func TestDomainToProto_NilMolecule(t *testing.T) {
	assert.Nil(t, domainToProto(nil))
}

func TestDomainToProto_FullConversion(t *testing.T) {
	mol := testMolecule()
	mol.OLEDLayer = "ETL"

	proto := domainToProto(mol)

	assert.Equal(t, "c1ccccc1", proto.Smiles)
	assert.Equal(t, "Benzene", proto.Name)
	assert.Equal(t, "ETL", proto.OledLayer)
}
