package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/corecrm/crm-sync/internal/entity"
	"github.com/corecrm/crm-sync/internal/infra/integration/crmapi"
)

// MockCRMGateway
type MockCRMGateway struct {
	mock.Mock
}

func (m *MockCRMGateway) FindContactsByLead(ctx context.Context, sess crmapi.Session, leadID string) ([]entity.Contact, error) {
	args := m.Called(ctx, sess, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contact), args.Error(1)
}

func (m *MockCRMGateway) UpdateContact(ctx context.Context, sess crmapi.Session, id string, input crmapi.UpdateContactInput) (*entity.Contact, error) {
	args := m.Called(ctx, sess, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockCRMGateway) GetLead(ctx context.Context, sess crmapi.Session, id string) (*entity.Lead, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockCRMGateway) UpdateLead(ctx context.Context, sess crmapi.Session, id string, input crmapi.UpdateLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, sess, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockCRMGateway) GetDeletionInfo(ctx context.Context, sess crmapi.Session, entityType, id string) (*entity.DeletionCheck, error) {
	args := m.Called(ctx, sess, entityType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DeletionCheck), args.Error(1)
}

func (m *MockCRMGateway) SoftDelete(ctx context.Context, sess crmapi.Session, entityType, id string, input crmapi.SoftDeleteInput) error {
	args := m.Called(ctx, sess, entityType, id, input)
	return args.Error(0)
}

func (m *MockCRMGateway) GetDealStages(ctx context.Context, sess crmapi.Session) ([]string, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockAuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Insert(ctx context.Context, entry *entity.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) DeleteOlderThan(ctx context.Context, window time.Duration) (int64, error) {
	args := m.Called(ctx, window)
	return args.Get(0).(int64), args.Error(1)
}

func strPtr(s string) *string {
	return &s
}

var testSession = crmapi.Session{Token: "tok-abc"}

// ============ TESTES ============

// TestSyncLeadToContactPropagatesSharedFields - edição do lead atualiza o contato pareado
func TestSyncLeadToContactPropagatesSharedFields(t *testing.T) {
	ctx := context.Background()
	mockGateway := new(MockCRMGateway)

	lead := &entity.Lead{
		ID:        "lead-1",
		FirstName: "Maria",
		LastName:  "Souza",
		Email:     "maria@example.com",
		Phone:     "+55 11 98888-7777",
		LeadStage: entity.LeadStageQualified,
	}
	contact := entity.Contact{
		ID:        "contact-1",
		FirstName: "Antiga",
		LastName:  "Antiga",
		Email:     "antiga@example.com",
		Phone:     "000",
		LeadID:    strPtr("lead-1"),
	}

	mockGateway.On("FindContactsByLead", ctx, testSession, "lead-1").Return([]entity.Contact{contact}, nil)
	mockGateway.On("UpdateContact", ctx, testSession, "contact-1", crmapi.UpdateContactInput{
		FirstName: "Maria",
		LastName:  "Souza",
		Email:     "maria@example.com",
		Phone:     "+55 11 98888-7777",
		LeadID:    strPtr("lead-1"),
	}).Return(&entity.Contact{ID: "contact-1", LeadID: strPtr("lead-1")}, nil)

	uc := NewSyncUseCase(mockGateway, nil)
	outcome, err := uc.SyncLeadToContact(ctx, testSession, lead)

	assert.NoError(t, err)
	assert.True(t, outcome.Synced)
	assert.Equal(t, "contact-1", outcome.TargetID)
	mockGateway.AssertExpectations(t)
}

// TestSyncLeadToContactPreservesLeadReference - o payload mantém o leadId do contato intacto
func TestSyncLeadToContactPreservesLeadReference(t *testing.T) {
	ctx := context.Background()
	mockGateway := new(MockCRMGateway)

	contact := entity.Contact{ID: "contact-9", LeadID: strPtr("lead-9")}
	mockGateway.On("FindContactsByLead", ctx, testSession, "lead-9").Return([]entity.Contact{contact}, nil)
	mockGateway.On("UpdateContact", ctx, testSession, "contact-9", mock.MatchedBy(func(in crmapi.UpdateContactInput) bool {
		return in.LeadID != nil && *in.LeadID == "lead-9"
	})).Return(&entity.Contact{ID: "contact-9"}, nil)

	uc := NewSyncUseCase(mockGateway, nil)
	_, err := uc.SyncLeadToContact(ctx, testSession, &entity.Lead{ID: "lead-9", LastName: "X"})

	assert.NoError(t, err)
	mockGateway.AssertExpectations(t)
}

// TestSyncLeadToContactNoAssociatedContact - lead sem contato é no-op, não erro
func TestSyncLeadToContactNoAssociatedContact(t *testing.T) {
	ctx := context.Background()
	mockGateway := new(MockCRMGateway)

	mockGateway.On("FindContactsByLead", ctx, testSession, "lead-solo").Return([]entity.Contact{}, nil)

	uc := NewSyncUseCase(mockGateway, nil)
	outcome, err := uc.SyncLeadToContact(ctx, testSession, &entity.Lead{ID: "lead-solo"})

	assert.NoError(t, err)
	assert.False(t, outcome.Synced)
	assert.Equal(t, "no associated contact", outcome.Detail)
	mockGateway.AssertNotCalled(t, "UpdateContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestSyncLeadToContactPicksMostRecent - mais de um contato pareado: desempate pelo updatedAt
func TestSyncLeadToContactPicksMostRecent(t *testing.T) {
	ctx := context.Background()
	mockGateway := new(MockCRMGateway)

	older := entity.Contact{ID: "contact-old", LeadID: strPtr("lead-2"), UpdatedAt: time.Now().Add(-48 * time.Hour)}
	newer := entity.Contact{ID: "contact-new", LeadID: strPtr("lead-2"), UpdatedAt: time.Now().Add(-1 * time.Hour)}

	mockGateway.On("FindContactsByLead", ctx, testSession, "lead-2").Return([]entity.Contact{older, newer}, nil)
	mockGateway.On("UpdateContact", ctx, testSession, "contact-new", mock.Anything).Return(&entity.Contact{ID: "contact-new"}, nil)

	uc := NewSyncUseCase(mockGateway, nil)
	outcome, err := uc.SyncLeadToContact(ctx, testSession, &entity.Lead{ID: "lead-2"})

	assert.NoError(t, err)
	assert.Equal(t, "contact-new", outcome.TargetID)
	mockGateway.AssertNotCalled(t, "UpdateContact", ctx, testSession, "contact-old", mock.Anything)
}

// TestSyncLeadToContactUpstreamFailure - falha da API sobe sem retry
func TestSyncLeadToContactUpstreamFailure(t *testing.T) {
	ctx := context.Background()
	mockGateway := new(MockCRMGateway)

	contact := entity.Contact{ID: "contact-1", LeadID: strPtr("lead-1")}
	mockGateway.On("FindContactsByLead", ctx, testSession, "lead-1").Return([]entity.Contact{contact}, nil)
	mockGateway.On("UpdateContact", ctx, testSession, "contact-1", mock.Anything).Return(nil, errors.New("status 500")).Once()

	uc := NewSyncUseCase(mockGateway, nil)
	outcome, err := uc.SyncLeadToContact(ctx, testSession, &entity.Lead{ID: "lead-1"})

	assert.Error(t, err)
	assert.Nil(t, outcome)
	mockGateway.AssertNumberOfCalls(t, "UpdateContact", 1)
}

// TestSyncContactToLeadPreservesSourceAndStage - leadSource e leadStage nunca são sobrescritos
func TestSyncContactToLeadPreservesSourceAndStage(t *testing.T) {
	ctx := context.Background()
	mockGateway := new(MockCRMGateway)

	contact := &entity.Contact{
		ID:        "contact-5",
		FirstName: "Carla",
		LastName:  "Lima",
		Email:     "carla@example.com",
		Phone:     "555",
		LeadID:    strPtr("lead-5"),
	}
	lead := &entity.Lead{
		ID:         "lead-5",
		FirstName:  "Velho",
		LastName:   "Nome",
		LeadSource: "Website",
		LeadStage:  entity.LeadStageContacted,
	}

	mockGateway.On("GetLead", ctx, testSession, "lead-5").Return(lead, nil)
	mockGateway.On("UpdateLead", ctx, testSession, "lead-5", crmapi.UpdateLeadInput{
		FirstName:  "Carla",
		LastName:   "Lima",
		Email:      "carla@example.com",
		Phone:      "555",
		LeadSource: "Website",
		LeadStage:  entity.LeadStageContacted,
	}).Return(&entity.Lead{ID: "lead-5"}, nil)

	uc := NewSyncUseCase(mockGateway, nil)
	outcome, err := uc.SyncContactToLead(ctx, testSession, contact)

	assert.NoError(t, err)
	assert.True(t, outcome.Synced)
	mockGateway.AssertExpectations(t)
}

// TestSyncContactToLeadWithoutLead - contato avulso não toca a rede e devolve nil
func TestSyncContactToLeadWithoutLead(t *testing.T) {
	ctx := context.Background()
	mockGateway := new(MockCRMGateway)

	uc := NewSyncUseCase(mockGateway, nil)

	outcome, err := uc.SyncContactToLead(ctx, testSession, &entity.Contact{ID: "contact-7"})
	assert.NoError(t, err)
	assert.Nil(t, outcome)

	empty := ""
	outcome, err = uc.SyncContactToLead(ctx, testSession, &entity.Contact{ID: "contact-8", LeadID: &empty})
	assert.NoError(t, err)
	assert.Nil(t, outcome)

	mockGateway.AssertNotCalled(t, "GetLead", mock.Anything, mock.Anything, mock.Anything)
	mockGateway.AssertNotCalled(t, "UpdateLead", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestSyncContactToLeadLeadGone - leadId aponta para lead já removido
func TestSyncContactToLeadLeadGone(t *testing.T) {
	ctx := context.Background()
	mockGateway := new(MockCRMGateway)

	mockGateway.On("GetLead", ctx, testSession, "lead-gone").Return(nil, entity.ErrLeadNotFound)

	uc := NewSyncUseCase(mockGateway, nil)
	outcome, err := uc.SyncContactToLead(ctx, testSession, &entity.Contact{ID: "contact-3", LeadID: strPtr("lead-gone")})

	assert.NoError(t, err)
	assert.False(t, outcome.Synced)
	assert.Equal(t, "lead not found", outcome.Detail)
	mockGateway.AssertNotCalled(t, "UpdateLead", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestSyncIsIdempotent - re-emitir o mesmo sync produz o mesmo payload
func TestSyncIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mockGateway := new(MockCRMGateway)

	lead := &entity.Lead{ID: "lead-1", FirstName: "Ana", LastName: "Reis", Email: "ana@example.com", Phone: "111"}
	contact := entity.Contact{ID: "contact-1", FirstName: "Ana", LastName: "Reis", Email: "ana@example.com", Phone: "111", LeadID: strPtr("lead-1")}

	expected := crmapi.UpdateContactInput{
		FirstName: "Ana", LastName: "Reis", Email: "ana@example.com", Phone: "111", LeadID: strPtr("lead-1"),
	}

	mockGateway.On("FindContactsByLead", ctx, testSession, "lead-1").Return([]entity.Contact{contact}, nil).Twice()
	mockGateway.On("UpdateContact", ctx, testSession, "contact-1", expected).Return(&entity.Contact{ID: "contact-1"}, nil).Twice()

	uc := NewSyncUseCase(mockGateway, nil)

	first, err := uc.SyncLeadToContact(ctx, testSession, lead)
	assert.NoError(t, err)
	second, err := uc.SyncLeadToContact(ctx, testSession, lead)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	mockGateway.AssertExpectations(t)
}

// TestSyncRecordsAuditTrail - sync bem-sucedido grava a trilha de auditoria
func TestSyncRecordsAuditTrail(t *testing.T) {
	ctx := context.Background()
	mockGateway := new(MockCRMGateway)
	mockAudit := new(MockAuditRepository)

	contact := entity.Contact{ID: "contact-1", LeadID: strPtr("lead-1")}
	mockGateway.On("FindContactsByLead", ctx, testSession, "lead-1").Return([]entity.Contact{contact}, nil)
	mockGateway.On("UpdateContact", ctx, testSession, "contact-1", mock.Anything).Return(&entity.Contact{ID: "contact-1"}, nil)

	mockAudit.On("Insert", ctx, mock.MatchedBy(func(e *entity.AuditEntry) bool {
		return e.Action == entity.AuditActionSync &&
			e.EntityType == EntityLeads &&
			e.EntityID == "lead-1" &&
			e.Direction == DirectionLeadToContact &&
			e.Outcome == "synced"
	})).Return(nil)

	uc := NewSyncUseCase(mockGateway, mockAudit)
	_, err := uc.SyncLeadToContact(ctx, testSession, &entity.Lead{ID: "lead-1"})

	assert.NoError(t, err)
	mockAudit.AssertExpectations(t)
}

// TestSyncAuditFailureDoesNotBreakSync - auditoria fora do ar não derruba o sync
func TestSyncAuditFailureDoesNotBreakSync(t *testing.T) {
	ctx := context.Background()
	mockGateway := new(MockCRMGateway)
	mockAudit := new(MockAuditRepository)

	contact := entity.Contact{ID: "contact-1", LeadID: strPtr("lead-1")}
	mockGateway.On("FindContactsByLead", ctx, testSession, "lead-1").Return([]entity.Contact{contact}, nil)
	mockGateway.On("UpdateContact", ctx, testSession, "contact-1", mock.Anything).Return(&entity.Contact{ID: "contact-1"}, nil)
	mockAudit.On("Insert", ctx, mock.Anything).Return(errors.New("db offline"))

	uc := NewSyncUseCase(mockGateway, mockAudit)
	outcome, err := uc.SyncLeadToContact(ctx, testSession, &entity.Lead{ID: "lead-1"})

	assert.NoError(t, err)
	assert.True(t, outcome.Synced)
}

// TestSyncRequiresRecordID - registro sem id é barrado antes da rede
func TestSyncRequiresRecordID(t *testing.T) {
	ctx := context.Background()
	mockGateway := new(MockCRMGateway)
	uc := NewSyncUseCase(mockGateway, nil)

	_, err := uc.SyncLeadToContact(ctx, testSession, &entity.Lead{})
	assert.Error(t, err)
	assert.True(t, IsDomainError(err))

	_, err = uc.SyncContactToLead(ctx, testSession, &entity.Contact{})
	assert.Error(t, err)
	assert.True(t, IsDomainError(err))

	mockGateway.AssertNotCalled(t, "FindContactsByLead", mock.Anything, mock.Anything, mock.Anything)
	mockGateway.AssertNotCalled(t, "GetLead", mock.Anything, mock.Anything, mock.Anything)
}
