package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corecrm/crm-sync/internal/entity"
)

func TestValidateBatchSyncInputValid(t *testing.T) {
	errs := ValidateBatchSyncInput(BatchSyncInput{
		Direction: DirectionLeadToContact,
		Leads:     []entity.Lead{{ID: "lead-1"}, {ID: "lead-2"}},
	})
	assert.Empty(t, errs)

	errs = ValidateBatchSyncInput(BatchSyncInput{
		Direction: DirectionContactToLead,
		Contacts:  []entity.Contact{{ID: "contact-1"}},
	})
	assert.Empty(t, errs)
}

func TestValidateBatchSyncInputMissingDirection(t *testing.T) {
	errs := ValidateBatchSyncInput(BatchSyncInput{Leads: []entity.Lead{{ID: "lead-1"}}})

	assert.Len(t, errs, 1)
	assert.Equal(t, "direction", errs[0].Field)
	assert.Equal(t, "is required", errs[0].Message)
}

func TestValidateBatchSyncInputUnknownDirection(t *testing.T) {
	errs := ValidateBatchSyncInput(BatchSyncInput{Direction: "diagonal"})

	assert.Len(t, errs, 1)
	assert.Equal(t, "direction", errs[0].Field)
}

func TestValidateBatchSyncInputEmptyRecords(t *testing.T) {
	errs := ValidateBatchSyncInput(BatchSyncInput{Direction: DirectionLeadToContact})

	assert.Len(t, errs, 1)
	assert.Equal(t, "leads", errs[0].Field)
}

func TestValidateBatchSyncInputRecordWithoutID(t *testing.T) {
	errs := ValidateBatchSyncInput(BatchSyncInput{
		Direction: DirectionContactToLead,
		Contacts:  []entity.Contact{{ID: "contact-1"}, {ID: "  "}},
	})

	assert.Len(t, errs, 1)
	assert.Equal(t, "contacts[1].id", errs[0].Field)
}

func TestValidateBatchSyncInputMixedListsRejected(t *testing.T) {
	errs := ValidateBatchSyncInput(BatchSyncInput{
		Direction: DirectionLeadToContact,
		Leads:     []entity.Lead{{ID: "lead-1"}},
		Contacts:  []entity.Contact{{ID: "contact-1"}},
	})

	assert.Len(t, errs, 1)
	assert.Equal(t, "contacts", errs[0].Field)
}
