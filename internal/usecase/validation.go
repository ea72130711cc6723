package usecase

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateBatchSyncInput(input BatchSyncInput) []ValidationError {
	var errors []ValidationError

	switch input.Direction {
	case DirectionLeadToContact:
		if len(input.Leads) == 0 {
			errors = append(errors, ValidationError{"leads", "at least one record is required"})
		}
		for i, l := range input.Leads {
			if strings.TrimSpace(l.ID) == "" {
				errors = append(errors, ValidationError{fmt.Sprintf("leads[%d].id", i), "is required"})
			}
		}
		if len(input.Contacts) > 0 {
			errors = append(errors, ValidationError{"contacts", "must be empty for lead_to_contact"})
		}

	case DirectionContactToLead:
		if len(input.Contacts) == 0 {
			errors = append(errors, ValidationError{"contacts", "at least one record is required"})
		}
		for i, c := range input.Contacts {
			if strings.TrimSpace(c.ID) == "" {
				errors = append(errors, ValidationError{fmt.Sprintf("contacts[%d].id", i), "is required"})
			}
		}
		if len(input.Leads) > 0 {
			errors = append(errors, ValidationError{"leads", "must be empty for contact_to_lead"})
		}

	case "":
		errors = append(errors, ValidationError{"direction", "is required"})

	default:
		errors = append(errors, ValidationError{"direction", "must be lead_to_contact or contact_to_lead"})
	}

	return errors
}
