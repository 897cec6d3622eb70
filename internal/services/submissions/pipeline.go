package submissions

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BearBump/FreightSite/internal/models"
)

// Input хранит сырые значения полей, как они пришли из формы.
type Input map[string]string

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks fields in declaration order and stops at the first violation.
func Validate(v Variant, in Input) error {
	for _, f := range v.Fields {
		val := strings.TrimSpace(in[f.Name])
		if val == "" {
			if f.Required {
				msg := f.Message
				if msg == "" {
					msg = f.Label + " is required"
				}
				return &ValidationError{Field: f.Name, Message: msg}
			}
			continue
		}
		if len(f.Choices) > 0 && !slices.Contains(f.Choices, val) {
			return &ValidationError{
				Field:   f.Name,
				Message: fmt.Sprintf("%s must be one of: %s", f.Label, strings.Join(f.Choices, ", ")),
			}
		}
	}
	return nil
}

// Normalize строит строку для вставки: значения обрезаны, пустые необязательные
// поля становятся NULL, необъявленные ключи отбрасываются.
// id добавляет Service.Submit.
func Normalize(v Variant, in Input) models.Row {
	row := make(models.Row, len(v.Fields)+2)
	for _, f := range v.Fields {
		val := strings.TrimSpace(in[f.Name])
		if val == "" {
			val = f.Default
		}
		if val == "" {
			row[f.Name] = nil
			continue
		}
		row[f.Name] = val
	}
	row[models.ColumnSource] = v.Source
	row[models.ColumnStatus] = models.SubmissionStatusNew
	return row
}
