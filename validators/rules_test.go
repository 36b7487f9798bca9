package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name     string  `json:"student_name" validate:"required,alphaspace"`
	Progress string  `json:"progress" validate:"required,percent"`
	Price    float64 `json:"bookPrice" validate:"gt=0"`
}

func TestValidate_CustomTags(t *testing.T) {
	tests := []struct {
		name      string
		in        sample
		wantField string
		wantTag   string
	}{
		{"valid", sample{"Ada Lovelace", "75", 1}, "", ""},
		{"digits in name", sample{"Ada 2", "75", 1}, "student_name", "alphaspace"},
		{"blank name", sample{"   ", "75", 1}, "student_name", "alphaspace"},
		{"progress over 100", sample{"Ada", "101", 1}, "progress", "percent"},
		{"progress not a number", sample{"Ada", "abc", 1}, "progress", "percent"},
		{"missing progress", sample{"Ada", "", 1}, "progress", "required"},
		{"zero price", sample{"Ada", "10", 0}, "bookPrice", "gt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate.Struct(tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			fields := FieldErrors(err)
			assert.Contains(t, fields, tt.wantField)
			assert.True(t, HasTag(err, tt.wantTag), "expected tag %s in %v", tt.wantTag, err)
		})
	}
}

func TestParsePercent(t *testing.T) {
	v, ok := ParsePercent(" 42.5 ")
	assert.True(t, ok)
	assert.Equal(t, 42.5, v)

	_, ok = ParsePercent("-1")
	assert.False(t, ok)
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
	assert.False(t, HasTag(nil, "required"))
}

func TestFieldErrors_Messages(t *testing.T) {
	fields := FieldErrors(Validate.Struct(sample{"Ada", "50", 0}))
	assert.Equal(t, "must be greater than 0", fields["bookPrice"])
}
