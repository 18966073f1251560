package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type validateFixture struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname" validate:"omitempty,max=5"`
}

func TestValidateStruct_Valid(t *testing.T) {
	errs := ValidateStruct(&validateFixture{Email: "a@b.com", Password: "longenough"})
	assert.Nil(t, errs)
}

func TestValidateStruct_ReportsJSONFieldNames(t *testing.T) {
	errs := ValidateStruct(&validateFixture{Email: "not-an-email", Password: "short"})
	assert.Len(t, errs, 2)

	fields := map[string]string{}
	for _, fe := range errs {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at least 8 characters", fields["password"])
}

func TestValidateStruct_MaxRule(t *testing.T) {
	errs := ValidateStruct(&validateFixture{Email: "a@b.com", Password: "longenough", Nickname: "toolong"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "nickname", errs[0].Field)
	assert.Equal(t, "must be at most 5 characters", errs[0].Message)
}
