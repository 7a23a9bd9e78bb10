package validation

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expenseInput struct {
	Title       string  `json:"title" validate:"required,min=3,max=255,alphanumspace"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,len=3,uppercase"`
	CategoryId  string  `json:"category_id" validate:"required"`
	ExpenseDate string  `json:"expense_date" validate:"required,datetime=2006-01-02,notfuture,minrecency"`
}

func validInput() expenseInput {
	return expenseInput{
		Title:       "Team lunch",
		Amount:      42.50,
		Currency:    "EUR",
		CategoryId:  "cat-1",
		ExpenseDate: time.Now().AddDate(0, 0, -1).Format(DateLayout),
	}
}

func TestValidator_ValidInput(t *testing.T) {
	v := NewValidator()

	assert.Nil(t, v.Struct(validInput()))
}

func TestValidator_CollectsAllViolations(t *testing.T) {
	v := NewValidator()

	input := validInput()
	input.Title = ""
	input.Amount = -5
	input.Currency = "euro"

	details := v.Struct(input)
	require.Len(t, details, 3)

	byField := map[string]string{}
	for _, d := range details {
		byField[d["field"].(string)] = d["code"].(string)
	}

	assert.Equal(t, "MISSING_FIELD", byField["title"])
	assert.Equal(t, "INVALID_AMOUNT", byField["amount"])
	assert.Equal(t, "VALIDATION_ERROR", byField["currency"]) // len is unmapped
}

func TestValidator_NegativeAmount(t *testing.T) {
	v := NewValidator()

	input := validInput()
	input.Amount = -5

	details := v.Struct(input)
	require.Len(t, details, 1)
	assert.Equal(t, "amount", details[0]["field"])
	assert.Equal(t, "INVALID_AMOUNT", details[0]["code"])
	assert.Equal(t, -5.0, details[0]["value"])
}

func TestValidator_DateRules(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		date string
		code string
	}{
		{"garbage", "not-a-date", "INVALID_DATE"},
		{"future", time.Now().AddDate(0, 0, 2).Format(DateLayout), "FUTURE_DATE"},
		{"too old", time.Now().AddDate(0, -7, 0).Format(DateLayout), "TOO_OLD_DATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.ExpenseDate = tt.date

			details := v.Struct(input)
			require.Len(t, details, 1)
			assert.Equal(t, "expense_date", details[0]["field"])
			assert.Equal(t, tt.code, details[0]["code"])
		})
	}
}

func TestValidator_SpecialCharacters(t *testing.T) {
	v := NewValidator()

	input := validInput()
	input.Title = "Lunch @ the office!"

	details := v.Struct(input)
	require.Len(t, details, 1)
	assert.Equal(t, "title", details[0]["field"])
	assert.Equal(t, "VALIDATION_ERROR", details[0]["code"])
	assert.Contains(t, details[0]["message"], "special characters")
}

func TestMapRuleToCode_Fallback(t *testing.T) {
	assert.Equal(t, "MISSING_FIELD", MapRuleToCode("required"))
	assert.Equal(t, "VALIDATION_ERROR", MapRuleToCode("totally-unknown-rule"))
}

func TestBindErrorDetails_NumericTypeMismatch(t *testing.T) {
	v := NewValidator()

	input := validInput()
	body, err := json.Marshal(input)
	require.NoError(t, err)

	var target expenseInput
	err = json.Unmarshal([]byte(strings.Replace(string(body), "42.5", `"fifty"`, 1)), &target)
	require.Error(t, err)

	details := v.BindErrorDetails(err, &target)
	require.Len(t, details, 1)
	assert.Equal(t, "amount", details[0]["field"])
	assert.Equal(t, "INVALID_AMOUNT_TYPE", details[0]["code"])
	assert.Equal(t, "amount must be a number", details[0]["message"])
}

func TestBindErrorDetails_MergesRemainingViolations(t *testing.T) {
	v := NewValidator()

	var target expenseInput
	err := json.Unmarshal([]byte(`{"amount": "fifty", "currency": "EUR"}`), &target)
	require.Error(t, err)

	details := v.BindErrorDetails(err, &target)
	require.Len(t, details, 4)

	byField := map[string]string{}
	for _, d := range details {
		byField[d["field"].(string)] = d["code"].(string)
	}

	assert.Equal(t, "INVALID_AMOUNT_TYPE", byField["amount"])
	assert.Equal(t, "MISSING_FIELD", byField["title"])
	assert.Equal(t, "MISSING_FIELD", byField["category_id"])
	assert.Equal(t, "MISSING_FIELD", byField["expense_date"])
}

func TestBindErrorDetails_Garbage(t *testing.T) {
	v := NewValidator()

	var target expenseInput
	err := json.Unmarshal([]byte(`{]`), &target)
	require.Error(t, err)

	details := v.BindErrorDetails(err, &target)
	require.Len(t, details, 1)
	assert.Equal(t, "VALIDATION_ERROR", details[0]["code"])
}
