package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are serialized as JSON numbers, matching the wire format the
	// frontend expects.
	decimal.MarshalJSONWithoutQuotes = true
}

// Currency is an ISO-4217 currency code. Only PEN and USD are accepted.
type Currency string

const (
	PEN Currency = "PEN"
	USD Currency = "USD"
)

// Valid reports whether the currency is one of the two supported codes.
func (c Currency) Valid() bool {
	return c == PEN || c == USD
}

// DateLayout is the ISO date format used for expense dates and month bounds.
const DateLayout = "2006-01-02"

// ErrValidation is the base error wrapped by every validation failure, so
// handlers can classify them with a single errors.Is check.
var ErrValidation = errors.New("validation failed")

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

var (
	ErrInvalidCurrency  = validationError("currency must be PEN or USD")
	ErrInvalidDate      = validationError("date must be in YYYY-MM-DD format")
	ErrMissingAmount    = validationError("amount is required")
	ErrEmptyCategory    = validationError("category is required")
	ErrEmptySubcategory = validationError("subcategory is required")
	ErrEmptyOwner       = validationError("owner is required")
	ErrEmptyName        = validationError("name is required")
	ErrNoFields         = validationError("no fields to update")

	ErrNotFound = errors.New("not found")

	ErrCategoryInUse    = errors.New("cannot delete category with existing expenses")
	ErrSubcategoryInUse = errors.New("cannot delete subcategory with existing expenses")
)

type (
	// Expense is a single recorded expense. Category and subcategory names
	// are denormalized alongside the optional foreign keys; the two are not
	// kept consistent with each other (see DESIGN.md).
	Expense struct {
		ID            int64           `json:"id"`
		Amount        decimal.Decimal `json:"amount"`
		Currency      Currency        `json:"currency"`
		Category      string          `json:"category"`
		CategoryID    *int64          `json:"category_id"`
		Subcategory   string          `json:"subcategory"`
		SubcategoryID *int64          `json:"subcategory_id"`
		Owner         string          `json:"owner"`
		Description   *string         `json:"description"`
		Date          string          `json:"date"`
	}

	// ExpenseUpdate carries a partial update; absent fields are left
	// untouched. Description distinguishes an explicit null, which clears
	// the stored value, from absence.
	ExpenseUpdate struct {
		Amount      *decimal.Decimal `json:"amount"`
		Currency    *Currency        `json:"currency"`
		Category    *string          `json:"category"`
		Subcategory *string          `json:"subcategory"`
		Owner       *string          `json:"owner"`
		Description OptionalString   `json:"description"`
		Date        *string          `json:"date"`
	}

	// OptionalString is a JSON string field that records whether it was
	// present in the payload at all. A present null decodes to
	// {Set: true, Value: nil}.
	OptionalString struct {
		Set   bool
		Value *string
	}

	// ExpenseFilter holds optional equality filters for listing expenses.
	// Set fields are AND-combined.
	ExpenseFilter struct {
		Category    string
		Subcategory string
		Owner       string
	}

	Category struct {
		ID           int64   `json:"id"`
		Name         string  `json:"name"`
		Icon         *string `json:"icon"`
		DisplayOrder int     `json:"display_order"`
		CreatedAt    string  `json:"created_at"`
	}

	Subcategory struct {
		ID           int64   `json:"id"`
		CategoryID   int64   `json:"category_id"`
		Name         string  `json:"name"`
		DisplayOrder int     `json:"display_order"`
		CreatedAt    string  `json:"created_at"`
		CategoryName *string `json:"category_name,omitempty"`
	}
)

// UnmarshalJSON is only invoked for present fields, so Set is true for
// both a string value and an explicit null.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// ValidDate reports whether s is a well-formed ISO date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Validate checks the fields required to persist a new expense. Zero and
// negative amounts are deliberately accepted (refunds, adjustments).
func (e Expense) Validate() error {
	if !e.Currency.Valid() {
		return ErrInvalidCurrency
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(e.Subcategory) == "" {
		return ErrEmptySubcategory
	}
	if strings.TrimSpace(e.Owner) == "" {
		return ErrEmptyOwner
	}
	if !ValidDate(e.Date) {
		return ErrInvalidDate
	}
	return nil
}

// Empty reports whether the update carries no fields at all.
func (u ExpenseUpdate) Empty() bool {
	return u.Amount == nil && u.Currency == nil && u.Category == nil &&
		u.Subcategory == nil && u.Owner == nil && !u.Description.Set && u.Date == nil
}

// Validate checks whichever fields the partial update carries.
func (u ExpenseUpdate) Validate() error {
	if u.Empty() {
		return ErrNoFields
	}
	if u.Currency != nil && !u.Currency.Valid() {
		return ErrInvalidCurrency
	}
	if u.Date != nil && !ValidDate(*u.Date) {
		return ErrInvalidDate
	}
	return nil
}

// Validate checks the fields required to persist a category.
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Validate checks the fields required to persist a subcategory.
func (s Subcategory) Validate() error {
	if s.CategoryID == 0 {
		return validationError("category_id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
