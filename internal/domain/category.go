package domain

type CategoryIdentifier string

func (i CategoryIdentifier) String() string {
	return string(i)
}

// Category is a spend category that a company defines for its expenses.
type Category struct {
	BaseModel

	Identifier CategoryIdentifier `gorm:"primaryKey;column:identifier"`
	CompanyId  CompanyIdentifier  `gorm:"index;column:company_id"`

	Name        string
	Description string
	SpendLimit  float64
}
