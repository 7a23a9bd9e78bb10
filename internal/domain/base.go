package domain

import (
	"time"
)

type BaseModel struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserIdentifier string

func (i UserIdentifier) String() string {
	return string(i)
}

type CompanyIdentifier string

func (i CompanyIdentifier) String() string {
	return string(i)
}
