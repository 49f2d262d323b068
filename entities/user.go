package entities

import (
	"github.com/google/uuid"
)

const (
	UserTypeDonor       = "donor"
	UserTypeInstitution = "institution"
	UserTypeAdmin       = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	Password     string    `json:"-"`
	Phone        string    `json:"phone"`
	CPF          string    `gorm:"index" json:"cpf,omitempty"`  // digits only, donors
	CNPJ         string    `gorm:"index" json:"cnpj,omitempty"` // digits only, institutions
	Type         string    `gorm:"index" json:"type"`
	ProfileImage string    `json:"profile_image,omitempty"`

	Timestamp
}
