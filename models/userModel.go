package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role represents a user role in the portal.
type Role string

const (
	RolePatient   Role = "PATIENT"
	RoleDoctor    Role = "DOCTOR"
	RoleInsurance Role = "INSURANCE"
	RoleBank      Role = "BANK"
)

// ValidRole reports whether the given role is one of the four portal roles.
func ValidRole(r Role) bool {
	switch r {
	case RolePatient, RoleDoctor, RoleInsurance, RoleBank:
		return true
	}
	return false
}

// User represents an account in the system. The role is fixed at signup;
// there is no endpoint that changes it afterwards.
type User struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	Email     string    `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Password  string    `gorm:"size:255;not null;column:password" json:"-"`
	Name      string    `gorm:"size:100;not null;column:name" json:"name"`
	Role      Role      `gorm:"size:20;not null;index;column:role" json:"role"`
	Phone     string    `gorm:"size:30;column:phone" json:"phone"`
	Address   string    `gorm:"type:text;column:address" json:"address"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`

	PatientAppointments []Appointment   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	DoctorAppointments  []Appointment   `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	Claims              []Claim         `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	PatientReports      []PatientReport `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	ProcessedPayments   []Payment       `gorm:"foreignKey:ProcessedByID;references:ID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when the caller did not supply an ID.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// UserProfile is the subset of User fields that is safe to return to clients.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile strips the password hash and other internals from a User.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
}

// SeedUsers inserts one demo account per role for development environments.
// Passwords are pre-hashed with bcrypt.
func SeedUsers(db *gorm.DB, hash func(string) (string, error)) error {
	demo := []User{
		{Email: "patient@mediclaim.dev", Name: "Pat Doe", Role: RolePatient},
		{Email: "doctor@mediclaim.dev", Name: "Dr. Grey", Role: RoleDoctor},
		{Email: "insurance@mediclaim.dev", Name: "Ines Mutual", Role: RoleInsurance},
		{Email: "bank@mediclaim.dev", Name: "Banker Bell", Role: RoleBank},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, user := range demo {
			hashed, err := hash("ChangeMe1!")
			if err != nil {
				return err
			}
			user.Password = hashed
			if err := tx.Where(User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
