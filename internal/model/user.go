package model

import (
	"errors"
	"time"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is closed over RolePatient and RoleProvider.
type Role string

const (
	RolePatient  Role = "patient"
	RoleProvider Role = "provider"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePatient:
		return RolePatient, nil
	case RoleProvider:
		return RoleProvider, nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// User is the stored identity record shared by both roles.
type User struct {
	ID           string    `db:"id"`
	Role         Role      `db:"role"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	ConsentGiven bool      `db:"consent_given"`
	Allergies    string    `db:"allergies"`
	Medications  string    `db:"medications"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Identity is what a verified token resolves to.
type Identity struct {
	UserID string
	Role   Role
}

// Account is either *Patient or *Provider.
type Account interface {
	Base() *User
	account()
}

type Patient struct {
	User
	Goals     []*Goal
	Reminders []*Reminder
}

func (p *Patient) Base() *User { return &p.User }
func (*Patient) account()      {}

type Provider struct {
	User
	// AssignedPatientIDs are weak references; the provider owns none of them.
	AssignedPatientIDs []string
}

func (p *Provider) Base() *User { return &p.User }
func (*Provider) account()      {}
