package models

import (
	"time"
)

// UserRole determines which dashboard and permissions a user gets
type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleEmployer  UserRole = "EMPLOYER"
	RoleEmployee  UserRole = "EMPLOYEE"
	RoleEORClient UserRole = "EOR_CLIENT"
)

// User represents the users table
type User struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	DocumentID string    `json:"document_id" gorm:"column:document_id"`
	Username   string    `json:"username" gorm:"column:username;uniqueIndex"`
	Email      string    `json:"email" gorm:"column:email;uniqueIndex"`
	Password   string    `json:"-" gorm:"column:password"`
	Role       UserRole  `json:"role" gorm:"column:role"`
	Blocked    *bool     `json:"blocked" gorm:"column:blocked"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the insert table name for User
func (User) TableName() string {
	return "users"
}
