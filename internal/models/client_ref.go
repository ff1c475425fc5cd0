package models

import "fmt"

// ClientType discriminates which kind of client an invoice belongs to
type ClientType string

const (
	ClientTypeEmployer  ClientType = "EMPLOYER"
	ClientTypeEORClient ClientType = "EOR_CLIENT"
)

// ClientRef is a typed reference to exactly one billable client, either an
// employer profile or an EOR client profile.
type ClientRef struct {
	Type ClientType
	ID   uint
}

// EmployerRef builds a client reference to an employer profile
func EmployerRef(id uint) ClientRef {
	return ClientRef{Type: ClientTypeEmployer, ID: id}
}

// EORClientRef builds a client reference to an EOR client profile
func EORClientRef(id uint) ClientRef {
	return ClientRef{Type: ClientTypeEORClient, ID: id}
}

// Validate checks that the reference points at a known client type
func (r ClientRef) Validate() error {
	switch r.Type {
	case ClientTypeEmployer, ClientTypeEORClient:
	default:
		return fmt.Errorf("unknown client type %q", r.Type)
	}
	if r.ID == 0 {
		return fmt.Errorf("client id must be set")
	}
	return nil
}

func (r ClientRef) String() string {
	return fmt.Sprintf("%s/%d", r.Type, r.ID)
}
