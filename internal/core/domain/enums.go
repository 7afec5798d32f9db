package domain

// FinancingStatus represents the lifecycle state of a financing proposal
type FinancingStatus string

const (
	FinancingAnalysis FinancingStatus = "ANALYSIS"
	FinancingApproved FinancingStatus = "APPROVED"
	FinancingPaid     FinancingStatus = "PAID"
	FinancingRejected FinancingStatus = "REJECTED"
)

// FinancingStatuses lists every valid financing status
var FinancingStatuses = []FinancingStatus{
	FinancingAnalysis,
	FinancingApproved,
	FinancingPaid,
	FinancingRejected,
}

// IsValid reports whether the status is a member of the closed set
func (s FinancingStatus) IsValid() bool {
	switch s {
	case FinancingAnalysis, FinancingApproved, FinancingPaid, FinancingRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is expected
func (s FinancingStatus) IsTerminal() bool {
	switch s {
	case FinancingPaid, FinancingRejected:
		return true
	case FinancingAnalysis, FinancingApproved:
		return false
	}
	return false
}

// Label returns the operator-facing label for the status
func (s FinancingStatus) Label() string {
	switch s {
	case FinancingAnalysis:
		return "Em análise"
	case FinancingApproved:
		return "Aprovado"
	case FinancingPaid:
		return "Pago"
	case FinancingRejected:
		return "Reprovado"
	}
	return string(s)
}

// ParseFinancingStatus converts a request string into a FinancingStatus
func ParseFinancingStatus(raw string) (FinancingStatus, error) {
	s := FinancingStatus(raw)
	if !s.IsValid() {
		return "", ErrInvalidFinancingStatus
	}
	return s, nil
}

// BillingType represents a payment gateway billing method
type BillingType string

const (
	BillingBoleto     BillingType = "BOLETO"
	BillingCreditCard BillingType = "CREDIT_CARD"
	BillingPix        BillingType = "PIX"
)

// IsValid reports whether the billing type is a member of the closed set
func (b BillingType) IsValid() bool {
	switch b {
	case BillingBoleto, BillingCreditCard, BillingPix:
		return true
	}
	return false
}

// ParseBillingType converts a request string into a BillingType
func ParseBillingType(raw string) (BillingType, error) {
	b := BillingType(raw)
	if !b.IsValid() {
		return "", ErrInvalidBillingType
	}
	return b, nil
}

// SessionStatus represents the state of a messaging gateway session
type SessionStatus string

const (
	SessionConnected    SessionStatus = "CONNECTED"
	SessionDisconnected SessionStatus = "DISCONNECTED"
	SessionQRCode       SessionStatus = "QRCODE"
	SessionStarting     SessionStatus = "STARTING"
	SessionError        SessionStatus = "ERROR"
)

// IsValid reports whether the session status is a member of the closed set
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionConnected, SessionDisconnected, SessionQRCode, SessionStarting, SessionError:
		return true
	}
	return false
}

// Role represents user role in the system
type Role string

const (
	RoleSeller  Role = "SELLER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSeller, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// PersonnelType represents the kind of personnel record
type PersonnelType string

const (
	PersonnelEmployee PersonnelType = "EMPLOYEE"
	PersonnelAgent    PersonnelType = "AGENT"
	PersonnelDealer   PersonnelType = "DEALER"
)

func (t PersonnelType) IsValid() bool {
	switch t {
	case PersonnelEmployee, PersonnelAgent, PersonnelDealer:
		return true
	}
	return false
}
