package domain

// UserRole defines the role a user holds within a clinic tenant.
type UserRole string

const (
	RoleSuperAdmin    UserRole = "super_admin"
	RoleClinicAdmin   UserRole = "clinic_admin"
	RoleDoctor        UserRole = "doctor"
	RoleNurse         UserRole = "nurse"
	RoleBillingStaff  UserRole = "billing_staff"
	RolePharmacyStaff UserRole = "pharmacy_staff"
	RolePatient       UserRole = "patient"
)

// ValidRoles lists every role a token may carry.
var ValidRoles = map[UserRole]bool{
	RoleSuperAdmin:    true,
	RoleClinicAdmin:   true,
	RoleDoctor:        true,
	RoleNurse:         true,
	RoleBillingStaff:  true,
	RolePharmacyStaff: true,
	RolePatient:       true,
}

// InvoiceStatus is the payment status recorded on an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusPending       InvoiceStatus = "pending"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
)

// AmountRange is a bracket over an invoice total.
type AmountRange string

const (
	AmountRangeAny    AmountRange = ""
	AmountRangeLow    AmountRange = "low"
	AmountRangeMedium AmountRange = "medium"
	AmountRangeHigh   AmountRange = "high"
)

// Bracket boundaries for AmountRange, in currency units.
const (
	AmountMediumFloor = 1000.0
	AmountHighFloor   = 3000.0
)

// SortKey selects the ordering applied to an invoice listing.
type SortKey string

const (
	SortLatest     SortKey = "latest"
	SortOldest     SortKey = "oldest"
	SortPatient    SortKey = "patient"
	SortAmountDesc SortKey = "amount_desc"
	SortAmountAsc  SortKey = "amount_asc"
	SortDueDate    SortKey = "due_date"
	SortStatus     SortKey = "status"
)

// InvoiceSource tells whether a listing came from the store or the sample set.
type InvoiceSource string

const (
	InvoiceSourceStore  InvoiceSource = "store"
	InvoiceSourceSample InvoiceSource = "sample"
)

// NoticeLevel classifies a user-facing notification.
type NoticeLevel string

const (
	NoticeLevelInfo  NoticeLevel = "info"
	NoticeLevelError NoticeLevel = "error"
)
