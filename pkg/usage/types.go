package usage

// Resource represents a countable tenant-scoped resource kind.
type Resource string

// Quota-bound resource kinds. Patients and staff users are counted over the
// tenant's whole history; appointments and messages are counted within the
// current calendar month.
const (
	ResourcePatients            Resource = "patients"
	ResourceStaffUsers          Resource = "staff_users"
	ResourceMonthlyAppointments Resource = "monthly_appointments"
	ResourceMonthlyMessages     Resource = "monthly_messages"
)
