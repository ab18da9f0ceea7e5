// Package usage counts quota-bound resources per tenant.
//
// Counting rules are registered per Resource in a CounterRegistry and
// invoked through Count, which distinguishes a counting failure from a zero
// count: callers enforcing quotas must treat a failure as "deny", never as
// "nothing used".
//
// PostgresCounters implements the clinic counting rules: patients and staff
// users are plain tenant-scoped counts, appointments are restricted to the
// current calendar month, and assistant messages are an acknowledged stub
// reporting zero until a messages table exists.
package usage
