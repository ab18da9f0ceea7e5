package plan

// FeatureKey identifies a plan capability that can be switched on or off.
// The set of keys is closed: consumers iterate FeatureKeys() instead of
// inventing ad-hoc strings, so derived feature maps are always total.
type FeatureKey string

// Known feature flags. The string values match the column names of the
// plan configuration table.
const (
	FeatureWhatsApp          FeatureKey = "integracao_whatsapp"
	FeatureAIAssistant       FeatureKey = "assistente_ia"
	FeatureAdvancedReports   FeatureKey = "relatorios_avancados"
	FeatureOnlineBooking     FeatureKey = "agendamento_online"
	FeatureElectronicRecords FeatureKey = "prontuario_eletronico"
)

// LimitKey identifies a quota-bound resource maximum in a plan.
type LimitKey string

// Known limit keys, matching the plan configuration column names.
const (
	LimitPatients            LimitKey = "max_pacientes"
	LimitStaffUsers          LimitKey = "max_usuarios"
	LimitMonthlyAppointments LimitKey = "max_agendamentos_mes"
	LimitMonthlyMessages     LimitKey = "max_mensagens_mes"
)

// Unlimited indicates no configured maximum for a limit (-1 chosen so the
// value survives a round trip through SQL integer columns).
const Unlimited int64 = -1

var featureKeys = []FeatureKey{
	FeatureWhatsApp,
	FeatureAIAssistant,
	FeatureAdvancedReports,
	FeatureOnlineBooking,
	FeatureElectronicRecords,
}

var limitKeys = []LimitKey{
	LimitPatients,
	LimitStaffUsers,
	LimitMonthlyAppointments,
	LimitMonthlyMessages,
}

// FeatureKeys returns the full, fixed set of feature keys.
// The returned slice is a copy and safe to modify.
func FeatureKeys() []FeatureKey {
	out := make([]FeatureKey, len(featureKeys))
	copy(out, featureKeys)
	return out
}

// LimitKeys returns the full, fixed set of limit keys.
// The returned slice is a copy and safe to modify.
func LimitKeys() []LimitKey {
	out := make([]LimitKey, len(limitKeys))
	copy(out, limitKeys)
	return out
}

// ValidFeatureKey reports whether key belongs to the closed feature set.
func ValidFeatureKey(key FeatureKey) bool {
	for _, k := range featureKeys {
		if k == key {
			return true
		}
	}
	return false
}

// ValidLimitKey reports whether key belongs to the closed limit set.
func ValidLimitKey(key LimitKey) bool {
	for _, k := range limitKeys {
		if k == key {
			return true
		}
	}
	return false
}
