package entitlements

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clinicore/clinicore/pkg/entitlement"
	"github.com/clinicore/clinicore/pkg/plan"
	"github.com/clinicore/clinicore/pkg/tenant"
)

type handlers struct {
	svc        Service
	upgradeURL string
}

// snapshotResponse is the wire form of an entitlement snapshot. Limits use
// pointers so an unconfigured maximum serializes as null.
type snapshotResponse struct {
	PlanID   string                   `json:"plan_id"`
	Features map[plan.FeatureKey]bool `json:"features"`
	Limits   map[plan.LimitKey]*int64 `json:"limits"`
}

// usageEntry reports one resource's utilization with its alert level.
type usageEntry struct {
	Limit      plan.LimitKey          `json:"limit"`
	Current    int64                  `json:"current"`
	Max        *int64                 `json:"max"`
	Level      entitlement.UsageLevel `json:"level"`
	UpgradeURL string                 `json:"upgrade_url,omitempty"`
}

func (h *handlers) snapshot(w http.ResponseWriter, r *http.Request) {
	org := tenant.MustFromContext(r.Context())

	// The evaluator's default plan resolution reads this context key.
	ctx := entitlement.WithPlanID(r.Context(), org.PlanID)
	snap, err := h.svc.SnapshotFor(ctx, org.ID)
	if !snapshotUsable(err) {
		respondError(w, http.StatusServiceUnavailable, "entitlements_unavailable",
			"entitlements are temporarily unavailable", nil)
		return
	}

	limits := make(map[plan.LimitKey]*int64, len(snap.Limits))
	for key, max := range snap.Limits {
		limits[key] = nullable(max)
	}

	respondJSON(w, http.StatusOK, snapshotResponse{
		PlanID:   snap.PlanID,
		Features: snap.Features,
		Limits:   limits,
	})
}

func (h *handlers) usage(w http.ResponseWriter, r *http.Request) {
	org := tenant.MustFromContext(r.Context())

	ctx := entitlement.WithPlanID(r.Context(), org.PlanID)
	all, err := h.svc.AllUsage(ctx, org.ID)
	if !snapshotUsable(err) {
		respondError(w, http.StatusServiceUnavailable, "entitlements_unavailable",
			"usage is temporarily unavailable", nil)
		return
	}

	entries := make([]usageEntry, 0, len(all))
	for _, key := range plan.LimitKeys() {
		info, ok := all[key]
		if !ok {
			continue
		}
		entry := usageEntry{
			Limit:   key,
			Current: info.Current,
			Max:     nullable(info.Max),
			Level:   info.Level(),
		}
		// Warnings and reached limits carry the upgrade path.
		if entry.Level != entitlement.LevelOK {
			entry.UpgradeURL = h.upgradeURL
		}
		entries = append(entries, entry)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"plan_id": org.PlanID,
		"usage":   entries,
	})
}

// snapshotUsable mirrors the resolver's error contract: no-plan and
// not-configured still carry a usable fail-closed snapshot.
func snapshotUsable(err error) bool {
	return err == nil ||
		errors.Is(err, entitlement.ErrNoPlanAssigned) ||
		errors.Is(err, entitlement.ErrPlanNotConfigured)
}

func nullable(max int64) *int64 {
	if max == plan.Unlimited {
		return nil
	}
	return &max
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, code, message string, details map[string]any) {
	respondJSON(w, status, map[string]any{"error": errorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}
