package alarm

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/captian10/adhan-engine/internal/model"
)

// SalatSlotID is the single fixed slot the repeating reminder occupies.
// Re-issuing it supersedes the previous request, so no ledger entry is kept.
const SalatSlotID = "salat_repeat_alarm_v1"

// TicketID derives the deterministic alarm id for a prayer on a calendar
// day. Recomputing the same day and prayer always yields the same id, which
// is what makes a full refresh idempotent instead of additive.
func TicketID(day time.Time, prayer model.PrayerName) string {
	return fmt.Sprintf("adhan_%s_%s", day.Format("2006-01-02"), prayer)
}

// TestAdhanID mints a throwaway id for an ad hoc test alarm. Test tickets
// are fire-and-forget and never enter the ledger.
func TestAdhanID() string {
	return "test_" + uuid.NewString()
}

// TestSalatID mints a throwaway id for a one-shot reminder test.
func TestSalatID() string {
	return "salat_test_" + uuid.NewString()
}
