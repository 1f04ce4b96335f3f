package reports

import (
	"time"
)

// Reading is a single time-stamped measurement owned by a patient.
type Reading interface {
	RecordID() uint
	OwnerID() uint
	RecordedTime() time.Time
}

// Latest groups records by patient and keeps the most recent record of each
// group. When two records share the same recorded time the one with the higher
// record id wins. Patients without records have no entry in the result.
func Latest[R Reading](records []R) map[uint]R {
	latest := make(map[uint]R)
	for _, record := range records {
		current, ok := latest[record.OwnerID()]
		if !ok || newer(record, current) {
			latest[record.OwnerID()] = record
		}
	}
	return latest
}

func newer(a, b Reading) bool {
	if a.RecordedTime().Equal(b.RecordedTime()) {
		return a.RecordID() > b.RecordID()
	}
	return a.RecordedTime().After(b.RecordedTime())
}
