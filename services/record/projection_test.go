package record

import (
	"testing"
	"time"

	"bangohan/utils"
)

var base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func rec(id, date, name string, needsDinner bool, minutesAfterBase int) DinnerRecord {
	return DinnerRecord{
		ID:          id,
		CalendarID:  "abc123",
		Date:        date,
		Name:        name,
		NeedsDinner: needsDinner,
		CreatedAt:   base.Add(time.Duration(minutesAfterBase) * time.Minute),
	}
}

func TestCurrentAnswersPicksLatest(t *testing.T) {
	// Two answers from the same person on the same date accumulate; the
	// most recently created one is the current answer.
	records := []DinnerRecord{
		rec("r2", "2024-06-15", "ママ", false, 10),
		rec("r1", "2024-06-15", "ママ", true, 0),
		rec("r3", "2024-06-15", "パパ", true, 5),
	}

	answers := CurrentAnswers(records)
	if len(answers) != 2 {
		t.Fatalf("len(answers) = %d, want 2", len(answers))
	}
	if answers[0].Name != "パパ" || !answers[0].NeedsDinner {
		t.Errorf("unexpected first answer: %+v", answers[0])
	}
	if answers[1].Name != "ママ" || answers[1].NeedsDinner {
		t.Errorf("expected ママ's latest answer (no dinner), got %+v", answers[1])
	}
	if answers[1].ID != "r2" {
		t.Errorf("current answer id = %s, want r2", answers[1].ID)
	}
}

func TestCurrentAnswersKeepsDatesSeparate(t *testing.T) {
	records := []DinnerRecord{
		rec("r1", "2024-06-15", "ママ", true, 0),
		rec("r2", "2024-06-16", "ママ", false, 1),
	}
	answers := CurrentAnswers(records)
	if len(answers) != 2 {
		t.Fatalf("len(answers) = %d, want 2", len(answers))
	}
	if answers[0].Date != "2024-06-15" || answers[1].Date != "2024-06-16" {
		t.Errorf("answers not sorted by date: %+v", answers)
	}
}

func TestLatestFor(t *testing.T) {
	records := []DinnerRecord{
		rec("r1", "2024-06-15", "ママ", true, 0),
		rec("r2", "2024-06-15", "ママ", false, 10),
		rec("r3", "2024-06-15", "パパ", true, 20),
	}

	got := LatestFor(records, "2024-06-15", "ママ")
	if got == nil || got.ID != "r2" {
		t.Fatalf("LatestFor = %+v, want r2", got)
	}
	if LatestFor(records, "2024-06-15", "おばあちゃん") != nil {
		t.Error("expected nil for a name with no records")
	}
	if LatestFor(records, "2024-06-16", "ママ") != nil {
		t.Error("expected nil for a date with no records")
	}
}

func TestDinnerCount(t *testing.T) {
	records := []DinnerRecord{
		rec("r1", "2024-06-15", "ママ", true, 0),
		rec("r2", "2024-06-15", "パパ", true, 1),
		rec("r3", "2024-06-15", "パパ", false, 2), // パパ changed his mind
		rec("r4", "2024-06-16", "ママ", true, 3),
	}
	if got := DinnerCount(records, "2024-06-15"); got != 1 {
		t.Errorf("DinnerCount(2024-06-15) = %d, want 1", got)
	}
	if got := DinnerCount(records, "2024-06-16"); got != 1 {
		t.Errorf("DinnerCount(2024-06-16) = %d, want 1", got)
	}
	if got := DinnerCount(records, "2024-06-17"); got != 0 {
		t.Errorf("DinnerCount(2024-06-17) = %d, want 0", got)
	}
}

// Adding a record and then deleting it must return the day's aggregate to
// its pre-add value.
func TestToggleRoundTripAggregate(t *testing.T) {
	records := []DinnerRecord{
		rec("r1", "2024-06-15", "ママ", true, 0),
	}
	before := DinnerCount(records, "2024-06-15")

	added := rec("r2", "2024-06-15", "パパ", true, 1)
	records = append(records, added)
	if got := DinnerCount(records, "2024-06-15"); got != before+1 {
		t.Fatalf("count after add = %d, want %d", got, before+1)
	}

	// Second tap deletes the record by id.
	kept := make([]DinnerRecord, 0, len(records))
	for _, r := range records {
		if r.ID != added.ID {
			kept = append(kept, r)
		}
	}
	if got := DinnerCount(kept, "2024-06-15"); got != before {
		t.Errorf("count after delete = %d, want %d", got, before)
	}
}

func TestNames(t *testing.T) {
	records := []DinnerRecord{
		rec("r1", "2024-06-15", "ママ", true, 0),
		rec("r2", "2024-06-16", "ママ", false, 1),
		rec("r3", "2024-06-15", "パパ", true, 2),
	}
	names := Names(records)
	if len(names) != 2 {
		t.Fatalf("len(names) = %d, want 2", len(names))
	}
}

func TestDinnerPlanSortsByTime(t *testing.T) {
	records := []DinnerRecord{
		rec("r1", "2024-06-15", "ママ", true, 0),
		rec("r2", "2024-06-15", "パパ", true, 1),
		rec("r3", "2024-06-15", "おばあちゃん", true, 2),
		rec("r4", "2024-06-15", "じいじ", false, 3),
	}
	records[0].DinnerTime = utils.ToPointer("19:00")
	records[1].DinnerTime = utils.ToPointer("18:30")
	// おばあちゃん has no time set; she goes last.

	plan := DinnerPlan(records, "2024-06-15")
	if len(plan) != 3 {
		t.Fatalf("len(plan) = %d, want 3", len(plan))
	}
	for i, want := range []string{"パパ", "ママ", "おばあちゃん"} {
		if plan[i].Name != want {
			t.Errorf("plan[%d] = %s, want %s", i, plan[i].Name, want)
		}
	}
}

func TestDinnerPlanUsesLatestAnswer(t *testing.T) {
	records := []DinnerRecord{
		rec("r1", "2024-06-15", "ママ", true, 0),
		rec("r2", "2024-06-15", "ママ", true, 10),
	}
	records[0].DinnerTime = utils.ToPointer("18:00")
	records[1].DinnerTime = utils.ToPointer("20:00")

	plan := DinnerPlan(records, "2024-06-15")
	if len(plan) != 1 {
		t.Fatalf("len(plan) = %d, want 1", len(plan))
	}
	if plan[0].DinnerTime == nil || *plan[0].DinnerTime != "20:00" {
		t.Errorf("plan carries %+v, want the latest answer's 20:00", plan[0])
	}
}

func TestPartition(t *testing.T) {
	dinnerTime := utils.ToPointer("18:30")
	records := []DinnerRecord{
		rec("r1", "2024-06-15", "ママ", true, 0),
		rec("r2", "2024-06-15", "パパ", false, 1),
		rec("r3", "2024-06-16", "ママ", true, 2),
	}
	records[0].DinnerTime = dinnerTime

	needs, skips := Partition(records, "2024-06-15")
	if len(needs) != 1 || needs[0].Name != "ママ" {
		t.Errorf("needs = %+v, want ママ only", needs)
	}
	if needs[0].DinnerTime == nil || *needs[0].DinnerTime != "18:30" {
		t.Errorf("dinner time not carried through partition: %+v", needs[0])
	}
	if len(skips) != 1 || skips[0].Name != "パパ" {
		t.Errorf("skips = %+v, want パパ only", skips)
	}
}
