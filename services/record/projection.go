package record

import (
	"sort"

	"bangohan/set"
)

// Duplicate records for the same (date, name) pair are allowed to
// accumulate; the store never prunes them. Everything that asks "what is
// this person's answer" goes through the projections here, which pick the
// most recently created record explicitly instead of relying on query
// result order.

type answerKey struct {
	date string
	name string
}

// CurrentAnswers reduces a record set to the latest record per (date, name),
// sorted by date then name for stable output.
func CurrentAnswers(records []DinnerRecord) []DinnerRecord {
	latest := make(map[answerKey]DinnerRecord)
	for _, rec := range records {
		key := answerKey{date: rec.Date, name: rec.Name}
		if cur, ok := latest[key]; !ok || rec.CreatedAt.After(cur.CreatedAt) {
			latest[key] = rec
		}
	}
	answers := make([]DinnerRecord, 0, len(latest))
	for _, rec := range latest {
		answers = append(answers, rec)
	}
	sort.Slice(answers, func(i, j int) bool {
		if answers[i].Date != answers[j].Date {
			return answers[i].Date < answers[j].Date
		}
		return answers[i].Name < answers[j].Name
	})
	return answers
}

// LatestFor returns the most recently created record for (date, name),
// or nil when the person has no record on that date.
func LatestFor(records []DinnerRecord, date string, name string) *DinnerRecord {
	var found *DinnerRecord
	for i := range records {
		rec := &records[i]
		if rec.Date != date || rec.Name != name {
			continue
		}
		if found == nil || rec.CreatedAt.After(found.CreatedAt) {
			found = rec
		}
	}
	return found
}

// DinnerCount is the per-day aggregate shown on the grid: how many people
// currently need dinner on the given date.
func DinnerCount(records []DinnerRecord, date string) int {
	count := 0
	for _, rec := range CurrentAnswers(records) {
		if rec.Date == date && rec.NeedsDinner {
			count++
		}
	}
	return count
}

// Names returns the distinct participant names in the record set, sorted.
func Names(records []DinnerRecord) []string {
	names := set.New[string]()
	for _, rec := range records {
		names.Add(rec.Name)
	}
	return set.SortedStrings(names)
}

// DinnerPlan lists the people who currently need dinner on the given date,
// earliest dinner time first. Answers without a time sort last.
func DinnerPlan(records []DinnerRecord, date string) []DinnerRecord {
	plan, _ := Partition(records, date)
	sort.SliceStable(plan, func(i, j int) bool {
		return planTime(plan[i]) < planTime(plan[j])
	})
	return plan
}

func planTime(rec DinnerRecord) string {
	if rec.DinnerTime == nil {
		return "99:99"
	}
	return *rec.DinnerTime
}

// Partition splits current answers for one date into the people who need
// dinner and the people who do not.
func Partition(records []DinnerRecord, date string) (needs, skips []DinnerRecord) {
	needs = make([]DinnerRecord, 0)
	skips = make([]DinnerRecord, 0)
	for _, rec := range CurrentAnswers(records) {
		if rec.Date != date {
			continue
		}
		if rec.NeedsDinner {
			needs = append(needs, rec)
		} else {
			skips = append(skips, rec)
		}
	}
	return needs, skips
}
