package progress

import "sort"

// MaxHistoryDays bounds DailyHistory; the oldest date is evicted first.
const MaxHistoryDays = 30

// ArchiveDay stores snap under its date, evicting the oldest entry when
// the history is full. Existing entries are never overwritten; it returns
// false if snap's date was already archived.
func (r *Record) ArchiveDay(snap DailySnapshot) bool {
	if r.DailyHistory == nil {
		r.DailyHistory = make(map[Date]DailySnapshot)
	}
	if _, exists := r.DailyHistory[snap.Date]; exists {
		return false
	}
	for len(r.DailyHistory) >= MaxHistoryDays {
		delete(r.DailyHistory, r.oldestHistoryDate())
	}
	r.DailyHistory[snap.Date] = snap
	return true
}

// HistoryDates returns the archived dates, oldest first.
func (r *Record) HistoryDates() []Date {
	dates := make([]Date, 0, len(r.DailyHistory))
	for d := range r.DailyHistory {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}

func (r *Record) oldestHistoryDate() Date {
	var oldest Date
	for d := range r.DailyHistory {
		if oldest == "" || d < oldest {
			oldest = d
		}
	}
	return oldest
}

func (r *Record) trimHistory() {
	for len(r.DailyHistory) > MaxHistoryDays {
		delete(r.DailyHistory, r.oldestHistoryDate())
	}
}
