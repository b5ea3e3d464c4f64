package series

// MovingAverages returns the trailing mean of NewConfirmed for each record.
//
// Entry i is the mean over the window days before i, not counting day i
// itself. Entries without a full window of history are 0. Every record is
// validated before any averaging, so a malformed record yields an error and
// no partial output. A window <= 0 selects DefaultWindow.
func MovingAverages(records []DailyRecord, window int) ([]float64, error) {
	window = normalizeWindow(window)
	for i, r := range records {
		if r.Date.IsZero() {
			return nil, NewDataShapeError(i, r.Date, "Date", r.NewConfirmed, errMissingDate)
		}
		if !validCount(r.NewConfirmed) {
			return nil, NewDataShapeError(i, r.Date, "NewConfirmed", r.NewConfirmed, nil)
		}
	}

	out := make([]float64, len(records))
	var sum float64
	for i := range records {
		if i >= window {
			out[i] = sum / float64(window)
			sum -= records[i-window].NewConfirmed
		}
		sum += records[i].NewConfirmed
	}
	return out, nil
}
