package domain

// OutcomeStatus is the per-source result state surfaced to callers.
type OutcomeStatus string

const (
	StatusSuccess OutcomeStatus = "success"
	StatusError   OutcomeStatus = "error"
)

// Labels rendered in the "source" field of an outcome.
const (
	LabelGoogleHotels = "Google Hotels"
	LabelDirect       = "Direct"
	LabelUnavailable  = "Unavailable"
)

// PriceOutcome is the result of processing one source. Price fields are
// present iff Status is success. ErrorDetail is for logs only and never
// serialized.
type PriceOutcome struct {
	Name          string        `json:"name"`
	IsMine        bool          `json:"isMine"`
	PricePerNight *float64      `json:"pricePerNight"`
	TotalPrice    *float64      `json:"totalPrice"`
	Status        OutcomeStatus `json:"status"`
	SourceLabel   string        `json:"source"`
	ErrorDetail   string        `json:"-"`
}

// SuccessOutcome builds a success record. Prices arrive already rounded to
// two decimals by the extractor.
func SuccessOutcome(src SourceConfig, label string, perNight, total float64) PriceOutcome {
	return PriceOutcome{
		Name:          src.Name,
		IsMine:        src.IsMine,
		PricePerNight: &perNight,
		TotalPrice:    &total,
		Status:        StatusSuccess,
		SourceLabel:   label,
	}
}

// ErrorOutcome builds the uniform degraded record for a source; detail
// stays internal.
func ErrorOutcome(src SourceConfig, detail string) PriceOutcome {
	return PriceOutcome{
		Name:        src.Name,
		IsMine:      src.IsMine,
		Status:      StatusError,
		SourceLabel: LabelUnavailable,
		ErrorDetail: detail,
	}
}

// RateReport is the complete aggregation result: exactly one outcome per
// configured source, in no particular order.
type RateReport struct {
	Outcomes []PriceOutcome `json:"data"`
	Nights   int            `json:"nights"`
}
