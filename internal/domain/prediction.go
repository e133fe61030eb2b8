package domain

// NoPredictionMessage is returned in place of a bucket when the skip count
// does not exceed SkipCountThreshold.
const NoPredictionMessage = "No prediction due to low skip count."

// SkipCountThreshold is the skip count a task must exceed before its
// deadline bucket is returned.
const SkipCountThreshold = 3

// PredictionRequest is the decoded payload of a single predict call.
// Fields are pointers so that JSON presence can be told apart from zero values.
type PredictionRequest struct {
	Priority  *string `json:"priority" binding:"required"`
	Category  *string `json:"category" binding:"required"`
	SkipCount *int    `json:"skipCount" binding:"required,min=0"`
	Title     *string `json:"title" binding:"required"`
	Deadline  *string `json:"deadline" binding:"required"`
}

type Prediction struct {
	Hour          int
	TimeOfDay     TimeOfDay
	PredictedTime string
	// Bucketed reports whether PredictedTime carries the time-of-day bucket
	// rather than NoPredictionMessage.
	Bucketed bool
}

// Outcome labels a predict call for telemetry.
type Outcome string

const (
	OutcomeBucketed        Outcome = "bucketed"
	OutcomePlaceholder     Outcome = "placeholder"
	OutcomeValidationError Outcome = "validation_error"
	OutcomeParseError      Outcome = "parse_error"
)

func (o Outcome) String() string {
	return string(o)
}

// OutcomeOf derives the telemetry outcome of a predict call.
func OutcomeOf(p *Prediction, err error) Outcome {
	if err != nil {
		if KindOf(err) == ErrorKindParse {
			return OutcomeParseError
		}
		return OutcomeValidationError
	}
	if p != nil && p.Bucketed {
		return OutcomeBucketed
	}
	return OutcomePlaceholder
}
