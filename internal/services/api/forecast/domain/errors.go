package domain

import (
	perr "crimecast/internal/platform/errors"
)

// Kind is the closed set of ways a forecast request can fail
type Kind uint8

const (
	// KindModelNotFound means the name is not in the catalog
	KindModelNotFound Kind = iota + 1
	// KindModelCorrupt means the artifact exists but cannot be decoded
	KindModelCorrupt
	// KindInvalidRequest means a field is missing or malformed
	KindInvalidRequest
	// KindInvalidDateRange means the dates do not describe a usable range
	KindInvalidDateRange
	// KindPredictionError means the model or the chart failed
	KindPredictionError
)

// MsgLoadFailed is shown for every model load failure
const MsgLoadFailed = "Failed to load the selected model."

func (k Kind) String() string {
	switch k {
	case KindModelNotFound:
		return "model_not_found"
	case KindModelCorrupt:
		return "model_corrupt"
	case KindInvalidRequest:
		return "invalid_request"
	case KindInvalidDateRange:
		return "invalid_date_range"
	case KindPredictionError:
		return "prediction_error"
	default:
		return "unknown"
	}
}

// Code maps the kind onto the platform error code, one to one
func (k Kind) Code() perr.ErrorCode {
	switch k {
	case KindModelNotFound:
		return perr.ErrorCodeNotFound
	case KindModelCorrupt:
		return perr.ErrorCodeCorrupt
	case KindInvalidRequest:
		return perr.ErrorCodeValidation
	case KindInvalidDateRange:
		return perr.ErrorCodeInvalidArgument
	case KindPredictionError:
		return perr.ErrorCodeModel
	default:
		return perr.ErrorCodeUnknown
	}
}

// Message is the user facing text for the kind
func (k Kind) Message(detail string) string {
	switch k {
	case KindModelNotFound, KindModelCorrupt:
		return MsgLoadFailed
	case KindInvalidRequest:
		return "Invalid request: " + detail
	case KindInvalidDateRange:
		return "Invalid date range: " + detail
	case KindPredictionError:
		return "Prediction failed: " + detail
	default:
		return detail
	}
}

// Fail builds a kinded error. cause is kept for logs and never shown
func Fail(k Kind, detail string, cause error) error {
	if cause != nil {
		return perr.Wrap(cause, k.Code(), k.Message(detail))
	}
	return perr.New(k.Code(), k.Message(detail))
}

// KindOf recovers the kind from an error built by Fail
func KindOf(err error) (Kind, bool) {
	if _, ok := perr.As(err); !ok {
		return 0, false
	}
	switch perr.CodeOf(err) {
	case perr.ErrorCodeNotFound:
		return KindModelNotFound, true
	case perr.ErrorCodeCorrupt:
		return KindModelCorrupt, true
	case perr.ErrorCodeValidation, perr.ErrorCodeDecode:
		return KindInvalidRequest, true
	case perr.ErrorCodeInvalidArgument:
		return KindInvalidDateRange, true
	case perr.ErrorCodeModel:
		return KindPredictionError, true
	}
	return 0, false
}

// UserMessage is the text to show for err
func UserMessage(err error) string {
	if e, ok := perr.As(err); ok {
		return e.Message()
	}
	return KindPredictionError.Message(err.Error())
}

// Invalid converts a binding error into KindInvalidRequest, keeping its field
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	detail := err.Error()
	field := ""
	if e, ok := perr.As(err); ok {
		detail = e.Message()
		field = e.Field()
	}
	out := Fail(KindInvalidRequest, detail, err)
	if field != "" {
		out = perr.WithField(out, field)
	}
	return out
}
