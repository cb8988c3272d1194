package translator

import "strconv"

// Kind is the canonical category an error is classified into.
type Kind int

const (
	// KindUnknown errors are not owned by the translator and are re-raised.
	KindUnknown Kind = iota
	KindAuthentication
	KindAccessDenied
	KindExplicitStatus
	KindConcurrencyConflict
	KindNotFound
	KindDomainBadRequest
	KindFormValidation
	KindTypeConversionFailure
	KindTypeMismatch
	KindMessageNotReadable
	KindMessageNotWritable
	KindMethodArgumentInvalid
	KindBindFailure
	// KindUnclassified is assigned only by the terminal boundary.
	KindUnclassified

	// KindCustom is the first value available to caller-defined kinds, e.g.
	//
	//	const KindQuotaExceeded = translator.KindCustom + iota
	KindCustom Kind = 100
)

var kindNames = map[Kind]string{
	KindUnknown:               "unknown",
	KindAuthentication:        "authentication",
	KindAccessDenied:          "access_denied",
	KindExplicitStatus:        "explicit_status",
	KindConcurrencyConflict:   "concurrency_conflict",
	KindNotFound:              "not_found",
	KindDomainBadRequest:      "domain_bad_request",
	KindFormValidation:        "form_validation",
	KindTypeConversionFailure: "type_conversion_failure",
	KindTypeMismatch:          "type_mismatch",
	KindMessageNotReadable:    "message_not_readable",
	KindMessageNotWritable:    "message_not_writable",
	KindMethodArgumentInvalid: "method_argument_invalid",
	KindBindFailure:           "bind_failure",
	KindUnclassified:          "unclassified",
}

// String returns a snake_case name, used as a log field and metric label.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	if k >= KindCustom {
		return "custom_" + strconv.Itoa(int(k-KindCustom))
	}
	return "kind_" + strconv.Itoa(int(k))
}

// State is a step of a single dispatch. Transitions only move forward.
type State int

const (
	StateReceived State = iota
	StateClassified
	StateHeaderDecorated
	StateBodyBuilt
	StateCommitted
	StateReRaised
)

func (s State) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateClassified:
		return "classified"
	case StateHeaderDecorated:
		return "header_decorated"
	case StateBodyBuilt:
		return "body_built"
	case StateCommitted:
		return "committed"
	case StateReRaised:
		return "re_raised"
	default:
		return "state_" + strconv.Itoa(int(s))
	}
}
