package translator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/tbourn/go-saas-core/internal/apperr"
)

type quotaError struct{}

func (quotaError) Error() string { return "quota exceeded" }

const kindQuota = KindCustom + 1

func TestClassify_Precedence(t *testing.T) {
	c := NewClassifier()
	tests := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"authentication", &apperr.Authentication{}, KindAuthentication, 401},
		{"access denied", &apperr.AccessDenied{}, KindAccessDenied, 403},
		{"explicit status", apperr.NewResponseStatus(429, ""), KindExplicitStatus, 429},
		{"concurrency", &apperr.ConcurrencyFailure{Entity: "note", ID: 1}, KindConcurrencyConflict, 409},
		{"not found", &apperr.NotFound{Resource: "note", ID: 1}, KindNotFound, 404},
		{"domain bad request", &apperr.BadRequestAlert{Key: "idexists"}, KindDomainBadRequest, 422},
		{"form", apperr.NewFormValidation("name", "must not be blank"), KindFormValidation, 422},
		{"conversion", &apperr.ConversionNotSupported{Type: "uuid"}, KindTypeConversionFailure, 500},
		{"mismatch", &apperr.TypeMismatch{Field: "id"}, KindTypeMismatch, 400},
		{"num error", &strconv.NumError{Func: "ParseInt", Num: "x", Err: strconv.ErrSyntax}, KindTypeMismatch, 400},
		{"not readable", &apperr.MessageNotReadable{}, KindMessageNotReadable, 400},
		{"json syntax", json.Unmarshal([]byte("{"), &struct{}{}), KindMessageNotReadable, 400},
		{"not writable", &apperr.MessageNotWritable{}, KindMessageNotWritable, 500},
		{"method argument", &apperr.MethodArgumentNotValid{}, KindMethodArgumentInvalid, 422},
		{"bind", &apperr.Bind{}, KindBindFailure, 422},
		{"unknown", errors.New("disk full"), KindUnknown, 0},
		{"nil", nil, KindUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.err)
			if got.Kind != tt.kind || got.Status != tt.status {
				t.Fatalf("Classify = %v/%d; want %v/%d", got.Kind, got.Status, tt.kind, tt.status)
			}
		})
	}
}

func TestClassify_AuthenticationWinsOverLaterKinds(t *testing.T) {
	// An authentication failure caused by a missing record is still 401.
	err := &apperr.Authentication{Cause: &apperr.NotFound{Resource: "user"}}
	if got := NewClassifier().Classify(err); got.Kind != KindAuthentication {
		t.Fatalf("kind = %v; want authentication", got.Kind)
	}
}

func TestClassify_Wrapped(t *testing.T) {
	err := fmt.Errorf("load note: %w", &apperr.NotFound{Resource: "note", ID: 3})
	if got := NewClassifier().Classify(err); got.Kind != KindNotFound || got.Status != 404 {
		t.Fatalf("got %+v", got)
	}
}

func TestClassify_ExplicitStatus(t *testing.T) {
	c := NewClassifier()

	got := c.Classify(apperr.NewResponseStatus(http.StatusTeapot, "").WithBody(map[string]string{"tea": "pot"}))
	if got.Status != 418 || !got.RetainOriginalBody {
		t.Fatalf("got %+v; want 418 with retained body", got)
	}

	got = c.Classify(apperr.NewResponseStatus(42, ""))
	if got.Status != 500 {
		t.Fatalf("out of range status = %d; want 500", got.Status)
	}
	if got.RetainOriginalBody {
		t.Fatal("no body supplied, RetainOriginalBody must be false")
	}
}

func TestBaseClassifier_KeepsGenericStatuses(t *testing.T) {
	base := NewBaseClassifier()
	domain := NewClassifier()

	for _, k := range []Kind{KindMethodArgumentInvalid, KindBindFailure} {
		if s, _ := base.Status(k); s != 400 {
			t.Fatalf("base %v = %d; want 400", k, s)
		}
		if s, _ := domain.Status(k); s != 422 {
			t.Fatalf("domain %v = %d; want 422", k, s)
		}
	}
	// Kinds without an override are identical in both layers.
	for _, k := range []Kind{KindTypeConversionFailure, KindTypeMismatch, KindMessageNotReadable, KindMessageNotWritable} {
		b, _ := base.Status(k)
		d, _ := domain.Status(k)
		if b != d {
			t.Fatalf("%v: base %d != domain %d", k, b, d)
		}
	}
	if got := base.Classify(&apperr.Bind{}); got.Status != 400 {
		t.Fatalf("base bind status = %d", got.Status)
	}
}

func TestStatusTables_ReturnCopies(t *testing.T) {
	base := BaseStatuses()
	base[KindBindFailure] = http.StatusTeapot
	overrides := DomainStatusOverrides()
	overrides[KindBindFailure] = http.StatusTeapot

	if s, _ := NewBaseClassifier().Status(KindBindFailure); s != http.StatusBadRequest {
		t.Fatalf("base bind status = %d", s)
	}
	if s, _ := NewClassifier().Status(KindBindFailure); s != http.StatusUnprocessableEntity {
		t.Fatalf("domain bind status = %d", s)
	}
	if BaseStatuses()[KindBindFailure] != http.StatusBadRequest {
		t.Fatal("BaseStatuses leaked its table")
	}
}

func TestClassify_CustomRule(t *testing.T) {
	c := NewClassifier(
		Rule{Kind: KindCustom, Match: nil}, // ignored
		RuleFor[quotaError](kindQuota, http.StatusTooManyRequests),
	)
	got := c.Classify(fmt.Errorf("wrap: %w", quotaError{}))
	if got.Kind != kindQuota || got.Status != 429 {
		t.Fatalf("got %+v", got)
	}
	// Built-in kinds stay ahead of custom rules.
	if got := c.Classify(&apperr.NotFound{}); got.Kind != KindNotFound {
		t.Fatalf("got %+v", got)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindNotFound:     "not_found",
		KindUnclassified: "unclassified",
		KindCustom + 2:   "custom_2",
		Kind(50):         "kind_50",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Fatalf("String() = %q; want %q", got, want)
		}
	}
	if StateReRaised.String() != "re_raised" {
		t.Fatalf("got %q", StateReRaised.String())
	}
}
