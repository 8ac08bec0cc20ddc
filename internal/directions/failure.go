package directions

import (
	"errors"
	"fmt"

	"busplanner.dev/internal/models"
)

// User-facing failure messages.
const (
	MessageCoordinatesNotFound = "좌표를 찾을 수 없어요"
	MessageRouteNotFound       = "경로를 찾을 수 없어요"
	MessageProviderUnavailable = "경로 서비스에 연결할 수 없어요"
	MessageInvalidRequest      = "출발지와 도착지를 입력해 주세요"
	MessageRateLimited         = "요청이 너무 많아요. 잠시 후 다시 시도해 주세요"
)

type FailureKind int

const (
	// NotFound covers geocodes or routes that yielded no match.
	NotFound FailureKind = iota + 1
	// Transport covers network and provider errors, malformed bodies included.
	Transport
	// Validation covers requests that should have been prevented upstream.
	Validation
)

func (k FailureKind) String() string {
	switch k {
	case NotFound:
		return "notFound"
	case Transport:
		return "transport"
	case Validation:
		return "validation"
	default:
		return "unknown"
	}
}

// ParseFailureKind is the inverse of FailureKind.String. Unknown values map
// to Transport.
func ParseFailureKind(s string) FailureKind {
	switch s {
	case "notFound":
		return NotFound
	case "validation":
		return Validation
	default:
		return Transport
	}
}

// Failure is the typed error returned by Route. It carries whichever
// coordinates were resolved before the failure.
type Failure struct {
	Kind                  FailureKind
	Message               string
	Detail                string
	OriginCoordinate      *models.Coordinate
	DestinationCoordinate *models.Coordinate
	Err                   error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("directions %s: %s: %v", f.Kind, f.Message, f.Err)
	}
	if f.Detail != "" {
		return fmt.Sprintf("directions %s: %s: %s", f.Kind, f.Message, f.Detail)
	}
	return fmt.Sprintf("directions %s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Response renders the failure as a handler payload.
func (f *Failure) Response() models.RouteResponse {
	return models.RouteResponse{
		Error:                 f.Message,
		ErrorKind:             f.Kind.String(),
		Detail:                f.Detail,
		OriginCoordinate:      f.OriginCoordinate,
		DestinationCoordinate: f.DestinationCoordinate,
	}
}

// AsFailure converts any error into a Failure, wrapping unknown errors as
// Transport failures.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: Transport, Message: MessageProviderUnavailable, Detail: err.Error(), Err: err}
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == NotFound
}
