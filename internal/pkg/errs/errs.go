package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// Kind classifies a rejected ledger operation. Every error returned by the
// core carries exactly one kind; KindUnknown means an infrastructure failure.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNotFound
	KindNotOwner
	KindInvalidDiscount
	KindPaymentFailed
	KindInvalidListing
)

var kindNames = [...]string{
	KindUnknown:         "unknown",
	KindNotFound:        "not_found",
	KindNotOwner:        "not_owner",
	KindInvalidDiscount: "invalid_discount",
	KindPaymentFailed:   "payment_failed",
	KindInvalidListing:  "invalid_listing",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// Sentinels used as marks. Match with Is or KindOf, not with ==.
var (
	ErrNotFound        = cr.New("not found")
	ErrNotOwner        = cr.New("not owner")
	ErrInvalidDiscount = cr.New("invalid discount")
	ErrPaymentFailed   = cr.New("payment failed")
	ErrInvalidListing  = cr.New("invalid listing")
)

var sentinels = map[Kind]error{
	KindNotFound:        ErrNotFound,
	KindNotOwner:        ErrNotOwner,
	KindInvalidDiscount: ErrInvalidDiscount,
	KindPaymentFailed:   ErrPaymentFailed,
	KindInvalidListing:  ErrInvalidListing,
}

// Sentinel returns the mark for k, or nil for KindUnknown.
func (k Kind) Sentinel() error {
	return sentinels[k]
}

// Newf builds an error of the given kind with a formatted message and a stack.
func Newf(kind Kind, format string, args ...any) error {
	err := cr.NewWithDepthf(1, format, args...)
	if mark := kind.Sentinel(); mark != nil {
		err = cr.Mark(err, mark)
	}
	return err
}

// kindOrder fixes which kind wins when an error carries more than one mark.
var kindOrder = [...]Kind{
	KindNotFound,
	KindNotOwner,
	KindInvalidDiscount,
	KindPaymentFailed,
	KindInvalidListing,
}

// KindOf reports the kind carried by err.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, kind := range kindOrder {
		if cr.Is(err, sentinels[kind]) {
			return kind
		}
	}
	return KindUnknown
}

func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.WrapWithDepth(1, err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.WrapWithDepthf(1, err, format, args...)
}

func New(msg string) error {
	return cr.NewWithDepth(1, msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
