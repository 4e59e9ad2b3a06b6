package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// OptionType selects the pricing branch of the Black-Scholes formula.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

var (
	// ErrInvalidOptionType is returned when an option type is neither call nor put.
	ErrInvalidOptionType = errors.New("option type must be 'call' or 'put'")

	// ErrDomain is returned when the formula would divide by zero or take the
	// logarithm or square root of a value outside its domain.
	ErrDomain = errors.New("inputs outside the Black-Scholes domain")

	// ErrInvalidInputs is returned by Inputs.Validate for non-positive or non-finite values.
	ErrInvalidInputs = errors.New("invalid pricing inputs")
)

// ParseOptionType normalizes user text (trim + lowercase) into an OptionType.
func ParseOptionType(s string) (OptionType, error) {
	o := OptionType(strings.ToLower(strings.TrimSpace(s)))
	if err := o.Validate(); err != nil {
		return "", err
	}
	return o, nil
}

// Validate returns ErrInvalidOptionType unless o is Call or Put.
func (o OptionType) Validate() error {
	if o != Call && o != Put {
		return fmt.Errorf("%w: got %q", ErrInvalidOptionType, string(o))
	}
	return nil
}

// String returns the lowercase name used in prompts and output.
func (o OptionType) String() string { return string(o) }
