package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/contactkeval/bsm-pricer/internal/pricing"
)

// WriteText writes the human-readable result, preceded by a blank line:
//
//	The call option price is: 10.45
func WriteText(w io.Writer, q pricing.Quote) error {
	_, err := fmt.Fprintf(w, "\nThe %s option price is: %.2f\n", q.Type, q.Price)
	return err
}

// WriteJSON writes q as indented JSON. Non-finite prices cannot be encoded
// and are reported as an error.
func WriteJSON(w io.Writer, q pricing.Quote) error {
	b, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
