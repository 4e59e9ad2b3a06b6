// Package prompt collects pricing inputs from an interactive console.
//
// Each field is read in its own retry loop: a malformed answer prints a short
// retry message and the same prompt is shown again, with no retry limit. The
// loops only end on a valid answer or when the input stream itself ends.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/contactkeval/bsm-pricer/internal/logger"
	"github.com/contactkeval/bsm-pricer/internal/pricing"
)

const (
	SpotPrompt       = "Enter the current stock price (S): "
	StrikePrompt     = "Enter the strike price (K): "
	MaturityPrompt   = "Enter the time to maturity in years (T): "
	RatePrompt       = "Enter the risk-free interest rate (r) as a decimal (e.g., 0.05 for 5%): "
	VolatilityPrompt = "Enter the volatility (sigma) as a decimal (e.g., 0.2 for 20%): "
	OptionTypePrompt = "Enter option type ('call' or 'put'): "

	InvalidNumberMsg     = "Please enter a valid number."
	InvalidOptionTypeMsg = "Invalid option type. Please enter 'call' or 'put'."
)

var (
	// ErrInputClosed is returned when the input stream ends before a valid answer.
	ErrInputClosed = errors.New("input closed before a valid answer was given")

	errNotANumber = errors.New("not a number")
)

// Collector reads answers line by line from in and writes prompts to out.
type Collector struct {
	in  *bufio.Reader
	out io.Writer

	// Expressions also accepts arithmetic such as "30/365" for numeric fields.
	Expressions bool
}

// New returns a Collector that accepts plain real numbers only.
func New(in io.Reader, out io.Writer) *Collector {
	return &Collector{in: bufio.NewReader(in), out: out}
}

// Inputs runs the six prompts in order and returns the collected values.
func (c *Collector) Inputs() (pricing.Inputs, error) {
	var (
		in  pricing.Inputs
		err error
	)

	fields := []struct {
		label string
		dst   *float64
	}{
		{SpotPrompt, &in.S},
		{StrikePrompt, &in.K},
		{MaturityPrompt, &in.T},
		{RatePrompt, &in.R},
		{VolatilityPrompt, &in.Sigma},
	}
	for _, f := range fields {
		if *f.dst, err = c.Float(f.label); err != nil {
			return pricing.Inputs{}, err
		}
	}

	if in.Type, err = c.OptionType(); err != nil {
		return pricing.Inputs{}, err
	}
	return in, nil
}

// Float prompts with label until the answer parses as a real number.
func (c *Collector) Float(label string) (float64, error) {
	for {
		line, err := c.ask(label)
		if err != nil {
			return 0, err
		}

		v, perr := c.parseFloat(line)
		if perr == nil {
			return v, nil
		}
		logger.Debugf("rejected numeric input %q: %v", line, perr)
		c.println(InvalidNumberMsg)
	}
}

// OptionType prompts until the trimmed, lowercased answer is "call" or "put".
func (c *Collector) OptionType() (pricing.OptionType, error) {
	for {
		line, err := c.ask(OptionTypePrompt)
		if err != nil {
			return "", err
		}

		o, perr := pricing.ParseOptionType(line)
		if perr == nil {
			return o, nil
		}
		logger.Debugf("rejected option type %q", line)
		c.println(InvalidOptionTypeMsg)
	}
}

// ask writes label and reads one line without its trailing newline.
// A final line without a newline is still returned; a bare EOF is ErrInputClosed.
func (c *Collector) ask(label string) (string, error) {
	if _, err := io.WriteString(c.out, label); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", ErrInputClosed
		}
	}
	line = strings.TrimRight(line, "\r\n")
	logger.Tracef("read %q for %q", line, label)
	return line, nil
}

func (c *Collector) println(msg string) {
	_, _ = fmt.Fprintln(c.out, msg)
}

func (c *Collector) parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errNotANumber
	}
	if v, err := parseReal(s); err == nil {
		return v, nil
	}
	if !c.Expressions {
		return 0, errNotANumber
	}
	return evalExpression(s)
}

// parseReal accepts decimal and exponent forms, inf/infinity/nan and single
// underscores between digits. Hex floats are refused. Overflow is accepted as ±Inf.
func parseReal(s string) (float64, error) {
	if strings.ContainsAny(s, "xX") {
		return 0, errNotANumber
	}
	if strings.Contains(s, "_") {
		if !validUnderscores(s) {
			return 0, errNotANumber
		}
		s = strings.ReplaceAll(s, "_", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return v, nil
}

func validUnderscores(s string) bool {
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}
	return true
}

// evalExpression evaluates a parameter-free arithmetic expression like "30/365".
func evalExpression(s string) (f float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, err = 0, fmt.Errorf("%w: %v", errNotANumber, r)
		}
	}()

	expr, err := govaluate.NewEvaluableExpression(s)
	if err != nil {
		return 0, err
	}

	result, err := expr.Evaluate(nil)
	if err != nil {
		return 0, err
	}

	f, ok := result.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotANumber
	}
	return f, nil
}
