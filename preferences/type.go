// FILE: lixenwraith/confchain/preferences/type.go
package preferences

import (
	"fmt"
	"strconv"
)

// Type describes the values a preference holds and how user input converts to them
type Type[E any] struct {
	Name    string
	Convert func(input string) (E, error)
}

// Built-in types
var (
	// Text holds any string
	Text = Type[string]{Name: "text", Convert: func(input string) (string, error) {
		return input, nil
	}}

	// Flag holds a boolean written as true/false, on/off or yes/no
	Flag = Type[bool]{Name: "flag", Convert: parseFlag}

	// Number holds an int
	Number = Type[int]{Name: "number", Convert: func(input string) (int, error) {
		n, err := strconv.Atoi(input)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, input)
		}
		return n, nil
	}}

	// Decimal holds a float64
	Decimal = Type[float64]{Name: "decimal", Convert: func(input string) (float64, error) {
		f, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a decimal", ErrInvalidInput, input)
		}
		return f, nil
	}}
)

func parseFlag(input string) (bool, error) {
	switch input {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a flag (true/false, on/off, yes/no)", ErrInvalidInput, input)
}
