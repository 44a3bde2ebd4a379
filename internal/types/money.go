// README: Money value object for upstream cost estimates.
package types

import "fmt"

// USD is an amount in US dollars.
type USD float64

// String renders the amount with four decimals, e.g. "$18.0000".
func (u USD) String() string {
	return fmt.Sprintf("$%.4f", float64(u))
}
