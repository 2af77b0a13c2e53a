package validator

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/sanitizer"
)

// CardType is a payment card network.
type CardType string

const (
	CardVisa       CardType = "visa"
	CardMasterCard CardType = "mastercard"
	CardAmex       CardType = "amex"
	CardDiscover   CardType = "discover"
	CardDinersClub CardType = "diners_club"
	CardJCB        CardType = "jcb"
)

var cardTypes = []CardType{CardVisa, CardMasterCard, CardAmex, CardDiscover, CardDinersClub, CardJCB}

// CreditCard requires a card number that passes the Luhn check. Spaces and
// dashes are ignored. With Types set, the number must belong to one of the
// listed networks.
type CreditCard struct {
	Types    []CardType `yaml:"types"`
	Sequence int        `yaml:"sequence"`
	Message  string     `yaml:"message"`
}

func (CreditCard) Kind() string           { return "credit_card" }
func (CreditCard) DataType() reflect.Type { return stringType }

func (a CreditCard) Bind(*Context) (Rule, error) {
	for _, t := range a.Types {
		if !slices.Contains(cardTypes, t) {
			return nil, fmt.Errorf("%w: card type %q", ErrInvalidAnnotation, t)
		}
	}
	types := slices.Clone(a.Types)
	m := newMeta(a.Kind(), a.Sequence, a.Message, "invalid credit card number", nil)

	return newPredicate(m, func(s string) bool {
		for _, r := range s {
			if (r < '0' || r > '9') && r != ' ' && r != '-' {
				return false
			}
		}
		number := sanitizer.NormalizeCreditCard(s)
		if len(number) < 13 || len(number) > 19 || !luhn(number) {
			return false
		}
		if len(types) == 0 {
			return true
		}
		return slices.Contains(types, cardTypeOf(number))
	}), nil
}

// luhn expects a string of ASCII digits.
func luhn(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

func cardTypeOf(number string) CardType {
	prefix := func(n int) int {
		v, _ := strconv.Atoi(number[:n])
		return v
	}
	l := len(number)

	switch {
	case strings.HasPrefix(number, "4") && (l == 13 || l == 16 || l == 19):
		return CardVisa
	case l == 16 && (between(prefix(2), 51, 55) || between(prefix(4), 2221, 2720)):
		return CardMasterCard
	case l == 15 && (prefix(2) == 34 || prefix(2) == 37):
		return CardAmex
	case l >= 16 && (strings.HasPrefix(number, "6011") || strings.HasPrefix(number, "65") ||
		between(prefix(3), 644, 649)):
		return CardDiscover
	case l >= 14 && (between(prefix(3), 300, 305) || prefix(2) == 36 || prefix(2) == 38 || prefix(2) == 39):
		return CardDinersClub
	case l >= 16 && between(prefix(4), 3528, 3589):
		return CardJCB
	default:
		return ""
	}
}

func between(v, lo, hi int) bool { return v >= lo && v <= hi }
