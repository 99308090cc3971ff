package policy

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fekuna/omnipos-storefront-service/internal/apperror"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Kind names one policy text on the policy document. The value is the
// camelCase key clients address it by.
type Kind string

const (
	TermsOfService Kind = "termsOfService"
	PrivacyPolicy  Kind = "privacyPolicy"
	ReturnPolicy   Kind = "returnPolicy"
	ShippingPolicy Kind = "shippingPolicy"
	RefundPolicy   Kind = "refundPolicy"
	CookiePolicy   Kind = "cookiePolicy"
)

type kindMapping struct {
	column   string
	accessor func(*model.PolicyDocument) string
}

var kinds = map[Kind]kindMapping{
	TermsOfService: {"terms_of_service", func(d *model.PolicyDocument) string { return d.TermsOfService.String }},
	PrivacyPolicy:  {"privacy_policy", func(d *model.PolicyDocument) string { return d.PrivacyPolicy.String }},
	ReturnPolicy:   {"return_policy", func(d *model.PolicyDocument) string { return d.ReturnPolicy.String }},
	ShippingPolicy: {"shipping_policy", func(d *model.PolicyDocument) string { return d.ShippingPolicy.String }},
	RefundPolicy:   {"refund_policy", func(d *model.PolicyDocument) string { return d.RefundPolicy.String }},
	CookiePolicy:   {"cookie_policy", func(d *model.PolicyDocument) string { return d.CookiePolicy.String }},
}

// Kinds lists every known kind.
func Kinds() []Kind {
	return []Kind{TermsOfService, PrivacyPolicy, ReturnPolicy, ShippingPolicy, RefundPolicy, CookiePolicy}
}

// Column is the policies table column holding this kind's text.
func (k Kind) Column() string {
	return kinds[k].column
}

// Content reads this kind's text from doc. NULL reads as "".
func (k Kind) Content(doc *model.PolicyDocument) string {
	m, ok := kinds[k]
	if !ok || doc == nil {
		return ""
	}
	return m.accessor(doc)
}

func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Normalize turns a human policy name into its camelCase key:
// "Terms of Service" -> "termsOfService". Text without spaces is only
// adjusted at its first rune, so camelCase input is returned unchanged.
func Normalize(raw string) string {
	words := strings.Fields(raw)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if i == 0 {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		b.WriteString(w[size:])
	}
	return b.String()
}

// ParseKind normalizes raw and resolves it to a known kind.
func ParseKind(raw string) (Kind, error) {
	key := Normalize(raw)
	if key == "" {
		return "", apperror.Validation(apperror.MsgPolicyTypeRequired)
	}
	k := Kind(key)
	if !k.Valid() {
		return "", apperror.NotFound(apperror.MsgPolicyNotFound)
	}
	return k, nil
}
