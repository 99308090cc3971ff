package policy

import (
	"database/sql"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/apperror"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"terms of service", "termsOfService"},
		{"Terms of Service", "termsOfService"},
		{"  privacy   policy ", "privacyPolicy"},
		{"Return\tPolicy", "returnPolicy"},
		{"termsOfService", "termsOfService"},
		{"TermsOfService", "termsOfService"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_FixedPoint(t *testing.T) {
	for _, k := range Kinds() {
		once := Normalize(string(k))
		assert.Equal(t, string(k), once)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Shipping Policy")
	require.NoError(t, err)
	assert.Equal(t, ShippingPolicy, k)
	assert.Equal(t, "shipping_policy", k.Column())
}

func TestParseKind_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := ParseKind(in)
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Equal(t, apperror.MsgPolicyTypeRequired, apperror.From(err).MessageID)
	}
}

func TestParseKind_Unknown(t *testing.T) {
	for _, in := range []string{"warranty", "terms OF service", "updatedAt", "id"} {
		_, err := ParseKind(in)
		require.Error(t, err, in)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err), in)
	}
}

func TestKind_Content(t *testing.T) {
	doc := &model.PolicyDocument{
		TermsOfService: sql.NullString{String: "Be nice.", Valid: true},
	}

	assert.Equal(t, "Be nice.", TermsOfService.Content(doc))
	assert.Equal(t, "", PrivacyPolicy.Content(doc))
	assert.Equal(t, "", Kind("bogus").Content(doc))
	assert.Equal(t, "", TermsOfService.Content(nil))
}

func TestKinds_AllHaveColumns(t *testing.T) {
	for _, k := range Kinds() {
		assert.True(t, k.Valid())
		assert.NotEmpty(t, k.Column(), k)
	}
}
