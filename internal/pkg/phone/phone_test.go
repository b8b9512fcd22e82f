package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already e164", "+5511999999999", "+5511999999999"},
		{"e164 with formatting", "+1 415 523 8886", "+14155238886"},
		{"mobile with area code", "11999999999", "+5511999999999"},
		{"landline with area code", "1133334444", "+551133334444"},
		{"country code already present", "5511999999999", "+5511999999999"},
		{"formatted local number", "(11) 99999-9999", "+5511999999999"},
		{"unrecognized length", "123456789", "+123456789"},
		{"whitespace only", "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in, DefaultCountryCode))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"11999999999", "+5511988887777", "5511999999999", "(11) 98888-7777"}
	for _, in := range inputs {
		once := Normalize(in, DefaultCountryCode)
		assert.Equal(t, once, Normalize(once, DefaultCountryCode), "input %q", in)
	}
}

func TestNormalize_OtherCountryCode(t *testing.T) {
	assert.Equal(t, "+14155238886", Normalize("14155238886", "1"))
}
