package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	valid := New()

	type body struct {
		Password string `validate:"password"`
	}

	tests := map[string]struct {
		password string
		ok       bool
	}{
		"too short":             {password: "6Chars", ok: false},
		"too long":              {password: "TooManyChars" + strings.Repeat("1", 64), ok: false},
		"no lower-case letter":  {password: "1NOLOWERCASE", ok: false},
		"no upper-case letter":  {password: "1nouppercase", ok: false},
		"no number":             {password: "NoNumber", ok: false},
		"valid password":        {password: "1ValidPassword", ok: true},
		"valid with specials":   {password: "1ValidPassword!", ok: true},
		"unsupported character": {password: "1ValidPassword\n", ok: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := valid.Struct(body{Password: test.password})
			if test.ok {
				require.Nil(t, err)
				return
			}
			require.NotNil(t, err)
		})
	}
}

func TestDisplayName(t *testing.T) {
	valid := New()

	type body struct {
		DisplayName string `validate:"displayname"`
	}

	tests := map[string]struct {
		name string
		ok   bool
	}{
		"simple":             {name: "Jane", ok: true},
		"with space":         {name: "Jane Doe", ok: true},
		"with apostrophe":    {name: "D'Arcy", ok: true},
		"accented":           {name: "Élodie", ok: true},
		"empty":              {name: "", ok: false},
		"leading space":      {name: " Jane", ok: false},
		"too long":           {name: strings.Repeat("a", 49), ok: false},
		"control characters": {name: "Jane\tDoe", ok: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := valid.Struct(body{DisplayName: test.name})
			if test.ok {
				require.Nil(t, err)
				return
			}
			require.NotNil(t, err)
		})
	}
}
