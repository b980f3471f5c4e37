package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

func TestEnvelopeAssembler_Assemble(t *testing.T) {
	a := NewEnvelopeAssembler()

	t.Run("standard base64 without wrapping", func(t *testing.T) {
		env := a.Assemble(
			[]byte("wrapped-key"),
			"20250315",
			[]byte("encrypted-digest"),
			[]byte{0xFB, 0xFF, 0x01},
			envelopeDomain.DataTypeXML,
		)

		assert.Equal(t, envelopeDomain.Envelope{
			Skey: envelopeDomain.Skey{CI: "20250315", Value: "d3JhcHBlZC1rZXk="},
			Hmac: "ZW5jcnlwdGVkLWRpZ2VzdA==",
			Data: envelopeDomain.Data{Type: "X", Value: "+/8B"},
		}, env)
	})

	t.Run("long values are not line wrapped", func(t *testing.T) {
		env := a.Assemble(make([]byte, 256), "20250315", make([]byte, 48), make([]byte, 4096), "P")
		assert.NotContains(t, env.Skey.Value, "\n")
		assert.NotContains(t, env.Data.Value, "\n")
		assert.Len(t, env.Skey.Value, 344)
	})

	panics := []struct {
		name            string
		wrappedKey      []byte
		ci              envelopeDomain.CertificateIdentifier
		encryptedDigest []byte
		ciphertext      []byte
		dataType        envelopeDomain.DataType
	}{
		{"empty wrapped key", nil, "20250315", []byte{1}, []byte{1}, "X"},
		{"invalid identifier", []byte{1}, "2025-03-15", []byte{1}, []byte{1}, "X"},
		{"empty identifier", []byte{1}, "", []byte{1}, []byte{1}, "X"},
		{"empty digest", []byte{1}, "20250315", nil, []byte{1}, "X"},
		{"empty ciphertext", []byte{1}, "20250315", []byte{1}, nil, "X"},
		{"empty data type", []byte{1}, "20250315", []byte{1}, []byte{1}, ""},
	}
	for _, tt := range panics {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() {
				a.Assemble(tt.wrappedKey, tt.ci, tt.encryptedDigest, tt.ciphertext, tt.dataType)
			})
		})
	}
}
