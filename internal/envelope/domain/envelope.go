// Package domain defines the data model of a sealed PID authentication request.
//
// A request is sealed as three fields that only the holder of the authority's
// private key can open:
//
//	Skey: session key wrapped with RSA PKCS#1 v1.5 under the authority certificate
//	Hmac: SHA-256 of the PID, encrypted with AES-256-ECB/PKCS#7 under the session key
//	Data: PID encrypted with AES-256-GCM under the session key, IV/AAD from the timestamp
package domain

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
)

// DataType distinguishes payload encodings in the Data element. It is supplied
// by the caller, never computed.
type DataType string

const (
	// DataTypeXML marks an XML-serialized PID block.
	DataTypeXML DataType = "X"
	// DataTypeProtobuf marks a protobuf-serialized PID block.
	DataTypeProtobuf DataType = "P"
)

// IsValid reports whether d is one of the known data types.
func (d DataType) IsValid() bool {
	return d == DataTypeXML || d == DataTypeProtobuf
}

// Skey carries the wrapped session key and the certificate identifier.
type Skey struct {
	CI    CertificateIdentifier `json:"ci"    xml:"ci,attr"`
	Value string                `json:"value" xml:",chardata"`
}

// Data carries the encrypted PID payload.
type Data struct {
	Type  DataType `json:"type"  xml:"type,attr"`
	Value string   `json:"value" xml:",chardata"`
}

// Envelope is the sealed output of one transaction. All values are standard
// base64 without line wrapping. It is immutable once assembled and handed to
// the external signing step.
type Envelope struct {
	Skey Skey   `json:"skey"`
	Hmac string `json:"hmac"`
	Data Data   `json:"data"`
}

// DecodedEnvelope holds the raw bytes behind the base64 fields of an Envelope.
type DecodedEnvelope struct {
	CI              CertificateIdentifier
	WrappedKey      []byte
	EncryptedDigest []byte
	Ciphertext      []byte
	DataType        DataType
}

// Decode base64-decodes the three binary fields.
func (e Envelope) Decode() (*DecodedEnvelope, error) {
	if !e.Skey.CI.IsValid() {
		return nil, fmt.Errorf("%w: certificate identifier %q", ErrInvalidEnvelope, e.Skey.CI)
	}

	wrappedKey, err := decodeField("skey", e.Skey.Value)
	if err != nil {
		return nil, err
	}
	encryptedDigest, err := decodeField("hmac", e.Hmac)
	if err != nil {
		return nil, err
	}
	ciphertext, err := decodeField("data", e.Data.Value)
	if err != nil {
		return nil, err
	}

	return &DecodedEnvelope{
		CI:              e.Skey.CI,
		WrappedKey:      wrappedKey,
		EncryptedDigest: encryptedDigest,
		Ciphertext:      ciphertext,
		DataType:        e.Data.Type,
	}, nil
}

// XMLFragment renders the envelope as the <Skey/><Hmac/><Data/> elements of an
// authentication request, ready to be embedded by the upstream XML builder.
func (e Envelope) XMLFragment() (string, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	if err := enc.EncodeElement(e.Skey, xml.StartElement{Name: xml.Name{Local: "Skey"}}); err != nil {
		return "", fmt.Errorf("failed to encode Skey: %w", err)
	}
	if err := enc.EncodeElement(e.Hmac, xml.StartElement{Name: xml.Name{Local: "Hmac"}}); err != nil {
		return "", fmt.Errorf("failed to encode Hmac: %w", err)
	}
	if err := enc.EncodeElement(e.Data, xml.StartElement{Name: xml.Name{Local: "Data"}}); err != nil {
		return "", fmt.Errorf("failed to encode Data: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush xml encoder: %w", err)
	}

	return buf.String(), nil
}

func decodeField(name, value string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidEnvelope, name)
	}
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid base64: %v", ErrInvalidEnvelope, name, err)
	}
	return b, nil
}
