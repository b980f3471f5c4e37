// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/base64"
	"fmt"

	validation "github.com/jellydator/validation"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	customValidation "github.com/allisson/pidseal/internal/validation"
)

var dataTypes = []interface{}{
	string(envelopeDomain.DataTypeXML),
	string(envelopeDomain.DataTypeProtobuf),
}

func validateCertificateIdentifier(value interface{}) error {
	s, _ := value.(string)
	if s != "" && !envelopeDomain.CertificateIdentifier(s).IsValid() {
		return validation.NewError("validation_certificate_identifier", "must be 8 digits (YYYYMMDD)")
	}
	return nil
}

// SealRequest contains the PID payload to seal.
type SealRequest struct {
	Payload   string `json:"payload"`   // Base64-encoded canonical PID bytes
	Timestamp string `json:"timestamp"` // e.g. "2023-10-27T12:00:00", at least 16 bytes
	DataType  string `json:"data_type"` // "X" or "P"; empty uses the configured default
}

// Validate checks if the seal request is valid.
func (r *SealRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Payload,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
		validation.Field(&r.Timestamp,
			validation.Required,
			customValidation.NoWhitespace,
			customValidation.MinBytes(envelopeDomain.AADSize),
		),
		validation.Field(&r.DataType,
			validation.In(dataTypes...),
		),
	)
}

// ToSealInput decodes the request into the use case input.
func (r *SealRequest) ToSealInput() (envelopeDomain.SealInput, error) {
	payload, err := base64.StdEncoding.DecodeString(r.Payload)
	if err != nil {
		return envelopeDomain.SealInput{}, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return envelopeDomain.SealInput{
		Payload:   payload,
		Timestamp: envelopeDomain.Timestamp(r.Timestamp),
		DataType:  envelopeDomain.DataType(r.DataType),
	}, nil
}

// OpenRequest contains an envelope to verify with the configured private key.
type OpenRequest struct {
	Envelope  envelopeDomain.Envelope `json:"envelope"`
	Timestamp string                  `json:"timestamp"`
}

// Validate checks if the open request is valid.
func (r *OpenRequest) Validate() error {
	if err := validation.ValidateStruct(r,
		validation.Field(&r.Timestamp,
			validation.Required,
			customValidation.NoWhitespace,
			customValidation.MinBytes(envelopeDomain.AADSize),
		),
	); err != nil {
		return err
	}

	return validation.Errors{
		"envelope.skey.ci": validation.Validate(string(r.Envelope.Skey.CI),
			validation.Required,
			validation.By(validateCertificateIdentifier),
		),
		"envelope.skey.value": validation.Validate(r.Envelope.Skey.Value,
			validation.Required,
			customValidation.Base64,
		),
		"envelope.hmac": validation.Validate(r.Envelope.Hmac,
			validation.Required,
			customValidation.Base64,
			customValidation.DecodedMinBytes(1),
		),
		"envelope.data.type": validation.Validate(string(r.Envelope.Data.Type),
			validation.Required,
			validation.In(dataTypes...),
		),
		"envelope.data.value": validation.Validate(r.Envelope.Data.Value,
			validation.Required,
			customValidation.Base64,
		),
	}.Filter()
}

// ToOpenInput converts the request into the use case input.
func (r *OpenRequest) ToOpenInput() envelopeDomain.OpenInput {
	return envelopeDomain.OpenInput{
		Envelope:  r.Envelope,
		Timestamp: envelopeDomain.Timestamp(r.Timestamp),
	}
}
