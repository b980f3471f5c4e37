package service

import (
	"bytes"
	"crypto/cipher"
	"fmt"
)

// pkcs7Pad appends PKCS#7 padding. Input that is already block aligned gets a
// full block of padding.
func pkcs7Pad(data []byte, blockSize int) []byte {
	paddingLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+paddingLen)
	copy(padded, data)
	copy(padded[len(data):], bytes.Repeat([]byte{byte(paddingLen)}, paddingLen))
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length: %d", len(data))
	}

	paddingLen := int(data[len(data)-1])
	if paddingLen == 0 || paddingLen > blockSize {
		return nil, fmt.Errorf("invalid padding length: %d", paddingLen)
	}

	for i := len(data) - paddingLen; i < len(data); i++ {
		if data[i] != byte(paddingLen) {
			return nil, fmt.Errorf("invalid padding byte at position %d", i)
		}
	}

	return data[:len(data)-paddingLen], nil
}

// ecbEncrypt encrypts block-aligned src one block at a time. The standard
// library deliberately has no ECB mode; the protocol mandates it for the
// digest only.
func ecbEncrypt(block cipher.Block, src []byte) ([]byte, error) {
	bs := block.BlockSize()
	if len(src)%bs != 0 {
		return nil, fmt.Errorf("input not a multiple of the block size: %d", len(src))
	}

	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += bs {
		block.Encrypt(dst[i:i+bs], src[i:i+bs])
	}
	return dst, nil
}

func ecbDecrypt(block cipher.Block, src []byte) ([]byte, error) {
	bs := block.BlockSize()
	if len(src) == 0 || len(src)%bs != 0 {
		return nil, fmt.Errorf("input not a multiple of the block size: %d", len(src))
	}

	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += bs {
		block.Decrypt(dst[i:i+bs], src[i:i+bs])
	}
	return dst, nil
}
