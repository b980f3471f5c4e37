package service

import (
	"context"
	"fmt"
	"os"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// ByteSource supplies key or certificate bytes to the loaders, keeping file and
// KMS access out of the parsing code.
type ByteSource interface {
	ReadBytes(ctx context.Context) ([]byte, error)
	String() string
}

// ByteSliceSource serves bytes already in memory.
type ByteSliceSource []byte

// ReadBytes returns a copy of the slice.
func (s ByteSliceSource) ReadBytes(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]byte, len(s))
	copy(out, s)
	return out, nil
}

func (s ByteSliceSource) String() string {
	return "memory"
}

// FileSource reads a file from disk.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// ReadBytes reads the whole file.
func (s *FileSource) ReadBytes(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return b, nil
}

func (s *FileSource) String() string {
	return "file:" + s.Path
}

// KeeperSource decrypts the bytes of another source with a KMS keeper. The
// wrapped source must hold the raw ciphertext produced by the keeper.
type KeeperSource struct {
	Source ByteSource
	Keeper envelopeDomain.KMSKeeper
}

// NewKeeperSource creates a KeeperSource that unwraps source with keeper.
func NewKeeperSource(source ByteSource, keeper envelopeDomain.KMSKeeper) *KeeperSource {
	return &KeeperSource{Source: source, Keeper: keeper}
}

// ReadBytes reads the ciphertext and decrypts it.
func (s *KeeperSource) ReadBytes(ctx context.Context) ([]byte, error) {
	ciphertext, err := s.Source.ReadBytes(ctx)
	if err != nil {
		return nil, err
	}
	plaintext, err := s.Keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt %s with KMS: %w", s.Source, err)
	}
	return plaintext, nil
}

func (s *KeeperSource) String() string {
	return "kms:" + s.Source.String()
}
