package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/allisson/kms/internal/envelope/domain"
	"github.com/allisson/kms/internal/envelope/service"
)

type envelopeUseCase struct {
	keyfileRepo KeyfileRepository
	wrapper     *service.KeyWrapper
	stream      *service.StreamCipher
	iterations  int
	logger      *slog.Logger
}

// NewEnvelopeUseCase returns the EnvelopeUseCase implementation. The
// iteration count applies to every wrap performed by this use case.
func NewEnvelopeUseCase(
	keyfileRepo KeyfileRepository,
	wrapper *service.KeyWrapper,
	stream *service.StreamCipher,
	iterations int,
	logger *slog.Logger,
) EnvelopeUseCase {
	return &envelopeUseCase{
		keyfileRepo: keyfileRepo,
		wrapper:     wrapper,
		stream:      stream,
		iterations:  iterations,
		logger:      logger,
	}
}

func (e *envelopeUseCase) Provision(ctx context.Context) (string, error) {
	if e.keyfileRepo.Exists() {
		return "", domain.ErrKeyfileExists
	}

	mnemonic, err := service.GenerateMnemonic()
	if err != nil {
		return "", err
	}

	dataKey, err := e.wrapper.GenerateDataKey()
	if err != nil {
		return "", err
	}
	defer domain.Zero(dataKey)

	record, err := e.wrapper.Wrap(mnemonic, dataKey, e.iterations)
	if err != nil {
		return "", err
	}

	if err := e.keyfileRepo.Store(record); err != nil {
		return "", err
	}

	e.logger.Info("keyfile provisioned", slog.Int("kdf_iterations", e.iterations))
	return mnemonic, nil
}

func (e *envelopeUseCase) Rotate(ctx context.Context, mnemonic string) (string, error) {
	record, err := e.keyfileRepo.Load()
	if err != nil {
		return "", err
	}

	dataKey, err := e.wrapper.Unwrap(mnemonic, record)
	if err != nil {
		return "", err
	}
	defer domain.Zero(dataKey)

	newMnemonic, err := service.GenerateMnemonic()
	if err != nil {
		return "", err
	}

	newRecord, err := e.wrapper.Wrap(newMnemonic, dataKey, e.iterations)
	if err != nil {
		return "", err
	}

	if err := e.keyfileRepo.Store(newRecord); err != nil {
		return "", err
	}

	e.logger.Info("keyfile rotated", slog.Int("kdf_iterations", e.iterations))
	return newMnemonic, nil
}

func (e *envelopeUseCase) Encrypt(ctx context.Context, mnemonic string, w io.Writer, r io.Reader) error {
	dataKey, err := e.unwrapDataKey(mnemonic)
	if err != nil {
		return err
	}
	defer domain.Zero(dataKey)

	return e.stream.Encrypt(w, r, dataKey)
}

func (e *envelopeUseCase) Decrypt(ctx context.Context, mnemonic string, w io.Writer, r io.Reader) error {
	dataKey, err := e.unwrapDataKey(mnemonic)
	if err != nil {
		return err
	}
	defer domain.Zero(dataKey)

	return e.stream.Decrypt(w, r, dataKey)
}

func (e *envelopeUseCase) unwrapDataKey(mnemonic string) ([]byte, error) {
	record, err := e.keyfileRepo.Load()
	if err != nil {
		return nil, err
	}

	return e.wrapper.Unwrap(mnemonic, record)
}
