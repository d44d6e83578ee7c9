package app

import (
	"fmt"

	envelopeRepository "github.com/allisson/kms/internal/envelope/repository"
	envelopeService "github.com/allisson/kms/internal/envelope/service"
	envelopeUseCase "github.com/allisson/kms/internal/envelope/usecase"
)

// envelopeDeps holds the lazily initialized envelope module dependencies.
type envelopeDeps struct {
	keyfileRepo     envelopeUseCase.KeyfileRepository
	envelopeUseCase envelopeUseCase.EnvelopeUseCase
}

// moduleDeps aggregates the per-module dependency sets embedded in the container.
type moduleDeps struct {
	kmsDeps
	envelopeDeps
}

// KeyfileRepository returns the file-backed keyfile repository.
func (c *Container) KeyfileRepository() (envelopeUseCase.KeyfileRepository, error) {
	var err error
	c.keyfileRepoInit.Do(func() {
		c.keyfileRepo, err = envelopeRepository.NewFileKeyfileRepository(c.config.KeyfilePath, c.Logger())
		if err != nil {
			c.setInitError("keyfileRepo", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("keyfileRepo"); storedErr != nil {
		return nil, storedErr
	}
	return c.keyfileRepo, nil
}

// EnvelopeUseCase returns the envelope encryption use case.
func (c *Container) EnvelopeUseCase() (envelopeUseCase.EnvelopeUseCase, error) {
	var err error
	c.envelopeUseCaseInit.Do(func() {
		c.envelopeUseCase, err = c.initEnvelopeUseCase()
		if err != nil {
			c.setInitError("envelopeUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("envelopeUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.envelopeUseCase, nil
}

// initEnvelopeUseCase creates the envelope use case with all its dependencies.
func (c *Container) initEnvelopeUseCase() (envelopeUseCase.EnvelopeUseCase, error) {
	keyfileRepo, err := c.KeyfileRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get keyfile repository for envelope use case: %w", err)
	}

	return envelopeUseCase.NewEnvelopeUseCase(
		keyfileRepo,
		envelopeService.NewKeyWrapper(),
		envelopeService.NewStreamCipher(c.config.ChunkSize),
		c.config.KDFIterations,
		c.Logger(),
	), nil
}
