package app

import (
	"fmt"

	kmsHTTP "github.com/allisson/kms/internal/kms/http"
	kmsRepository "github.com/allisson/kms/internal/kms/repository"
	kmsService "github.com/allisson/kms/internal/kms/service"
	kmsUseCase "github.com/allisson/kms/internal/kms/usecase"
)

// kmsDeps holds the lazily initialized KMS module dependencies.
type kmsDeps struct {
	keyStore      kmsUseCase.KeyRepository
	kmsUseCase    kmsUseCase.KMSUseCase
	keyHandler    *kmsHTTP.KeyHandler
	cryptoHandler *kmsHTTP.CryptoHandler
}

// KeyStore returns the file-backed key repository.
func (c *Container) KeyStore() (kmsUseCase.KeyRepository, error) {
	var err error
	c.keyStoreInit.Do(func() {
		c.keyStore, err = kmsRepository.NewFileKeyStore(c.config.KeystorePath, c.Logger())
		if err != nil {
			c.setInitError("keyStore", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("keyStore"); storedErr != nil {
		return nil, storedErr
	}
	return c.keyStore, nil
}

// KMSUseCase returns the KMS use case wrapped with business metrics.
func (c *Container) KMSUseCase() (kmsUseCase.KMSUseCase, error) {
	var err error
	c.kmsUseCaseInit.Do(func() {
		c.kmsUseCase, err = c.initKMSUseCase()
		if err != nil {
			c.setInitError("kmsUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("kmsUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.kmsUseCase, nil
}

// initKMSUseCase creates the KMS use case with all its dependencies.
func (c *Container) initKMSUseCase() (kmsUseCase.KMSUseCase, error) {
	keyStore, err := c.KeyStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get key store for kms use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for kms use case: %w", err)
	}

	useCase := kmsUseCase.NewKMSUseCase(keyStore, kmsService.NewAEADManager(), c.Logger())

	return kmsUseCase.NewKMSUseCaseWithMetrics(useCase, businessMetrics), nil
}

// kmsHandlers creates the HTTP handlers for the KMS module.
func (c *Container) kmsHandlers() (*kmsHTTP.KeyHandler, *kmsHTTP.CryptoHandler, error) {
	useCase, err := c.KMSUseCase()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get kms use case for http handlers: %w", err)
	}

	if c.keyHandler == nil {
		c.keyHandler = kmsHTTP.NewKeyHandler(useCase, c.Logger())
	}
	if c.cryptoHandler == nil {
		c.cryptoHandler = kmsHTTP.NewCryptoHandler(useCase, c.Logger())
	}

	return c.keyHandler, c.cryptoHandler, nil
}
