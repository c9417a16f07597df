package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/credseal/internal/crypto/domain"
	cryptoService "github.com/allisson/credseal/internal/crypto/service"
	cryptoUseCase "github.com/allisson/credseal/internal/crypto/usecase"
)

// KMSService returns the gocloud.dev keeper opener.
func (c *Container) KMSService() *cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// MasterSecretChain returns the active and previous master secrets, unwrapped
// through KMS when KMS_KEY_URI is set. The chain is wiped by Shutdown.
func (c *Container) MasterSecretChain() (*cryptoDomain.MasterSecretChain, error) {
	err := c.resolve(&c.masterSecretChainInit, "masterSecretChain", func() error {
		chain, err := cryptoDomain.LoadMasterSecretChain(
			context.Background(),
			c.config.MasterSecret,
			c.config.PreviousMasterSecret,
			c.config.KMSKeyURI,
			c.KMSService(),
			c.Logger(),
		)
		if err != nil {
			return fmt.Errorf("failed to load master secret chain: %w", err)
		}
		c.masterSecretChain = chain
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.masterSecretChain, nil
}

// EnvelopeCipher returns the cipher configured with KDF_ITERATIONS and
// ENVELOPE_ALGORITHM.
func (c *Container) EnvelopeCipher() (cryptoService.EnvelopeCipher, error) {
	err := c.resolve(&c.envelopeCipherInit, "envelopeCipher", func() error {
		alg, err := cryptoDomain.ParseAlgorithm(c.config.EnvelopeAlgorithm)
		if err != nil {
			return fmt.Errorf("failed to parse envelope algorithm: %w", err)
		}
		c.envelopeCipher = cryptoService.NewEnvelopeCipher(
			cryptoService.NewPBKDF2KDF(c.config.KDFIterations),
			cryptoService.NewAEADManager(),
			alg,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.envelopeCipher, nil
}

// Sealer returns the instrumented sealer.
func (c *Container) Sealer() (cryptoUseCase.SealerUseCase, error) {
	err := c.resolve(&c.sealerInit, "sealer", func() error {
		cipher, err := c.EnvelopeCipher()
		if err != nil {
			return err
		}
		chain, err := c.MasterSecretChain()
		if err != nil {
			return err
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return fmt.Errorf("failed to get business metrics for sealer: %w", err)
		}
		c.sealer = cryptoUseCase.NewSealerUseCaseWithMetrics(cryptoUseCase.NewSealer(cipher, chain), businessMetrics)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.sealer, nil
}
