package app

import (
	"fmt"

	credentialHTTP "github.com/allisson/credseal/internal/credential/http"
	credentialRepository "github.com/allisson/credseal/internal/credential/repository"
	credentialUseCase "github.com/allisson/credseal/internal/credential/usecase"
)

// CredentialRepository returns the credential repository for DB_DRIVER.
func (c *Container) CredentialRepository() (credentialUseCase.CredentialRepository, error) {
	err := c.resolve(&c.credentialRepositoryInit, "credentialRepository", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for credential repository: %w", err)
		}
		switch c.config.DBDriver {
		case "mysql":
			c.credentialRepository = credentialRepository.NewMySQLCredentialRepository(db)
		case "postgres":
			c.credentialRepository = credentialRepository.NewPostgreSQLCredentialRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.credentialRepository, nil
}

// CredentialUseCase returns the instrumented credential use case.
func (c *Container) CredentialUseCase() (credentialUseCase.CredentialUseCase, error) {
	err := c.resolve(&c.credentialUseCaseInit, "credentialUseCase", func() error {
		txManager, err := c.TxManager()
		if err != nil {
			return fmt.Errorf("failed to get tx manager for credential use case: %w", err)
		}
		repo, err := c.CredentialRepository()
		if err != nil {
			return fmt.Errorf("failed to get credential repository for credential use case: %w", err)
		}
		sealer, err := c.Sealer()
		if err != nil {
			return fmt.Errorf("failed to get sealer for credential use case: %w", err)
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return fmt.Errorf("failed to get business metrics for credential use case: %w", err)
		}
		useCase := credentialUseCase.NewCredentialUseCase(txManager, repo, sealer, c.Logger())
		c.credentialUseCase = credentialUseCase.NewCredentialUseCaseWithMetrics(useCase, businessMetrics)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.credentialUseCase, nil
}

// CredentialHandler returns the credential HTTP handler.
func (c *Container) CredentialHandler() (*credentialHTTP.CredentialHandler, error) {
	err := c.resolve(&c.credentialHandlerInit, "credentialHandler", func() error {
		useCase, err := c.CredentialUseCase()
		if err != nil {
			return fmt.Errorf("failed to get credential use case for credential handler: %w", err)
		}
		c.credentialHandler = credentialHTTP.NewCredentialHandler(useCase, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.credentialHandler, nil
}
