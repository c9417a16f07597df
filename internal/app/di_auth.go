package app

import (
	"fmt"

	authRepository "github.com/allisson/credseal/internal/auth/repository"
	authService "github.com/allisson/credseal/internal/auth/service"
	authUseCase "github.com/allisson/credseal/internal/auth/usecase"
)

// TokenService returns the token generator and hasher.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// TokenRepository returns the access token repository for DB_DRIVER.
func (c *Container) TokenRepository() (authUseCase.TokenRepository, error) {
	err := c.resolve(&c.tokenRepositoryInit, "tokenRepository", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for token repository: %w", err)
		}
		switch c.config.DBDriver {
		case "mysql":
			c.tokenRepository = authRepository.NewMySQLTokenRepository(db)
		case "postgres":
			c.tokenRepository = authRepository.NewPostgreSQLTokenRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.tokenRepository, nil
}

// TokenUseCase returns the instrumented token use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	err := c.resolve(&c.tokenUseCaseInit, "tokenUseCase", func() error {
		tokenRepository, err := c.TokenRepository()
		if err != nil {
			return fmt.Errorf("failed to get token repository for token use case: %w", err)
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		useCase := authUseCase.NewTokenUseCase(tokenRepository, c.TokenService(), c.config.TokenPrefix)
		c.tokenUseCase = authUseCase.NewTokenUseCaseWithMetrics(useCase, businessMetrics)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.tokenUseCase, nil
}
