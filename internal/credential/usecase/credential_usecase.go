package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	credentialDomain "github.com/allisson/credseal/internal/credential/domain"
	cryptoUseCase "github.com/allisson/credseal/internal/crypto/usecase"
	"github.com/allisson/credseal/internal/database"
)

// resealPageSize is the number of credentials loaded per ResealAll batch.
const resealPageSize = 100

const (
	publishableSuffix = "/publishable"
	secretSuffix      = "/secret"
)

type credentialUseCase struct {
	txManager      database.TxManager
	credentialRepo CredentialRepository
	sealer         cryptoUseCase.SealerUseCase
	logger         *slog.Logger
}

// Store seals plaintext and creates or overwrites the credential.
func (c *credentialUseCase) Store(
	ctx context.Context,
	name string,
	kind credentialDomain.Kind,
	plaintext string,
) (*credentialDomain.Credential, error) {
	if err := credentialDomain.ValidateName(name, kind); err != nil {
		return nil, err
	}
	if err := credentialDomain.ValidatePlaintext(kind, plaintext); err != nil {
		return nil, err
	}

	var stored *credentialDomain.Credential
	err := c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		stored, err = c.upsert(txCtx, name, kind, plaintext)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("credential stored",
		slog.String("name", name),
		slog.String("kind", string(kind)))
	return stored, nil
}

// StoreKeyPair stores both halves of an API key pair atomically.
func (c *credentialUseCase) StoreKeyPair(
	ctx context.Context,
	name, publishable, secret string,
) ([]*credentialDomain.Credential, error) {
	if err := credentialDomain.ValidateKeyPair(publishable, secret); err != nil {
		return nil, err
	}

	secretInfo, err := credentialDomain.ParseAPIKey(secret)
	if err != nil {
		return nil, err
	}

	entries := []struct {
		name      string
		kind      credentialDomain.Kind
		plaintext string
	}{
		{name + publishableSuffix, credentialDomain.PublishableKey, publishable},
		{name + secretSuffix, credentialDomain.KindForClass(secretInfo.Class), secret},
	}

	for _, entry := range entries {
		if err := credentialDomain.ValidateName(entry.name, entry.kind); err != nil {
			return nil, err
		}
	}

	stored := make([]*credentialDomain.Credential, 0, len(entries))
	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		for _, entry := range entries {
			credential, err := c.upsert(txCtx, entry.name, entry.kind, entry.plaintext)
			if err != nil {
				return err
			}
			stored = append(stored, credential)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("key pair stored", slog.String("name", name))
	return stored, nil
}

func (c *credentialUseCase) upsert(
	ctx context.Context,
	name string,
	kind credentialDomain.Kind,
	plaintext string,
) (*credentialDomain.Credential, error) {
	ciphertext, err := c.sealer.Seal(ctx, plaintext)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	existing, err := c.credentialRepo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, credentialDomain.ErrCredentialNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Kind = kind
		existing.Ciphertext = ciphertext
		existing.UpdatedAt = now
		if err := c.credentialRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	credential := &credentialDomain.Credential{
		ID:         uuid.Must(uuid.NewV7()),
		Name:       name,
		Kind:       kind,
		Ciphertext: ciphertext,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := c.credentialRepo.Create(ctx, credential); err != nil {
		return nil, err
	}
	return credential, nil
}

// Reveal loads and opens a credential.
func (c *credentialUseCase) Reveal(ctx context.Context, name string) (string, error) {
	credential, err := c.credentialRepo.GetByName(ctx, name)
	if err != nil {
		return "", err
	}

	plaintext, err := c.sealer.Open(ctx, credential.Ciphertext)
	if err != nil {
		c.logger.Warn("credential could not be opened",
			slog.String("name", name),
			slog.String("kind", string(credential.Kind)))
		return "", err
	}
	return plaintext, nil
}

// Get returns credential metadata and its envelope.
func (c *credentialUseCase) Get(ctx context.Context, name string) (*credentialDomain.Credential, error) {
	return c.credentialRepo.GetByName(ctx, name)
}

// List returns credentials ordered by name.
func (c *credentialUseCase) List(ctx context.Context, offset, limit int) ([]*credentialDomain.Credential, error) {
	return c.credentialRepo.List(ctx, offset, limit)
}

// Delete removes a credential.
func (c *credentialUseCase) Delete(ctx context.Context, name string) error {
	if err := c.credentialRepo.Delete(ctx, name); err != nil {
		return err
	}
	c.logger.Info("credential deleted", slog.String("name", name))
	return nil
}

// ResealAll walks every credential page by page and rewrites each envelope
// under the active master secret. The first failure cancels the run.
func (c *credentialUseCase) ResealAll(ctx context.Context, concurrency int) (int, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	resealed := 0
	for offset := 0; ; offset += resealPageSize {
		credentials, err := c.credentialRepo.List(ctx, offset, resealPageSize)
		if err != nil {
			return resealed, err
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)

		for _, credential := range credentials {
			g.Go(func() error {
				return c.reseal(gCtx, credential)
			})
		}

		if err := g.Wait(); err != nil {
			return resealed, err
		}
		resealed += len(credentials)

		if len(credentials) < resealPageSize {
			break
		}
	}

	c.logger.Info("credentials resealed", slog.Int("count", resealed))
	return resealed, nil
}

func (c *credentialUseCase) reseal(ctx context.Context, credential *credentialDomain.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ciphertext, err := c.sealer.Reseal(ctx, credential.Ciphertext)
	if err != nil {
		c.logger.Error("credential could not be resealed",
			slog.String("name", credential.Name),
			slog.String("kind", string(credential.Kind)))
		return err
	}

	credential.Ciphertext = ciphertext
	credential.UpdatedAt = time.Now().UTC()
	return c.credentialRepo.Update(ctx, credential)
}

// NewCredentialUseCase creates a CredentialUseCase.
func NewCredentialUseCase(
	txManager database.TxManager,
	credentialRepo CredentialRepository,
	sealer cryptoUseCase.SealerUseCase,
	logger *slog.Logger,
) CredentialUseCase {
	return &credentialUseCase{
		txManager:      txManager,
		credentialRepo: credentialRepo,
		sealer:         sealer,
		logger:         logger,
	}
}
