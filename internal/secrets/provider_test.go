package secrets_test

import (
	"context"
	"testing"

	"github.com/lexfirm/backoffice-api/internal/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolveSource(t *testing.T) {
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource(secrets.SourceAuto, "development"))
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource(secrets.SourceAuto, ""))
	assert.Equal(t, secrets.SourceVault, secrets.ResolveSource(secrets.SourceAuto, "production"))
	assert.Equal(t, secrets.SourceEnvironment, secrets.ResolveSource(secrets.SourceEnvironment, "production"))
}

func TestProvider_EnvironmentSource(t *testing.T) {
	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:      secrets.SourceAuto,
		Environment: "development",
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, secrets.SourceEnvironment, provider.Source())

	t.Setenv("BACKOFFICE_TEST_SECRET", "s3cret")
	value, err := provider.GetSecret(context.Background(), "BACKOFFICE_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)

	_, err = provider.GetSecret(context.Background(), "BACKOFFICE_MISSING_SECRET")
	assert.Error(t, err)
}

func TestProvider_GetSecretOrEnvPrefersOverride(t *testing.T) {
	provider, err := secrets.NewProvider(&secrets.ProviderConfig{Source: secrets.SourceEnvironment}, zap.NewNop())
	require.NoError(t, err)

	t.Setenv("DATABASE_PASSWORD", "override")
	value, err := provider.GetSecretOrEnv(context.Background(), "BACKOFFICE-DB-PASSWORD", "DATABASE_PASSWORD")
	require.NoError(t, err)
	assert.Equal(t, "override", value)
}

func TestNewProvider_VaultRequiresName(t *testing.T) {
	_, err := secrets.NewProvider(&secrets.ProviderConfig{Source: secrets.SourceVault}, zap.NewNop())
	assert.Error(t, err)
}
