package service_test

import (
	"context"
	"testing"
	"time"

	"riceweigh/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func buildConfirmSvc(t *testing.T, code string, ttl time.Duration) service.ConfirmService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	require.NoError(t, err)
	return service.NewConfirmService(string(hash), ttl, nil)
}

func TestConfirmRejectsWrongCode(t *testing.T) {
	svc := buildConfirmSvc(t, "2468", time.Minute)

	_, err := svc.Confirm(context.Background(), "1234")
	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestConfirmTokenIsSingleUse(t *testing.T) {
	svc := buildConfirmSvc(t, "2468", time.Minute)

	token, err := svc.Confirm(context.Background(), "2468")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, svc.Consume(context.Background(), token))
	// Burned on first use.
	assert.False(t, svc.Consume(context.Background(), token))
}

func TestConsumeUnknownToken(t *testing.T) {
	svc := buildConfirmSvc(t, "2468", time.Minute)

	assert.False(t, svc.Consume(context.Background(), ""))
	assert.False(t, svc.Consume(context.Background(), "bogus"))
}

func TestConfirmTokenExpires(t *testing.T) {
	svc := buildConfirmSvc(t, "2468", -time.Second)

	token, err := svc.Confirm(context.Background(), "2468")
	require.NoError(t, err)
	assert.False(t, svc.Consume(context.Background(), token))
}

func TestConfirmTokensAreIndependent(t *testing.T) {
	svc := buildConfirmSvc(t, "2468", time.Minute)

	t1, err := svc.Confirm(context.Background(), "2468")
	require.NoError(t, err)
	t2, err := svc.Confirm(context.Background(), "2468")
	require.NoError(t, err)
	require.NotEqual(t, t1, t2)

	assert.True(t, svc.Consume(context.Background(), t2))
	assert.True(t, svc.Consume(context.Background(), t1))
}
