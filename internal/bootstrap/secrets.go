package bootstrap

import (
	"context"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"

	"github.com/GregMSThompson/expat-financier/internal/store"
)

// ResolveSecret reads the latest version of secretID. The client is only
// needed at startup so it is closed straight away.
func ResolveSecret(ctx context.Context, projectID, secretID string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	return store.NewSecretsStore(client, projectID).Latest(ctx, secretID)
}
