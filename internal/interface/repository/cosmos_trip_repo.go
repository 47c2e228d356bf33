package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"flightmail-service/internal/domain/entity"
	"flightmail-service/internal/domain/repository"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/google/uuid"
)

// Well-known Cosmos DB emulator key (public)
const cosmosEmulatorKey = "C2y6yDjf5/R+ob0N8A7Cgv30VRDJIWEHLM+4QDU5DE2nQ9nDuVTqobD4b8mGGyPMbIZnqyMsEcaGQy67XIw/Jw=="

// tripNamespace derives stable item IDs from dedupe keys so an upsert
// lands on the same document.
var tripNamespace = uuid.MustParse("6f1c7e1a-3b5d-4c1e-9a43-5b2f0d8e7c21")

// CosmosTripRepository stores trips in a Cosmos DB container partitioned
// by /userEmail.
type CosmosTripRepository struct {
	container *azcosmos.ContainerClient
}

// NewCosmosTripRepository connects to an existing database and container.
// With useEmulator the well-known emulator key is used, otherwise
// DefaultAzureCredential.
func NewCosmosTripRepository(endpoint, database, container string, useEmulator bool) (repository.TripRepository, error) {
	var client *azcosmos.Client
	if useEmulator {
		keyCred, err := azcosmos.NewKeyCredential(cosmosEmulatorKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create key credential: %w", err)
		}
		client, err = azcosmos.NewClientWithKey(endpoint, keyCred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Cosmos client (emulator): %w", err)
		}
	} else {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create credential: %w", err)
		}
		client, err = azcosmos.NewClient(endpoint, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Cosmos client: %w", err)
		}
	}

	containerClient, err := client.NewContainer(database, container)
	if err != nil {
		return nil, fmt.Errorf("failed to get container client: %w", err)
	}

	return &CosmosTripRepository{container: containerClient}, nil
}

// Upsert writes the trip under an ID derived from its dedupe key, keeping
// the original creation time when the item already exists.
func (r *CosmosTripRepository) Upsert(ctx context.Context, trip *entity.Trip) error {
	if trip.UserEmail == "" {
		return errors.New("userEmail is required")
	}

	trip.ID = uuid.NewSHA1(tripNamespace, []byte(trip.DedupeKey)).String()
	now := time.Now().UTC()
	trip.UpdatedAt = now

	existing, err := r.FindByID(ctx, trip.UserEmail, trip.ID)
	switch {
	case err == nil:
		trip.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		if trip.CreatedAt.IsZero() {
			trip.CreatedAt = now
		}
	default:
		return err
	}

	data, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("failed to marshal trip: %w", err)
	}

	pk := azcosmos.NewPartitionKeyString(trip.UserEmail)
	if _, err := r.container.UpsertItem(ctx, pk, data, nil); err != nil {
		return fmt.Errorf("failed to upsert trip %s: %w", trip.ID, err)
	}
	return nil
}

func (r *CosmosTripRepository) FindByID(ctx context.Context, userEmail, id string) (*entity.Trip, error) {
	pk := azcosmos.NewPartitionKeyString(userEmail)

	response, err := r.container.ReadItem(ctx, pk, id, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var trip entity.Trip
	if err := json.Unmarshal(response.Value, &trip); err != nil {
		return nil, fmt.Errorf("failed to decode trip %s: %w", id, err)
	}
	return &trip, nil
}

// ListByUser runs a single-partition query, newest first
func (r *CosmosTripRepository) ListByUser(ctx context.Context, userEmail string, limit int) ([]*entity.Trip, error) {
	pk := azcosmos.NewPartitionKeyString(userEmail)

	query := "SELECT * FROM c WHERE c.userEmail = @userEmail ORDER BY c.createdAt DESC OFFSET 0 LIMIT @limit"
	queryOptions := &azcosmos.QueryOptions{
		QueryParameters: []azcosmos.QueryParameter{
			{Name: "@userEmail", Value: userEmail},
			{Name: "@limit", Value: limit},
		},
	}

	pager := r.container.NewQueryItemsPager(query, pk, queryOptions)

	trips := make([]*entity.Trip, 0)
	for pager.More() {
		response, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("trip query failed: %w", err)
		}
		for _, item := range response.Items {
			var trip entity.Trip
			if err := json.Unmarshal(item, &trip); err != nil {
				continue
			}
			trips = append(trips, &trip)
		}
	}
	return trips, nil
}
