package milvus

import (
	"context"
	"fmt"
	"sync"

	"docuhub/internal/config"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

// Field names of the chunk collection. The relational columns are
// denormalized into Milvus so search results carry document metadata
// without a join.
const (
	FieldID         = "id"
	FieldDocumentID = "document_id"
	FieldOrgID      = "organization_id"
	FieldDocType    = "doc_type"
	FieldDocTitle   = "doc_title"
	FieldDocPath    = "doc_path"
	FieldChunkIndex = "chunk_index"
	FieldContent    = "content"
	FieldEmbedding  = "embedding"
)

var (
	instance *MilvusClient
	once     sync.Once
	initErr  error
)

// MilvusClient wraps the raw Milvus client together with its config.
type MilvusClient struct {
	Client client.Client
	Config *config.MilvusConfig
}

// GetClient creates the singleton Milvus client and makes sure the
// chunk collection exists and is loaded.
func GetClient(ctx context.Context, cfg *config.MilvusConfig) (*MilvusClient, error) {
	once.Do(func() {
		c, err := client.NewClient(ctx, client.Config{Address: cfg.Address})
		if err != nil {
			initErr = fmt.Errorf("unable to connect to Milvus: %w", err)
			return
		}
		instance = &MilvusClient{Client: c, Config: cfg}
		if err := instance.ensureCollection(ctx); err != nil {
			initErr = err
			return
		}
	})
	return instance, initErr
}

// ensureCollection creates the chunk collection and its index if they
// do not exist yet, then loads the collection for search.
func (c *MilvusClient) ensureCollection(ctx context.Context) error {
	name := c.Config.Collection

	has, err := c.Client.HasCollection(ctx, name)
	if err != nil {
		return fmt.Errorf("unable to check collection '%s': %w", name, err)
	}

	if !has {
		schema := entity.NewSchema().
			WithName(name).
			WithDescription("document chunks with embeddings and denormalized document metadata").
			WithField(entity.NewField().WithName(FieldID).WithDataType(entity.FieldTypeVarChar).WithMaxLength(64).WithIsPrimaryKey(true)).
			WithField(entity.NewField().WithName(FieldDocumentID).WithDataType(entity.FieldTypeVarChar).WithMaxLength(64)).
			WithField(entity.NewField().WithName(FieldOrgID).WithDataType(entity.FieldTypeVarChar).WithMaxLength(64)).
			WithField(entity.NewField().WithName(FieldDocType).WithDataType(entity.FieldTypeVarChar).WithMaxLength(32)).
			WithField(entity.NewField().WithName(FieldDocTitle).WithDataType(entity.FieldTypeVarChar).WithMaxLength(512)).
			WithField(entity.NewField().WithName(FieldDocPath).WithDataType(entity.FieldTypeVarChar).WithMaxLength(1024)).
			WithField(entity.NewField().WithName(FieldChunkIndex).WithDataType(entity.FieldTypeInt64)).
			WithField(entity.NewField().WithName(FieldContent).WithDataType(entity.FieldTypeVarChar).WithMaxLength(65535)).
			WithField(entity.NewField().WithName(FieldEmbedding).WithDataType(entity.FieldTypeFloatVector).WithDim(int64(c.Config.Dim)))

		if err := c.Client.CreateCollection(ctx, schema, 1); err != nil {
			return fmt.Errorf("unable to create collection '%s': %w", name, err)
		}

		idx, err := entity.NewIndexIvfFlat(entity.COSINE, 128)
		if err != nil {
			return fmt.Errorf("unable to build index definition: %w", err)
		}
		if err := c.Client.CreateIndex(ctx, name, FieldEmbedding, idx, false); err != nil {
			return fmt.Errorf("unable to create index on '%s': %w", name, err)
		}
	}

	if err := c.Client.LoadCollection(ctx, name, false); err != nil {
		return fmt.Errorf("unable to load collection '%s': %w", name, err)
	}
	return nil
}

// Close safely closes the Milvus connection.
func (c *MilvusClient) Close() {
	if c.Client != nil {
		c.Client.Close()
	}
}

// HealthCheck verifies connectivity by listing collections.
func (c *MilvusClient) HealthCheck(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return fmt.Errorf("milvus client not initialized")
	}
	if _, err := c.Client.ListCollections(ctx); err != nil {
		return fmt.Errorf("milvus health check failed: %w", err)
	}
	return nil
}
