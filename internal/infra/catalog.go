package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/wallblue4/tustockya-backend/internal/dto"
)

const catalogCacheTTL = 15 * time.Minute

// CatalogClient resolves reference codes against the external catalog
// microservice (product reference data: brand, model, color, image).
// Responses are cached in Redis and calls flow through a circuit breaker so
// a downed catalog never slows the stock paths that embed its data.
type CatalogClient struct {
	http *resty.Client
	rdb  *redis.Client
	cb   *CircuitBreaker
}

func NewCatalogClient(baseURL string, rdb *redis.Client, cb *CircuitBreaker) *CatalogClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)
	return &CatalogClient{http: client, rdb: rdb, cb: cb}
}

// BreakerState exposes the circuit state for the health endpoint.
func (c *CatalogClient) BreakerState() string {
	return c.cb.State().String()
}

// ResolveReference returns catalog data for a reference code, or nil when the
// catalog has no record for it.
func (c *CatalogClient) ResolveReference(ctx context.Context, referenceCode string) (*dto.CatalogInfo, error) {
	cacheKey := "catalog:ref:" + referenceCode

	if c.rdb != nil {
		if cached, err := c.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var info dto.CatalogInfo
			if err := json.Unmarshal([]byte(cached), &info); err == nil {
				return &info, nil
			}
		}
	}

	var info *dto.CatalogInfo
	cbErr := c.cb.Execute(func() error {
		var body struct {
			Brand    string `json:"brand"`
			Model    string `json:"model"`
			Color    string `json:"color"`
			ImageURL string `json:"image_url"`
		}
		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&body).
			Get("/api/v1/references/" + referenceCode)
		if err != nil {
			return fmt.Errorf("catalog: request failed: %w", err)
		}
		if resp.StatusCode() == 404 {
			return nil // unknown reference is not a breaker failure
		}
		if resp.IsError() {
			return fmt.Errorf("catalog: service returned %d", resp.StatusCode())
		}
		info = &dto.CatalogInfo{
			Brand:    body.Brand,
			Model:    body.Model,
			Color:    body.Color,
			ImageURL: body.ImageURL,
		}
		return nil
	})
	if cbErr != nil {
		return nil, cbErr
	}
	if info == nil {
		return nil, nil
	}

	if c.rdb != nil {
		if data, err := json.Marshal(info); err == nil {
			if err := c.rdb.Set(ctx, cacheKey, data, catalogCacheTTL).Err(); err != nil {
				log.Debug().Err(err).Str("reference_code", referenceCode).Msg("catalog cache write failed")
			}
		}
	}
	return info, nil
}
