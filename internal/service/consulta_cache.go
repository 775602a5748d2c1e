package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/TheGeorge88/app-celulares/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const consultaCachePrefix = "consulta:"

// ConsultaCache caches public status lookups. It is strictly best-effort:
// a cache failure never fails the request.
type ConsultaCache interface {
	Obtener(ctx context.Context, codigo string) (*dto.ConsultaEstadoResponse, bool)
	Guardar(ctx context.Context, codigo string, resp *dto.ConsultaEstadoResponse)
	Invalidar(ctx context.Context, codigo string)
}

type redisConsultaCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisConsultaCache(rdb *redis.Client, ttl time.Duration) ConsultaCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &redisConsultaCache{rdb: rdb, ttl: ttl}
}

func (c *redisConsultaCache) Obtener(ctx context.Context, codigo string) (*dto.ConsultaEstadoResponse, bool) {
	raw, err := c.rdb.Get(ctx, consultaCachePrefix+codigo).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("codigo", codigo).Msg("fallo leyendo cache de consulta")
		}
		return nil, false
	}
	var resp dto.ConsultaEstadoResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (c *redisConsultaCache) Guardar(ctx context.Context, codigo string, resp *dto.ConsultaEstadoResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, consultaCachePrefix+codigo, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("codigo", codigo).Msg("fallo guardando cache de consulta")
	}
}

func (c *redisConsultaCache) Invalidar(ctx context.Context, codigo string) {
	if err := c.rdb.Del(ctx, consultaCachePrefix+codigo).Err(); err != nil {
		log.Warn().Err(err).Str("codigo", codigo).Msg("fallo invalidando cache de consulta")
	}
}
