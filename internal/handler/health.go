package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	mongoClient *mongo.Client
	redisClient *redis.Client
}

func NewHealthHandler(mongoClient *mongo.Client, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{mongoClient: mongoClient, redisClient: redisClient}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "mongodb": "unavailable"})
		return
	}
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "redis": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"mongodb": "connected",
		"redis":   "connected",
	})
}
