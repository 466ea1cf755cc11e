package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quoting/internal/service"
)

// ConfigurationHandler handles HTTP requests for delivery configurations.
// The surface is read-only: configuration writes belong to the external
// synchronization process.
type ConfigurationHandler struct {
	configService *service.ConfigurationService
}

// NewConfigurationHandler creates a new ConfigurationHandler.
func NewConfigurationHandler(configService *service.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{configService: configService}
}

// ConfigurationSummary is the list-view projection of a configuration.
type ConfigurationSummary struct {
	ConfigID   string `json:"config_id"`
	ClientName string `json:"client_name"`
	VendorName string `json:"vendor_name"`
	IsActive   bool   `json:"is_active"`
	TierCount  int    `json:"tier_count"`
}

// ListConfigurations handles GET /v1/configurations
func (h *ConfigurationHandler) ListConfigurations(c *gin.Context) {
	configs, err := h.configService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]ConfigurationSummary, len(configs))
	for i, cfg := range configs {
		summaries[i] = ConfigurationSummary{
			ConfigID:   cfg.ConfigID,
			ClientName: cfg.ClientName,
			VendorName: cfg.VendorName,
			IsActive:   cfg.IsActive,
			TierCount:  len(cfg.PricingTiers),
		}
	}

	respondJSON(c, http.StatusOK, gin.H{"configurations": summaries})
}

// GetConfiguration handles GET /v1/configurations/:id
func (h *ConfigurationHandler) GetConfiguration(c *gin.Context) {
	cfg, err := h.configService.GetConfiguration(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	// The full record serializes in the synchronization shape.
	respondJSON(c, http.StatusOK, gin.H{"configuration": cfg})
}
