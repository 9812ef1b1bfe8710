package request

type UpdateIntegrationRequest struct {
	IsActive bool `json:"is_active"`
}
