package health

type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type SlowRequest struct {
	DelayMS int `form:"delay_ms" binding:"gte=0"`
}

type SlowResponse struct {
	ElapsedMS int `json:"elapsed_ms"`
}
