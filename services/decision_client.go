package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"reims-http-service/config"
	"reims-http-service/models"

	"github.com/go-resty/resty/v2"
)

// InterfaceDecisionClient defines the upstream committee decision client interface
type InterfaceDecisionClient interface {
	SubmitDecision(ctx context.Context, decision *models.Decision) error
}

// DecisionSubmitRequest 上游决策端点的请求体
type DecisionSubmitRequest struct {
	AlertID uint   `json:"alertId"`
	UserID  uint   `json:"userId"`
	Action  string `json:"action"`
	Notes   string `json:"notes"`
	Reason  string `json:"reason,omitempty"`
}

// DecisionSubmitResponse 上游决策端点的响应体
type DecisionSubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DecisionClient 负责把审批决策转发到委员会的上游审查系统。
// 未配置端点时直接视为成功，决策仅在本地记录。
type DecisionClient struct {
	httpClient *resty.Client
	endpoint   string
}

// NewDecisionClient 创建上游决策客户端
func NewDecisionClient(cfg *config.Config) InterfaceDecisionClient {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// 上游临时故障重试，4xx不重试
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	if cfg.DecisionAPIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.DecisionAPIKey)
	}

	return &DecisionClient{
		httpClient: client,
		endpoint:   cfg.DecisionEndpointURL,
	}
}

// SubmitDecision 把决策提交到上游端点，失败时返回UpstreamError
func (c *DecisionClient) SubmitDecision(ctx context.Context, decision *models.Decision) error {
	if c.endpoint == "" {
		return nil
	}

	req := DecisionSubmitRequest{
		AlertID: decision.AlertID,
		UserID:  decision.UserID,
		Action:  decision.Action,
		Notes:   decision.Notes,
		Reason:  decision.Reason,
	}

	var result DecisionSubmitResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post(c.endpoint)
	if err != nil {
		return &UpstreamError{Endpoint: c.endpoint, Err: err}
	}

	if resp.IsError() {
		return &UpstreamError{
			Endpoint: c.endpoint,
			Err:      fmt.Errorf("状态码 %d: %s", resp.StatusCode(), resp.String()),
		}
	}

	return nil
}
