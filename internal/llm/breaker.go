package llm

import (
	"context"
	"fmt"
	"time"

	"AdmissionOfficer/internal/config"
	"AdmissionOfficer/internal/models"
	"AdmissionOfficer/pkg/circuitbreaker"
)

// BreakerLLM 用熔断器包装一个 LLM 客户端。生成后端连续失败达到阈值后，
// 后续请求在超时窗口内直接快速失败，避免每个请求都等待一个已经不可用的模型。
type BreakerLLM struct {
	inner   LLM
	breaker circuitbreaker.CircuitBreaker
}

// WithBreaker 按配置为 client 套上熔断器；未启用时原样返回 client。
func WithBreaker(client LLM, cfg config.CircuitBreakerConfig) (LLM, error) {
	if !cfg.Enabled {
		return client, nil
	}
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid circuit breaker timeout duration: %w", err)
	}
	return &BreakerLLM{
		inner:   client,
		breaker: circuitbreaker.New(cfg.FailureThreshold, cfg.SuccessThreshold, timeout),
	}, nil
}

func (b *BreakerLLM) GenerateContent(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	res, err := b.breaker.Execute(func() (interface{}, error) {
		return b.inner.GenerateContent(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return res.(*models.GenerateResponse), nil
}
